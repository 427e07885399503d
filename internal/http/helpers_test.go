package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/dhavalpatel0212-spec/Mithai/internal/confirmation"
	"github.com/dhavalpatel0212-spec/Mithai/internal/session"
	"github.com/go-chi/chi/v5"
)

const testSession = "2f1c7c1e-2a4e-4f0e-9a53-0d6d3c1b7a10"

type gatedSender struct {
	err   error
	gate  chan struct{}
	start chan struct{}
}

func (s *gatedSender) Send(ctx context.Context, _ confirmation.Message) error {
	if s.start != nil {
		close(s.start)
	}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load menu: %v", err)
	}
	return c
}

func newTestRegistry(t *testing.T, sender confirmation.Sender) *session.Registry {
	t.Helper()
	reg := session.NewRegistry(session.Config{}, session.NoopCache{}, confirmation.NewService(sender), nil)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func newRequest(method, target string, body interface{}, params map[string]string) *http.Request {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	ctx := withSessionID(req.Context(), testSession)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

const testTimeout = 5 * time.Second

type sessionsSpy struct {
	SessionStore
	saves int
}

func (s *sessionsSpy) Save(ctx context.Context, sess *session.Session) {
	s.saves++
	s.SessionStore.Save(ctx, sess)
}
