package session

import (
	"context"
	"errors"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
)

// Snapshot is the part of a session worth keeping across restarts.
type Snapshot struct {
	SessionID string            `json:"session_id"`
	Lines     []domain.CartLine `json:"lines"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type SnapshotCache interface {
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Set(ctx context.Context, sessionID string, s *Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache keeps nothing; sessions live only in memory.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*Snapshot, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, string, *Snapshot) error { return nil }
func (NoopCache) Delete(context.Context, string) error { return nil }
