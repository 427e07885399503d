package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/cart"
	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/dhavalpatel0212-spec/Mithai/internal/session"
	"github.com/go-chi/chi/v5"
)

// SessionStore hands out the per-browser session and persists its cart.
type SessionStore interface {
	Get(ctx context.Context, id string) *session.Session
	Save(ctx context.Context, s *session.Session)
}

type CartHandler struct {
	catalog  catalog.Reader
	sessions SessionStore
	timeout  time.Duration
}

func NewCartHandler(c catalog.Reader, sessions SessionStore, timeout time.Duration) *CartHandler {
	return &CartHandler{
		catalog:  c,
		sessions: sessions,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ItemID     string `json:"item_id"`
	VariantID  string `json:"variant_id"`
	Quantity   int    `json:"quantity"`
	DryFruits  string `json:"dry_fruits"`
	SugarLevel string `json:"sugar_level"`
	Note       string `json:"note"`
}

// Quantity is kept raw so that strings and fractions can be coerced.
type UpdateQuantityRequestDTO struct {
	Quantity json.RawMessage `json:"quantity"`
}

type CustomizeRequestDTO struct {
	DryFruits  *string `json:"dry_fruits"`
	SugarLevel *string `json:"sugar_level"`
	Note       *string `json:"note"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, s.Cart.Summary())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "item_id is required")
		return
	}

	dry, err := domain.ParseDryFruitLevel(req.DryFruits)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	sugar, err := domain.ParseSugarLevel(req.SugarLevel)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	item, err := h.catalog.GetItem(req.ItemID)
	if errors.Is(err, catalog.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	s.Cart.Add(item, cart.AddOptions{
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		Customization: domain.Customization{
			DryFruits:  dry,
			SugarLevel: sugar,
			Note:       req.Note,
		},
	})
	h.sessions.Save(ctx, s)

	respondJSON(w, http.StatusCreated, s.Cart.Summary())
}

// PUT /api/v1/cart/items/{line_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	if !s.Cart.UpdateQuantity(chi.URLParam(r, "line_id"), coerceQuantity(req.Quantity)) {
		respondError(w, http.StatusNotFound, "not_found", "cart line not found")
		return
	}
	h.sessions.Save(ctx, s)

	respondJSON(w, http.StatusOK, s.Cart.Summary())
}

// PATCH /api/v1/cart/items/{line_id}
func (h *CartHandler) Customize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CustomizeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	lineID := chi.URLParam(r, "line_id")
	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	line, ok := s.Cart.Line(lineID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "cart line not found")
		return
	}

	cz := line.Customization
	if req.DryFruits != nil {
		level, err := domain.ParseDryFruitLevel(*req.DryFruits)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		cz.DryFruits = level
	}
	if req.SugarLevel != nil {
		level, err := domain.ParseSugarLevel(*req.SugarLevel)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		cz.SugarLevel = level
	}
	if req.Note != nil {
		cz.Note = *req.Note
	}

	if !s.Cart.Customize(lineID, cz) {
		respondError(w, http.StatusNotFound, "not_found", "cart line not found")
		return
	}
	h.sessions.Save(ctx, s)

	respondJSON(w, http.StatusOK, s.Cart.Summary())
}

// DELETE /api/v1/cart/items/{line_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	s.Cart.Remove(chi.URLParam(r, "line_id"))
	h.sessions.Save(ctx, s)

	respondJSON(w, http.StatusOK, s.Cart.Summary())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	s := h.sessions.Get(ctx, getSessionID(r.Context()))
	s.Cart.Clear()
	h.sessions.Save(ctx, s)

	w.WriteHeader(http.StatusNoContent)
}

// coerceQuantity accepts a JSON number or numeric string. Anything that is not
// a whole number of at least one becomes 1.
func coerceQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 1
	}
	switch q := v.(type) {
	case json.Number:
		return cart.ParseQuantity(q.String())
	case string:
		return cart.ParseQuantity(q)
	default:
		return 1
	}
}
