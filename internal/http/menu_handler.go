package http

import (
	"errors"
	"net/http"

	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	catalog catalog.Reader
}

func NewMenuHandler(c catalog.Reader) *MenuHandler {
	return &MenuHandler{catalog: c}
}

type MenuResponse struct {
	Items []domain.CatalogItem `json:"items"`
}

// GET /api/v1/menu
func (h *MenuHandler) List(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, MenuResponse{Items: h.catalog.GetAllItems()})
}

// GET /api/v1/menu/{item_id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.GetItem(chi.URLParam(r, "item_id"))
	if errors.Is(err, catalog.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, item)
}
