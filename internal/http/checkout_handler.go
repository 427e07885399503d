package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dhavalpatel0212-spec/Mithai/internal/checkout"
	"github.com/dhavalpatel0212-spec/Mithai/internal/confirmation"
	"github.com/dhavalpatel0212-spec/Mithai/internal/pricing"
	"github.com/dhavalpatel0212-spec/Mithai/pkg/circuitbreaker"
	"github.com/dhavalpatel0212-spec/Mithai/pkg/logger"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	sessions SessionStore
	log      *zap.Logger
}

func NewCheckoutHandler(sessions SessionStore, log *zap.Logger) *CheckoutHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutHandler{sessions: sessions, log: log}
}

type CheckoutRequestDTO struct {
	Email string `json:"email"`
}

type CheckoutResponse struct {
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	Total        string `json:"total"`
	ItemCount    int    `json:"item_count"`
	Subject      string `json:"subject"`
	Confirmation string `json:"confirmation"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx := r.Context()
	s := h.sessions.Get(ctx, getSessionID(ctx))

	res, err := s.Checkout.Submit(ctx, req.Email)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.sessions.Save(ctx, s)

	count := 0
	for _, it := range res.Order.Items {
		count += it.Quantity
	}
	respondJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID:      res.Order.ID,
		Status:       res.Status.State.String(),
		Total:        pricing.FormatGBP(res.Order.Total),
		ItemCount:    count,
		Subject:      res.Message.Subject,
		Confirmation: res.Message.Body,
	})
}

// GET /api/v1/checkout
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Get(r.Context(), getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, s.Checkout.Status())
}

func (h *CheckoutHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *confirmation.ValidationError
	var df *confirmation.DeliveryFailure
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "invalid_email", ve.Message)
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		respondError(w, http.StatusConflict, "checkout_in_progress", "order is already being placed")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")
	case errors.As(err, &df):
		msg := "failed to send order confirmation, please try again"
		if circuitbreaker.IsOpen(err) {
			msg = "order confirmations are paused, please try again in a minute"
		}
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:     msg,
			Code:      "delivery_failed",
			Details:   err.Error(),
			Retryable: df.Retryable(),
		})
	default:
		logger.FromContext(r.Context(), h.log).Error("checkout failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
