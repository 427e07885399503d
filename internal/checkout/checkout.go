// Package checkout drives one session's checkout through
// IDLE -> SUBMITTING -> CONFIRMED | FAILED.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/cart"
	"github.com/dhavalpatel0212-spec/Mithai/internal/confirmation"
	d "github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"go.uber.org/zap"
)

type Confirmer interface {
	Prepare(lines []d.CartLine, email string) (d.Order, confirmation.Message, error)
	Deliver(ctx context.Context, msg confirmation.Message) error
}

// Status is what the storefront polls to decide whether the checkout panel
// stays open.
type Status struct {
	State     d.CheckoutStatus `json:"status"`
	OrderID   string           `json:"order_id,omitempty"`
	Error     string           `json:"error,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Result struct {
	Order   d.Order
	Message confirmation.Message
	Status  Status
}

type Checkout struct {
	mu        sync.Mutex
	cart      *cart.Cart
	confirmer Confirmer
	log       *zap.Logger
	status    Status
}

func New(c *cart.Cart, confirmer Confirmer, log *zap.Logger) *Checkout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{
		cart:      c,
		confirmer: confirmer,
		log:       log,
		status:    Status{State: d.CheckoutStatusIdle, UpdatedAt: time.Now()},
	}
}

func (c *Checkout) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submit places the order for email. It returns a *confirmation.ValidationError
// for a bad address, ErrCheckoutInProgress while another submission runs,
// ErrEmptyCart for an empty cart and a *confirmation.DeliveryFailure when the
// confirmation could not be sent. Only a delivered confirmation takes the
// ordered lines out of the cart.
func (c *Checkout) Submit(ctx context.Context, email string) (*Result, error) {
	if err := confirmation.ValidateEmail(email); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.status.State == d.CheckoutStatusSubmitting {
		c.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	lines := c.cart.Lines()
	if len(lines) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}
	order, msg, err := c.confirmer.Prepare(lines, email)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if err := c.transition(d.CheckoutStatusSubmitting, order.ID, ""); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	c.log.Info("checkout submitting",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)))

	sendErr := c.confirmer.Deliver(ctx, msg)

	c.mu.Lock()
	defer c.mu.Unlock()
	if sendErr != nil {
		_ = c.transition(d.CheckoutStatusFailed, order.ID, sendErr.Error())
		c.log.Warn("checkout failed, cart kept", zap.String("order_id", order.ID), zap.Error(sendErr))
		return nil, sendErr
	}

	_ = c.transition(d.CheckoutStatusConfirmed, order.ID, "")
	// lines added while the confirmation was in flight were not ordered
	c.cart.Subtract(order.Items)
	c.log.Info("checkout confirmed", zap.String("order_id", order.ID))
	return &Result{Order: order, Message: msg, Status: c.status}, nil
}

// caller must hold mu
func (c *Checkout) transition(to d.CheckoutStatus, orderID, errText string) error {
	if !d.CanTransitionTo(c.status.State, to) {
		return ErrIllegalTransition
	}
	c.status = Status{State: to, OrderID: orderID, Error: errText, UpdatedAt: time.Now()}
	return nil
}
