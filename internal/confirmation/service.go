package confirmation

import (
	"context"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/domain"
	"go.uber.org/zap"
)

// Service turns a cart into an order confirmation and delivers it.
type Service struct {
	sender Sender
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(sender Sender, opts ...Option) *Service {
	s := &Service{
		sender: sender,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Prepare validates the email and builds the order and its message. It has no
// side effects.
func (s *Service) Prepare(lines []domain.CartLine, email string) (domain.Order, Message, error) {
	if err := ValidateEmail(email); err != nil {
		return domain.Order{}, Message{}, err
	}
	order := BuildOrder(lines, email, s.now())
	return order, NewMessage(order), nil
}

// Deliver sends msg once. Any failure comes back as *DeliveryFailure.
func (s *Service) Deliver(ctx context.Context, msg Message) error {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Warn("order confirmation delivery failed",
			zap.String("order_id", msg.OrderID),
			zap.Error(err))
		return &DeliveryFailure{OrderID: msg.OrderID, Err: err}
	}
	s.log.Info("order confirmation delivered", zap.String("order_id", msg.OrderID))
	return nil
}
