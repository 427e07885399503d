package confirmation

import (
	"context"

	"github.com/dhavalpatel0212-spec/Mithai/pkg/circuitbreaker"
)

// BreakerSender stops calling a failing channel for a while instead of making
// every shopper wait for it to time out.
type BreakerSender struct {
	next    Sender
	breaker *circuitbreaker.Breaker[struct{}]
}

func NewBreakerSender(next Sender, b *circuitbreaker.Breaker[struct{}]) *BreakerSender {
	return &BreakerSender{next: next, breaker: b}
}

func (s *BreakerSender) Send(ctx context.Context, msg Message) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Send(ctx, msg)
	})
	return err
}
