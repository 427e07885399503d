package confirmation

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Sender hands a rendered confirmation to a delivery channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Outcome decides whether a simulated delivery succeeds.
type Outcome interface {
	Decide() error
}

// RandomOutcome refuses roughly FailureRate of deliveries.
type RandomOutcome struct {
	FailureRate float64
}

func (r RandomOutcome) Decide() error {
	if r.FailureRate <= 0 {
		return nil
	}
	if rand.Float64() < r.FailureRate {
		return ErrSimulatedRefusal
	}
	return nil
}

// FixedOutcome always returns Err.
type FixedOutcome struct {
	Err error
}

func (f FixedOutcome) Decide() error {
	return f.Err
}

// SimulatedSender logs the message and pretends to send it after Delay.
type SimulatedSender struct {
	delay   time.Duration
	outcome Outcome
	log     *zap.Logger
}

func NewSimulatedSender(delay time.Duration, outcome Outcome, log *zap.Logger) *SimulatedSender {
	if outcome == nil {
		outcome = RandomOutcome{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SimulatedSender{delay: delay, outcome: outcome, log: log}
}

func (s *SimulatedSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("sending order confirmation email",
		zap.String("order_id", msg.OrderID),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	s.log.Debug(msg.Body)

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.outcome.Decide()
}
