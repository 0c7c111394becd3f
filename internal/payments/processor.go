package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// ChargeRequest is one charge handed to a payment processor.
type ChargeRequest struct {
	Amount    int
	Method    string
	Reference string // application ID the charge settles
}

// Result is the processor's verdict on a charge.
type Result struct {
	TransactionID string
	Status        string
	ProcessedAt   time.Time
}

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Processor accepts charges. The simulated implementation and a real
// gateway client are interchangeable behind this interface.
type Processor interface {
	Process(ctx context.Context, req ChargeRequest) (*Result, error)
}

// SimulatedProcessor stands in for a payment gateway: it waits the
// configured processing delay and approves the charge. Calls run through a
// circuit breaker so gateway wiring stays identical when a real backend
// replaces the simulation.
type SimulatedProcessor struct {
	delay   time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewSimulatedProcessor creates a SimulatedProcessor with the given
// processing delay.
func NewSimulatedProcessor(delay time.Duration) *SimulatedProcessor {
	st := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
	}
	return &SimulatedProcessor{
		delay:   delay,
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// Process settles the charge after the simulated gateway delay. It respects
// context cancellation, so an abandoned request does not produce a charge.
func (p *SimulatedProcessor) Process(ctx context.Context, req ChargeRequest) (*Result, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("charge amount must be positive, got %d", req.Amount)
	}

	res, err := p.breaker.Execute(func() (interface{}, error) {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
		return &Result{
			TransactionID: uuid.NewString(),
			Status:        StatusSucceeded,
			ProcessedAt:   time.Now(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Result), nil
}
