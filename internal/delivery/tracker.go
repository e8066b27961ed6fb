package delivery

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrNoActiveDelivery = errors.New("no delivery in progress")

// Status is a read-only snapshot of the current simulation.
type Status struct {
	OrderID   string `json:"order_id"`
	State     State  `json:"state"`
	Remaining int    `json:"remaining"`
}

// Tracker owns at most one live simulation, the one for the most recent
// order, and drives it from a ticker goroutine. It is the only
// concurrency-aware part of the delivery package: HTTP handlers and the
// runner share it, so every access goes through the mutex.
type Tracker struct {
	mu       sync.Mutex
	sim      *Simulation
	cancel   context.CancelFunc
	interval time.Duration
	ticks    int
	logger   *zap.Logger

	// onDelivered is invoked once when a pickup completes.
	onDelivered func(orderID string)
}

// NewTracker creates a tracker producing countdowns of the given length
// and tick interval. onDelivered may be nil.
func NewTracker(ticks int, interval time.Duration, logger *zap.Logger, onDelivered func(orderID string)) *Tracker {
	if ticks < 1 {
		ticks = DefaultTicks
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Tracker{
		ticks:       ticks,
		interval:    interval,
		logger:      logger,
		onDelivered: onDelivered,
	}
}

// Start begins a countdown for the order, replacing and cancelling any
// previous one. The ticker goroutine stops as soon as the countdown
// leaves InTransit or the tracker is dismissed, so no tick outlives the
// simulation it belongs to.
func (t *Tracker) Start(orderID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()

	t.sim = NewSimulation(orderID, t.ticks)
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.logger.Info("Delivery countdown started",
		zap.String("order_id", orderID),
		zap.Int("ticks", t.ticks),
	)

	go t.run(ctx, t.sim)
}

func (t *Tracker) run(ctx context.Context, sim *Simulation) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			// A new simulation may have replaced this one while the
			// ticker slept.
			if t.sim != sim {
				t.mu.Unlock()
				return
			}
			state := sim.Tick()
			t.mu.Unlock()

			if state != StateInTransit {
				return
			}
		}
	}
}

// Status returns a snapshot of the live countdown.
func (t *Tracker) Status() (*Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sim == nil {
		return nil, ErrNoActiveDelivery
	}
	return &Status{
		OrderID:   t.sim.OrderID(),
		State:     t.sim.State(),
		Remaining: t.sim.Remaining(),
	}, nil
}

// Pickup completes the live countdown.
func (t *Tracker) Pickup() (*Status, error) {
	t.mu.Lock()

	if t.sim == nil {
		t.mu.Unlock()
		return nil, ErrNoActiveDelivery
	}

	wasDone := t.sim.Done()
	if err := t.sim.Pickup(); err != nil {
		t.mu.Unlock()
		return nil, err
	}

	status := &Status{
		OrderID:   t.sim.OrderID(),
		State:     t.sim.State(),
		Remaining: t.sim.Remaining(),
	}
	callback := !wasDone && t.onDelivered != nil
	orderID := t.sim.OrderID()
	t.mu.Unlock()

	if callback {
		t.onDelivered(orderID)
	}
	return status, nil
}

// Dismiss tears the countdown down, cancelling its ticker.
func (t *Tracker) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Tracker) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.sim = nil
}
