// Package delivery implements the post-checkout countdown shown while a
// simulated courier is on the way. The state machine is pure: Tick and
// Pickup are plain transition functions, and whatever schedules the
// ticks (a real ticker, a test loop) stays outside.
package delivery

import "errors"

// DefaultTicks is the countdown length used by the storefront.
const DefaultTicks = 60

var ErrNotReady = errors.New("order is not ready for pickup")

// State of the countdown.
type State string

const (
	StateInTransit      State = "in_transit"
	StateReadyForPickup State = "ready_for_pickup"
	StateDelivered      State = "delivered"
)

// Simulation is a countdown for a single order. Not safe for concurrent
// use; Tracker serializes access when a runner is attached.
type Simulation struct {
	orderID   string
	remaining int
	state     State
}

// NewSimulation starts a countdown of the given length for an order.
// A length below 1 is ready for pickup immediately.
func NewSimulation(orderID string, ticks int) *Simulation {
	if ticks < 1 {
		return &Simulation{orderID: orderID, state: StateReadyForPickup}
	}
	return &Simulation{orderID: orderID, remaining: ticks, state: StateInTransit}
}

// Tick advances the countdown by one step and returns the resulting
// state. Ticks after the countdown has finished change nothing.
func (s *Simulation) Tick() State {
	if s.state != StateInTransit {
		return s.state
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.state = StateReadyForPickup
	}
	return s.state
}

// Pickup transitions ReadyForPickup to Delivered, the terminal state.
// Picking up an already delivered order is a no-op; picking up while
// still in transit fails with ErrNotReady.
func (s *Simulation) Pickup() error {
	switch s.state {
	case StateReadyForPickup:
		s.state = StateDelivered
		return nil
	case StateDelivered:
		return nil
	default:
		return ErrNotReady
	}
}

// OrderID returns the order this countdown belongs to.
func (s *Simulation) OrderID() string { return s.orderID }

// Remaining returns the ticks left in transit.
func (s *Simulation) Remaining() int { return s.remaining }

// State returns the current state.
func (s *Simulation) State() State { return s.state }

// Done reports whether the simulation reached its terminal state.
func (s *Simulation) Done() bool { return s.state == StateDelivered }
