package delivery

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForState(t *testing.T, tr *Tracker, want State, timeout time.Duration) *Status {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		status, err := tr.Status()
		if err == nil && status.State == want {
			return status
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state never reached %q within %s", want, timeout)
	return nil
}

func TestTrackerRunsCountdownToReady(t *testing.T) {
	tr := NewTracker(3, time.Millisecond, zap.NewNop(), nil)
	tr.Start("order-1")
	defer tr.Dismiss()

	status := waitForState(t, tr, StateReadyForPickup, time.Second)
	if status.OrderID != "order-1" {
		t.Errorf("order id = %q, want order-1", status.OrderID)
	}
	if status.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", status.Remaining)
	}
}

func TestTrackerPickupInvokesCallbackOnce(t *testing.T) {
	delivered := make(chan string, 2)
	tr := NewTracker(1, time.Millisecond, zap.NewNop(), func(orderID string) {
		delivered <- orderID
	})
	tr.Start("order-1")
	defer tr.Dismiss()

	waitForState(t, tr, StateReadyForPickup, time.Second)

	status, err := tr.Pickup()
	if err != nil {
		t.Fatalf("Pickup failed: %v", err)
	}
	if status.State != StateDelivered {
		t.Errorf("state = %q, want delivered", status.State)
	}

	if _, err := tr.Pickup(); err != nil {
		t.Errorf("second Pickup: error = %v, want nil", err)
	}

	select {
	case id := <-delivered:
		if id != "order-1" {
			t.Errorf("callback order id = %q, want order-1", id)
		}
	case <-time.After(time.Second):
		t.Fatal("delivered callback never fired")
	}

	select {
	case <-delivered:
		t.Error("delivered callback fired more than once")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestTrackerPickupTooEarly(t *testing.T) {
	tr := NewTracker(1000, time.Hour, zap.NewNop(), nil)
	tr.Start("order-1")
	defer tr.Dismiss()

	if _, err := tr.Pickup(); err != ErrNotReady {
		t.Errorf("Pickup in transit: error = %v, want ErrNotReady", err)
	}
}

func TestTrackerDismissCancelsTicks(t *testing.T) {
	tr := NewTracker(1000, time.Millisecond, zap.NewNop(), nil)
	tr.Start("order-1")
	tr.Dismiss()

	if _, err := tr.Status(); err != ErrNoActiveDelivery {
		t.Errorf("Status after Dismiss: error = %v, want ErrNoActiveDelivery", err)
	}
	if _, err := tr.Pickup(); err != ErrNoActiveDelivery {
		t.Errorf("Pickup after Dismiss: error = %v, want ErrNoActiveDelivery", err)
	}
}

func TestTrackerStartReplacesPreviousCountdown(t *testing.T) {
	tr := NewTracker(1000, time.Millisecond, zap.NewNop(), nil)
	tr.Start("order-1")
	tr.Start("order-2")
	defer tr.Dismiss()

	status, err := tr.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.OrderID != "order-2" {
		t.Errorf("order id = %q, want the replacing order", status.OrderID)
	}
}

func TestTrackerStatusWithNoDelivery(t *testing.T) {
	tr := NewTracker(10, time.Millisecond, zap.NewNop(), nil)
	if _, err := tr.Status(); err != ErrNoActiveDelivery {
		t.Errorf("Status: error = %v, want ErrNoActiveDelivery", err)
	}
}
