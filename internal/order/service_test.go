package order

import (
	"context"
	"testing"
	"time"

	"list-market/internal/cart"
	"list-market/internal/domain"
	"list-market/internal/session"
	"list-market/internal/storage"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

var (
	friday = time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	monday = time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	orders Service
	carts  cart.Service
	store  *storage.MemoryStore
	now    *time.Time
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()

	now := start
	clock := func() time.Time { return now }

	store := storage.NewMemoryStore()
	sessions := session.New(store, "test-secret", time.Hour)
	if _, _, err := sessions.Login(context.Background(), "user@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	carts := cart.New(store, sessions, zap.NewNop(), clock)
	orders := New(store, carts, zap.NewNop(), clock)

	return &fixture{orders: orders, carts: carts, store: store, now: &now}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	if _, err := f.orders.Checkout(ctx); err != ErrEmptyCart {
		t.Fatalf("Checkout error = %v, want ErrEmptyCart", err)
	}

	history, err := f.orders.History(ctx)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Error("failed checkout must leave the history unchanged")
	}
}

func TestCheckoutSnapshotsCartAndClearsIt(t *testing.T) {
	f := newFixture(t, friday)
	ctx := context.Background()

	sofa := domain.Product{ID: 1, Name: `Диван "Комфорт"`, Price: 45000, Image: "🛋️"}
	if _, err := f.carts.AddItem(ctx, sofa); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	placed, err := f.orders.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if placed.ID == "" {
		t.Error("order id must be assigned")
	}
	if placed.Status != domain.OrderStatusPending {
		t.Errorf("status = %q, want pending", placed.Status)
	}
	if placed.Total != 29250 {
		t.Errorf("total = %d, want 29250 (45000 * 0.65 on the discount day)", placed.Total)
	}
	if len(placed.Items) != 1 || placed.Items[0].Price != 29250 {
		t.Errorf("item price = %v, want frozen effective price 29250", placed.Items)
	}

	history, _ := f.orders.History(ctx)
	if len(history) != 1 {
		t.Fatalf("history has %d orders, want 1", len(history))
	}
	if history[0].Total != 29250 {
		t.Errorf("history[0].Total = %d, want 29250", history[0].Total)
	}

	left, _ := f.carts.Get(ctx)
	if !left.IsEmpty() {
		t.Error("cart must be empty after checkout")
	}
}

func TestCheckoutPrependsNewestFirst(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	first := domain.Product{ID: 1, Name: "Первый", Price: 100}
	second := domain.Product{ID: 2, Name: "Второй", Price: 200}

	f.carts.AddItem(ctx, first)
	a, err := f.orders.Checkout(ctx)
	if err != nil {
		t.Fatalf("first Checkout failed: %v", err)
	}

	f.carts.AddItem(ctx, second)
	b, err := f.orders.Checkout(ctx)
	if err != nil {
		t.Fatalf("second Checkout failed: %v", err)
	}

	if a.ID == b.ID {
		t.Error("order ids must be unique within a session")
	}

	history, _ := f.orders.History(ctx)
	if len(history) != 2 {
		t.Fatalf("history has %d orders, want 2", len(history))
	}
	if history[0].ID != b.ID || history[1].ID != a.ID {
		t.Error("history must be ordered newest first")
	}
}

func TestClockChangeDoesNotRewriteHistory(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	sofa := domain.Product{ID: 1, Name: "Диван", Price: 45000}
	f.carts.AddItem(ctx, sofa)

	placed, err := f.orders.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if placed.Total != 45000 {
		t.Fatalf("Monday total = %d, want 45000", placed.Total)
	}

	// The week rolls on to the discount day; the stored order keeps its
	// checkout-time prices.
	*f.now = friday
	history, _ := f.orders.History(ctx)
	if history[0].Total != 45000 {
		t.Errorf("stored total changed to %d after clock moved", history[0].Total)
	}
	if history[0].Items[0].Price != 45000 {
		t.Errorf("stored item price changed to %d after clock moved", history[0].Items[0].Price)
	}
}

func TestMarkDelivered(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	f.carts.AddItem(ctx, domain.Product{ID: 1, Name: "Диван", Price: 100})
	placed, err := f.orders.Checkout(ctx)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if err := f.orders.MarkDelivered(ctx, placed.ID); err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}

	history, _ := f.orders.History(ctx)
	if history[0].Status != domain.OrderStatusDelivered {
		t.Errorf("status = %q, want delivered", history[0].Status)
	}

	// Repeating the transition is harmless.
	if err := f.orders.MarkDelivered(ctx, placed.ID); err != nil {
		t.Errorf("second MarkDelivered failed: %v", err)
	}

	if err := f.orders.MarkDelivered(ctx, "no-such-order"); err != ErrOrderNotFound {
		t.Errorf("MarkDelivered(unknown) error = %v, want ErrOrderNotFound", err)
	}
}

func TestHistoryRecoversFromMalformedState(t *testing.T) {
	f := newFixture(t, monday)
	ctx := context.Background()

	f.store.Set(ctx, storage.KeyOrderHistory, "][ not json")

	history, err := f.orders.History(ctx)
	if err != nil {
		t.Fatalf("History must recover from malformed state, got: %v", err)
	}
	if len(history) != 0 {
		t.Error("malformed stored history must read as empty")
	}
}

func TestProperty_CheckoutTotalMatchesItemSum(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("order total equals the sum of frozen item prices times quantities", prop.ForAll(
		func(prices []int64, onFriday bool) bool {
			start := monday
			if onFriday {
				start = friday
			}
			f := newFixture(t, start)
			ctx := context.Background()

			if len(prices) == 0 {
				return true
			}
			for i, p := range prices {
				product := domain.Product{ID: int64(i + 1), Name: "Товар", Price: p}
				if _, err := f.carts.AddItem(ctx, product); err != nil {
					return false
				}
			}

			placed, err := f.orders.Checkout(ctx)
			if err != nil {
				return false
			}

			var sum int64
			for _, item := range placed.Items {
				sum += item.Price * int64(item.Quantity)
			}
			return sum == placed.Total
		},
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
