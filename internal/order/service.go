// Package order converts a non-empty cart into an immutable order record
// and keeps the persisted order history.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"list-market/internal/cart"
	"list-market/internal/domain"
	"list-market/internal/pricing"
	"list-market/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dateLayout is the display timestamp stored on an order.
const dateLayout = "02.01.2006 15:04"

var (
	ErrEmptyCart     = errors.New("cannot checkout an empty cart")
	ErrOrderNotFound = errors.New("order not found")
)

// Service defines the order lifecycle operations. The history is
// append-only: there is no update or delete path besides the
// pending-to-delivered status transition.
type Service interface {
	// Checkout snapshots the cart into a new pending order, prepends it
	// to the history and clears the cart. Item prices are frozen at the
	// effective price of the checkout moment; later pricing changes
	// never touch a placed order.
	Checkout(ctx context.Context) (*domain.Order, error)
	// History returns all orders, newest first.
	History(ctx context.Context) ([]domain.Order, error)
	// MarkDelivered transitions a pending order to delivered. This is
	// the only exposed status transition; already-delivered orders are
	// left alone.
	MarkDelivered(ctx context.Context, orderID string) error
}

type service struct {
	store  storage.Store
	carts  cart.Service
	logger *zap.Logger
	now    func() time.Time
}

// New creates an order service. A nil now falls back to time.Now.
func New(store storage.Store, carts cart.Service, logger *zap.Logger, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		store:  store,
		carts:  carts,
		logger: logger,
		now:    now,
	}
}

func (s *service) Checkout(ctx context.Context) (*domain.Order, error) {
	current, err := s.carts.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.now()
	items := make([]domain.OrderItem, 0, len(current.Lines))
	for _, line := range current.Lines {
		items = append(items, domain.OrderItem{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    pricing.EffectivePrice(line.Product.Price, now),
			Image:    line.Product.Image,
		})
	}

	placed := &domain.Order{
		ID:     uuid.New().String(),
		Date:   now.Format(dateLayout),
		Items:  items,
		Total:  cart.TotalAt(current, now),
		Status: domain.OrderStatusPending,
	}

	history, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	history = append([]domain.Order{*placed}, history...)

	if err := s.saveHistory(ctx, history); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", placed.ID),
		zap.Int("items", len(placed.Items)),
		zap.Int64("total", placed.Total),
	)

	return placed, nil
}

func (s *service) History(ctx context.Context) ([]domain.Order, error) {
	return s.loadHistory(ctx)
}

func (s *service) MarkDelivered(ctx context.Context, orderID string) error {
	history, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}

	for i := range history {
		if history[i].ID != orderID {
			continue
		}
		if history[i].Status == domain.OrderStatusPending {
			history[i].Status = domain.OrderStatusDelivered
			return s.saveHistory(ctx, history)
		}
		return nil
	}

	return ErrOrderNotFound
}

// loadHistory reads the persisted ledger; missing or unparseable data
// recovers as an empty history.
func (s *service) loadHistory(ctx context.Context) ([]domain.Order, error) {
	raw, err := s.store.Get(ctx, storage.KeyOrderHistory)
	if err != nil {
		if err == storage.ErrKeyNotFound {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	var history []domain.Order
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.logger.Warn("Discarding malformed stored order history", zap.Error(err))
		return []domain.Order{}, nil
	}
	return history, nil
}

func (s *service) saveHistory(ctx context.Context, history []domain.Order) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode order history: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyOrderHistory, string(raw)); err != nil {
		return fmt.Errorf("failed to persist order history: %w", err)
	}
	return nil
}
