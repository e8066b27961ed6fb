// Package cart implements the pre-checkout ledger of selected products.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"list-market/internal/domain"
	"list-market/internal/pricing"
	"list-market/internal/session"
	"list-market/internal/storage"

	"go.uber.org/zap"
)

var ErrUnauthorized = errors.New("cart mutation requires an authenticated session")

// Service defines the cart ledger operations.
type Service interface {
	Get(ctx context.Context) (*domain.Cart, error)
	// AddItem appends a line for the product, or bumps an existing line
	// by one. Requires an authenticated session; otherwise fails with
	// ErrUnauthorized and leaves the cart untouched.
	AddItem(ctx context.Context, product domain.Product) (*domain.Cart, error)
	// SetQuantity sets the line quantity. Below 1 removes the line. An
	// unknown product id is a no-op, not an error, so rapid double
	// clicks in the UI stay idempotent.
	SetQuantity(ctx context.Context, productID int64, quantity int) (*domain.Cart, error)
	// Total is recomputed on every call: the discount depends on the
	// wall-clock day and must stay correct across a midnight boundary.
	Total(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}

type service struct {
	store    storage.Store
	sessions session.Service
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a cart service. A nil now falls back to time.Now.
func New(store storage.Store, sessions session.Service, logger *zap.Logger, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		store:    store,
		sessions: sessions,
		logger:   logger,
		now:      now,
	}
}

func (s *service) Get(ctx context.Context) (*domain.Cart, error) {
	return s.load(ctx)
}

func (s *service) AddItem(ctx context.Context, product domain.Product) (*domain.Cart, error) {
	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !sess.Authenticated {
		return nil, ErrUnauthorized
	}

	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(product.ID); i >= 0 {
		cart.Lines[i].Quantity++
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{Product: product, Quantity: 1})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) SetQuantity(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}

	if quantity < 1 {
		cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
	} else {
		cart.Lines[i].Quantity = quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Total(ctx context.Context) (int64, error) {
	cart, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return TotalAt(cart, s.now()), nil
}

func (s *service) Clear(ctx context.Context) error {
	return s.save(ctx, &domain.Cart{})
}

// TotalAt derives the cart total at the given moment using the effective
// price of every line.
func TotalAt(cart *domain.Cart, now time.Time) int64 {
	var total int64
	for _, line := range cart.Lines {
		total += pricing.EffectivePrice(line.Product.Price, now) * int64(line.Quantity)
	}
	return total
}

// load reads the persisted ledger. A missing or unparseable value
// recovers as an empty cart; stored garbage must never take the
// storefront down.
func (s *service) load(ctx context.Context) (*domain.Cart, error) {
	raw, err := s.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if err == storage.ErrKeyNotFound {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		s.logger.Warn("Discarding malformed stored cart", zap.Error(err))
		return &domain.Cart{}, nil
	}
	return cart, nil
}

func (s *service) save(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
