// Package storage provides the durable key-value port the services
// persist through, with redis, postgres and in-memory backends.
//
// Each component writes under its own key so backends need no locking
// beyond per-key atomicity:
//
//	cart            serialized cart ledger
//	orderHistory    serialized order history, newest first
//	isAuthenticated "true" / "false"
//	userName        display name
//	userEmail       email
//	theme           "light" / "dark"
//	customTheme     serialized custom theme
package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Well-known keys. Writers must stay on their own key.
const (
	KeyCart            = "cart"
	KeyOrderHistory    = "orderHistory"
	KeyIsAuthenticated = "isAuthenticated"
	KeyUserName        = "userName"
	KeyUserEmail       = "userEmail"
	KeyTheme           = "theme"
	KeyCustomTheme     = "customTheme"
)

// Store is the durable key-value port. Values are strings, JSON-encoded
// where structured. A missing key yields ErrKeyNotFound, never an empty
// value.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
