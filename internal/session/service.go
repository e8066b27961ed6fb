// Package session implements the authentication gate. Credential
// checking is intentionally trivial: any non-empty email and password
// are accepted and discarded. What matters downstream is the
// authenticated flag, which gates cart mutation.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"list-market/internal/domain"
	"list-market/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

const defaultDisplayName = "Пользователь"

var (
	ErrEmptyCredentials = errors.New("email and password must not be empty")
	ErrInvalidToken     = errors.New("invalid token")
)

// Claims represents the JWT claims of a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service defines the session gate operations.
type Service interface {
	// Login accepts any non-empty credentials, marks the session
	// authenticated with a persisted mirror and returns a signed session
	// token.
	Login(ctx context.Context, email, password string) (token string, sess *domain.Session, err error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*domain.Session, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type service struct {
	store        storage.Store
	jwtSecret    string
	accessExpiry time.Duration
	now          func() time.Time
}

// New creates a session service persisting through the given store.
func New(store storage.Store, jwtSecret string, accessExpiry time.Duration) Service {
	return &service{
		store:        store,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
		now:          time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, ErrEmptyCredentials
	}
	// The password is discarded here. There is no account database; the
	// submission itself is what authenticates.

	name, err := s.store.Get(ctx, storage.KeyUserName)
	if err != nil || name == "" {
		name = defaultDisplayName
	}

	if err := s.store.Set(ctx, storage.KeyIsAuthenticated, "true"); err != nil {
		return "", nil, fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserName, name); err != nil {
		return "", nil, fmt.Errorf("failed to persist user name: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyUserEmail, email); err != nil {
		return "", nil, fmt.Errorf("failed to persist user email: %w", err)
	}

	token, err := s.generateToken(email, name)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return token, &domain.Session{
		Authenticated: true,
		DisplayName:   name,
		Email:         email,
	}, nil
}

func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Set(ctx, storage.KeyIsAuthenticated, "false"); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Current rebuilds the session from its persisted mirror. Anything
// unparseable counts as signed out rather than an error.
func (s *service) Current(ctx context.Context) (*domain.Session, error) {
	authenticated, err := s.store.Get(ctx, storage.KeyIsAuthenticated)
	if err != nil && err != storage.ErrKeyNotFound {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	sess := &domain.Session{Authenticated: authenticated == "true"}
	if name, err := s.store.Get(ctx, storage.KeyUserName); err == nil {
		sess.DisplayName = name
	}
	if email, err := s.store.Get(ctx, storage.KeyUserEmail); err == nil {
		sess.Email = email
	}

	return sess, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) generateToken(email, name string) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
