// Package session resolves caller identity from HTTP requests.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	// ErrNoSession is returned when a request carries no credentials.
	ErrNoSession = errors.New("no session")

	// ErrInvalidToken is returned when a token is invalid.
	ErrInvalidToken = errors.New("invalid token")
)

// Session is an authenticated caller.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}

// Provider resolves the session of a request.
type Provider interface {
	GetSession(r *http.Request) (Session, error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(r *http.Request) (Session, error)

// GetSession implements Provider.
func (f ProviderFunc) GetSession(r *http.Request) (Session, error) {
	return f(r)
}

// ContextKey is the context key for the session.
var ContextKey = &struct{ string }{"session"}

// FromContext returns the session from the context.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ContextKey).(Session)
	return s, ok
}

// WithContext returns a new context with the session.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ContextKey, s)
}
