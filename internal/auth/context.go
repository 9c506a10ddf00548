package auth

import (
	"context"
	"errors"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeAdmin    UserType = "admin"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidContext = errors.New("invalid authentication context")
)

// Context identifies the authenticated caller. It is passed explicitly
// into every component entry point instead of living in request-global
// state.
type Context struct {
	UserID   int64
	UserType UserType
}

func (c Context) Validate() error {
	if c.UserID <= 0 {
		return ErrInvalidContext
	}
	if c.UserType != UserTypeCustomer && c.UserType != UserTypeAdmin {
		return ErrInvalidContext
	}
	return nil
}

type ctxKey struct{}

// WithContext attaches the authenticated user to a request context.
func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// FromContext extracts the authenticated user set by the auth middleware.
func FromContext(ctx context.Context) (Context, error) {
	ac, ok := ctx.Value(ctxKey{}).(Context)
	if !ok {
		return Context{}, ErrUnauthorized
	}
	if err := ac.Validate(); err != nil {
		return Context{}, err
	}
	return ac, nil
}
