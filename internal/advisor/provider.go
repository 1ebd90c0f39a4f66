// Package advisor produces short financial tips from an opaque text service.
package advisor

import (
	"context"
	"errors"
)

var (
	// ErrEmptyReply is returned when a provider answers with no text
	ErrEmptyReply = errors.New("empty reply")
	// ErrNoProvider is returned when no text service is configured
	ErrNoProvider = errors.New("no advisor provider configured")
)

// Provider answers a free-form message with text
type Provider interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(ctx context.Context, message string) (string, error)

func (f ProviderFunc) Reply(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}
