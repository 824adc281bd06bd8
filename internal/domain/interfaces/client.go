package interfaces

import (
	"context"

	domaintypes "lingo/internal/domain/types"
)

// Gateway issues authenticated JSON requests against the API base address.
// A nil out discards the response body.
type Gateway interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Navigator switches the active view. It is how the gateway sends the user
// back to the login view after an authentication failure.
type Navigator interface {
	Navigate(ctx context.Context, route domaintypes.Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route domaintypes.Route)

// Navigate calls f(ctx, route).
func (f NavigatorFunc) Navigate(ctx context.Context, route domaintypes.Route) { f(ctx, route) }
