package web

import (
	"context"
	"sync"

	"lingo/internal/domain"
)

type redirectKey struct{}

// redirectSlot holds the route a request was sent to by the gateway.
type redirectSlot struct {
	mu    sync.Mutex
	route domain.Route
}

func (s *redirectSlot) set(r domain.Route) {
	s.mu.Lock()
	s.route = r
	s.mu.Unlock()
}

func (s *redirectSlot) get() domain.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

func withRedirectSlot(ctx context.Context) (context.Context, *redirectSlot) {
	slot := &redirectSlot{}
	return context.WithValue(ctx, redirectKey{}, slot), slot
}

// RedirectFrom returns the route recorded for the request carrying ctx, if
// the gateway asked to navigate while serving it.
func RedirectFrom(ctx context.Context) (domain.Route, bool) {
	slot, ok := ctx.Value(redirectKey{}).(*redirectSlot)
	if !ok {
		return "", false
	}
	r := slot.get()
	return r, r != ""
}

// Navigator routes navigation to the HTTP request that triggered it. Calls
// made outside a request served by this package go to Fallback, when set.
type Navigator struct {
	Fallback domain.Navigator
}

var _ domain.Navigator = Navigator{}

// Navigate records route on the request context or forwards to Fallback.
func (n Navigator) Navigate(ctx context.Context, route domain.Route) {
	if slot, ok := ctx.Value(redirectKey{}).(*redirectSlot); ok {
		slot.set(route)
		return
	}
	if n.Fallback != nil {
		n.Fallback.Navigate(ctx, route)
	}
}
