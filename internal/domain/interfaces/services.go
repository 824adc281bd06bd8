package interfaces

import (
	"context"

	domaintypes "lingo/internal/domain/types"
)

// SessionSource exposes a read-only copy of the current session.
type SessionSource interface {
	Snapshot() domaintypes.Session
}

// SessionService owns the authentication state machine.
type SessionService interface {
	SessionSource

	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.User, error)
	Register(ctx context.Context, user domaintypes.NewUser) (domaintypes.User, error)
	Logout() error
	ClearError()
	Reconcile(ctx context.Context) error
}
