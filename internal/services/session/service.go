package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lingo/internal/domain"
	"lingo/internal/gateway"
)

const (
	msgLoginFailed    = "Failed to login. Please try again."
	msgRegisterFailed = "Failed to register. Please try again."
)

// ErrMissingToken is returned when login or register succeeds at the HTTP
// level but the response carries no token.
var ErrMissingToken = errors.New("auth response carried no token")

// Policy decides how a stored session is treated at startup.
type Policy int

const (
	// PolicyTrust adopts a stored token and user snapshot without asking the
	// server; the first protected call settles whether it is still valid.
	PolicyTrust Policy = iota
	// PolicyVerify checks the token's expiry claim and then asks the server
	// for the current user before adopting the session.
	PolicyVerify
)

func (p Policy) String() string {
	if p == PolicyVerify {
		return "verify"
	}
	return "trust"
}

// ParsePolicy accepts "trust" or "verify" (case-insensitive); empty is trust.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trust":
		return PolicyTrust, nil
	case "verify":
		return PolicyVerify, nil
	}
	return PolicyTrust, fmt.Errorf("unknown session policy %q", s)
}

// Service owns the authentication state machine and is the only writer of
// the durable "token" and "user" keys outside the gateway's 401 teardown.
//
// States move Unknown -> Authenticated | Unauthenticated on Reconcile,
// Unauthenticated -> Authenticated on Login/Register, and back to
// Unauthenticated on Logout or when the server rejects the token.
type Service struct {
	gw      domain.Gateway
	storage domain.Storage
	policy  Policy
	log     *slog.Logger
	now     func() time.Time

	mu   sync.RWMutex
	sess domain.Session

	subMu   sync.Mutex
	subs    map[int]func(domain.Session)
	nextSub int
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy selects the startup policy.
func WithPolicy(p Policy) Option { return func(s *Service) { s.policy = p } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New returns a Service in the Unknown state. Call Reconcile before relying
// on the session.
func New(gw domain.Gateway, storage domain.Storage, opts ...Option) *Service {
	s := &Service{
		gw:      gw,
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
		sess:    domain.Session{State: domain.StateUnknown, IsLoading: true},
		subs:    make(map[int]func(domain.Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured startup policy.
func (s *Service) Policy() Policy { return s.policy }

// Login authenticates with username and password.
//
// On success the token and the user snapshot are persisted and the session
// becomes Authenticated. On failure the session becomes Unauthenticated and
// LastError holds the server's message or a generic one.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	s.begin()
	var u domain.User
	err := s.gw.Post(ctx, "/auth/login", creds, &u)
	return s.settle(ctx, "login", u, err, msgLoginFailed)
}

// Register creates an account and signs in with it.
func (s *Service) Register(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	s.begin()
	var u domain.User
	err := s.gw.Post(ctx, "/auth/register", nu, &u)
	return s.settle(ctx, "register", u, err, msgRegisterFailed)
}

// Logout clears the durable session and returns to Unauthenticated. It makes
// no network call and is idempotent.
func (s *Service) Logout() error {
	err := s.storage.Delete(domain.KeyToken, domain.KeyUser)
	s.update(func(sess *domain.Session) {
		sess.State = domain.StateUnauthenticated
		sess.User = domain.User{}
		sess.Token = ""
		sess.IsLoading = false
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ClearError resets LastError and nothing else.
func (s *Service) ClearError() {
	s.update(func(sess *domain.Session) { sess.LastError = "" })
}

// Expire moves the in-memory session to Unauthenticated after the gateway
// has already cleared durable storage for a rejected token.
func (s *Service) Expire(ctx context.Context) {
	s.log.InfoContext(ctx, "session expired")
	s.update(func(sess *domain.Session) {
		sess.State = domain.StateUnauthenticated
		sess.User = domain.User{}
		sess.Token = ""
		sess.IsLoading = false
	})
}

// Reconcile restores the session from durable storage at startup.
//
// A token and a readable user snapshot both present yield Authenticated;
// anything else yields Unauthenticated. Under PolicyVerify the token is
// checked first (see verify).
func (s *Service) Reconcile(ctx context.Context) error {
	token, hasToken, err := s.storage.Get(domain.KeyToken)
	if err != nil {
		s.setAnonymous("")
		return fmt.Errorf("read token: %w", err)
	}
	raw, hasUser, err := s.storage.Get(domain.KeyUser)
	if err != nil {
		s.setAnonymous("")
		return fmt.Errorf("read user: %w", err)
	}
	if !hasToken || !hasUser || token == "" {
		s.setAnonymous("")
		return nil
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("stored user snapshot unreadable", "err", err)
		s.setAnonymous("")
		return nil
	}

	if s.policy == PolicyVerify {
		return s.verify(ctx, token, u)
	}
	s.setAuthenticated(token, u)
	return nil
}

// verify runs the verify-on-read policy: an expired JWT is discarded without
// a network call; otherwise GET /users/current decides. A 401 leaves the
// session Unauthenticated, and any other failure falls back to trusting the
// stored session.
func (s *Service) verify(ctx context.Context, token string, stored domain.User) error {
	if exp, ok := tokenExpiry(token); ok && !exp.After(s.now()) {
		s.log.Info("stored token expired", "expired_at", exp)
		if err := s.storage.Delete(domain.KeyToken, domain.KeyUser); err != nil {
			s.log.Error("clear session", "err", err)
		}
		s.setAnonymous("")
		return nil
	}

	var cur domain.User
	err := s.gw.Get(ctx, "/users/current", &cur)
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.update(func(sess *domain.Session) { sess.IsLoading = false })
		return ctxErr
	}
	switch {
	case err == nil:
		cur.Token = token
		cur.Raw = stored.Raw
		if cur.Username == "" {
			cur = stored
		}
		s.setAuthenticated(token, cur)
	case errors.Is(err, domain.ErrUnauthorized):
		s.setAnonymous("")
	default:
		s.log.Warn("session verification unavailable, trusting stored session", "err", err)
		s.setAuthenticated(token, stored)
	}
	return nil
}

// Snapshot returns a copy of the current session.
func (s *Service) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// State returns the current AuthState.
func (s *Service) State() domain.AuthState { return s.Snapshot().State }

// User returns the signed-in user, if any.
func (s *Service) User() (domain.User, bool) {
	sess := s.Snapshot()
	return sess.User, sess.IsAuthenticated()
}

// Subscribe registers fn to receive the session after every change. The
// returned function unregisters it.
func (s *Service) Subscribe(fn func(domain.Session)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Service) begin() {
	s.update(func(sess *domain.Session) {
		sess.IsLoading = true
		sess.LastError = ""
	})
}

// settle applies the outcome of login or register. Nothing is committed
// once ctx is done.
func (s *Service) settle(ctx context.Context, op string, u domain.User, err error, fallback string) (domain.User, error) {
	if err == nil && u.Token == "" {
		err = ErrMissingToken
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.update(func(sess *domain.Session) { sess.IsLoading = false })
		if err == nil {
			err = ctxErr
		}
		return domain.User{}, err
	}
	if err != nil {
		msg := gateway.Message(err, fallback)
		s.log.Info(op+" failed", "err", err)
		s.setAnonymous(msg)
		return domain.User{}, err
	}

	if err := s.persist(u); err != nil {
		s.setAnonymous(fallback)
		return domain.User{}, err
	}
	s.log.Info(op+" succeeded", "username", u.Username)
	s.setAuthenticated(u.Token, u)
	return u, nil
}

func (s *Service) persist(u domain.User) error {
	snap, err := u.Snapshot()
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	if err := s.storage.Set(domain.KeyToken, u.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := s.storage.Set(domain.KeyUser, string(snap)); err != nil {
		if derr := s.storage.Delete(domain.KeyToken); derr != nil {
			s.log.Error("roll back token", "err", derr)
		}
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

func (s *Service) setAuthenticated(token string, u domain.User) {
	s.update(func(sess *domain.Session) {
		sess.State = domain.StateAuthenticated
		sess.User = u
		sess.Token = token
		sess.IsLoading = false
		sess.LastError = ""
	})
}

func (s *Service) setAnonymous(lastError string) {
	s.update(func(sess *domain.Session) {
		sess.State = domain.StateUnauthenticated
		sess.User = domain.User{}
		sess.Token = ""
		sess.IsLoading = false
		if lastError != "" {
			sess.LastError = lastError
		}
	})
}

func (s *Service) update(fn func(*domain.Session)) {
	s.mu.Lock()
	fn(&s.sess)
	snap := s.sess
	s.mu.Unlock()

	s.subMu.Lock()
	subs := make([]func(domain.Session), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.subMu.Unlock()
	for _, f := range subs {
		f(snap)
	}
}

// tokenExpiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report ok=false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var _ domain.SessionService = (*Service)(nil)
