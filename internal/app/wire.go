package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"lingo/internal/api"
	"lingo/internal/domain"
	"lingo/internal/gateway"
	sessionsvc "lingo/internal/services/session"
	"lingo/internal/store"
)

// Version is reported in the User-Agent header.
var Version = "dev"

// Wire bundles the storage, gateway, services and clients for the CLI and
// the web companion.
type Wire struct {
	Config   *Config
	Logger   *slog.Logger
	Storage  domain.Storage
	Gateway  *gateway.Client
	Session  *sessionsvc.Service
	API      *api.Client
	Registry *prometheus.Registry
	HTTP     *http.Client

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. The session is left in
// the Unknown state; call Start to reconcile it.
func NewWire(cfg *Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := sessionsvc.ParsePolicy(cfg.Session.Policy)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.LogOutput, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	w := &Wire{Config: cfg, Logger: logger}

	// Durable session storage
	if w.Storage, err = w.openStorage(); err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	w.HTTP = cfg.HTTP
	if w.HTTP == nil {
		w.HTTP = &http.Client{Timeout: cfg.Timeout}
	}

	w.Registry = prometheus.NewRegistry()
	w.Gateway = gateway.New(cfg.APIURL, w.Storage,
		gateway.WithHTTPClient(w.HTTP),
		gateway.WithNavigator(cfg.Navigator),
		gateway.WithLogger(logger.With("component", "gateway")),
		gateway.WithMetrics(gateway.NewCollector(w.Registry)),
		gateway.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		gateway.WithUserAgent("lingo/"+Version),
	)

	// High-level services
	w.Session = sessionsvc.New(w.Gateway, w.Storage,
		sessionsvc.WithPolicy(policy),
		sessionsvc.WithLogger(logger.With("component", "session")),
	)
	w.Gateway.OnUnauthorized(w.Session.Expire)
	w.API = api.New(w.Gateway)

	return w, nil
}

func (w *Wire) openStorage() (domain.Storage, error) {
	cfg := w.Config
	if cfg.Storage != StorageMemory {
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, fmt.Errorf("create home: %w", err)
		}
	}
	switch cfg.Storage {
	case StorageSQLite:
		s, err := store.NewSQLiteStore(filepath.Join(cfg.Home, "session.db"))
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, s.Close)
		return s, nil
	case StorageMemory:
		return store.NewMemoryStore(), nil
	default:
		var opts []store.FileOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		return store.NewFileStore(cfg.Home, opts...), nil
	}
}

// Start runs the startup reconciliation of the session.
func (w *Wire) Start(ctx context.Context) error {
	if err := w.Session.Reconcile(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	w.Logger.Debug("session restored", "state", w.Session.State().String(), "policy", w.Session.Policy().String())
	return nil
}

// Close releases storage handles.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
