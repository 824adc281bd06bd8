package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingo/internal/api"
	"lingo/internal/domain"
	"lingo/internal/gateway"
	"lingo/internal/guard"
	"lingo/internal/view"
)

// Server is the local web companion. It serves JSON views over the session
// and the typed API client.
type Server struct {
	session  domain.SessionService
	api      *api.Client
	gatherer prometheus.Gatherer
	log      *slog.Logger
	now      func() time.Time
	md       *renderer
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option { return func(s *Server) { s.gatherer = g } }

// WithClock overrides the clock used for goal deadlines.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New builds the companion over sess and client. The gateway behind client
// should navigate through a Navigator so a rejected session redirects the
// request that hit it.
func New(sess domain.SessionService, client *api.Client, opts ...Option) *Server {
	s := &Server{
		session:  sess,
		api:      client,
		gatherer: prometheus.DefaultGatherer,
		log:      slog.Default(),
		now:      time.Now,
		md:       newRenderer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.handler.ServeHTTP(w, r) }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log), redirectScope)

	r.Get("/", s.handleRoot)
	r.Get("/login", s.handleLoginView)
	r.Post("/login", s.handleLogin)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware(s.session))

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/profile", s.handleProfile)
		r.Get("/vocabulary", s.handleVocabulary)
		r.Put("/vocabulary/{id}", s.handleUpdateVocabulary)
		r.Get("/flashcards", s.handleFlashcards)
		r.Get("/quiz/history", s.handleQuizHistory)
		r.Get("/quiz/results/{id}", s.handleQuizResult)
		r.Get("/conversations", s.handleConversations)
		r.Get("/conversations/{id}", s.handleConversation)
		r.Post("/conversations/{id}/messages", s.handleSendMessage)
		r.Get("/goals", s.handleGoals)
		r.Post("/goals/{id}/progress", s.handleGoalUpdate(view.IncrementProgress))
		r.Post("/goals/{id}/complete", s.handleGoalUpdate(view.CompleteGoal))
		r.Get("/badges", s.handleBadges)
		r.Get("/progress", s.handleProgress)
		r.Get("/errors", s.handleErrors)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Page not found"})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("web companion listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail answers a failed API call. A call that expired the session redirects
// to the route the gateway navigated to; other failures map onto a status
// with a message for the inline error banner.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if route, ok := RedirectFrom(r.Context()); ok {
		http.Redirect(w, r, route.String(), http.StatusSeeOther)
		return
	}
	if r.Context().Err() != nil {
		return
	}
	status := http.StatusBadGateway
	switch domain.KindOf(err) {
	case domain.KindBadRequest:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, errorBody{Error: gateway.UserMessage(err)})
}
