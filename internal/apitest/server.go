package apitest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"lingo/internal/crypto"
	"lingo/internal/domain"
)

// Recorded is one request seen by the server.
type Recorded struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	user          domain.User
	password      string
	vocabulary    []domain.VocabularyItem
	goals         []domain.Goal
	conversations []domain.Conversation
	results       []domain.QuizResult
	badges        []domain.Badge
}

type fault struct {
	status int
	body   string
}

// Server is an in-memory implementation of the lingo API contract.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account
	revoked  map[string]bool
	faults   map[string]fault
	quizzes  map[domain.ID]quizRecord
	requests []Recorded
	seq      int

	key      []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      *slog.Logger
	handler  http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option { return func(s *Server) { s.tokenTTL = d } }

// WithClock overrides the server's time source.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.log = l } }

// New returns an empty server. Use AddUser to seed accounts.
func New(opts ...Option) *Server {
	key, err := crypto.RandomBytes(32)
	if err != nil {
		panic(fmt.Errorf("apitest: signing key: %w", err))
	}
	s := &Server{
		accounts: make(map[string]*account),
		revoked:  make(map[string]bool),
		faults:   make(map[string]fault),
		quizzes:  make(map[domain.ID]quizRecord),
		key:      key,
		tokenTTL: 24 * time.Hour,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seedQuizzes()
	s.handler = s.routes()
	return s
}

// ServeHTTP serves the API under /api.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.handler.ServeHTTP(w, r) }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.inject)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/current", s.handleCurrentUser)
			r.Get("/users/profile", s.handleProfile)
			r.Put("/users/profile", s.handleUpdateProfile)
			r.Get("/users/vocabulary", s.handleVocabulary)
			r.Get("/users/progress", s.handleProgress)
			r.Get("/users/progress/stats", s.handleProgressStats)
			r.Get("/users/errors", s.handleErrorAnalysis)
			r.Get("/users/goals", s.handleGoals)
			r.Post("/users/goals", s.handleCreateGoal)
			r.Put("/users/goals/{id}", s.handleUpdateGoal)
			r.Delete("/users/goals/{id}", s.handleDeleteGoal)
			r.Get("/users/badges", s.handleBadges)

			r.Put("/vocabulary/{id}", s.handleUpdateVocabulary)
			r.Get("/vocabulary/flashcards", s.handleFlashcards)

			r.Get("/conversation", s.handleConversations)
			r.Post("/conversation", s.handleCreateConversation)
			r.Get("/conversation/{id}", s.handleConversation)
			r.Post("/conversation/{id}/messages", s.handleSendMessage)

			r.Get("/quiz/levels/{level}", s.handleQuizzesByLevel)
			r.Post("/quiz/generate", s.handleGenerateQuiz)
			r.Post("/quiz/submit", s.handleSubmitQuiz)
			r.Get("/quiz/results", s.handleQuizResults)
			r.Get("/quiz/results/{id}", s.handleQuizResult)
			r.Get("/quiz/{id}", s.handleQuiz)
		})
	})
	return r
}

// AddUser creates an account with fixture data and returns its snapshot.
func (s *Server) AddUser(username, password string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(domain.NewUser{
		Username:         username,
		Email:            username + "@example.com",
		Password:         password,
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
	}).user
}

// IssueToken signs a token for username valid for ttl (negative ttl yields an
// already expired token).
func (s *Server) IssueToken(username string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Revoke makes token fail authentication from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	s.revoked[token] = true
	s.mu.Unlock()
}

// Fail forces every request matching method and path (under /api) to answer
// with status and body until Heal is called.
func (s *Server) Fail(method, path string, status int, body string) {
	s.mu.Lock()
	s.faults[method+" "+path] = fault{status: status, body: body}
	s.mu.Unlock()
}

// Heal removes all injected faults.
func (s *Server) Heal() {
	s.mu.Lock()
	s.faults = make(map[string]fault)
	s.mu.Unlock()
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// ---------- middleware ----------

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		s.mu.Unlock()
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.faults[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]
		s.mu.Unlock()
		if ok {
			writeText(w, f.status, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeText(w, http.StatusUnauthorized, "")
			return
		}
		username, err := s.verify(token)
		if err != nil {
			s.log.Debug("rejected token", "err", err)
			writeText(w, http.StatusUnauthorized, "")
			return
		}
		s.mu.Lock()
		_, exists := s.accounts[username]
		s.mu.Unlock()
		if !exists {
			writeText(w, http.StatusUnauthorized, "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, username)))
	})
}

func (s *Server) verify(token string) (string, error) {
	s.mu.Lock()
	revoked := s.revoked[token]
	s.mu.Unlock()
	if revoked {
		return "", errors.New("token revoked")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// withAccount runs fn with the caller's account under the server lock.
func (s *Server) withAccount(r *http.Request, fn func(a *account)) {
	username, _ := r.Context().Value(ctxKey{}).(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.accounts[username])
}

func (s *Server) nextID() domain.ID {
	s.seq++
	return domain.ID(fmt.Sprint(s.seq))
}

// ---------- helpers ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
