package apitest

import (
	"net/http"
	"strings"

	"lingo/internal/domain"
)

type authResponse struct {
	ID               domain.ID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	NativeLanguage   string    `json:"nativeLanguage"`
	LearningLanguage string    `json:"learningLanguage"`
	Token            string    `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[in.Username]
	s.mu.Unlock()
	if !ok || a.password != in.Password {
		writeText(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	s.respondWithToken(w, http.StatusOK, a)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username         string `json:"username"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		NativeLanguage   string `json:"nativeLanguage"`
		LearningLanguage string `json:"learningLanguage"`
	}
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		writeText(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[in.Username]; exists {
		s.mu.Unlock()
		writeText(w, http.StatusBadRequest, "Username is already taken")
		return
	}
	a := s.addUserLocked(newUserFrom(in.Username, in.Email, in.Password, in.NativeLanguage, in.LearningLanguage))
	s.mu.Unlock()

	s.respondWithToken(w, http.StatusOK, a)
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, a *account) {
	token, err := s.IssueToken(a.user.Username, s.tokenTTL)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, status, authResponse{
		ID:               a.user.ID,
		Username:         a.user.Username,
		Email:            a.user.Email,
		NativeLanguage:   a.user.NativeLanguage,
		LearningLanguage: a.user.LearningLanguage,
		Token:            token,
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, a.user)
	})
}
