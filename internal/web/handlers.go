package web

import (
	"encoding/json"
	"html/template"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lingo/internal/domain"
	"lingo/internal/guard"
	"lingo/internal/view"
)

const recentResults = 3

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, guard.Home(s.session.Snapshot()).String(), http.StatusSeeOther)
}

// ---------- authentication ----------

type loginView struct {
	Authenticated bool         `json:"authenticated"`
	IsLoading     bool         `json:"isLoading"`
	Error         string       `json:"error,omitempty"`
	User          *domain.User `json:"user,omitempty"`
}

func (s *Server) handleLoginView(w http.ResponseWriter, r *http.Request) {
	sess := s.session.Snapshot()
	v := loginView{Authenticated: sess.IsAuthenticated(), IsLoading: sess.IsLoading, Error: sess.LastError}
	if sess.IsAuthenticated() {
		v.User = &sess.User
	}
	writeJSON(w, http.StatusOK, v)
}

type authResponse struct {
	User     domain.User  `json:"user"`
	Redirect domain.Route `json:"redirect"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	u, err := s.session.Login(r.Context(), creds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: s.lastError(err)})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: u, Redirect: domain.RouteDashboard})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var nu domain.NewUser
	if err := json.NewDecoder(r.Body).Decode(&nu); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	u, err := s.session.Register(r.Context(), nu)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: s.lastError(err)})
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: u, Redirect: domain.RouteDashboard})
}

func (s *Server) lastError(err error) string {
	if msg := s.session.Snapshot().LastError; msg != "" {
		return msg
	}
	return err.Error()
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(); err != nil {
		s.log.Error("logout failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to log out."})
		return
	}
	http.Redirect(w, r, domain.RouteLogin.String(), http.StatusSeeOther)
}

// ---------- dashboard and profile ----------

type dashboardView struct {
	User          domain.User         `json:"user"`
	Progress      domain.Progress     `json:"progress"`
	RecentResults []domain.QuizResult `json:"recentResults"`
	AverageScore  int                 `json:"averageScore"`
	Badges        view.BadgeSummary   `json:"badges"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	progress, err := s.api.Progress(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	results, err := s.api.QuizResults(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	badges, err := s.api.Badges(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardView{
		User:          s.session.Snapshot().User,
		Progress:      progress,
		RecentResults: results[:min(len(results), recentResults)],
		AverageScore:  view.AverageScore(results),
		Badges:        view.SummarizeBadges(badges),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.api.Profile(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	progress, err := s.api.Progress(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": profile, "progress": progress})
}

// ---------- vocabulary ----------

type vocabularyView struct {
	view.Page[domain.VocabularyItem]
	HasPrev bool                 `json:"hasPrev"`
	HasNext bool                 `json:"hasNext"`
	Level   domain.Level         `json:"level,omitempty"`
	Search  string               `json:"q,omitempty"`
	Sort    view.VocabularySort  `json:"sort"`
	Stats   view.VocabularyStats `json:"stats"`
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	items, err := s.api.Vocabulary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := view.VocabularyFilter{Level: domain.Level(q.Get("level")), Search: q.Get("q")}
	key := view.VocabularySort(q.Get("sort"))
	if key == "" {
		key = view.SortWord
	}

	shown := filter.Apply(items)
	view.SortVocabulary(shown, key)
	page := view.Paginate(shown, queryInt(r, "page", 1), view.DefaultPerPage)

	writeJSON(w, http.StatusOK, vocabularyView{
		Page:    page,
		HasPrev: page.HasPrev(),
		HasNext: page.HasNext(),
		Level:   filter.Level,
		Search:  filter.Search,
		Sort:    key,
		Stats:   view.Stats(items),
	})
}

func (s *Server) handleUpdateVocabulary(w http.ResponseWriter, r *http.Request) {
	var patch domain.VocabularyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	item, err := s.api.UpdateVocabularyItem(r.Context(), domain.ID(chi.URLParam(r, "id")), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleFlashcards returns a shuffled deck. A seed query parameter makes the
// order reproducible.
func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	level := domain.Level(r.URL.Query().Get("level"))
	cards, err := s.api.Flashcards(r.Context(), level, queryInt(r, "count", 10))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	seed := uint64(s.now().UnixNano())
	if v, err := strconv.ParseUint(r.URL.Query().Get("seed"), 10, 64); err == nil {
		seed = v
	}
	deck := view.NewDeck(cards, rand.New(rand.NewPCG(seed, seed)))

	order := make([]domain.Flashcard, 0, deck.Len())
	for ok := deck.Len() > 0; ok; ok = deck.Next() {
		c, _ := deck.Current()
		order = append(order, c)
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": order, "total": deck.Len()})
}

// ---------- quizzes ----------

type quizHistoryView struct {
	Results      []domain.QuizResult  `json:"results"`
	AverageScore int                  `json:"averageScore"`
	ByLevel      map[domain.Level]int `json:"byLevel"`
}

func (s *Server) handleQuizHistory(w http.ResponseWriter, r *http.Request) {
	results, err := s.api.QuizResults(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizHistoryView{
		Results:      results,
		AverageScore: view.AverageScore(results),
		ByLevel:      view.CountByLevel(results),
	})
}

type quizResultView struct {
	domain.QuizResult
	Color view.Color `json:"color"`
	Text  string     `json:"text"`
	Tip   string     `json:"tip"`
}

func (s *Server) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.api.QuizResult(r.Context(), domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quizResultView{
		QuizResult: res,
		Color:      view.ScoreColor(res.Score),
		Text:       view.ScoreText(res.Score),
		Tip:        view.ProgressTip(res.Score),
	})
}

// ---------- conversations ----------

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	convs, err := s.api.Conversations(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convs)
}

type renderedMessage struct {
	domain.Message
	HTML template.HTML `json:"html"`
}

type conversationView struct {
	ID       domain.ID         `json:"id"`
	Title    string            `json:"title"`
	Messages []renderedMessage `json:"messages"`
}

func (s *Server) renderMessages(msgs []domain.Message) []renderedMessage {
	out := make([]renderedMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, renderedMessage{Message: m, HTML: s.md.Render(m.Content)})
	}
	return out
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	c, err := s.api.Conversation(r.Context(), domain.ID(chi.URLParam(r, "id")))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conversationView{ID: c.ID, Title: c.Title, Messages: s.renderMessages(c.Messages)})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}
	msgs, err := s.api.SendMessage(r.Context(), domain.ID(chi.URLParam(r, "id")), in.Content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.renderMessages(msgs))
}

// ---------- goals, badges, progress ----------

type goalView struct {
	domain.Goal
	Percent       int `json:"percent"`
	DaysRemaining int `json:"daysRemaining"`
}

func (s *Server) goalView(g domain.Goal) goalView {
	return goalView{Goal: g, Percent: view.ProgressPercent(g), DaysRemaining: view.DaysRemaining(s.now(), g.EndDate)}
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.api.Goals(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]goalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, s.goalView(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGoalUpdate applies change to the goal named in the path. Completed
// goals are left alone and answer 409.
func (s *Server) handleGoalUpdate(change func(domain.Goal) domain.Goal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := domain.ID(chi.URLParam(r, "id"))
		goals, err := s.api.Goals(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		for _, g := range goals {
			if g.ID != id {
				continue
			}
			next, err := view.UpdateGoal(g, change)
			if err != nil {
				writeJSON(w, http.StatusConflict, errorBody{Error: "Goal already completed"})
				return
			}
			updated, err := s.api.UpdateGoal(r.Context(), id, next)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, s.goalView(updated))
			return
		}
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Goal not found"})
	}
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.api.Badges(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"badges": badges, "summary": view.SummarizeBadges(badges)})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api.ProgressStats(r.Context(), timeRange(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.api.ErrorAnalysis(r.Context(), timeRange(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// ---------- helpers ----------

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return n
}

func timeRange(r *http.Request) domain.TimeRange {
	tr := domain.TimeRange(r.URL.Query().Get("range"))
	if !tr.Valid() {
		return domain.RangeMonth
	}
	return tr
}
