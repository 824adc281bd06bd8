package apitest

import (
	"cmp"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"lingo/internal/domain"
)

func itoa(n int) string { return strconv.Itoa(n) }

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, profileOf(a))
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in domain.Profile
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withAccount(r, func(a *account) {
		if in.Email != "" {
			a.user.Email = in.Email
		}
		if in.NativeLanguage != "" {
			a.user.NativeLanguage = in.NativeLanguage
		}
		if in.LearningLanguage != "" {
			a.user.LearningLanguage = in.LearningLanguage
		}
		writeJSON(w, http.StatusOK, profileOf(a))
	})
}

func profileOf(a *account) domain.Profile {
	return domain.Profile{
		Username:         a.user.Username,
		Email:            a.user.Email,
		NativeLanguage:   a.user.NativeLanguage,
		LearningLanguage: a.user.LearningLanguage,
	}
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, a.vocabulary)
	})
}

func (s *Server) handleUpdateVocabulary(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	var in domain.VocabularyPatch
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withAccount(r, func(a *account) {
		for i := range a.vocabulary {
			if a.vocabulary[i].ID == id {
				a.vocabulary[i].Translation = in.Translation
				writeJSON(w, http.StatusOK, a.vocabulary[i])
				return
			}
		}
		writeText(w, http.StatusNotFound, "Vocabulary item not found")
	})
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	level := domain.Level(r.URL.Query().Get("level"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	s.withAccount(r, func(a *account) {
		cards := []domain.Flashcard{}
		for _, v := range a.vocabulary {
			if level != "" && v.Level != level {
				continue
			}
			cards = append(cards, domain.Flashcard{ID: v.ID, Word: v.Word, Translation: v.Translation, Level: v.Level})
			if count > 0 && len(cards) == count {
				break
			}
		}
		writeJSON(w, http.StatusOK, cards)
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		msgs := 0
		for _, c := range a.conversations {
			msgs += len(c.Messages)
		}
		writeJSON(w, http.StatusOK, domain.Progress{
			ConversationsCount: len(a.conversations),
			MessagesCount:      msgs,
			VocabularyCount:    len(a.vocabulary),
			StreakDays:         3,
			QuizzesCompleted:   len(a.results),
		})
	})
}

func (s *Server) handleProgressStats(w http.ResponseWriter, r *http.Request) {
	if tr := domain.TimeRange(r.URL.Query().Get("timeRange")); tr != "" && !tr.Valid() {
		writeText(w, http.StatusBadRequest, "Invalid time range")
		return
	}
	s.withAccount(r, func(a *account) {
		byLevel := map[domain.Level]int{}
		mastered := 0
		for _, v := range a.vocabulary {
			byLevel[v.Level]++
			if v.IsMastered {
				mastered++
			}
		}
		stats := domain.ProgressStats{
			ActivityData: []domain.ActivityPoint{{Day: "Mon", Messages: 4, Minutes: 10}, {Day: "Tue", Messages: 2, Minutes: 6}},
			MasteryProgress: domain.Mastery{
				Total:      len(a.vocabulary),
				Mastered:   mastered,
				InProgress: len(a.vocabulary) - mastered,
			},
		}
		for _, lvl := range domain.Levels {
			stats.VocabularyByLevel = append(stats.VocabularyByLevel, domain.NamedCount{Name: string(lvl), Value: byLevel[lvl]})
		}
		for _, res := range a.results {
			stats.QuizResults = append(stats.QuizResults, domain.ScorePoint{Date: res.CompletedAt.Format("01/02"), Score: res.Score})
		}
		writeJSON(w, http.StatusOK, stats)
	})
}

func (s *Server) handleErrorAnalysis(w http.ResponseWriter, r *http.Request) {
	if tr := domain.TimeRange(r.URL.Query().Get("timeRange")); tr != "" && !tr.Valid() {
		writeText(w, http.StatusBadRequest, "Invalid time range")
		return
	}
	s.withAccount(r, func(a *account) {
		counts := map[string]int{}
		total := 0
		for _, c := range a.conversations {
			for _, m := range c.Messages {
				if m.ErrorAnalysis == nil {
					continue
				}
				for _, e := range m.ErrorAnalysis.Errors {
					counts[e.ErrorType]++
					total++
				}
			}
		}
		out := domain.ErrorAnalysis{TotalErrors: total}
		for name, n := range counts {
			out.ErrorCategories = append(out.ErrorCategories, domain.NamedCount{Name: name, Count: n})
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, a.goals)
	})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g domain.Goal
	if err := decode(r, &g); err != nil || strings.TrimSpace(g.Title) == "" || g.TargetValue <= 0 {
		writeText(w, http.StatusBadRequest, "Title and a positive target value are required")
		return
	}
	s.withAccount(r, func(a *account) {
		g.ID = s.nextID()
		g.IsCompleted = g.CurrentProgress >= g.TargetValue
		a.goals = append(a.goals, g)
		writeJSON(w, http.StatusCreated, g)
	})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	var in domain.Goal
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withAccount(r, func(a *account) {
		for i := range a.goals {
			if a.goals[i].ID == id {
				in.ID = id
				a.goals[i] = in
				writeJSON(w, http.StatusOK, in)
				return
			}
		}
		writeText(w, http.StatusNotFound, "Goal not found")
	})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	s.withAccount(r, func(a *account) {
		for i := range a.goals {
			if a.goals[i].ID == id {
				a.goals = append(a.goals[:i], a.goals[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeText(w, http.StatusNotFound, "Goal not found")
	})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, a.badges)
	})
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		out := make([]domain.Conversation, 0, len(a.conversations))
		for _, c := range a.conversations {
			c.Messages = nil
			out = append(out, c)
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	s.withAccount(r, func(a *account) {
		for _, c := range a.conversations {
			if c.ID == id {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		writeText(w, http.StatusNotFound, "Conversation not found")
	})
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var in domain.NewConversation
	if err := decode(r, &in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeText(w, http.StatusBadRequest, "Title is required")
		return
	}
	s.withAccount(r, func(a *account) {
		now := s.now().UTC()
		c := domain.Conversation{ID: s.nextID(), Title: in.Title, CreatedAt: &now, LastMessageAt: &now}
		if in.InitialMessage != "" {
			c.Messages = append(c.Messages, s.exchangeLocked(in.InitialMessage)...)
		}
		a.conversations = append(a.conversations, c)
		writeJSON(w, http.StatusCreated, c)
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	var in struct {
		Content string `json:"content"`
	}
	if err := decode(r, &in); err != nil || strings.TrimSpace(in.Content) == "" {
		writeText(w, http.StatusBadRequest, "Message content is required")
		return
	}
	s.withAccount(r, func(a *account) {
		for i := range a.conversations {
			if a.conversations[i].ID != id {
				continue
			}
			msgs := s.exchangeLocked(in.Content)
			a.conversations[i].Messages = append(a.conversations[i].Messages, msgs...)
			last := msgs[len(msgs)-1].CreatedAt
			a.conversations[i].LastMessageAt = &last
			writeJSON(w, http.StatusOK, msgs)
			return
		}
		writeText(w, http.StatusNotFound, "Conversation not found")
	})
}

// exchangeLocked records a learner message and a canned tutor reply.
func (s *Server) exchangeLocked(content string) []domain.Message {
	now := s.now().UTC()
	return []domain.Message{
		{ID: s.nextID(), Content: content, IsFromUser: true, CreatedAt: now, ErrorAnalysis: &domain.MessageAnalysis{}},
		{ID: s.nextID(), Content: "¡Muy bien! Sigue practicando.", CreatedAt: now},
	}
}

func (s *Server) handleQuizzesByLevel(w http.ResponseWriter, r *http.Request) {
	level := domain.Level(strings.ToUpper(chi.URLParam(r, "level")))
	if !level.Valid() {
		writeText(w, http.StatusBadRequest, "Unknown level")
		return
	}
	s.mu.Lock()
	out := []domain.Quiz{}
	for _, q := range s.quizzes {
		if q.quiz.Level == level {
			out = append(out, q.quiz)
		}
	}
	s.mu.Unlock()
	slices.SortFunc(out, func(a, b domain.Quiz) int {
		x, _ := a.ID.Int()
		y, _ := b.ID.Int()
		return cmp.Compare(x, y)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	s.mu.Lock()
	q, ok := s.quizzes[id]
	s.mu.Unlock()
	if !ok {
		writeText(w, http.StatusNotFound, "Quiz not found")
		return
	}
	writeJSON(w, http.StatusOK, q.quiz)
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var in domain.QuizOptions
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Level == "" {
		in.Level = "A1"
	}
	if !in.Level.Valid() {
		writeText(w, http.StatusBadRequest, "Unknown level")
		return
	}
	if in.QuizType == "" {
		in.QuizType = "Vocabulary"
	}
	s.mu.Lock()
	q := s.addQuizLocked(in.Level, in.QuizType)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var in domain.QuizSubmission
	if err := decode(r, &in); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.withAccount(r, func(a *account) {
		rec, ok := s.quizzes[in.QuizID]
		if !ok {
			writeText(w, http.StatusNotFound, "Quiz not found")
			return
		}
		given := make(map[int]string, len(in.Answers))
		for _, ans := range in.Answers {
			given[ans.QuestionID] = ans.Answer
		}

		res := domain.QuizResult{
			ID:             s.nextID(),
			QuizID:         rec.quiz.ID,
			QuizTitle:      rec.quiz.Title,
			QuizLevel:      rec.quiz.Level,
			TotalQuestions: len(rec.quiz.Questions),
			CompletedAt:    s.now().UTC(),
		}
		for _, q := range rec.quiz.Questions {
			qid, _ := q.ID.Int()
			correct := rec.answers[qid]
			ok := given[qid] == correct
			if ok {
				res.CorrectAnswers++
			}
			res.Answers = append(res.Answers, domain.AnswerResult{
				QuestionID:    q.ID,
				Question:      q.Question,
				UserAnswer:    given[qid],
				CorrectAnswer: correct,
				IsCorrect:     ok,
			})
		}
		if res.TotalQuestions > 0 {
			res.Score = int(math.Round(float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100))
		}
		a.results = append(a.results, res)
		writeJSON(w, http.StatusOK, res)
	})
}

func (s *Server) handleQuizResults(w http.ResponseWriter, r *http.Request) {
	s.withAccount(r, func(a *account) {
		writeJSON(w, http.StatusOK, a.results)
	})
}

func (s *Server) handleQuizResult(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(chi.URLParam(r, "id"))
	s.withAccount(r, func(a *account) {
		for _, res := range a.results {
			if res.ID == id {
				writeJSON(w, http.StatusOK, res)
				return
			}
		}
		writeText(w, http.StatusNotFound, "Result not found")
	})
}
