package apitest

import (
	"time"

	"lingo/internal/domain"
)

type quizRecord struct {
	quiz    domain.Quiz
	answers map[int]string // question id -> correct option
}

func newUserFrom(username, email, password, native, learning string) domain.NewUser {
	return domain.NewUser{
		Username:         username,
		Email:            email,
		Password:         password,
		NativeLanguage:   native,
		LearningLanguage: learning,
	}
}

// addUserLocked creates an account seeded with vocabulary, goals, badges
// and history. The caller holds s.mu.
func (s *Server) addUserLocked(nu domain.NewUser) *account {
	now := s.now().UTC()
	seen := now.Add(-48 * time.Hour)

	a := &account{
		user: domain.User{
			ID:               s.nextID(),
			Username:         nu.Username,
			Email:            nu.Email,
			NativeLanguage:   nu.NativeLanguage,
			LearningLanguage: nu.LearningLanguage,
		},
		password: nu.Password,
	}

	words := []struct {
		word, translation string
		level             domain.Level
		mastered          bool
	}{
		{"hola", "hello", "A1", true},
		{"gracias", "thank you", "A1", true},
		{"manzana", "apple", "A1", false},
		{"biblioteca", "library", "A2", false},
		{"aprender", "to learn", "A2", true},
		{"desarrollar", "to develop", "B1", false},
		{"sin embargo", "however", "B2", false},
		{"aprovechar", "to take advantage of", "C1", false},
	}
	for _, w := range words {
		a.vocabulary = append(a.vocabulary, domain.VocabularyItem{
			ID:                 s.nextID(),
			Word:               w.word,
			Translation:        w.translation,
			Level:              w.level,
			TimesEncountered:   5,
			TimesCorrectlyUsed: 3,
			LastEncounteredAt:  &seen,
			IsMastered:         w.mastered,
		})
	}

	a.goals = []domain.Goal{{
		ID:              s.nextID(),
		Title:           "Learn 50 new words",
		TargetType:      "vocabulary",
		TargetValue:     50,
		CurrentProgress: 12,
		Frequency:       "weekly",
		StartDate:       now.AddDate(0, 0, -3),
		EndDate:         now.AddDate(0, 0, 4),
	}}

	earned := now.AddDate(0, 0, -1)
	a.badges = []domain.Badge{
		{ID: s.nextID(), Name: "First Steps", Description: "Complete your first conversation", Category: "conversation", IsEarned: true, EarnedAt: &earned, Progress: 100},
		{ID: s.nextID(), Name: "Word Collector", Description: "Learn 100 words", Category: "vocabulary", Progress: 8},
		{ID: s.nextID(), Name: "Quiz Master", Description: "Score 90 or more on a quiz", Category: "quiz"},
	}

	a.conversations = []domain.Conversation{{
		ID:            s.nextID(),
		Title:         "At the cafe",
		CreatedAt:     &seen,
		LastMessageAt: &seen,
		Messages: []domain.Message{
			{ID: s.nextID(), Content: "Yo quiero un cafe", IsFromUser: true, CreatedAt: seen,
				ErrorAnalysis: &domain.MessageAnalysis{Errors: []domain.ErrorDetail{{
					ErrorText: "cafe", Correction: "café", Explanation: "Missing accent", ErrorType: "Spelling",
				}}}},
			{ID: s.nextID(), Content: "¡Claro! ¿Con **leche**?", CreatedAt: seen},
		},
	}}

	a.results = []domain.QuizResult{{
		ID:             s.nextID(),
		QuizTitle:      "Greetings",
		QuizLevel:      "A1",
		Score:          80,
		CorrectAnswers: 4,
		TotalQuestions: 5,
		CompletedAt:    seen,
	}}

	s.accounts[nu.Username] = a
	return a
}

// seedQuizzes registers one vocabulary quiz per level.
func (s *Server) seedQuizzes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lvl := range domain.Levels {
		s.addQuizLocked(lvl, "Vocabulary")
	}
}

func (s *Server) addQuizLocked(level domain.Level, quizType string) domain.Quiz {
	bank := []struct {
		q, correct string
		options    []string
	}{
		{"What does 'hola' mean?", "hello", []string{"hello", "goodbye", "please", "thanks"}},
		{"What does 'gracias' mean?", "thank you", []string{"sorry", "thank you", "welcome", "yes"}},
		{"What does 'biblioteca' mean?", "library", []string{"bookshop", "bible", "library", "table"}},
	}

	qz := domain.Quiz{
		ID:       s.nextID(),
		Title:    string(level) + " " + quizType,
		Level:    level,
		QuizType: quizType,
	}
	rec := quizRecord{answers: make(map[int]string)}
	for i, b := range bank {
		qid := i + 1
		qz.Questions = append(qz.Questions, domain.Question{
			ID:       domain.ID(itoa(qid)),
			Question: b.q,
			Options:  b.options,
		})
		rec.answers[qid] = b.correct
	}
	rec.quiz = qz
	s.quizzes[qz.ID] = rec
	return qz
}
