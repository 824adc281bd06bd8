package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo/internal/api"
	"lingo/internal/apitest"
	"lingo/internal/domain"
	"lingo/internal/gateway"
	"lingo/internal/store"
)

func signedIn(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	srv.AddUser("alice", "pw")
	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)

	st := store.NewMemoryStore()
	token, err := srv.IssueToken("alice", time.Hour)
	require.NoError(t, err)
	require.NoError(t, st.Set(domain.KeyToken, token))

	gw := gateway.New(hs.URL+"/api", st, gateway.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return api.New(gw), srv
}

var ctx = context.Background()

func TestProfileAndUpdate(t *testing.T) {
	c, _ := signedIn(t)

	p, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)

	p.LearningLanguage = "French"
	out, err := c.UpdateProfile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "French", out.LearningLanguage)
}

func TestVocabularyUpdate(t *testing.T) {
	c, _ := signedIn(t)

	items, err := c.Vocabulary(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, items)

	got, err := c.UpdateVocabularyItem(ctx, items[0].ID, domain.VocabularyPatch{Translation: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Translation)

	_, err = c.UpdateVocabularyItem(ctx, "99999", domain.VocabularyPatch{Translation: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlashcardsQuery(t *testing.T) {
	c, srv := signedIn(t)

	cards, err := c.Flashcards(ctx, "A1", 2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	for _, card := range cards {
		assert.Equal(t, domain.Level("A1"), card.Level)
	}
	reqs := srv.Requests()
	assert.Equal(t, "/api/vocabulary/flashcards", reqs[len(reqs)-1].Path)
}

func TestGoalsLifecycle(t *testing.T) {
	c, _ := signedIn(t)

	g, err := c.CreateGoal(ctx, domain.Goal{Title: "Five quizzes", TargetType: "quiz", TargetValue: 5, Frequency: "weekly"})
	require.NoError(t, err)
	require.NotEmpty(t, g.ID)

	g.CurrentProgress = 5
	g.IsCompleted = true
	updated, err := c.UpdateGoal(ctx, g.ID, g)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, c.DeleteGoal(ctx, g.ID))
	assert.ErrorIs(t, c.DeleteGoal(ctx, g.ID), domain.ErrNotFound)
}

func TestConversationFlow(t *testing.T) {
	c, _ := signedIn(t)

	conv, err := c.CreateConversation(ctx, domain.NewConversation{Title: "Travel", InitialMessage: "Hola"})
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)

	msgs, err := c.SendMessage(ctx, conv.ID, "¿Dónde está la estación?")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].IsFromUser)
	assert.False(t, msgs[1].IsFromUser)

	full, err := c.Conversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, full.Messages, 4)

	list, err := c.Conversations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestQuizSubmission(t *testing.T) {
	c, _ := signedIn(t)

	quizzes, err := c.QuizzesByLevel(ctx, "B1")
	require.NoError(t, err)
	require.NotEmpty(t, quizzes)

	quiz, err := c.Quiz(ctx, quizzes[0].ID)
	require.NoError(t, err)

	answers := map[domain.ID]string{}
	for _, q := range quiz.Questions {
		answers[q.ID] = q.Options[0]
	}
	sub, err := api.BuildSubmission(quiz, answers)
	require.NoError(t, err)
	assert.Len(t, sub.Answers, len(quiz.Questions))

	res, err := c.SubmitQuiz(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, len(quiz.Questions), res.TotalQuestions)
	assert.Equal(t, 33, res.Score) // only the first question's answer is option 0

	again, err := c.QuizResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Score, again.Score)

	history, err := c.QuizResults(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestGenerateQuiz(t *testing.T) {
	c, _ := signedIn(t)
	q, err := c.GenerateQuiz(ctx, domain.QuizOptions{Level: "B1", QuizType: "Vocabulary"})
	require.NoError(t, err)
	assert.Equal(t, domain.Level("B1"), q.Level)
	assert.NotEmpty(t, q.Questions)
}

func TestAnalytics(t *testing.T) {
	c, _ := signedIn(t)

	p, err := c.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, p.VocabularyCount)

	stats, err := c.ProgressStats(ctx, domain.RangeMonth)
	require.NoError(t, err)
	assert.Len(t, stats.VocabularyByLevel, 6)

	ea, err := c.ErrorAnalysis(ctx, domain.RangeAll)
	require.NoError(t, err)
	assert.Equal(t, 1, ea.TotalErrors)

	_, err = c.ErrorAnalysis(ctx, "decade")
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	badges, err := c.Badges(ctx)
	require.NoError(t, err)
	assert.Len(t, badges, 3)
}

func TestBuildSubmission_NonNumericID(t *testing.T) {
	_, err := api.BuildSubmission(domain.Quiz{Questions: []domain.Question{{ID: "q1"}}}, nil)
	assert.Error(t, err)
}
