package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"lingo/internal/domain"
)

// Client exposes one method per API endpoint. Every call goes through the
// gateway, so credentials and error handling are uniform.
type Client struct {
	gw domain.Gateway
}

func New(gw domain.Gateway) *Client { return &Client{gw: gw} }

// ---------- Auth ----------

// Login calls POST /auth/login. Most callers want the session service, which
// also persists the result.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	var u domain.User
	err := c.gw.Post(ctx, "/auth/login", creds, &u)
	return u, err
}

func (c *Client) Register(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	var u domain.User
	err := c.gw.Post(ctx, "/auth/register", nu, &u)
	return u, err
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := c.gw.Get(ctx, "/users/current", &u)
	return u, err
}

// ---------- Users ----------

func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	var p domain.Profile
	err := c.gw.Get(ctx, "/users/profile", &p)
	return p, err
}

func (c *Client) UpdateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	var out domain.Profile
	err := c.gw.Put(ctx, "/users/profile", p, &out)
	return out, err
}

func (c *Client) Vocabulary(ctx context.Context) ([]domain.VocabularyItem, error) {
	var out []domain.VocabularyItem
	err := c.gw.Get(ctx, "/users/vocabulary", &out)
	return out, err
}

func (c *Client) Progress(ctx context.Context) (domain.Progress, error) {
	var p domain.Progress
	err := c.gw.Get(ctx, "/users/progress", &p)
	return p, err
}

// ProgressStats returns the graph series for tr (week, month or year).
func (c *Client) ProgressStats(ctx context.Context, tr domain.TimeRange) (domain.ProgressStats, error) {
	var out domain.ProgressStats
	err := c.gw.Get(ctx, "/users/progress/stats"+rangeQuery(tr), &out)
	return out, err
}

// ErrorAnalysis returns error statistics for tr (week, month or all).
func (c *Client) ErrorAnalysis(ctx context.Context, tr domain.TimeRange) (domain.ErrorAnalysis, error) {
	var out domain.ErrorAnalysis
	err := c.gw.Get(ctx, "/users/errors"+rangeQuery(tr), &out)
	return out, err
}

func (c *Client) Goals(ctx context.Context) ([]domain.Goal, error) {
	var out []domain.Goal
	err := c.gw.Get(ctx, "/users/goals", &out)
	return out, err
}

func (c *Client) CreateGoal(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	var out domain.Goal
	err := c.gw.Post(ctx, "/users/goals", g, &out)
	return out, err
}

func (c *Client) UpdateGoal(ctx context.Context, id domain.ID, g domain.Goal) (domain.Goal, error) {
	var out domain.Goal
	err := c.gw.Put(ctx, "/users/goals/"+segment(id), g, &out)
	return out, err
}

func (c *Client) DeleteGoal(ctx context.Context, id domain.ID) error {
	return c.gw.Delete(ctx, "/users/goals/"+segment(id), nil)
}

func (c *Client) Badges(ctx context.Context) ([]domain.Badge, error) {
	var out []domain.Badge
	err := c.gw.Get(ctx, "/users/badges", &out)
	return out, err
}

// ---------- Vocabulary ----------

func (c *Client) UpdateVocabularyItem(ctx context.Context, id domain.ID, patch domain.VocabularyPatch) (domain.VocabularyItem, error) {
	var out domain.VocabularyItem
	err := c.gw.Put(ctx, "/vocabulary/"+segment(id), patch, &out)
	return out, err
}

// Flashcards fetches up to count cards, optionally restricted to level.
func (c *Client) Flashcards(ctx context.Context, level domain.Level, count int) ([]domain.Flashcard, error) {
	q := url.Values{}
	if level != "" {
		q.Set("level", string(level))
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	path := "/vocabulary/flashcards"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []domain.Flashcard
	err := c.gw.Get(ctx, path, &out)
	return out, err
}

// ---------- Conversation ----------

func (c *Client) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := c.gw.Get(ctx, "/conversation", &out)
	return out, err
}

func (c *Client) Conversation(ctx context.Context, id domain.ID) (domain.Conversation, error) {
	var out domain.Conversation
	err := c.gw.Get(ctx, "/conversation/"+segment(id), &out)
	return out, err
}

func (c *Client) CreateConversation(ctx context.Context, nc domain.NewConversation) (domain.Conversation, error) {
	var out domain.Conversation
	err := c.gw.Post(ctx, "/conversation", nc, &out)
	return out, err
}

// SendMessage posts content to a conversation and returns the messages the
// server appended (the learner's message and the tutor's reply).
func (c *Client) SendMessage(ctx context.Context, id domain.ID, content string) ([]domain.Message, error) {
	in := struct {
		Content string `json:"content"`
	}{Content: content}
	var out []domain.Message
	err := c.gw.Post(ctx, "/conversation/"+segment(id)+"/messages", in, &out)
	return out, err
}

// ---------- Quiz ----------

func (c *Client) QuizzesByLevel(ctx context.Context, level domain.Level) ([]domain.Quiz, error) {
	var out []domain.Quiz
	err := c.gw.Get(ctx, "/quiz/levels/"+url.PathEscape(string(level)), &out)
	return out, err
}

func (c *Client) Quiz(ctx context.Context, id domain.ID) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.gw.Get(ctx, "/quiz/"+segment(id), &out)
	return out, err
}

func (c *Client) GenerateQuiz(ctx context.Context, opts domain.QuizOptions) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.gw.Post(ctx, "/quiz/generate", opts, &out)
	return out, err
}

func (c *Client) SubmitQuiz(ctx context.Context, sub domain.QuizSubmission) (domain.QuizResult, error) {
	var out domain.QuizResult
	err := c.gw.Post(ctx, "/quiz/submit", sub, &out)
	return out, err
}

func (c *Client) QuizResults(ctx context.Context) ([]domain.QuizResult, error) {
	var out []domain.QuizResult
	err := c.gw.Get(ctx, "/quiz/results", &out)
	return out, err
}

func (c *Client) QuizResult(ctx context.Context, id domain.ID) (domain.QuizResult, error) {
	var out domain.QuizResult
	err := c.gw.Get(ctx, "/quiz/results/"+segment(id), &out)
	return out, err
}

// BuildSubmission turns answers keyed by question id into a submission.
// Question ids must be numeric.
func BuildSubmission(quiz domain.Quiz, answers map[domain.ID]string) (domain.QuizSubmission, error) {
	sub := domain.QuizSubmission{QuizID: quiz.ID}
	for _, q := range quiz.Questions {
		n, ok := q.ID.Int()
		if !ok {
			return domain.QuizSubmission{}, fmt.Errorf("question id %q is not numeric", q.ID)
		}
		sub.Answers = append(sub.Answers, domain.QuizAnswer{QuestionID: n, Answer: answers[q.ID]})
	}
	return sub, nil
}

func segment(id domain.ID) string { return url.PathEscape(id.String()) }

func rangeQuery(tr domain.TimeRange) string {
	if tr == "" {
		return ""
	}
	return "?timeRange=" + url.QueryEscape(string(tr))
}
