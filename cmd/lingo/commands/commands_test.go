package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo/internal/apitest"
	"lingo/internal/domain"
	"lingo/internal/guard"
	"lingo/internal/view"
)

type cli struct {
	upstream *apitest.Server
	api      string
	home     string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	upstream := apitest.New()
	upstream.AddUser("ana", "secret")
	hs := httptest.NewServer(upstream)
	t.Cleanup(hs.Close)
	return &cli{upstream: upstream, api: hs.URL + "/api", home: t.TempDir()}
}

func (c *cli) run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRoot()
	var out, errb bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errb)
	root.SetIn(strings.NewReader(stdin))
	err = run(context.Background(), root, append([]string{"--home", c.home, "--api", c.api}, args...))
	return out.String(), errb.String(), err
}

func (c *cli) login(t *testing.T) {
	t.Helper()
	out, _, err := c.run(t, "", "login", "ana", "--password", "secret")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as ana")
}

func TestProtectedCommand_RequiresLogin(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run(t, "", "badges")
	assert.ErrorIs(t, err, guard.ErrLoginRequired)
	assert.Empty(t, c.upstream.Requests())
}

func TestLogin_StatusLogout(t *testing.T) {
	c := newCLI(t)

	_, _, err := c.run(t, "", "login", "ana", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	// prompts for the password on stdin
	out, _, err := c.run(t, "secret\n", "login", "ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ana")

	out, _, err = c.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:   authenticated")
	assert.Contains(t, out, "User:    ana (ana@example.com)")
	assert.Regexp(t, `Token:   [0-9a-f]{20}\n`, out)

	out, _, err = c.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, _, err = c.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:   unauthenticated")
	assert.NotContains(t, out, "Token:")
}

func TestLogin_RejectedWithUnauthorizedHasNoExpiryNotice(t *testing.T) {
	c := newCLI(t)
	c.upstream.Fail(http.MethodPost, "/auth/login", http.StatusUnauthorized, `{"message":"Bad username or password"}`)

	_, stderr, err := c.run(t, "", "login", "ana", "--password", "secret")
	require.Error(t, err)
	assert.Equal(t, "Bad username or password", err.Error())
	assert.NotContains(t, stderr, expiredNotice)
}

func TestVocabList_FiltersByLevel(t *testing.T) {
	c := newCLI(t)
	c.login(t)

	out, _, err := c.run(t, "", "vocab", "list", "--level", "a1")
	require.NoError(t, err)
	assert.Contains(t, out, "gracias")
	assert.NotContains(t, out, "biblioteca")
	assert.Contains(t, out, "Page 1 of 1 (3 words)")

	_, _, err = c.run(t, "", "vocab", "list", "--level", "Z9")
	assert.Error(t, err)
}

func TestQuizTake_SubmitsChosenOptions(t *testing.T) {
	c := newCLI(t)
	c.login(t)

	out, _, err := c.run(t, "", "quiz", "generate", "--level", "B1")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 3)
	id := strings.TrimSuffix(fields[2], ":")

	// option numbers or text: hello, thank you, then a wrong answer
	out, _, err = c.run(t, "1\nthank you\n1\n", "quiz", "take", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Not bad! 2/3 correct (67%)")
	assert.Contains(t, out, "(correct: library)")

	out, _, err = c.run(t, "", "quiz", "results")
	require.NoError(t, err)
	assert.Contains(t, out, "B1 Vocabulary")
	assert.Contains(t, out, "Average score: 74%")
}

func TestGoals_AddAndList(t *testing.T) {
	c := newCLI(t)
	c.login(t)

	out, _, err := c.run(t, "", "goals", "add", "Read", "daily", "--target", "5", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Read daily")

	out, _, err = c.run(t, "", "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "12/50 (24%)")
	assert.Contains(t, out, "0/5 (0%)")
}

func TestGoals_CompleteLocksGoal(t *testing.T) {
	c := newCLI(t)
	c.login(t)

	out, _, err := c.run(t, "", "goals", "list")
	require.NoError(t, err)
	var id string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "12/50") {
			id = strings.Fields(line)[0]
		}
	}
	require.NotEmpty(t, id)

	out, _, err = c.run(t, "", "goals", "complete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "50/50 (100%)")

	_, _, err = c.run(t, "", "goals", "progress", id)
	assert.ErrorIs(t, err, view.ErrGoalCompleted)
	_, _, err = c.run(t, "", "goals", "complete", id)
	assert.ErrorIs(t, err, view.ErrGoalCompleted)

	out, _, err = c.run(t, "", "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
}

func TestConversationSend_PrintsReply(t *testing.T) {
	c := newCLI(t)
	c.login(t)

	out, _, err := c.run(t, "", "conversations", "list")
	require.NoError(t, err)
	var id string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "At the cafe") {
			id = strings.Fields(line)[0]
		}
	}
	require.NotEmpty(t, id)

	out, _, err = c.run(t, "", "conversations", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, `! "cafe" -> "café" [Spelling]`)

	out, _, err = c.run(t, "", "conv", "send", id, "Hola", "amigo")
	require.NoError(t, err)
	assert.Contains(t, out, "you: Hola amigo")
	assert.Contains(t, out, "tutor: ¡Muy bien!")
}

func TestRejectedSession_PrintsNoticeAndClears(t *testing.T) {
	c := newCLI(t)
	c.login(t)
	c.upstream.Fail(http.MethodGet, "/users/badges", http.StatusUnauthorized, "")

	_, stderr, err := c.run(t, "", "badges")
	require.Error(t, err)
	assert.Contains(t, stderr, expiredNotice)

	c.upstream.Heal()
	_, _, err = c.run(t, "", "badges")
	assert.ErrorIs(t, err, guard.ErrLoginRequired)
}

func TestErrorsCommand_RejectsUnknownRange(t *testing.T) {
	c := newCLI(t)
	c.login(t)
	_, _, err := c.run(t, "", "errors", "--range", "decade")
	assert.ErrorContains(t, err, "unknown range")

	_, _, err = c.run(t, "", "errors", "--range", "week")
	assert.NoError(t, err)
}

func TestChooseOption(t *testing.T) {
	opts := []string{"hello", "goodbye"}
	assert.Equal(t, "goodbye", chooseOption(opts, "2"))
	assert.Equal(t, "3", chooseOption(opts, "3"))
	assert.Equal(t, "hello", chooseOption(opts, "hello"))
}

func TestTerminalNavigator(t *testing.T) {
	var buf bytes.Buffer
	nav := terminalNavigator(&buf)
	nav.Navigate(context.Background(), domain.RouteDashboard)
	assert.Empty(t, buf.String())
	nav.Navigate(context.Background(), domain.RouteLogin)
	assert.Equal(t, expiredNotice+"\n", buf.String())
}
