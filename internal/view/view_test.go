package view_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo/internal/domain"
	"lingo/internal/view"
)

func TestScoreBands(t *testing.T) {
	cases := []struct {
		score    int
		color    view.Color
		text     string
		headline string
	}{
		{100, view.Green, "Excellent!", "Excellent!"},
		{85, view.Green, "Excellent!", "Great job!"},
		{80, view.Green, "Excellent!", "Great job!"},
		{79, view.Yellow, "Good job!", "Good work!"},
		{60, view.Yellow, "Good job!", "Not bad!"},
		{55, view.Red, "Not bad!", "You passed!"},
		{40, view.Red, "Not bad!", "Keep practicing!"},
		{10, view.Red, "Keep practicing!", "Keep practicing!"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.color, view.ScoreColor(tc.score), "color %d", tc.score)
		assert.Equal(t, tc.text, view.ScoreText(tc.score), "text %d", tc.score)
		assert.Equal(t, tc.headline, view.ResultHeadline(tc.score), "headline %d", tc.score)
	}
	assert.Equal(t, "You are ready to move to the next level!", view.ProgressTip(80))
	assert.Equal(t, "We recommend studying the words you answered incorrectly.", view.ProgressTip(59))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	p := view.Paginate(items, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, items[:10], p.Items)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = view.Paginate(items, 3, 10)
	assert.Equal(t, items[20:], p.Items)
	assert.False(t, p.HasNext())

	assert.Equal(t, 3, view.Paginate(items, 99, 10).Number)
	assert.Equal(t, 1, view.Paginate(items, -2, 10).Number)
	assert.Equal(t, 10, view.Paginate(items, 1, 0).PerPage)

	empty := view.Paginate([]int{}, 4, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)
}

func vocab() []domain.VocabularyItem {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 1, 0)
	return []domain.VocabularyItem{
		{ID: "1", Word: "Manzana", Translation: "apple", Level: "A1", LastEncounteredAt: &t1},
		{ID: "2", Word: "biblioteca", Translation: "library", Level: "A2", IsMastered: true, LastEncounteredAt: &t2},
		{ID: "3", Word: "aprovechar", Translation: "to take advantage", Level: "C1"},
		{ID: "4", Word: "hola", Translation: "hello", Level: "A1", IsMastered: true},
	}
}

func TestVocabularyFilter(t *testing.T) {
	items := vocab()

	assert.Len(t, view.VocabularyFilter{}.Apply(items), 4)
	assert.Len(t, view.VocabularyFilter{Level: "all"}.Apply(items), 4)
	assert.Len(t, view.VocabularyFilter{Level: "A1"}.Apply(items), 2)

	got := view.VocabularyFilter{Search: "APP"}.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ID("1"), got[0].ID)

	got = view.VocabularyFilter{Level: "A1", Search: "man"}.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "Manzana", got[0].Word)

	// the term is matched as typed, surrounding spaces included
	got = view.VocabularyFilter{Search: " "}.Apply(items)
	require.Len(t, got, 1)
	assert.Equal(t, "aprovechar", got[0].Word)
	assert.Empty(t, view.VocabularyFilter{Search: " app"}.Apply(items))
}

func TestSortVocabulary(t *testing.T) {
	items := vocab()
	view.SortVocabulary(items, view.SortWord)
	assert.Equal(t, []string{"aprovechar", "biblioteca", "hola", "Manzana"}, words(items))

	view.SortVocabulary(items, view.SortLevel)
	assert.Equal(t, domain.Level("A1"), items[0].Level)
	assert.Equal(t, domain.Level("C1"), items[3].Level)

	view.SortVocabulary(items, view.SortLastSeen)
	assert.Equal(t, "biblioteca", items[0].Word)
	assert.Nil(t, items[3].LastEncounteredAt)

	view.SortVocabulary(items, view.SortMastered)
	assert.True(t, items[0].IsMastered)
	assert.True(t, items[1].IsMastered)
	assert.False(t, items[2].IsMastered)
}

func words(items []domain.VocabularyItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Word
	}
	return out
}

func TestStats(t *testing.T) {
	s := view.Stats(vocab())
	assert.Equal(t, 4, s.TotalWords)
	assert.Equal(t, 2, s.ByLevel["A1"])
	assert.Equal(t, 0, s.ByLevel["C2"])
	assert.Equal(t, 2, s.Mastered)
	assert.Equal(t, 50.0, s.MasteredPercentage)

	items := append(vocab(), domain.VocabularyItem{Level: "B1"}, domain.VocabularyItem{Level: "B2"})
	assert.Equal(t, 33.3, view.Stats(items).MasteredPercentage)
	assert.Zero(t, view.Stats(nil).MasteredPercentage)
}

func TestDeck(t *testing.T) {
	cards := []domain.Flashcard{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	d := view.NewDeck(cards, nil)

	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, domain.ID("1"), cur.ID)
	assert.False(t, d.Prev(), "prev clamps at the first card")

	d.Flip()
	assert.True(t, d.Flipped())
	assert.True(t, d.Next())
	assert.False(t, d.Flipped(), "moving resets the flip")
	assert.True(t, d.Next())
	assert.False(t, d.Next(), "next clamps at the last card")
	pos, total := d.Position()
	assert.Equal(t, 3, pos)
	assert.Equal(t, 3, total)

	shuffled := view.NewDeck(cards, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, 3, shuffled.Len())
	pos, _ = shuffled.Position()
	assert.Equal(t, 1, pos)
	seen := map[domain.ID]bool{}
	for {
		c, _ := shuffled.Current()
		seen[c.ID] = true
		if !shuffled.Next() {
			break
		}
	}
	assert.Len(t, seen, 3)

	_, ok = view.NewDeck(nil, nil).Current()
	assert.False(t, ok)
}

func TestGoals(t *testing.T) {
	g := domain.Goal{TargetValue: 3, CurrentProgress: 1}
	assert.Equal(t, 33, view.ProgressPercent(g))
	assert.Equal(t, 100, view.ProgressPercent(domain.Goal{TargetValue: 2, CurrentProgress: 5}))
	assert.Equal(t, 0, view.ProgressPercent(domain.Goal{}))

	g = view.IncrementProgress(g)
	assert.Equal(t, 2, g.CurrentProgress)
	assert.False(t, g.IsCompleted)
	g = view.IncrementProgress(view.IncrementProgress(g))
	assert.Equal(t, 3, g.CurrentProgress)
	assert.True(t, g.IsCompleted)

	done := view.CompleteGoal(domain.Goal{TargetValue: 50, CurrentProgress: 12})
	assert.Equal(t, 50, done.CurrentProgress)
	assert.True(t, done.IsCompleted)
	assert.Equal(t, 100, view.ProgressPercent(done))

	_, err := view.UpdateGoal(done, view.IncrementProgress)
	assert.ErrorIs(t, err, view.ErrGoalCompleted)
	_, err = view.UpdateGoal(done, view.CompleteGoal)
	assert.ErrorIs(t, err, view.ErrGoalCompleted)
	next, err := view.UpdateGoal(domain.Goal{TargetValue: 2}, view.IncrementProgress)
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentProgress)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, view.DaysRemaining(now, now.Add(2*time.Hour)))
	assert.Equal(t, 7, view.DaysRemaining(now, now.AddDate(0, 0, 7)))
	assert.Equal(t, -1, view.DaysRemaining(now, now.Add(-25*time.Hour)))
}

func TestQuizSummaries(t *testing.T) {
	results := []domain.QuizResult{{Score: 80, QuizLevel: "A1"}, {Score: 65, QuizLevel: "A1"}, {Score: 90, QuizLevel: "B1"}}
	assert.Equal(t, 78, view.AverageScore(results))
	assert.Equal(t, 0, view.AverageScore(nil))
	assert.Equal(t, map[domain.Level]int{"A1": 2, "B1": 1}, view.CountByLevel(results))

	s := view.SummarizeBadges([]domain.Badge{{IsEarned: true}, {}, {}})
	assert.Equal(t, view.BadgeSummary{Earned: 1, Total: 3, Percent: 33}, s)
}
