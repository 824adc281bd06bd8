package view

import (
	"math"

	"lingo/internal/domain"
)

// AverageScore is the rounded mean score, or 0 with no results.
func AverageScore(results []domain.QuizResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return int(math.Round(float64(sum) / float64(len(results))))
}

// CountByLevel counts results per quiz level.
func CountByLevel(results []domain.QuizResult) map[domain.Level]int {
	out := make(map[domain.Level]int)
	for _, r := range results {
		out[r.QuizLevel]++
	}
	return out
}

// BadgeSummary counts earned badges.
type BadgeSummary struct {
	Earned  int `json:"earned"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// SummarizeBadges returns how many badges are earned out of the total.
func SummarizeBadges(badges []domain.Badge) BadgeSummary {
	s := BadgeSummary{Total: len(badges)}
	for _, b := range badges {
		if b.IsEarned {
			s.Earned++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Earned) / float64(s.Total) * 100))
	}
	return s
}
