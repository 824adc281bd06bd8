package view

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"lingo/internal/domain"
)

// VocabularyFilter narrows the vocabulary table. An empty Level or "all"
// matches every level; Search matches word or translation, ignoring case.
type VocabularyFilter struct {
	Level  domain.Level
	Search string
}

// Match reports whether item passes the filter.
func (f VocabularyFilter) Match(item domain.VocabularyItem) bool {
	if f.Level != "" && !strings.EqualFold(string(f.Level), "all") && item.Level != f.Level {
		return false
	}
	q := strings.ToLower(f.Search)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Word), q) ||
		strings.Contains(strings.ToLower(item.Translation), q)
}

// Apply returns the items passing the filter, preserving order.
func (f VocabularyFilter) Apply(items []domain.VocabularyItem) []domain.VocabularyItem {
	out := make([]domain.VocabularyItem, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

// VocabularySort names a sort key for the vocabulary table.
type VocabularySort string

const (
	SortWord     VocabularySort = "word"
	SortLevel    VocabularySort = "level"
	SortLastSeen VocabularySort = "lastSeen"
	SortMastered VocabularySort = "mastered"
)

// SortVocabulary sorts items in place by key; ties keep their order. Last
// seen sorts most recent first and mastered items sort before the rest.
func SortVocabulary(items []domain.VocabularyItem, key VocabularySort) {
	slices.SortStableFunc(items, func(a, b domain.VocabularyItem) int {
		switch key {
		case SortLevel:
			return cmp.Compare(levelRank(a.Level), levelRank(b.Level))
		case SortLastSeen:
			return compareRecent(a, b)
		case SortMastered:
			return cmp.Compare(boolRank(!a.IsMastered), boolRank(!b.IsMastered))
		default:
			return cmp.Compare(strings.ToLower(a.Word), strings.ToLower(b.Word))
		}
	})
}

func levelRank(l domain.Level) int {
	if i := slices.Index(domain.Levels, l); i >= 0 {
		return i
	}
	return len(domain.Levels)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareRecent(a, b domain.VocabularyItem) int {
	switch {
	case a.LastEncounteredAt == nil && b.LastEncounteredAt == nil:
		return 0
	case a.LastEncounteredAt == nil:
		return 1
	case b.LastEncounteredAt == nil:
		return -1
	}
	return b.LastEncounteredAt.Compare(*a.LastEncounteredAt)
}

// VocabularyStats summarises a vocabulary list.
type VocabularyStats struct {
	TotalWords         int                  `json:"totalWords"`
	ByLevel            map[domain.Level]int `json:"byLevel"`
	Mastered           int                  `json:"mastered"`
	MasteredPercentage float64              `json:"masteredPercentage"`
}

// Stats counts words per level and the mastered share, rounded to one
// decimal place. Every CEFR level is present in ByLevel.
func Stats(items []domain.VocabularyItem) VocabularyStats {
	s := VocabularyStats{TotalWords: len(items), ByLevel: make(map[domain.Level]int, len(domain.Levels))}
	for _, l := range domain.Levels {
		s.ByLevel[l] = 0
	}
	for _, it := range items {
		s.ByLevel[it.Level]++
		if it.IsMastered {
			s.Mastered++
		}
	}
	if s.TotalWords > 0 {
		s.MasteredPercentage = math.Round(float64(s.Mastered)/float64(s.TotalWords)*1000) / 10
	}
	return s
}
