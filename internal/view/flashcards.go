package view

import (
	"math/rand/v2"

	"lingo/internal/domain"
)

// Deck steps through flashcards one at a time. Moving to another card turns
// it back to the word side.
type Deck struct {
	cards   []domain.Flashcard
	pos     int
	flipped bool
}

// NewDeck copies cards into a deck, shuffled with rng when rng is non-nil.
func NewDeck(cards []domain.Flashcard, rng *rand.Rand) *Deck {
	d := &Deck{cards: append([]domain.Flashcard(nil), cards...)}
	if rng != nil {
		d.Shuffle(rng)
	}
	return d
}

// Shuffle reorders the deck and returns to the first card.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
	d.pos = 0
	d.flipped = false
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Current returns the card in view; ok is false for an empty deck.
func (d *Deck) Current() (card domain.Flashcard, ok bool) {
	if len(d.cards) == 0 {
		return domain.Flashcard{}, false
	}
	return d.cards[d.pos], true
}

// Position returns the 1-based index of the current card and the deck size.
func (d *Deck) Position() (int, int) {
	if len(d.cards) == 0 {
		return 0, 0
	}
	return d.pos + 1, len(d.cards)
}

// Flipped reports whether the translation side is showing.
func (d *Deck) Flipped() bool { return d.flipped }

// Flip turns the current card over.
func (d *Deck) Flip() { d.flipped = !d.flipped }

// Next advances one card; it stays put on the last card. It reports whether
// the position changed.
func (d *Deck) Next() bool {
	if d.pos+1 >= len(d.cards) {
		return false
	}
	d.pos++
	d.flipped = false
	return true
}

// Prev goes back one card; it stays put on the first card.
func (d *Deck) Prev() bool {
	if d.pos == 0 {
		return false
	}
	d.pos--
	d.flipped = false
	return true
}
