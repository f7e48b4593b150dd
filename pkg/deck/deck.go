package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"holdemtable-server/internal/rng"
)

// ErrDeckExhausted is an error when Deal() wants more cards than the deck holds.
// A well-formed hand at a nine-seat table never triggers this; if it happens
// the dealing logic is broken, not the caller.
var ErrDeckExhausted = errors.New("not enough cards left in deck")

// Deck represents a playing deck
type Deck struct {
	cards []Card
	rng   rng.Generator
}

// New returns a new deck of cards in canonical order.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(generator rng.Generator) *Deck {
	d := &Deck{rng: generator}
	d.Reset()
	return d
}

// Reset repopulates the deck with all 52 cards in canonical order.
// Any previously dealt cards become dealable again.
func (d *Deck) Reset() {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}

	d.cards = cards
}

// Shuffle performs a Fisher-Yates shuffle over the remaining cards
func (d *Deck) Shuffle() {
	for j := len(d.cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards.
// If fewer than n cards remain, ErrDeckExhausted is returned and the deck is untouched.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]

	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// HashCode returns a SHA1 hash code of the deck
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}
