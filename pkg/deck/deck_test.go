package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/internal/rng"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New(rng.NewSeeded(0))
	a.Equal(52, d.Remaining())

	// all 52 cards are unique
	seen := make(map[Card]bool)
	cards, err := d.Deal(52)
	a.NoError(err)
	for _, card := range cards {
		a.False(seen[card])
		seen[card] = true
	}
	a.Equal(52, len(seen))
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d := New(rng.NewSeeded(42))
	unshuffled := d.HashCode()
	d.Shuffle()
	a.NotEqual(unshuffled, d.HashCode())

	// same seed, same order
	d2 := New(rng.NewSeeded(42))
	d2.Shuffle()
	a.Equal(d.HashCode(), d2.HashCode())

	// no card is dealt twice after a shuffle
	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		cards, err := d.Deal(1)
		a.NoError(err)
		a.False(seen[cards[0]])
		seen[cards[0]] = true
	}
}

func TestDeck_Deal(t *testing.T) {
	a := assert.New(t)

	d := New(rng.NewSeeded(0))
	cards, err := d.Deal(2)
	a.NoError(err)
	a.Equal(2, len(cards))
	a.Equal(50, d.Remaining())

	_, err = d.Deal(51)
	a.Equal(ErrDeckExhausted, err)
	// a failed deal leaves the deck untouched
	a.Equal(50, d.Remaining())

	cards, err = d.Deal(50)
	a.NoError(err)
	a.Equal(50, len(cards))
	a.Equal(0, d.Remaining())

	_, err = d.Deal(1)
	a.Equal(ErrDeckExhausted, err)
}

func TestDeck_Reset(t *testing.T) {
	a := assert.New(t)

	d := New(rng.Crypto{})
	d.Shuffle()
	_, err := d.Deal(20)
	a.NoError(err)
	a.Equal(32, d.Remaining())

	d.Reset()
	a.Equal(52, d.Remaining())

	// canonical order after reset
	a.Equal(New(rng.Crypto{}).HashCode(), d.HashCode())
}
