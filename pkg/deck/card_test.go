package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", Card{Suit: Spades, Rank: Ace}.String())
	a.Equal("10♡", Card{Suit: Hearts, Rank: 10}.String())
	a.Equal("J♣", Card{Suit: Clubs, Rank: Jack}.String())
	a.Equal("2♢", Card{Suit: Diamonds, Rank: 2}.String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("14s")
	a.Equal(Spades, card.Suit)
	a.Equal(Ace, card.Rank)

	card = CardFromString("2c")
	a.Equal(Clubs, card.Suit)
	a.Equal(2, card.Rank)

	a.PanicsWithValue("could not parse card: 15s", func() {
		CardFromString("15s")
	})
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,13h,14d")
	a.Equal(3, len(cards))
	a.Equal(Card{Suit: Clubs, Rank: 2}, cards[0])
	a.Equal(Card{Suit: Hearts, Rank: King}, cards[1])
	a.Equal(Card{Suit: Diamonds, Rank: Ace}, cards[2])

	a.Equal(0, len(CardsFromString("")))

	a.Equal("2c,13h,14d", CardsToString(cards))
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5d").Equal(CardFromString("5d")))
	a.False(CardFromString("5d").Equal(CardFromString("5c")))
	a.False(CardFromString("5d").Equal(CardFromString("6d")))
}
