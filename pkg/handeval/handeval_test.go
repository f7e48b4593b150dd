package handeval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/deck"
)

func TestSevenCard_EvaluateBestHand(t *testing.T) {
	a := assert.New(t)
	e := SevenCard{}

	flush, err := e.EvaluateBestHand(deck.CardsFromString("2h,5h,9h,11h,13h,3c,7d"))
	a.NoError(err)

	straight, err := e.EvaluateBestHand(deck.CardsFromString("4c,5d,6h,7s,8c,13d,2s"))
	a.NoError(err)

	a.True(flush.Beats(straight))
	a.False(straight.Beats(flush))
	a.False(flush.Ties(straight))

	pair, err := e.EvaluateBestHand(deck.CardsFromString("14c,14d,2h,5s,9c,11d,13h"))
	a.NoError(err)
	a.True(straight.Beats(pair))
}

func TestSevenCard_EvaluateBestHand_ties(t *testing.T) {
	a := assert.New(t)
	e := SevenCard{}

	// board plays for both players
	board := "10s,11s,12s,13s,14s"
	one, err := e.EvaluateBestHand(deck.CardsFromString(board + ",2c,3d"))
	a.NoError(err)

	two, err := e.EvaluateBestHand(deck.CardsFromString(board + ",7h,8h"))
	a.NoError(err)

	a.True(one.Ties(two))
	a.False(one.Beats(two))
}

func TestSevenCard_EvaluateBestHand_badInput(t *testing.T) {
	a := assert.New(t)
	e := SevenCard{}

	_, err := e.EvaluateBestHand(deck.CardsFromString("2c,3c"))
	a.EqualError(err, "expected 7 cards, got 2")

	_, err = e.EvaluateBestHand(nil)
	a.Error(err)
}
