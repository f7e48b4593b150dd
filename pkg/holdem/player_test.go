package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/deck"
)

func TestPlayer_placeBet(t *testing.T) {
	a := assert.New(t)

	p := newPlayer("p1", "Player 1", 100, 0)

	a.NoError(p.placeBet(40))
	a.Equal(60, p.Stack)
	a.Equal(40, p.Bet)
	a.Equal(40, p.TotalBet)
	a.Equal(StatusActive, p.Status)

	a.Equal(ErrInsufficientChips, p.placeBet(61))
	a.Equal(60, p.Stack)

	a.NoError(p.placeBet(60))
	a.Equal(0, p.Stack)
	a.Equal(100, p.TotalBet)
	a.Equal(StatusAllIn, p.Status)
}

func TestPlayer_statusTransitions(t *testing.T) {
	a := assert.New(t)

	p := newPlayer("p1", "Player 1", 100, 0)
	p.Cards = deck.CardsFromString("2c,3d")

	a.True(p.canAct())
	a.True(p.inHand())

	p.fold()
	a.Equal(StatusFolded, p.Status)
	a.Empty(p.Cards)
	a.False(p.canAct())
	a.False(p.inHand())
	a.NotNil(p.LastAction)

	p.resetForNewHand()
	a.Equal(StatusActive, p.Status)
	a.Nil(p.LastAction)
	a.Equal(0, p.TotalBet)

	p.sitOut()
	a.Equal(StatusSittingOut, p.Status)

	p.standUp()
	a.Equal(StatusAway, p.Status)

	// broke players stay out until they re-buy
	p.Stack = 0
	p.resetForNewHand()
	a.Equal(StatusSittingOut, p.Status)
	a.False(p.canAct())
}

func TestPlayer_newRoundKeepsHandState(t *testing.T) {
	a := assert.New(t)

	p := newPlayer("p1", "Player 1", 100, 0)
	p.Cards = deck.CardsFromString("2c,3d")
	a.NoError(p.placeBet(30))
	p.actedSinceRaise = true

	p.newRound()

	a.Equal(0, p.Bet)
	a.Equal(30, p.TotalBet)
	a.False(p.actedSinceRaise)
	a.Len(p.Cards, 2)
}
