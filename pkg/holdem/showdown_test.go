package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/deck"
)

func TestTable_showdown_bestHandTakesPot(t *testing.T) {
	a := assert.New(t)

	table := newTestTable(900, 900)
	table.dealerPosition = 0
	table.community = deck.CardsFromString("2c,7h,9d,11s,3c")

	p1, p2 := table.players[0], table.players[1]
	p1.Cards = deck.CardsFromString("14s,14d")
	p2.Cards = deck.CardsFromString("13s,13d")
	p1.TotalBet, p2.TotalBet = 100, 100

	table.pm.collected = 200
	table.pm.rebuild(table.players)
	table.chipsInPlay += 200
	table.phase = PhaseBetting
	table.round = RoundRiver

	table.showdown()

	a.Equal(PhaseComplete, table.phase)
	a.True(table.wentToShowdown)
	a.Equal(1100, p1.Stack)
	a.Equal(900, p2.Stack)
	a.NotEmpty(p1.handDescription)
	assertConservation(t, table)
}

func TestTable_showdown_tieSplitsWithOddChip(t *testing.T) {
	a := assert.New(t)

	table := newTestTable(900, 900)
	table.dealerPosition = 0

	// the board plays for everyone
	table.community = deck.CardsFromString("14s,13s,12s,11s,10s")

	p1, p2 := table.players[0], table.players[1]
	p1.Cards = deck.CardsFromString("2c,3d")
	p2.Cards = deck.CardsFromString("4c,5d")
	p1.TotalBet, p2.TotalBet = 63, 62

	table.pm.collected = 125
	table.pm.pots = []Pot{{Amount: 125, EligiblePlayerIDs: []string{"player-1", "player-2"}}}
	table.chipsInPlay += 125
	table.phase = PhaseBetting
	table.round = RoundRiver

	table.showdown()

	// the odd chip goes to the first seat after the dealer
	a.Equal(963, p2.Stack)
	a.Equal(962, p1.Stack)
	assertConservation(t, table)
}

func TestTable_showdown_sidePotsSettleSeparately(t *testing.T) {
	a := assert.New(t)

	table := newTestTable(0, 850, 850)
	table.dealerPosition = 0
	table.community = deck.CardsFromString("2c,7h,9d,11s,3d")

	p1, p2, p3 := table.players[0], table.players[1], table.players[2]
	p1.Cards = deck.CardsFromString("14s,14d")
	p2.Cards = deck.CardsFromString("13s,13d")
	p3.Cards = deck.CardsFromString("12s,12d")

	// p1 is all-in for 50; p2 and p3 went on to 100 apiece
	p1.Status = StatusAllIn
	p1.TotalBet = 50
	p2.TotalBet, p3.TotalBet = 100, 100

	table.pm.collected = 250
	table.pm.rebuild(table.players)
	a.Len(table.pm.pots, 2)

	table.chipsInPlay += 250
	table.phase = PhaseBetting
	table.round = RoundRiver

	table.showdown()

	// aces win the 150 main pot; kings win the 100 side pot
	a.Equal(150, p1.Stack)
	a.Equal(950, p2.Stack)
	a.Equal(850, p3.Stack)
	assertConservation(t, table)
}
