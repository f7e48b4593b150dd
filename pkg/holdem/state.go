package holdem

import (
	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/holdem/action"
)

// Phase is the table's position in the hand lifecycle
type Phase string

// phase constants
const (
	PhaseWaiting  Phase = "waiting"
	PhaseStarting Phase = "starting"
	PhaseBetting  Phase = "betting"
	PhaseShowdown Phase = "showdown"
	PhaseComplete Phase = "complete"
)

// Round is a betting round tied to a fixed set of community cards
type Round string

// round constants
const (
	RoundPreFlop Round = "preflop"
	RoundFlop    Round = "flop"
	RoundTurn    Round = "turn"
	RoundRiver   Round = "river"
)

// PlayerState is a seat in a table snapshot
type PlayerState struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Position         int            `json:"position"`
	Stack            int            `json:"stack"`
	Bet              int            `json:"bet"`
	Status           Status         `json:"status"`
	Cards            []deck.Card    `json:"cards,omitempty"`
	LastAction       *action.Action `json:"lastAction,omitempty"`
	LastActionAmount int            `json:"lastActionAmount,omitempty"`
	Hand             string         `json:"hand,omitempty"`
	Winnings         int            `json:"winnings,omitempty"`
}

// TableState is an immutable snapshot of a table.
// Snapshots share no memory with the engine; callers may hold them
// indefinitely.
type TableState struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Phase             Phase         `json:"phase"`
	BettingRound      Round         `json:"bettingRound"`
	Pot               int           `json:"pot"`
	SidePots          []Pot         `json:"sidePots,omitempty"`
	CurrentBet        int           `json:"currentBet"`
	MinRaise          int           `json:"minRaise"`
	DealerPosition    int           `json:"dealerPosition"`
	ActivePlayerIndex int           `json:"activePlayerIndex"`
	CommunityCards    []deck.Card   `json:"communityCards"`
	Players           []PlayerState `json:"players"`
	HandNumber        int           `json:"handNumber"`
	RaisesThisRound   int           `json:"raisesThisRound"`
}

// State returns a full snapshot with every hole card visible.
// Intended for audit and persistence; use StateForPlayer for anything sent to
// a client.
func (t *Table) State() TableState {
	return t.snapshot("", true)
}

// StateForPlayer returns a snapshot as the given player is allowed to see it:
// their own hole cards always, everyone's at showdown
func (t *Table) StateForPlayer(playerID string) TableState {
	return t.snapshot(playerID, false)
}

func (t *Table) snapshot(viewerID string, revealAll bool) TableState {
	reveal := revealAll || t.phase == PhaseShowdown || (t.phase == PhaseComplete && t.wentToShowdown)

	players := make([]PlayerState, len(t.players))
	for i, p := range t.players {
		ps := PlayerState{
			ID:               p.ID,
			Name:             p.Name,
			Position:         p.Position,
			Stack:            p.Stack,
			Bet:              p.Bet,
			Status:           p.Status,
			LastAction:       copyAction(p.LastAction),
			LastActionAmount: p.LastActionAmount,
			Hand:             p.handDescription,
			Winnings:         p.winnings,
		}

		if reveal || p.ID == viewerID {
			ps.Cards = copyCards(p.Cards)
		}

		players[i] = ps
	}

	sidePots := t.pm.sidePots()
	sidePotsCopy := make([]Pot, len(sidePots))
	for i, pot := range sidePots {
		ids := make([]string, len(pot.EligiblePlayerIDs))
		copy(ids, pot.EligiblePlayerIDs)
		sidePotsCopy[i] = Pot{Amount: pot.Amount, EligiblePlayerIDs: ids}
	}
	if len(sidePotsCopy) == 0 {
		sidePotsCopy = nil
	}

	return TableState{
		ID:                t.config.ID,
		Name:              t.config.Name,
		Phase:             t.phase,
		BettingRound:      t.round,
		Pot:               t.mainPotAmount(),
		SidePots:          sidePotsCopy,
		CurrentBet:        t.currentBet,
		MinRaise:          t.minRaise,
		DealerPosition:    t.dealerPosition,
		ActivePlayerIndex: t.activePlayerIndex,
		CommunityCards:    copyCards(t.community),
		Players:           players,
		HandNumber:        t.handNumber,
		RaisesThisRound:   t.raisesThisRound,
	}
}

// mainPotAmount is the collected chips not carved into a side pot
func (t *Table) mainPotAmount() int {
	if len(t.pm.pots) == 0 {
		return t.pm.collected
	}

	return t.pm.mainPot()
}

func copyCards(cards []deck.Card) []deck.Card {
	if len(cards) == 0 {
		return nil
	}

	cp := make([]deck.Card, len(cards))
	copy(cp, cards)
	return cp
}

func copyAction(act *action.Action) *action.Action {
	if act == nil {
		return nil
	}

	cp := *act
	return &cp
}
