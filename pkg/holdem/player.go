package holdem

import (
	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/holdem/action"
)

// Status is a player's state within the current hand
type Status string

// status constants
const (
	// StatusActive means the player is dealt in and may still act
	StatusActive Status = "active"
	// StatusFolded and StatusAllIn are terminal for the rest of the hand
	StatusFolded Status = "folded"
	StatusAllIn  Status = "all-in"
	// StatusSittingOut and StatusAway players are skipped when dealing; both
	// return to active at the next hand if they have chips
	StatusSittingOut Status = "sitting_out"
	StatusAway       Status = "away"
)

// Player is a seated player.
// The Table owns all Player records; nothing outside the engine holds a
// mutable reference to one.
type Player struct {
	ID       string
	Name     string
	Position int

	// Stack is the player's chips not committed to the current hand
	Stack int
	// Bet is the chips committed in the current betting round
	Bet int
	// TotalBet is the chips committed over the entire hand
	TotalBet int

	Status Status
	Cards  []deck.Card

	// LastAction and LastActionAmount are display hints only; turn and
	// round-completion logic never consults them
	LastAction       *action.Action
	LastActionAmount int

	// actedSinceRaise is set when the player voluntarily acts and cleared
	// whenever another player raises. A betting round cannot end while an
	// active player still has this unset.
	actedSinceRaise bool

	// showdown bookkeeping, reset every hand
	handDescription string
	winnings        int
}

func newPlayer(id, name string, buyIn, position int) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Position: position,
		Stack:    buyIn,
		Status:   StatusActive,
	}
}

// canAct returns true if the player may check, call, bet, raise, or fold
func (p *Player) canAct() bool {
	return p.Status == StatusActive && p.Stack > 0
}

// inHand returns true if the player still has a claim on the pot
func (p *Player) inHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// placeBet commits chips from the player's stack.
// A bet that consumes the stack moves the player all-in.
func (p *Player) placeBet(amount int) error {
	if amount > p.Stack {
		return ErrInsufficientChips
	}

	p.Bet += amount
	p.TotalBet += amount
	p.Stack -= amount

	if p.Stack == 0 && p.Status == StatusActive {
		p.Status = StatusAllIn
	}

	return nil
}

func (p *Player) fold() {
	p.Status = StatusFolded
	p.Cards = nil

	act := action.NewFold()
	p.LastAction = &act
	p.LastActionAmount = 0
}

func (p *Player) sitOut() {
	p.Status = StatusSittingOut
	p.Cards = nil
}

func (p *Player) standUp() {
	p.Status = StatusAway
	p.Cards = nil
}

// resetForNewHand prepares the player for the next hand.
// Broke players sit out until they re-buy.
func (p *Player) resetForNewHand() {
	p.Cards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.LastAction = nil
	p.LastActionAmount = 0
	p.actedSinceRaise = false
	p.handDescription = ""
	p.winnings = 0

	if p.Stack > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusSittingOut
	}
}

// newRound resets the per-round fields when bets are collected
func (p *Player) newRound() {
	p.Bet = 0
	p.actedSinceRaise = false
	p.LastAction = nil
	p.LastActionAmount = 0
}
