// Package action defines the player actions the table engine accepts.
// Actions are built through the constructors so an amountless bet or raise
// cannot be represented.
package action

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the action a player takes
type Kind string

// kind constants
const (
	Fold  Kind = "fold"
	Check Kind = "check"
	Call  Kind = "call"
	Bet   Kind = "bet"
	Raise Kind = "raise"
)

// ErrAmountRequired is an error when a bet or raise arrives without an amount
var ErrAmountRequired = fmt.Errorf("an amount is required for a bet or raise")

// Action is a single, fully specified player action
type Action struct {
	kind   Kind
	amount int
}

// NewFold returns a fold
func NewFold() Action {
	return Action{kind: Fold}
}

// NewCheck returns a check
func NewCheck() Action {
	return Action{kind: Check}
}

// NewCall returns a call
func NewCall() Action {
	return Action{kind: Call}
}

// NewBet returns a bet of the provided amount
func NewBet(amount int) Action {
	return Action{kind: Bet, amount: amount}
}

// NewRaise returns a raise to the provided amount
func NewRaise(amount int) Action {
	return Action{kind: Raise, amount: amount}
}

// FromString builds an action from its wire representation.
// amount may be nil for fold, check, and call; bets and raises fail with
// ErrAmountRequired without one.
func FromString(s string, amount *int) (Action, error) {
	switch Kind(s) {
	case Fold:
		return NewFold(), nil
	case Check:
		return NewCheck(), nil
	case Call:
		return NewCall(), nil
	case Bet, Raise:
		if amount == nil {
			return Action{}, ErrAmountRequired
		}

		if Kind(s) == Bet {
			return NewBet(*amount), nil
		}

		return NewRaise(*amount), nil
	}

	return Action{}, fmt.Errorf("unknown action for identifier: %s", s)
}

// Kind returns what the action is
func (a Action) Kind() Kind {
	return a.kind
}

// Amount returns the raise-to amount for a bet or raise, 0 otherwise
func (a Action) Amount() int {
	return a.amount
}

func (a Action) String() string {
	switch a.kind {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return "called"
	case Bet:
		return fmt.Sprintf("bet %d", a.amount)
	case Raise:
		return fmt.Sprintf("raised to %d", a.amount)
	}

	return "no action"
}

type actionJSON struct {
	Kind   Kind `json:"kind"`
	Amount int  `json:"amount,omitempty"`
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		Kind:   a.kind,
		Amount: a.amount,
	})
}

// UnmarshalJSON decodes and validates an action from JSON
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var amount *int
	if raw.Kind == Bet || raw.Kind == Raise {
		amount = &raw.Amount
	}

	parsed, err := FromString(string(raw.Kind), amount)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
