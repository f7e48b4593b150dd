package holdem

import (
	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/holdem/action"
)

// HandleAction applies a player action to the current betting round.
// Errors leave the table untouched; a successful action may complete the
// round, deal the next street, or end the hand.
func (t *Table) HandleAction(playerID string, act action.Action) error {
	if t.phase != PhaseBetting {
		return ErrInvalidPhase
	}

	player := t.findPlayer(playerID)
	if player == nil {
		return ErrPlayerNotFound
	}

	if t.activePlayerIndex < 0 || t.players[t.activePlayerIndex] != player {
		return ErrNotYourTurn
	}

	switch act.Kind() {
	case action.Fold:
		t.handleFold(player)
	case action.Check:
		if err := t.handleCheck(player); err != nil {
			return err
		}
	case action.Call:
		if err := t.handleCall(player); err != nil {
			return err
		}
	case action.Bet, action.Raise:
		if err := t.handleBetOrRaise(player, act); err != nil {
			return err
		}
	}

	player.actedSinceRaise = true

	t.log.WithFields(logrus.Fields{
		"player": player.ID,
		"hand":   t.handNumber,
		"round":  t.round,
	}).Debug(act.String())

	if t.phase == PhaseBetting {
		if t.isBettingRoundComplete() {
			t.completeBettingRound()
		} else {
			t.advanceTurn()
		}
	}

	t.verifyConservation()
	return nil
}

func (t *Table) handleFold(p *Player) {
	p.fold()

	if survivor, n := t.soleSurvivor(); n == 1 {
		t.awardUncontested(survivor)
	}
}

func (t *Table) handleCheck(p *Player) error {
	if t.currentBet > p.Bet {
		return ErrCannotCheckWithOpenBet
	}

	act := action.NewCheck()
	p.LastAction = &act
	p.LastActionAmount = 0
	return nil
}

func (t *Table) handleCall(p *Player) error {
	callAmount := t.currentBet - p.Bet
	if callAmount <= 0 {
		return ErrNoBetToCall
	}

	if callAmount > p.Stack {
		// calling for less than the full amount puts the player all-in
		callAmount = p.Stack
	}

	if err := p.placeBet(callAmount); err != nil {
		return err
	}

	act := action.NewCall()
	p.LastAction = &act
	p.LastActionAmount = callAmount
	return nil
}

// handleBetOrRaise applies a bet or raise where the amount is the total the
// player's round bet is raised to.
func (t *Table) handleBetOrRaise(p *Player, act action.Action) error {
	if t.raisesThisRound >= MaxRaisesPerRound {
		return ErrMaxRaisesReached
	}

	amount := act.Amount()
	if amount <= 0 {
		return ErrAmountRequired
	}

	// a raise that does not exceed the current bet raises nothing; preflop the
	// posted big blind would otherwise slip past the minimum check below
	if amount <= t.currentBet {
		return ErrBelowMinimumRaise
	}

	// the opening raise over the posted big blind only needs to double it;
	// afterwards every raise must double the current bet
	minBet := t.currentBet * 2
	if t.round == RoundPreFlop && t.currentBet == t.config.BigBlind {
		minBet = t.config.BigBlind
	}

	if amount < minBet {
		return ErrBelowMinimumRaise
	}

	// amount is the raise-to total, so the chips already in front count
	if amount > p.Stack+p.Bet {
		return ErrInsufficientChips
	}

	if err := p.placeBet(amount - p.Bet); err != nil {
		return err
	}

	previousBet := t.currentBet
	t.currentBet = amount
	t.lastRaiseAmount = amount - previousBet
	t.minRaise = t.lastRaiseAmount
	t.lastRaisePlayerID = p.ID
	t.raisesThisRound++

	// everybody else must respond to the new bet
	for _, other := range t.players {
		if other != p {
			other.actedSinceRaise = false
		}
	}

	p.LastAction = &act
	p.LastActionAmount = amount
	return nil
}

// advanceTurn moves the action to the next seat that can act
func (t *Table) advanceTurn() {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		idx := (t.activePlayerIndex + i) % n
		if t.players[idx].canAct() {
			t.activePlayerIndex = idx
			return
		}
	}
}

// firstToAct returns the seat opening the current betting round: left of the
// big blind preflop, left of the dealer on later streets. Seats that cannot
// act are skipped.
func (t *Table) firstToAct() int {
	n := len(t.players)

	start := (t.dealerPosition + 1) % n
	if t.round == RoundPreFlop {
		start = (t.dealerPosition + 3) % n
	}

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if t.players[idx].canAct() {
			return idx
		}
	}

	return start
}

// isBettingRoundComplete returns true when no further action is possible this
// round: at most one player still has a claim on the pot, or every player who
// can act has matched the current bet since the last raise. Tracking the
// "acted since last raise" bit per player is what guarantees the big blind
// gets its option preflop regardless of seat order.
func (t *Table) isBettingRoundComplete() bool {
	if _, n := t.soleSurvivor(); n <= 1 {
		return true
	}

	actionable := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if p.canAct() {
			actionable = append(actionable, p)
		}
	}

	// with every opponent all-in, betting is moot once the remaining player
	// has matched the bet; they still owe a call or fold if they have not
	if len(actionable) == 0 {
		return true
	}
	if len(actionable) == 1 {
		return actionable[0].Bet == t.currentBet
	}

	for _, p := range actionable {
		if !p.actedSinceRaise || p.Bet != t.currentBet {
			return false
		}
	}

	return true
}

// completeBettingRound collects the bets and advances the street. If nobody is
// left to act on the next street (everyone all-in), it keeps dealing until
// showdown.
func (t *Table) completeBettingRound() {
	for {
		t.pm.collect(t.players)

		t.currentBet = 0
		t.minRaise = t.config.BigBlind
		t.lastRaiseAmount = 0
		t.lastRaisePlayerID = ""
		t.raisesThisRound = 0

		var err error
		switch t.round {
		case RoundPreFlop:
			t.round = RoundFlop
			err = t.dealCommunity(3)
		case RoundFlop:
			t.round = RoundTurn
			err = t.dealCommunity(1)
		case RoundTurn:
			t.round = RoundRiver
			err = t.dealCommunity(1)
		case RoundRiver:
			t.showdown()
			return
		}

		if err != nil {
			t.freeze(err)
			return
		}

		t.activePlayerIndex = t.firstToAct()
		if !t.isBettingRoundComplete() {
			return
		}
	}
}

// dealCommunity burns one card, then deals n cards to the board
func (t *Table) dealCommunity(n int) error {
	if _, err := t.deck.Deal(1); err != nil {
		return err
	}

	cards, err := t.deck.Deal(n)
	if err != nil {
		return err
	}

	t.community = append(t.community, cards...)
	return nil
}
