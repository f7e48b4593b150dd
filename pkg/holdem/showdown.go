package holdem

import (
	"sort"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/deck"
)

// showdown reveals hands and distributes every pot.
// Pots are settled in creation order, main pot first; each pot goes to the
// eligible players tied for the strongest seven-card hand.
func (t *Table) showdown() {
	t.phase = PhaseShowdown
	t.wentToShowdown = true
	t.activePlayerIndex = -1

	for _, pot := range t.pm.pots {
		eligible := make([]*Player, 0, len(pot.EligiblePlayerIDs))
		for _, id := range pot.EligiblePlayerIDs {
			if p := t.findPlayer(id); p != nil && p.inHand() {
				eligible = append(eligible, p)
			}
		}

		if len(eligible) == 0 {
			// every eligible player left the table; nothing sensible to do
			// with the chips but log it loudly
			t.log.WithField("amount", pot.Amount).Error("pot with no eligible players")
			t.chipsInPlay -= pot.Amount
			continue
		}

		winners, err := t.evaluateWinners(eligible)
		if err != nil {
			t.freeze(err)
			return
		}

		t.awardPot(pot.Amount, winners)
	}

	t.pm.collected = 0
	t.pm.pots = nil
	t.phase = PhaseComplete

	for _, p := range t.players {
		if p.winnings > 0 {
			t.log.WithFields(logrus.Fields{
				"player":   p.ID,
				"winnings": p.winnings,
				"hand":     p.handDescription,
			}).Info("pot awarded")
		}
	}
}

// evaluateWinners ranks each player's hole cards with the board and returns
// everyone tied for the strongest hand
func (t *Table) evaluateWinners(eligible []*Player) ([]*Player, error) {
	type scored struct {
		player *Player
		score  int16
	}

	best := make([]scored, 0, len(eligible))
	for _, p := range eligible {
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.Cards...)
		cards = append(cards, t.community...)

		result, err := t.evaluator.EvaluateBestHand(cards)
		if err != nil {
			return nil, err
		}

		p.handDescription = result.Name
		best = append(best, scored{player: p, score: result.Score})
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].score > best[j].score
	})

	winners := []*Player{best[0].player}
	for _, s := range best[1:] {
		if s.score != best[0].score {
			break
		}

		winners = append(winners, s.player)
	}

	return winners, nil
}

// awardPot splits an amount between the winners. Odd chips are never
// discarded: they go one at a time to the winners closest to the dealer's
// left.
func (t *Table) awardPot(amount int, winners []*Player) {
	ordered := make([]*Player, len(winners))
	copy(ordered, winners)
	sort.Slice(ordered, func(i, j int) bool {
		return t.seatsAfterDealer(ordered[i]) < t.seatsAfterDealer(ordered[j])
	})

	share := amount / len(ordered)
	remainder := amount % len(ordered)

	for i, winner := range ordered {
		winnings := share
		if i < remainder {
			winnings++
		}

		winner.Stack += winnings
		winner.winnings += winnings
	}
}

// seatsAfterDealer returns how many seats clockwise the player sits from the
// dealer; the dealer itself is the furthest seat
func (t *Table) seatsAfterDealer(p *Player) int {
	n := len(t.players)
	for i, seated := range t.players {
		if seated == p {
			return ((i - t.dealerPosition - 1) % n + n) % n
		}
	}

	return n
}

// awardUncontested gives everything to the last player in the hand without a
// showdown; the hand evaluator is never consulted.
func (t *Table) awardUncontested(winner *Player) {
	t.pm.collect(t.players)

	amount := t.pm.total()
	winner.Stack += amount
	winner.winnings += amount

	t.pm.collected = 0
	t.pm.pots = nil

	t.phase = PhaseComplete
	t.activePlayerIndex = -1

	t.log.WithFields(logrus.Fields{
		"player":   winner.ID,
		"winnings": amount,
		"hand":     t.handNumber,
	}).Info("uncontested pot awarded")
}
