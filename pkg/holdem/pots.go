package holdem

import "sort"

// Pot is a share of the chips committed this hand along with the players who
// may win it. The first pot in the partition is the main pot; the rest are
// side pots created by all-ins.
type Pot struct {
	Amount            int      `json:"amount"`
	EligiblePlayerIDs []string `json:"eligiblePlayers"`
}

// potManager partitions collected chips into a main pot and side pots.
// Pots only ever contain chips already collected from completed betting
// rounds; live bets remain on the players until collection, so
// Σstack + Σbet + Σpots stays constant for the whole hand.
type potManager struct {
	collected int
	// dead holds the hand-total contributions of players removed mid-hand;
	// their chips stay in the pots they reached, but they can win nothing
	dead []int
	pots []Pot
}

func (pm *potManager) reset() {
	pm.collected = 0
	pm.dead = nil
	pm.pots = nil
}

// total returns every chip the pot manager is holding
func (pm *potManager) total() int {
	return pm.collected
}

// mainPot returns the amount of the main pot
func (pm *potManager) mainPot() int {
	if len(pm.pots) == 0 {
		return 0
	}

	return pm.pots[0].Amount
}

// sidePots returns the side pots in creation order
func (pm *potManager) sidePots() []Pot {
	if len(pm.pots) <= 1 {
		return nil
	}

	return pm.pots[1:]
}

// collect moves every player's round bet into the collected chips and
// recomputes the pot partition
func (pm *potManager) collect(players []*Player) {
	for _, p := range players {
		pm.collected += p.Bet
		p.newRound()
	}

	pm.rebuild(players)
}

// removePlayer absorbs a departing player's chips.
// Any uncollected bet is collected, and the hand-total contribution becomes
// dead money that stays in the pots.
func (pm *potManager) removePlayer(p *Player) {
	pm.collected += p.Bet
	p.Bet = 0

	if p.TotalBet > 0 {
		pm.dead = append(pm.dead, p.TotalBet)
	}
}

// rebuild recomputes the pot partition from hand-total contributions.
// Every distinct all-in commitment among players still in the hand starts a
// new pot level; a pot's eligible players are exactly those who committed at
// least that level. Folded and removed players contribute to each level they
// reached but are never eligible.
func (pm *potManager) rebuild(players []*Player) {
	if pm.collected == 0 {
		pm.pots = nil
		return
	}

	inHand := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.inHand() {
			inHand = append(inHand, p)
		}
	}

	if len(inHand) == 0 {
		// nobody left with a claim; keep a single dead pot
		pm.pots = []Pot{{Amount: pm.collected}}
		return
	}

	maxLevel := 0
	levelSet := make(map[int]bool)
	for _, p := range inHand {
		if p.TotalBet > maxLevel {
			maxLevel = p.TotalBet
		}

		if p.Status == StatusAllIn && p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}

	levelSet[maxLevel] = true

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		if level <= maxLevel {
			levels = append(levels, level)
		}
	}
	sort.Ints(levels)

	contributions := make([]int, 0, len(players)+len(pm.dead))
	for _, p := range players {
		// collected chips only; the live bet is still on the player
		if c := p.TotalBet - p.Bet; c > 0 {
			contributions = append(contributions, c)
		}
	}
	contributions = append(contributions, pm.dead...)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		amount := 0
		for _, c := range contributions {
			if c > level {
				c = level
			}

			if c > prev {
				amount += c - prev
			}
		}

		eligible := make([]string, 0, len(inHand))
		for _, p := range inHand {
			if p.TotalBet >= level {
				eligible = append(eligible, p.ID)
			}
		}

		pots = append(pots, Pot{Amount: amount, EligiblePlayerIDs: eligible})
		prev = level
	}

	// chips committed beyond the deepest in-hand stack (an overbet whose
	// owner later folded or left) stay in the final pot
	excess := 0
	for _, c := range contributions {
		if c > maxLevel {
			excess += c - maxLevel
		}
	}
	pots[len(pots)-1].Amount += excess

	pm.pots = pots
}
