// Package holdem implements the authoritative No-Limit Texas Hold'em table
// engine: dealing, blinds, betting rounds, side pots, showdown, and pot
// distribution. The engine is purely synchronous in-memory state; callers are
// responsible for serializing access to a table.
package holdem

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdemtable-server/internal/rng"
	"holdemtable-server/pkg/deck"
	"holdemtable-server/pkg/handeval"
)

// MaxRaisesPerRound caps the number of bets and raises in a single betting round
const MaxRaisesPerRound = 4

const defaultMaxSeats = 9

// Config describes a table. A table is created once and persists across hands.
type Config struct {
	ID         string
	Name       string
	SmallBlind int
	BigBlind   int
	MinBuyIn   int
	MaxBuyIn   int
	MaxSeats   int
}

// Table owns all state for a single table: the seats, the deck, the pots, and
// the per-hand state machine.
type Table struct {
	config    Config
	log       logrus.FieldLogger
	rng       rng.Generator
	deck      *deck.Deck
	evaluator handeval.Evaluator

	players   []*Player // seat order
	community []deck.Card
	pm        potManager

	phase Phase
	round Round

	currentBet        int
	minRaise          int
	lastRaiseAmount   int
	lastRaisePlayerID string
	raisesThisRound   int

	dealerPosition    int // index into players; -1 before the first hand
	activePlayerIndex int

	handNumber     int
	wentToShowdown bool

	// chipsInPlay tracks buy-ins minus cash-outs for the conservation check
	chipsInPlay int
}

// New returns a new table.
// The generator feeds the deck shuffle and the first-hand dealer draw; use
// rng.Crypto in production.
func New(cfg Config, logger logrus.FieldLogger, evaluator handeval.Evaluator, generator rng.Generator) *Table {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}

	if cfg.MaxSeats <= 0 {
		cfg.MaxSeats = defaultMaxSeats
	}

	return &Table{
		config:            cfg,
		log:               logger.WithField("table", cfg.ID),
		rng:               generator,
		deck:              deck.New(generator),
		evaluator:         evaluator,
		phase:             PhaseWaiting,
		round:             RoundPreFlop,
		minRaise:          cfg.BigBlind,
		dealerPosition:    -1,
		activePlayerIndex: -1,
	}
}

// ID returns the table identifier
func (t *Table) ID() string {
	return t.config.ID
}

// Name returns the table display name
func (t *Table) Name() string {
	return t.config.Name
}

// PlayerCount returns the number of seated players
func (t *Table) PlayerCount() int {
	return len(t.players)
}

// HandNumber returns the current hand counter
func (t *Table) HandNumber() int {
	return t.handNumber
}

// AddPlayer seats a player with the provided buy-in.
// When the table is waiting and a second active player sits down, the next
// hand starts immediately. A player joining mid-hand sits out until the hand
// finishes.
func (t *Table) AddPlayer(id, name string, buyIn, position int) error {
	if len(t.players) >= t.config.MaxSeats {
		return ErrTableFull
	}

	if buyIn < t.config.MinBuyIn || buyIn > t.config.MaxBuyIn {
		return ErrInvalidBuyIn
	}

	if position < 0 || position >= t.config.MaxSeats {
		return ErrSeatTaken
	}

	for _, p := range t.players {
		if p.Position == position || p.ID == id {
			return ErrSeatTaken
		}
	}

	player := newPlayer(id, name, buyIn, position)
	if t.handInProgress() {
		player.Status = StatusSittingOut
	}

	t.players = append(t.players, player)
	sort.Slice(t.players, func(i, j int) bool {
		return t.players[i].Position < t.players[j].Position
	})

	t.chipsInPlay += buyIn

	t.log.WithFields(logrus.Fields{
		"player": id,
		"buyIn":  buyIn,
		"seat":   position,
	}).Info("player seated")

	if t.phase == PhaseWaiting && t.eligibleCount() >= 2 {
		if err := t.StartNewHand(); err != nil {
			return err
		}
	}

	return nil
}

// RemovePlayer unseats a player and returns their remaining stack so the
// caller can credit it back to their balance. A player removed while still in
// a hand is folded first; chips they committed stay in the pot.
func (t *Table) RemovePlayer(id string) (int, error) {
	idx := -1
	for i, p := range t.players {
		if p.ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return 0, ErrPlayerNotFound
	}

	player := t.players[idx]
	wasTheirTurn := t.phase == PhaseBetting && idx == t.activePlayerIndex

	if t.handInProgress() && player.inHand() {
		player.fold()
	}

	t.pm.removePlayer(player)
	cashOut := player.Stack
	t.chipsInPlay -= cashOut

	t.players = append(t.players[:idx], t.players[idx+1:]...)
	if idx <= t.dealerPosition {
		t.dealerPosition--
	}
	if idx < t.activePlayerIndex {
		t.activePlayerIndex--
	}

	t.log.WithFields(logrus.Fields{
		"player":  id,
		"cashOut": cashOut,
	}).Info("player removed")

	// the hand must resolve before the table can go quiet; a lone survivor
	// takes the pot uncontested
	if t.phase == PhaseBetting {
		t.pm.rebuild(t.players)

		if survivor, n := t.soleSurvivor(); n == 1 {
			t.awardUncontested(survivor)
		} else if t.isBettingRoundComplete() {
			t.completeBettingRound()
		} else if wasTheirTurn {
			t.activePlayerIndex = t.activePlayerIndex % len(t.players)
			if !t.players[t.activePlayerIndex].canAct() {
				t.advanceTurn()
			}
		}
	}

	if len(t.players) < 2 && !t.handInProgress() {
		t.phase = PhaseWaiting
		t.activePlayerIndex = -1
	}

	t.verifyConservation()
	return cashOut, nil
}

// StartNewHand deals the next hand.
// Valid only between hands (waiting or complete) with at least two players
// holding chips.
func (t *Table) StartNewHand() error {
	if t.handInProgress() {
		return ErrHandInProgress
	}

	if t.eligibleCount() < 2 {
		return ErrNotEnoughPlayers
	}

	t.handNumber++
	t.phase = PhaseStarting
	t.round = RoundPreFlop
	t.community = nil
	t.pm.reset()
	t.currentBet = 0
	t.minRaise = t.config.BigBlind
	t.lastRaiseAmount = 0
	t.lastRaisePlayerID = ""
	t.raisesThisRound = 0
	t.wentToShowdown = false

	if t.dealerPosition == -1 {
		t.dealerPosition = t.rng.Intn(len(t.players))
	} else {
		t.dealerPosition = (t.dealerPosition + 1) % len(t.players)
	}

	for _, p := range t.players {
		p.resetForNewHand()
	}

	t.deck.Reset()
	t.deck.Shuffle()

	for _, p := range t.players {
		if p.Status != StatusActive {
			continue
		}

		cards, err := t.deck.Deal(2)
		if err != nil {
			t.freeze(err)
			return nil
		}

		p.Cards = cards
	}

	t.postBlinds()

	t.phase = PhaseBetting
	t.activePlayerIndex = t.firstToAct()

	t.log.WithFields(logrus.Fields{
		"hand":   t.handNumber,
		"dealer": t.dealerPosition,
	}).Info("hand started")

	// both blinds may already be all-in
	if t.isBettingRoundComplete() {
		t.completeBettingRound()
	}

	t.verifyConservation()
	return nil
}

// postBlinds takes the forced bets from the two active seats after the dealer.
// A short stack posts everything it has and goes all-in.
func (t *Table) postBlinds() {
	sbIndex := t.nextActiveSeat(t.dealerPosition)
	bbIndex := t.nextActiveSeat(sbIndex)

	t.postBlind(t.players[sbIndex], t.config.SmallBlind)
	t.postBlind(t.players[bbIndex], t.config.BigBlind)

	t.currentBet = t.config.BigBlind
}

func (t *Table) postBlind(p *Player, blind int) {
	if p.Stack <= blind {
		blind = p.Stack
	}

	// cannot fail: the amount is capped at the stack
	_ = p.placeBet(blind)
}

// handInProgress returns true while a hand owns the deck and the pots
func (t *Table) handInProgress() bool {
	return t.phase == PhaseStarting || t.phase == PhaseBetting || t.phase == PhaseShowdown
}

// eligibleCount returns the seats that would be dealt into the next hand
func (t *Table) eligibleCount() int {
	count := 0
	for _, p := range t.players {
		if p.Stack > 0 {
			count++
		}
	}

	return count
}

// soleSurvivor returns the last player still in the hand, and how many remain
func (t *Table) soleSurvivor() (*Player, int) {
	var survivor *Player
	count := 0
	for _, p := range t.players {
		if p.inHand() {
			survivor = p
			count++
		}
	}

	return survivor, count
}

// nextActiveSeat returns the next seat index after from holding an active player
func (t *Table) nextActiveSeat(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if t.players[idx].Status == StatusActive || t.players[idx].Status == StatusAllIn {
			return idx
		}
	}

	return from
}

func (t *Table) findPlayer(id string) *Player {
	for _, p := range t.players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

// freeze halts the hand after a fatal invariant violation. Stacks are left
// as-is and the table requires operator attention.
func (t *Table) freeze(err error) {
	t.log.WithError(err).WithField("hand", t.handNumber).Error("fatal table error; freezing hand")
	t.phase = PhaseComplete
	t.activePlayerIndex = -1
}

// verifyConservation checks that no chip has been created or destroyed.
// Σstack + Σbet + Σpots must always equal buy-ins minus cash-outs.
func (t *Table) verifyConservation() {
	total := t.pm.total()
	for _, p := range t.players {
		total += p.Stack + p.Bet
	}

	if total != t.chipsInPlay {
		t.freeze(Error("chip conservation violated"))
	}
}
