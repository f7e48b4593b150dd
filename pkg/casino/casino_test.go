package casino

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
)

type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]int
}

func newFakeLedger(balances map[string]int) *fakeLedger {
	return &fakeLedger{balances: balances}
}

func (l *fakeLedger) Debit(_ context.Context, playerID string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[playerID] < amount {
		return errors.New("insufficient balance")
	}

	l.balances[playerID] -= amount
	return nil
}

func (l *fakeLedger) Credit(_ context.Context, playerID string, amount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[playerID] += amount
	return nil
}

func (l *fakeLedger) balance(playerID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[playerID]
}

type recordedHand struct {
	ctx   context.Context
	state holdem.TableState
}

type fakeHistory struct {
	hands chan recordedHand
}

func (h *fakeHistory) RecordHand(ctx context.Context, state holdem.TableState) {
	h.hands <- recordedHand{ctx: ctx, state: state}
}

func testCasino(balances map[string]int) (*Casino, *fakeLedger, *fakeHistory) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ledger := newFakeLedger(balances)
	history := &fakeHistory{hands: make(chan recordedHand, 10)}

	return New(logger, ledger, history), ledger, history
}

func tableConfig() holdem.Config {
	return holdem.Config{
		Name:       "Test Table",
		SmallBlind: 25,
		BigBlind:   50,
		MinBuyIn:   100,
		MaxBuyIn:   10000,
	}
}

func TestCasino_unknownTable(t *testing.T) {
	a := assert.New(t)

	c, _, _ := testCasino(nil)
	ctx := context.Background()

	a.Equal(ErrTableNotFound, c.AddPlayer(ctx, "nope", "p1", "Player 1", 1000, 0))
	a.Equal(ErrTableNotFound, c.RemovePlayer(ctx, "nope", "p1"))
	a.Equal(ErrTableNotFound, c.HandleAction(ctx, "nope", "p1", action.NewFold()))
	a.Equal(ErrTableNotFound, c.StartHand("nope"))

	_, err := c.State("nope", "p1")
	a.Equal(ErrTableNotFound, err)
}

func TestCasino_joinDebitsBalance(t *testing.T) {
	a := assert.New(t)

	c, ledger, _ := testCasino(map[string]int{"p1": 5000, "p2": 50})
	ctx := context.Background()

	tableID := c.CreateTable(tableConfig())

	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))
	a.Equal(4000, ledger.balance("p1"))

	// not enough in the bank
	err := c.AddPlayer(ctx, tableID, "p2", "Player 2", 1000, 1)
	a.EqualError(err, "insufficient balance")
	a.Equal(50, ledger.balance("p2"))
}

func TestCasino_failedSeatingReversesDebit(t *testing.T) {
	a := assert.New(t)

	c, ledger, _ := testCasino(map[string]int{"p1": 5000, "p2": 5000})
	ctx := context.Background()

	tableID := c.CreateTable(tableConfig())
	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))

	// seat 0 is taken; the debit must come back
	a.Equal(holdem.ErrSeatTaken, c.AddPlayer(ctx, tableID, "p2", "Player 2", 1000, 0))
	a.Equal(5000, ledger.balance("p2"))
}

func TestCasino_leaveCreditsStackAndEvictsEmptyTable(t *testing.T) {
	a := assert.New(t)

	c, ledger, _ := testCasino(map[string]int{"p1": 5000, "p2": 5000})
	ctx := context.Background()

	tableID := c.CreateTable(tableConfig())
	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))
	a.Len(c.Tables(), 1)

	a.NoError(c.RemovePlayer(ctx, tableID, "p1"))
	a.Equal(5000, ledger.balance("p1"))

	a.Empty(c.Tables())
	_, err := c.State(tableID, "p1")
	a.Equal(ErrTableNotFound, err)
}

func TestCasino_handFlowAndHistory(t *testing.T) {
	a := assert.New(t)

	c, ledger, history := testCasino(map[string]int{"p1": 5000, "p2": 5000})
	ctx := context.Background()

	tableID := c.CreateTable(tableConfig())
	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))
	a.NoError(c.AddPlayer(ctx, tableID, "p2", "Player 2", 1000, 1))

	// two players seated; the first hand is live
	state, err := c.State(tableID, "p1")
	a.NoError(err)
	a.Equal(holdem.PhaseBetting, state.Phase)
	a.Equal(1, state.HandNumber)

	// fold the opening seat; the hand completes and lands in the history sink
	opener := state.Players[state.ActivePlayerIndex]
	a.NoError(c.HandleAction(ctx, tableID, opener.ID, action.NewFold()))

	select {
	case recorded := <-history.hands:
		a.Equal(holdem.PhaseComplete, recorded.state.Phase)
		a.Equal(1, recorded.state.HandNumber)
	case <-time.After(time.Second):
		a.Fail("hand never reached the history sink")
	}

	// the next hand starts on demand, not automatically
	state, err = c.State(tableID, "p1")
	a.NoError(err)
	a.Equal(holdem.PhaseComplete, state.Phase)

	a.NoError(c.StartHand(tableID))
	state, err = c.State(tableID, "p1")
	a.NoError(err)
	a.Equal(2, state.HandNumber)

	// both stacks come home when the players stand up
	a.NoError(c.RemovePlayer(ctx, tableID, "p1"))
	a.NoError(c.RemovePlayer(ctx, tableID, "p2"))
	a.Equal(10000, ledger.balance("p1")+ledger.balance("p2"))
}

func TestCasino_historyOutlivesRequestContext(t *testing.T) {
	a := assert.New(t)

	c, _, history := testCasino(map[string]int{"p1": 5000, "p2": 5000})
	ctx, cancel := context.WithCancel(context.Background())

	tableID := c.CreateTable(tableConfig())
	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))
	a.NoError(c.AddPlayer(ctx, tableID, "p2", "Player 2", 1000, 1))

	state, err := c.State(tableID, "p1")
	a.NoError(err)

	opener := state.Players[state.ActivePlayerIndex]
	a.NoError(c.HandleAction(ctx, tableID, opener.ID, action.NewFold()))

	// the request that finished the hand is cancelled before the sink runs;
	// the recorded hand must not arrive on a dead context
	cancel()

	select {
	case recorded := <-history.hands:
		a.NoError(recorded.ctx.Err())
	case <-time.After(time.Second):
		a.Fail("hand never reached the history sink")
	}
}

func TestCasino_stateMasksOtherPlayers(t *testing.T) {
	a := assert.New(t)

	c, _, _ := testCasino(map[string]int{"p1": 5000, "p2": 5000})
	ctx := context.Background()

	tableID := c.CreateTable(tableConfig())
	a.NoError(c.AddPlayer(ctx, tableID, "p1", "Player 1", 1000, 0))
	a.NoError(c.AddPlayer(ctx, tableID, "p2", "Player 2", 1000, 1))

	state, err := c.State(tableID, "p1")
	a.NoError(err)

	for _, p := range state.Players {
		if p.ID == "p1" {
			a.Len(p.Cards, 2)
		} else {
			a.Nil(p.Cards)
		}
	}
}
