// Package casino owns the running tables. It serializes every command against
// a table, talks to the balance ledger on joins and leaves, and ships
// completed hands to the history sink. The table engine itself never touches
// a ledger or a database.
package casino

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"holdemtable-server/internal/rng"
	"holdemtable-server/pkg/handeval"
	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
)

// ErrTableNotFound is an error when a command references an unknown table
var ErrTableNotFound = errors.New("table not found")

// Ledger debits buy-ins and credits cash-outs against player balances
type Ledger interface {
	// Debit removes amount from the player's balance, failing if the balance
	// would go negative
	Debit(ctx context.Context, playerID string, amount int) error

	// Credit returns amount to the player's balance
	Credit(ctx context.Context, playerID string, amount int) error
}

// HistorySink receives completed hands. Implementations must not block the
// table; delivery is fire-and-forget.
type HistorySink interface {
	RecordHand(ctx context.Context, state holdem.TableState)
}

type seatedTable struct {
	mu    sync.Mutex
	table *holdem.Table

	// lastRecordedHand guards against recording the same hand twice
	lastRecordedHand int
}

// Casino is the table registry.
// Commands for one table are mutually excluded; different tables run in
// parallel without coordination.
type Casino struct {
	mu     sync.RWMutex
	tables map[string]*seatedTable

	log       logrus.FieldLogger
	ledger    Ledger
	history   HistorySink
	evaluator handeval.Evaluator
	rng       rng.Generator
}

// New returns an empty casino. history may be nil.
func New(logger logrus.FieldLogger, ledger Ledger, history HistorySink) *Casino {
	return &Casino{
		tables:    make(map[string]*seatedTable),
		log:       logger,
		ledger:    ledger,
		history:   history,
		evaluator: handeval.SevenCard{},
		rng:       rng.Crypto{},
	}
}

// CreateTable opens a new table and returns its id
func (c *Casino) CreateTable(cfg holdem.Config) string {
	table := holdem.New(cfg, c.log, c.evaluator, c.rng)

	c.mu.Lock()
	c.tables[table.ID()] = &seatedTable{table: table}
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"table": table.ID(),
		"name":  table.Name(),
	}).Info("table created")

	return table.ID()
}

// Tables returns a snapshot of every open table
func (c *Casino) Tables() []holdem.TableState {
	c.mu.RLock()
	seated := make([]*seatedTable, 0, len(c.tables))
	for _, st := range c.tables {
		seated = append(seated, st)
	}
	c.mu.RUnlock()

	states := make([]holdem.TableState, 0, len(seated))
	for _, st := range seated {
		st.mu.Lock()
		states = append(states, st.table.StateForPlayer(""))
		st.mu.Unlock()
	}

	return states
}

func (c *Casino) get(tableID string) (*seatedTable, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, ok := c.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}

	return st, nil
}

// AddPlayer buys a player into a table.
// The buy-in is debited from the player's balance first; if seating fails the
// debit is reversed.
func (c *Casino) AddPlayer(ctx context.Context, tableID, playerID, name string, buyIn, position int) error {
	st, err := c.get(tableID)
	if err != nil {
		return err
	}

	if err := c.ledger.Debit(ctx, playerID, buyIn); err != nil {
		return err
	}

	st.mu.Lock()
	err = st.table.AddPlayer(playerID, name, buyIn, position)
	st.mu.Unlock()

	if err != nil {
		if creditErr := c.ledger.Credit(ctx, playerID, buyIn); creditErr != nil {
			c.log.WithError(creditErr).WithField("player", playerID).Error("could not reverse buy-in")
		}

		return err
	}

	c.maybeRecordHand(st)
	return nil
}

// RemovePlayer unseats a player and credits their stack back to their
// balance. An empty table is evicted from the registry.
func (c *Casino) RemovePlayer(ctx context.Context, tableID, playerID string) error {
	st, err := c.get(tableID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	cashOut, err := st.table.RemovePlayer(playerID)
	empty := st.table.PlayerCount() == 0
	st.mu.Unlock()

	if err != nil {
		return err
	}

	if cashOut > 0 {
		if err := c.ledger.Credit(ctx, playerID, cashOut); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"player":  playerID,
				"cashOut": cashOut,
			}).Error("could not credit cash-out")
		}
	}

	if empty {
		c.mu.Lock()
		delete(c.tables, tableID)
		c.mu.Unlock()

		c.log.WithField("table", tableID).Info("empty table evicted")
	}

	c.maybeRecordHand(st)
	return nil
}

// HandleAction submits a player action to a table
func (c *Casino) HandleAction(ctx context.Context, tableID, playerID string, act action.Action) error {
	st, err := c.get(tableID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	err = st.table.HandleAction(playerID, act)
	st.mu.Unlock()

	if err != nil {
		return err
	}

	c.maybeRecordHand(st)
	return nil
}

// StartHand deals the next hand on a table
func (c *Casino) StartHand(tableID string) error {
	st, err := c.get(tableID)
	if err != nil {
		return err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return st.table.StartNewHand()
}

// State returns the table snapshot as seen by the given player
func (c *Casino) State(tableID, playerID string) (holdem.TableState, error) {
	st, err := c.get(tableID)
	if err != nil {
		return holdem.TableState{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	return st.table.StateForPlayer(playerID), nil
}

// maybeRecordHand ships a newly completed hand to the history sink.
// A hand is recorded exactly once, on the first command that observes it
// finished; a table back in waiting after a walkover still counts.
// The write runs on a fresh context: the request that completed the hand is
// typically gone before the sink gets to it.
func (c *Casino) maybeRecordHand(st *seatedTable) {
	if c.history == nil {
		return
	}

	st.mu.Lock()
	state := st.table.State()
	hand := st.table.HandNumber()

	inProgress := state.Phase == holdem.PhaseStarting || state.Phase == holdem.PhaseBetting || state.Phase == holdem.PhaseShowdown
	record := hand > 0 && hand > st.lastRecordedHand && !inProgress
	if record {
		st.lastRecordedHand = hand
	}
	st.mu.Unlock()

	if record {
		go c.history.RecordHand(context.Background(), state)
	}
}
