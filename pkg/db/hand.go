package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"holdemtable-server/pkg/holdem"
)

// Hand is a record in the `hands` table
type Hand struct {
	ID         int64           `json:"id"`
	TableID    string          `json:"tableId"`
	HandNumber int             `json:"handNumber"`
	State      json.RawMessage `json:"state"`
	Created    time.Time       `json:"created"`
}

// HandHistory persists completed hands.
// It satisfies the casino's HistorySink interface; failures are logged and
// never surfaced to the table.
type HandHistory struct {
	log logrus.FieldLogger
}

// NewHandHistory returns a HandHistory
func NewHandHistory(logger logrus.FieldLogger) *HandHistory {
	return &HandHistory{log: logger}
}

// RecordHand stores the final snapshot of a completed hand
func (h *HandHistory) RecordHand(ctx context.Context, state holdem.TableState) {
	const query = `
INSERT INTO hands (table_id, hand_number, state)
VALUES ($1, $2, $3)`

	encoded, err := json.Marshal(state)
	if err != nil {
		h.log.WithError(err).Error("could not encode hand")
		return
	}

	if _, err := Instance().ExecContext(ctx, query, state.ID, state.HandNumber, encoded); err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"table": state.ID,
			"hand":  state.HandNumber,
		}).Error("could not record hand")
	}
}

// GetHandsByTableID returns the recorded hands for a table, newest first
func GetHandsByTableID(ctx context.Context, tableID string, start, rows int) ([]*Hand, error) {
	const query = `
SELECT id, table_id, hand_number, state, created
FROM hands
WHERE table_id = $1
ORDER BY hand_number DESC
OFFSET $2 LIMIT $3`

	result, err := Instance().QueryContext(ctx, query, tableID, start, rows)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	hands := make([]*Hand, 0)
	for result.Next() {
		var hand Hand
		if err := result.Scan(&hand.ID, &hand.TableID, &hand.HandNumber, &hand.State, &hand.Created); err != nil {
			return nil, err
		}

		hands = append(hands, &hand)
	}

	return hands, result.Err()
}
