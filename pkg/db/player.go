package db

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a player is created with a taken id
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrPlayerNotFound is an error when no player record matches the id
var ErrPlayerNotFound = errors.New("player not found")

// ErrInsufficientBalance is an error when a debit would take a balance negative
var ErrInsufficientBalance = errors.New("insufficient balance")

const playerColumns = `
players.id,
players.display_name,
players.balance,
players.created,
players.updated`

// Player is a record in the `players` table
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Balance     int       `json:"balance"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getPlayerByRow(row Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(&player.ID, &player.DisplayName, &player.Balance, &player.Created, &player.Updated); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player with a starting balance
func CreatePlayer(ctx context.Context, id, displayName string, balance int) (*Player, error) {
	const query = `
INSERT INTO players (id, display_name, balance)
VALUES ($1, $2, $3)
RETURNING ` + playerColumns

	row := Instance().QueryRowContext(ctx, query, id, displayName, balance)
	player, err := getPlayerByRow(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns the player based on the ID
func GetPlayerByID(ctx context.Context, id string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// PlayerLedger moves chips between player balances and the tables.
// It satisfies the casino's Ledger interface.
type PlayerLedger struct{}

// Debit removes amount from the player's balance.
// The balance check and the update are a single statement, so concurrent
// debits can never drive a balance negative.
func (PlayerLedger) Debit(ctx context.Context, playerID string, amount int) error {
	const query = `
UPDATE players
SET balance = balance - $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
  AND balance >= $1`

	result, err := Instance().ExecContext(ctx, query, amount, playerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		if _, err := GetPlayerByID(ctx, playerID); err != nil {
			return ErrPlayerNotFound
		}

		return ErrInsufficientBalance
	}

	return nil
}

// Credit returns amount to the player's balance
func (PlayerLedger) Credit(ctx context.Context, playerID string, amount int) error {
	const query = `
UPDATE players
SET balance = balance + $1,
    updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	result, err := Instance().ExecContext(ctx, query, amount, playerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPlayerNotFound
	}

	return nil
}
