package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"holdemtable-server/pkg/casino"
	"holdemtable-server/pkg/db"
	"holdemtable-server/pkg/holdem"
	"holdemtable-server/pkg/holdem/action"
)

// getPlayerByID is swapped out in tests
var getPlayerByID = db.GetPlayerByID

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.casino.Tables())
	}
}

func (m *Mux) postTable() http.HandlerFunc {
	type payload struct {
		Name       string `json:"name"`
		SmallBlind int    `json:"smallBlind"`
		BigBlind   int    `json:"bigBlind"`
		MinBuyIn   int    `json:"minBuyIn"`
		MaxBuyIn   int    `json:"maxBuyIn"`
		MaxSeats   int    `json:"maxSeats"`
	}

	type response struct {
		ID string `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		if p.SmallBlind <= 0 || p.BigBlind <= p.SmallBlind || p.MinBuyIn <= 0 || p.MaxBuyIn < p.MinBuyIn {
			writeJSONError(w, http.StatusBadRequest, holdem.Error("invalid table configuration"))
			return
		}

		id := m.casino.CreateTable(holdem.Config{
			Name:       p.Name,
			SmallBlind: p.SmallBlind,
			BigBlind:   p.BigBlind,
			MinBuyIn:   p.MinBuyIn,
			MaxBuyIn:   p.MaxBuyIn,
			MaxSeats:   p.MaxSeats,
		})

		writeJSON(w, http.StatusCreated, response{ID: id})
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.casino.State(gmux.Vars(r)["uuid"], playerID(r))
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postTableUUIDSeat() http.HandlerFunc {
	type payload struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
		BuyIn    int    `json:"buyIn"`
		Position int    `json:"position"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		if p.PlayerID == "" {
			writeJSONError(w, http.StatusBadRequest, holdem.Error("playerId is required"))
			return
		}

		name := p.Name
		if name == "" {
			player, err := getPlayerByID(r.Context(), p.PlayerID)
			if err != nil {
				writeMaybeNotFoundError(w, err)
				return
			}

			name = player.DisplayName
		}

		tableID := gmux.Vars(r)["uuid"]
		if err := m.casino.AddPlayer(r.Context(), tableID, p.PlayerID, name, p.BuyIn, p.Position); err != nil {
			writeCommandError(w, err)
			return
		}

		state, err := m.casino.State(tableID, p.PlayerID)
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, state)
	}
}

func (m *Mux) deleteTableUUIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := playerID(r)
		if id == "" {
			writeJSONError(w, http.StatusBadRequest, holdem.Error("playerId is required"))
			return
		}

		if err := m.casino.RemovePlayer(r.Context(), gmux.Vars(r)["uuid"], id); err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	type payload struct {
		PlayerID string `json:"playerId"`
		Action   string `json:"action"`
		Amount   *int   `json:"amount"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		act, err := action.FromString(p.Action, p.Amount)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tableID := gmux.Vars(r)["uuid"]
		if err := m.casino.HandleAction(r.Context(), tableID, p.PlayerID, act); err != nil {
			writeCommandError(w, err)
			return
		}

		state, err := m.casino.State(tableID, p.PlayerID)
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) postTableUUIDDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID := gmux.Vars(r)["uuid"]
		if err := m.casino.StartHand(tableID); err != nil {
			writeCommandError(w, err)
			return
		}

		state, err := m.casino.State(tableID, playerID(r))
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) getTableUUIDHands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		hands, err := db.GetHandsByTableID(r.Context(), gmux.Vars(r)["uuid"], int(start), rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, hands)
	}
}

// writeCommandError maps casino and engine errors onto HTTP status codes
func writeCommandError(w http.ResponseWriter, err error) {
	switch err {
	case casino.ErrTableNotFound, db.ErrPlayerNotFound:
		writeJSONError(w, http.StatusNotFound, err)
		return
	case db.ErrInsufficientBalance:
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	if _, ok := err.(holdem.Error); ok {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}
