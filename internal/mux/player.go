package mux

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	gmux "github.com/gorilla/mux"

	"holdemtable-server/pkg/db"
)

var validDisplayNameRx = regexp.MustCompile(`^[\p{L}\p{N} ]{1,40}\z`)
var validPlayerIDRx = regexp.MustCompile(`^[\w.-]{1,64}\z`)

var statusOK = map[string]string{
	"status": "OK",
}

func (m *Mux) postPlayer() http.HandlerFunc {
	type payload struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Balance     int    `json:"balance"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var p payload
		if !decodeRequest(w, r, &p) {
			return
		}

		if !validPlayerIDRx.MatchString(p.ID) {
			writeJSONError(w, http.StatusBadRequest, errors.New("id must only contain letters, numbers, dots, and dashes, and be 64 characters or less"))
			return
		}

		if !validDisplayNameRx.MatchString(p.DisplayName) {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must only contain letters, numbers, and spaces, and be 40 characters or less"))
			return
		}

		if p.Balance < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("balance cannot be negative"))
			return
		}

		if !m.allowPlayerCreate(remoteAddr(r)) {
			writeJSONError(w, http.StatusTooManyRequests, errors.New("please wait before creating another player"))
			return
		}

		player, err := db.CreatePlayer(r.Context(), p.ID, p.DisplayName, p.Balance)
		if err != nil {
			if err == db.ErrDuplicateKey {
				writeJSONError(w, http.StatusConflict, errors.New("a player with that id already exists"))
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, player)
	}
}

func (m *Mux) getPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := db.GetPlayerByID(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

// allowPlayerCreate rate limits player creation by remote address
func (m *Mux) allowPlayerCreate(addr string) bool {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	if last, ok := m.lastCreateByAddr[addr]; ok && time.Since(last) < m.config.playerCreateDelay {
		return false
	}

	m.lastCreateByAddr[addr] = time.Now()
	return true
}
