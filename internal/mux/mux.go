// Package mux wires the casino to HTTP and websocket clients
package mux

import (
	"net/http"
	"sync"
	"time"

	gmux "github.com/gorilla/mux"

	"holdemtable-server/pkg/casino"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  config
	version string
	casino  *casino.Casino

	createMu         sync.Mutex
	lastCreateByAddr map[string]time.Time
}

type config struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string, c *casino.Casino) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		casino:  c,
		config: config{
			playerCreateDelay: time.Minute,
		},
		lastCreateByAddr: make(map[string]time.Time),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	r.Methods(http.MethodGet).Path("/player/{id}").Handler(this.getPlayerID())

	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

	tr := r.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	tr.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
	tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
	tr.Methods(http.MethodPost).Path("/seat").Handler(this.postTableUUIDSeat())
	tr.Methods(http.MethodDelete).Path("/seat").Handler(this.deleteTableUUIDSeat())
	tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableUUIDAction())
	tr.Methods(http.MethodPost).Path("/deal").Handler(this.postTableUUIDDeal())
	tr.Methods(http.MethodGet).Path("/hands").Handler(this.getTableUUIDHands())

	return this
}

// playerID identifies the requesting player.
// There is no account system; clients assert their id with a header or a
// query parameter and the casino only reveals that player's own cards.
func playerID(r *http.Request) string {
	if id := r.Header.Get("X-Player-ID"); id != "" {
		return id
	}

	return r.FormValue("playerId")
}
