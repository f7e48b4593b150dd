package mux

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// statePeriod is how often the table is polled for a changed snapshot
const statePeriod = time.Millisecond * 250

// getTableUUIDWS streams table snapshots to a client.
// Each message is the full state as seen by the requesting player; a new
// message is sent only when the state changes. Actions still arrive over the
// plain HTTP endpoint.
func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tableID := gmux.Vars(r)["uuid"]
		viewerID := playerID(r)

		if _, err := m.casino.State(tableID, viewerID); err != nil {
			writeCommandError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		done := make(chan bool)
		defer func() {
			close(done)
			_ = conn.Close()
		}()

		go m.stateWriteLoop(conn, tableID, viewerID, done)
		discardReadLoop(conn)
	}
}

func (m *Mux) stateWriteLoop(conn *websocket.Conn, tableID, viewerID string, done chan bool) {
	pingTicker := time.NewTicker(pingPeriod)
	stateTicker := time.NewTicker(statePeriod)
	defer func() {
		pingTicker.Stop()
		stateTicker.Stop()
		_ = conn.Close()
	}()

	var lastSent []byte
	for {
		select {
		case <-done:
			return
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-stateTicker.C:
			state, err := m.casino.State(tableID, viewerID)
			if err != nil {
				// the table is gone; tell the client why and hang up
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, err.Error()))
				return
			}

			encoded, err := json.Marshal(state)
			if err != nil {
				logrus.WithError(err).Error("could not encode table state")
				return
			}

			if bytes.Equal(encoded, lastSent) {
				continue
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, encoded); err != nil {
				return
			}

			lastSent = encoded
		}
	}
}

// discardReadLoop consumes client frames so pongs are processed, returning
// once the client goes away
func discardReadLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("websocket closed unexpectedly")
			}

			return
		}
	}
}
