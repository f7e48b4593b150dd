package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdemtable-server/internal/config"
	"holdemtable-server/internal/mux"
	"holdemtable-server/pkg/casino"
	"holdemtable-server/pkg/db"
	"holdemtable-server/pkg/holdem"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// run the db migrations
	db.Migrate()

	c := casino.New(logrus.StandardLogger(), db.PlayerLedger{}, db.NewHandHistory(logrus.StandardLogger()))
	openConfiguredTables(c)

	crs := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "X-Player-ID"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(crs.Handler(mux.NewMux(Version, c))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// openConfiguredTables creates the tables listed in the config file so the
// server never starts with an empty lobby
func openConfiguredTables(c *casino.Casino) {
	for _, tc := range config.Instance().Tables {
		c.CreateTable(holdem.Config{
			Name:       tc.Name,
			SmallBlind: tc.SmallBlind,
			BigBlind:   tc.BigBlind,
			MinBuyIn:   tc.MinBuyIn,
			MaxBuyIn:   tc.MaxBuyIn,
			MaxSeats:   tc.MaxSeats,
		})
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
