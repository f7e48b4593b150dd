package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtable-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("HTS_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("HTS_PG_DSN", "postgres://override@localhost/hts")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://override@localhost/hts", cfg.PGDSN)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(1, len(cfg.Tables))
	a.Equal("Low Stakes", cfg.Tables[0].Name)
	a.Equal(10, cfg.Tables[0].SmallBlind)
	a.Equal(25, cfg.Tables[0].BigBlind)

	// ensure that it's only loaded once
	_ = os.Setenv("HTS_PG_DSN", "postgres://other@localhost/hts")
	// ensure we aren't using a pointer
	cfg.PGDSN = "bad"
	cfg = Instance()
	a.Equal("postgres://override@localhost/hts", cfg.PGDSN)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("HTS_CONFIG_FILE", "does-not-exist.yaml")
	defer clear()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("./sql", cfg.MigrationsPath)
	a.Equal(1, len(cfg.Tables))
	a.Equal(50, cfg.Tables[0].BigBlind)
	a.Equal(9, cfg.Tables[0].MaxSeats)
}
