package cfg

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rusq/datax/internal/dataset"
)

func TestSetBaseFlags(t *testing.T) {
	t.Run("default flags include the store flag", func(t *testing.T) {
		var fs flag.FlagSet
		SetBaseFlags(&fs, DefaultFlags)
		assert.NotNil(t, fs.Lookup("db"))
		assert.NotNil(t, fs.Lookup("base"))
		assert.NotNil(t, fs.Lookup("trace"))
		assert.NotNil(t, fs.Lookup("v"))
	})
	t.Run("omit store flag", func(t *testing.T) {
		var fs flag.FlagSet
		SetBaseFlags(&fs, OmitStoreFlag)
		assert.Nil(t, fs.Lookup("db"))
		assert.NotNil(t, fs.Lookup("base"))
	})
	t.Run("omit all", func(t *testing.T) {
		var fs flag.FlagSet
		SetBaseFlags(&fs, OmitAll)
		assert.Nil(t, fs.Lookup("db"))
		assert.Nil(t, fs.Lookup("base"))
		assert.NotNil(t, fs.Lookup("log"))
	})
	t.Run("store flag defaults to in-memory", func(t *testing.T) {
		var fs flag.FlagSet
		SetBaseFlags(&fs, DefaultFlags)
		assert.NoError(t, fs.Parse([]string{}))
		assert.Equal(t, dataset.InMemory, StorePath)
	})
}

func TestSetDebugLevel(t *testing.T) {
	old := Verbose
	defer func() {
		Verbose = old
		logLevel.Set(slog.LevelInfo)
	}()

	Verbose = false
	SetDebugLevel()
	assert.Equal(t, slog.Level(slog.LevelInfo), logLevel.Level())

	Verbose = true
	SetDebugLevel()
	assert.Equal(t, slog.Level(slog.LevelDebug), logLevel.Level())
}
