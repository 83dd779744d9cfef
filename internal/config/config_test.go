package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CALLBREAK_CONFIG", "")
	t.Setenv("CALLBREAK_GAME_PLAYERS", "")
	t.Setenv("CALLBREAK_DATABASE_PATH", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "callbreak", "callbreak.db"), cfg.Database.Path)
	require.Equal(t, DefaultPlayers, cfg.Game.Players)
	require.Equal(t, "callbreak_game", cfg.Game.SnapshotKey)
	require.Equal(t, 13, cfg.UI.MaxHand)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, "callbreak.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[game]
players = ["Asha", "Bikash", "Chandra", "Dipa"]
snapshot_key = "friday"

[ui]
max_hand = 8
`), 0o600))
	t.Setenv("CALLBREAK_CONFIG", path)
	t.Setenv("CALLBREAK_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"Asha", "Bikash", "Chandra", "Dipa"}, cfg.Game.Players)
	require.Equal(t, "friday", cfg.Game.SnapshotKey)
	require.Equal(t, 8, cfg.UI.MaxHand)
	require.Equal(t, "debug", cfg.Log.Level)

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--players", "W,X,Y,Z", "--db", "/tmp/cb.db"}))
	cfg, err = Load(fs)
	require.NoError(t, err)
	require.Equal(t, []string{"W", "X", "Y", "Z"}, cfg.Game.Players)
	require.Equal(t, "/tmp/cb.db", cfg.Database.Path)
	require.Equal(t, "friday", cfg.Game.SnapshotKey)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game\nplayers = "), 0o600))
	t.Setenv("CALLBREAK_CONFIG", path)

	_, err := Load(nil)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg", "config.toml")
	t.Setenv("CALLBREAK_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: filepath.Join(home, "db.sqlite")},
		Game:     GameConfig{Players: []string{"N", "E", "S", "W"}, SnapshotKey: "club"},
		UI:       UIConfig{MaxHand: 13},
		Log:      LogConfig{Path: "", Level: "warn"},
	}
	require.NoError(t, Save(want))

	got, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, want.Database, got.Database)
	require.Equal(t, want.Game, got.Game)
	require.Equal(t, want.UI, got.UI)
	require.Equal(t, "warn", got.Log.Level)
}
