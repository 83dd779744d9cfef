package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Game     GameConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// GameConfig holds the table setup.
type GameConfig struct {
	Players     []string
	SnapshotKey string `mapstructure:"snapshot_key"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// MaxHand is the highlighted upper bound for a hand value. It is a hint only.
	MaxHand int `mapstructure:"max_hand"`
}

// LogConfig holds logger settings. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// DefaultPlayers is the roster used when none is configured.
var DefaultPlayers = []string{"Player 1", "Player 2", "Player 3", "Player 4"}

// Flags returns the command-line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("callbreak", pflag.ContinueOnError)
	fs.String("config", "", "path to config.toml")
	fs.String("db", "", "path to the sqlite database")
	fs.StringSlice("players", nil, "comma-separated player names")
	fs.Bool("history", false, "print finished games and exit")
	fs.Bool("reset", false, "delete the saved game and the archive, then exit")
	fs.Int("demo", 0, "archive this many sample games, then exit")
	return fs
}

// Load reads configuration from file, env and flags. Env var overrides use
// prefix CALLBREAK_. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "callbreak", "callbreak.db"))
	v.SetDefault("game.players", DefaultPlayers)
	v.SetDefault("game.snapshot_key", "callbreak_game")
	v.SetDefault("ui.max_hand", 13)
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "callbreak", "callbreak.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CALLBREAK_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
		if err := bindFlags(v, fs); err != nil {
			return Config{}, err
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "callbreak"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CALLBREAK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		"database.path": "db",
		"game.players":  "players",
	} {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("CALLBREAK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "callbreak", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("game.players", cfg.Game.Players)
	v.Set("game.snapshot_key", cfg.Game.SnapshotKey)
	v.Set("ui.max_hand", cfg.UI.MaxHand)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
