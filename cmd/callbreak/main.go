package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/753753753/Card-game/internal/config"
	"github.com/753753753/Card-game/internal/database"
	"github.com/753753753/Card-game/internal/database/repository"
	"github.com/753753753/Card-game/internal/game"
	"github.com/753753753/Card-game/internal/logging"
	"github.com/753753753/Card-game/internal/service"
	"github.com/753753753/Card-game/internal/testdata"
	"github.com/753753753/Card-game/internal/tui"
)

func main() {
	ctx := context.Background()

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("flags: %v", err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	players, err := game.CheckPlayers(cfg.Game.Players)
	if err != nil {
		log.Fatalf("players: %v", err)
	}
	for _, pair := range game.SimilarPlayers(players) {
		logger.Warn("player names differ by one letter", zap.String("a", pair[0]), zap.String("b", pair[1]))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// repositories
	snapshots := repository.NewSnapshotRepo(db)
	games := repository.NewGameRepo(db)

	history := &service.History{Games: games}
	maintenance := &service.MaintenanceService{DB: db}

	if reset, _ := flags.GetBool("reset"); reset {
		if err := maintenance.Reset(ctx); err != nil {
			log.Fatalf("reset: %v", err)
		}
		logger.Info("database reset")
		fmt.Println("saved game and history cleared")
		return
	}
	if n, _ := flags.GetInt("demo"); n > 0 {
		if err := testdata.Seed(ctx, history, players, n, time.Now().UnixNano()); err != nil {
			log.Fatalf("demo: %v", err)
		}
		fmt.Printf("archived %d sample games\n", n)
		return
	}
	if show, _ := flags.GetBool("history"); show {
		if err := printHistory(ctx, history); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	}

	tracker, err := game.NewTracker(ctx, players, snapshots,
		game.WithSnapshotKey(cfg.Game.SnapshotKey),
		game.WithArchive(history),
		game.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("tracker: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, tracker, cfg.UI, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(ctx context.Context, h *service.History) error {
	games, err := h.Recent(ctx, 20)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("no finished games yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FINISHED\tROUNDS\tWINNER\tSCORES")
	for _, g := range games {
		scores := make([]string, 0, len(g.Players))
		for i, p := range g.Players {
			scores = append(scores, fmt.Sprintf("%s %d", p, g.Totals[i]))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			g.FinishedAt.Local().Format("2006-01-02 15:04"),
			g.Rounds,
			strings.Join(g.Winners(), ", "),
			strings.Join(scores, ", "),
		)
	}
	return w.Flush()
}
