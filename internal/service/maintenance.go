package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/753753753/Card-game/internal/database"
)

// MaintenanceService houses destructive actions exposed through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes the saved game and the archive. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"snapshots", "finished_games"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
