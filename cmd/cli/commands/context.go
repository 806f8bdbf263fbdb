package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/internal/config"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/db"
)

// Migrator applies pending schema migrations.
type Migrator interface {
	RunMigrations(ctx context.Context) error
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Migrator Migrator
	Logger   *zap.Logger
	Ctx      context.Context
}

// addWeekFlags registers the flags shared by every planning command.
func addWeekFlags(cmd *cobra.Command) {
	cmd.Flags().String("week", "", "Any date inside the target week (YYYY-MM-DD, default: current week)")
	cmd.Flags().Bool("dry-run", false, "Solve and report without saving to the database")
}

// weekFlags reads back the shared planning flags.
func weekFlags(cmd *cobra.Command) (time.Time, bool, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	raw, _ := cmd.Flags().GetString("week")
	if raw == "" {
		return time.Now().UTC(), dryRun, nil
	}
	week, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid --week value %q: %w", raw, err)
	}
	return week, dryRun, nil
}

// seed returns the configured shuffle seed, or a time-derived one.
func (app *AppContext) seed() int64 {
	if app.Cfg.Seed != nil {
		return *app.Cfg.Seed
	}
	return time.Now().UnixNano()
}
