package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MikimikeDevloppAI/CVAL-sub003/cmd/cli/commands"
	"github.com/MikimikeDevloppAI/CVAL-sub003/internal/config"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/postgres"
	"github.com/MikimikeDevloppAI/CVAL-sub003/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
	app        *commands.AppContext
	store      *postgres.Store
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Clinic scheduler CLI - Plan staff assignments, closings and rooms",
		Long:  `A CLI tool for solving weekly staff schedules, distributing closing responsibilities and booking operating rooms.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if store != nil {
				store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: scheduler_config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.MigrateCmd(appRef()))
	rootCmd.AddCommand(commands.SeedDemandCmd(appRef()))
	rootCmd.AddCommand(commands.PlanBaseCmd(appRef()))
	rootCmd.AddCommand(commands.PlanCoverageCmd(appRef()))
	rootCmd.AddCommand(commands.PlanTheatreCmd(appRef()))
	rootCmd.AddCommand(commands.PlaceFloatersCmd(appRef()))
	rootCmd.AddCommand(commands.AssignClosingsCmd(appRef()))
	rootCmd.AddCommand(commands.AllocateRoomsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it before initialization
// so command constructors can capture the pointer.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config and database
func initApp() error {
	var err error
	appRef()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	store, err = postgres.NewStore(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = store
	app.Migrator = store
	app.Logger.Info("Database connected successfully")

	return nil
}
