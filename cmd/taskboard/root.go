package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jask/taskboard/internal/config"
	"github.com/jask/taskboard/internal/database"
)

type rootOptions struct {
	configPath string
	dbPath     string
	plain      bool
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Terminal board for epics and stories",
		Long:          "Terminal board for epics and stories. Without a subcommand it opens the board.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runBoard(cmd)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default $TASKBOARD_CONFIG or ~/.config/taskboard/config.toml)")
	flags.StringVar(&o.dbPath, "db", "", "board database file")
	flags.BoolVar(&o.plain, "plain", false, "use the line-oriented console instead of the full screen UI")

	cmd.AddCommand(
		newRunCommand(o),
		newExportCommand(o),
		newImportCommand(o),
		newResetCommand(o),
		newSeedCommand(o),
		newConfigCommand(o),
	)
	return cmd
}

// load resolves the configuration with flags applied on top.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	v := config.New(o.configPath)
	if cmd.Flags().Changed("db") {
		v.Set("database.path", o.dbPath)
	}
	if o.plain {
		v.Set("ui.mode", config.ModePlain)
	}
	return config.Load(v)
}

// openDatabase migrates the board database, creating it if needed, and
// opens it.
func openDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// withDatabase loads config, opens the database and runs fn against it.
func (o *rootOptions) withDatabase(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) error) error {
	cfg, err := o.load(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(cmd.Context(), db)
}
