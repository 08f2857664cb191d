package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jask/taskboard/internal/config"
	"github.com/jask/taskboard/internal/logging"
	"github.com/jask/taskboard/internal/navigator"
	"github.com/jask/taskboard/internal/service"
	"github.com/jask/taskboard/internal/shell"
	"github.com/jask/taskboard/internal/tui"
	"github.com/jask/taskboard/internal/ui/pages"
)

func newRunCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the board (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runBoard(cmd)
		},
	}
}

func (o *rootOptions) runBoard(cmd *cobra.Command) error {
	cfg, err := o.load(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.New(logging.Options{
		Path:   cfg.Log.Path,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Error("open database")
		return err
	}
	defer db.Close()

	tracker := service.NewTracker(db)
	deps := &pages.Deps{Store: tracker, Style: cfg.UI.TableStyle()}
	session := shell.NewSession(navigator.New(pages.NewHome(deps), tracker, navigator.WithLogger(log)))

	mode := cfg.UI.Mode
	if mode == config.ModeTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
		mode = config.ModePlain
	}
	log.WithField("mode", mode).WithField("db", cfg.Database.Path).Info("board opened")

	ctx := cmd.Context()
	if mode == config.ModePlain {
		return shell.Run(ctx, session, shell.NewConsole(os.Stdin, cmd.OutOrStdout()), log)
	}
	if err := tui.Run(ctx, session); err != nil {
		log.WithError(err).Error("board stopped")
		return err
	}
	log.Info("board closed")
	return nil
}
