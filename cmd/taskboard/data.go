package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jask/taskboard/internal/demo"
	"github.com/jask/taskboard/internal/service"
	"github.com/jask/taskboard/internal/snapshot"
)

func newExportCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the whole board to a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDatabase(cmd, func(ctx context.Context, db *sql.DB) error {
				doc, err := (&service.MaintenanceService{DB: db}).Export(ctx)
				if err != nil {
					return err
				}
				if err := snapshot.Write(args[0], doc); err != nil {
					return err
				}
				epics, stories := doc.Counts()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d epics, %d stories to %s\n",
					color.GreenString("exported"), epics, stories, args[0])
				return nil
			})
		},
	}
}

func newImportCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the board with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := snapshot.Read(args[0])
			if err != nil {
				return err
			}
			return o.withDatabase(cmd, func(ctx context.Context, db *sql.DB) error {
				if err := (&service.MaintenanceService{DB: db}).Import(ctx, doc); err != nil {
					return err
				}
				epics, stories := doc.Counts()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d epics, %d stories from %s\n",
					color.GreenString("imported"), epics, stories, args[0])
				return nil
			})
		},
	}
}

func newResetCommand(o *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every epic and story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset deletes the whole board; pass --yes to confirm")
			}
			return o.withDatabase(cmd, func(ctx context.Context, db *sql.DB) error {
				if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("board reset"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newSeedCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty board with sample epics and stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withDatabase(cmd, func(ctx context.Context, db *sql.DB) error {
				tr := service.NewTracker(db)
				existing, err := tr.Epics(ctx)
				if err != nil {
					return err
				}
				if len(existing) > 0 {
					return fmt.Errorf("board already has %d epics; run reset first", len(existing))
				}
				res, err := demo.Seed(ctx, tr, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d epics, %d stories\n",
					color.GreenString("seeded"), res.Epics, res.Stories)
				return nil
			})
		},
	}
}
