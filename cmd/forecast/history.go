package main

import (
	"errors"

	"github.com/garyjia/forecast-reporter/internal/application/port"
	"github.com/garyjia/forecast-reporter/internal/console"
	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("run history is disabled in the config")

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, newest first",
		Long: `List recorded runs, newest first.

Commands:
  show  Print the findings and missing names of one run.

Examples:
  forecast history --limit 5
  forecast history show 3f1c2a9e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.history(cmd)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.container.Config().History.Limit
			}

			runs, err := history.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			console.NewPrinter(a.out).Runs(runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of runs to list (default from config)")
	cmd.AddCommand(a.historyShowCmd())
	return cmd
}

func (a *app) historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the findings and missing names of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := a.history(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			run, err := history.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			findings, err := history.GetFindings(ctx, run.ID)
			if err != nil {
				return err
			}
			missing, err := history.GetMissing(ctx, run.ID)
			if err != nil {
				return err
			}

			console.NewPrinter(a.out).RunDetail(run, findings, missing)
			return nil
		},
	}
}

// history starts the container and returns the run history reader
func (a *app) history(cmd *cobra.Command) (port.RunHistory, error) {
	if err := a.start(cmd.Context()); err != nil {
		return nil, err
	}

	history := a.container.History()
	if history == nil {
		if err := a.container.HistoryErr(); err != nil {
			return nil, err
		}
		return nil, errHistoryDisabled
	}
	return history, nil
}
