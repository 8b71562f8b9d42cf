package main

import (
	"time"

	"github.com/garyjia/forecast-reporter/internal/application/service"
	"github.com/garyjia/forecast-reporter/internal/console"
	"github.com/garyjia/forecast-reporter/internal/models"
	"github.com/garyjia/forecast-reporter/pkg/utils"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	dir    string
	outDir string
	week   string
	yes    bool
}

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a report workbook from the forecasts",
		Long: `Build a report workbook from the forecasts.

Commands:
  pm    One section per program manager, one block per contract.
  team  One section per discipline, one block per person.

The week beginning date is taken from the forecasts unless --week is given.`,
	}
	cmd.AddCommand(
		a.reportVariantCmd("pm", "Build the program manager report", models.GroupByProgramManager),
		a.reportVariantCmd("team", "Build the discipline report", models.GroupByDiscipline),
	)
	return cmd
}

func (a *app) reportVariantCmd(use, short string, variant models.GroupBy) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			return a.runReport(cmd, variant, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Time forecast directory (default from config)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Report directory (default from config)")
	cmd.Flags().StringVarP(&opts.week, "week", "w", "", "Week beginning date, MM/DD/YYYY (default from the forecasts)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Accept defaults without prompting")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, variant models.GroupBy, opts reportOptions) error {
	p := console.NewPrompter(a.in, a.out)

	dir, outDir, err := a.runDirs(p, opts.dir, opts.outDir, opts.yes)
	if err != nil {
		return err
	}

	var week time.Time
	if opts.week != "" {
		if week, err = utils.ParseWeekDate(opts.week); err != nil {
			return err
		}
	}

	result, err := a.container.Service().Report(cmd.Context(), service.ReportRequest{
		Dir:           dir,
		OutDir:        outDir,
		Variant:       variant,
		WeekBeginning: week,
	})
	if err != nil {
		return err
	}

	printer := console.NewPrinter(a.out)
	printer.Report(result.Report)
	printer.Saved(result.OutputPath)
	return nil
}
