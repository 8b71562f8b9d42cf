package main

import (
	"time"

	"github.com/garyjia/forecast-reporter/internal/application/service"
	"github.com/garyjia/forecast-reporter/internal/console"
	"github.com/garyjia/forecast-reporter/pkg/utils"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	dir    string
	outDir string
	week   string
	yes    bool
	all    bool
	format string
}

func (a *app) validateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every forecast and write a validation report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.start(cmd.Context()); err != nil {
				return err
			}
			return a.runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Time forecast directory (default from config)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Report directory (default from config)")
	cmd.Flags().StringVarP(&opts.week, "week", "w", "", "Week beginning date, MM/DD/YYYY")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Accept defaults without prompting")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Include passing files and rules in the report")
	cmd.Flags().StringVar(&opts.format, "format", "", "Report format: text or yaml (default from config)")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, opts validateOptions) error {
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
	} else {
		if week, err = p.AskDate("Week beginning (MM/DD/YYYY)", time.Time{}); err != nil {
			return err
		}
	}

	format := opts.format
	if format == "" {
		format = a.container.Config().Validation.Format
	}

	result, err := a.container.Service().Validate(cmd.Context(), service.ValidateRequest{
		Dir:           dir,
		OutDir:        outDir,
		WeekBeginning: week,
		All:           opts.all,
		Format:        format,
	})
	if err != nil {
		return err
	}

	printer := console.NewPrinter(a.out)
	printer.Validation(result.Report, opts.all)
	printer.Saved(result.OutputPath)
	return nil
}
