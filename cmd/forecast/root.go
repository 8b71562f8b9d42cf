package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/garyjia/forecast-reporter/internal/config"
	"github.com/garyjia/forecast-reporter/internal/console"
	"github.com/garyjia/forecast-reporter/internal/container"
	"github.com/garyjia/forecast-reporter/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	configPath string
	verbose    bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger    *zap.Logger
	container *container.Container
}

// run executes one CLI invocation and returns the process exit code
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, console.ErrAborted) {
			fmt.Fprintln(errOut, "Aborted")
			return 1
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "forecast",
		Short: "Validate biweekly time forecasts and build PM and team reports",
		Long: `Reads the biweekly time forecast workbooks of a team from one directory.

Commands:
  validate     Check every forecast and write a validation report.
  report pm    Build the program manager report workbook.
  report team  Build the discipline report workbook.
  history      List recorded runs.

Examples:
  forecast validate --week 01/29/2024
  forecast report pm --yes
  forecast history --limit 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Path to the JSON config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(a.validateCmd(), a.reportCmd(), a.historyCmd())
	return root
}

// start loads configuration and starts the container. Commands call it
// before doing any work.
func (a *app) start(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	notFound := errors.Is(err, config.ErrConfigNotFound)
	if err != nil && !notFound {
		return err
	}

	level := cfg.Logger.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = utils.NewLogger(utils.LoggerConfig{
		Level:      level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if notFound {
		a.logger.Warn("Config file not found, using defaults", zap.String("path", a.configPath))
	}

	a.container, err = container.NewContainer(cfg, a.logger)
	if err != nil {
		return err
	}
	return a.container.Start(ctx)
}

func (a *app) close() {
	if a.container != nil && a.container.Ready() {
		if err := a.container.Close(); err != nil {
			fmt.Fprintf(a.errOut, "Error: %v\n", err)
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// runDirs resolves the forecast and report directories, prompting for each
// unless yes is set. Flags take precedence over configured defaults.
func (a *app) runDirs(p *console.Prompter, dir, outDir string, yes bool) (string, string, error) {
	cfg := a.container.Config()
	if dir == "" {
		dir = cfg.TimeForecastDirectory
	}
	if outDir == "" {
		outDir = cfg.ReportDirectory
	}

	if !yes {
		var err error
		if dir, err = p.Ask("Time forecast directory", dir); err != nil {
			return "", "", err
		}
		if outDir, err = p.Ask("Report directory", outDir); err != nil {
			return "", "", err
		}
	}

	if err := utils.ValidateDirectory(dir); err != nil {
		return "", "", err
	}
	return dir, outDir, nil
}
