// Command fixedincome exposes day count and zero-coupon pricing from the command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/meenmo/fixedincome/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

// errItemsFailed marks a batch run where some items carry an error; the output is already written.
var errItemsFailed = errors.New("one or more requests failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	root := app.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errItemsFailed) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *logrus.Logger
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fixedincome",
		Short:         "Day count conventions and zero-coupon bond pricing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/fixedincome.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.versionCmd(),
		a.conventionsCmd(),
		a.dayCountCmd(),
		a.yearFracCmd(),
		a.priceCmd(),
		a.batchCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	var err error
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		a.cfg.Logging.Level = level
	}
	a.logger, err = config.NewLogger(a.cfg.Logging, a.stderr)
	if err != nil {
		return err
	}
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.stdout, "fixedincome %s (commit %s)\n", version, commit)
			return nil
		},
	}
}
