package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpgo/loan-amortizer/internal/calculation"
	"github.com/rpgo/loan-amortizer/internal/config"
	"github.com/rpgo/loan-amortizer/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	logText  bool
	logger   *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "amortizer",
		Short: "Fixed-installment loan amortization schedules",
		Long: `amortizer computes French-method amortization schedules for weekly,
biweekly (semi-monthly) and monthly loans, applies payments and principal
credits to a loan balance state, and serves the same operations over HTTP.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			encoding := "json"
			if opts.logText {
				encoding = "text"
			}
			opts.logger = logging.NewLoggerTo(stderr, config.LoggerConfig{Level: opts.logLevel, Encoding: encoding})
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.logText, "log-text", true, "log as text instead of JSON")

	root.AddCommand(
		newScheduleCmd(opts),
		newPayCmd(opts),
		newCreditCmd(opts),
		newServeCmd(opts),
		newFormatsCmd(),
	)
	return root
}

func (o *rootOptions) generator() *calculation.Generator {
	gen := calculation.NewGenerator()
	if o.logger != nil {
		gen.SetLogger(logging.NewAdapter(o.logger))
	}
	return gen
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
