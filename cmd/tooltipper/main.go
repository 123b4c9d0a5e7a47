package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/internal/cli"
	tterrors "github.com/matzehuels/tooltipper/pkg/errors"
)

// Exit codes. Usage errors (bad flags, fixtures or steps) are told apart from
// failures so scripts driving simulate can react to them.
const (
	exitFailure   = 1
	exitUsage     = 2
	exitInterrupt = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		os.Exit(exitInterrupt)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

func run(ctx context.Context) error {
	var (
		verbose   bool
		logFormat string
	)

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&logFormat, "log-format", cli.LogFormatText, "log format: text, json, logfmt")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		return c.SetLogFormat(logFormat)
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch tterrors.GetCode(err) {
	case tterrors.ErrCodeInvalidInput, tterrors.ErrCodeInvalidConfig, tterrors.ErrCodeInvalidFixture,
		tterrors.ErrCodeInvalidStep, tterrors.ErrCodeInvalidFormat, tterrors.ErrCodeUnsupported,
		tterrors.ErrCodeFileNotFound:
		return exitUsage
	default:
		return exitFailure
	}
}
