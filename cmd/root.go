package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/relloyd/hptransform/helper"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
)

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2026-10-17T00:00+0000"
	stackDumpOnPanic bool
)

var rootCmd = &cobra.Command{
	Use:   "hptransform",
	Short: "Run SQL transformations against an Oracle database",
	Long: `hptransform loads the input tables into an Oracle database using the Oracle writer component,
runs the configured blocks of SQL scripts in a single database session and unloads the output
tables using the Oracle extractor component. The configuration is read from config.json in the
data directory.`,
	SilenceUsage:  true,
	SilenceErrors: true, // Execute prints the error
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	printStack := helper.GetTrueFalseStringAsBool(helper.ReadValueFromEnvWithDefault(flagNameToEnvVar("print-stack"), ""))
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", printStack, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
	switches.addPersistentFlag(rootCmd, &globalFlags.dataDir, "data-dir")
	switches.addPersistentFlag(rootCmd, &globalFlags.logLevel, "log-level")
	switches.addPersistentFlag(rootCmd, &globalFlags.logFormat, "log-format")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signalContext()
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(hperrors.ExitCode(err))
	}
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	chanQuit := make(chan os.Signal, 2)
	signal.Notify(chanQuit, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-chanQuit: // if we were interrupted...
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(chanQuit)
	}()
	return ctx, cancel
}
