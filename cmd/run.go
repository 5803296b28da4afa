package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/relloyd/hptransform/actions"
	"github.com/relloyd/hptransform/config"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms"
	"github.com/relloyd/hptransform/stats"
	"github.com/spf13/cobra"
	"golang.org/x/net/context"
)

// sessionOpener connects to the database for both actions.
var sessionOpener actions.SessionOpener = rdbms.OpenSession

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the action found in config.json",
	Long: `Run the action found in config.json in the data directory.
Action "run" is the default and requires environment variables KBC_TOKEN, KBC_RUNID and KBC_URL.
Action "testConnection" connects to the database and prints the status as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComponent(cmd, "")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runComponent loads the configuration and runs its action, or action when it is not empty.
func runComponent(cmd *cobra.Command, action string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := dataDir(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(dir)
	if err != nil {
		return err
	}
	if action == "" {
		action = cfg.GetAction()
	}
	env, err := config.LoadEnvConfig(action == constants.ActionRun)
	if err != nil {
		return err
	}
	log := logger.NewLoggerWithFormat(constants.ServiceName, globalFlags.logLevel, globalFlags.logFormat, stackDumpOnPanic).
		WithRunId(actions.NewRunId(env.RunId))
	switch action {
	case constants.ActionTestConnection:
		return testConnection(ctx, log, cfg, cmd.OutOrStdout())
	default:
		return runTransformation(ctx, log, cfg, env)
	}
}

func runTransformation(ctx context.Context, log logger.Logger, cfg *config.Config, env *config.EnvConfig) error {
	s := stats.NewPipelineStats()
	o, err := actions.NewOrchestrator(ctx, log, env, s)
	if err != nil {
		return err
	}
	o.OpenSession = sessionOpener
	err = o.RunTransformation(ctx, cfg)
	s.LogSummary(log)
	if env.PushgatewayUrl != "" { // if we should publish the run stats...
		if pushErr := s.Push(env.PushgatewayUrl, constants.ServiceName, env.RunId); pushErr != nil {
			log.Warn("unable to push stats: ", pushErr)
		}
	}
	return err
}

func testConnection(ctx context.Context, log logger.Logger, cfg *config.Config, out io.Writer) error {
	status, err := actions.RunTestConnection(ctx, log, cfg, sessionOpener)
	if err != nil {
		return err
	}
	b, err := json.Marshal(status)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
