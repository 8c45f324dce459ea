package main

import (
	"context"
	"fmt"
	"io"

	"github.com/amp-labs/rbtset/envutil"
	"github.com/amp-labs/rbtset/logger"
	"github.com/amp-labs/rbtset/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const appName = "rbtset"

// app is the state shared by every subcommand for one invocation.
type app struct {
	envFile string

	// logOutput overrides LOG_OUTPUT when set.
	logOutput io.Writer
	shutdown  func(context.Context) error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:                appName,
		Short:              "Build, inspect and render red-black tree sets",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.postRun,
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "",
		"load environment variables from a .env, .json or .yaml file")

	root.AddCommand(newBuildCmd(a), newShellCmd(a), newVersionCmd())

	return root
}

func (a *app) loggingOptions(extra ...logger.Option) []logger.Option {
	opts := append([]logger.Option{}, extra...)
	if a.logOutput != nil {
		opts = append(opts, logger.WithOutput(a.logOutput))
	}

	return opts
}

// setup loads the env file, configures logging and telemetry, and tags the
// command's context with a fresh run id.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loaded := 0

	if a.envFile != "" {
		n, err := envutil.Apply(a.envFile, false)
		if err != nil {
			return logger.AnnotateError(err, "env_file", a.envFile)
		}

		loaded = n
	}

	logger.ConfigureLogging(appName, a.loggingOptions()...)

	cfg, err := telemetry.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	a.shutdown, err = telemetry.Initialize(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if cfg.Enabled && cfg.Endpoint != "" {
		logger.ConfigureLogging(appName,
			a.loggingOptions(logger.WithExtraHandler(telemetry.LogHandler(appName)))...)
	}

	ctx := logger.With(cmd.Context(), "run_id", uuid.NewString())
	cmd.SetContext(ctx)

	if loaded > 0 {
		logger.Get(ctx).Debug("loaded env file", "path", a.envFile, "vars", loaded)
	}

	return nil
}

func (a *app) postRun(cmd *cobra.Command, _ []string) error {
	return a.teardown(cmd.Context())
}

// teardown flushes telemetry. It is safe to call more than once.
func (a *app) teardown(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}

	err := a.shutdown(context.WithoutCancel(ctx))
	a.shutdown = nil

	if err != nil {
		return fmt.Errorf("shutting down telemetry: %w", err)
	}

	return nil
}
