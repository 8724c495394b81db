package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"eventsource-adapter/eventsource"
	"eventsource-adapter/internal/plan"
)

const envPrefix = "EVENTSOURCE"

// Configuration keys. Each is also a flag and an EVENTSOURCE_* variable.
const (
	keyConfig         = "config"
	keyLogLevel       = "log-level"
	keyConflictPolicy = "conflict-policy"
	keyFailOnFallback = "fail-on-fallback"
)

type app struct {
	out    io.Writer
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	a.v = viper.New()

	root := &cobra.Command{
		Use:   "eventsource-adapter",
		Short: "Check, describe and exercise notification to event source mappings",
		Long: `eventsource-adapter works with YAML mapping files that translate named
notifications into numbered events of an event source.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.SetOut(a.out)
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "Config file (yaml, json or toml)")
	flags.String(keyLogLevel, "info", "Log level (debug, info, warn, error)")
	flags.String(keyConflictPolicy, plan.ConflictError.String(), "Source type conflicts: error or last-wins")

	_ = a.v.BindPFlags(flags)

	root.AddCommand(
		newCheckCmd(a),
		newDescribeCmd(a),
		newEmitCmd(a),
	)

	return root
}

// execute runs the command line args and flushes the logger before returning.
func execute(a *app, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	err := cmd.Execute()

	if a.logger != nil {
		_ = a.logger.Sync()
	}

	return err
}

func (a *app) init() error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)

		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if a.logger != nil {
		return nil
	}

	level, err := zap.ParseAtomicLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level

	a.logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	return nil
}

// options turns the configuration into builder options. Every command uses
// a fresh registry so unit names start at 1.
func (a *app) options() ([]eventsource.Option, error) {
	name := a.v.GetString(keyConflictPolicy)

	policy, ok := plan.ParseConflictPolicy(name)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q: want %s or %s",
			keyConflictPolicy, name, plan.ConflictError, plan.ConflictLastWins)
	}

	return []eventsource.Option{
		eventsource.WithRegistry(eventsource.NewRegistry()),
		eventsource.WithLogger(a.logger),
		eventsource.WithConflictPolicy(policy),
		eventsource.WithFailOnFallback(a.v.GetBool(keyFailOnFallback)),
	}, nil
}

func (a *app) builder(path string) (*eventsource.Builder, error) {
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	return eventsource.FromFile(path, nil, opts...)
}
