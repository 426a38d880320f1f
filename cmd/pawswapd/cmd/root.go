package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
)

const (
	flagConfig       = "config"
	flagHome         = "home"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagMetricsAddr  = "metrics-addr"
	flagOTLPEndpoint = "otlp-endpoint"
)

// rootState carries the resolved configuration and process services to the
// subcommands.
type rootState struct {
	v        *viper.Viper
	cfg      Config
	logger   log.Logger
	shutdown []func(context.Context) error
}

// NewRootCmd creates a new root command for pawswapd. It is called once in
// the main function.
func NewRootCmd() *cobra.Command {
	state := &rootState{v: viper.New()}
	setDefaults(state.v)

	rootCmd := &cobra.Command{
		Use:   "pawswapd",
		Short: "pawswap constant-product exchange engine",
		Long: `pawswapd runs constant-product liquidity pairs and their registry on a
local state store. It replays the reference liquidity scenario, serves pair
state over HTTP and exports genesis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configFile, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			if state.cfg, err = loadConfig(state.v, configFile); err != nil {
				return err
			}
			if state.logger, err = newLogger(state.cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			return state.startServices()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return state.stopServices()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "config file (toml, yaml or json)")
	flags.String(flagHome, app.DefaultNodeHome, "directory for state data")
	flags.String(flagLogLevel, state.v.GetString(keyLogLevel), "log level (trace|debug|info|warn|error)")
	flags.String(flagLogFormat, state.v.GetString(keyLogFormat), "log format (plain|json)")
	flags.String(flagMetricsAddr, "", "address to serve Prometheus metrics on, e.g. :26660 (disabled when empty)")
	flags.String(flagOTLPEndpoint, "", "OTLP/HTTP endpoint for traces (disabled when empty)")

	if err := bindFlags(state.v, flags, map[string]string{
		keyHome:          flagHome,
		keyLogLevel:      flagLogLevel,
		keyLogFormat:     flagLogFormat,
		keyMetricsAddr:   flagMetricsAddr,
		keyTelemetryOTLP: flagOTLPEndpoint,
	}); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newScenarioCmd(state),
		newServeCmd(state),
		newExportCmd(state),
		newVersionCmd(),
	)
	return rootCmd
}

// bindFlags binds each config key to the named flag so that an explicitly set
// flag overrides the environment and config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

// startServices brings up the metrics server and telemetry providers
// requested by the configuration.
func (s *rootState) startServices() error {
	if s.cfg.MetricsAddr != "" {
		s.shutdown = append(s.shutdown, startPrometheusServer(s.cfg.MetricsAddr, s.logger))
	}

	tel, err := app.InitTelemetry(app.TelemetryConfig{
		Enabled:           s.cfg.OTLPEndpoint != "" || s.cfg.MetricsAddr != "",
		OTLPEndpoint:      s.cfg.OTLPEndpoint,
		PrometheusEnabled: s.cfg.MetricsAddr != "",
		SampleRate:        s.cfg.SampleRate,
	})
	if err != nil {
		return err
	}
	s.shutdown = append(s.shutdown, tel.Shutdown)
	return nil
}

func (s *rootState) stopServices() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, s.shutdown[i](ctx))
	}
	s.shutdown = nil
	return errors.Join(errs...)
}
