package main

import (
	"fmt"

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "talent-match"

type rootOptions struct {
	cfgFile string
	json    bool
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "talent-match scores job postings against CVs and ranks candidates for hiring requirements",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "optional config file layered under environment variables")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	cmd.AddCommand(newServeCmd(opts), newMigrateCmd(opts), newScoreCmd(opts))
	return cmd
}

// load reads config and builds the logger; flags win over LOG_JSON/LOG_DEBUG.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	v, err := config.New(o.cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	bindFlag(v, "log_json", cmd, "json")
	bindFlag(v, "log_debug", cmd, "debug")

	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logger.New(o.json, o.debug)
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		_ = v.BindPFlag(key, f)
	}
}
