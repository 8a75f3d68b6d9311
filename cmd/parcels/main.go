// Command parcels builds the log-error feature tables and blends submission files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/invertedv/parcels/internal/config"
	"github.com/invertedv/parcels/internal/logging"
)

func main() {
	if e := newRootCmd().Execute(); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "parcels",
		Short:         "Feature engineering and prediction stacking for parcel log-error models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "zap log level (debug, info, warn, error)")

	root.AddCommand(newFeaturesCmd(), newStackCmd(), newCompleteCmd())

	return root
}

// loadConfig binds each flag name in flags to its config key and loads the config.
func loadConfig(cmd *cobra.Command, flags map[string]string) (*config.Config, logging.Logger, error) {
	v := viper.New()

	binds := map[string]string{"log-level": "log_level"}
	for k, val := range flags {
		binds[k] = val
	}

	for flag, key := range binds {
		if e := v.BindPFlag(key, cmd.Flags().Lookup(flag)); e != nil {
			return nil, logging.Logger{}, e
		}
	}

	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		e   error
	)
	if cfg, e = config.Load(v, path); e != nil {
		return nil, logging.Logger{}, e
	}

	return cfg, logging.NewLogger("parcels", cfg.LogLevel).WithStage(cmd.Name()), nil
}
