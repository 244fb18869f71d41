package commands

import (
	"errors"
	"io/fs"
	"os"

	"fxconvert/internal/app"
	"fxconvert/internal/config"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yaml"

var (
	configPath string
	appCfg     *config.AppConfig
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fxconvert",
		Short:         "Live currency conversion",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				if _, err := os.Stat(defaultConfigFile); err == nil {
					path = defaultConfigFile
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			cfg, err := config.Init(path)
			if err != nil {
				return err
			}
			appCfg = cfg
			app.SetupLogger(cfg.Logging.Level)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml when present)")

	root.AddCommand(serveCmd(), convertCmd(), targetsCmd())
	return root
}
