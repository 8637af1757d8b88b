// Package commands defines the exoctl command tree.
package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/logging"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	configurationPath string
	cloudConfigsPath  string
	logLevel          string
}

// Root returns the root command for the exoctl CLI
func Root() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "exoctl",
		Short:         "Validate and query cloud dashboard configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), opts.logLevel, "console")
			if err != nil {
				return err
			}
			log.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configurationPath, "configuration", "", "Path to the deployment configuration file")
	cmd.PersistentFlags().StringVarP(&opts.cloudConfigsPath, "clouds", "c", "cloud_configs.yaml", "Path to the cloud configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(Validate(opts))
	cmd.AddCommand(Actions(opts))
	cmd.AddCommand(Images(opts))

	return cmd
}

func (o *rootOptions) registry() (*cloudconfig.Registry, error) {
	loader := cloudconfig.NewLoader(o.configurationPath, o.cloudConfigsPath)
	registry, err := cloudconfig.NewRegistry(loader)
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}
