package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
)

type validateReport struct {
	Snapshot      string        `yaml:"snapshot"`
	AppTitle      string        `yaml:"appTitle"`
	Clouds        []cloudReport `yaml:"clouds"`
	ThemeWarnings []string      `yaml:"themeWarnings,omitempty"`
}

type cloudReport struct {
	KeystoneHostname string   `yaml:"keystoneHostname"`
	FriendlyName     string   `yaml:"friendlyName"`
	InstanceTypes    []string `yaml:"instanceTypes,omitempty"`
	FlavorGroups     []string `yaml:"flavorGroups,omitempty"`
}

// Validate returns the command that loads and checks configuration files.
//
// A non-zero exit means the service would refuse the files.
func Validate(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration files and summarize them",
		Example: `  exoctl validate --clouds cloud_configs.json
  exoctl validate --configuration config.yaml --clouds cloud_configs.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := opts.registry()
			if err != nil {
				return err
			}

			snapshot := registry.Snapshot()
			presentation := cloudconfig.Resolve(snapshot.Configuration())

			report := validateReport{
				Snapshot: snapshot.ID(),
				AppTitle: presentation.AppTitle,
				Clouds:   []cloudReport{},
			}
			for _, w := range presentation.ThemeWarnings {
				report.ThemeWarnings = append(report.ThemeWarnings, w.String())
			}
			for _, c := range snapshot.All() {
				r := cloudReport{
					KeystoneHostname: c.KeystoneHostname,
					FriendlyName:     c.FriendlyName,
				}
				for _, it := range c.InstanceTypes {
					r.InstanceTypes = append(r.InstanceTypes, it.FriendlyName)
				}
				for _, g := range c.FlavorGroups {
					r.FlavorGroups = append(r.FlavorGroups, g.Title)
				}
				report.Clouds = append(report.Clouds, r)
			}

			return writeYAML(cmd.OutOrStdout(), report)
		},
	}
}
