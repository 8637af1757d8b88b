package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/pkg/types"
	"gopkg.in/yaml.v3"
)

type imagesReport struct {
	Version  string        `yaml:"version"`
	Images   []types.Image `yaml:"images"`
	Featured []types.Image `yaml:"featured"`
}

// Images returns the command that selects images for an instance type.
//
// The image list is read from a YAML or JSON file in the image service's
// shape, so selections can be checked without cloud credentials.
func Images(opts *rootOptions) *cobra.Command {
	var imagesPath string
	var version string

	cmd := &cobra.Command{
		Use:     "images <keystone-hostname> <instance-type>",
		Short:   "Select images for an instance type version",
		Example: `  exoctl images keystone.example.org Ubuntu --images images.json --version 22.04`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := readImages(imagesPath)
			if err != nil {
				return err
			}

			registry, err := opts.registry()
			if err != nil {
				return err
			}
			engine := policy.NewEngine(registry)

			cloud, ok := registry.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", policy.ErrCloudNotFound, args[0])
			}

			selected, v, err := engine.SelectImagesFor(images, cloud, args[1], version)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), imagesReport{
				Version:  v.FriendlyName,
				Images:   selected,
				Featured: engine.FeaturedImages(images, cloud),
			})
		},
	}

	cmd.Flags().StringVarP(&imagesPath, "images", "i", "", "Path to a YAML or JSON image list (required)")
	cmd.Flags().StringVar(&version, "version", "", "Instance type version (default: the primary version)")
	_ = cmd.MarkFlagRequired("images")

	return cmd
}

func readImages(path string) ([]types.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read images %s: %w", path, err)
	}

	var images []types.Image
	if err := yaml.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("parse images %s: %w", path, err)
	}
	return images, nil
}
