package commands

import (
	"github.com/spf13/cobra"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

type actionsReport struct {
	policy.ActionDecision `yaml:",inline"`
	AllowedActions        []types.ServerAction `yaml:"allowedActions"`
}

// Actions returns the command that reports the server actions a flavor allows
func Actions(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "actions <keystone-hostname> <flavor-name> [action]",
		Short: "Show which server actions a flavor allows",
		Example: `  exoctl actions keystone.example.org g3.large
  exoctl actions keystone.example.org g3.large Shelve`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := opts.registry()
			if err != nil {
				return err
			}
			engine := policy.NewEngine(registry)

			var action types.ServerAction
			if len(args) == 3 {
				action = types.ServerAction(args[2])
			}

			decision, err := engine.Decide(args[0], args[1], action)
			if err != nil {
				return err
			}

			cloud, _ := registry.Lookup(args[0])
			return writeYAML(cmd.OutOrStdout(), actionsReport{
				ActionDecision: *decision,
				AllowedActions: engine.AllowedActions(args[1], cloud),
			})
		},
	}
}
