package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "show <model>",
		Short:             "Open the geometry of a model in the gmsh viewer",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _ := cmd.Flags().GetStringArray("set")
			return c.app.Show(cmd.Context(), args[0], set)
		},
	}
	cmd.Flags().StringArrayP("set", "s", nil, "Assign a design variable as name=value (repeatable)")
	return cmd
}
