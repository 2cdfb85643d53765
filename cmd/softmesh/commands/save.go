package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <source> <dest>",
		Short: "Copy a mesh to an explicit destination",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Save(cmd.Context(), args[0], args[1])
		},
	}
}
