package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of softmesh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "softmesh version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)

			if gmsh, _ := cmd.Flags().GetBool("gmsh"); gmsh {
				v, err := c.app.KernelVersion(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gmsh version %s\n", v)
			}
			return nil
		},
	}
	cmd.Flags().Bool("gmsh", false, "Also print the version of the gmsh kernel")
	return cmd
}
