package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/app"
	"go.trai.ch/softmesh/internal/ui/style"
)

func (c *CLI) newMeshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "mesh <model>",
		Short:             "Print the mesh paths of a model, generating missing meshes",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, _ := cmd.Flags().GetStringSlice("mode")
			refine, _ := cmd.Flags().GetBool("refine")
			loop, _ := cmd.Flags().GetBool("loop")
			set, _ := cmd.Flags().GetStringArray("set")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			paths, err := c.app.Mesh(cmd.Context(), args[0], app.MeshOptions{
				Modes:   modes,
				Refine:  refine,
				Loop:    loop,
				Set:     set,
				Timeout: timeout,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				_, _ = fmt.Fprintln(out, p)
			}
			if summary, ok := c.app.Summary(); ok {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), style.Dim.Render(style.Check+" "+summary))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceP("mode", "m", nil, "Mesh mode: surface, volume or step (repeatable, default surface)")
	cmd.Flags().BoolP("refine", "r", false, "Refine the mesh once after generating it")
	cmd.Flags().BoolP("loop", "l", false, "Use the optimization-loop cache directory")
	cmd.Flags().StringArrayP("set", "s", nil, "Assign a design variable as name=value (repeatable)")
	cmd.Flags().Duration("timeout", 0, "Wall-clock budget of one generation (default from configuration)")
	return cmd
}
