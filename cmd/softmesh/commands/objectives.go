package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/ui/style"
)

func (c *CLI) newObjectivesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "objectives <model>",
		Short:             "Print the objectives of a model",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			assess, _ := cmd.Flags().GetStringSlice("assess")

			model, assessment, err := c.app.Objectives(cmd.Context(), args[0], assess)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(model.Objectives))
			for _, o := range model.Objectives {
				rows = append(rows, []string{o.Name, string(o.Direction), strconv.Itoa(o.Horizon)})
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, renderTable([]string{"Name", "Direction", "Horizon"}, rows))
			for _, group := range model.AssessedTogether {
				_, _ = fmt.Fprintf(out, "%s assessed together: %s\n", style.Bullet, strings.Join(group, ", "))
			}
			if assessment != nil {
				_, _ = fmt.Fprintf(out, "%s assessing %s over %d steps\n",
					style.Check, strings.Join(assessment.Names(), ", "), assessment.Horizon())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceP("assess", "a", nil, "Objectives assessed together (comma separated)")
	return cmd
}
