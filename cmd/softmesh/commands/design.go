package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/core/domain"
)

func (c *CLI) newDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "design <model>",
		Short:             "Print the design variables of a model",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _ := cmd.Flags().GetStringArray("set")

			model, err := c.app.Design(cmd.Context(), args[0], set)
			if err != nil {
				return err
			}

			var vars []domain.DesignVariable
			if model.Variables != nil {
				vars = model.Variables.Variables()
			}
			rows := make([][]string, 0, len(vars))
			for _, v := range vars {
				rows = append(rows, []string{
					v.Name,
					v.Value.String(),
					formatBound(v.Min),
					formatBound(v.Max),
					kindName(v.Value.Kind),
				})
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (generator %s)\n", model.Name, model.Generator)
			_, _ = fmt.Fprintln(out, renderTable([]string{"Name", "Value", "Min", "Max", "Kind"}, rows))
			return nil
		},
	}
	cmd.Flags().StringArrayP("set", "s", nil, "Assign a design variable as name=value (repeatable)")
	return cmd
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func kindName(k domain.ValueKind) string {
	if k == domain.KindInteger {
		return "integer"
	}
	return "real"
}
