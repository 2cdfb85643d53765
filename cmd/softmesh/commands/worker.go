package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "worker <name>",
		Short:  "Serve one isolated job for the parent process",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.resultChannel()
			if err != nil {
				return err
			}
			defer func() { _ = result.Close() }()

			return c.app.Worker(cmd.Context(), args[0], cmd.InOrStdin(), result, cmd.ErrOrStderr())
		},
	}
}
