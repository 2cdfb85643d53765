package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/ui/style"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clean the mesh cache of a model",
	}
	cmd.AddCommand(c.newCacheStatusCmd())
	cmd.AddCommand(c.newCacheListCmd())
	cmd.AddCommand(c.newCacheCleanCmd())
	return cmd
}

func (c *CLI) newCacheStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "status <model>",
		Short:             "Show how much space the meshes of a model use",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			loop, _ := cmd.Flags().GetBool("loop")

			status, err := c.app.CacheStatus(cmd.Context(), args[0], loop)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s %s\n", style.Header.Render("Directory:"), status.Usage.Dir)
			_, _ = fmt.Fprintf(out, "%s %d\n", style.Header.Render("Files:"), status.Usage.Files)
			_, _ = fmt.Fprintf(out, "%s %s\n", style.Header.Render("Size:"),
				humanize.IBytes(uint64(status.Usage.Bytes))) //nolint:gosec // sizes are non-negative
			if status.Exceeded {
				_, _ = fmt.Fprintf(out, "%s above the %d MiB warning threshold\n", style.Warning, status.LimitMiB)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("loop", "l", false, "Use the optimization-loop cache directory")
	return cmd
}

func (c *CLI) newCacheListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list <model>",
		Short:             "List the meshes of a model",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			loop, _ := cmd.Flags().GetBool("loop")
			checksum, _ := cmd.Flags().GetBool("checksum")

			artifacts, err := c.app.CacheList(cmd.Context(), args[0], loop, checksum)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artifacts) == 0 {
				_, _ = fmt.Fprintln(out, style.Dim.Render("no meshes"))
				return nil
			}

			headers := []string{"Identifier", "Mode", "Size", "Modified", "Generator"}
			if checksum {
				headers = append(headers, "Digest")
			}

			rows := make([][]string, 0, len(artifacts))
			for _, a := range artifacts {
				generator := ""
				if a.Record != nil {
					generator = a.Record.Generator
				}
				row := []string{
					a.Identifier,
					a.Mode.String(),
					humanize.IBytes(uint64(a.Size)), //nolint:gosec // sizes are non-negative
					humanize.Time(a.ModTime),
					generator,
				}
				if checksum {
					row = append(row, a.Digest)
				}
				rows = append(rows, row)
			}

			_, _ = fmt.Fprintln(out, renderTable(headers, rows))
			_, _ = fmt.Fprintln(out, style.Dim.Render(strconv.Itoa(len(artifacts))+" meshes"))
			return nil
		},
	}
	cmd.Flags().BoolP("loop", "l", false, "Use the optimization-loop cache directory")
	cmd.Flags().Bool("checksum", false, "Print the content digest of each mesh")
	return cmd
}

func (c *CLI) newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "clean <model>",
		Short:             "Remove the optimization-loop cache and abandoned partial meshes",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeModels,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.CacheClean(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s removed %s (%d partial meshes)\n",
				style.Check, report.CacheDir, report.Partials)
			return nil
		},
	}
}
