// Package commands implements the CLI commands for softmesh.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/softmesh/internal/adapters/worker" //nolint:depguard // the worker command owns the result channel
	"go.trai.ch/softmesh/internal/app"
	"go.trai.ch/softmesh/internal/build"
	"go.trai.ch/softmesh/internal/core/domain"
	"go.trai.ch/softmesh/internal/engine/mesher"
)

// CLI represents the command line interface for softmesh.
type CLI struct {
	app           Application
	rootCmd       *cobra.Command
	resultChannel func() (io.WriteCloser, error)
}

// Application represents the application logic interface.
type Application interface {
	Mesh(ctx context.Context, model string, opts app.MeshOptions) ([]string, error)
	Save(ctx context.Context, source, dest string) error
	Show(ctx context.Context, model string, set []string) error
	CacheStatus(ctx context.Context, model string, loop bool) (app.CacheStatus, error)
	CacheList(ctx context.Context, model string, loop, checksum bool) ([]mesher.Artifact, error)
	CacheClean(ctx context.Context, model string) (mesher.CleanReport, error)
	Design(ctx context.Context, model string, set []string) (*domain.ModelConfig, error)
	Objectives(ctx context.Context, model string, assess []string) (*domain.ModelConfig, *domain.AssessmentContext, error)
	Models() ([]string, error)
	KernelVersion(ctx context.Context) (string, error)
	Summary() (string, bool)
	Worker(ctx context.Context, name string, args io.Reader, result, log io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "softmesh",
		Short:         "Generate and cache meshes for soft-robot shape optimization",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		resultChannel: func() (io.WriteCloser, error) {
			f, err := worker.OpenResultChannel()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}

	rootCmd.AddCommand(c.newMeshCmd())
	rootCmd.AddCommand(c.newSaveCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newDesignCmd())
	rootCmd.AddCommand(c.newObjectivesCmd())
	rootCmd.AddCommand(c.newVersionCmd())
	rootCmd.AddCommand(c.newWorkerCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetResultChannel replaces how the worker command opens its result channel. Used for testing.
func (c *CLI) SetResultChannel(open func() (io.WriteCloser, error)) {
	c.resultChannel = open
}

// completeModels offers the available model names for the first argument.
func (c *CLI) completeModels(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := c.app.Models()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
