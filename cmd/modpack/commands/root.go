// Package commands implements the CLI commands for the modpack tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modpack/internal/app"
	"go.trai.ch/modpack/internal/build"
)

// CLI represents the command line interface for modpack.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, listPath string, opts app.RunOptions) error
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "modpack [flags] <mod-list-file>",
		Short: "Build a Lethal Company modpack from a list of Thunderstore mods",
		Long: `modpack reads a list of Thunderstore packages, resolves their dependencies,
downloads every archive and lays them out as a ready to copy BepInEx tree
in a fresh LC_modpack_<timestamp> directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.Flags().StringP("export", "e", "",
		"Write the resolved mod list to a file (default LC_modlist_<timestamp>.txt, '-' for stdout)")
	rootCmd.Flags().Lookup("export").NoOptDefVal = app.AutoExportPath
	rootCmd.Flags().Bool("export-only", false, "Stop after exporting the mod list, skip download and extraction")
	rootCmd.Flags().StringP("output", "o", ".", "Parent directory of the modpack directory")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug output")
	rootCmd.Flags().Bool("keep-partial", false, "Keep a partially written modpack when the run fails")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, args []string) error {
	exportPath, _ := cmd.Flags().GetString("export")
	exportOnly, _ := cmd.Flags().GetBool("export-only")
	output, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")
	keepPartial, _ := cmd.Flags().GetBool("keep-partial")

	return c.app.Run(cmd.Context(), args[0], app.RunOptions{
		ExportPath:   exportPath,
		ExportOnly:   exportOnly,
		OutputParent: output,
		Verbose:      verbose,
		KeepPartial:  keepPartial,
	})
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
