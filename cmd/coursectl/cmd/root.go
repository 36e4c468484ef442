package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fsys is where content is read from and scaffolded to. Tests swap it for
// an in-memory filesystem.
var fsys afero.Fs = afero.NewOsFs()

const defaultContentDir = "web/content"

var rootCmd = &cobra.Command{
	Use:   "coursectl",
	Short: "Manage Trade Skills course content",
	Long: `coursectl checks and scaffolds the YAML section files the Trade Skills
server reads.

Available commands:
  validate    Load every section and report problems
  list        Show the sections in reading order
  new         Scaffold a new section file
  version     Print the version

Use "coursectl [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func contentDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultContentDir
}
