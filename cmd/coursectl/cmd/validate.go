package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Load and validate every section file",
	Long: `Load every section file under dir (default web/content) the same way the
server does, and report every problem found. The exit code is non-zero when
any file is invalid, so this can run in CI before deploying.

Examples:
  coursectl validate
  coursectl validate ./content`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := loadSections(contentDir(args))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %v\n", err)
			return err
		}
		questions := 0
		for _, s := range sections {
			questions += len(s.Checks) + s.Quiz.Len()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ %d sections, %d questions OK\n", len(sections), questions)
		return nil
	},
}

// loadSections loads dir and builds a catalog from it, so duplicate slugs
// are caught as well as bad files.
func loadSections(dir string) ([]*domain.Section, error) {
	ok, err := afero.DirExists(fsys, dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("content directory %s does not exist", dir)
	}
	sections, err := content.NewLoader(fsys, dir).LoadAll()
	if err != nil {
		return nil, err
	}
	catalog, err := content.NewCatalog(sections)
	if err != nil {
		return nil, err
	}
	return catalog.List(), nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
