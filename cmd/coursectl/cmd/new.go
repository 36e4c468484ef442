package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nfrund/tradeskills/internal/content"
	"github.com/nfrund/tradeskills/internal/storage"
)

var (
	newDir   string
	newTitle string
	newOrder int
	newForce bool
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// scaffold is the starter document written by "new". Field order matches
// the hand-written content files.
type scaffold struct {
	Title    string          `yaml:"title"`
	Order    int             `yaml:"order"`
	Subtitle string          `yaml:"subtitle"`
	Outcomes []string        `yaml:"outcomes"`
	Blocks   []scaffoldBlock `yaml:"blocks"`
	Checks   []scaffoldCheck `yaml:"checks"`
	Quiz     scaffoldQuiz    `yaml:"quiz"`
}

type scaffoldBlock struct {
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
	Check      string   `yaml:"check,omitempty"`
}

type scaffoldCheck struct {
	ID           string   `yaml:"id,omitempty"`
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correctIndex"`
	Explanation  string   `yaml:"explanation"`
}

type scaffoldQuiz struct {
	Title     string          `yaml:"title"`
	Questions []scaffoldCheck `yaml:"questions"`
}

var newCmd = &cobra.Command{
	Use:   "new <course> <slug>",
	Short: "Scaffold a new section file",
	Long: `Write a starter section file to <dir>/<course>/<slug>.yaml. The file
passes validation as written, so it can be served straight away and then
filled in.

Examples:
  coursectl new asbestos-awareness licensed-work
  coursectl new pasma-towers dismantling --title "Dismantling a tower" --order 4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, slug := args[0], args[1]
		for _, v := range []string{course, slug} {
			if !namePattern.MatchString(v) {
				return fmt.Errorf("%q must be lower-case words separated by hyphens", v)
			}
		}
		title := newTitle
		if title == "" {
			title = content.CourseName(slug)
		}

		data, err := renderScaffold(title, newOrder)
		if err != nil {
			return err
		}
		// Refuse to write anything the loader would reject.
		if _, err := content.Parse(data, content.CourseName(course), slug); err != nil {
			return fmt.Errorf("scaffold does not validate: %w", err)
		}

		ctx := cmd.Context()
		store := storage.NewAferoStore(fsys)
		path := filepath.Join(newDir, course, slug+".yaml")
		exists, err := store.Exists(ctx, path)
		if err != nil {
			return err
		}
		if exists && !newForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if _, err := store.Save(ctx, path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Created %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "   Served at %s\n", content.SectionPath(slug))
		return nil
	},
}

func renderScaffold(title string, order int) ([]byte, error) {
	placeholder := scaffoldCheck{
		Question:     "Replace this question",
		Options:      []string{"First option", "Second option"},
		CorrectIndex: 0,
		Explanation:  "Explain why the first option is correct.",
	}
	check := placeholder
	check.ID = "check-1"

	doc := scaffold{
		Title:    title,
		Order:    order,
		Subtitle: "One sentence describing what this section covers.",
		Outcomes: []string{"State what the learner will be able to do."},
		Blocks: []scaffoldBlock{{
			Heading:    "Introduction",
			Paragraphs: []string{"Write the section body here."},
			Check:      check.ID,
		}},
		Checks: []scaffoldCheck{check},
		Quiz:   scaffoldQuiz{Title: title + " quiz", Questions: []scaffoldCheck{placeholder}},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func init() {
	newCmd.Flags().StringVarP(&newDir, "dir", "d", defaultContentDir, "Content directory")
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Section title (default derived from slug)")
	newCmd.Flags().IntVarP(&newOrder, "order", "o", 1, "Position within the course")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}
