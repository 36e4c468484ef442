package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nfrund/tradeskills/internal/content"
)

var listOutputFormat string

// sectionDisplay is a section for display purposes.
type sectionDisplay struct {
	Course    string `json:"course"`
	Order     int    `json:"order"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Checks    int    `json:"checks"`
	Questions int    `json:"questions"`
	Path      string `json:"path"`
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List sections in reading order",
	Long: `List every section under dir (default web/content), grouped by course in
reading order.

Examples:
  coursectl list
  coursectl list ./content --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sections, err := loadSections(contentDir(args))
		if err != nil {
			return err
		}
		rows := make([]sectionDisplay, 0, len(sections))
		for _, s := range sections {
			rows = append(rows, sectionDisplay{
				Course:    s.Course,
				Order:     s.Order,
				Slug:      s.Slug,
				Title:     s.Title,
				Checks:    len(s.Checks),
				Questions: s.Quiz.Len(),
				Path:      content.SectionPath(s.Slug),
			})
		}

		switch listOutputFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		case "table":
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "COURSE\tORDER\tSLUG\tTITLE\tCHECKS\tQUIZ")
			fmt.Fprintln(w, "------\t-----\t----\t-----\t------\t----")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%d\n", r.Course, r.Order, r.Slug, truncateString(r.Title, 40), r.Checks, r.Questions)
			}
			return nil
		default:
			return fmt.Errorf("unknown format %q (want table or json)", listOutputFormat)
		}
	},
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(listCmd)
}
