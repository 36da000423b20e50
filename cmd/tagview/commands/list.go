package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/tagview/internal/printer"
	"github.com/five82/tagview/internal/tags"
	"github.com/five82/tagview/internal/view"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var filter view.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tags matching a category and name filter",
		Long: `Fetch the tag set once and print every tag passing the filter.

The category match is exact and case-sensitive; "all" disables it. The search
is a case-insensitive substring match on the tag name. Both must hold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			engine, err := refreshOnce(cmd.Context(), rt)
			if err != nil {
				return err
			}

			if strings.TrimSpace(filter.Category) == "" {
				filter.Category = view.AllCategories
			}
			snap := engine.Snapshot()
			names := engine.Visible(filter)
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No tags match (%d cached).\n", snap.Len())
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				tag, _ := snap.Get(name)
				rows = append(rows, tagRow(tag))
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "VALUE", "TYPE", "DESCRIPTION", "CATEGORY", "QUALITY").
				Rows(rows...)
			fmt.Fprintln(out, t.String())
			fmt.Fprintf(out, "%d of %d tags\n", len(names), snap.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", view.AllCategories, "category to show (\"all\" for every category)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "case-insensitive substring of the tag name")
	return cmd
}

func tagRow(t tags.Tag) []string {
	name := t.Name
	if t.Writable {
		name += " ✎"
	}
	return []string{name, view.ValueWithUnits(t), t.Type, view.ClipDescription(t), t.CategoryOrDefault(), qualityBadge(t.QualityOrDefault())}
}

func qualityBadge(q tags.Quality) string {
	switch q {
	case tags.QualityGood:
		return printer.Good(q.Label())
	case tags.QualityBad:
		return printer.Bad(q.Label())
	default:
		return printer.Warn(q.Label())
	}
}
