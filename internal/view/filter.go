package view

import (
	"strings"

	"github.com/five82/tagview/internal/state"
	"github.com/five82/tagview/internal/tags"
)

// AllCategories is the category filter value that matches every tag.
const AllCategories = "all"

// Filter is the combined category and name-search selection.
type Filter struct {
	Category string // AllCategories matches everything; otherwise exact
	Search   string // case-insensitive name substring; "" matches everything
}

// Active reports whether the filter hides anything.
func (f Filter) Active() bool {
	return f.Category != AllCategories || f.Search != ""
}

// Matches reports whether tag passes both the category and search predicates.
func (f Filter) Matches(tag tags.Tag) bool {
	return f.matches(tag, strings.ToLower(f.Search))
}

func (f Filter) matches(tag tags.Tag, needle string) bool {
	if f.Category != AllCategories && tag.CategoryOrDefault() != f.Category {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tag.Name), needle)
}

// Visible returns the names of tags in snap that pass f, in snapshot order.
func Visible(snap *state.Snapshot, f Filter) []string {
	needle := strings.ToLower(f.Search)
	out := make([]string, 0, snap.Len())
	snap.Each(func(tag tags.Tag) {
		if f.matches(tag, needle) {
			out = append(out, tag.Name)
		}
	})
	return out
}

// VisibleTags is Visible returning full records instead of names.
func VisibleTags(snap *state.Snapshot, f Filter) []tags.Tag {
	needle := strings.ToLower(f.Search)
	out := make([]tags.Tag, 0, snap.Len())
	snap.Each(func(tag tags.Tag) {
		if f.matches(tag, needle) {
			out = append(out, tag)
		}
	})
	return out
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Value string // filter value; AllCategories for the catch-all entry
	Label string // display label with the first letter capitalized
	Count int
}

// CategoryOptions lists the selector entries for snap: the catch-all entry
// with the total tag count first, then each category in index order.
func CategoryOptions(snap *state.Snapshot) []CategoryOption {
	cats := snap.Categories()
	out := make([]CategoryOption, 0, len(cats)+1)
	out = append(out, CategoryOption{Value: AllCategories, Label: "All Categories", Count: snap.Len()})
	for _, c := range cats {
		out = append(out, CategoryOption{Value: c.Name, Label: capitalize(c.Name), Count: c.Count})
	}
	return out
}

func capitalize(s string) string {
	for i, r := range s {
		if i == 0 {
			return strings.ToUpper(string(r)) + s[len(string(r)):]
		}
	}
	return s
}
