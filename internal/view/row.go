package view

import "github.com/five82/tagview/internal/tags"

// DescriptionLimit is the number of description characters a table row shows.
const DescriptionLimit = 40

// ClipDescription returns the tag description after default substitution,
// cut to DescriptionLimit runes. A cut is marked by "..." past the limit.
func ClipDescription(t tags.Tag) string {
	desc := t.DescriptionOrDefault()
	runes := []rune(desc)
	if len(runes) <= DescriptionLimit {
		return desc
	}
	return string(runes[:DescriptionLimit]) + "..."
}

// ValueWithUnits formats the current value followed by the units, if any.
func ValueWithUnits(t tags.Tag) string {
	return withUnits(FormatValue(t.Value), t.Units)
}
