package view

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/five82/tagview/internal/state"
	"github.com/five82/tagview/internal/tags"
)

// ErrNotFound is returned by Project when the tag is not in the cache.
var ErrNotFound = errors.New("tag metadata not available")

// Range is the configured value range of a tag. Max may be nil.
type Range struct {
	Min float64
	Max *float64
}

// String renders "min to max", using "?" for a missing max.
func (r Range) String() string {
	hi := "?"
	if r.Max != nil {
		hi = formatFloat(*r.Max)
	}
	return formatFloat(r.Min) + " to " + hi
}

// Detail is the projected record behind the tag detail view. All defaults are
// already substituted.
type Detail struct {
	Name        string
	Value       any
	Type        string
	Units       string
	Category    string
	Description string
	Quality     tags.Quality
	Writable    bool
	Range       *Range
	Simulation  string
	LastUpdate  string
}

// Field is one label/value row of a detail view.
type Field struct {
	Label string
	Value string
}

// Project builds the detail record for name from the current snapshot.
func Project(snap *state.Snapshot, name string) (Detail, error) {
	tag, ok := snap.Get(name)
	if !ok {
		return Detail{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	d := Detail{
		Name:        tag.Name,
		Value:       tag.Value,
		Type:        tag.Type,
		Units:       tag.Units,
		Category:    tag.CategoryOrDefault(),
		Description: tag.DescriptionOrDefault(),
		Quality:     tag.QualityOrDefault(),
		Writable:    tag.Writable,
		Simulation:  tag.SimulationType,
		LastUpdate:  tag.FormatTimestamp(),
	}
	if tag.HasRange() {
		r := Range{Min: *tag.Min}
		if tag.Max != nil {
			hi := *tag.Max
			r.Max = &hi
		}
		d.Range = &r
	}
	return d, nil
}

// ValueWithUnits renders the current value followed by its units.
func (d Detail) ValueWithUnits() string {
	return withUnits(FormatValue(d.Value), d.Units)
}

// Fields lists the detail rows in display order. Range and Simulation rows
// are omitted when absent.
func (d Detail) Fields() []Field {
	fields := []Field{
		{"Current Value", d.ValueWithUnits()},
		{"Description", d.Description},
		{"Data Type", d.Type},
		{"Category", d.Category},
	}
	if d.Range != nil {
		fields = append(fields, Field{"Range", withUnits(d.Range.String(), d.Units)})
	}
	fields = append(fields,
		Field{"Quality", string(d.Quality)},
		Field{"Writable", yesNo(d.Writable)},
	)
	if d.Simulation != "" {
		fields = append(fields, Field{"Simulation", d.Simulation})
	}
	fields = append(fields, Field{"Last Update", d.LastUpdate})
	return fields
}

// FormatValue renders a scalar tag value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func withUnits(s, units string) string {
	if units == "" {
		return s
	}
	return s + " " + units
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
