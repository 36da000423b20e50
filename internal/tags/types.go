package tags

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultCategory is substituted for tags that carry no category.
	DefaultCategory = "general"
	// DefaultDescription is shown for tags that carry no description.
	DefaultDescription = "No description"

	timestampLayout = "2006-01-02 15:04:05"
)

// Quality is the tri-state confidence flag on a tag's value.
type Quality string

const (
	QualityGood      Quality = "good"
	QualityBad       Quality = "bad"
	QualityUncertain Quality = "uncertain"
)

// Label returns the capitalized display label for the quality.
func (q Quality) Label() string {
	switch q {
	case QualityGood:
		return "Good"
	case QualityBad:
		return "Bad"
	default:
		return "Uncertain"
	}
}

// DiscoveryResponse mirrors /api/tags/discovery. Tags is nil when the
// payload has no tags field or sets it to null.
type DiscoveryResponse struct {
	Tags *[]Tag `json:"tags"`
}

// HealthResponse mirrors /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	TagsCount int    `json:"tags_count"`
}

// Healthy reports whether the server declared itself healthy.
func (h HealthResponse) Healthy() bool {
	return strings.EqualFold(strings.TrimSpace(h.Status), "healthy")
}

// Tag describes one monitored point in transport-friendly form.
// Optional fields are left at their zero value when absent; use the
// *OrDefault helpers for display.
type Tag struct {
	Name           string          `json:"name"`
	Value          any             `json:"value"`
	Type           string          `json:"type"`
	Units          string          `json:"units,omitempty"`
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	Quality        Quality         `json:"quality,omitempty"`
	Writable       bool            `json:"writable,omitempty"`
	Min            *float64        `json:"min,omitempty"`
	Max            *float64        `json:"max,omitempty"`
	SimulationType string          `json:"simulation_type,omitempty"`
	Timestamp      json.RawMessage `json:"timestamp,omitempty"`
}

// CategoryOrDefault returns the tag category, falling back to "general".
func (t Tag) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// DescriptionOrDefault returns the tag description, falling back to "No description".
func (t Tag) DescriptionOrDefault() string {
	if t.Description == "" {
		return DefaultDescription
	}
	return t.Description
}

// QualityOrDefault returns the tag quality, falling back to good.
func (t Tag) QualityOrDefault() Quality {
	if t.Quality == "" {
		return QualityGood
	}
	return t.Quality
}

// HasRange reports whether a range should be shown for the tag. Only Min is
// consulted; a missing Max is still rendered as part of the range.
func (t Tag) HasRange() bool {
	return t.Min != nil
}

// ParsedTimestamp returns the last-update time when it can be decoded.
// Numbers are read as epoch seconds; strings as RFC3339 or local time.
func (t Tag) ParsedTimestamp() time.Time {
	return parseTimestamp(t.Timestamp)
}

// FormatTimestamp renders the last-update time for display, or "-" when unknown.
func (t Tag) FormatTimestamp() string {
	ts := t.ParsedTimestamp()
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(timestampLayout)
}

func parseTimestamp(raw json.RawMessage) time.Time {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return time.Time{}
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}
		}
		return parseTime(s)
	}
	secs, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(timestampLayout, value, time.Local); err == nil {
		return t
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil && secs > 0 {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*float64(time.Second)))
	}
	return time.Time{}
}
