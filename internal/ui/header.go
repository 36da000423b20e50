package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tagview/internal/view"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if !m.snapshot.HasData() {
		return m.renderConnectingHeader(styles, bg)
	}

	sep := bg.Spaces(2)
	parts := []string{bg.Render("tagview", styles.Logo)}

	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("● STALE", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	}

	parts = append(parts,
		bg.Render("Tags:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.snapshot.Len()), styles.Text),
		bg.Render("Categories:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Categories())), styles.Text),
	)
	if m.filter.Active() {
		parts = append(parts,
			bg.Render("Showing:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.visibleTags())), styles.AccentText))
	}
	parts = append(parts,
		bg.Render("Updated:", styles.MutedText)+bg.Space()+
			bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.Text))

	if m.width >= LayoutCompactWidth && m.apiBind != "" {
		parts = append(parts, bg.Render(truncate(m.apiBind, 40), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderConnectingHeader shows the connecting or error state before the first
// successful refresh.
func (m Model) renderConnectingHeader(styles Styles, bg BgStyle) string {
	sep := bg.Spaces(2)

	if m.snapshot != nil && m.snapshot.LastError != nil {
		parts := []string{
			bg.Render("tagview", styles.Logo),
			bg.Render("SERVER "+classifyConnectionError(m.snapshot.LastError), styles.DangerText.Bold(true)),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		}
		if m.logFile != "" {
			parts = append(parts,
				bg.Render("logs", styles.FaintText)+bg.Space()+
					bg.Render(truncate(m.logFile, 50), styles.MutedText))
		}
		return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
	}

	return styles.Header.Width(m.width).Render(
		bg.Render("tagview", styles.Logo) + sep +
			bg.Render("Connecting to tag server...", styles.WarningText.Bold(true)),
	)
}

// classifyConnectionError returns a short description of the refresh error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "status "):
		return "HTTP ERROR"
	case strings.Contains(msg, "decode response"):
		return "BAD PAYLOAD"
	default:
		return "ERROR"
	}
}

// renderCategoryBar lists the category options with the active one highlighted.
func (m Model) renderCategoryBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	options := view.CategoryOptions(m.snapshot)
	if !m.categoryKnown(options) {
		options = append(options, view.CategoryOption{Value: m.filter.Category, Label: m.filter.Category})
	}

	segments := make([]string, 0, len(options))
	for _, opt := range options {
		label := fmt.Sprintf("%s (%d)", opt.Label, opt.Count)
		if opt.Value == m.activeCategory() {
			segments = append(segments, styles.Selected.Padding(0, 1).Render(label))
			continue
		}
		segments = append(segments, bg.Spaces(1)+bg.Render(label, styles.MutedText)+bg.Spaces(1))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Render("Category", styles.FaintText) + bg.Space() + strings.Join(segments, bg.Space()))
}

// renderCommandBar renders the key hints, the search input, or a notice.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		return styles.Header.Width(m.width).Render(
			bg.Render("Search:", styles.AccentText) + bg.Space() + m.search.View())
	}

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"/", "Search"},
		{"c/C", "Category"},
		{"enter", "Details"},
		{"j/k", "Navigate"},
		{"L", "Warnings"},
		{"?", "More"},
	}
	if m.filter.Active() {
		commands = append(commands, cmd{"x", "Clear"})
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)
	segments := make([]string, 0, len(commands)+3)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.filter.Search != "" {
		segments = append(segments, bg.Render("/"+truncate(m.filter.Search, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	if m.notice != "" {
		segments = append(segments, bg.Render(m.notice, styles.WarningText.Bold(true)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
