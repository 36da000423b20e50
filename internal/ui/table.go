package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tagview/internal/tags"
	"github.com/five82/tagview/internal/view"
)

const writableMarker = "✎"

// column is one table column; width 0 takes the remaining space.
type column struct {
	title string
	width int
	cell  func(tags.Tag) string
}

func (m Model) columns(width int) []column {
	name := column{"Name", 28, func(t tags.Tag) string {
		return t.Name + ternary(t.Writable, " "+writableMarker, "")
	}}
	value := column{"Value", 18, view.ValueWithUnits}
	typ := column{"Type", 9, func(t tags.Tag) string { return t.Type }}
	desc := column{"Description", 0, view.ClipDescription}
	category := column{"Category", 14, func(t tags.Tag) string { return t.CategoryOrDefault() }}

	if width < LayoutCompactWidth {
		name.width = 22
		value.width = 14
		category.width = 12
		return []column{name, value, category}
	}
	if width >= LayoutWideWidth {
		name.width = 34
		value.width = 22
	}
	return []column{name, value, typ, desc, category}
}

// qualityWidth fits the widest badge ("Uncertain" plus padding).
const qualityWidth = 11

// visibleTags returns the rows matching the current filter.
func (m Model) visibleTags() []tags.Tag {
	return view.VisibleTags(m.snapshot, m.filter)
}

// selectedName returns the name under the cursor.
func (m Model) selectedName() (string, bool) {
	rows := m.visibleTags()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return "", false
	}
	return rows[m.selectedRow].Name, true
}

// updateSelection keeps the cursor on the same tag across refreshes and
// filter changes, clamping when it is no longer visible.
func (m *Model) updateSelection(previous string) {
	rows := m.visibleTags()
	if len(rows) == 0 {
		m.selectedRow = 0
		m.offset = 0
		return
	}
	if previous != "" {
		for i, t := range rows {
			if t.Name == previous {
				m.selectedRow = i
				m.ensureVisible()
				return
			}
		}
	}
	if m.selectedRow >= len(rows) {
		m.selectedRow = len(rows) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	m.ensureVisible()
}

// moveSelection moves the cursor by delta rows.
func (m *Model) moveSelection(delta int) {
	count := len(m.visibleTags())
	if count == 0 {
		return
	}
	m.selectedRow = max(0, min(count-1, m.selectedRow+delta))
	m.ensureVisible()
}

// tableRows is the number of tag rows that fit in the table pane.
func (m Model) tableRows() int {
	// header, category bar, command bar, two borders, column titles
	return max(1, m.height-6)
}

func (m *Model) ensureVisible() {
	rows := m.tableRows()
	if m.selectedRow < m.offset {
		m.offset = m.selectedRow
	}
	if m.selectedRow >= m.offset+rows {
		m.offset = m.selectedRow - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// renderTable renders the tag table pane.
func (m Model) renderTable() string {
	styles := m.theme.Styles()
	height := m.height - 3
	innerWidth := m.width - 2

	rows := m.visibleTags()
	title := "Tags"
	if m.filter.Active() {
		title = "Tags (filtered)"
	}

	var content string
	switch {
	case !m.snapshot.HasData():
		content = styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt)).Render("Waiting for tag data...")
	case m.snapshot.Len() == 0:
		content = styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt)).Render("No tags available")
	case len(rows) == 0:
		content = styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt)).Render("No tags match the current filter")
	default:
		content = m.renderTableRows(rows, innerWidth)
	}
	return m.renderTitledBox(title, content, m.width, height)
}

func (m Model) renderTableRows(rows []tags.Tag, width int) string {
	cols := m.columns(width)
	fixed := qualityWidth
	for _, c := range cols {
		fixed += c.width + 1
	}
	flex := max(0, width-fixed)
	for i := range cols {
		if cols[i].width == 0 {
			cols[i].width = flex
		}
	}

	styles := m.theme.Styles()
	bgColor := m.theme.SurfaceAlt
	bg := NewBgStyle(bgColor)

	var header strings.Builder
	for _, c := range cols {
		header.WriteString(bg.Render(fit(c.title, c.width), styles.MutedText.Bold(true)))
		header.WriteString(bg.Space())
	}
	header.WriteString(bg.Render(fit("Quality", qualityWidth), styles.MutedText.Bold(true)))

	lines := []string{bg.FillLine(header.String(), width)}
	end := min(len(rows), m.offset+m.tableRows())
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], cols, width, i == m.selectedRow))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats one tag with inline colors. Selected rows use the
// selection colors for every cell to keep contrast.
func (m Model) renderRow(t tags.Tag, cols []column, width int, selected bool) string {
	bgColor := ternary(selected, m.theme.SelectionBg, m.theme.SurfaceAlt)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	var b strings.Builder
	for i, c := range cols {
		style := styles.Text
		switch {
		case selected:
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		case i == 0:
			style = styles.Text.Bold(true)
		case c.title == "Value":
			style = styles.WarningText
		case c.title == "Category":
			style = styles.InfoText
		case c.title == "Description" || c.title == "Type":
			style = styles.MutedText
		}
		b.WriteString(bg.Render(fit(c.cell(t), c.width), style))
		b.WriteString(bg.Space())
	}
	q := t.QualityOrDefault()
	b.WriteString(styles.QualityStyle(q).Render(q.Label()))

	return bg.FillLine(b.String(), width)
}

// renderTitledBox draws a bordered pane with the title embedded in the top border.
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	titleLen := len([]rune(title))
	leftPad := max(0, (innerWidth-titleLen-2)/2)
	rightPad := max(0, innerWidth-titleLen-2-leftPad)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", max(0, innerWidth)), borderStyle) +
		bg.Render("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2
	lines := make([]string, 0, height)
	lines = append(lines, top)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+bg.FillLine(line, innerWidth)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}
