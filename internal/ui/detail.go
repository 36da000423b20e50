package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tagview/internal/view"
)

// notAvailableNotice is shown when the selected tag left the cache.
const notAvailableNotice = "Tag metadata not available"

const detailLabelWidth = 15

// detailModal shows the projected record for one tag.
type detailModal struct {
	name   string
	detail view.Detail
	vp     viewport.Model
}

func newDetailModal(d view.Detail, theme Theme, width, height int) detailModal {
	m := detailModal{name: d.Name, detail: d}
	body := renderDetailBody(d, theme)
	w, h := modalSize(width, height, lipgloss.Height(body))
	m.vp = viewport.New(w, h)
	m.vp.SetContent(body)
	return m
}

func (m detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	vp, cmd, done := scrollViewport(m.vp, msg, keys)
	m.vp = vp
	return m, cmd, done
}

func (m detailModal) View(theme Theme, width, height int) string {
	return renderModalFrame(theme, width, height, m.name, m.vp.View(), "esc close · j/k scroll")
}

func renderDetailBody(d view.Detail, theme Theme) string {
	styles := theme.Styles()
	label := styles.MutedText.Width(detailLabelWidth)

	fields := d.Fields()
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		value := styles.Text.Render(f.Value)
		switch f.Label {
		case "Current Value":
			value = styles.WarningText.Bold(true).Render(f.Value)
		case "Quality":
			value = styles.QualityStyle(d.Quality).Render(d.Quality.Label())
		}
		lines = append(lines, label.Render(f.Label+":")+value)
	}
	return strings.Join(lines, "\n")
}

// openDetail projects the selected tag against the newest snapshot. A tag that
// vanished since the table was drawn yields a transient notice, not an error.
// The modal keeps this projection until it is closed; later refreshes do not
// touch it.
func (m *Model) openDetail() tea.Cmd {
	name, ok := m.selectedName()
	if !ok {
		return nil
	}
	d, err := view.Project(m.currentSnapshot(), name)
	if err != nil {
		if errors.Is(err, view.ErrNotFound) {
			return m.setNotice(notAvailableNotice)
		}
		return m.setNotice(err.Error())
	}
	m.modal = newDetailModal(d, m.theme, m.width, m.height)
	return nil
}
