package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tagview/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

// loadLogsCmd reads the newest warning and error lines from the log file.
func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogOverlayLines, logtail.WarningsOnly)
		return logLinesMsg{lines: lines, err: err}
	}
}

// logModal lists recent warnings from the tagview log.
type logModal struct {
	path string
	vp   viewport.Model
}

func newLogModal(path string, msg logLinesMsg, theme Theme, width, height int) logModal {
	body := renderLogBody(path, msg, theme)
	w, h := modalSize(width, height, strings.Count(body, "\n")+1)
	m := logModal{path: path, vp: viewport.New(w, h)}
	m.vp.SetContent(body)
	m.vp.GotoBottom()
	return m
}

func (m logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	vp, cmd, done := scrollViewport(m.vp, msg, keys)
	m.vp = vp
	return m, cmd, done
}

func (m logModal) View(theme Theme, width, height int) string {
	return renderModalFrame(theme, width, height, "Warnings", m.vp.View(), truncate(m.path, 60))
}

func renderLogBody(path string, msg logLinesMsg, theme Theme) string {
	styles := theme.Styles()
	switch {
	case path == "":
		return styles.MutedText.Render("Logging is disabled")
	case msg.err != nil:
		return styles.DangerText.Render(msg.err.Error())
	case len(msg.lines) == 0:
		return styles.MutedText.Render("No warnings logged")
	}
	lines := make([]string, len(msg.lines))
	for i, line := range msg.lines {
		if logtail.Level(line) == "ERROR" {
			lines[i] = styles.DangerText.Render(line)
		} else {
			lines[i] = styles.WarningText.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
