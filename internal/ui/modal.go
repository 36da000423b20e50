package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// modalSize returns the inner viewport size for a modal on a width x height
// terminal holding lines rows of content.
func modalSize(width, height, lines int) (int, int) {
	w := min(72, width-6)
	h := min(lines, height-8)
	return max(w, 20), max(h, 3)
}

// closesModal reports whether msg should dismiss the active modal.
func closesModal(msg tea.Msg, keys keyMap) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	return key.Matches(k, keys.Escape, keys.Confirm) || k.String() == "q"
}

// scrollViewport forwards msg to vp unless it dismisses the modal.
func scrollViewport(vp viewport.Model, msg tea.Msg, keys keyMap) (viewport.Model, tea.Cmd, bool) {
	if closesModal(msg, keys) {
		return vp, nil, true
	}
	vp, cmd := vp.Update(msg)
	return vp, cmd, false
}

// renderModalFrame draws a titled, bordered box centered on the screen.
func renderModalFrame(theme Theme, width, height int, title, body, footer string) string {
	styles := theme.Styles()

	var content string
	content = styles.Logo.Render(title) + "\n\n" + body
	if footer != "" {
		content += "\n\n" + styles.FaintText.Render(footer)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
