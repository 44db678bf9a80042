package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bug-ops/helixtrainer/session"
	"github.com/bug-ops/helixtrainer/simulator"
)

// Theme mirrors the reference adapter's Theme struct in shape (a named
// lipgloss.Style per UI concern), trimmed to the handful this trainer's
// single-buffer, two-mode view needs in place of the reference's five-mode
// syntax-highlighted editor view.
type Theme struct {
	NormalModeStyle lipgloss.Style
	InsertModeStyle lipgloss.Style
	StatusLineStyle lipgloss.Style
	MessageStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	SuccessStyle    lipgloss.Style
	CursorStyle     lipgloss.Style
}

// DefaultTheme ports the reference adapter's DefaultTheme colour choices
// (same ANSI 256 palette indices) onto the subset of styles this view uses.
var DefaultTheme = Theme{
	NormalModeStyle: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle: lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	StatusLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	SuccessStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true),
	CursorStyle:     lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0")),
}

func (m Model) View() string {
	if m.quitting {
		return "Session abandoned.\n"
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.theme.ErrorStyle.Render(m.message))
	} else if m.sess.State() == session.Completed {
		b.WriteString(m.theme.SuccessStyle.Render(m.message))
	} else if m.message != "" {
		b.WriteString(m.theme.MessageStyle.Render(m.message))
	}
	if m.showHint != "" {
		b.WriteString("\nhint: " + m.showHint)
	}
	return b.String()
}

// renderBuffer draws the live buffer content with the cursor cell
// highlighted, one line of plain text per logical line; the result is fed
// into the viewport, which handles scrolling when the buffer outgrows the
// visible height. There is no syntax highlighting, an explicit non-goal.
func (m Model) renderBuffer() string {
	content := m.sess.Content()
	row, col := m.sess.Cursor()
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if i != row {
			continue
		}
		runes := []rune(line)
		if col >= len(runes) {
			lines[i] = line + m.theme.CursorStyle.Render(" ")
			continue
		}
		before := string(runes[:col])
		at := string(runes[col])
		after := string(runes[col+1:])
		lines[i] = before + m.theme.CursorStyle.Render(at) + after
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusLine() string {
	var modeLabel string
	switch m.sess.Mode() {
	case simulator.Insert:
		modeLabel = m.theme.InsertModeStyle.Render(" INSERT ")
	default:
		modeLabel = m.theme.NormalModeStyle.Render(" NORMAL ")
	}

	row, col := m.sess.Cursor()
	progress := m.sess.CompletionProgress()
	info := fmt.Sprintf(" %d/%d  progress %d%%  actions %d ", row+1, col+1, progress, len(m.sess.Actions()))

	line := modeLabel + m.theme.StatusLineStyle.Render(info)
	if m.width > 0 {
		pad := m.width - lipgloss.Width(line)
		if pad > 0 {
			line += m.theme.StatusLineStyle.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}
