package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bug-ops/helixtrainer/clipboard"
	"github.com/bug-ops/helixtrainer/session"
	"github.com/bug-ops/helixtrainer/simulator"
)

// Model is the bubbletea front-end for one scenario attempt: it owns a
// *session.Session, the multi-key assembler and a bubbles/viewport.Model,
// and forwards every resolved command token into Session.RecordAction, per
// SPEC_FULL.md §2's data flow ("terminal key event -> UI assembles a
// command token -> Session.RecordAction(token)"). Grounded on
// adapter-bubbletea's Model (width/height/theme/message/err fields,
// Init/Update/View split, viewport-backed buffer rendering) and its
// atottoClipboard wiring, here named clipboard.OS.
type Model struct {
	sess     *session.Session
	asm      assembler
	viewport viewport.Model
	clip     clipboard.Clipboard
	width    int
	height   int

	theme    Theme
	message  string
	err      error
	quitting bool
	showHint string
}

// New builds a Model wrapping an active session, backed by the real OS
// clipboard.
func New(sess *session.Session) Model {
	m := Model{sess: sess, theme: DefaultTheme, viewport: viewport.New(0, 0), clip: clipboard.OS{}}
	m.syncViewport()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.sess.Abandon()
		m.quitting = true
		return m, tea.Quit
	case tea.KeyF1:
		if hint, ok := m.sess.GetHint(); ok {
			m.showHint = hint
		} else {
			m.showHint = "No more hints."
		}
		return m, nil
	case tea.KeyF2:
		m.sess.Reset(time.Now())
		m.message = ""
		m.err = nil
		m.showHint = ""
		m.syncViewport()
		return m, nil
	}

	token, ready := m.asm.feed(msg, m.sess.Mode())
	if !ready {
		return m, nil
	}

	m.err = nil
	if isPasteToken(token) {
		if text, err := m.clip.Read(); err == nil {
			m.sess.SetClipboard(text)
		}
	}
	if err := m.sess.RecordAction(token, time.Now()); err != nil {
		m.err = err
		m.message = simulator.UserMessage(err)
		return m, nil
	}
	m.message = ""
	m.syncViewport()
	if isYankToken(token) {
		m.clip.Write(m.sess.Clipboard())
	}

	if m.sess.State() == session.Completed {
		fb := m.sess.GetFeedback(time.Now())
		m.message = feedbackSummary(fb)
	}
	return m, nil
}

// isPasteToken and isYankToken gate the OS clipboard sync to the only
// tokens that touch the simulator's clipboard slot (dispatcher.go's
// editY/editPaste). A missing system clipboard utility (headless
// environments without xclip/pbcopy) degrades silently to the simulator's
// own in-process slot rather than failing the command.
func isPasteToken(token string) bool { return token == "p" || token == "P" }
func isYankToken(token string) bool  { return token == "y" }

// syncViewport pushes the freshly rendered buffer into the viewport and
// scrolls it just enough to keep the cursor's row on screen. Grounded on
// the reference adapter's updateViewport/ScrollViewport pairing, simplified
// to whole-line scrolling since this buffer is never word-wrapped.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.renderBuffer())
	if m.viewport.Height <= 0 {
		return
	}
	row, _ := m.sess.Cursor()
	if row < m.viewport.YOffset {
		m.viewport.SetYOffset(row)
	} else if row >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func feedbackSummary(fb session.Feedback) string {
	base := fmt.Sprintf("Solved in %d actions (optimal %d) — score %d/%d, %s",
		fb.ActionsTaken, fb.OptimalActions, fb.Score, fb.MaxPoints, fb.Rating)
	if fb.Hint != nil {
		base += "\n" + *fb.Hint
	}
	return base
}
