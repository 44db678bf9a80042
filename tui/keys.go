// Package tui is the terminal front-end: a bubbletea Model wrapping a
// session.Session, assembling the multi-key command tokens the session
// expects before calling Session.RecordAction, grounded directly on the
// reference editor's adapter-bubbletea package (adapter.go,
// update_viewport.go) — the Elm-architecture Update/View split, a theme
// struct of lipgloss styles, and a status line built from the editor's
// live mode/cursor.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bug-ops/helixtrainer/simulator"
)

// assembler buffers the first half of a two-key normal-mode command
// ("d"+"d"→"dd", "g"+"g"→"gg", "r"+<ch>→"r<ch>") so the UI can dispatch
// single-key tokens immediately and only wait on the three multi-key
// literals the closed vocabulary defines (§6). Per §6, assembly only
// happens in Normal mode; Insert-mode keys are forwarded as they arrive.
type assembler struct {
	pending string // "", "d", "g", or "r"
}

// feed consumes one bubbletea key event and returns the command token to
// dispatch, if any is ready yet. A pending "d" or "g" that isn't followed
// by its own key again is dropped silently: the closed vocabulary has no
// other token starting with those keys, so a stray keystroke clears the
// pending state rather than producing an invalid token, and is then handled
// as a fresh key.
func (a *assembler) feed(msg tea.KeyMsg, mode simulator.Mode) (token string, ready bool) {
	if mode == simulator.Insert {
		return insertToken(msg)
	}
	return a.normalToken(msg)
}

func (a *assembler) normalToken(msg tea.KeyMsg) (string, bool) {
	if a.pending == "r" {
		a.pending = ""
		if ch := soleRune(msg); ch != 0 {
			return "r" + string(ch), true
		}
		return "", false
	}
	if a.pending != "" {
		prev := a.pending
		a.pending = ""
		if ch := soleRune(msg); string(ch) == prev {
			return prev + prev, true
		}
		// Not a repeat of the pending key: re-feed it as a fresh key so a
		// single stray keystroke doesn't swallow the next command.
		return a.normalToken(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		return "", false // Normal mode already; nothing to do.
	case tea.KeyCtrlR:
		return "ctrl-r", true
	}

	ch := soleRune(msg)
	if ch == 0 {
		return "", false
	}
	switch ch {
	case 'd', 'g', 'r':
		a.pending = string(ch)
		return "", false
	}
	return string(ch), true
}

// insertToken maps an Insert-mode key event directly to a token: special
// keys get their named token, everything else is forwarded as text.
func insertToken(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return "Escape", true
	case tea.KeyBackspace:
		return "Backspace", true
	case tea.KeyUp:
		return "ArrowUp", true
	case tea.KeyDown:
		return "ArrowDown", true
	case tea.KeyLeft:
		return "ArrowLeft", true
	case tea.KeyRight:
		return "ArrowRight", true
	case tea.KeyEnter:
		return "\n", true
	case tea.KeyTab:
		return "\t", true
	case tea.KeySpace:
		return " ", true
	}
	if len(msg.Runes) > 0 {
		return string(msg.Runes), true
	}
	return "", false
}

// soleRune extracts a single rune from a key event, or 0 if the event
// didn't carry exactly one printable rune.
func soleRune(msg tea.KeyMsg) rune {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0
	}
	return msg.Runes[0]
}
