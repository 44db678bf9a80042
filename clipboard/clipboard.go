// Package clipboard bridges the simulator's in-process clipboard slot to an
// external clipboard, grounded on the reference editor's core/editor.go
// Clipboard interface (Write/Read) and adapter-bubbletea's atotto/clipboard
// wiring.
package clipboard

import "github.com/atotto/clipboard"

// Clipboard mirrors the reference editor's Clipboard interface exactly in
// shape, so the simulator and its host application can share one contract.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Memory is an in-process clipboard slot for tests, so they never touch a
// real OS clipboard. The simulator does not use it: it keeps its own string
// slot.
type Memory struct {
	text string
}

func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}

func (m *Memory) Read() (string, error) {
	return m.text, nil
}

// OS backs Clipboard with the real operating-system clipboard via
// github.com/atotto/clipboard, used by the interactive CLI/TUI.
type OS struct{}

func (OS) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (OS) Read() (string, error) {
	return clipboard.ReadAll()
}
