package simulator

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Buffer is an ordered sequence of Unicode scalar values, indexable both by
// character position and by line number. The newline character terminates a
// line; an empty buffer has exactly one logical line.
//
// Lines are stored as rune slices, the same representation the reference
// editor's textBuffer uses, but content is split with strings.Split (not a
// hand-rolled rune loop) so that a trailing newline round-trips exactly: the
// scenario contract compares buffer content byte-for-byte against a target
// that may or may not end in "\n".
type Buffer struct {
	lines [][]rune
}

// NewBuffer builds a buffer from its full string content.
func NewBuffer(content string) *Buffer {
	b := &Buffer{}
	b.SetContent(content)
	return b
}

// SetContent replaces the entire buffer content.
func (b *Buffer) SetContent(content string) {
	parts := strings.Split(content, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	b.lines = lines
}

// String returns the full buffer content.
func (b *Buffer) String() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// LineCount returns the number of logical lines. Always >= 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLen returns the rune count of a line, not counting its newline.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Line returns the runes of a single line (not counting its newline).
func (b *Buffer) Line(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// LenChars returns the total character count, counting one char per newline
// separator between lines (matching a rope's treatment of "\n" as a char).
func (b *Buffer) LenChars() int {
	n := 0
	for i, l := range b.lines {
		n += len(l)
		if i < len(b.lines)-1 {
			n++
		}
	}
	return n
}

// LineToChar returns the char index of the first character of row.
func (b *Buffer) LineToChar(row int) int {
	if row <= 0 {
		return 0
	}
	n := 0
	for i := 0; i < row && i < len(b.lines); i++ {
		n += len(b.lines[i]) + 1
	}
	return n
}

// CharToLine converts a char index into a (row, col) position. idx is
// clamped into [0, LenChars()].
func (b *Buffer) CharToLine(idx int) (row, col int) {
	if idx < 0 {
		idx = 0
	}
	remaining := idx
	for i, l := range b.lines {
		lineLen := len(l)
		if i == len(b.lines)-1 {
			if remaining > lineLen {
				remaining = lineLen
			}
			return i, remaining
		}
		// +1 for the newline separating this line from the next.
		if remaining <= lineLen {
			return i, remaining
		}
		remaining -= lineLen + 1
	}
	return 0, 0
}

// CharAt returns the rune at char index idx, or '\n' if idx lands exactly on
// a line separator. ok is false when idx is out of range.
func (b *Buffer) CharAt(idx int) (r rune, ok bool) {
	if idx < 0 || idx >= b.LenChars() {
		return 0, false
	}
	row, col := b.CharToLine(idx)
	if col < b.LineLen(row) {
		return b.lines[row][col], true
	}
	return '\n', true
}

// Slice returns the substring of the buffer's flat content in [start, end).
func (b *Buffer) Slice(start, end int) string {
	content := []rune(b.String())
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return ""
	}
	return string(content[start:end])
}

// ApplyTransaction applies t atomically to the buffer's pre-image. Edits
// must be non-overlapping and are interpreted in pre-image char coordinates.
// On success the buffer is mutated in place.
func (b *Buffer) ApplyTransaction(t Transaction) error {
	if err := t.validate(b.LenChars()); err != nil {
		return err
	}
	content := []rune(b.String())
	// Apply from the highest offset down so earlier offsets stay valid.
	edits := t.sortedDescending()
	for _, e := range edits {
		var repl []rune
		if e.Replacement != nil {
			repl = []rune(*e.Replacement)
		}
		head := append([]rune{}, content[:e.Start]...)
		tail := append([]rune{}, content[e.End:]...)
		head = append(head, repl...)
		content = append(head, tail...)
	}
	b.SetContent(string(content))
	return nil
}

// graphemeWidth reports how many runes the grapheme cluster starting at
// content[idx] occupies, used by h/l movement so combining sequences and
// multi-rune emoji move as a single visual unit.
func graphemeWidth(content []rune, idx int) int {
	if idx < 0 || idx >= len(content) {
		return 1
	}
	rest := string(content[idx:])
	gr := uniseg.NewGraphemes(rest)
	if !gr.Next() {
		return 1
	}
	_, to := gr.Positions()
	// Positions are byte offsets into rest; convert back to a rune count.
	return len([]rune(rest[:to]))
}

// prevGraphemeWidth reports how many runes the grapheme cluster ending at
// content[idx-1] occupies, for backward h movement.
func prevGraphemeWidth(content []rune, idx int) int {
	if idx <= 0 {
		return 1
	}
	return graphemeBack(string(content[:idx]))
}

// graphemeBack returns the rune width of the last grapheme cluster in s.
func graphemeBack(s string) int {
	if s == "" {
		return 1
	}
	var boundaries []int
	state := -1
	rest := s
	offset := 0
	for len(rest) > 0 {
		clusterLen, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		state = st
		boundaries = append(boundaries, offset)
		offset += clusterLen
		rest = r
	}
	last := boundaries[len(boundaries)-1]
	return len([]rune(s[last:]))
}
