package simulator

import "testing"

func TestBufferLineCountEmptyIsOne(t *testing.T) {
	b := NewBuffer("")
	if b.LineCount() != 1 {
		t.Fatalf("empty buffer line count = %d, want 1", b.LineCount())
	}
}

func TestBufferCharToLineRoundTrip(t *testing.T) {
	b := NewBuffer("line 1\nline 2\nline 3\n")
	cases := []struct {
		idx      int
		row, col int
	}{
		{0, 0, 0},
		{6, 0, 6},  // just before the first \n
		{7, 1, 0},  // start of "line 2"
		{14, 2, 0}, // start of "line 3"
		{21, 3, 0}, // trailing empty line after the final \n
	}
	for _, c := range cases {
		row, col := b.CharToLine(c.idx)
		if row != c.row || col != c.col {
			t.Errorf("CharToLine(%d) = (%d,%d), want (%d,%d)", c.idx, row, col, c.row, c.col)
		}
		if got := b.LineToChar(c.row) + c.col; c.col <= b.LineLen(c.row) && got != c.idx {
			t.Errorf("LineToChar(%d)+%d = %d, want %d", c.row, c.col, got, c.idx)
		}
	}
}

func TestBufferApplyTransactionAtomic(t *testing.T) {
	b := NewBuffer("hello world")
	repl := "HELLO"
	tx := singleEdit(0, 5, &repl)
	if err := b.ApplyTransaction(tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.String(); got != "HELLO world" {
		t.Fatalf("content = %q", got)
	}
}

func TestBufferApplyTransactionRejectsOverlap(t *testing.T) {
	b := NewBuffer("hello")
	tx := Transaction{Edits: []Edit{{Start: 0, End: 3}, {Start: 2, End: 4}}}
	if err := b.ApplyTransaction(tx); err == nil {
		t.Fatal("expected overlapping edits to be rejected")
	}
}

func TestBufferSlice(t *testing.T) {
	b := NewBuffer("abcdef")
	if got := b.Slice(1, 4); got != "bcd" {
		t.Fatalf("Slice(1,4) = %q", got)
	}
	if got := b.Slice(4, 1); got != "" {
		t.Fatalf("Slice with start>=end = %q, want empty", got)
	}
}
