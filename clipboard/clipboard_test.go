package clipboard

import "testing"

func TestMemoryClipboardRoundTrip(t *testing.T) {
	var c Memory
	if got, _ := c.Read(); got != "" {
		t.Fatalf("initial read = %q, want empty", got)
	}
	if err := c.Write("yanked text"); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, err := c.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got != "yanked text" {
		t.Fatalf("Read() = %q, want %q", got, "yanked text")
	}
}

func TestMemoryClipboardImplementsInterface(t *testing.T) {
	var _ Clipboard = (*Memory)(nil)
	var _ Clipboard = OS{}
}
