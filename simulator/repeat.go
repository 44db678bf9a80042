package simulator

// Hard caps on the insert recorder, grounded on original_source's
// helix/repeat.rs (exact values, including the cap-enforcement test that
// records MAX+100 chars and asserts the stored text is truncated to
// exactly MAX).
const (
	maxRecordedText      = 1000
	maxRecordedMovements = 100
)

// actionKind discriminates the closed RepeatableAction union. Go has no
// native sum type; this mirrors the reference editor's own pattern for a
// closed variant (a payload struct keyed by a discriminant field, as in
// signals.go's Signal value set) rather than introducing an interface.
type actionKind int

const (
	actionNone actionKind = iota
	actionCommand
	actionInsertSequence
)

// RepeatableAction is the repeat buffer's single slot: either a normal-mode
// Command or a complete insert session (InsertSequence).
type RepeatableAction struct {
	kind actionKind

	// Command payload.
	keys         []string
	expectedMode Mode

	// InsertSequence payload.
	//
	// Known simplification, preserved from the reference implementation
	// (see DESIGN.md's Open Question decision): movements are recorded
	// separately from text and replayed as two phases — all of text first,
	// then all of movements — not interleaved with the original keystrokes
	// that produced them, so a session that mixes typing and arrow keys can
	// replay to a different buffer than the original produced.
	text      string
	movements []Movement

	// openLineKey, when set, is "o" or "O": the mode-entry keystroke that
	// began this insert session is replayed before text/movements so the
	// newline it creates is not lost on repeat — the upgrade over the
	// reference implementation's InsertSequence, which only ever captured
	// the chunk typed after entering insert mode.
	openLineKey string
}

// recorder accumulates an in-progress insert session.
type recorder struct {
	recording bool
	text      []rune
	movements []Movement
}

func (r *recorder) start() {
	r.recording = true
	r.text = nil
	r.movements = nil
}

func (r *recorder) recordChar(ch rune) {
	if !r.recording || len(r.text) >= maxRecordedText {
		return
	}
	r.text = append(r.text, ch)
}

func (r *recorder) recordMovement(m Movement) {
	if !r.recording || len(r.movements) >= maxRecordedMovements {
		return
	}
	r.movements = append(r.movements, m)
}

// finish flushes the recorder into an InsertSequence action, even if the
// session recorded nothing, and resets recording state.
func (r *recorder) finish(openLineKey string) RepeatableAction {
	a := RepeatableAction{
		kind:        actionInsertSequence,
		text:        string(r.text),
		movements:   append([]Movement{}, r.movements...),
		openLineKey: openLineKey,
	}
	r.recording = false
	r.text = nil
	r.movements = nil
	return a
}

// commandAction wraps a normal-mode command token into a Command action.
func commandAction(keys []string, mode Mode) RepeatableAction {
	return RepeatableAction{kind: actionCommand, keys: append([]string{}, keys...), expectedMode: mode}
}
