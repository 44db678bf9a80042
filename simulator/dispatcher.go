package simulator

// executeNormal implements routing rules 2-4 of §4.3 for Normal mode: look
// up the token in the fixed table, execute it, then apply the recording
// gate and insert-entry detection in that order.
func (s *Simulator) executeNormal(token string) error {
	switch {
	case token == "u":
		s.undo()
		return nil
	case token == "ctrl-r":
		return nil // redo is a documented no-op, §9.
	case token == ".":
		return s.repeatLast()
	case isMovementToken(token):
		s.applyMovement(token)
		return nil
	default:
		if err := s.applyEdit(token); err != nil {
			return err
		}
		s.afterNormalExecute(token)
		return nil
	}
}

func isMovementToken(token string) bool {
	switch token {
	case "h", "j", "k", "l", "w", "b", "e", "0", "$", "gg", "G":
		return true
	}
	return false
}

func (s *Simulator) applyMovement(token string) {
	head := s.sel.Head
	switch token {
	case "h":
		head = moveHorizontal(s.buf, head, -1)
		s.goalCol = colOf(s.buf, head)
	case "l":
		head = moveHorizontal(s.buf, head, 1)
		s.goalCol = colOf(s.buf, head)
	case "j":
		head, s.goalCol = moveVertical(s.buf, head, 1, s.goalCol)
	case "k":
		head, s.goalCol = moveVertical(s.buf, head, -1, s.goalCol)
	case "w":
		head = moveWordForward(s.buf, head)
		s.goalCol = colOf(s.buf, head)
	case "b":
		head = moveWordBackward(s.buf, head)
		s.goalCol = colOf(s.buf, head)
	case "e":
		head = moveWordEnd(s.buf, head)
		s.goalCol = colOf(s.buf, head)
	case "0":
		head = moveLineStart(s.buf, head)
		s.goalCol = 0
	case "$":
		head = moveDollar(s.buf, head)
		s.goalCol = colOf(s.buf, head)
	case "gg":
		head = 0
		s.goalCol = 0
	case "G":
		head = s.buf.LenChars()
		s.goalCol = colOf(s.buf, head)
	}
	s.sel.point(head)
}

func colOf(b *Buffer, idx int) int {
	_, col := b.CharToLine(idx)
	return col
}

// applyEdit executes one of the non-movement normal-mode commands (edits
// and mode entries). Edits that turn out to be no-ops (per §4.2's
// "fail as no-op, not error" rule) return nil without pushing history.
func (s *Simulator) applyEdit(token string) error {
	switch {
	case token == "x":
		return s.editX()
	case token == "dd":
		return s.editDD()
	case token == "c":
		return s.editC()
	case token == "J":
		return s.editJ()
	case token == ">":
		return s.editIndent()
	case token == "<":
		return s.editDedent()
	case token == "y":
		s.editY()
		return nil
	case token == "p":
		return s.editPaste(true)
	case token == "P":
		return s.editPaste(false)
	case len(token) >= 2 && token[0] == 'r':
		return s.editReplace([]rune(token)[1])
	case token == "i":
		return s.enterInsert(s.sel.Head)
	case token == "a":
		return s.enterInsert(min(s.sel.Head+1, s.buf.LenChars()))
	case token == "I":
		return s.enterInsert(moveLineStart(s.buf, s.sel.Head))
	case token == "A":
		return s.enterInsert(moveAfterLineEnd(s.buf, s.sel.Head))
	case token == "o":
		return s.editOpenLine(true)
	case token == "O":
		return s.editOpenLine(false)
	default:
		return newSimError(ErrorKindCommandInvalid, ErrCommandInvalid)
	}
}

// afterNormalExecute applies rules 3 and 4 after a successful edit/mode
// entry: overwrite the repeat buffer if the token is repeatable, then (if
// not replaying) start the insert recorder on mode-entry tokens.
func (s *Simulator) afterNormalExecute(token string) {
	if s.isRepeating {
		return
	}
	if isRepeatableToken(token) {
		s.repeat = commandAction([]string{token}, Normal)
	}
	if entersInsert(token) {
		if token == "o" || token == "O" {
			s.pendingOpenLineKey = token
		} else {
			s.pendingOpenLineKey = ""
		}
		s.rec.start()
	}
}

func (s *Simulator) editX() error {
	head := s.sel.Head
	if head >= s.buf.LenChars() {
		return nil
	}
	if err := s.mutate(singleEdit(head, head+1, nil)); err != nil {
		return err
	}
	s.sel.point(head)
	return nil
}

func (s *Simulator) editDD() error {
	row, _ := s.buf.CharToLine(s.sel.Head)
	var start, end int
	switch {
	case s.buf.LineCount() == 1:
		start, end = 0, s.buf.LenChars()
	case row < s.buf.LineCount()-1:
		start = s.buf.LineToChar(row)
		end = s.buf.LineToChar(row + 1)
	default:
		start = s.buf.LineToChar(row) - 1
		end = s.buf.LenChars()
	}
	if start == end {
		return nil // empty buffer: nothing to delete
	}
	if err := s.mutate(singleEdit(start, end, nil)); err != nil {
		return err
	}
	newRow := row
	if newRow >= s.buf.LineCount() {
		newRow = s.buf.LineCount() - 1
	}
	s.sel.point(s.buf.LineToChar(newRow))
	return nil
}

func (s *Simulator) editC() error {
	head := s.sel.Head
	if ch, ok := s.buf.CharAt(head); ok && ch != '\n' {
		if err := s.mutate(singleEdit(head, head+1, nil)); err != nil {
			return err
		}
	}
	s.sel.point(head)
	return s.enterInsert(head)
}

func (s *Simulator) editJ() error {
	row, _ := s.buf.CharToLine(s.sel.Head)
	if row >= s.buf.LineCount()-1 {
		return nil // no-op on the last line
	}
	nlPos := moveAfterLineEnd(s.buf, s.sel.Head)
	return s.mutate(singleEdit(nlPos, nlPos+1, replacementOf(" ")))
}

func (s *Simulator) editIndent() error {
	row, _ := s.buf.CharToLine(s.sel.Head)
	lineStart := s.buf.LineToChar(row)
	if err := s.mutate(singleEdit(lineStart, lineStart, replacementOf("  "))); err != nil {
		return err
	}
	s.sel.point(s.sel.Head + 2)
	return nil
}

func (s *Simulator) editDedent() error {
	row, _ := s.buf.CharToLine(s.sel.Head)
	lineStart := s.buf.LineToChar(row)
	line := s.buf.Line(row)
	removed := 0
	for removed < 2 && removed < len(line) && line[removed] == ' ' {
		removed++
	}
	if removed == 0 {
		return nil
	}
	if err := s.mutate(singleEdit(lineStart, lineStart+removed, nil)); err != nil {
		return err
	}
	newHead := s.sel.Head - removed
	if newHead < lineStart {
		newHead = lineStart
	}
	s.sel.point(newHead)
	return nil
}

func (s *Simulator) editY() {
	if ch, ok := s.buf.CharAt(s.sel.Head); ok && ch != '\n' {
		s.clipboard = string(ch)
	}
}

func (s *Simulator) editPaste(after bool) error {
	if s.clipboard == "" {
		return nil
	}
	pos := s.sel.Head
	if after {
		pos = min(pos+1, s.buf.LenChars())
	}
	if err := s.mutate(singleEdit(pos, pos, replacementOf(s.clipboard))); err != nil {
		return err
	}
	n := len([]rune(s.clipboard))
	s.sel.point(pos + n - 1)
	return nil
}

func (s *Simulator) editReplace(ch rune) error {
	head := s.sel.Head
	at, ok := s.buf.CharAt(head)
	if !ok || at == '\n' {
		return nil
	}
	if err := s.mutate(singleEdit(head, head+1, replacementOf(string(ch)))); err != nil {
		return err
	}
	s.sel.point(head)
	return nil
}

func (s *Simulator) enterInsert(head int) error {
	s.sel.point(head)
	s.mode = Insert
	return nil
}

func (s *Simulator) editOpenLine(below bool) error {
	row, _ := s.buf.CharToLine(s.sel.Head)
	var pos int
	if below {
		pos = moveAfterLineEnd(s.buf, s.sel.Head)
	} else {
		pos = s.buf.LineToChar(row)
	}
	if err := s.mutate(singleEdit(pos, pos, replacementOf("\n"))); err != nil {
		return err
	}
	if below {
		s.sel.point(pos + 1)
	} else {
		s.sel.point(pos)
	}
	s.mode = Insert
	return nil
}

// --- Insert mode ---

func (s *Simulator) executeInsert(token string) error {
	switch {
	case token == "Escape":
		return s.insertEscape()
	case token == "Backspace":
		return s.insertBackspace()
	case isMovementInsertToken(token):
		m := movementTokens[token]
		s.applyInsertMovement(m)
		if s.rec.recording {
			s.rec.recordMovement(m)
		}
		return nil
	default:
		return s.insertText(token)
	}
}

func isMovementInsertToken(token string) bool {
	_, ok := movementTokens[token]
	return ok
}

func (s *Simulator) insertText(text string) error {
	for _, ch := range text {
		head := s.sel.Head
		if err := s.mutate(singleEdit(head, head, replacementOf(string(ch)))); err != nil {
			return err
		}
		s.sel.point(head + 1)
		if s.rec.recording {
			s.rec.recordChar(ch)
		}
	}
	return nil
}

func (s *Simulator) insertBackspace() error {
	head := s.sel.Head
	if head <= 0 {
		return nil
	}
	if err := s.mutate(singleEdit(head-1, head, nil)); err != nil {
		return err
	}
	s.sel.point(head - 1)
	return nil
}

func (s *Simulator) applyInsertMovement(m Movement) {
	head := s.sel.Head
	switch m {
	case MoveLeft:
		head = moveHorizontal(s.buf, head, -1)
	case MoveRight:
		head = moveHorizontal(s.buf, head, 1)
	case MoveUp:
		head, s.goalCol = moveVertical(s.buf, head, -1, s.goalCol)
	case MoveDown:
		head, s.goalCol = moveVertical(s.buf, head, 1, s.goalCol)
	}
	s.sel.point(head)
}

func (s *Simulator) insertEscape() error {
	s.mode = Normal
	action := s.rec.finish(s.pendingOpenLineKey)
	s.pendingOpenLineKey = ""
	if !s.isRepeating {
		s.repeat = action
	}
	return nil
}

// --- Undo and repeat ---

func (s *Simulator) undo() {
	entry, ok := s.hist.pop()
	if !ok {
		return
	}
	s.buf.SetContent(entry.before)
	if s.sel.Head > s.buf.LenChars() {
		s.sel.point(s.buf.LenChars())
	}
}

func (s *Simulator) repeatLast() error {
	if s.repeat.kind == actionNone {
		return nil
	}
	s.isRepeating = true
	defer func() { s.isRepeating = false }()

	switch s.repeat.kind {
	case actionCommand:
		if s.mode != s.repeat.expectedMode {
			return nil // silent no-op, Vim semantics.
		}
		for _, key := range s.repeat.keys {
			if err := s.Execute(key); err != nil {
				return err
			}
		}
	case actionInsertSequence:
		openKey := s.repeat.openLineKey
		if openKey != "" {
			if err := s.Execute(openKey); err != nil {
				return err
			}
		} else {
			if err := s.Execute("i"); err != nil {
				return err
			}
		}
		for _, ch := range s.repeat.text {
			if err := s.insertText(string(ch)); err != nil {
				return err
			}
		}
		for _, m := range s.repeat.movements {
			s.applyInsertMovement(m)
		}
		return s.insertEscape()
	}
	return nil
}

