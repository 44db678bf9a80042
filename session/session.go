// Package session implements the scenario contract described in §4.5: it
// binds one scenario to a simulator, counts actions, detects completion,
// and produces scored feedback. Grounded on
// original_source/src/game/session/mod.rs for exact operation semantics,
// expressed in the reference editor's Go idiom (an exported struct wrapping
// a sub-component, as core/state.go's editor wraps Buffer; here a concrete
// *simulator.Simulator).
package session

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bug-ops/helixtrainer/internal/logging"
	"github.com/bug-ops/helixtrainer/scenario"
	"github.com/bug-ops/helixtrainer/scoring"
	"github.com/bug-ops/helixtrainer/simulator"
)

// maxActions is the upstream action-count ceiling from §5: neither a
// preemptive cancel nor a streaming limit, only checked at RecordAction.
const maxActions = 1_000_000

// State is the session lifecycle state.
type State int

const (
	Active State = iota
	Completed
	Abandoned
)

func (s State) String() string {
	switch s {
	case Completed:
		return "completed"
	case Abandoned:
		return "abandoned"
	default:
		return "active"
	}
}

// UserAction records one dispatched command token and when it happened,
// relative to session start.
type UserAction struct {
	Command string
	Elapsed time.Duration
}

// Feedback is the summary produced by GetFeedback.
type Feedback struct {
	Success        bool
	Score          int
	MaxPoints      int
	Rating         scoring.Rating
	ActionsTaken   int
	OptimalActions int
	Duration       time.Duration
	Hint           *string
	IsOptimal      bool
}

// Session binds one Scenario to one Simulator for the duration of an
// attempt.
type Session struct {
	ID       string
	Scenario scenario.Scenario

	sim *simulator.Simulator

	actions     []UserAction
	startedAt   time.Time
	completedAt *time.Time
	state       State
	hintsShown  int

	progressValid bool
	progressCache int

	log *log.Logger
}

// New constructs a session from a scenario, seeding the simulator from
// scenario.Setup, per §4.5's construction rule. now is supplied by the
// caller (the package never calls time.Now() itself so tests are
// deterministic) and stamps StartedAt.
func New(sc scenario.Scenario, now time.Time) *Session {
	s := &Session{ID: uuid.NewString(), Scenario: sc, log: logging.New(false)}
	s.rebuild(now)
	return s
}

// SetLogger replaces the session's logger, used by the CLI to wire a
// verbose logger in after construction.
func (s *Session) SetLogger(l *log.Logger) { s.log = l }

func (s *Session) rebuild(now time.Time) {
	s.sim = simulator.NewSimulator(s.Scenario.Setup.FileContent, s.Scenario.Setup.CursorPosition[0], s.Scenario.Setup.CursorPosition[1])
	s.actions = nil
	s.startedAt = now
	s.completedAt = nil
	s.state = Active
	s.hintsShown = 0
	s.invalidateProgress()
}

func (s *Session) invalidateProgress() { s.progressValid = false }

// RecordAction dispatches token to the simulator and updates session
// bookkeeping, per §4.5.
func (s *Session) RecordAction(token string, now time.Time) error {
	if len(s.actions)+1 > maxActions {
		return simulator.NewError(simulator.ErrorKindActionLimit, simulator.ErrActionLimit)
	}
	if err := s.sim.Execute(token); err != nil {
		s.log.Printf("command %q: %s", token, simulator.UserMessage(err))
		return err
	}
	s.actions = append(s.actions, UserAction{Command: token, Elapsed: now.Sub(s.startedAt)})
	s.invalidateProgress()
	if s.CheckCompletion() && s.state == Active {
		s.state = Completed
		completed := now
		s.completedAt = &completed
	}
	return nil
}

// currentCursor returns the simulator's cursor as a [row, col] pair,
// matching the scenario contract's own representation.
func (s *Session) currentCursor() [2]int {
	row, col := s.sim.Cursor()
	return [2]int{row, col}
}

// CheckContentMatches reports content equality only, ignoring cursor.
func (s *Session) CheckContentMatches() bool {
	return s.sim.Content() == s.Scenario.Target.FileContent
}

// CheckCompletion implements §4.5/§8 invariant #6: content and cursor must
// both match the target.
func (s *Session) CheckCompletion() bool {
	if !s.CheckContentMatches() {
		return false
	}
	cursor := s.currentCursor()
	return cursor == s.Scenario.Target.CursorPosition
}

// CompletionProgress returns a cached 0-100 percentage of target lines that
// match the current buffer, recomputed on demand (the interior-mutable
// progress cache of §5).
func (s *Session) CompletionProgress() int {
	if s.progressValid {
		return s.progressCache
	}
	s.progressCache = computeProgress(s.sim.Content(), s.Scenario.Target.FileContent)
	s.progressValid = true
	return s.progressCache
}

func computeProgress(current, target string) int {
	targetLines := strings.Split(target, "\n")
	if len(targetLines) == 0 || (len(targetLines) == 1 && targetLines[0] == "") {
		return 100
	}
	currentLines := strings.Split(current, "\n")
	n := len(targetLines)
	if len(currentLines) < n {
		n = len(currentLines)
	}
	matches := 0
	for i := 0; i < n; i++ {
		if currentLines[i] == targetLines[i] {
			matches++
		}
	}
	return (100 * matches) / len(targetLines)
}

// GetHint returns the next undispensed hint, if any.
func (s *Session) GetHint() (string, bool) {
	if s.hintsShown >= len(s.Scenario.Hints) {
		return "", false
	}
	hint := s.Scenario.Hints[s.hintsShown]
	s.hintsShown++
	return hint, true
}

// CalculateScore returns 0 unless the session is Completed.
func (s *Session) CalculateScore() int {
	if s.state != Completed {
		return 0
	}
	score, err := scoring.CalculateScore(s.Scenario.Scoring.OptimalCount, len(s.actions), s.Scenario.Scoring.Tolerance, s.Scenario.Scoring.MaxPoints)
	if err != nil {
		return 0
	}
	return score
}

// duration returns the frozen duration once completed, else elapsed-so-far
// measured against now.
func (s *Session) duration(now time.Time) time.Duration {
	if s.completedAt != nil {
		return s.completedAt.Sub(s.startedAt)
	}
	return now.Sub(s.startedAt)
}

// GetFeedback produces the summary described in §4.5. now is only used to
// compute an in-progress duration; once the session is Completed the
// duration is frozen and now has no effect — two calls with different now
// values return the same Duration (the freeze law in §8).
func (s *Session) GetFeedback(now time.Time) Feedback {
	actionsTaken := len(s.actions)
	optimal := s.Scenario.Scoring.OptimalCount
	score := s.CalculateScore()
	f := Feedback{
		Success:        s.state == Completed,
		Score:          score,
		MaxPoints:      s.Scenario.Scoring.MaxPoints,
		Rating:         scoring.GetRating(score, s.Scenario.Scoring.MaxPoints),
		ActionsTaken:   actionsTaken,
		OptimalActions: optimal,
		Duration:       s.duration(now),
		IsOptimal:      actionsTaken <= optimal+s.Scenario.Scoring.Tolerance,
	}
	if f.Success && actionsTaken > 2*optimal {
		desc, commands := s.Scenario.Solution.Description, s.Scenario.Solution.Commands
		if s.hintsShown >= len(s.Scenario.Hints) && len(s.Scenario.Alternatives) > 0 {
			alt := s.Scenario.Alternatives[0]
			desc, commands = alt.Description, alt.Commands
		}
		hint := desc + ". Try using: " + strings.Join(commands, ", ")
		f.Hint = &hint
	}
	return f
}

// Reset rebuilds the simulator from the scenario setup and clears
// bookkeeping, per §4.5.
func (s *Session) Reset(now time.Time) { s.rebuild(now) }

// Abandon flips the session to the Abandoned state.
func (s *Session) Abandon() { s.state = Abandoned }

// State reports the session's lifecycle state.
func (s *Session) State() State { return s.state }

// Content exposes the simulator's current buffer content, for UIs that
// render the live buffer.
func (s *Session) Content() string { return s.sim.Content() }

// Cursor exposes the simulator's current cursor position.
func (s *Session) Cursor() (row, col int) { return s.sim.Cursor() }

// Mode exposes the simulator's current mode.
func (s *Session) Mode() simulator.Mode { return s.sim.Mode() }

// Actions returns the recorded actions so far.
func (s *Session) Actions() []UserAction { return append([]UserAction{}, s.actions...) }

// Clipboard exposes the simulator's clipboard slot.
func (s *Session) Clipboard() string { return s.sim.Clipboard() }

// SetClipboard seeds the simulator's clipboard slot, used by a host
// application that mirrors an external clipboard into the simulator ahead
// of a paste token.
func (s *Session) SetClipboard(text string) { s.sim.SetClipboard(text) }
