package session

import (
	"testing"
	"time"

	"github.com/bug-ops/helixtrainer/scenario"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func deleteFirstLineScenario() scenario.Scenario {
	return scenario.Scenario{
		ID:   "delete_first_line",
		Name: "Delete the first line",
		Setup: scenario.State{
			FileContent:    "line 1\nline 2\nline 3\n",
			CursorPosition: [2]int{0, 0},
		},
		Target: scenario.TargetState{
			State: scenario.State{
				FileContent:    "line 2\nline 3\n",
				CursorPosition: [2]int{0, 0},
			},
		},
		Solution: scenario.Solution{Commands: []string{"dd"}, Description: "delete the first line"},
		Scoring:  scenario.ScoringConfig{OptimalCount: 2, MaxPoints: 100, Tolerance: 0},
	}
}

func TestDeleteFirstLineScenario(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	if err := sess.RecordAction("dd", epoch.Add(time.Second)); err != nil {
		t.Fatalf("RecordAction error: %v", err)
	}
	if !sess.CheckCompletion() {
		t.Fatal("expected session to be completed")
	}
	fb := sess.GetFeedback(epoch.Add(2 * time.Second))
	if fb.Score != 100 {
		t.Fatalf("score = %d, want 100", fb.Score)
	}
	if fb.Rating.String() != "Perfect" {
		t.Fatalf("rating = %s, want Perfect", fb.Rating)
	}
	if !fb.IsOptimal {
		t.Fatal("expected IsOptimal")
	}
}

func TestScorerOnStruggleScenarioProducesHint(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	now := epoch
	// Six arbitrary valid movements/edits that happen to reach the target:
	// five movements that leave the cursor back at (0,0) (j/k cancel out, h
	// is clamped, 0 undoes l) followed by the one edit that actually
	// matters, landing on the same end state "dd" alone would reach.
	tokens := []string{"j", "k", "h", "l", "0", "dd"}
	for _, tok := range tokens {
		now = now.Add(time.Second)
		if err := sess.RecordAction(tok, now); err != nil {
			t.Fatalf("RecordAction(%q) error: %v", tok, err)
		}
	}
	if !sess.CheckCompletion() {
		t.Fatalf("expected completion, content=%q cursor=%v", sess.Content(), sess.currentCursor())
	}
	fb := sess.GetFeedback(now)
	if !fb.Success {
		t.Fatal("expected success")
	}
	if fb.ActionsTaken != 6 {
		t.Fatalf("actions taken = %d, want 6", fb.ActionsTaken)
	}
	if fb.IsOptimal {
		t.Fatal("expected not optimal")
	}
	if fb.Hint == nil {
		t.Fatal("expected a hint since actions (6) > 2*optimal (4)")
	}
}

func TestGetFeedbackHintUsesAlternativeWhenPrimaryHintsExhausted(t *testing.T) {
	sc := deleteFirstLineScenario()
	sc.Hints = []string{"look at the first line"}
	sc.Alternatives = []scenario.AlternativeSolution{
		{Commands: []string{"dj", "k"}, Description: "delete down then move back up"},
	}
	sess := New(sc, epoch)

	if _, ok := sess.GetHint(); !ok {
		t.Fatal("expected a hint to be available")
	}

	now := epoch
	tokens := []string{"j", "k", "h", "l", "0", "dd"}
	for _, tok := range tokens {
		now = now.Add(time.Second)
		if err := sess.RecordAction(tok, now); err != nil {
			t.Fatalf("RecordAction(%q) error: %v", tok, err)
		}
	}
	fb := sess.GetFeedback(now)
	if fb.Hint == nil {
		t.Fatal("expected a hint since actions (6) > 2*optimal (4)")
	}
	want := "delete down then move back up. Try using: dj, k"
	if *fb.Hint != want {
		t.Fatalf("hint = %q, want %q", *fb.Hint, want)
	}
}

func TestAbandon(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	sess.Abandon()
	if sess.State() != Abandoned {
		t.Fatalf("state = %v, want Abandoned", sess.State())
	}
	if sess.CalculateScore() != 0 {
		t.Fatal("expected score 0 after abandon")
	}
	fb := sess.GetFeedback(epoch)
	if fb.Success {
		t.Fatal("expected feedback.Success = false after abandon")
	}
}

func TestFeedbackDurationFreezesOnCompletion(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	if err := sess.RecordAction("dd", epoch.Add(3*time.Second)); err != nil {
		t.Fatal(err)
	}
	first := sess.GetFeedback(epoch.Add(10 * time.Second))
	second := sess.GetFeedback(epoch.Add(20 * time.Second))
	if first.Duration != second.Duration {
		t.Fatalf("duration changed after completion: %v -> %v", first.Duration, second.Duration)
	}
	if first.Duration != 3*time.Second {
		t.Fatalf("duration = %v, want 3s", first.Duration)
	}
}

func TestRecordActionRejectsInvalidTokenWithoutAdvancing(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	if err := sess.RecordAction("Z", epoch); err == nil {
		t.Fatal("expected error for unknown token")
	}
	if len(sess.Actions()) != 0 {
		t.Fatalf("actions recorded = %d, want 0", len(sess.Actions()))
	}
}

func TestGetHintExhausts(t *testing.T) {
	sc := deleteFirstLineScenario()
	sc.Hints = []string{"first hint", "second hint"}
	sess := New(sc, epoch)

	h1, ok := sess.GetHint()
	if !ok || h1 != "first hint" {
		t.Fatalf("hint 1 = %q, %v", h1, ok)
	}
	h2, ok := sess.GetHint()
	if !ok || h2 != "second hint" {
		t.Fatalf("hint 2 = %q, %v", h2, ok)
	}
	if _, ok := sess.GetHint(); ok {
		t.Fatal("expected no hints left")
	}
}

func TestResetRebuildsFromSetup(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	if err := sess.RecordAction("dd", epoch.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	sess.Reset(epoch.Add(time.Minute))
	if sess.Content() != "line 1\nline 2\nline 3\n" {
		t.Fatalf("content after reset = %q", sess.Content())
	}
	if sess.State() != Active {
		t.Fatalf("state after reset = %v, want Active", sess.State())
	}
	if len(sess.Actions()) != 0 {
		t.Fatalf("actions after reset = %d, want 0", len(sess.Actions()))
	}
}

func TestCompletionProgress(t *testing.T) {
	sess := New(deleteFirstLineScenario(), epoch)
	if got := sess.CompletionProgress(); got != 0 {
		t.Fatalf("initial progress = %d, want 0", got)
	}
	if err := sess.RecordAction("dd", epoch.Add(time.Second)); err != nil {
		t.Fatal(err)
	}
	if got := sess.CompletionProgress(); got != 100 {
		t.Fatalf("progress after completion = %d, want 100", got)
	}
}
