// Package scenario defines the scenario contract consumed by the session
// layer and a TOML loader that produces it, per §6 and §3. Grounded on
// original_source/src/config/scenarios.rs's struct shape, translated from
// serde derive attributes to Go struct tags and an explicit Validate method.
package scenario

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	maxIDLen           = 64
	maxFileContentBytes = 100_000
	maxCursorCoordinate = 10_000
	maxAlternatives     = 20
	maxHints            = 10
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// ErrScenarioInvalid is the ScenarioInvalid error kind from §7: a loader-side
// bounds, encoding, or size violation that prevents session construction.
var ErrScenarioInvalid = errors.New("scenario invalid")

// State is one half of the scenario contract: a buffer content plus a
// cursor position, and (for Target only) an optional selection.
type State struct {
	FileContent    string `toml:"file_content"`
	CursorPosition [2]int `toml:"cursor_position"`
}

// TargetState extends State with an optional expected selection.
type TargetState struct {
	State
	Selection *[4]int `toml:"selection,omitempty"`
}

// Solution is the canonical command sequence that solves a scenario.
type Solution struct {
	Commands    []string `toml:"commands"`
	Description string   `toml:"description"`
}

// AlternativeSolution is a supplemented feature (SPEC_FULL.md §10): a
// non-canonical but still-correct command sequence, surfaced by hints once
// the primary solution's hint is exhausted.
type AlternativeSolution struct {
	Commands    []string `toml:"commands"`
	Description string   `toml:"description"`
}

// ScoringConfig holds the scorer's tunables for one scenario.
type ScoringConfig struct {
	OptimalCount int `toml:"optimal_count"`
	MaxPoints    int `toml:"max_points"`
	Tolerance    int `toml:"tolerance"`
}

// Scenario is one fully validated entry from a [[scenarios]] TOML array.
type Scenario struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`

	Setup  State       `toml:"setup"`
	Target TargetState `toml:"target"`

	Solution     Solution               `toml:"solution"`
	Alternatives []AlternativeSolution  `toml:"alternatives,omitempty"`
	Hints        []string               `toml:"hints,omitempty"`
	Scoring      ScoringConfig          `toml:"scoring"`
}

// Validate checks the bounds from §3/§6: optimal_count >= 1, cursor
// coordinates <= 10,000, content <= 100,000 bytes, id matches the fixed
// pattern, and the alternatives/hints counts stay within their caps.
func (s Scenario) Validate() error {
	if !idPattern.MatchString(s.ID) {
		return fmt.Errorf("%w: id %q does not match [A-Za-z0-9_]{1,64}", ErrScenarioInvalid, s.ID)
	}
	if err := validateState(s.Setup); err != nil {
		return err
	}
	if err := validateState(s.Target.State); err != nil {
		return err
	}
	if s.Scoring.OptimalCount < 1 {
		return fmt.Errorf("%w: optimal_count must be >= 1", ErrScenarioInvalid)
	}
	if s.Scoring.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be >= 0", ErrScenarioInvalid)
	}
	if len(s.Alternatives) > maxAlternatives {
		return fmt.Errorf("%w: at most %d alternatives allowed", ErrScenarioInvalid, maxAlternatives)
	}
	if len(s.Hints) > maxHints {
		return fmt.Errorf("%w: at most %d hints allowed", ErrScenarioInvalid, maxHints)
	}
	return nil
}

func validateState(st State) error {
	if len(st.FileContent) > maxFileContentBytes {
		return fmt.Errorf("%w: file_content exceeds %d bytes", ErrScenarioInvalid, maxFileContentBytes)
	}
	for _, c := range st.CursorPosition {
		if c < 0 || c > maxCursorCoordinate {
			return fmt.Errorf("%w: cursor_position coordinate %d out of range [0, %d]", ErrScenarioInvalid, c, maxCursorCoordinate)
		}
	}
	return nil
}

// File is the top-level [[scenarios]] TOML document.
type File struct {
	Scenarios []Scenario `toml:"scenarios"`
}

// Catalog wraps a loaded scenario set with lookup by ID — a supplemented
// feature (SPEC_FULL.md §10): the distilled spec never named how scenarios
// are enumerated for a menu, but the reference trainer's loader always
// exposed the full set.
type Catalog struct {
	Scenarios []Scenario
}

// ByID returns the scenario with the given ID, if present.
func (c Catalog) ByID(id string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
