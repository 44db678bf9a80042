package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Loader parses scenario TOML files confined to a set of allowed base
// directories, grounded on original_source/src/config/scenarios.rs's
// ScenarioLoader{allowed_base_paths}: a bare file path from argv is never
// trusted without a containment check.
type Loader struct {
	AllowedBasePaths []string
}

// defaultAllowedBasePaths mirrors original_source/src/config/scenarios.rs's
// ScenarioLoader::new(): a relative "scenarios" directory next to the
// working directory plus a conventional system-wide install location.
var defaultAllowedBasePaths = []string{"./scenarios", "/usr/share/helixtrainer/scenarios"}

// NewLoader builds a Loader restricted to the given base directories. With
// no arguments it falls back to defaultAllowedBasePaths rather than
// disabling the containment check, so callers must pass explicit paths
// (e.g. in tests) to scope loading to a directory of their own choosing.
func NewLoader(allowedBasePaths ...string) *Loader {
	if len(allowedBasePaths) == 0 {
		allowedBasePaths = defaultAllowedBasePaths
	}
	return &Loader{AllowedBasePaths: allowedBasePaths}
}

// Load reads, parses, and validates a scenario TOML file, returning its
// Catalog. Unknown TOML fields are rejected (§6).
func (l *Loader) Load(path string) (Catalog, error) {
	resolved, err := l.resolvePath(path)
	if err != nil {
		return Catalog{}, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %s", ErrScenarioInvalid, err)
	}
	if info.Size() > maxFileContentBytes {
		return Catalog{}, fmt.Errorf("%w: scenario file exceeds %d bytes", ErrScenarioInvalid, maxFileContentBytes)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %s", ErrScenarioInvalid, err)
	}

	var doc File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Catalog{}, fmt.Errorf("%w: %s", ErrScenarioInvalid, err)
	}

	for _, s := range doc.Scenarios {
		if err := s.Validate(); err != nil {
			return Catalog{}, err
		}
	}
	return Catalog{Scenarios: doc.Scenarios}, nil
}

// resolvePath rejects any path that, once resolved, escapes every allowed
// base directory. A Loader with no allowed base paths rejects everything:
// the containment check fails closed rather than being silently disabled.
func (l *Loader) resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrScenarioInvalid, err)
	}
	for _, base := range l.AllowedBasePaths {
		baseAbs, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(baseAbs, abs)
		if err == nil && !strings.HasPrefix(rel, "..") && rel != ".." {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%w: %s escapes all allowed base paths", ErrScenarioInvalid, path)
}
