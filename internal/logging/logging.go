// Package logging provides the single package-level logger threaded
// through the session/CLI layers, per the ambient error/logging
// conventions: standard library log, a "[helixtrainer] " prefix, writing
// to stderr, silenced unless verbose mode is enabled. Grounded on the
// reference editor's direct log.Println calls (errors.go, state.go,
// messages.go) for channel-full warnings — this package gives that same
// style of call a shared, nameable logger instead of the bare package-level
// log functions, so the CLI's -v flag can toggle it.
package logging

import (
	"io"
	"log"
	"os"
)

const prefix = "[helixtrainer] "

// New builds a logger writing to stderr with the helixtrainer prefix.
// When verbose is false the logger discards everything, matching §7's
// "detailed variants are logged but not shown" policy without special-
// casing every call site.
func New(verbose bool) *log.Logger {
	var w io.Writer = io.Discard
	if verbose {
		w = os.Stderr
	}
	return log.New(w, prefix, log.LstdFlags)
}
