// Package trace is the logging and error-annotation layer used by the
// cmd/nanogit package (the store and revwalk packages do not log), grounded on the teacher's
// modules/trace (Errorf, Location, Tracker) but built on logrus directly
// rather than the teacher's internal term-level color dispatch, since
// that package's terminal-capability detection (modules/term) was not
// part of this core's domain and is replaced here by the simpler
// go-isatty check in NewLogger.
package trace

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus.Logger writing to w, with colored output
// enabled only when w is a real terminal (go-isatty), matching the
// teacher's practice of never emitting ANSI escapes into a redirected
// file or pipe.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	colored := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:          !colored,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return l
}

// location reports the caller skip frames above Errorf, for inclusion in
// logged error messages the way the teacher's trace.Location does.
func location(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", line
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?", line
	}
	return fn.Name(), line
}

// Errorf logs a formatted message at Error level, tagged with its
// caller's location, and returns it as a plain error for the caller to
// propagate. It is for unexpected, non-domain failures (a corrupt cache
// invariant, a misconfigured flag) — the typed errors in package plumbing
// remain the way domain failures (ObjectNotFound, Corrupt, ...) are
// reported and tested against.
func Errorf(log *logrus.Logger, format string, a ...any) error {
	fn, line := location(2)
	msg := fmt.Sprintf(format, a...)
	log.Errorf("%s:%d %s", fn, line, msg)
	return errors.New(msg)
}
