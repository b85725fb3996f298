// Package logging wires up the leveled operational logger shared by the
// server and client binaries. It follows the subsystem-logger convention
// used throughout the Decred codebases: a package-level slog.Logger,
// defaulted to slog.Disabled until a backend is installed by main, with
// SetLevel exposed for the --debuglevel flag.
package logging

import (
	"io"
	"os"

	"github.com/jrick/logrotate/rotator"

	"github.com/Eacred/slog"
)

// Log is the subsystem logger used by every internal package. It starts
// disabled so tests and library callers never produce output unless a
// binary's main explicitly calls Init.
var Log = slog.Disabled

// rotatingLogWriter adapts a logrotate rotator to the io.Writer backend
// expects.
type rotatingLogWriter struct {
	rotator *rotator.Rotator
}

func (w *rotatingLogWriter) Write(p []byte) (int, error) {
	return w.rotator.Write(p)
}

// Init installs a backend writing to stderr, and additionally to
// logFile (rotated at 10 MiB, keeping 3 old copies) when logFile is
// non-empty. It returns the configured logger, the rotator as a bare
// io.Writer (nil when logFile is empty) so callers can tee other
// output — such as the diagnostic stream's port announcement and stats
// dumps — into the same rotated file, and a closer to flush the
// rotator on shutdown.
func Init(logFile string) (slog.Logger, io.Writer, func(), error) {
	backendOpt := slog.NewBackend(os.Stderr)
	closer := func() {}
	var rotatorWriter io.Writer

	if logFile != "" {
		r, err := rotator.New(logFile, 10*1024, false, 3)
		if err != nil {
			return slog.Disabled, nil, closer, err
		}
		w := &rotatingLogWriter{rotator: r}
		backendOpt = slog.NewBackend(os.Stderr, w)
		rotatorWriter = w
		closer = r.Close
	}

	logger := backendOpt.Logger("CRKS")
	logger.SetLevel(slog.LevelInfo)
	Log = logger
	return logger, rotatorWriter, closer, nil
}

// SetLevel parses levelStr (e.g. "trace", "debug", "info", "warn",
// "error", "critical") and applies it to Log. An unrecognized level
// leaves Log unchanged and reports false.
func SetLevel(levelStr string) bool {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		return false
	}
	Log.SetLevel(level)
	return true
}
