package telemetry

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitSlog installs a tint handler on stderr as the default logger.
func InitSlog(verbose bool) {
	InitSlogTo(os.Stderr, verbose)
}

// InitSlogTo is InitSlog with a custom destination, used by the form which
// owns the terminal and has to log somewhere else.
func InitSlogTo(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    w != os.Stderr,
	}))
	slog.SetDefault(logger)
}
