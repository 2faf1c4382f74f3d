package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/stackb/rulesheet/pkg/procutil"
)

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !isTerminal(w),
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()
}

// ParseLevel parses a level name.  The empty string is the info level.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// FromEnv builds the default logger from RULESHEET_LOG_LEVEL,
// RULESHEET_DEBUG and RULESHEET_LOG_FILE.  The returned close function
// releases the log file, if any.
func FromEnv(w io.Writer) (zerolog.Logger, func() error, error) {
	name, _ := procutil.LookupEnv(procutil.RULESHEET_LOG_LEVEL)
	level, err := ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("%s: %w", procutil.RULESHEET_LOG_LEVEL, err)
	}
	if procutil.LookupBoolEnv(procutil.RULESHEET_DEBUG, false) {
		level = zerolog.DebugLevel
	}

	closer := func() error { return nil }
	if filename, ok := procutil.LookupEnv(procutil.RULESHEET_LOG_FILE); ok && filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("%s: %w", procutil.RULESHEET_LOG_FILE, err)
		}
		w = f
		closer = f.Close
	}

	return New(w, level), closer, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
