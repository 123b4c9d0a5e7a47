// Package cli implements the tooltipper command-line interface.
//
// # Commands
//
//   - place: compute one placement from raw geometry
//   - simulate: replay clicks and resizes against a page fixture and render it
//   - demo: an interactive terminal page driven by real mouse clicks
//   - serve: the HTTP API with Prometheus metrics
//   - profiles: list the built-in tooltip profiles
//   - cache: inspect and clear the simulate result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr; rendered output goes to stdout or the --output file.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tooltipper/pkg/errors"
)

// Log formats accepted by SetLogFormat. Text is for terminals; json and
// logfmt suit `tooltipper serve` behind a log collector.
const (
	LogFormatText   = "text"
	LogFormatJSON   = "json"
	LogFormatLogfmt = "logfmt"
)

// newLogger creates a logger that timestamps lines as "HH:MM:SS.ms"
// (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func parseLogFormat(name string) (log.Formatter, error) {
	switch name {
	case LogFormatText, "":
		return log.TextFormatter, nil
	case LogFormatJSON:
		return log.JSONFormatter, nil
	case LogFormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown log format %q (want text, json or logfmt)", name)
	}
}

// SetLogFormat switches the logger's output format.
func (c *CLI) SetLogFormat(name string) error {
	f, err := parseLogFormat(name)
	if err != nil {
		return err
	}
	c.Logger.SetFormatter(f)
	return nil
}

// progress times an operation and logs its completion.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, after any
// extra key/value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
