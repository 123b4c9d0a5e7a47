package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tooltipper/pkg/errors"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSetLogFormat(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	if err := c.SetLogFormat(LogFormatJSON); err != nil {
		t.Fatal(err)
	}
	c.Logger.Info("opened", "tooltip", "help")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("json log line %q: %v", buf.String(), err)
	}
	if line["msg"] != "opened" || line["tooltip"] != "help" {
		t.Errorf("json log line = %v", line)
	}

	buf.Reset()
	if err := c.SetLogFormat(LogFormatLogfmt); err != nil {
		t.Fatal(err)
	}
	c.Logger.Info("closed", "tooltip", "help")
	if !strings.Contains(buf.String(), "tooltip=help") {
		t.Errorf("logfmt line = %q", buf.String())
	}

	if err := c.SetLogFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetLogFormat(xml) error = %v", err)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	if err := c.SetLogFormat(LogFormatLogfmt); err != nil {
		t.Fatal(err)
	}

	newProgress(c.Logger).done("simulated", "steps", 3)

	out := buf.String()
	for _, want := range []string{"msg=simulated", "steps=3", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}
