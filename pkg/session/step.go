package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/tooltipper/pkg/errors"
)

// StepKind names a scripted user action.
type StepKind string

// Step kinds.
const (
	StepClick   StepKind = "click"
	StepOutside StepKind = "outside"
	StepResize  StepKind = "resize"
)

// Step is one scripted action: a click on a trigger by id, a click on
// empty page space, or a viewport resize.
type Step struct {
	Kind   StepKind
	Target string // trigger id for click steps
	Width  int
	Height int // 0 keeps the current height
}

func (s Step) String() string {
	switch s.Kind {
	case StepClick:
		return "click:" + s.Target
	case StepResize:
		if s.Height > 0 {
			return fmt.Sprintf("resize:%dx%d", s.Width, s.Height)
		}
		return fmt.Sprintf("resize:%d", s.Width)
	default:
		return string(s.Kind)
	}
}

// MarshalText encodes the step in its script form.
func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the script form.
func (s *Step) UnmarshalText(text []byte) error {
	step, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// ParseStep parses "click:<id>", "outside", "resize:<w>" or "resize:<w>x<h>".
func ParseStep(raw string) (Step, error) {
	raw = strings.TrimSpace(raw)
	kind, arg, _ := strings.Cut(raw, ":")
	switch StepKind(kind) {
	case StepClick:
		if arg == "" {
			return Step{}, errors.New(errors.ErrCodeInvalidStep, "%q: click needs a trigger id", raw)
		}
		return Step{Kind: StepClick, Target: arg}, nil
	case StepOutside:
		if arg != "" {
			return Step{}, errors.New(errors.ErrCodeInvalidStep, "%q: outside takes no argument", raw)
		}
		return Step{Kind: StepOutside}, nil
	case StepResize:
		return parseResize(raw, arg)
	default:
		return Step{}, errors.New(errors.ErrCodeInvalidStep, "%q: unknown step (want click:<id>, outside or resize:<w>[x<h>])", raw)
	}
}

func parseResize(raw, arg string) (Step, error) {
	w, h, hasHeight := strings.Cut(arg, "x")
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Step{}, errors.New(errors.ErrCodeInvalidStep, "%q: width must be a positive integer", raw)
	}
	step := Step{Kind: StepResize, Width: width}
	if hasHeight {
		height, err := strconv.Atoi(h)
		if err != nil || height <= 0 {
			return Step{}, errors.New(errors.ErrCodeInvalidStep, "%q: height must be a positive integer", raw)
		}
		step.Height = height
	}
	return step, nil
}

// ParseSteps parses every entry, skipping blank ones.
func ParseSteps(raw []string) ([]Step, error) {
	steps := make([]Step, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		s, err := ParseStep(r)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}
