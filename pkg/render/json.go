package render

import (
	"encoding/json"

	"github.com/matzehuels/tooltipper/pkg/session"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	steps   []session.Step
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONSteps records the replayed steps alongside the state.
func WithJSONSteps(steps []session.Step) JSONOption {
	return func(r *jsonRenderer) { r.steps = steps }
}

type jsonOutput struct {
	session.State
	Script []session.Step `json:"script,omitempty"`
}

// RenderJSON encodes st.
func RenderJSON(st session.State, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{State: st, Script: r.steps}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
