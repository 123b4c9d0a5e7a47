package session

import (
	"github.com/matzehuels/tooltipper/pkg/dom"
	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/page"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// State is a point-in-time snapshot of a session, consumed by renderers.
type State struct {
	SessionID string         `json:"session_id"`
	Viewport  geom.Size      `json:"viewport"`
	Open      string         `json:"open,omitempty"`
	Steps     int            `json:"steps"`
	Panels    []PanelState   `json:"panels"`
	Triggers  []TriggerState `json:"triggers"`
}

// PanelState describes one panel. Rect, PointerLeft and Clamp are only
// meaningful while Open is set.
type PanelState struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Text          string         `json:"text,omitempty"`
	Bound         bool           `json:"bound"`
	Open          bool           `json:"open"`
	ActiveTrigger string         `json:"active_trigger,omitempty"`
	Rect          geom.Rect      `json:"rect"`
	PointerLeft   int            `json:"pointer_left"`
	PointerWidth  int            `json:"pointer_width"`
	Clamp         tooltip.Clamp  `json:"clamp"`
	Config        tooltip.Config `json:"config"`
}

// TriggerState describes one trigger.
type TriggerState struct {
	ID     string    `json:"id"`
	Target string    `json:"target"`
	Label  string    `json:"label,omitempty"`
	Rect   geom.Rect `json:"rect"`
}

// OpenPanel returns the open panel, if any.
func (st State) OpenPanel() (PanelState, bool) {
	for _, p := range st.Panels {
		if p.Open {
			return p, true
		}
	}
	return PanelState{}, false
}

// State snapshots the session.
func (s *Session) State() State {
	st := State{
		SessionID: s.id,
		Viewport:  s.doc.Viewport(),
		Steps:     s.steps,
		Panels:    make([]PanelState, 0, len(s.panels)),
		Triggers:  make([]TriggerState, 0, len(s.triggers)),
	}
	if c := s.page.Current(); c != nil {
		st.Open = c.Name()
	}

	for _, n := range s.panels {
		ps := PanelState{ID: n.ID(), Name: n.Name(), Text: n.Text(), Rect: n.Rect()}
		if c, ok := s.controllerFor(n); ok {
			ps.Bound = true
			ps.Config = c.Config()
			ps.PointerWidth = c.Config().TriangleWidth
			if c.IsOpen() {
				p := c.LastPlacement()
				ps.Open = true
				ps.PointerLeft = p.PointerLeft
				ps.Clamp = p.Clamp
				ps.ActiveTrigger = describe(c.ActiveTrigger())
			}
		}
		st.Panels = append(st.Panels, ps)
	}

	for _, n := range s.triggers {
		target, _ := n.Attr(page.TargetAttr)
		st.Triggers = append(st.Triggers, TriggerState{
			ID:     n.ID(),
			Target: target,
			Label:  n.Text(),
			Rect:   n.Rect(),
		})
	}
	return st
}

func (s *Session) controllerFor(n *dom.Node) (*tooltip.Controller, bool) {
	c, ok := s.page.Lookup(n.Name())
	if !ok || c.Panel() != tooltip.Panel(n) {
		return nil, false
	}
	return c, true
}

func describe(el tooltip.Element) string {
	if n, ok := el.(*dom.Node); ok {
		return n.ID()
	}
	return ""
}
