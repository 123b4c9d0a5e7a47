package tooltip

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tooltipper/pkg/geom"
)

func classic(t *testing.T) Config {
	t.Helper()
	cfg, err := Resolve(WithProfile(ProfileClassic))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return cfg
}

func TestPlaceScenarios(t *testing.T) {
	cfg := classic(t)

	tests := []struct {
		name string
		geom Geometry
		want Placement
	}{
		{
			name: "left clamp",
			geom: Geometry{TargetTop: 200, TargetLeft: 5, TargetWidth: 20, PanelWidth: 100, PanelHeight: 40, ViewportWidth: 320},
			want: Placement{Top: 150, Left: 10, PointerLeft: 5, Clamp: ClampLeft},
		},
		{
			name: "right clamp",
			geom: Geometry{TargetTop: 200, TargetLeft: 300, TargetWidth: 20, PanelWidth: 100, PanelHeight: 40, ViewportWidth: 320},
			want: Placement{Top: 150, Left: 210, PointerLeft: 100, Clamp: ClampRight},
		},
		{
			name: "centred",
			geom: Geometry{TargetTop: 100, TargetLeft: 150, TargetWidth: 20, PanelWidth: 100, PanelHeight: 30, ViewportWidth: 320},
			want: Placement{Top: 60, Left: 110, PointerLeft: 47, Clamp: ClampNone},
		},
		{
			name: "odd widths floor",
			geom: Geometry{TargetTop: 50, TargetLeft: 100, TargetWidth: 21, PanelWidth: 101, PanelHeight: 10, ViewportWidth: 400},
			want: Placement{Top: 30, Left: 60, PointerLeft: 47, Clamp: ClampNone},
		},
		{
			name: "panel wider than viewport",
			geom: Geometry{TargetTop: 100, TargetLeft: 40, TargetWidth: 20, PanelWidth: 400, PanelHeight: 10, ViewportWidth: 320},
			// left clamp to 10, then 10+400 >= 310 pins right: 320-410 = -90
			want: Placement{Top: 80, Left: -90, PointerLeft: 140, Clamp: ClampLeft | ClampRight},
		},
		{
			name: "just inside right padding",
			geom: Geometry{TargetTop: 100, TargetLeft: 250, TargetWidth: 0, PanelWidth: 100, PanelHeight: 10, ViewportWidth: 320},
			// unclamped left 200, right 300 >= 310? no
			want: Placement{Top: 80, Left: 200, PointerLeft: 47, Clamp: ClampNone},
		},
		{
			name: "touching right padding clamps",
			geom: Geometry{TargetTop: 100, TargetLeft: 260, TargetWidth: 0, PanelWidth: 100, PanelHeight: 10, ViewportWidth: 320},
			// unclamped left 210, right 310 >= 310
			want: Placement{Top: 80, Left: 210, PointerLeft: 50, Clamp: ClampRight},
		},
		{
			name: "zero geometry degrades to the corner",
			geom: Geometry{},
			want: Placement{Top: -10, Left: -10, PointerLeft: 10, Clamp: ClampLeft | ClampRight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.geom, cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Place() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaceClampBounds(t *testing.T) {
	cfg := classic(t)
	const viewport = 320

	for _, panelWidth := range []int{1, 37, 100, 150, 299, 300} {
		for targetLeft := -50; targetLeft <= viewport+50; targetLeft += 7 {
			for _, targetWidth := range []int{0, 1, 20, 75} {
				g := Geometry{
					TargetTop:     300,
					TargetLeft:    targetLeft,
					TargetWidth:   targetWidth,
					PanelWidth:    panelWidth,
					PanelHeight:   40,
					ViewportWidth: viewport,
				}
				p := Place(g, cfg)
				if p.Left < cfg.PagePadding {
					t.Fatalf("Place(%+v).Left = %d < page padding %d", g, p.Left, cfg.PagePadding)
				}
				if p.Left+panelWidth > viewport-cfg.PagePadding {
					t.Fatalf("Place(%+v) right edge %d > %d", g, p.Left+panelWidth, viewport-cfg.PagePadding)
				}
			}
		}
	}
}

func TestPlacePointer(t *testing.T) {
	cfg := classic(t)

	for targetLeft := 0; targetLeft <= 320; targetLeft += 5 {
		g := Geometry{TargetTop: 100, TargetLeft: targetLeft, TargetWidth: 20, PanelWidth: 100, PanelHeight: 40, ViewportWidth: 320}
		p := Place(g, cfg)

		switch {
		case p.Clamp == ClampNone:
			want := geom.HalfFloor(g.PanelWidth) - geom.HalfFloor(cfg.TriangleWidth)
			if p.PointerLeft != want {
				t.Errorf("left=%d: unclamped PointerLeft = %d, want %d", targetLeft, p.PointerLeft, want)
			}
		case p.Clamp == ClampLeft:
			if want := g.TargetCenter() - cfg.PagePadding; p.PointerLeft != want {
				t.Errorf("left=%d: left-clamped PointerLeft = %d, want %d", targetLeft, p.PointerLeft, want)
			}
		default:
			if want := g.TargetCenter() - p.Left; p.PointerLeft != want {
				t.Errorf("left=%d: right-clamped PointerLeft = %d, want %d", targetLeft, p.PointerLeft, want)
			}
		}
	}
}

func TestPlaceVerticalPadding(t *testing.T) {
	cfg, err := Resolve(WithProfile(ProfileCallout))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	p := Place(Geometry{TargetTop: 500, TargetLeft: 150, TargetWidth: 20, PanelWidth: 100, PanelHeight: 60, ViewportWidth: 320}, cfg)
	if p.Top != 500-60-22 {
		t.Errorf("Top = %d, want %d", p.Top, 500-60-22)
	}
	if p.PointerLeft != 50-6 {
		t.Errorf("PointerLeft = %d, want %d", p.PointerLeft, 44)
	}
}

func TestToSurface(t *testing.T) {
	tests := []struct {
		name     string
		p        Placement
		current  geom.Offset
		relative geom.Offset
		want     geom.Offset
	}{
		{
			name: "positioned at document origin",
			p:    Placement{Top: 150, Left: 10},
			want: geom.Offset{Top: 150, Left: 10},
		},
		{
			name:     "inside an offset parent",
			p:        Placement{Top: 150, Left: 10},
			current:  geom.Offset{Top: 130, Left: 60},
			relative: geom.Offset{Top: 30, Left: 10},
			want:     geom.Offset{Top: 50, Left: -40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSurface(tt.p, tt.current, tt.relative); got != tt.want {
				t.Errorf("ToSurface() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampString(t *testing.T) {
	tests := map[Clamp]string{
		ClampNone:              "none",
		ClampLeft:              "left",
		ClampRight:             "right",
		ClampLeft | ClampRight: "both",
		Clamp(8):               "unknown",
	}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Clamp(%d).String() = %q, want %q", c, got, want)
		}
	}
}
