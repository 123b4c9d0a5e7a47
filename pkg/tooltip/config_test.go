package tooltip

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tooltipper/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := Config{
		PagePadding:     10,
		VerticalPadding: 10,
		TriangleWidth:   6,
		BorderWidth:     1,
		PointerSelector: DefaultPointerSelector,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveOptionsOverrideProfile(t *testing.T) {
	cfg, err := Resolve(
		WithVerticalPadding(4),
		WithProfile(ProfileCallout),
		WithTriangleWidth(8),
	)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if cfg.VerticalPadding != 4 {
		t.Errorf("VerticalPadding = %d, want 4 (explicit option beats profile)", cfg.VerticalPadding)
	}
	if cfg.TriangleWidth != 8 {
		t.Errorf("TriangleWidth = %d, want 8", cfg.TriangleWidth)
	}
	if cfg.PagePadding != 10 {
		t.Errorf("PagePadding = %d, want 10", cfg.PagePadding)
	}
}

func TestResolveOverrides(t *testing.T) {
	sel := ".arrow"
	cfg, err := Resolve(WithOverrides(Overrides{
		Profile:         ProfileTerminal,
		PagePadding:     intPtr(0),
		PointerSelector: &sel,
	}))
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := Config{
		PagePadding:     0,
		VerticalPadding: 1,
		TriangleWidth:   1,
		PointerSelector: ".arrow",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"unknown profile", []Option{WithProfile("fancy")}},
		{"negative padding", []Option{WithPagePadding(-1)}},
		{"negative triangle", []Option{WithOverrides(Overrides{TriangleWidth: intPtr(-6)})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Resolve() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	want := []string{ProfileCallout, ProfileClassic, ProfileTerminal}
	if diff := cmp.Diff(want, Profiles()); diff != "" {
		t.Errorf("Profiles() mismatch (-want +got):\n%s", diff)
	}
	for _, name := range Profiles() {
		cfg, ok := Profile(name)
		if !ok {
			t.Fatalf("Profile(%q) missing", name)
		}
		if cfg.PagePadding < 0 || cfg.TriangleWidth < 0 {
			t.Errorf("Profile(%q) has negative distances: %+v", name, cfg)
		}
	}
}
