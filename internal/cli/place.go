package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	geometry tooltip.Geometry
	profile  string
	padding  int // page padding; -1 keeps the profile value
	vertical int // vertical padding; -1 keeps the profile value
	triangle int // pointer width; -1 keeps the profile value
	jsonOut  bool
}

func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{
		profile:  tooltip.DefaultProfile,
		padding:  -1,
		vertical: -1,
		triangle: -1,
	}
	g := &opts.geometry

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a tooltip panel goes above its trigger",
		Example: `  tooltipper place --viewport 320 --target-left 300 --target-top 200 --target-width 20 --panel-width 100 --panel-height 40
  tooltipper place --profile callout --viewport 1024 --target-left 10 --panel-width 200 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(&opts)
		},
	}

	cmd.Flags().IntVar(&g.ViewportWidth, "viewport", 0, "viewport width (required)")
	cmd.Flags().IntVar(&g.TargetTop, "target-top", 0, "trigger top, document-relative")
	cmd.Flags().IntVar(&g.TargetLeft, "target-left", 0, "trigger left, document-relative")
	cmd.Flags().IntVar(&g.TargetWidth, "target-width", 0, "trigger outer width")
	cmd.Flags().IntVar(&g.PanelWidth, "panel-width", 0, "panel outer width including margins")
	cmd.Flags().IntVar(&g.PanelHeight, "panel-height", 0, "panel outer height")
	cmd.Flags().StringVar(&opts.profile, "profile", opts.profile, "base profile (see 'tooltipper profiles')")
	cmd.Flags().IntVar(&opts.padding, "page-padding", opts.padding, "override the profile's page padding")
	cmd.Flags().IntVar(&opts.vertical, "vertical-padding", opts.vertical, "override the profile's vertical padding")
	cmd.Flags().IntVar(&opts.triangle, "triangle-width", opts.triangle, "override the profile's pointer width")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the placement as JSON")
	_ = cmd.MarkFlagRequired("viewport")
	registerProfileCompletion(cmd)

	return cmd
}

// config resolves the profile plus any explicit overrides.
func (o *placeOpts) config() (tooltip.Config, error) {
	opts := []tooltip.Option{tooltip.WithProfile(o.profile)}
	if o.padding >= 0 {
		opts = append(opts, tooltip.WithPagePadding(o.padding))
	}
	if o.vertical >= 0 {
		opts = append(opts, tooltip.WithVerticalPadding(o.vertical))
	}
	if o.triangle >= 0 {
		opts = append(opts, tooltip.WithTriangleWidth(o.triangle))
	}
	return tooltip.Resolve(opts...)
}

func (c *CLI) runPlace(opts *placeOpts) error {
	if opts.geometry.ViewportWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--viewport must be positive")
	}
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	p := tooltip.Place(opts.geometry, cfg)
	c.Logger.Debug("placed", "geometry", fmt.Sprintf("%+v", opts.geometry), "clamp", p.Clamp)

	if opts.jsonOut {
		data, err := json.MarshalIndent(struct {
			Placement tooltip.Placement `json:"placement"`
			Config    tooltip.Config    `json:"config"`
		}{p, cfg}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.out, string(data))
		return err
	}

	c.ui().placement(p, opts.profile)
	return nil
}
