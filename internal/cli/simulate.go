package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/cache"
	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/render"
	"github.com/matzehuels/tooltipper/pkg/session"
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	format     string
	output     string
	steps      []string
	scale      float64 // svg
	showClosed bool    // svg
	cell       string  // text, "WxH"
	frame      bool    // text
	cache      cacheFlags
}

func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{scale: 1, cell: "1x1"}

	cmd := &cobra.Command{
		Use:   "simulate <fixture> [step...]",
		Short: "Replay clicks and resizes against a page fixture and render the result",
		Long: `Simulate builds the page described by a fixture file (.toml, .yaml or .json),
binds every tooltip on it, replays the given steps and renders the final state.

Steps:
  click:<id>         click the element with that id
  outside            click empty page space
  resize:<w>[x<h>]   resize the viewport`,
		Example: `  tooltipper simulate examples/pages/help.toml click:help-right
  tooltipper simulate examples/pages/help.toml click:fees-link resize:200 -f svg -o page.svg
  tooltipper simulate examples/pages/terminal.toml click:save -f text --frame`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeSimulateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), args[0], args[1:], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: json, svg, text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringArrayVarP(&opts.steps, "step", "s", nil, "step to replay before positional steps (repeatable)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "svg: pixels per document pixel")
	cmd.Flags().BoolVar(&opts.showClosed, "show-closed", false, "svg: outline closed panels")
	cmd.Flags().StringVar(&opts.cell, "cell", opts.cell, "text: document pixels per character cell, as WxH")
	cmd.Flags().BoolVar(&opts.frame, "frame", false, "text: draw the viewport outline")
	opts.cache.register(cmd, cacheFile)
	registerFormatCompletion(cmd)

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, path string, rawSteps []string, opts *simulateOpts) error {
	prog := newProgress(c.Logger)

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cellW, cellH, err := parseCell(opts.cell)
	if err != nil {
		return err
	}
	steps, err := session.ParseSteps(append(append([]string(nil), opts.steps...), rawSteps...))
	if err != nil {
		return err
	}
	f, err := session.Load(path)
	if err != nil {
		return err
	}

	store, err := opts.cache.open(ctx, c.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.Key("simulate", format, f, steps, opts.scale, opts.showClosed, cellW, cellH, opts.frame)
	data, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warn("cache read failed", "err", err)
	}

	open := ""
	if !cached {
		var st session.State
		st, err = c.replay(ctx, f, steps)
		if err != nil {
			return err
		}
		open = st.Open
		data, err = renderState(format, st, filepath.Base(path), steps, opts, cellW, cellH)
		if err != nil {
			return err
		}
		if err := store.Set(ctx, key, data, opts.cache.ttl); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		}
	}

	prog.done("simulated", "fixture", path, "steps", len(steps), "cached", cached)
	if opts.output == "" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	ui := c.ui()
	ui.success("Rendered %s", format)
	ui.file(opts.output)
	ui.runStats(len(steps), open, cached)
	return nil
}

// replay builds a session from f and runs steps against it. Binding problems
// are reported but do not stop the run.
func (c *CLI) replay(ctx context.Context, f *session.Fixture, steps []session.Step) (session.State, error) {
	s, err := session.New(f, session.WithLogger(c.Logger))
	if s == nil {
		return session.State{}, err
	}
	defer s.Close()
	if err != nil {
		c.warnBinding(err)
	}
	if err := s.Run(ctx, steps); err != nil {
		return session.State{}, err
	}
	return s.State(), nil
}

// warnBinding logs each binding problem on its own line. They go to the
// logger so that a page rendered to stdout stays parseable.
func (c *CLI) warnBinding(err error) {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			c.Logger.Warn(errors.UserMessage(e))
		}
		return
	}
	c.Logger.Warn(errors.UserMessage(err))
}

func renderState(format render.Format, st session.State, title string, steps []session.Step, opts *simulateOpts, cellW, cellH int) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		svgOpts := []render.SVGOption{render.WithScale(opts.scale), render.WithTitle(title)}
		if opts.showClosed {
			svgOpts = append(svgOpts, render.WithClosedPanels())
		}
		return render.RenderSVG(st, svgOpts...), nil
	case render.FormatText:
		textOpts := []render.TextOption{render.WithCellSize(cellW, cellH)}
		if opts.frame {
			textOpts = append(textOpts, render.WithFrame())
		}
		return []byte(render.RenderText(st, textOpts...) + "\n"), nil
	default:
		data, err := render.RenderJSON(st, render.WithJSONSteps(steps))
		return append(data, '\n'), err
	}
}

// parseCell parses "WxH" into positive cell dimensions.
func parseCell(s string) (int, int, error) {
	var w, h int
	if n, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil || n != 2 || w <= 0 || h <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid --cell %q (want WxH, e.g. 8x16)", s)
	}
	return w, h, nil
}
