package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/session"
)

const watchDebounce = 250 * time.Millisecond

type demoOpts struct {
	cell  string
	watch bool
}

func (c *CLI) demoCommand() *cobra.Command {
	opts := demoOpts{cell: "1x1"}

	cmd := &cobra.Command{
		Use:   "demo <fixture>",
		Short: "Interactive terminal page: click triggers with the mouse",
		Long: `Demo draws the page described by a fixture in the terminal and feeds real
mouse clicks and window resizes into it. Fixtures written in terminal cells
with the "terminal" profile work best; use --cell for pixel fixtures.`,
		Example: `  tooltipper demo examples/pages/terminal.toml --watch
  tooltipper demo examples/pages/help.toml --cell 4x16`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFixture,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.cell, "cell", opts.cell, "document pixels per character cell, as WxH")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload when the fixture file changes")

	return cmd
}

func (c *CLI) runDemo(ctx context.Context, path string, opts *demoOpts) error {
	cellW, cellH, err := parseCell(opts.cell)
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal, so only warnings reach stderr.
	logger := c.Logger.WithPrefix("demo")
	logger.SetLevel(log.WarnLevel)

	m, err := NewDemoModel(filepath.Base(path), func() (*session.Fixture, error) {
		return session.Load(path)
	}, logger, cellW, cellH)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if opts.watch {
		stop, err := watchFixture(path, logger, func() { p.Send(reloadMsg{}) })
		if err != nil {
			return err
		}
		defer stop()
	}

	_, err = p.Run()
	return err
}

// watchFixture calls reload, debounced, whenever path is written, created or
// renamed over. Editors that save by rename replace the file, so the parent
// directory is watched as well.
func watchFixture(path string, logger *log.Logger, reload func()) (stop func(), err error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve fixture path: %w", err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch fixture: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch fixture dir: %w", err)
	}

	go debounceEvents(watcher, target, logger, reload)
	return func() { _ = watcher.Close() }, nil
}

func debounceEvents(watcher *fsnotify.Watcher, target string, logger *log.Logger, reload func()) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timerCh
				}
				timer.Reset(watchDebounce)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("fixture watcher error", "err", err)
		}
	}
}
