package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tooltipper/pkg/cache"
)

// cacheCommand manages the file cache used by simulate. Memory and redis
// caches belong to their process or server and are not touched here.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the simulate result cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "file cache directory (default ~/.cache/tooltipper)")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(dir)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveCacheDir(dir)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, resolved)
			return err
		},
	})

	return cmd
}

func (c *CLI) runCacheClear(dir string) error {
	dir, err := resolveCacheDir(dir)
	if err != nil {
		return err
	}
	n, err := cache.ClearDir(dir)
	if err != nil {
		return fmt.Errorf("clear %s: %w", dir, err)
	}

	ui := c.ui()
	if n == 0 {
		ui.info("Cache is empty")
		return nil
	}
	ui.success("Cleared %d cached entries", n)
	ui.detail("Directory: %s", dir)
	return nil
}

func resolveCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	d, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return d, nil
}
