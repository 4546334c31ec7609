package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartlayout/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. Only the file
// backend can be cleared from here; shared backends expire by TTL.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts and renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			out := printer{cmd.OutOrStdout()}
			if s.Cache.Backend != cache.BackendFile {
				out.info("Cache backend %q is not cleared locally", s.Cache.Backend)
				return nil
			}

			fc, err := cache.NewFileCache(s.Cache.Dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				out.info("Cache is empty")
				return nil
			}
			out.success("Cleared %d cached entries", count)
			out.detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			if s.Cache.Backend != cache.BackendFile {
				return fmt.Errorf("cache backend %q has no local directory", s.Cache.Backend)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Cache.Dir)
			return nil
		},
	}
}
