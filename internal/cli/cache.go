package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbox/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	redisURL := os.Getenv(envRedisURL)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and artifacts",
		Long: `Remove all cached layouts and artifacts.

With --redis, the flowbox keys in that Redis instance are removed instead
of the local cache directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL != "" {
				return clearRedisCache(cmd.Context(), redisURL)
			}
			return clearFileCache()
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis", redisURL, "Redis URL of a server cache to clear")
	return cmd
}

func clearFileCache() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer fc.Close()

	count, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", dir)
	return nil
}

func clearRedisCache(ctx context.Context, url string) error {
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return err
	}
	defer rc.Close()

	count, err := rc.Clear(ctx, redisKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("clear redis cache: %w", err)
	}

	printSuccess("Cleared %d cached entries", count)
	printDetail("Redis keys: %s*", redisKeyPrefix)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
