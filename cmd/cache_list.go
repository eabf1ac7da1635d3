package cmd

import (
	"fmt"

	"github.com/kirksw/ezorg/internal/config"
	"github.com/spf13/cobra"
)

var listCacheCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cached organizations",
	RunE:  runListCache,
}

func init() {
	cacheCmd.AddCommand(listCacheCmd)
}

func runListCache(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c := newCache(cfg)
	out := cmd.OutOrStdout()

	orgs, err := c.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list cached organizations: %w", err)
	}

	if len(orgs) == 0 {
		fmt.Fprintln(out, "No cached organizations found")
		return nil
	}

	fmt.Fprintln(out, "Cached organizations:")
	for _, org := range orgs {
		cached, err := c.GetStale(org)
		if err != nil {
			fmt.Fprintf(out, "  %s (error loading cache)\n", org)
			continue
		}
		state := ""
		if c.IsExpired(org) {
			state = ", expired"
		}
		fmt.Fprintf(out, "  %s (%d repos, cached: %s%s)\n", org, len(cached.Repos), cached.CachedAt.Format("2006-01-02 15:04"), state)
	}

	return nil
}
