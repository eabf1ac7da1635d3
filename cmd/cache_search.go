package cmd

import (
	"fmt"
	"strings"

	"github.com/kirksw/ezorg/internal/config"
	"github.com/spf13/cobra"
)

var searchCacheCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search cached repositories",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchCache,
}

func init() {
	cacheCmd.AddCommand(searchCacheCmd)
}

func runSearchCache(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c := newCache(cfg)
	out := cmd.OutOrStdout()

	pattern := args[0]
	repos, err := c.Search(pattern)
	if err != nil {
		return fmt.Errorf("failed to search cache: %w", err)
	}

	if len(repos) == 0 {
		fmt.Fprintf(out, "No repositories found matching: %s\n", pattern)
		return nil
	}

	fmt.Fprintf(out, "Found %d repositories matching '%s':\n\n", len(repos), pattern)

	for _, repo := range repos {
		fmt.Fprintf(out, "  %s\n", repo.FullName)
		if repo.Description != "" {
			fmt.Fprintf(out, "    %s\n", strings.TrimSpace(repo.Description))
		}
		license := repo.License
		if license == "" {
			license = "none"
		}
		fmt.Fprintf(out, "    Stars: %d | Language: %s | License: %s\n", repo.StargazersCount, repo.Language, license)
		fmt.Fprintln(out)
	}

	return nil
}
