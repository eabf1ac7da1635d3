package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kirksw/ezorg/internal/cache"
	"github.com/kirksw/ezorg/internal/config"
	"github.com/kirksw/ezorg/internal/github"
	"github.com/kirksw/ezorg/internal/utils"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos <org>",
	Short: "List public repositories of an organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepos,
}

var (
	reposLicense string
	reposCached  bool
	reposLong    bool
)

func init() {
	rootCmd.AddCommand(reposCmd)

	reposCmd.Flags().StringVarP(&reposLicense, "license", "l", "", "only list repositories with this license key (e.g. apache-2.0)")
	reposCmd.Flags().BoolVar(&reposCached, "cached", false, "serve from the local cache, refreshing it when missing or expired")
	reposCmd.Flags().BoolVar(&reposLong, "long", false, "show license, stars, and description")
}

func runRepos(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	org, err := utils.ParseOrgIdentifier(args[0])
	if err != nil {
		return err
	}
	license := resolveLicense(cmd, reposLicense, cfg)
	logger := loggerFromContext(cmd.Context())
	client := newOrgClient(cfg, org, logger)
	out := cmd.OutOrStdout()

	if reposCached {
		repos, err := loadReposCached(cmd, cfg, client)
		if err != nil {
			return err
		}
		printRepos(out, github.FilterByLicense(repos, license), reposLong)
		return nil
	}

	if !reposLong {
		names, err := client.PublicRepos(cmd.Context(), license)
		if err != nil {
			return fmt.Errorf("failed to list repositories for %s: %w", org, err)
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	repos, err := client.Repos(cmd.Context(), license)
	if err != nil {
		return fmt.Errorf("failed to list repositories for %s: %w", org, err)
	}
	printRepos(out, repos, true)
	return nil
}

// loadReposCached returns the cached listing for the client's org, fetching
// and storing a fresh one when the cache is missing or expired.
func loadReposCached(cmd *cobra.Command, cfg *config.Config, client *github.OrgClient) ([]github.Repo, error) {
	logger := loggerFromContext(cmd.Context())
	c := newCache(cfg)

	cached, err := c.Get(client.Name())
	if err == nil {
		logger.Debug("cache hit", "org", client.Name(), "repos", len(cached.Repos))
		return cached.Repos, nil
	}
	if !errors.Is(err, cache.ErrNotCached) && !errors.Is(err, cache.ErrExpired) {
		return nil, err
	}

	logger.Debug("cache miss", "org", client.Name(), "reason", err)
	repos, err := client.Repos(cmd.Context(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", client.Name(), err)
	}
	if err := c.Set(client.Name(), repos); err != nil {
		logger.Warn("failed to update cache", "org", client.Name(), "err", err)
	}
	return repos, nil
}

func printRepos(w io.Writer, repos []github.Repo, long bool) {
	for _, repo := range repos {
		if !long {
			fmt.Fprintln(w, repo.Name)
			continue
		}

		license := repo.License
		if license == "" {
			license = "-"
		}
		line := fmt.Sprintf("%-32s %-14s %7d", repo.Name, license, repo.StargazersCount)
		if repo.Description != "" {
			line += "  " + strings.TrimSpace(repo.Description)
		}
		fmt.Fprintln(w, line)
	}
}
