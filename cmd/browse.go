package cmd

import (
	"fmt"

	"github.com/kirksw/ezorg/internal/config"
	"github.com/kirksw/ezorg/internal/github"
	"github.com/kirksw/ezorg/internal/ui"
	"github.com/kirksw/ezorg/internal/utils"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse <org>",
	Short: "Interactively browse an organization's repositories",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

var (
	browseLicense string
	browseCached  bool
)

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().StringVarP(&browseLicense, "license", "l", "", "start with a license filter (toggle with tab)")
	browseCmd.Flags().BoolVar(&browseCached, "cached", false, "serve from the local cache, refreshing it when missing or expired")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	org, err := utils.ParseOrgIdentifier(args[0])
	if err != nil {
		return err
	}
	client := newOrgClient(cfg, org, loggerFromContext(cmd.Context()))

	var repos []github.Repo
	if browseCached {
		repos, err = loadReposCached(cmd, cfg, client)
	} else {
		repos, err = client.Repos(cmd.Context(), "")
	}
	if err != nil {
		return err
	}

	selected, err := ui.RunBrowser(org, repos, resolveLicense(cmd, browseLicense, cfg))
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), selected.URL)
	return nil
}
