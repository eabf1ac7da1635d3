package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kirksw/ezorg/internal/config"
	"github.com/kirksw/ezorg/internal/nested"
	"github.com/kirksw/ezorg/internal/utils"
	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:   "org <name>",
	Short: "Show organization metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrg,
}

var orgField string

func init() {
	rootCmd.AddCommand(orgCmd)

	orgCmd.Flags().StringVarP(&orgField, "field", "f", "", "print a single field by dotted path (e.g. repos_url)")
}

func runOrg(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	name, err := utils.ParseOrgIdentifier(args[0])
	if err != nil {
		return err
	}

	logger := loggerFromContext(cmd.Context())
	client := newOrgClient(cfg, name, logger)

	org, err := client.Org(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch organization %s: %w", name, err)
	}

	var value any = org
	if orgField != "" {
		value, err = nested.Access(org, nested.SplitPath(orgField)...)
		if err != nil {
			return err
		}
	}

	if s, ok := value.(string); ok {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
