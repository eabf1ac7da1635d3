package cmd

import (
	"github.com/kirksw/ezorg/internal/cache"
	"github.com/kirksw/ezorg/internal/config"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local repository cache",
}

var ttlString string

func init() {
	rootCmd.AddCommand(cacheCmd)

	cacheCmd.PersistentFlags().StringVar(&ttlString, "ttl", "", "set custom TTL (e.g., 24h, 1h30m)")
}

// newCache opens the cache directory from cfg (or the default) and applies
// the configured TTL.
func newCache(cfg *config.Config) *cache.OrgCache {
	var c *cache.OrgCache
	if dir := cfg.GetCacheDir(); dir != "" {
		c = cache.NewAt(dir)
	} else {
		c = cache.New()
	}
	c.SetTTL(cfg.GetCacheTTL())
	return c
}
