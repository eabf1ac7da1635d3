package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kirksw/ezorg/internal/github"
)

const CacheDir = ".cache/ezorg"
const DefaultTTL = 24 * time.Hour

var ErrNotCached = errors.New("org not cached")
var ErrExpired = errors.New("cache expired")

// OrgCache stores repository listings on disk, one JSON file per org plus a
// small metadata file used for expiry.
type OrgCache struct {
	cacheDir string
	ttl      time.Duration
}

type CacheMetadata struct {
	LastRefreshed time.Time     `json:"last_refreshed"`
	TTL           time.Duration `json:"ttl"`
	RepoCount     int           `json:"repo_count"`
}

func New() *OrgCache {
	homeDir, _ := os.UserHomeDir()
	return NewAt(filepath.Join(homeDir, CacheDir))
}

// NewAt uses dir as the cache directory, falling back to the system temp dir
// when it cannot be created.
func NewAt(dir string) *OrgCache {
	if err := os.MkdirAll(dir, 0755); err != nil {
		dir = os.TempDir()
	}

	return &OrgCache{
		cacheDir: dir,
		ttl:      DefaultTTL,
	}
}

func (c *OrgCache) SetTTL(ttl time.Duration) {
	if ttl > 0 {
		c.ttl = ttl
	}
}

func (c *OrgCache) Dir() string {
	return c.cacheDir
}

func (c *OrgCache) Get(org string) (*github.CachedOrg, error) {
	cached, err := c.GetStale(org)
	if err != nil {
		return nil, err
	}

	if c.IsExpired(org) {
		return nil, fmt.Errorf("%w for org: %s", ErrExpired, org)
	}

	return cached, nil
}

// Set replaces the cached listing for org. Repository order is kept as given.
func (c *OrgCache) Set(org string, repos []github.Repo) error {
	cached := github.CachedOrg{
		Org:      org,
		Repos:    repos,
		CachedAt: time.Now(),
		TTL:      c.ttl.String(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(c.orgPath(org), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	metadata := CacheMetadata{
		LastRefreshed: time.Now(),
		TTL:           c.ttl,
		RepoCount:     len(repos),
	}

	metaData, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(c.metadataPath(org), metaData, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// GetStale returns the cached listing regardless of expiry.
func (c *OrgCache) GetStale(org string) (*github.CachedOrg, error) {
	data, err := os.ReadFile(c.orgPath(org))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotCached, org)
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var cached github.CachedOrg
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	return &cached, nil
}

func (c *OrgCache) Refresh(org string, fetchRepos func() ([]github.Repo, error)) (int, error) {
	repos, err := fetchRepos()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch repos: %w", err)
	}

	if err := c.Set(org, repos); err != nil {
		return 0, err
	}
	return len(repos), nil
}

func (c *OrgCache) Invalidate(org string) error {
	if err := os.Remove(c.orgPath(org)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache: %w", err)
	}

	if err := os.Remove(c.metadataPath(org)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}

	return nil
}

// Search matches pattern against name and full name, and case-insensitively
// against the description, across every unexpired org.
func (c *OrgCache) Search(pattern string) ([]github.Repo, error) {
	var matches []github.Repo

	orgs, err := c.ListAll()
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(pattern)
	for _, org := range orgs {
		cached, err := c.Get(org)
		if err != nil {
			continue
		}

		for _, repo := range cached.Repos {
			if strings.Contains(repo.FullName, pattern) ||
				strings.Contains(repo.Name, pattern) ||
				strings.Contains(strings.ToLower(repo.Description), lower) {
				matches = append(matches, repo)
			}
		}
	}

	return matches, nil
}

func (c *OrgCache) ListAll() ([]string, error) {
	var orgs []string

	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		if strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		orgs = append(orgs, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return orgs, nil
}

func (c *OrgCache) IsExpired(org string) bool {
	data, err := os.ReadFile(c.metadataPath(org))
	if err != nil {
		return true
	}

	var metadata CacheMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return true
	}

	return time.Since(metadata.LastRefreshed) > metadata.TTL
}

func (c *OrgCache) orgPath(org string) string {
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s.json", org))
}

func (c *OrgCache) metadataPath(org string) string {
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s.meta.json", org))
}
