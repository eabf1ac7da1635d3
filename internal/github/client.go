package github

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kirksw/ezorg/internal/memo"
	"github.com/kirksw/ezorg/internal/nested"
)

const DefaultBaseURL = "https://api.github.com"

// OrgClient reads public repository data for a single organization.
//
// Organization metadata is fetched once per client and reused. Repository
// listings are fetched on every call.
type OrgClient struct {
	name    string
	baseURL string
	fetcher Fetcher
	logger  *log.Logger
	memo    memo.Cache
}

type Option func(*OrgClient)

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *OrgClient) { c.fetcher = f }
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) Option {
	return func(c *OrgClient) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *OrgClient) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewOrgClient(name string, opts ...Option) *OrgClient {
	c := &OrgClient{
		name:    name,
		baseURL: DefaultBaseURL,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(0, c.logger)
	}
	return c
}

func (c *OrgClient) Name() string {
	return c.name
}

// OrgURL is the metadata endpoint for the organization.
func (c *OrgClient) OrgURL() string {
	return fmt.Sprintf("%s/orgs/%s", c.baseURL, c.name)
}

// Org returns the organization metadata. The first successful fetch is kept
// for the lifetime of the client.
func (c *OrgClient) Org(ctx context.Context) (map[string]any, error) {
	return memo.Get(&c.memo, "org", func() (map[string]any, error) {
		c.logger.Debug("fetching organization", "org", c.name)
		body, err := c.fetcher.GetJSON(ctx, c.OrgURL())
		if err != nil {
			return nil, err
		}
		org, ok := body.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("organization %s: expected JSON object, got %T", c.name, body)
		}
		return org, nil
	})
}

// Login returns the organization's login as reported by the API.
func (c *OrgClient) Login(ctx context.Context) (string, error) {
	org, err := c.Org(ctx)
	if err != nil {
		return "", err
	}
	return nested.String(org, "login")
}

// PublicReposURL is the repos_url field of the organization metadata.
func (c *OrgClient) PublicReposURL(ctx context.Context) (string, error) {
	org, err := c.Org(ctx)
	if err != nil {
		return "", err
	}
	return nested.String(org, "repos_url")
}

// ReposPayload fetches the raw repository listing.
func (c *OrgClient) ReposPayload(ctx context.Context) ([]any, error) {
	url, err := c.PublicReposURL(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetching repositories", "org", c.name, "url", url)
	body, err := c.fetcher.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	records, ok := body.([]any)
	if !ok {
		return nil, fmt.Errorf("repositories for %s: expected JSON array, got %T", c.name, body)
	}
	return records, nil
}

// PublicRepos returns repository names in API order. A non-empty license
// keeps only repositories whose license key matches it exactly.
func (c *OrgClient) PublicRepos(ctx context.Context, license string) ([]string, error) {
	records, err := c.ReposPayload(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for i, raw := range records {
		record, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("repository %d: expected JSON object, got %T", i, raw)
		}
		if license != "" && !HasLicense(record, license) {
			continue
		}
		name, err := nested.String(record, "name")
		if err != nil {
			return nil, fmt.Errorf("repository %d: %w", i, err)
		}
		names = append(names, name)
	}

	c.logger.Debug("listed repositories", "org", c.name, "license", license, "count", len(names))
	return names, nil
}

// Repos is PublicRepos with each record projected into a Repo.
func (c *OrgClient) Repos(ctx context.Context, license string) ([]Repo, error) {
	records, err := c.ReposPayload(ctx)
	if err != nil {
		return nil, err
	}

	repos := make([]Repo, 0, len(records))
	for i, raw := range records {
		record, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("repository %d: expected JSON object, got %T", i, raw)
		}
		if license != "" && !HasLicense(record, license) {
			continue
		}
		repo, err := RepoFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("repository %d: %w", i, err)
		}
		repos = append(repos, repo)
	}

	return repos, nil
}

// HasLicense reports whether record carries a license object whose key equals
// licenseKey. Missing or malformed license data never matches.
func HasLicense(record map[string]any, licenseKey string) bool {
	key, err := nested.String(record, "license", "key")
	if err != nil {
		return false
	}
	return key == licenseKey
}
