package github

import (
	"time"

	"github.com/kirksw/ezorg/internal/nested"
)

type Repo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	URL             string    `json:"html_url"`
	License         string    `json:"license_key"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	Archived        bool      `json:"archived"`
	CreatedAt       time.Time `json:"created_at"`
}

type CachedOrg struct {
	Org      string    `json:"org"`
	Repos    []Repo    `json:"repos"`
	CachedAt time.Time `json:"cached_at"`
	TTL      string    `json:"ttl"`
}

// RepoFromRecord projects a repository record from the listing endpoint.
// Only name is required; every other field is optional.
func RepoFromRecord(record map[string]any) (Repo, error) {
	name, err := nested.String(record, "name")
	if err != nil {
		return Repo{}, err
	}

	repo := Repo{
		Name:        name,
		FullName:    optString(record, "full_name"),
		Description: optString(record, "description"),
		URL:         optString(record, "html_url"),
		License:     optString(record, "license", "key"),
		Language:    optString(record, "language"),
	}
	if stars, err := nested.Access(record, "stargazers_count"); err == nil {
		if n, ok := stars.(float64); ok {
			repo.StargazersCount = int(n)
		}
	}
	if archived, err := nested.Access(record, "archived"); err == nil {
		repo.Archived, _ = archived.(bool)
	}
	if created := optString(record, "created_at"); created != "" {
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			repo.CreatedAt = t
		}
	}

	return repo, nil
}

func optString(record map[string]any, path ...string) string {
	s, err := nested.String(record, path...)
	if err != nil {
		return ""
	}
	return s
}

// FilterByLicense keeps repos whose license key equals key, in order. An
// empty key keeps everything.
func FilterByLicense(repos []Repo, key string) []Repo {
	if key == "" {
		return repos
	}
	filtered := make([]Repo, 0, len(repos))
	for _, repo := range repos {
		if repo.License == key {
			filtered = append(filtered, repo)
		}
	}
	return filtered
}
