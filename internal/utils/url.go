package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sshPattern     = regexp.MustCompile(`^git@github\.com:([^/]+)/[^/]+?(\.git)?$`)
	orgNamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)
)

// ParseOrgIdentifier extracts an organization login from a bare name, an
// owner/repo pair, a github.com URL, or an SSH clone URL.
func ParseOrgIdentifier(input string) (string, error) {
	input = strings.TrimSpace(input)

	var org string
	switch {
	case strings.HasPrefix(input, "git@"):
		matches := sshPattern.FindStringSubmatch(input)
		if len(matches) < 2 {
			return "", fmt.Errorf("invalid SSH URL format")
		}
		org = matches[1]
	default:
		trimmed := strings.TrimPrefix(input, "https://")
		trimmed = strings.TrimPrefix(trimmed, "http://")
		trimmed = strings.TrimPrefix(trimmed, "www.")
		trimmed = strings.TrimPrefix(trimmed, "github.com/")
		trimmed = strings.TrimPrefix(trimmed, "@")
		org, _, _ = strings.Cut(trimmed, "/")
	}

	if !orgNamePattern.MatchString(org) {
		return "", fmt.Errorf("invalid organization: %s (expected name, owner/repo, or github.com URL)", input)
	}

	return org, nil
}
