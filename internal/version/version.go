// Package version exposes the release version embedded at build time.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var raw string

// Value is the semantic version from the VERSION file, or "dev" when the
// file is empty.
var Value = parse(raw)

func parse(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return "dev"
	}
	return s
}
