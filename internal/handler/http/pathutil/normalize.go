// Package pathutil maps request paths onto bounded metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route onto its label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/v1/platforms/[^/]+/models$`), Template: "/v1/platforms/{slug}/models"},
}

var staticPaths = map[string]struct{}{
	"/v1/summaries":       {},
	"/v1/platforms":       {},
	"/v1/selection":       {},
	"/v1/connection-test": {},
	"/health":             {},
	"/ready":              {},
	"/live":               {},
	"/metrics":            {},
}

// Unmatched is the label for every path the service does not serve.
const Unmatched = "/other"

// NormalizePath returns the route template for path. Paths the service does
// not route collapse into Unmatched so scanners cannot grow label cardinality.
//
//	NormalizePath("/v1/platforms/openai/models") // "/v1/platforms/{slug}/models"
//	NormalizePath("/v1/summaries/")              // "/v1/summaries"
//	NormalizePath("/wp-login.php")               // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return Unmatched
}

// MaxCardinality is the number of distinct labels NormalizePath can return.
func MaxCardinality() int {
	return len(staticPaths) + len(pathPatterns) + 1
}
