package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	releasesURL  = "https://api.github.com/repos/studiowebux/quickcap/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release is the subset of the GitHub release payload we read
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Version returns the tag without its "v" prefix
func (r Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Checker queries the latest published release
type Checker struct {
	client *http.Client
	url    string
}

// NewChecker returns a checker for the quickcap releases feed
func NewChecker() *Checker {
	return &Checker{
		client: &http.Client{Timeout: checkTimeout},
		url:    releasesURL,
	}
}

// Check reports whether the latest release is newer than current
func (c *Checker) Check(ctx context.Context, current string) (Release, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "quickcap/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Release{}, false, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := release.Version()
	return release, latest != "" && isNewerVersion(latest, strings.TrimPrefix(current, "v")), nil
}

// isNewerVersion compares dotted numeric versions; pre-release and build
// suffixes are ignored
func isNewerVersion(latest, current string) bool {
	l, c := parseVersion(latest), parseVersion(current)
	for len(l) < len(c) {
		l = append(l, 0)
	}
	for len(c) < len(l) {
		c = append(c, 0)
	}

	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var result []int
	for _, part := range strings.Split(version, ".") {
		if num, err := strconv.Atoi(part); err == nil {
			result = append(result, num)
		}
	}
	return result
}
