// Package selfupdate checks GitHub releases for a newer factz and swaps the
// running binary for it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultOwner           = "abhisek"
	defaultRepo            = "factz"
	defaultTimeout         = 10 * time.Second
)

// Checker talks to the GitHub releases API.
type Checker struct {
	owner           string
	repo            string
	apiBaseURL      string
	downloadBaseURL string
	client          *http.Client
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at another API host.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.apiBaseURL = u }
}

// WithDownloadBaseURL points release downloads at another host.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.downloadBaseURL = u }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithRepository checks owner/repo instead of the default.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:           defaultOwner,
		repo:            defaultRepo,
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		client:          &http.Client{Timeout: defaultTimeout},
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with input.Version.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	latest := canonical(rel.TagName)
	if latest == "" {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}

	result := &CheckResult{
		CurrentVersion: input.Version,
		LatestVersion:  rel.TagName,
		ReleaseURL:     rel.HTMLURL,
	}
	if current := canonical(input.Version); current != "" {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result, nil
}

// canonical returns v with a "v" prefix if it is valid semver, else "".
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
