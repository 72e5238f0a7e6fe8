// Package release looks up the latest published version of the tool.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/xthedev1/Spicetifyautoupdaterandinstaller/pkg/lib"
)

var logger = log.WithField("component", "release")

const (
	DefaultURL       = "https://api.github.com/repos/spicetify/cli/releases/latest"
	DefaultUserAgent = "SpicetifyAutoUpdater/1.0"

	maxBodySize = 1 << 20
)

type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher issues a single GET per lookup. Failures are reported, not retried.
type Fetcher struct {
	url       string
	userAgent string
	client    Client
}

// MakePesterClient returns a client that makes exactly one attempt.
func MakePesterClient(timeout time.Duration) *pester.Client {
	client := pester.NewExtendedClient(&http.Client{Timeout: timeout})
	client.MaxRetries = 1
	client.LogHook = func(e pester.ErrEntry) {
		logger.Debugf("release lookup attempt failed: %+v", e)
	}
	return client
}

func NewFetcher(url, userAgent string, client Client) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if client == nil {
		client = MakePesterClient(30 * time.Second)
	}
	return &Fetcher{url: url, userAgent: userAgent, client: client}
}

// Latest returns the tag_name of the latest release with a leading "v"
// removed. Transport errors and non-200 responses are *lib.NetworkFailure.
func (f *Fetcher) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &lib.NetworkFailure{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &lib.NetworkFailure{URL: f.url, Err: fmt.Errorf("invalid status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &lib.NetworkFailure{URL: f.url, Err: err}
	}

	tag := gjson.GetBytes(body, "tag_name")
	if !tag.Exists() || tag.Type != gjson.String {
		return "", fmt.Errorf("release metadata from %s has no tag_name", f.url)
	}

	latest := Normalize(tag.String())
	if _, err := goversion.NewVersion(latest); err != nil {
		logger.Warnf("latest release %q is not a semantic version: %v", latest, err)
	}
	logger.Debugf("latest release: %s", latest)
	return latest, nil
}

// Normalize trims whitespace and a single leading "v".
func Normalize(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "v")
}
