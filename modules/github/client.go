// Upload generated images to GitHub
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v61/github"
	"golang.org/x/oauth2"

	"sirherobrine23.com.br/go-bds/imagegen/modules/artifact"
)

const (
	AcceptHeader = "application/vnd.github+json"
	APIVersion   = "2022-11-28"
)

// Client options shared by uploaders
type Options struct {
	BaseURL    string       // API root, empty to https://api.github.com/
	HTTPClient *http.Client // Base client, default to http.DefaultClient
}

// Uploader send artifact to GitHub
type Uploader interface {
	Strategy() Strategy
	Upload(ctx context.Context, art *artifact.Artifact, target Target) (*Result, error)
}

type Result struct {
	Strategy   Strategy `json:"strategy"`
	Owner      string   `json:"owner"`
	Repository string   `json:"repository"`
	Branch     string   `json:"branch"`
	Path       string   `json:"path"`
	SHA        string   `json:"sha,omitempty"`
	HTMLURL    string   `json:"html_url,omitempty"`
}

// owner/repo/path
func (res *Result) String() string { return res.Owner + "/" + res.Repository + "/" + res.Path }

// Set accept and API version to all requests
type headerTransport struct{ base http.RoundTripper }

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	return t.base.RoundTrip(req)
}

// NewClient return go-github client, token is sent as bearer if not empty
func NewClient(opts Options, token string) (*gh.Client, error) {
	base := opts.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}

	var transport http.RoundTripper = http.DefaultTransport
	if base.Transport != nil {
		transport = base.Transport
	}
	transport = &headerTransport{base: transport}
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	client := gh.NewClient(&http.Client{
		Transport:     transport,
		Timeout:       base.Timeout,
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
	})

	if opts.BaseURL != "" {
		baseURL := opts.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API url: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// NewUploader return uploader to strategy, workflow is only used by [Dispatch]
func NewUploader(strategy Strategy, opts Options, workflow string) (Uploader, error) {
	switch strategy {
	case Contents, "":
		return &ContentsUploader{Options: opts}, nil
	case Dispatch:
		if workflow == "" {
			workflow = DefaultWorkflow
		}
		return &DispatchUploader{Options: opts, Workflow: workflow}, nil
	default:
		return nil, fmt.Errorf("unknown upload strategy %q", strategy)
	}
}
