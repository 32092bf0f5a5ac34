package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/codealign/repo-align/internal/config"
)

var (
	// ErrInvalidRepoURL marks request URLs that do not name an owner/repo pair.
	ErrInvalidRepoURL = errors.New("invalid github repository url")

	// ErrAuthentication marks a rejected access token.
	ErrAuthentication = errors.New("github authentication failed")

	// ErrNotFound marks a repository or path that does not resolve.
	ErrNotFound = errors.New("github repository not found")

	// ErrNoSupportedFiles is returned when traversal succeeds but nothing
	// qualified for analysis. Distinct from ErrNotFound: the repository is
	// reachable, there is just nothing to analyze.
	ErrNoSupportedFiles = errors.New("no supported files found in the repository")
)

// Client wraps the GitHub contents API with a fixed token credential.
type Client struct {
	gh *gh.Client
}

func NewClient(cfg *config.GitHubConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token cannot be empty")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = cfg.Timeout

	client := gh.NewClient(httpClient)
	if cfg.APIEndpoint != "" {
		base, err := url.Parse(cfg.APIEndpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid github api endpoint %q: %w", cfg.APIEndpoint, err)
		}
		// go-github requires the base URL to end in a slash
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = base
	}

	return &Client{gh: client}, nil
}

// ListDirectory returns the immediate children of path. The root of the
// repository is the empty path.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path string) ([]*gh.RepositoryContent, error) {
	file, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, mapAPIError(err)
	}
	if dir == nil && file != nil {
		return []*gh.RepositoryContent{file}, nil
	}
	return dir, nil
}

// GetFile retrieves a single file entry including its base64-encoded content.
func (c *Client) GetFile(ctx context.Context, owner, repo, path string) (*gh.RepositoryContent, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, mapAPIError(err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s: not a file", path)
	}
	return file, nil
}

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// The last two path segments are taken as owner/name; a trailing slash and
// a .git suffix are tolerated.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoURL, rawURL)
	}
	owner = parts[len(parts)-2]
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoURL, rawURL)
	}
	return owner, repo, nil
}

func mapAPIError(err error) error {
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusUnauthorized:
			slog.Warn("github rejected access token")
			return fmt.Errorf("%w: check your access token", ErrAuthentication)
		case http.StatusNotFound:
			return fmt.Errorf("%w: check the URL", ErrNotFound)
		}
	}
	return fmt.Errorf("github api error: %w", err)
}
