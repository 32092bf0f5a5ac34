package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codealign/repo-align/internal/config"
)

type fakeEntry struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// fakeRepo serves the GitHub contents API for a synthetic tree: dirs maps a
// directory path to its listing, files maps a file path to its text content.
type fakeRepo struct {
	dirs  map[string][]fakeEntry
	files map[string]string

	// rawContent overrides the base64 payload for specific paths, to
	// simulate undecodable blobs.
	rawContent map[string]string

	mu        sync.Mutex
	requested []string
}

func (f *fakeRepo) handler() http.Handler {
	const prefix = "/repos/octo/demo/contents"
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, prefix) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
			return
		}
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")

		f.mu.Lock()
		f.requested = append(f.requested, path)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if entries, ok := f.dirs[path]; ok {
			_ = json.NewEncoder(w).Encode(entries)
			return
		}
		if raw, ok := f.rawContent[path]; ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type": "file", "name": path, "path": path,
				"encoding": "base64", "content": raw,
			})
			return
		}
		if text, ok := f.files[path]; ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type": "file", "name": path, "path": path,
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString([]byte(text)),
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(&config.GitHubConfig{
		Token:       "test-token",
		APIEndpoint: ts.URL + "/",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestFetchSourceIncludesOnlyQualifyingFiles(t *testing.T) {
	repo := &fakeRepo{
		dirs: map[string][]fakeEntry{
			"": {
				{Type: "file", Name: "main.py", Path: "main.py"},
				{Type: "file", Name: "README.md", Path: "README.md"},
				{Type: "dir", Name: "node_modules", Path: "node_modules"},
				{Type: "dir", Name: "src", Path: "src"},
			},
			"src": {
				{Type: "file", Name: "app.ts", Path: "src/app.ts"},
				{Type: "file", Name: "logo.png", Path: "src/logo.png"},
			},
		},
		files: map[string]string{
			"main.py":    "print('hello')",
			"src/app.ts": "export const x = 1;",
		},
	}

	fetcher := NewFetcher(newTestClient(t, repo.handler()), 0)
	out, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "// File: "))
	assert.Contains(t, out, "// File: main.py\nprint('hello')\n\n")
	assert.Contains(t, out, "// File: src/app.ts\nexport const x = 1;\n\n")
	assert.NotContains(t, out, "README.md")

	// Pruned directories must never be listed.
	for _, p := range repo.requested {
		assert.NotEqual(t, "node_modules", p)
	}
}

func TestFetchSourceEmptyResult(t *testing.T) {
	repo := &fakeRepo{
		dirs: map[string][]fakeEntry{
			"": {
				{Type: "file", Name: "README.md", Path: "README.md"},
				{Type: "file", Name: "LICENSE", Path: "LICENSE"},
			},
		},
	}

	fetcher := NewFetcher(newTestClient(t, repo.handler()), 0)
	_, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	assert.ErrorIs(t, err, ErrNoSupportedFiles)
}

func TestFetchSourceSkipsUndecodableFiles(t *testing.T) {
	repo := &fakeRepo{
		dirs: map[string][]fakeEntry{
			"": {
				{Type: "file", Name: "ok.py", Path: "ok.py"},
				{Type: "file", Name: "bad.py", Path: "bad.py"},
				{Type: "file", Name: "binary.py", Path: "binary.py"},
			},
		},
		files: map[string]string{
			"ok.py":     "x = 1",
			"binary.py": string([]byte{0xff, 0xfe, 0x00, 0x80}),
		},
		rawContent: map[string]string{
			"bad.py": "!!!not-base64!!!",
		},
	}

	fetcher := NewFetcher(newTestClient(t, repo.handler()), 0)
	out, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "// File: "))
	assert.Contains(t, out, "// File: ok.py")
}

func TestFetchSourceTruncatesAtSizeLimit(t *testing.T) {
	repo := &fakeRepo{
		dirs: map[string][]fakeEntry{
			"": {
				{Type: "file", Name: "a.py", Path: "a.py"},
				{Type: "file", Name: "b.py", Path: "b.py"},
			},
		},
		files: map[string]string{
			"a.py": strings.Repeat("x = 1\n", 10),
			"b.py": "y = 2",
		},
	}

	fetcher := NewFetcher(newTestClient(t, repo.handler()), 16)
	out, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "// File: "))
	assert.Contains(t, out, truncationMarker)
	assert.NotContains(t, out, "b.py")
}

func TestFetchSourceAuthenticationError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	})

	fetcher := NewFetcher(newTestClient(t, handler), 0)
	_, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestFetchSourceRepositoryNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	fetcher := NewFetcher(newTestClient(t, handler), 0)
	_, err := fetcher.FetchSource(context.Background(), "octo", "demo")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/octo/demo", "octo", "demo"},
		{"https://github.com/octo/demo/", "octo", "demo"},
		{"https://github.com/octo/demo.git", "octo", "demo"},
		{" https://github.com/octo/demo ", "octo", "demo"},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRepoURL(tt.url)
		require.NoErrorf(t, err, "url %q", tt.url)
		assert.Equal(t, tt.owner, owner)
		assert.Equal(t, tt.repo, repo)
	}
}

func TestParseRepoURLInvalid(t *testing.T) {
	for _, u := range []string{"", "garbage", "https:///"} {
		_, _, err := ParseRepoURL(u)
		assert.ErrorIsf(t, err, ErrInvalidRepoURL, "url %q", u)
	}
}
