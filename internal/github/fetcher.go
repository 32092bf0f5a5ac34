package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const truncationMarker = "// [truncated: source size limit reached]\n"

// Fetcher walks a repository tree and assembles the analyzable source text.
type Fetcher struct {
	client *Client

	// maxSourceBytes stops traversal once the accumulator grows past it.
	// Zero means unbounded.
	maxSourceBytes int
}

func NewFetcher(client *Client, maxSourceBytes int) *Fetcher {
	return &Fetcher{client: client, maxSourceBytes: maxSourceBytes}
}

// FetchSource traverses the repository breadth-first from its root,
// concatenating every qualifying file as a "// File: <path>" segment.
// Files that fail to decode as UTF-8 text are logged and skipped; upstream
// API faults abort the fetch. Returns ErrNoSupportedFiles when traversal
// completes without a single qualifying file.
func (f *Fetcher) FetchSource(ctx context.Context, owner, repo string) (string, error) {
	var source strings.Builder
	truncated := false
	files := 0

	queue := []string{""}
walk:
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := f.client.ListDirectory(ctx, owner, repo, dir)
		if err != nil {
			return "", err
		}

		for _, entry := range entries {
			switch entry.GetType() {
			case "dir":
				if !hasForbiddenFolder(entry.GetPath()) {
					queue = append(queue, entry.GetPath())
				}
			case "file":
				if !ShouldProcessPath(entry.GetPath()) {
					continue
				}

				file, err := f.client.GetFile(ctx, owner, repo, entry.GetPath())
				if err != nil {
					return "", err
				}

				text, err := file.GetContent()
				if err != nil {
					slog.Warn("skipping undecodable file", "path", entry.GetPath(), "error", err)
					continue
				}
				if !utf8.ValidString(text) {
					slog.Warn("skipping non-UTF-8 file", "path", entry.GetPath())
					continue
				}

				fmt.Fprintf(&source, "// File: %s\n%s\n\n", entry.GetPath(), text)
				files++

				if f.maxSourceBytes > 0 && source.Len() > f.maxSourceBytes {
					source.WriteString(truncationMarker)
					truncated = true
					break walk
				}
			}
		}
	}

	if files == 0 {
		return "", ErrNoSupportedFiles
	}

	slog.Info("repository source assembled",
		"owner", owner,
		"repo", repo,
		"files", files,
		"bytes", source.Len(),
		"truncated", truncated,
	)
	return source.String(), nil
}
