package github

import (
	"path"
	"strings"
)

// supportedExtensions lists file types treated as human-authored source,
// markup, style, or query code.
var supportedExtensions = map[string]struct{}{
	".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".html": {}, ".htm": {},
	".css": {}, ".scss": {}, ".sass": {},
	".java": {}, ".cs": {},
	".py": {}, ".sql": {},
	".c": {}, ".cpp": {}, ".h": {}, ".hpp": {},
	".vb": {}, ".aspx": {}, ".cshtml": {}, ".vbhtml": {},
}

// forbiddenFolders lists directory names known to hold build artifacts,
// dependencies, or tooling metadata. Matched as exact lowercase segments.
var forbiddenFolders = map[string]struct{}{
	"node_modules":     {}, // JavaScript/TypeScript
	".next":            {}, // Next.js
	"__pycache__":      {}, // Python
	"venv":             {}, // Python virtual environments
	"env":              {},
	"bin":              {}, // C#/.NET build output
	"obj":              {},
	"build":            {}, // common build/distribution folders
	"dist":             {},
	"target":           {}, // Java/Maven
	"vendor":           {}, // PHP/Composer
	".vs":              {}, // Visual Studio / VS Code
	".vscode":          {},
	"packages":         {}, // NuGet
	"bower_components": {},
	"jspm_packages":    {},
	"tmp":              {},
	"temp":             {},
	"logs":             {},
	".sass-cache":      {},
	".tsbuildinfo":     {},
	"out":              {},
	"debug":            {}, // C++/C# build configurations
	"release":          {},
	".idea":            {}, // JetBrains IDEs
	".gradle":          {},
	"migrations":       {}, // database migrations
}

// ShouldProcessPath reports whether a repository file path qualifies for
// analysis: no deny-listed folder may appear as a path segment, and the
// extension must be allow-listed. Comparison is case-insensitive.
func ShouldProcessPath(p string) bool {
	lower := strings.ToLower(p)
	for _, segment := range strings.Split(lower, "/") {
		if _, denied := forbiddenFolders[segment]; denied {
			return false
		}
	}
	_, ok := supportedExtensions[path.Ext(lower)]
	return ok
}

// hasForbiddenFolder reports whether any segment of p is deny-listed. Used
// to prune directories before descending into them.
func hasForbiddenFolder(p string) bool {
	for _, segment := range strings.Split(strings.ToLower(p), "/") {
		if _, denied := forbiddenFolders[segment]; denied {
			return true
		}
	}
	return false
}
