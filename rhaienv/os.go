// Package rhaienv provides the one OS-backed Environment implementation in
// this repository (spec §6.3) — only cmd/rhaihir depends on it; the core
// packages (syntax, hir, workspace) only ever depend on the
// workspace.Environment interface, never this one directly.
package rhaienv

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// OS is a workspace.Environment backed by the local filesystem. Every
// method here works in plain filesystem paths, matching spec §6.3's
// signatures exactly (`read_file(path)`, `glob_files(pattern) -> Vec<path>`,
// `is_dir(path)`); only URLToFilePath crosses from the URL domain the core
// keys documents by.
type OS struct{}

// New returns an OS environment.
func New() *OS { return &OS{} }

// ReadFile reads path's contents, ignoring ctx cancellation — file reads on
// a local disk are fast enough that a real implementation backed by a
// remote filesystem would need its own cancellable variant, not this one.
func (OS) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// URLToFilePath converts a "file://" URL into an absolute filesystem path.
func (OS) URLToFilePath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	return u.Path, true
}

// DiscoverConfig looks for "Rhai.toml" directly under root, returning its
// path if found.
func (OS) DiscoverConfig(root string) (string, bool) {
	candidate := filepath.Join(root, "Rhai.toml")
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	return "", false
}

// GlobFiles expands pattern (a doublestar glob, `**` included) against the
// local filesystem.
func (OS) GlobFiles(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern)
}

// IsDir reports whether path names a directory.
func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileURL converts an absolute filesystem path into the "file://" URL the
// core keys documents by (spec §6.2). This lives on the concrete OS
// environment, not the Environment interface or the core — constructing a
// URL from a path is the inverse of URLToFilePath and spec §6.3 only
// requires the forward direction, so it is offered here as a small
// convenience rather than the core gaining a path-to-URL dependency. Only
// this package's tests call it; workspace.LoadFromConfig builds its URLs
// with its own pathToFileURL.
func FileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if abs[0] != '/' {
		abs = "/" + abs
	}
	return "file://" + abs
}
