package workspace

import (
	"go.uber.org/zap"

	"github.com/odvcencio/rhai-hir-go/hir"
)

// DefaultWorkspaceRoot is the root URL of the detached workspace a Registry
// falls back to for documents that match no configured root. Grounded on
// `rhai-lsp/src/world.rs`'s `DEFAULT_WORKSPACE_URL` ("root:///").
const DefaultWorkspaceRoot = "root:///"

// Registry routes documents to one of several concurrently open Workspaces
// by root URL (spec §4.5/§5's "cross-workspace operations are independent").
// Grounded on `rhai-lsp/src/world.rs`'s `WorldState`/`Workspaces`: a single
// process may have many workspace roots open at once (one per editor
// workspace folder), and each document belongs to whichever root's URL it is
// nested under. A Registry always contains a detached default workspace so
// a document outside every known root still has somewhere to live.
type Registry struct {
	log   *zap.Logger
	roots map[string]*Workspace
}

// NewRegistry creates a Registry pre-populated with the detached default
// workspace at DefaultWorkspaceRoot.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{log: log, roots: make(map[string]*Workspace)}
	r.roots[DefaultWorkspaceRoot] = New(log)
	return r
}

// Open registers a Workspace at root, creating it if it does not already
// exist, and returns it.
func (r *Registry) Open(root string) *Workspace {
	root = hir.NormalizeURL(root)
	if ws, ok := r.roots[root]; ok {
		return ws
	}
	ws := New(r.log)
	r.roots[root] = ws
	return ws
}

// Close drops the Workspace registered at root, if any. The default
// detached workspace (DefaultWorkspaceRoot) can never be closed.
func (r *Registry) Close(root string) {
	root = hir.NormalizeURL(root)
	if root == DefaultWorkspaceRoot {
		return
	}
	delete(r.roots, root)
}

// ByDocument returns the Workspace whose root is the longest URL prefix of
// url, mirroring `Workspaces::by_document`'s "closest enclosing root wins"
// rule. A document matching no configured root falls back to the detached
// default workspace, logging a warning the way the original does.
func (r *Registry) ByDocument(url string) *Workspace {
	normalized := hir.NormalizeURL(url)

	var best string
	var bestWS *Workspace
	for root, ws := range r.roots {
		if root == DefaultWorkspaceRoot {
			continue
		}
		if hasURLPrefix(normalized, root) && len(root) > len(best) {
			best = root
			bestWS = ws
		}
	}
	if bestWS != nil {
		return bestWS
	}

	r.log.Warn("using detached workspace", zap.String("document_url", normalized))
	return r.roots[DefaultWorkspaceRoot]
}

// Roots returns every currently-registered workspace root, including the
// detached default.
func (r *Registry) Roots() []string {
	out := make([]string, 0, len(r.roots))
	for root := range r.roots {
		out = append(out, root)
	}
	return out
}

func hasURLPrefix(url, root string) bool {
	if len(root) > len(url) {
		return false
	}
	return url[:len(root)] == root
}
