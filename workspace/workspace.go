// Package workspace implements spec §4.5's driver: one HIR per workspace,
// a document map, custom-operator discovery, and the stop-the-world reparse
// it triggers, all serialized per spec §5's single-threaded-cooperative
// concurrency model.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/odvcencio/rhai-hir-go/hir"
	"github.com/odvcencio/rhai-hir-go/syntax"
)

// opKey is the comparable projection of an Op symbol that spec §4.5's
// "check operators" step diffs against the cache: "the set {(name, lhs_ty,
// rhs_ty, binding_powers)}".
type opKey struct {
	Name    string
	LHSType hir.TypeHandle
	RHSType hir.TypeHandle
	BP      [2]uint8
}

// Workspace holds one HIR instance and its document map. Grounded on
// lsp/client.go's concurrency idioms (a mutex-guarded map plus atomic
// counters), generalized from a JSON-RPC client's pending-request table to
// the document map and operator cache; all mutation takes the full write
// lock, all queries the read lock (spec §5).
type Workspace struct {
	mu   sync.RWMutex
	hir  *hir.HIR
	log  *zap.Logger
	docs map[string]*Document

	customOperators map[opKey]struct{}

	debounce *debouncer
}

// New creates an empty Workspace with its own HIR instance (spec §3.4's
// prepare(): built-in types and the static module already exist).
func New(log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		hir:             hir.New(log),
		log:             log,
		docs:            make(map[string]*Document),
		customOperators: make(map[opKey]struct{}),
	}
}

// HIR returns the workspace's shared HIR instance for read-only queries
// (spec §6.5's public HIR surface). Ingestion methods on Workspace are the
// only supported mutation path.
func (w *Workspace) HIR() *hir.HIR {
	return w.hir
}

// SetDiagnosticsPublisher installs the callback the debouncer invokes at
// most once per ~1 second window after an ingestion wave (spec §5).
func (w *Workspace) SetDiagnosticsPublisher(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fn == nil {
		w.debounce = nil
		return
	}
	w.debounce = newDebouncer(time.Second, fn)
}

// Document returns the document registered at url's normalized form, or nil.
func (w *Workspace) Document(url string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[hir.NormalizeURL(url)]
}

// Documents returns every currently-registered document URL.
func (w *Workspace) Documents() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.docs))
	for url := range w.docs {
		out = append(out, url)
	}
	return out
}

// AddDocument ingests one document's text under url (spec §4.5): detects
// definition vs script, parses with the currently cached operator table,
// registers the parse's symbols into the HIR, resolves the whole wave, and
// (when the document is a definition) runs checkOperators. Re-adding an
// already-known URL replaces its prior source (spec testable property 7).
func (w *Workspace) AddDocument(url, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.addDocumentLocked(url, text)
	w.hir.ResolveAll()
	w.notifyDiagnostics()
}

// RemoveDocument drops url's source from the HIR (spec §4.5's "removing a
// document"); if it was a definition, checkOperators runs again.
func (w *Workspace) RemoveDocument(url string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	normalized := hir.NormalizeURL(url)
	doc, ok := w.docs[normalized]
	if !ok {
		return
	}
	w.hir.RemoveSource(doc.Source)
	delete(w.docs, normalized)
	if doc.IsDef {
		w.checkOperatorsLocked()
	}
	w.hir.ResolveAll()
	w.notifyDiagnostics()
}

func (w *Workspace) addDocumentLocked(url, text string) {
	normalized := hir.NormalizeURL(url)
	if existing, ok := w.docs[normalized]; ok {
		w.hir.RemoveSource(existing.Source)
		delete(w.docs, normalized)
	}

	isDef := isDefFile(text)
	ops := syntax.NewOperatorTable(w.operatorEntriesLocked())
	parser := syntax.NewParser(ops)

	var parse *syntax.Parse
	kind := hir.SourceScript
	if isDef {
		parse = parser.ParseDef([]byte(text))
		kind = hir.SourceDef
	} else {
		parse = parser.ParseScript([]byte(text))
	}

	source := w.hir.NewSource(normalized, kind)
	errs := make([]string, len(parse.Errors))
	for i, e := range parse.Errors {
		errs[i] = e.Message
	}
	w.hir.SetSourceSyntax(source, hir.SyntaxInfo{Errors: errs, IsDef: isDef})

	builder := hir.NewBuilder(w.hir, w.log)
	if isDef {
		module := builder.BuildDef(source, parse.Tree.Root(), normalized)
		w.hir.SetSourceModule(source, module)
	} else {
		builder.BuildScript(source, parse.Tree.Root())
		w.hir.SetSourceModule(source, w.hir.StaticModule())
	}

	w.docs[normalized] = &Document{
		URL:    normalized,
		Text:   text,
		IsDef:  isDef,
		Source: source,
		Parse:  parse,
		Lines:  NewLineIndex(text),
	}

	if isDef {
		w.checkOperatorsLocked()
	}
}

// checkOperatorsLocked implements spec §4.5's "check operators": diff the
// HIR's enumerated Op symbols against the cached set, and if they differ,
// drop and re-add every script document so each reparses under the new
// table. Definition documents are not reparsed — their grammar never
// depends on the operator table.
func (w *Workspace) checkOperatorsLocked() {
	current := w.operatorSetLocked()
	if operatorSetsEqual(current, w.customOperators) {
		return
	}
	w.customOperators = current

	var scripts []*Document
	for _, doc := range w.docs {
		if !doc.IsDef {
			scripts = append(scripts, doc)
		}
	}
	for _, doc := range scripts {
		w.hir.RemoveSource(doc.Source)
		delete(w.docs, doc.URL)
	}
	for _, doc := range scripts {
		w.addDocumentLocked(doc.URL, doc.Text)
	}
}

func (w *Workspace) operatorSetLocked() map[opKey]struct{} {
	out := make(map[opKey]struct{})
	for _, handle := range w.hir.Operators() {
		sym, ok := w.hir.Symbol(handle)
		if !ok {
			continue
		}
		op, ok := sym.Kind.(hir.Op)
		if !ok {
			continue
		}
		out[opKey{Name: op.Name, LHSType: op.LHSType, RHSType: op.RHSType, BP: op.BindingPower}] = struct{}{}
	}
	return out
}

func operatorSetsEqual(a, b map[opKey]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func (w *Workspace) operatorEntriesLocked() []syntax.Operator {
	out := make([]syntax.Operator, 0, len(w.customOperators))
	for k := range w.customOperators {
		out = append(out, syntax.Operator{Name: k.Name, BindingPower: syntax.BindingPower(k.BP)})
	}
	return out
}

func (w *Workspace) notifyDiagnostics() {
	if w.debounce != nil {
		w.debounce.Trigger()
	}
}

// LoadFromConfig implements spec §6.4's ingestion recipe: union the
// configured glob patterns through env, dedup the matches, apply the
// optional file-rule regex filter, skip directories, and add each
// remaining file as a document.
func (w *Workspace) LoadFromConfig(ctx context.Context, env Environment, cfg Config) error {
	rule, err := cfg.CompileFileRule()
	if err != nil {
		return fmt.Errorf("compiling file_rule: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range cfg.Include {
		matches, err := env.GlobFiles(pattern)
		if err != nil {
			w.log.Error("glob failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	for _, path := range files {
		if env.IsDir(path) {
			continue
		}
		if rule != nil && !rule.MatchString(path) {
			continue
		}
		data, err := env.ReadFile(ctx, path)
		if err != nil {
			w.log.Error("read failed", zap.String("path", path), zap.Error(err))
			continue
		}
		w.AddDocument(pathToFileURL(path), string(data))
	}
	return nil
}

// pathToFileURL builds the minimal "file://" URL a path needs to be keyed
// by in the HIR's sources index. This is deliberately not the general
// path-to-URL conversion spec §1 excludes (Environment only requires the
// reverse, URLToFilePath) — just enough to satisfy §6.4's "add each
// surviving path as a document", with hir.NormalizeURL (invoked inside
// AddDocument) handling the drive-letter/path-segment normalization §6.2
// actually specifies.
func pathToFileURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + slashed
}

// debouncer coalesces Trigger calls within window into at most one Publish
// call (spec §5's diagnostics debouncer), backed by golang.org/x/time/rate:
// the first trigger in a window publishes immediately (leading edge);
// triggers landing inside an already-open window are coalesced into a
// single trailing publish when the window closes, and any trigger received
// after that trailing publish is already scheduled is simply dropped.
type debouncer struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	pending bool
	timer   *time.Timer
	publish func()
}

func newDebouncer(window time.Duration, publish func()) *debouncer {
	return &debouncer{
		limiter: rate.NewLimiter(rate.Every(window), 1),
		publish: publish,
	}
}

func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.limiter.Allow() {
		d.publish()
		return
	}
	d.pending = true
	if d.timer != nil {
		return
	}
	delay := d.limiter.Reserve().Delay()
	d.timer = time.AfterFunc(delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	shouldPublish := d.pending
	d.pending = false
	d.mu.Unlock()
	if shouldPublish {
		d.publish()
	}
}
