package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/rhai-hir-go/hir"
)

const defWithOp = "module static;\nop into(a: int, b: int) = (10, 10);\n"
const scriptUsingOp = "let r = a into b;\n"

func TestAddDocumentDefThenScript(t *testing.T) {
	ws := New(nil)
	ws.AddDocument("file:///lib.d.rhai", defWithOp)
	ws.AddDocument("file:///main.rhai", scriptUsingOp)

	doc := ws.Document("file:///main.rhai")
	require.NotNil(t, doc)
	assert.Empty(t, doc.Parse.Errors, "custom operator should let the script parse cleanly")
}

func TestOperatorRemovalTriggersScriptReparse(t *testing.T) {
	// Property: removing the definition that declared a custom operator
	// must reparse every script document under the now-smaller operator
	// table (spec testable property 8).
	ws := New(nil)
	ws.AddDocument("file:///lib.d.rhai", defWithOp)
	ws.AddDocument("file:///main.rhai", scriptUsingOp)

	before := ws.Document("file:///main.rhai")
	require.Empty(t, before.Parse.Errors)

	ws.RemoveDocument("file:///lib.d.rhai")

	after := ws.Document("file:///main.rhai")
	require.NotNil(t, after)
	assert.NotEmpty(t, after.Parse.Errors, "without the custom operator, the script's infix use of 'into' should no longer parse cleanly")
}

func TestEquivalentOperatorSetSkipsReparse(t *testing.T) {
	// Property: re-adding a def file that yields the same operator set
	// (name, types, binding power) must not reparse scripts (spec testable
	// property 8's second clause).
	ws := New(nil)
	ws.AddDocument("file:///lib.d.rhai", defWithOp)
	ws.AddDocument("file:///main.rhai", scriptUsingOp)

	before := ws.Document("file:///main.rhai")
	require.NotNil(t, before)

	ws.AddDocument("file:///lib.d.rhai", defWithOp)

	after := ws.Document("file:///main.rhai")
	require.NotNil(t, after)
	assert.Equal(t, before.Source, after.Source, "script should not be reparsed when the operator set is unchanged")
}

func TestAddDocumentReingestReplacesSource(t *testing.T) {
	ws := New(nil)
	ws.AddDocument("file:///a.rhai", "let x = 1;\n")
	first := ws.Document("file:///a.rhai")
	require.NotNil(t, first)

	ws.AddDocument("file:///a.rhai", "let x = 2;\n")
	second := ws.Document("file:///a.rhai")
	require.NotNil(t, second)

	assert.NotEqual(t, first.Source, second.Source, "re-adding a URL should replace its prior source")
	assert.Equal(t, "let x = 2;\n", second.Text)
}

func TestRemoveDocumentDropsIt(t *testing.T) {
	ws := New(nil)
	ws.AddDocument("file:///a.rhai", "let x = 1;\n")
	require.NotNil(t, ws.Document("file:///a.rhai"))

	ws.RemoveDocument("file:///a.rhai")
	assert.Nil(t, ws.Document("file:///a.rhai"))
}

func TestDefFileDetectedByModuleHeader(t *testing.T) {
	// Definition-vs-script classification is content-based, not URL-based
	// (rhai-lsp's is_rhai_def inspects the document's text): a "module ...;"
	// header marks a def file regardless of its URL, and its absence marks
	// a script even under a ".d.rhai"-suffixed URL.
	ws := New(nil)
	ws.AddDocument("file:///a.d.rhai", "module static;\nconst X = 1;\n")
	ws.AddDocument("file:///b.rhai", "let y = 2;\n")
	ws.AddDocument("file:///c.d.rhai", "let z = 3;\n")

	defDoc := ws.Document("file:///a.d.rhai")
	scriptDoc := ws.Document("file:///b.rhai")
	headerlessDoc := ws.Document("file:///c.d.rhai")
	require.NotNil(t, defDoc)
	require.NotNil(t, scriptDoc)
	require.NotNil(t, headerlessDoc)
	assert.True(t, defDoc.IsDef)
	assert.False(t, scriptDoc.IsDef)
	assert.False(t, headerlessDoc.IsDef, "a .d.rhai URL with no module header is not a definition file")
}

func TestDiagnosticsPublisherFiresOnLeadingEdge(t *testing.T) {
	ws := New(nil)
	calls := 0
	ws.SetDiagnosticsPublisher(func() { calls++ })

	ws.AddDocument("file:///a.rhai", "let x = 1;\n")
	assert.Equal(t, 1, calls, "the first trigger in a window should publish immediately")
}

type fakeEnv struct {
	files map[string]string
	dirs  map[string]bool
	glob  map[string][]string
}

func (f *fakeEnv) ReadFile(_ context.Context, path string) ([]byte, error) {
	return []byte(f.files[path]), nil
}
func (f *fakeEnv) URLToFilePath(url string) (string, bool) { return "", false }
func (f *fakeEnv) DiscoverConfig(root string) (string, bool) { return "", false }
func (f *fakeEnv) GlobFiles(pattern string) ([]string, error) { return f.glob[pattern], nil }
func (f *fakeEnv) IsDir(path string) bool                     { return f.dirs[path] }

func TestLoadFromConfigIngestsMatchedFiles(t *testing.T) {
	env := &fakeEnv{
		files: map[string]string{
			"/src/a.rhai": "let x = 1;\n",
			"/src/b.rhai": "let y = 2;\n",
		},
		dirs: map[string]bool{"/src": true},
		glob: map[string][]string{
			"/src/**/*.rhai": {"/src/a.rhai", "/src/b.rhai", "/src"},
		},
	}
	cfg := Config{Include: []string{"/src/**/*.rhai"}}

	ws := New(nil)
	err := ws.LoadFromConfig(context.Background(), env, cfg)
	require.NoError(t, err)

	urls := ws.Documents()
	assert.Len(t, urls, 2, "the directory match should be skipped and both files ingested")
}

func TestLoadFromConfigAppliesFileRule(t *testing.T) {
	env := &fakeEnv{
		files: map[string]string{
			"/src/a.rhai":      "let x = 1;\n",
			"/src/a.d.rhai":    "const X = 1;\n",
		},
		dirs: map[string]bool{},
		glob: map[string][]string{
			"/src/*": {"/src/a.rhai", "/src/a.d.rhai"},
		},
	}
	cfg := Config{Include: []string{"/src/*"}, FileRule: `\.d\.rhai$`}

	ws := New(nil)
	err := ws.LoadFromConfig(context.Background(), env, cfg)
	require.NoError(t, err)

	urls := ws.Documents()
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "a.d.rhai")
}

func TestHIRReturnsSharedInstance(t *testing.T) {
	ws := New(nil)
	var h *hir.HIR = ws.HIR()
	require.NotNil(t, h)
	assert.Equal(t, h, ws.HIR(), "HIR() should return the same shared instance across calls")
}
