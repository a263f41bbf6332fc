package hir

import (
	"testing"

	"github.com/odvcencio/rhai-hir-go/syntax"
)

func buildScript(t *testing.T, h *HIR, url, src string) (SourceHandle, ScopeHandle) {
	t.Helper()
	p := syntax.NewParser(nil)
	parse := p.ParseScript([]byte(src))
	if len(parse.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, parse.Errors)
	}
	source := h.NewSource(url, SourceScript)
	b := NewBuilder(h, nil)
	scope := b.BuildScript(source, parse.Tree.Root())
	h.SetSourceModule(source, h.StaticModule())
	return source, scope
}

func buildDef(t *testing.T, h *HIR, url, src string) (SourceHandle, ModuleHandle) {
	t.Helper()
	p := syntax.NewParser(nil)
	parse := p.ParseDef([]byte(src))
	if len(parse.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, parse.Errors)
	}
	source := h.NewSource(url, SourceDef)
	b := NewBuilder(h, nil)
	module := b.BuildDef(source, parse.Tree.Root(), url)
	h.SetSourceModule(source, module)
	return source, module
}

func TestScriptLevelFnHoisting(t *testing.T) {
	// A script-level fn must be visible to a reference textually before it
	// (spec §4.3's "fn declarations in scripts are hoisted").
	h := New(nil)
	_, scope := buildScript(t, h, "file:///a.rhai", "greet();\nfn greet() {}\n")
	h.ResolveAll()

	s, _ := h.Scope(scope)
	var refHandle SymbolHandle
	for _, handle := range s.Symbols() {
		sym, _ := h.Symbol(handle)
		if ref, ok := sym.Kind.(Reference); ok && ref.Name == "greet" {
			refHandle = handle
		}
	}
	if refHandle.IsNil() {
		t.Fatal("no Reference to greet found")
	}
	sym, _ := h.Symbol(refHandle)
	ref := sym.Kind.(Reference)
	if ref.Target == nil {
		t.Fatal("expected hoisted fn reference to resolve")
	}
	target, ok := h.Symbol(*ref.Target)
	if !ok {
		t.Fatal("resolved target symbol missing")
	}
	fn, ok := target.Kind.(Fn)
	if !ok || fn.Name != "greet" {
		t.Errorf("expected reference to resolve to Fn greet, got %#v", target.Kind)
	}
}

func TestLetNotHoisted(t *testing.T) {
	// Unlike fn, let/const are not hoisted: a reference textually before the
	// declaration must not resolve to it.
	h := New(nil)
	_, scope := buildScript(t, h, "file:///a.rhai", "x;\nlet x = 1;\n")
	h.ResolveAll()

	s, _ := h.Scope(scope)
	var refHandle SymbolHandle
	for _, handle := range s.Symbols() {
		sym, _ := h.Symbol(handle)
		if ref, ok := sym.Kind.(Reference); ok && ref.Name == "x" {
			refHandle = handle
		}
	}
	sym, _ := h.Symbol(refHandle)
	ref := sym.Kind.(Reference)
	if ref.Target != nil {
		t.Error("expected forward reference to a non-hoisted let to stay unresolved")
	}
}

func TestNearestPrecedingDeclWins(t *testing.T) {
	// "let x=1; let x=2; x" must resolve to the second Decl, not the first
	// (nearest-preceding, not outer-shadowed).
	h := New(nil)
	_, scope := buildScript(t, h, "file:///a.rhai", "let x = 1;\nlet x = 2;\nx;\n")
	h.ResolveAll()

	s, _ := h.Scope(scope)
	var decls []SymbolHandle
	var refHandle SymbolHandle
	for _, handle := range s.Symbols() {
		sym, _ := h.Symbol(handle)
		switch k := sym.Kind.(type) {
		case Decl:
			decls = append(decls, handle)
		case Reference:
			if k.Name == "x" {
				refHandle = handle
			}
		}
	}
	if len(decls) != 2 {
		t.Fatalf("expected 2 Decls, got %d", len(decls))
	}
	sym, _ := h.Symbol(refHandle)
	ref := sym.Kind.(Reference)
	if ref.Target == nil || *ref.Target != decls[1] {
		t.Errorf("expected reference to resolve to the second decl %v, got %v", decls[1], ref.Target)
	}
}

func TestStaticModuleDedup(t *testing.T) {
	h := New(nil)
	_, mod1 := buildDef(t, h, "file:///a.d.rhai", "module static;\nconst A = 1;\n")
	_, mod2 := buildDef(t, h, "file:///b.d.rhai", "module static;\nconst B = 2;\n")
	if mod1 != mod2 {
		t.Errorf("two `static module;` definition files should dedup to the same module, got %v and %v", mod1, mod2)
	}
}

func TestURLModuleDedup(t *testing.T) {
	h := New(nil)
	_, mod1 := buildDef(t, h, "file:///dir/a.d.rhai", "const A = 1;\n")
	// A second def file declaring module "a.d.rhai" (resolved relative to
	// its own URL) should land in the same module as the first.
	_, mod2 := buildDef(t, h, "file:///dir/b.d.rhai", "module \"a.d.rhai\";\nconst B = 2;\n")
	if mod1 != mod2 {
		t.Errorf("definition files naming the same URL should dedup to one module, got %v and %v", mod1, mod2)
	}
}

func TestProxySymbolTransparentDereference(t *testing.T) {
	h := New(nil)
	target := h.NewSymbol(SourceHandle{}, ScopeHandle{}, false, Decl{Name: "real"})
	proxy := h.NewSymbol(SourceHandle{}, ScopeHandle{}, false, Virtual{Target: target})

	sym, ok := h.Symbol(proxy)
	if !ok {
		t.Fatal("expected proxy lookup to succeed")
	}
	decl, ok := sym.Kind.(Decl)
	if !ok || decl.Name != "real" {
		t.Errorf("expected Symbol(proxy) to transparently return the target's Decl, got %#v", sym.Kind)
	}
}

func TestProxyChainForbidden(t *testing.T) {
	h := New(nil)
	target := h.NewSymbol(SourceHandle{}, ScopeHandle{}, false, Decl{Name: "real"})
	proxy := h.NewSymbol(SourceHandle{}, ScopeHandle{}, false, Virtual{Target: target})

	defer func() {
		if recover() == nil {
			t.Error("expected constructing a proxy-to-proxy chain to panic")
		}
	}()
	h.NewSymbol(SourceHandle{}, ScopeHandle{}, false, Virtual{Target: proxy})
}

func TestImportAliasResolvesThroughOneHopPeek(t *testing.T) {
	h := New(nil)
	buildDef(t, h, "file:///lib.d.rhai", "const VALUE = 1;\n")
	_, scope := buildScript(t, h, "file:///main.rhai", "import \"lib.d.rhai\" as lib;\nlib;\n")
	h.ResolveAll()

	s, _ := h.Scope(scope)
	var refHandle SymbolHandle
	for _, handle := range s.Symbols() {
		sym, _ := h.Symbol(handle)
		if ref, ok := sym.Kind.(Reference); ok && ref.Name == "lib" {
			refHandle = handle
		}
	}
	if refHandle.IsNil() {
		t.Fatal("no reference to import alias found")
	}
	sym, _ := h.Symbol(refHandle)
	ref := sym.Kind.(Reference)
	if ref.Target == nil {
		t.Fatal("expected import alias reference to resolve")
	}
	target, _ := h.Symbol(*ref.Target)
	decl, ok := target.Kind.(Decl)
	if !ok || !decl.IsImport || decl.Name != "lib" {
		t.Errorf("expected reference to resolve to the import alias decl, got %#v", target.Kind)
	}
}

func TestQualifiedPathResolvesThroughImportAlias(t *testing.T) {
	// Spec §8 scenario S5: `import "m" as m; m::x` resolves the qualified
	// path through the alias to the target module's declaration.
	h := New(nil)
	buildDef(t, h, "file:///lib.d.rhai", "const x = 1;\n")
	_, scope := buildScript(t, h, "file:///main.rhai", "import \"lib.d.rhai\" as m;\nm::x;\n")
	h.ResolveAll()

	s, _ := h.Scope(scope)
	var pathHandle SymbolHandle
	for _, handle := range s.Symbols() {
		sym, _ := h.Symbol(handle)
		if _, ok := sym.Kind.(Path); ok {
			pathHandle = handle
		}
	}
	if pathHandle.IsNil() {
		t.Fatal("no path symbol found for m::x")
	}
	sym, _ := h.Symbol(pathHandle)
	path := sym.Kind.(Path)
	if path.Target == nil {
		t.Fatal("expected qualified path m::x to resolve")
	}
	target, _ := h.Symbol(*path.Target)
	decl, ok := target.Kind.(Decl)
	if !ok || decl.Name != "x" || !decl.IsConst {
		t.Errorf("expected m::x to resolve to the def file's const x, got %#v", target.Kind)
	}
}

func TestScopeRemovalGarbageCollectsEmptyModule(t *testing.T) {
	h := New(nil)
	source, module := buildDef(t, h, "file:///only.d.rhai", "const A = 1;\n")
	if _, ok := h.Module(module); !ok {
		t.Fatal("module should exist before removal")
	}
	h.RemoveSource(source)
	if _, ok := h.Module(module); ok {
		t.Error("module with no remaining contributing source should be collected")
	}
}

func TestStaticModuleNeverCollected(t *testing.T) {
	h := New(nil)
	source, _ := buildScript(t, h, "file:///a.rhai", "let x = 1;\n")
	h.RemoveSource(source)
	if _, ok := h.Module(h.StaticModule()); !ok {
		t.Error("the static module must survive every source removal")
	}
}
