package hir

import orderedmap "github.com/wk8/go-ordered-map/v2"

// SourceKind distinguishes a script document from a definition document
// (spec §3.2, §3.3's "a definition file's CST root is RhaiDef; a script
// file's CST root is Rhai").
type SourceKind uint8

const (
	SourceScript SourceKind = iota
	SourceDef
)

// SyntaxInfo carries the syntax-layer artifacts attached to a Source: the
// parse result (tree + errors) the workspace driver produced for this
// document. Editor-facing position mapping (byte offset <-> line/column) is
// an external-collaborator concern (spec §1) and is not part of this type.
type SyntaxInfo struct {
	Errors []string // rendered parse error messages, for diagnostics consumers
	IsDef  bool
}

// Source is one ingested document (spec §3.2).
type Source struct {
	URL    string
	Kind   SourceKind
	Module ModuleHandle
	Syntax SyntaxInfo
}

// ModuleKind identifies a Module's dedup key (spec §3.2/§3.3): either the
// single synthetic "static" namespace, or a concrete URL. Two definition
// files naming the same URL (or both naming `static`) resolve to the same
// Module handle.
type ModuleKind struct {
	isURL bool
	url   string // dedicated "static:" scheme when !isURL, per spec §3.3/§6.2
}

// StaticModuleKind returns the dedup key for the synthetic static module.
func StaticModuleKind() ModuleKind { return ModuleKind{isURL: false, url: "static:"} }

// URLModuleKind returns the dedup key for a module backed by a concrete URL.
func URLModuleKind(url string) ModuleKind { return ModuleKind{isURL: true, url: url} }

// IsStatic reports whether this key names the synthetic static module.
func (k ModuleKind) IsStatic() bool { return !k.isURL }

// URL returns the module's URL (including the synthetic "static:" one).
func (k ModuleKind) URL() string { return k.url }

// Module is a named scope root shared by every source that declares it
// (spec §3.2).
type Module struct {
	Kind  ModuleKind
	Docs  string
	Scope ScopeHandle
}

// ScopeParentKind tags which alternative of Scope.Parent is populated.
type ScopeParentKind uint8

const (
	ScopeParentNone ScopeParentKind = iota
	ScopeParentScope
	ScopeParentSymbol
)

// ScopeParent is the spec's `parent: Option<Scope|Symbol>` (§3.2): a scope's
// parent is either an enclosing scope, or (when the scope *belongs* to a
// symbol — e.g. a function body scope) that symbol directly.
type ScopeParent struct {
	Kind   ScopeParentKind
	Scope  ScopeHandle
	Symbol SymbolHandle
}

func ParentScope(s ScopeHandle) ScopeParent { return ScopeParent{Kind: ScopeParentScope, Scope: s} }
func ParentSymbol(s SymbolHandle) ScopeParent {
	return ScopeParent{Kind: ScopeParentSymbol, Symbol: s}
}

// Scope is a named-binding frame (spec §3.2, GLOSSARY). Direct symbols are
// kept in insertion order in an ordered set (`wk8/go-ordered-map`, matching
// the spec's "ordered set<Symbol>" verbatim); hoisted symbols are tracked
// separately and are visible throughout the scope regardless of where in
// that order they were registered.
type Scope struct {
	Source  SourceHandle
	Parent  ScopeParent
	symbols *orderedmap.OrderedMap[SymbolHandle, struct{}]
	hoisted map[SymbolHandle]struct{}
}

func newScope(source SourceHandle, parent ScopeParent) *Scope {
	return &Scope{
		Source:  source,
		Parent:  parent,
		symbols: orderedmap.New[SymbolHandle, struct{}](),
		hoisted: make(map[SymbolHandle]struct{}),
	}
}

// AddSymbol registers sym as a direct, insertion-ordered member of the
// scope.
func (s *Scope) AddSymbol(sym SymbolHandle) {
	s.symbols.Set(sym, struct{}{})
}

// Hoist marks sym as hoisted: visible throughout the scope regardless of
// textual order (spec §4.3 — script-level `fn` declarations).
func (s *Scope) Hoist(sym SymbolHandle) {
	s.symbols.Set(sym, struct{}{})
	s.hoisted[sym] = struct{}{}
}

// IsHoisted reports whether sym was registered as a hoisted declaration.
func (s *Scope) IsHoisted(sym SymbolHandle) bool {
	_, ok := s.hoisted[sym]
	return ok
}

// Symbols returns the scope's direct members in insertion order.
func (s *Scope) Symbols() []SymbolHandle {
	out := make([]SymbolHandle, 0, s.symbols.Len())
	for pair := s.symbols.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Symbol is a named or anonymous semantic entity (spec §3.2). Kind carries
// the tagged-union payload specific to what sort of symbol this is.
type Symbol struct {
	Export      bool
	ParentScope ScopeHandle
	Source      SourceHandle
	Kind        SymbolKind
}

// SymbolKind is implemented by each concrete symbol payload
// (Decl/Fn/Op/Import/Reference/Lit/Path/Block/Proxy/control-flow kinds),
// modeling the spec's tagged union as a small sealed interface — the
// idiomatic Go substitute for a Rust enum carrying per-variant data.
type SymbolKind interface {
	symbolKind()
}

// Decl is a `let`/`const`/parameter/import-alias declaration.
type Decl struct {
	Name       string
	IsConst    bool
	IsParam    bool
	IsImport   bool
	Value      *SymbolHandle // right-hand-side symbol, if the initializer is itself nameable
	ValueScope *ScopeHandle
	Docs       string
	Type       TypeHandle
}

// Fn is a function declaration or signature.
type Fn struct {
	Name   string
	Scope  ScopeHandle // body scope (populated with parameters)
	Getter bool
	Setter bool
	Docs   string
	Type   TypeHandle // declared return type, if any
}

// Op is a custom operator definition (spec §4.3).
type Op struct {
	Name         string
	LHSType      TypeHandle
	RHSType      TypeHandle
	BindingPower [2]uint8
	Docs         string
}

// Import is an `import` item: the alias declaration plus the scope the
// alias and any imported names live in (spec §4.3). A definition-file
// import (`import "path" as alias;`) populates Path with the literal
// module-path text, resolved against the sources index by the resolver
// (spec §4.4); a script-level import (`import expr as alias;`) instead
// populates Expr with the lowered path expression, since Rhai scripts may
// compute the import path dynamically.
type Import struct {
	Path   string
	Target *SourceHandle
	Scope  ScopeHandle
	Alias  *SymbolHandle
	Expr   *SymbolHandle
}

// Reference is a name-use site resolved by the resolver (spec §4.4).
type Reference struct {
	Name        string
	Target      *SymbolHandle
	FieldAccess bool
}

// Lit is a literal expression.
type Lit struct {
	Text string
	Type TypeHandle
}

// Path is a `::`-qualified reference (e.g. `m::x`). Target is the final
// segment's resolved symbol, set by the resolver (spec §4.4).
type Path struct {
	Segments []string
	Target   *SymbolHandle
}

// Block is a `{ ... }` expression; Scope is the block's own scope.
type Block struct {
	Scope ScopeHandle
}

// ProxyKind distinguishes the few virtual-symbol variants the parser needs.
type ProxyKind uint8

const (
	ProxyTarget ProxyKind = iota
)

// Virtual is a proxy symbol: one level of indirection to a target symbol.
// Chains are forbidden by construction (spec §3.3) — callers must never
// set Target to another Virtual symbol; NewSymbol (mutate.go) enforces this
// by panicking.
type Virtual struct {
	ProxyKind ProxyKind
	Target    SymbolHandle
}

// If/Loop/Switch carry just enough data to drive editor features over
// control flow (spec §3.2's "plus the control-flow kinds needed by the
// parser").
type If struct {
	ThenScope ScopeHandle
	ElseScope *ScopeHandle
}

type LoopKind uint8

const (
	LoopWhile LoopKind = iota
	LoopLoop
	LoopDo
	LoopFor
)

type Loop struct {
	Kind    LoopKind
	Scope   ScopeHandle
	LoopVar *SymbolHandle // for-loop binding, if any
}

type Switch struct {
	Scope ScopeHandle
}

func (Decl) symbolKind()      {}
func (Fn) symbolKind()        {}
func (Op) symbolKind()        {}
func (Import) symbolKind()    {}
func (Reference) symbolKind() {}
func (Lit) symbolKind()       {}
func (Path) symbolKind()      {}
func (Block) symbolKind()     {}
func (Virtual) symbolKind()   {}
func (If) symbolKind()        {}
func (Loop) symbolKind()      {}
func (Switch) symbolKind()    {}

// TypeKind enumerates the primitive types of spec §3.2 plus a catch-all for
// user-declared (named) types.
type TypeKind uint8

const (
	TypeInt TypeKind = iota
	TypeFloat
	TypeBool
	TypeChar
	TypeString
	TypeTimestamp
	TypeVoid
	TypeUnknown
	TypeNever
	TypeModule
	TypeUser
)

// Type is an entry in the types arena (spec §3.2).
type Type struct {
	Kind TypeKind
	Name string // populated for TypeUser; primitives are named by Kind
}
