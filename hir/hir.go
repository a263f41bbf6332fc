package hir

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HIR is the semantic model for one workspace: arenas of sources, modules,
// scopes, symbols, and types, all referenced by opaque handles (spec
// §3.2). A single HIR instance aggregates every ingested document — the
// workspace driver owns exactly one (spec §2, §4.5).
type HIR struct {
	instanceID uuid.UUID
	log        *zap.Logger

	sources *arena[Source]
	modules *arena[Module]
	scopes  *arena[Scope]
	symbols *arena[Symbol]
	types   *arena[Type]

	sourcesByURL  map[string]SourceHandle
	modulesByKind map[ModuleKind]ModuleHandle

	builtinTypes map[TypeKind]TypeHandle
	staticModule ModuleHandle
}

// New creates an empty HIR and runs prepare(): built-in primitive types and
// the static module are created once here and never removed (spec §3.4).
func New(log *zap.Logger) *HIR {
	if log == nil {
		log = zap.NewNop()
	}
	h := &HIR{
		instanceID:    uuid.New(),
		log:           log,
		sources:       newArena[Source](),
		modules:       newArena[Module](),
		scopes:        newArena[Scope](),
		symbols:       newArena[Symbol](),
		types:         newArena[Type](),
		sourcesByURL:  make(map[string]SourceHandle),
		modulesByKind: make(map[ModuleKind]ModuleHandle),
		builtinTypes:  make(map[TypeKind]TypeHandle),
	}
	h.prepare()
	return h
}

// InstanceID returns the opaque UUID minted when this HIR instance was
// created. It identifies the instance as a whole, never an entity (spec §9:
// handles must stay `Copy`-cheap arena indices).
func (h *HIR) InstanceID() uuid.UUID { return h.instanceID }

func (h *HIR) prepare() {
	for _, k := range []TypeKind{
		TypeInt, TypeFloat, TypeBool, TypeChar, TypeString,
		TypeTimestamp, TypeVoid, TypeUnknown, TypeNever, TypeModule,
	} {
		idx, gen := h.types.insert(Type{Kind: k})
		h.builtinTypes[k] = TypeHandle{index: idx, generation: gen}
	}

	key := StaticModuleKind()
	scopeIdx, scopeGen := h.scopes.insert(*newScope(SourceHandle{}, ScopeParent{}))
	scopeHandle := ScopeHandle{index: scopeIdx, generation: scopeGen}
	modIdx, modGen := h.modules.insert(Module{Kind: key, Scope: scopeHandle})
	h.staticModule = ModuleHandle{index: modIdx, generation: modGen}
	h.modulesByKind[key] = h.staticModule
}

// BuiltinType returns the handle for one of the spec's primitive types.
func (h *HIR) BuiltinType(k TypeKind) TypeHandle { return h.builtinTypes[k] }

// StaticModule returns the handle of the synthetic static module (spec
// §3.3/§3.4): created by prepare() and never removed.
func (h *HIR) StaticModule() ModuleHandle { return h.staticModule }

// --- generic accessors ---

func (h *HIR) Source(handle SourceHandle) (*Source, bool) {
	return h.sources.get(handle.index, handle.generation)
}

func (h *HIR) Module(handle ModuleHandle) (*Module, bool) {
	return h.modules.get(handle.index, handle.generation)
}

func (h *HIR) Scope(handle ScopeHandle) (*Scope, bool) {
	return h.scopes.get(handle.index, handle.generation)
}

// Symbol returns the symbol data for handle. If the symbol is a Virtual
// proxy, this transparently dereferences one hop to the target symbol's
// data (spec §3.3: "indexing the HIR by a Virtual(Proxy{target}) symbol
// transparently returns the target symbol's data... chains are forbidden
// by construction").
func (h *HIR) Symbol(handle SymbolHandle) (*Symbol, bool) {
	sym, ok := h.symbols.get(handle.index, handle.generation)
	if !ok {
		return nil, false
	}
	if proxy, isProxy := sym.Kind.(Virtual); isProxy {
		target, ok := h.symbols.get(proxy.Target.index, proxy.Target.generation)
		if !ok {
			return nil, false
		}
		if _, chained := target.Kind.(Virtual); chained {
			// Construction forbids chains (see NewSymbol); surfacing nil
			// here rather than silently walking further keeps that
			// invariant observable if it is ever violated.
			return nil, false
		}
		return target, true
	}
	return sym, true
}

func (h *HIR) Type(handle TypeHandle) (*Type, bool) {
	return h.types.get(handle.index, handle.generation)
}

// SourceByURL looks up a source first by the exact URL given, then by its
// normalized form (spec §6.2: "lookups try the raw URL first, then its
// normalized form").
func (h *HIR) SourceByURL(rawURL string) (SourceHandle, bool) {
	if handle, ok := h.sourcesByURL[rawURL]; ok {
		return handle, true
	}
	if handle, ok := h.sourcesByURL[NormalizeURL(rawURL)]; ok {
		return handle, true
	}
	return SourceHandle{}, false
}

// ModuleByKind looks up a module by its dedup key (spec §3.2/§3.3).
func (h *HIR) ModuleByKind(k ModuleKind) (ModuleHandle, bool) {
	handle, ok := h.modulesByKind[k]
	return handle, ok
}

// Sources iterates every live source.
func (h *HIR) Sources(yield func(SourceHandle, *Source) bool) {
	h.sources.all(func(idx, gen uint32, v *Source) bool {
		return yield(SourceHandle{index: idx, generation: gen}, v)
	})
}

// Modules iterates every live module.
func (h *HIR) Modules(yield func(ModuleHandle, *Module) bool) {
	h.modules.all(func(idx, gen uint32, v *Module) bool {
		return yield(ModuleHandle{index: idx, generation: gen}, v)
	})
}

// Symbols iterates every live symbol (not proxy-dereferenced).
func (h *HIR) Symbols(yield func(SymbolHandle, *Symbol) bool) {
	h.symbols.all(func(idx, gen uint32, v *Symbol) bool {
		return yield(SymbolHandle{index: idx, generation: gen}, v)
	})
}

// Operators returns every Op symbol across every module — the union spec
// §4.4 exposes as `hir.operators()`, used by the workspace driver to
// reconfigure subsequent parses.
func (h *HIR) Operators() []SymbolHandle {
	var out []SymbolHandle
	h.Symbols(func(handle SymbolHandle, sym *Symbol) bool {
		if _, ok := sym.Kind.(Op); ok {
			out = append(out, handle)
		}
		return true
	})
	return out
}
