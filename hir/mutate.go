package hir

// mutate.go holds the HIR's write surface: the operations the builder
// (builder.go) uses while lowering one source's syntax tree, plus source
// removal/replacement for the workspace driver's ingestion and
// stop-the-world reparse (spec §4.5, §5).

// NewSource inserts a new Source and indexes it by URL, replacing any prior
// source at that exact URL first (a source is re-ingested by removing the
// old one and inserting a fresh one; callers never mutate a Source in
// place).
func (h *HIR) NewSource(url string, kind SourceKind) SourceHandle {
	if prior, ok := h.sourcesByURL[url]; ok {
		h.RemoveSource(prior)
	}
	idx, gen := h.sources.insert(Source{URL: url, Kind: kind})
	handle := SourceHandle{index: idx, generation: gen}
	h.sourcesByURL[url] = handle
	return handle
}

// SetSourceModule records which module a source's declarations were
// registered into.
func (h *HIR) SetSourceModule(source SourceHandle, module ModuleHandle) {
	if s, ok := h.sources.get(source.index, source.generation); ok {
		s.Module = module
	}
}

// SetSourceSyntax records the parse outcome (errors, def-ness) for a source.
func (h *HIR) SetSourceSyntax(source SourceHandle, info SyntaxInfo) {
	if s, ok := h.sources.get(source.index, source.generation); ok {
		s.Syntax = info
	}
}

// GetOrCreateModule returns the module registered under key, creating one
// (with a fresh, empty root scope) if none exists yet. Multiple definition
// files naming the same module key share the returned handle and root
// scope (spec §3.2/§3.3 module dedup).
func (h *HIR) GetOrCreateModule(key ModuleKind) ModuleHandle {
	if handle, ok := h.modulesByKind[key]; ok {
		return handle
	}
	scopeIdx, scopeGen := h.scopes.insert(*newScope(SourceHandle{}, ScopeParent{}))
	scopeHandle := ScopeHandle{index: scopeIdx, generation: scopeGen}
	modIdx, modGen := h.modules.insert(Module{Kind: key, Scope: scopeHandle})
	handle := ModuleHandle{index: modIdx, generation: modGen}
	h.modulesByKind[key] = handle
	return handle
}

// SetModuleDocs records the leading doc-comment text contributed to a
// module by whichever definition file first declares it.
func (h *HIR) SetModuleDocs(module ModuleHandle, docs string) {
	if m, ok := h.modules.get(module.index, module.generation); ok && m.Docs == "" {
		m.Docs = docs
	}
}

// NewScope creates a scope owned by source, with the given parent linkage.
func (h *HIR) NewScope(source SourceHandle, parent ScopeParent) ScopeHandle {
	idx, gen := h.scopes.insert(*newScope(source, parent))
	return ScopeHandle{index: idx, generation: gen}
}

// NewSymbol creates a symbol owned by source in parentScope. Panics if kind
// is a Virtual proxy targeting another Virtual symbol — proxy chains are
// forbidden by construction (spec §3.3), and this is the single
// construction point that enforces it.
func (h *HIR) NewSymbol(source SourceHandle, parentScope ScopeHandle, export bool, kind SymbolKind) SymbolHandle {
	if proxy, ok := kind.(Virtual); ok {
		if target, ok := h.symbols.get(proxy.Target.index, proxy.Target.generation); ok {
			if _, chained := target.Kind.(Virtual); chained {
				panic("hir: proxy symbol cannot target another proxy symbol")
			}
		}
	}
	idx, gen := h.symbols.insert(Symbol{
		Export:      export,
		ParentScope: parentScope,
		Source:      source,
		Kind:        kind,
	})
	return SymbolHandle{index: idx, generation: gen}
}

// NewUserType interns a named user type, returning the same handle for
// repeat calls with the same name.
func (h *HIR) NewUserType(name string) TypeHandle {
	var found TypeHandle
	h.types.all(func(idx, gen uint32, v *Type) bool {
		if v.Kind == TypeUser && v.Name == name {
			found = TypeHandle{index: idx, generation: gen}
			return false
		}
		return true
	})
	if !found.IsNil() {
		return found
	}
	idx, gen := h.types.insert(Type{Kind: TypeUser, Name: name})
	return TypeHandle{index: idx, generation: gen}
}

// RemoveSource removes a source and every scope and symbol it owns, then
// garbage-collects any non-static module whose root scope is now empty and
// owned entirely by the removed source (spec §3.4's source-removal
// lifecycle; the static module, per prepare(), is never collected).
func (h *HIR) RemoveSource(source SourceHandle) {
	src, ok := h.sources.get(source.index, source.generation)
	if !ok {
		return
	}
	delete(h.sourcesByURL, src.URL)
	module := src.Module
	h.sources.remove(source.index, source.generation)

	var deadScopes []ScopeHandle
	h.scopes.all(func(idx, gen uint32, v *Scope) bool {
		if v.Source == source {
			deadScopes = append(deadScopes, ScopeHandle{index: idx, generation: gen})
		}
		return true
	})
	deadScopeSet := make(map[ScopeHandle]struct{}, len(deadScopes))
	for _, s := range deadScopes {
		deadScopeSet[s] = struct{}{}
	}

	var deadSymbols []SymbolHandle
	h.symbols.all(func(idx, gen uint32, v *Symbol) bool {
		if v.Source == source {
			deadSymbols = append(deadSymbols, SymbolHandle{index: idx, generation: gen})
		}
		return true
	})
	for _, s := range deadSymbols {
		h.symbols.remove(s.index, s.generation)
	}
	for _, s := range deadScopes {
		h.scopes.remove(s.index, s.generation)
	}

	_ = deadScopeSet
	h.collectModuleIfEmpty(module)
}

// collectModuleIfEmpty removes module if it is not the static module, no
// live source still declares into it, and no live symbol still roots in
// its scope (i.e. the last contributing source was just removed).
func (h *HIR) collectModuleIfEmpty(module ModuleHandle) {
	if module.IsNil() {
		return
	}
	mod, ok := h.modules.get(module.index, module.generation)
	if !ok || mod.Kind.IsStatic() {
		return
	}
	stillReferenced := false
	h.sources.all(func(_, _ uint32, s *Source) bool {
		if s.Module == module {
			stillReferenced = true
			return false
		}
		return true
	})
	if stillReferenced {
		return
	}
	h.symbols.all(func(_, _ uint32, sym *Symbol) bool {
		if sym.ParentScope == mod.Scope {
			stillReferenced = true
			return false
		}
		return true
	})
	if stillReferenced {
		return
	}
	h.scopes.remove(mod.Scope.index, mod.Scope.generation)
	delete(h.modulesByKind, mod.Kind)
	h.modules.remove(module.index, module.generation)
}
