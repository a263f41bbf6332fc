package hir

import "go.uber.org/zap"

// resolver.go implements spec §4.4: after a full ingestion wave, ResolveAll
// walks every Reference and Path symbol's scope chain and every Import's
// target URL, filling in the targets the builder left empty. Resolution
// never fails hard (spec §7): an unresolved name is simply left with a nil
// target for downstream diagnostics to report.

// ResolveAll resolves every import target, reference, and qualified path
// currently in the HIR. The workspace driver calls this once per ingestion
// wave, after every changed document has been rebuilt (spec §4.5).
func (h *HIR) ResolveAll() {
	h.resolveImports()
	h.resolveReferences()
	h.resolvePaths()
}

func (h *HIR) resolveImports() {
	var handles []SymbolHandle
	h.symbols.all(func(idx, gen uint32, v *Symbol) bool {
		if _, ok := v.Kind.(Import); ok {
			handles = append(handles, SymbolHandle{index: idx, generation: gen})
		}
		return true
	})
	for _, handle := range handles {
		h.resolveImport(handle)
	}
}

func (h *HIR) resolveImport(handle SymbolHandle) {
	sym, ok := h.symbols.get(handle.index, handle.generation)
	if !ok {
		return
	}
	imp, ok := sym.Kind.(Import)
	if !ok {
		return
	}

	path := imp.Path
	if path == "" && imp.Expr != nil {
		if exprSym, ok := h.symbols.get(imp.Expr.index, imp.Expr.generation); ok {
			if lit, ok := exprSym.Kind.(Lit); ok && isQuotedStringLit(lit.Text) {
				path = unescapeStringLiteral(lit.Text)
			}
		}
	}
	if path == "" {
		// A script import whose path is a computed expression; spec §4.3
		// notes Rhai scripts may compute the path dynamically, so there is
		// nothing static to resolve here.
		return
	}

	owner, ok := h.sources.get(sym.Source.index, sym.Source.generation)
	if !ok {
		return
	}
	resolvedURL, ok := resolveRelativeURL(owner.URL, path)
	if !ok {
		h.log.Debug("import path could not be resolved against its source URL",
			zap.String("source", owner.URL), zap.String("path", path))
		return
	}

	targetSource, ok := h.SourceByURL(resolvedURL)
	if !ok {
		h.log.Debug("unresolved import target", zap.String("url", resolvedURL))
		return
	}
	imp.Target = &targetSource
	sym.Kind = imp

	if imp.Alias == nil {
		return
	}
	target, ok := h.sources.get(targetSource.index, targetSource.generation)
	if !ok {
		return
	}
	mod, ok := h.modules.get(target.Module.index, target.Module.generation)
	if !ok {
		return
	}
	aliasSym, ok := h.symbols.get(imp.Alias.index, imp.Alias.generation)
	if !ok {
		return
	}
	decl, ok := aliasSym.Kind.(Decl)
	if !ok {
		return
	}
	scope := mod.Scope
	decl.ValueScope = &scope
	aliasSym.Kind = decl
}

func (h *HIR) resolveReferences() {
	var handles []SymbolHandle
	h.symbols.all(func(idx, gen uint32, v *Symbol) bool {
		if _, ok := v.Kind.(Reference); ok {
			handles = append(handles, SymbolHandle{index: idx, generation: gen})
		}
		return true
	})
	for _, handle := range handles {
		sym, ok := h.symbols.get(handle.index, handle.generation)
		if !ok {
			continue
		}
		ref, ok := sym.Kind.(Reference)
		if !ok {
			continue
		}
		if target, ok := h.lookupName(sym.ParentScope, ref.Name, handle); ok {
			ref.Target = &target
			sym.Kind = ref
		}
	}
}

func (h *HIR) resolvePaths() {
	var handles []SymbolHandle
	h.symbols.all(func(idx, gen uint32, v *Symbol) bool {
		if _, ok := v.Kind.(Path); ok {
			handles = append(handles, SymbolHandle{index: idx, generation: gen})
		}
		return true
	})
	for _, handle := range handles {
		sym, ok := h.symbols.get(handle.index, handle.generation)
		if !ok {
			continue
		}
		p, ok := sym.Kind.(Path)
		if !ok || len(p.Segments) == 0 {
			continue
		}
		cur, ok := h.lookupName(sym.ParentScope, p.Segments[0], handle)
		for _, seg := range p.Segments[1:] {
			if !ok {
				break
			}
			cur, ok = h.lookupQualified(cur, seg)
		}
		if ok {
			p.Target = &cur
			sym.Kind = p
		}
	}
}

// lookupQualified resolves seg as a member of whatever scope the symbol at
// of (an import alias, typically) exposes for qualified lookup — spec
// §4.4's "imports bind the alias symbol to the target module's root scope".
func (h *HIR) lookupQualified(of SymbolHandle, seg string) (SymbolHandle, bool) {
	sym, ok := h.symbols.get(of.index, of.generation)
	if !ok {
		return SymbolHandle{}, false
	}
	decl, ok := sym.Kind.(Decl)
	if !ok || decl.ValueScope == nil {
		return SymbolHandle{}, false
	}
	scope, ok := h.scopes.get(decl.ValueScope.index, decl.ValueScope.generation)
	if !ok {
		return SymbolHandle{}, false
	}
	return h.lookupInScope(scope, seg, SymbolHandle{})
}

// lookupName walks the scope chain starting at start, searching each scope's
// direct (non-hoisted, textually-preceding) symbols, then its hoisted
// symbols, before moving to the parent scope (spec §4.4). exclude is the
// symbol doing the lookup, so it never resolves to itself; once the walk
// leaves the originating scope, locality no longer constrains candidates to
// those preceding exclude, since exclude's own position was only meaningful
// within the scope it was declared in.
func (h *HIR) lookupName(start ScopeHandle, name string, exclude SymbolHandle) (SymbolHandle, bool) {
	scope := start
	for {
		s, ok := h.scopes.get(scope.index, scope.generation)
		if !ok {
			return SymbolHandle{}, false
		}
		if target, ok := h.lookupInScope(s, name, exclude); ok {
			return target, true
		}
		next, ok := h.enclosingScope(s.Parent)
		if !ok {
			return SymbolHandle{}, false
		}
		scope = next
		exclude = SymbolHandle{}
	}
}

// lookupInScope searches one scope's members for name (spec §4.4's
// per-scope rule #10: "a reference inside a nested block resolves to the
// nearest-enclosing declaration, not a shadowed outer one").
func (h *HIR) lookupInScope(s *Scope, name string, exclude SymbolHandle) (SymbolHandle, bool) {
	members := s.Symbols()
	excludePos := len(members)
	for i, m := range members {
		if m == exclude {
			excludePos = i
			break
		}
	}

	var nearest SymbolHandle
	found := false
	for i := 0; i < excludePos; i++ {
		m := members[i]
		if s.IsHoisted(m) {
			continue
		}
		if target, ok := h.matchMember(m, name); ok {
			nearest = target
			found = true
		}
	}
	if found {
		return nearest, true
	}

	for _, m := range members {
		if !s.IsHoisted(m) {
			continue
		}
		if target, ok := h.matchMember(m, name); ok {
			return target, true
		}
	}
	return SymbolHandle{}, false
}

// matchMember reports whether member declares name, returning the handle
// that should count as the match: member itself for a plain Decl/Fn, or the
// bound alias one level inside an Import's own scope, so an import's bound
// name is visible to lookups in the scope the import statement lives in
// without promoting the alias symbol itself into that scope.
func (h *HIR) matchMember(member SymbolHandle, name string) (SymbolHandle, bool) {
	sym, ok := h.symbols.get(member.index, member.generation)
	if !ok {
		return SymbolHandle{}, false
	}
	switch k := sym.Kind.(type) {
	case Decl:
		if k.Name == name {
			return member, true
		}
	case Fn:
		if k.Name == name {
			return member, true
		}
	case Import:
		importScope, ok := h.scopes.get(k.Scope.index, k.Scope.generation)
		if !ok {
			return SymbolHandle{}, false
		}
		for _, alias := range importScope.Symbols() {
			if target, ok := h.matchMember(alias, name); ok {
				return target, true
			}
		}
	}
	return SymbolHandle{}, false
}

// enclosingScope resolves a ScopeParent to the scope a lookup should
// continue in: the parent scope directly, or (when the scope belongs to a
// symbol, e.g. a function body) that symbol's own parent scope.
func (h *HIR) enclosingScope(parent ScopeParent) (ScopeHandle, bool) {
	switch parent.Kind {
	case ScopeParentScope:
		return parent.Scope, true
	case ScopeParentSymbol:
		sym, ok := h.symbols.get(parent.Symbol.index, parent.Symbol.generation)
		if !ok {
			return ScopeHandle{}, false
		}
		return sym.ParentScope, true
	default:
		return ScopeHandle{}, false
	}
}

func isQuotedStringLit(text string) bool {
	return len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"'
}
