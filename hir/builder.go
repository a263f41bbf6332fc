package hir

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/rhai-hir-go/syntax"
)

// Builder lowers one document's syntax tree into the HIR's arenas (spec
// §4.3). Grounded on the general walk-and-emit shape of
// gotreesitter/highlight.go's tree-walking query evaluation, generalized
// from emitting highlight captures at matched node spans to emitting HIR
// symbols and scopes at grammar-specific node kinds.
type Builder struct {
	hir *HIR
	log *zap.Logger
}

// NewBuilder creates a Builder that lowers into h, logging non-fatal
// warnings (e.g. an unresolvable module URL) through log.
func NewBuilder(h *HIR, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{hir: h, log: log}
}

// BuildScript lowers a parsed script file's root RHAI node into a new
// top-level scope for the source and returns that scope. The scope is
// parented on the static module's root scope, so unqualified top-level
// names in scripts can see static-module declarations.
func (b *Builder) BuildScript(source SourceHandle, root *syntax.SyntaxNode) ScopeHandle {
	staticMod, _ := b.hir.Module(b.hir.StaticModule())
	scope := b.hir.NewScope(source, ParentScope(staticMod.Scope))
	b.hoistFnDecls(source, scope, root.Children())
	for _, stmt := range root.Children() {
		b.buildStatement(source, scope, stmt, false)
	}
	return scope
}

// BuildDef lowers a parsed definition file's root RHAI_DEF node into the
// module it declares (spec §4.3's module-resolution policy), returning
// that module's handle.
func (b *Builder) BuildDef(source SourceHandle, root *syntax.SyntaxNode, sourceURL string) ModuleHandle {
	var moduleHeader *syntax.SyntaxNode
	items := root.Children()
	if len(items) > 0 && items[0].Kind() == syntax.DEF_MODULE {
		moduleHeader = items[0]
		items = items[1:]
	} else {
		b.log.Warn("definition file has no module declaration; using its own URL as the module",
			zap.String("source", sourceURL))
	}
	key := b.resolveModuleKind(moduleHeader, sourceURL)
	module := b.hir.GetOrCreateModule(key)
	mod, _ := b.hir.Module(module)
	scope := mod.Scope

	for _, item := range items {
		b.buildDefItem(source, scope, item)
	}
	return module
}

// resolveModuleKind implements spec §4.3's module declaration policy:
// `static` keyword -> Static; string literal -> URL resolved against the
// source URL; bare identifier -> "static://<ident>"; absent -> the source's
// own URL.
func (b *Builder) resolveModuleKind(header *syntax.SyntaxNode, sourceURL string) ModuleKind {
	if header == nil {
		return URLModuleKind(sourceURL)
	}
	toks := header.Tokens()
	for _, t := range toks {
		switch t.Kind {
		case syntax.KW_STATIC:
			return StaticModuleKind()
		case syntax.LIT_STRING:
			unescaped := unescapeStringLiteral(t.Text)
			resolved, ok := resolveRelativeURL(sourceURL, unescaped)
			if !ok {
				b.log.Warn("definition module URL could not be resolved; module declaration ignored",
					zap.String("source", sourceURL), zap.String("name", unescaped))
				return URLModuleKind(sourceURL)
			}
			return URLModuleKind(resolved)
		case syntax.IDENT:
			return URLModuleKind("static://" + t.Text)
		}
	}
	return URLModuleKind(sourceURL)
}

func resolveRelativeURL(base, ref string) (string, bool) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return baseURL.ResolveReference(refURL).String(), true
}

// unescapeStringLiteral strips the surrounding quotes and resolves the
// handful of escape sequences the lexer's string terminator scan tolerates.
// Full validation of escapes is deliberately left loose here, matching the
// lexer's stance: the lexer only finds the terminator, "escape handling
// defers to the consumer."
func unescapeStringLiteral(text string) string {
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) {
			i++
			switch text[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(text[i])
			}
			continue
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}

// hoistFnDecls registers every direct `fn` child as hoisted before the
// ordered statement walk, so forward references to script-level functions
// resolve (spec §4.3: "fn declarations in scripts are hoisted... let/const
// are not").
func (b *Builder) hoistFnDecls(source SourceHandle, scope ScopeHandle, stmts []*syntax.SyntaxNode) {
	for _, stmt := range stmts {
		if stmt.Kind() == syntax.FN_DEF {
			b.buildFnDef(source, scope, stmt, false, true)
		}
	}
}

// buildStatement lowers one script statement. fn declarations are skipped
// because hoistFnDecls has already lowered them; the trailing bool
// parameter is unused.
func (b *Builder) buildStatement(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode, _ bool) {
	switch node.Kind() {
	case syntax.FN_DEF:
		// already hoisted
	case syntax.LET_STMT:
		b.buildLetStmt(source, scope, node)
	case syntax.EXPR_IMPORT:
		b.buildImport(source, scope, node, false)
	case syntax.EXPR_STMT:
		for _, child := range node.Children() {
			b.buildExpr(source, scope, child)
		}
	default:
		b.buildExpr(source, scope, node)
	}
}

func (b *Builder) buildLetStmt(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	isConst := false
	for _, t := range node.Tokens() {
		if t.Kind == syntax.KW_CONST {
			isConst = true
			break
		}
		if t.Kind == syntax.KW_LET {
			break
		}
	}
	name := node.Name()
	var value *SymbolHandle
	if init := node.SoleExprChild(); init != nil {
		h := b.buildExpr(source, scope, init)
		if !h.IsNil() {
			value = &h
		}
	}
	decl := Decl{Name: name, IsConst: isConst, Value: value, Type: b.hir.BuiltinType(TypeUnknown)}
	export := isConst && b.scopeIsModuleTop(scope)
	sym := b.hir.NewSymbol(source, scope, export, decl)
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}

func (b *Builder) scopeIsModuleTop(scope ScopeHandle) bool {
	s, ok := b.hir.Scope(scope)
	if !ok {
		return false
	}
	staticMod, ok := b.hir.Module(b.hir.StaticModule())
	if !ok {
		return false
	}
	return s.Parent.Kind == ScopeParentScope && s.Parent.Scope == staticMod.Scope
}

func (b *Builder) buildImport(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode, exportAll bool) SymbolHandle {
	importScope := b.hir.NewScope(source, ParentScope(scope))
	aliasName := node.Alias()
	var expr *SymbolHandle
	if target := node.SoleExprChild(); target != nil {
		h := b.buildExpr(source, scope, target)
		if !h.IsNil() {
			expr = &h
		}
	}

	var alias *SymbolHandle
	importSym := b.hir.NewSymbol(source, scope, exportAll, Import{Scope: importScope, Expr: expr})

	if aliasName != "" {
		aliasDecl := Decl{Name: aliasName, IsImport: true, Type: b.hir.BuiltinType(TypeModule)}
		aliasHandle := b.hir.NewSymbol(source, importScope, exportAll, aliasDecl)
		alias = &aliasHandle
		if s, ok := b.hir.Scope(importScope); ok {
			s.AddSymbol(aliasHandle)
		}
		if imp, ok := b.hir.symbols.get(importSym.index, importSym.generation); ok {
			if importData, ok := imp.Kind.(Import); ok {
				importData.Alias = alias
				imp.Kind = importData
			}
		}
	}
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(importSym)
	}
	return importSym
}

// buildFnDef lowers a script `fn` item. hoist controls whether the symbol
// is registered as hoisted in scope.
func (b *Builder) buildFnDef(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode, export, hoist bool) SymbolHandle {
	name := node.Name()
	bodyScope := b.buildParamScope(source, scope, node.Params())

	var fnSym SymbolHandle
	fn := Fn{Name: name, Scope: bodyScope}
	fnSym = b.hir.NewSymbol(source, scope, export, fn)
	if s, ok := b.hir.Scope(bodyScope); ok {
		s.Parent = ParentSymbol(fnSym)
	}

	if body := node.Body(); body != nil {
		for _, stmt := range body.Children() {
			b.buildStatement(source, bodyScope, stmt, false)
		}
	}

	if s, ok := b.hir.Scope(scope); ok {
		if hoist {
			s.Hoist(fnSym)
		} else {
			s.AddSymbol(fnSym)
		}
	}
	return fnSym
}

// buildParamScope creates a scope populated with one Decl(IsParam) symbol
// per parameter in paramList (a PARAM_LIST or CLOSURE_PARAM_LIST node, may
// be nil).
func (b *Builder) buildParamScope(source SourceHandle, parent ScopeHandle, paramList *syntax.SyntaxNode) ScopeHandle {
	scope := b.hir.NewScope(source, ParentScope(parent))
	if paramList == nil {
		return scope
	}
	for _, p := range paramList.Children() {
		if p.Kind() != syntax.PARAM {
			continue
		}
		name := p.Name()
		typ := b.hir.BuiltinType(TypeUnknown)
		if t := p.TypeAnn(); t != nil {
			typ = b.resolveTypeRef(t)
		}
		decl := Decl{Name: name, IsParam: true, Type: typ}
		sym := b.hir.NewSymbol(source, scope, false, decl)
		if s, ok := b.hir.Scope(scope); ok {
			s.AddSymbol(sym)
		}
	}
	return scope
}

func (b *Builder) resolveTypeRef(node *syntax.SyntaxNode) TypeHandle {
	toks := node.Tokens()
	var parts []string
	for _, t := range toks {
		if t.Kind == syntax.IDENT {
			parts = append(parts, t.Text)
		}
	}
	name := strings.Join(parts, "::")
	switch name {
	case "int", "i64":
		return b.hir.BuiltinType(TypeInt)
	case "float", "f64":
		return b.hir.BuiltinType(TypeFloat)
	case "bool":
		return b.hir.BuiltinType(TypeBool)
	case "char":
		return b.hir.BuiltinType(TypeChar)
	case "string":
		return b.hir.BuiltinType(TypeString)
	case "timestamp":
		return b.hir.BuiltinType(TypeTimestamp)
	case "":
		return b.hir.BuiltinType(TypeUnknown)
	default:
		return b.hir.NewUserType(name)
	}
}

// buildExpr lowers an expression subtree into zero or more symbols,
// returning the handle of the symbol most directly representing this
// node's value (used by callers like let-initializers that want to record
// a Decl.Value reference), or the zero handle when the node has no
// corresponding symbol (e.g. a bare paren wrapper).
func (b *Builder) buildExpr(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) SymbolHandle {
	if node == nil {
		return SymbolHandle{}
	}
	switch node.Kind() {
	case syntax.EXPR_LIT:
		return b.addSymbol(source, scope, Lit{Text: lastTokenText(node), Type: b.hir.BuiltinType(TypeUnknown)})
	case syntax.EXPR_IDENT:
		name := node.Name()
		return b.addSymbol(source, scope, Reference{Name: name})
	case syntax.EXPR_PAREN:
		for _, c := range node.Children() {
			return b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	case syntax.EXPR_UNARY, syntax.EXPR_BINARY, syntax.EXPR_ASSIGN:
		for _, c := range node.Children() {
			b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	case syntax.EXPR_ACCESS:
		if lhs := node.LHS(); lhs != nil {
			b.buildExpr(source, scope, lhs)
		}
		return b.addSymbol(source, scope, Reference{Name: node.Name(), FieldAccess: true})
	case syntax.EXPR_PATH:
		var segs []string
		for _, t := range node.Tokens() {
			if t.Kind == syntax.IDENT {
				segs = append(segs, t.Text)
			}
		}
		return b.addSymbol(source, scope, Path{Segments: segs})
	case syntax.EXPR_CALL:
		if callee := node.Callee(); callee != nil {
			b.buildExpr(source, scope, callee)
		}
		if args := node.Args(); args != nil {
			for _, a := range args.Children() {
				b.buildExpr(source, scope, a)
			}
		}
		return SymbolHandle{}
	case syntax.EXPR_INDEX:
		for _, c := range node.Children() {
			b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	case syntax.EXPR_ARRAY, syntax.EXPR_OBJECT:
		for _, c := range node.Children() {
			b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	case syntax.OBJECT_FIELD:
		if v := node.SoleExprChild(); v != nil {
			b.buildExpr(source, scope, v)
		}
		return SymbolHandle{}
	case syntax.EXPR_CLOSURE:
		bodyScope := b.buildParamScope(source, scope, node.Params())
		if body := node.Body(); body != nil {
			b.buildExpr(source, bodyScope, body)
		}
		return b.addSymbol(source, scope, Block{Scope: bodyScope})
	case syntax.BLOCK:
		blockScope := b.hir.NewScope(source, ParentScope(scope))
		b.hoistFnDecls(source, blockScope, node.Children())
		for _, stmt := range node.Children() {
			b.buildStatement(source, blockScope, stmt, false)
		}
		return b.addSymbol(source, scope, Block{Scope: blockScope})
	case syntax.EXPR_IF:
		return b.buildIf(source, scope, node)
	case syntax.EXPR_WHILE:
		return b.buildLoop(source, scope, node, LoopWhile)
	case syntax.EXPR_LOOP:
		return b.buildLoop(source, scope, node, LoopLoop)
	case syntax.EXPR_DO:
		return b.buildLoop(source, scope, node, LoopDo)
	case syntax.EXPR_FOR:
		return b.buildForLoop(source, scope, node)
	case syntax.EXPR_SWITCH:
		return b.buildSwitch(source, scope, node)
	case syntax.EXPR_RETURN, syntax.EXPR_THROW:
		for _, c := range node.Children() {
			b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	case syntax.EXPR_BREAK, syntax.EXPR_CONTINUE:
		return SymbolHandle{}
	case syntax.EXPR_TRY:
		if body := node.Body(); body != nil {
			b.buildExpr(source, scope, body)
		}
		if handler := node.Else(); handler != nil {
			b.buildExpr(source, scope, handler)
		}
		return SymbolHandle{}
	case syntax.EXPR_IMPORT:
		return b.buildImport(source, scope, node, false)
	default:
		for _, c := range node.Children() {
			b.buildExpr(source, scope, c)
		}
		return SymbolHandle{}
	}
}

func (b *Builder) buildIf(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) SymbolHandle {
	if cond := node.Condition(); cond != nil {
		b.buildExpr(source, scope, cond)
	} else if children := node.Children(); len(children) > 0 {
		b.buildExpr(source, scope, children[0])
	}
	thenScope := scope
	if then := node.Then(); then != nil {
		thenHandle := b.buildExpr(source, scope, then)
		if sym, ok := b.hir.symbols.get(thenHandle.index, thenHandle.generation); ok {
			if blk, ok := sym.Kind.(Block); ok {
				thenScope = blk.Scope
			}
		}
	}
	var elseScope *ScopeHandle
	if els := node.Else(); els != nil {
		// A chained "else if" lowers to its own If symbol rather than a
		// Block, so elseScope stays nil here; that nested If symbol carries
		// its own then/else scopes.
		elseHandle := b.buildExpr(source, scope, els)
		if sym, ok := b.hir.symbols.get(elseHandle.index, elseHandle.generation); ok {
			if blk, ok := sym.Kind.(Block); ok {
				elseScope = &blk.Scope
			}
		}
	}
	return b.addSymbol(source, scope, If{ThenScope: thenScope, ElseScope: elseScope})
}

func (b *Builder) buildLoop(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode, kind LoopKind) SymbolHandle {
	children := node.Children()
	var bodyScope ScopeHandle
	for _, c := range children {
		if c.Kind() == syntax.BLOCK {
			h := b.buildExpr(source, scope, c)
			if sym, ok := b.hir.symbols.get(h.index, h.generation); ok {
				if blk, ok := sym.Kind.(Block); ok {
					bodyScope = blk.Scope
				}
			}
		} else {
			b.buildExpr(source, scope, c)
		}
	}
	return b.addSymbol(source, scope, Loop{Kind: kind, Scope: bodyScope})
}

func (b *Builder) buildForLoop(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) SymbolHandle {
	body := node.Body()
	for _, c := range node.Children() {
		if c == body {
			continue
		}
		b.buildExpr(source, scope, c)
	}
	loopScope := b.hir.NewScope(source, ParentScope(scope))
	var loopVar *SymbolHandle
	if name := node.Name(); name != "" {
		decl := Decl{Name: name, IsParam: true, Type: b.hir.BuiltinType(TypeUnknown)}
		sym := b.hir.NewSymbol(source, loopScope, false, decl)
		loopVar = &sym
		if s, ok := b.hir.Scope(loopScope); ok {
			s.AddSymbol(sym)
		}
	}
	if body := node.Body(); body != nil {
		b.hoistFnDecls(source, loopScope, body.Children())
		for _, stmt := range body.Children() {
			b.buildStatement(source, loopScope, stmt, false)
		}
	}
	return b.addSymbol(source, scope, Loop{Kind: LoopFor, Scope: loopScope, LoopVar: loopVar})
}

func (b *Builder) buildSwitch(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) SymbolHandle {
	children := node.Children()
	if len(children) > 0 {
		b.buildExpr(source, scope, children[0])
	}
	switchScope := b.hir.NewScope(source, ParentScope(scope))
	for _, c := range children {
		if c.Kind() != syntax.SWITCH_ARM_LIST {
			continue
		}
		for _, arm := range c.Children() {
			for _, e := range arm.Children() {
				b.buildExpr(source, switchScope, e)
			}
		}
	}
	return b.addSymbol(source, scope, Switch{Scope: switchScope})
}

func (b *Builder) addSymbol(source SourceHandle, scope ScopeHandle, kind SymbolKind) SymbolHandle {
	sym := b.hir.NewSymbol(source, scope, false, kind)
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
	return sym
}

// --- definition-file items (spec §4.3: "All symbols produced by a
// definition file have export = true.") ---

func (b *Builder) buildDefItem(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	switch node.Kind() {
	case syntax.DEF_IMPORT:
		b.buildDefImport(source, scope, node)
	case syntax.DEF_CONST:
		b.buildDefConst(source, scope, node)
	case syntax.DEF_FN:
		b.buildDefFn(source, scope, node)
	case syntax.DEF_OP:
		b.buildDefOp(source, scope, node)
	case syntax.DEF_TYPE:
		b.buildDefType(source, scope, node)
	}
}

func (b *Builder) buildDefImport(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	importScope := b.hir.NewScope(source, ParentScope(scope))
	var alias *SymbolHandle
	if name := node.Alias(); name != "" {
		decl := Decl{Name: name, IsImport: true, Type: b.hir.BuiltinType(TypeModule)}
		h := b.hir.NewSymbol(source, importScope, true, decl)
		alias = &h
		if s, ok := b.hir.Scope(importScope); ok {
			s.AddSymbol(h)
		}
	}
	sym := b.hir.NewSymbol(source, scope, true, Import{Path: unescapeStringLiteral(node.TargetText()), Scope: importScope, Alias: alias})
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}

func (b *Builder) buildDefConst(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	name := node.Name()
	typ := b.hir.BuiltinType(TypeUnknown)
	if t := node.TypeAnn(); t != nil {
		typ = b.resolveTypeRef(t)
	}
	decl := Decl{Name: name, IsConst: true, Type: typ}
	sym := b.hir.NewSymbol(source, scope, true, decl)
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}

func (b *Builder) buildDefFn(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	name := node.Name()
	getter, setter := false, false
	for _, t := range node.Tokens() {
		switch t.Kind {
		case syntax.KW_GET:
			getter = true
		case syntax.KW_SET:
			setter = true
		}
	}
	bodyScope := b.buildParamScope(source, scope, node.Params())
	retType := b.hir.BuiltinType(TypeUnknown)
	if t := node.TypeAnn(); t != nil {
		retType = b.resolveTypeRef(t)
	}
	fn := Fn{Name: name, Scope: bodyScope, Getter: getter, Setter: setter, Type: retType}
	sym := b.hir.NewSymbol(source, scope, true, fn)
	if s, ok := b.hir.Scope(bodyScope); ok {
		s.Parent = ParentSymbol(sym)
	}
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}

// buildDefOp implements spec §4.3's operator-name extraction: the name is
// either the first identifier token after `op`, or the first punctuation
// token whose kind carries a built-in infix binding power.
func (b *Builder) buildDefOp(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	name := node.Name()
	if name == "" {
		b.log.Warn("malformed operator definition: missing operator name")
	}

	lhsType, rhsType := b.hir.BuiltinType(TypeUnknown), b.hir.BuiltinType(TypeUnknown)
	for _, c := range node.Children() {
		if c.Kind() == syntax.OP_SIGNATURE {
			types := typeRefsIn(c)
			if len(types) > 0 {
				lhsType = b.resolveTypeRef(types[0])
			}
			if len(types) > 1 {
				rhsType = b.resolveTypeRef(types[1])
			}
		}
	}

	var bp [2]uint8
	if lhs := node.LHS(); lhs != nil {
		bp[0] = parseUintLit(lastTokenText(lhs))
	}
	if rhs := node.RHS(); rhs != nil {
		bp[1] = parseUintLit(lastTokenText(rhs))
	} else {
		bp[1] = bp[0]
	}

	op := Op{Name: name, LHSType: lhsType, RHSType: rhsType, BindingPower: bp}
	sym := b.hir.NewSymbol(source, scope, true, op)
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}

func typeRefsIn(sig *syntax.SyntaxNode) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for _, c := range sig.Children() {
		if c.Kind() == syntax.EXPR_PATH {
			out = append(out, c)
		}
	}
	return out
}

func parseUintLit(text string) uint8 {
	var n uint64
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + uint64(r-'0')
		if n > 255 {
			return 255
		}
	}
	return uint8(n)
}

// lastTokenText returns the text of node's last direct token, which for a
// single-token node (EXPR_LIT) is the token itself without the leading
// trivia that node.Text() includes.
func lastTokenText(node *syntax.SyntaxNode) string {
	toks := node.Tokens()
	if len(toks) == 0 {
		return node.Text()
	}
	return toks[len(toks)-1].Text
}

// buildDefType folds a `type` alias declaration into a Decl symbol: the
// spec's SymbolKind union (§3.2) has no dedicated type-alias variant, so
// this reuses Decl the same way it represents a const — a named binding at
// module scope, just one whose Type is the interned alias target rather
// than a runtime value's type. A `type` item with no `= target` gets a user
// type named after the declaration itself.
func (b *Builder) buildDefType(source SourceHandle, scope ScopeHandle, node *syntax.SyntaxNode) {
	name := node.Name()
	typ := b.hir.NewUserType(name)
	if t := node.TypeAnn(); t != nil {
		typ = b.resolveTypeRef(t)
	}
	decl := Decl{Name: name, Type: typ}
	sym := b.hir.NewSymbol(source, scope, true, decl)
	if s, ok := b.hir.Scope(scope); ok {
		s.AddSymbol(sym)
	}
}
