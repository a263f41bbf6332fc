package syntax

import "fmt"

// Parser is a recursive-descent, Pratt-style expression parser for Rhai
// scripts and definition files, configured with a custom operator table
// (spec §4.2). It never panics and always produces a tree covering the
// entire input, recording errors on the side instead of aborting.
//
// Grounded on gotreesitter/parser.go's overall shape (a Parser holding
// static configuration, a stack-based tree under construction, and a
// well-known error-symbol wrapping on failed lookahead), generalized from
// LR shift/reduce over a generated table to recursive descent + Pratt
// binding powers, because the operator table here is a runtime input to
// expression parsing rather than something an LR generator can bake in.
type Parser struct {
	lex    *Lexer
	ops    *OperatorTable
	isDef  bool
	b      *treeBuilder
	lookahead     Token
	pendingTrivia []Token
}

// NewParser creates a Parser configured with the given custom operator
// table (may be nil for none).
func NewParser(ops *OperatorTable) *Parser {
	if ops == nil {
		ops = NewOperatorTable(nil)
	}
	return &Parser{ops: ops}
}

// ParseScript parses source as a script file (spec §4.2's parse_script
// entry point): ordinary statements and function declarations at top level.
func (p *Parser) ParseScript(source []byte) *Parse {
	return p.run(source, false)
}

// ParseDef parses source as a definition file (spec §4.2's parse_def entry
// point): `def module`, `def fn`/`def op` signatures, `const`, `import`,
// and `type` items at top level.
func (p *Parser) ParseDef(source []byte) *Parse {
	return p.run(source, true)
}

func (p *Parser) run(source []byte, isDef bool) *Parse {
	p.lex = NewLexer(source)
	p.isDef = isDef
	p.b = newTreeBuilder()
	p.pendingTrivia = nil
	p.fill()

	if isDef {
		p.parseDefFile()
	} else {
		p.parseScriptFile()
	}

	p.flushTrivia()
	green := p.b.finishNode(fieldNone)

	return &Parse{
		Tree:   &Tree{green: green, source: source},
		Errors: p.b.errors,
		IsDef:  isDef,
	}
}

// fill advances the lookahead to the next significant (non-trivia) token,
// buffering any trivia encountered along the way so it can be attached to
// whichever node is open when the lookahead is eventually bumped. The lexer
// emits every word as IDENT; fill reclassifies keyword text into its keyword
// kind via LookupKeyword (definition-only keywords only in a definition file).
func (p *Parser) fill() {
	for {
		tok := p.lex.Next()
		if tok.Kind == WHITESPACE || tok.IsComment() || tok.Kind == SHEBANG {
			p.pendingTrivia = append(p.pendingTrivia, tok)
			continue
		}
		if tok.Kind == IDENT {
			if k, ok := LookupKeyword(tok.Text, p.isDef); ok {
				tok.Kind = k
			}
		}
		p.lookahead = tok
		return
	}
}

func (p *Parser) flushTrivia() {
	for _, t := range p.pendingTrivia {
		p.b.token(t, fieldNone)
	}
	p.pendingTrivia = nil
}

func (p *Parser) peek() SyntaxKind { return p.lookahead.Kind }

func (p *Parser) at(k SyntaxKind) bool { return p.lookahead.Kind == k }

func (p *Parser) atEOF() bool { return p.lookahead.Kind == EOF }

// bump consumes the lookahead token, attaching it (after its leading
// trivia) to the currently open node under the given field tag, and
// refills the lookahead.
func (p *Parser) bump(field fieldTag) Token {
	p.flushTrivia()
	tok := p.lookahead
	p.b.token(tok, field)
	p.fill()
	return tok
}

// expect bumps the lookahead if it matches kind; otherwise records an error
// and leaves a missing-child marker without consuming anything, so callers
// can keep making progress (spec §9: the tree always has a slot even when
// a required token is absent).
func (p *Parser) expect(kind SyntaxKind, field fieldTag) bool {
	if p.at(kind) {
		p.bump(field)
		return true
	}
	p.errorf("expected %s, found %s", kind, p.lookahead.Kind)
	p.b.missing(field)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.b.error(ParseError{
		Span:    p.lookahead.Range.Span,
		Message: fmt.Sprintf(format, args...),
	})
}

// topLevelResyncKinds are the statement/item starters recovery resynchronizes
// to, per spec §4.2 ("matching closer, or top-level keyword").
var topLevelResyncKinds = map[SyntaxKind]struct{}{
	KW_FN: {}, KW_LET: {}, KW_CONST: {}, KW_IMPORT: {}, KW_EXPORT: {},
	KW_IF: {}, KW_WHILE: {}, KW_LOOP: {}, KW_FOR: {}, KW_RETURN: {},
	KW_MODULE: {}, KW_OP: {}, KW_TYPE: {}, RBRACE: {}, EOF: {},
}

// resync consumes tokens as an error node until it reaches a statement
// terminator, a recognized resync point, or EOF, so the tree still covers
// the whole input after a syntax error (spec §4.2).
func (p *Parser) resync() {
	p.b.startNode(ERROR)
	for {
		if p.at(SEMICOLON) {
			p.bump(fieldNone)
			break
		}
		if _, ok := topLevelResyncKinds[p.peek()]; ok {
			break
		}
		if p.atEOF() {
			break
		}
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

// --- script file grammar ---

func (p *Parser) parseScriptFile() {
	p.b.startNode(RHAI)
	for !p.atEOF() {
		p.parseStatement()
	}
}

func (p *Parser) parseStatement() {
	switch p.peek() {
	case KW_LET:
		p.parseLetStmt()
	case KW_CONST:
		p.parseLetStmt()
	case KW_FN:
		p.parseFnDef()
	case KW_IMPORT:
		p.parseImportStmt()
	case SEMICOLON:
		p.bump(fieldNone)
	default:
		p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() {
	p.b.startNode(LET_STMT)
	p.bump(fieldNone) // 'let' or 'const'
	p.expect(IDENT, fieldName)
	if p.at(EQ) {
		p.bump(fieldOperator)
		p.parseExpr(0)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	} else if !p.at(RBRACE) && !p.atEOF() {
		p.errorf("expected ';' after let statement, found %s", p.peek())
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseImportStmt() {
	p.b.startNode(EXPR_IMPORT)
	p.bump(fieldNone) // 'import'
	p.parseExpr(0)
	if p.at(KW_AS) {
		p.bump(fieldNone)
		p.expect(IDENT, fieldAlias)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseExprStmt() {
	p.b.startNode(EXPR_STMT)
	if !p.canStartExpr() {
		p.errorf("unexpected token %s", p.peek())
		p.b.finishNode(fieldNone)
		p.resync()
		return
	}
	p.parseExpr(0)
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) canStartExpr() bool {
	switch p.peek() {
	case ERROR, RBRACE, EOF:
		return false
	default:
		return true
	}
}

// parseFnDef parses a script-level `fn` item: name, parameter list and body
// block. Definition-file `fn` signatures are parsed by parseDefFn instead.
func (p *Parser) parseFnDef() {
	p.b.startNode(FN_DEF)
	p.bump(fieldNone) // 'fn'
	p.expect(IDENT, fieldName)
	p.parseParamList()
	if p.at(LBRACE) {
		p.parseBlock(fieldBody)
	} else {
		p.errorf("expected function body")
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseParamList() {
	p.b.startNode(PARAM_LIST)
	p.expect(LPAREN, fieldNone)
	for !p.at(RPAREN) && !p.atEOF() {
		p.b.startNode(PARAM)
		p.expect(IDENT, fieldName)
		p.b.finishNode(fieldParams)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RPAREN, fieldNone)
	p.b.finishNode(fieldParams)
}

func (p *Parser) parseBlock(field fieldTag) {
	p.b.startNode(BLOCK)
	p.expect(LBRACE, fieldNone)
	for !p.at(RBRACE) && !p.atEOF() {
		before := p.lookahead
		p.parseStatement()
		if p.lookahead.Range.Span == before.Range.Span && p.lookahead.Kind == before.Kind {
			// No progress was made (malformed token inside a block); force
			// advance to avoid an infinite loop, still inside an error node.
			p.resync()
		}
	}
	p.expect(RBRACE, fieldNone)
	p.b.finishNode(field)
}

// --- expression grammar (Pratt) ---

func (p *Parser) parseExpr(minBP uint8) {
	p.parseUnary()
	for {
		bp, name, ok := p.currentInfixBP()
		if !ok || bp.Left() < minBP {
			break
		}
		p.b.startNode(EXPR_BINARY)
		// Re-open: the already-parsed LHS needs to become this node's first
		// child. Since the builder is a simple stack, we instead restructure
		// by wrapping: finish is handled via wrapBinaryRHS below.
		_ = name
		p.wrapBinaryRHS(bp)
	}
	if _, ok := assignmentKinds[p.peek()]; ok {
		// Assignment binds looser than every infix operator and is
		// right-associative: the RHS is a whole expression of its own.
		p.b.startNode(EXPR_ASSIGN)
		p.liftLastChildInto()
		p.bump(fieldOperator)
		p.parseExpr(0)
		top := len(p.b.stack) - 1
		p.b.stack[top].children[len(p.b.stack[top].children)-1].field = fieldRHS
		p.b.finishNode(fieldNone)
	}
}

// wrapBinaryRHS is called right after opening an EXPR_BINARY frame with the
// operator as lookahead; it consumes the operator then the RHS, climbing
// past any higher-binding operators per standard Pratt climbing, and
// finishes the node. The LHS was already emitted as the prior sibling in
// the enclosing frame before this binary node was opened; wrapBinaryRHS
// folds it in as this node's first child with liftLastChildInto, and tags
// the right operand as the RHS field.
func (p *Parser) wrapBinaryRHS(bp BindingPower) {
	p.liftLastChildInto()
	p.bump(fieldOperator)
	p.parseUnary()
	for {
		nbp, _, ok := p.currentInfixBP()
		if !ok || nbp.Left() <= bp.Right() {
			break
		}
		p.b.startNode(EXPR_BINARY)
		p.wrapBinaryRHS(nbp)
	}
	top := len(p.b.stack) - 1
	p.b.stack[top].children[len(p.b.stack[top].children)-1].field = fieldRHS
	p.b.finishNode(fieldNone)
}

// liftLastChildInto moves the most recently finished child of the
// enclosing frame into the frame just opened on top of the stack, so a
// freshly started EXPR_BINARY node can adopt the previously parsed LHS as
// its own first child (fieldLHS).
func (p *Parser) liftLastChildInto() {
	top := len(p.b.stack) - 1
	parent := top - 1
	n := len(p.b.stack[parent].children)
	last := p.b.stack[parent].children[n-1]
	p.b.stack[parent].children = p.b.stack[parent].children[:n-1]
	last.field = fieldLHS
	p.b.stack[top].children = append(p.b.stack[top].children, last)
}

// currentInfixBP returns the binding power of the lookahead as an infix
// operator: either a built-in punctuation operator, or (if the lookahead
// is an identifier) a custom operator registered in the parser's table
// (spec §4.2/§6.1 — "a name valid as an identifier may be used as a custom
// infix operator").
func (p *Parser) currentInfixBP() (BindingPower, string, bool) {
	if bp, ok := builtinBindingPower(p.peek()); ok {
		return bp, p.lookahead.Text, true
	}
	if p.peek() == IDENT {
		if bp, ok := p.ops.Lookup(p.lookahead.Text); ok {
			return bp, p.lookahead.Text, true
		}
	}
	return BindingPower{}, "", false
}

func (p *Parser) parseUnary() {
	switch p.peek() {
	case MINUS, BANG, PLUS:
		p.b.startNode(EXPR_UNARY)
		p.bump(fieldOperator)
		p.parseUnary()
		p.b.finishNode(fieldNone)
	default:
		p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() {
	p.parsePrimary()
	for {
		switch p.peek() {
		case DOT:
			p.wrapPostfix(EXPR_ACCESS, func() {
				p.bump(fieldNone)
				p.expect(IDENT, fieldName)
			})
		case COLONCOLON:
			p.wrapPostfix(EXPR_PATH, func() {
				p.bump(fieldNone)
				p.expect(IDENT, fieldName)
			})
		case LPAREN:
			p.wrapPostfix(EXPR_CALL, func() {
				top := len(p.b.stack) - 1
				p.b.stack[top].children[0].field = fieldCallee
				p.parseArgList()
			})
		case LBRACKET:
			p.wrapPostfix(EXPR_INDEX, func() {
				p.bump(fieldNone)
				p.parseExpr(0)
				p.expect(RBRACKET, fieldNone)
			})
		default:
			return
		}
	}
}

func (p *Parser) wrapPostfix(kind SyntaxKind, body func()) {
	p.b.startNode(kind)
	p.liftLastChildInto()
	body()
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseArgList() {
	p.b.startNode(ARG_LIST)
	p.expect(LPAREN, fieldNone)
	for !p.at(RPAREN) && !p.atEOF() {
		p.parseExpr(0)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RPAREN, fieldNone)
	p.b.finishNode(fieldArgs)
}

func (p *Parser) parsePrimary() {
	switch p.peek() {
	case LIT_INT, LIT_FLOAT, LIT_STRING, LIT_CHAR, KW_TRUE, KW_FALSE, KW_NIL:
		p.b.startNode(EXPR_LIT)
		p.bump(fieldNone)
		p.b.finishNode(fieldNone)
	case IDENT, KW_THIS, KW_GLOBAL:
		p.b.startNode(EXPR_IDENT)
		p.bump(fieldName)
		p.b.finishNode(fieldNone)
	case LPAREN:
		p.b.startNode(EXPR_PAREN)
		p.bump(fieldNone)
		p.parseExpr(0)
		p.expect(RPAREN, fieldNone)
		p.b.finishNode(fieldNone)
	case LBRACKET:
		p.parseArrayLit()
	case HASH:
		p.parseObjectLit()
	case PIPE:
		p.parseClosure()
	case LBRACE:
		p.parseBlock(fieldNone)
	case KW_IF:
		p.parseIf(fieldNone)
	case KW_WHILE:
		p.parseWhile()
	case KW_LOOP:
		p.parseLoop()
	case KW_DO:
		p.parseDoWhile()
	case KW_FOR:
		p.parseFor()
	case KW_SWITCH:
		p.parseSwitch()
	case KW_RETURN:
		p.parseJump(EXPR_RETURN)
	case KW_BREAK:
		p.parseJump(EXPR_BREAK)
	case KW_CONTINUE:
		p.b.startNode(EXPR_CONTINUE)
		p.bump(fieldNone)
		p.b.finishNode(fieldNone)
	case KW_THROW:
		p.parseJump(EXPR_THROW)
	case KW_TRY:
		p.parseTry()
	case KW_IMPORT:
		p.parseImportExpr()
	default:
		p.errorf("expected expression, found %s", p.peek())
		p.b.startNode(ERROR)
		if !p.atEOF() {
			p.bump(fieldNone)
		}
		p.b.finishNode(fieldNone)
	}
}

func (p *Parser) parseArrayLit() {
	p.b.startNode(EXPR_ARRAY)
	p.bump(fieldNone) // '['
	for !p.at(RBRACKET) && !p.atEOF() {
		p.parseExpr(0)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RBRACKET, fieldNone)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseObjectLit() {
	p.b.startNode(EXPR_OBJECT)
	p.bump(fieldNone) // '#'
	p.expect(LBRACE, fieldNone)
	for !p.at(RBRACE) && !p.atEOF() {
		p.b.startNode(OBJECT_FIELD)
		if p.at(IDENT) || p.at(LIT_STRING) {
			p.bump(fieldName)
		} else {
			p.errorf("expected field name, found %s", p.peek())
		}
		p.expect(COLON, fieldNone)
		p.parseExpr(0)
		p.b.finishNode(fieldNone)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RBRACE, fieldNone)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseClosure() {
	p.b.startNode(EXPR_CLOSURE)
	p.b.startNode(CLOSURE_PARAM_LIST)
	p.bump(fieldNone) // '|'
	for !p.at(PIPE) && !p.atEOF() {
		p.b.startNode(PARAM)
		p.expect(IDENT, fieldName)
		p.b.finishNode(fieldParams)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(PIPE, fieldNone)
	p.b.finishNode(fieldParams)
	p.parseExpr(0)
	p.b.finishNode(fieldBody)
}

// parseIf parses an if-expression, attaching the finished EXPR_IF node to
// its parent frame under field. A nested "else if" recurses with
// field=fieldElse so node.Else() on the outer EXPR_IF finds it; any other
// caller (if-as-primary-expression) passes fieldNone.
func (p *Parser) parseIf(field fieldTag) {
	p.b.startNode(EXPR_IF)
	p.bump(fieldNone) // 'if'
	p.parseExpr(0)
	p.parseBlock(fieldThen)
	if p.at(KW_ELSE) {
		p.bump(fieldNone)
		if p.at(KW_IF) {
			p.parseIf(fieldElse)
		} else {
			p.parseBlock(fieldElse)
		}
	}
	p.b.finishNode(field)
}

func (p *Parser) parseWhile() {
	p.b.startNode(EXPR_WHILE)
	p.bump(fieldNone)
	p.parseExpr(0)
	p.parseBlock(fieldBody)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseLoop() {
	p.b.startNode(EXPR_LOOP)
	p.bump(fieldNone)
	p.parseBlock(fieldBody)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseDoWhile() {
	p.b.startNode(EXPR_DO)
	p.bump(fieldNone)
	p.parseBlock(fieldBody)
	if p.at(KW_WHILE) {
		p.bump(fieldNone)
		p.parseExpr(0)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseFor() {
	p.b.startNode(EXPR_FOR)
	p.bump(fieldNone)
	p.expect(IDENT, fieldName)
	p.expect(KW_IN, fieldNone)
	p.parseExpr(0)
	p.parseBlock(fieldBody)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseSwitch() {
	p.b.startNode(EXPR_SWITCH)
	p.bump(fieldNone)
	p.parseExpr(0)
	p.b.startNode(SWITCH_ARM_LIST)
	p.expect(LBRACE, fieldNone)
	for !p.at(RBRACE) && !p.atEOF() {
		p.b.startNode(SWITCH_ARM)
		if p.at(UNDERSCORE) {
			p.bump(fieldNone)
		} else {
			p.parseExpr(0)
		}
		p.expect(FAT_ARROW, fieldNone)
		p.parseExpr(0)
		p.b.finishNode(fieldNone)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RBRACE, fieldNone)
	p.b.finishNode(fieldNone)
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseJump(kind SyntaxKind) {
	p.b.startNode(kind)
	p.bump(fieldNone)
	if p.canStartExpr() && !p.at(SEMICOLON) {
		p.parseExpr(0)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseTry() {
	p.b.startNode(EXPR_TRY)
	p.bump(fieldNone)
	p.parseBlock(fieldBody)
	if p.at(KW_CATCH) {
		p.bump(fieldNone)
		if p.at(LPAREN) {
			p.bump(fieldNone)
			p.expect(IDENT, fieldName)
			p.expect(RPAREN, fieldNone)
		}
		p.parseBlock(fieldElse)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseImportExpr() {
	p.b.startNode(EXPR_IMPORT)
	p.bump(fieldNone)
	p.parseExpr(0)
	if p.at(KW_AS) {
		p.bump(fieldNone)
		p.expect(IDENT, fieldAlias)
	}
	p.b.finishNode(fieldNone)
}

// --- definition file grammar ---

func (p *Parser) parseDefFile() {
	p.b.startNode(RHAI_DEF)
	if p.at(KW_MODULE) {
		p.parseModuleHeader()
	}
	for !p.atEOF() {
		p.parseDefItem()
	}
}

func (p *Parser) parseModuleHeader() {
	p.b.startNode(DEF_MODULE)
	p.bump(fieldNone) // 'module'
	switch p.peek() {
	case KW_STATIC:
		p.bump(fieldNone)
	case LIT_STRING:
		p.bump(fieldValue)
	case IDENT:
		p.bump(fieldValue)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseDefItem() {
	switch p.peek() {
	case KW_IMPORT:
		p.parseDefImport()
	case KW_CONST:
		p.parseDefConst()
	case KW_FN:
		p.parseDefFn()
	case KW_OP:
		p.parseDefOp()
	case KW_TYPE:
		p.parseDefType()
	case SEMICOLON:
		p.bump(fieldNone)
	default:
		p.errorf("expected a definition item, found %s", p.peek())
		p.resync()
	}
}

func (p *Parser) parseDefImport() {
	p.b.startNode(DEF_IMPORT)
	p.bump(fieldNone)
	p.expect(LIT_STRING, fieldTarget)
	if p.at(KW_AS) {
		p.bump(fieldNone)
		p.expect(IDENT, fieldAlias)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseDefConst() {
	p.b.startNode(DEF_CONST)
	p.bump(fieldNone)
	p.expect(IDENT, fieldName)
	if p.at(COLON) {
		p.bump(fieldNone)
		p.parseTypeRef()
	}
	if p.at(EQ) {
		p.bump(fieldOperator)
		p.parseExpr(0)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

// parseDefFn parses a `def fn` signature: name, getter/setter keyword, a
// parameter list (names only, with optional type annotations), and an
// optional return type — no body, per spec §1 (definition files declare a
// module's public surface "without executable bodies").
func (p *Parser) parseDefFn() {
	p.b.startNode(DEF_FN)
	p.bump(fieldNone) // 'fn'
	if p.at(KW_GET) || p.at(KW_SET) {
		p.bump(fieldNone)
	}
	p.expect(IDENT, fieldName)
	p.parseTypedParamList()
	if p.at(ARROW) {
		p.bump(fieldNone)
		p.parseTypeRef()
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

func (p *Parser) parseTypedParamList() {
	p.b.startNode(PARAM_LIST)
	p.expect(LPAREN, fieldNone)
	for !p.at(RPAREN) && !p.atEOF() {
		p.b.startNode(PARAM)
		p.expect(IDENT, fieldName)
		if p.at(COLON) {
			p.bump(fieldNone)
			p.parseTypeRef()
		}
		p.b.finishNode(fieldParams)
		if p.at(COMMA) {
			p.bump(fieldNone)
			continue
		}
		break
	}
	p.expect(RPAREN, fieldNone)
	p.b.finishNode(fieldParams)
}

// parseDefOp parses an operator definition per spec §4.3: the operator
// name is either the first identifier after 'op', or the first punctuation
// token with a built-in infix binding power; followed by optional
// lhs/rhs type annotations and an explicit binding-power pair.
func (p *Parser) parseDefOp() {
	p.b.startNode(DEF_OP)
	p.bump(fieldNone) // 'op'
	if p.at(IDENT) || builtinHasBindingPower(p.peek()) {
		p.bump(fieldName)
	} else {
		p.errorf("expected an operator name, found %s", p.peek())
	}
	if p.at(LPAREN) {
		p.b.startNode(OP_SIGNATURE)
		p.bump(fieldNone)
		if !p.at(RPAREN) {
			p.expect(IDENT, fieldNone)
			if p.at(COLON) {
				p.bump(fieldNone)
				p.parseTypeRef()
			}
		}
		if p.at(COMMA) {
			p.bump(fieldNone)
			p.expect(IDENT, fieldNone)
			if p.at(COLON) {
				p.bump(fieldNone)
				p.parseTypeRef()
			}
		}
		p.expect(RPAREN, fieldNone)
		p.b.finishNode(fieldNone)
	}
	if p.at(EQ) {
		p.bump(fieldOperator)
		p.expect(LPAREN, fieldNone)
		p.parseBindingPowerLit(fieldLHS)
		if p.at(COMMA) {
			p.bump(fieldNone)
			p.parseBindingPowerLit(fieldRHS)
		}
		p.expect(RPAREN, fieldNone)
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

// parseBindingPowerLit wraps an explicit binding-power literal in an
// EXPR_LIT node under field, so it is reachable as a typed node child
// (rather than a bare field-tagged token, which the red tree's ChildByField
// does not surface) by anything walking the tree outside this package.
func (p *Parser) parseBindingPowerLit(field fieldTag) {
	p.b.startNode(EXPR_LIT)
	p.expect(LIT_INT, fieldNone)
	p.b.finishNode(field)
}

func builtinHasBindingPower(k SyntaxKind) bool {
	_, ok := infixBuiltins[k]
	return ok
}

func (p *Parser) parseDefType() {
	p.b.startNode(DEF_TYPE)
	p.bump(fieldNone)
	p.expect(IDENT, fieldName)
	if p.at(EQ) {
		p.bump(fieldOperator)
		p.parseTypeRef()
	}
	if p.at(SEMICOLON) {
		p.bump(fieldNone)
	}
	p.b.finishNode(fieldNone)
}

// parseTypeRef consumes a (possibly path-qualified) type name.
func (p *Parser) parseTypeRef() {
	p.b.startNode(EXPR_PATH)
	p.expect(IDENT, fieldType)
	for p.at(COLONCOLON) {
		p.bump(fieldNone)
		p.expect(IDENT, fieldType)
	}
	p.b.finishNode(fieldType)
}
