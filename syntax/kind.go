package syntax

// SyntaxKind enumerates every terminal and nonterminal kind that can appear
// in a Rhai concrete syntax tree. It is a single fixed enum: the grammar
// this package parses is compiled in, so (unlike a tree-sitter runtime built
// to load arbitrary grammars at runtime) there is no need for a data-driven
// symbol table.
type SyntaxKind uint16

const (
	// ERROR is emitted by the lexer for any byte sequence it cannot match,
	// and by the parser for any token it cannot place in the grammar.
	ERROR SyntaxKind = iota
	EOF

	// --- trivia ---
	WHITESPACE
	SHEBANG
	COMMENT_LINE
	COMMENT_LINE_DOC
	COMMENT_BLOCK
	COMMENT_BLOCK_DOC

	// --- literals & identifiers ---
	IDENT
	LIT_INT
	LIT_FLOAT
	LIT_BOOL
	LIT_STRING
	LIT_CHAR

	// --- punctuation ---
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	HASH // '#' in #{ ... } object-map literals
	COMMA
	SEMICOLON
	COLON
	COLONCOLON
	DOT
	DOTDOT
	DOTDOTEQ
	ARROW // ->  (used in some fn-pointer/getter sugar)
	FAT_ARROW
	UNDERSCORE
	QUESTION

	// --- operators (punctuation; all built in per spec §4.2) ---
	EQ
	EQEQ
	NEQ
	LT
	LTE
	GT
	GTE
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POW // '**'
	AMP
	PIPE
	XOR // '^'
	BANG
	AMPAMP
	PIPEPIPE
	SHL
	SHR
	PLUSEQ
	MINUSEQ
	STAREQ
	SLASHEQ
	PERCENTEQ
	POWEQ
	ANDEQ
	OREQ
	XOREQ
	SHLEQ
	SHREQ

	// --- keywords: reserved, shared by scripts and defs ---
	KW_LET
	KW_CONST
	KW_FN
	KW_IF
	KW_ELSE
	KW_WHILE
	KW_LOOP
	KW_DO
	KW_FOR
	KW_IN
	KW_BREAK
	KW_CONTINUE
	KW_RETURN
	KW_THROW
	KW_TRY
	KW_CATCH
	KW_IMPORT
	KW_EXPORT
	KW_AS
	KW_TRUE
	KW_FALSE
	KW_SWITCH
	KW_THIS
	KW_GLOBAL
	KW_PRIVATE
	KW_NIL

	// --- keywords: active only in definition files ---
	KW_MODULE
	KW_STATIC
	KW_OP
	KW_TYPE
	KW_GET
	KW_SET

	// --- nonterminal: roots ---
	RHAI     // script file root
	RHAI_DEF // definition file root

	// --- nonterminal: items / statements ---
	LET_STMT
	EXPR_STMT
	FN_DEF
	PARAM_LIST
	PARAM
	BLOCK

	// --- nonterminal: expressions ---
	EXPR_LIT
	EXPR_IDENT
	EXPR_PAREN
	EXPR_ARRAY
	EXPR_OBJECT
	OBJECT_FIELD
	EXPR_UNARY
	EXPR_BINARY
	EXPR_ASSIGN
	EXPR_CALL
	ARG_LIST
	EXPR_INDEX
	EXPR_ACCESS
	EXPR_PATH
	PATH_SEGMENT
	EXPR_CLOSURE
	CLOSURE_PARAM_LIST
	EXPR_IF
	EXPR_WHILE
	EXPR_LOOP
	EXPR_DO
	EXPR_FOR
	EXPR_SWITCH
	SWITCH_ARM_LIST
	SWITCH_ARM
	EXPR_RETURN
	EXPR_BREAK
	EXPR_CONTINUE
	EXPR_THROW
	EXPR_TRY
	EXPR_IMPORT

	// --- nonterminal: definition items ---
	DEF_MODULE
	DEF_IMPORT
	DEF_CONST
	DEF_FN
	DEF_OP
	DEF_TYPE
	OP_SIGNATURE

	// numKinds must stay last: it sizes lookup tables.
	numKinds
)

var kindNames = map[SyntaxKind]string{
	ERROR:             "ERROR",
	EOF:               "EOF",
	WHITESPACE:        "WHITESPACE",
	SHEBANG:           "SHEBANG",
	COMMENT_LINE:      "COMMENT_LINE",
	COMMENT_LINE_DOC:  "COMMENT_LINE_DOC",
	COMMENT_BLOCK:     "COMMENT_BLOCK",
	COMMENT_BLOCK_DOC: "COMMENT_BLOCK_DOC",
	IDENT:             "IDENT",
	LIT_INT:           "LIT_INT",
	LIT_FLOAT:         "LIT_FLOAT",
	LIT_BOOL:          "LIT_BOOL",
	LIT_STRING:        "LIT_STRING",
	LIT_CHAR:          "LIT_CHAR",
	RHAI:              "RHAI",
	RHAI_DEF:          "RHAI_DEF",
}

// String returns a human-readable name for the kind, falling back to a
// numeric form for any kind not present in kindNames (punctuation and
// keyword kinds are self-explanatory from their constant names and are not
// all duplicated into the table).
func (k SyntaxKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind#" + itoa(int(k))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// keywords maps reserved identifier text to its keyword kind. Built once at
// package init from a literal list rather than derived from enum ordering —
// this is the repo's resolution of spec §9's Open Question about the
// keyword range: an explicit set, never an address/discriminant comparison.
var keywords = map[string]SyntaxKind{
	"let":      KW_LET,
	"const":    KW_CONST,
	"fn":       KW_FN,
	"if":       KW_IF,
	"else":     KW_ELSE,
	"while":    KW_WHILE,
	"loop":     KW_LOOP,
	"do":       KW_DO,
	"for":      KW_FOR,
	"in":       KW_IN,
	"break":    KW_BREAK,
	"continue": KW_CONTINUE,
	"return":   KW_RETURN,
	"throw":    KW_THROW,
	"try":      KW_TRY,
	"catch":    KW_CATCH,
	"import":   KW_IMPORT,
	"export":   KW_EXPORT,
	"as":       KW_AS,
	"true":     KW_TRUE,
	"false":    KW_FALSE,
	"switch":   KW_SWITCH,
	"this":     KW_THIS,
	"global":   KW_GLOBAL,
	"private":  KW_PRIVATE,
	"nil":      KW_NIL,
}

// defOnlyKeywords are additionally reserved only inside definition files;
// in scripts these identifiers are ordinary names.
var defOnlyKeywords = map[string]SyntaxKind{
	"module": KW_MODULE,
	"static": KW_STATIC,
	"op":     KW_OP,
	"type":   KW_TYPE,
	"get":    KW_GET,
	"set":    KW_SET,
}

// keywordKinds is the explicit, stable set of reserved-keyword SyntaxKinds,
// resolving spec §9's Open Question without relying on enum ordering.
var keywordKinds = func() map[SyntaxKind]struct{} {
	m := make(map[SyntaxKind]struct{}, len(keywords)+len(defOnlyKeywords))
	for _, k := range keywords {
		m[k] = struct{}{}
	}
	for _, k := range defOnlyKeywords {
		m[k] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether k is one of the explicit reserved-keyword kinds.
func IsKeyword(k SyntaxKind) bool {
	_, ok := keywordKinds[k]
	return ok
}

// LookupKeyword classifies an identifier's text as a keyword kind in the
// given file context. allowDefKeywords should be true only while parsing a
// definition file (§4.2's `parse_def` entry point); outside that context
// words like "module" or "get" are ordinary identifiers.
func LookupKeyword(text string, allowDefKeywords bool) (SyntaxKind, bool) {
	if k, ok := keywords[text]; ok {
		return k, true
	}
	if allowDefKeywords {
		if k, ok := defOnlyKeywords[text]; ok {
			return k, true
		}
	}
	return 0, false
}

// infixBuiltins maps punctuation operator kinds to their built-in binding
// power, per spec §4.2 ("all punctuation operators are built in"). Higher
// numbers bind tighter. Every entry has left < right, which the parser
// treats as left-associative: it only climbs into a right operand for an
// operator whose left power exceeds the current right power. Assignment is
// not in this table; see assignmentKinds.
var infixBuiltins = map[SyntaxKind][2]uint8{
	PIPEPIPE: {10, 11},
	AMPAMP:   {20, 21},
	PIPE:     {30, 31},
	XOR:      {35, 36},
	AMP:      {40, 41},
	EQEQ:     {50, 51},
	NEQ:      {50, 51},
	LT:       {60, 61},
	LTE:      {60, 61},
	GT:       {60, 61},
	GTE:      {60, 61},
	DOTDOT:   {65, 66},
	DOTDOTEQ: {65, 66},
	SHL:      {70, 71},
	SHR:      {70, 71},
	PLUS:     {80, 81},
	MINUS:    {80, 81},
	STAR:     {90, 91},
	SLASH:    {90, 91},
	PERCENT:  {90, 91},
	POW:      {100, 101},
}

// assignmentKinds are right-associative assignment operators, handled by a
// dedicated low-precedence production rather than the generic infix table.
var assignmentKinds = map[SyntaxKind]struct{}{
	EQ:        {},
	PLUSEQ:    {},
	MINUSEQ:   {},
	STAREQ:    {},
	SLASHEQ:   {},
	PERCENTEQ: {},
	POWEQ:     {},
	ANDEQ:     {},
	OREQ:      {},
	XOREQ:     {},
	SHLEQ:     {},
	SHREQ:     {},
}
