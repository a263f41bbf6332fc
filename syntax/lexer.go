package syntax

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes Rhai source text with an explicit longest-match-with-
// priority scanner, per spec §4.1. Grounded on gotreesitter/lexer.go's
// Lexer shape (byte position + row/column tracking, one-token pushback via
// Peek), generalized from a table-driven DFA walk (built to run against
// data tables generated for arbitrary tree-sitter grammars) to a
// hand-written scan function per token family, since this package compiles
// in one fixed grammar and the spec calls for explicit numeric priorities
// on ambiguous prefixes (LIT_INT beats LIT_FLOAT) that a generic DFA walk
// does not surface as first-class data.
type Lexer struct {
	src    []byte
	pos    int
	row    uint32
	col    uint32
	peeked *Token
}

// NewLexer creates a Lexer over source.
func NewLexer(source []byte) *Lexer {
	return &Lexer{src: source}
}

func (l *Lexer) here() Point { return Point{Row: l.row, Column: l.col} }

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) byteAt(off int) byte {
	p := l.pos + off
	if p < 0 || p >= len(l.src) {
		return 0
	}
	return l.src[p]
}

// advanceBytes consumes n raw bytes (must be valid ASCII/already-measured runes)
// and updates row/column tracking.
func (l *Lexer) advanceBytes(n int) {
	for i := 0; i < n; i++ {
		if l.pos >= len(l.src) {
			return
		}
		if l.src[l.pos] == '\n' {
			l.row++
			l.col = 0
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) advanceRune() (rune, int) {
	if l.eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.advanceBytes(size)
	return r, size
}

// Peek returns (without consuming) the next token.
func (l *Lexer) Peek() Token {
	if l.peeked == nil {
		t := l.next()
		l.peeked = &t
	}
	return *l.peeked
}

// Next consumes and returns the next token, including trivia (whitespace,
// comments, shebang) and a terminal ERROR token for any unrecognized byte.
// At end of input it returns a zero-width EOF token. Never panics: any byte
// sequence yields a finite stream whose slices concatenate back to the
// input (spec §8.1).
func (l *Lexer) Next() Token {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.next()
}

func (l *Lexer) next() Token {
	start := l.pos
	startPoint := l.here()

	if l.eof() {
		return l.emit(EOF, start, startPoint)
	}

	b := l.byteAt(0)

	switch {
	case b == ' ' || b == '\t' || b == '\r' || b == '\n':
		l.scanWhitespace()
		return l.emit(WHITESPACE, start, startPoint)
	case b == '/' && l.byteAt(1) == '/':
		kind := l.scanLineComment()
		return l.emit(kind, start, startPoint)
	case b == '/' && l.byteAt(1) == '*':
		kind := l.scanBlockComment()
		return l.emit(kind, start, startPoint)
	case b == '#' && start == 0 && l.byteAt(1) == '!':
		l.scanToLineEnd()
		return l.emit(SHEBANG, start, startPoint)
	case b == '"' || b == '`':
		l.scanString(b)
		return l.emit(LIT_STRING, start, startPoint)
	case b == '\'':
		l.scanChar()
		return l.emit(LIT_CHAR, start, startPoint)
	case isDigit(b):
		kind := l.scanNumber()
		return l.emit(kind, start, startPoint)
	case isIdentStart(rune(b)) || b >= 0x80:
		l.scanIdent()
		return l.emit(IDENT, start, startPoint)
	default:
		if kind, n := l.scanPunct(); n > 0 {
			l.advanceBytes(n)
			return l.emit(kind, start, startPoint)
		}
		// Unrecognized byte: one-character ERROR token (spec §4.1, §7).
		_, size := l.advanceRune()
		if size == 0 {
			size = 1
			l.advanceBytes(1)
		}
		return l.emit(ERROR, start, startPoint)
	}
}

func (l *Lexer) emit(kind SyntaxKind, start int, startPoint Point) Token {
	return Token{
		Kind: kind,
		Text: string(l.src[start:l.pos]),
		Range: Range{
			Span:       Span{Start: uint32(start), End: uint32(l.pos)},
			StartPoint: startPoint,
			EndPoint:   l.here(),
		},
	}
}

func (l *Lexer) scanWhitespace() {
	for !l.eof() {
		b := l.byteAt(0)
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			l.advanceBytes(1)
			continue
		}
		break
	}
}

func (l *Lexer) scanToLineEnd() {
	for !l.eof() && l.byteAt(0) != '\n' {
		l.advanceBytes(1)
	}
}

// scanLineComment consumes a '//' comment and classifies it as a doc
// comment (spec §8.3: "///x" is COMMENT_LINE_DOC) when prefixed with a
// third slash not immediately followed by another slash (so "////" stays a
// plain divider comment, matching rustdoc/rhai-rowan convention).
func (l *Lexer) scanLineComment() SyntaxKind {
	l.advanceBytes(2) // "//"
	isDoc := l.byteAt(0) == '/' && l.byteAt(1) != '/'
	l.scanToLineEnd()
	if isDoc {
		return COMMENT_LINE_DOC
	}
	return COMMENT_LINE
}

// scanBlockComment consumes a '/* ... */' comment, classifying "/** ... */"
// (with at least one more character before the closing "*/") as a doc
// comment. Unterminated block comments consume to EOF rather than failing.
func (l *Lexer) scanBlockComment() SyntaxKind {
	isDoc := l.byteAt(2) == '*' && l.byteAt(3) != '/'
	l.advanceBytes(2) // "/*"
	depth := 1
	for !l.eof() && depth > 0 {
		if l.byteAt(0) == '/' && l.byteAt(1) == '*' {
			l.advanceBytes(2)
			depth++
			continue
		}
		if l.byteAt(0) == '*' && l.byteAt(1) == '/' {
			l.advanceBytes(2)
			depth--
			continue
		}
		l.advanceBytes(1)
	}
	if isDoc {
		return COMMENT_BLOCK_DOC
	}
	return COMMENT_BLOCK
}

// scanString consumes a double-quoted or backtick string. It honors
// "\"" and "\\" to locate the terminator; full escape interpretation is
// deferred to the consumer's unescape step (spec §4.1).
func (l *Lexer) scanString(quote byte) {
	l.advanceBytes(1) // opening quote
	for !l.eof() {
		b := l.byteAt(0)
		if b == '\\' {
			l.advanceBytes(1)
			if !l.eof() {
				l.advanceBytes(1)
			}
			continue
		}
		if b == quote {
			l.advanceBytes(1)
			return
		}
		l.advanceBytes(1)
	}
	// Unterminated: consumed to EOF, tree still covers every byte.
}

// scanChar consumes a char literal in one of the four forms the spec names:
// a plain char, or a backslash escape using \x, \u, or \U.
func (l *Lexer) scanChar() {
	l.advanceBytes(1) // opening quote
	if l.eof() {
		return
	}
	if l.byteAt(0) == '\\' {
		l.advanceBytes(1)
		switch l.byteAt(0) {
		case 'x':
			l.advanceBytes(1)
			l.scanHexDigits(2)
		case 'u':
			l.advanceBytes(1)
			l.scanHexDigits(4)
		case 'U':
			l.advanceBytes(1)
			l.scanHexDigits(8)
		default:
			if !l.eof() {
				l.advanceRune()
			}
		}
	} else {
		l.advanceRune()
	}
	if l.byteAt(0) == '\'' {
		l.advanceBytes(1)
	}
}

func (l *Lexer) scanHexDigits(max int) {
	for i := 0; i < max && isHexDigit(l.byteAt(0)); i++ {
		l.advanceBytes(1)
	}
}

// scanNumber consumes an integer or float literal, applying the explicit
// priority rule of spec §4.1/§8.2: a longest match that also matches the
// integer grammar (optional base prefix, digits, '_' separators, no '.' or
// exponent) wins as LIT_INT (priority 3) over LIT_FLOAT (priority 2) on any
// shared prefix; only the presence of a fractional part or exponent shifts
// classification to LIT_FLOAT.
func (l *Lexer) scanNumber() SyntaxKind {
	if l.byteAt(0) == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') {
		l.advanceBytes(2)
		l.scanDigitsAndSeparators(isHexDigit)
		return LIT_INT
	}
	if l.byteAt(0) == '0' && (l.byteAt(1) == 'o' || l.byteAt(1) == 'O') {
		l.advanceBytes(2)
		l.scanDigitsAndSeparators(isOctalDigit)
		return LIT_INT
	}
	if l.byteAt(0) == '0' && (l.byteAt(1) == 'b' || l.byteAt(1) == 'B') {
		l.advanceBytes(2)
		l.scanDigitsAndSeparators(isBinaryDigit)
		return LIT_INT
	}

	l.scanDigitsAndSeparators(isDigit)
	isFloat := false

	if l.byteAt(0) == '.' && isDigit(l.byteAt(1)) {
		isFloat = true
		l.advanceBytes(1)
		l.scanDigitsAndSeparators(isDigit)
	}

	if b := l.byteAt(0); b == 'e' || b == 'E' {
		save := l.pos
		saveRow, saveCol := l.row, l.col
		l.advanceBytes(1)
		if l.byteAt(0) == '+' || l.byteAt(0) == '-' {
			l.advanceBytes(1)
		}
		if isDigit(l.byteAt(0)) {
			isFloat = true
			l.scanDigitsAndSeparators(isDigit)
		} else {
			// Not actually an exponent; rewind.
			l.pos, l.row, l.col = save, saveRow, saveCol
		}
	}

	if isFloat {
		return LIT_FLOAT
	}
	return LIT_INT
}

func (l *Lexer) scanDigitsAndSeparators(pred func(byte) bool) {
	for !l.eof() {
		b := l.byteAt(0)
		if pred(b) || b == '_' {
			l.advanceBytes(1)
			continue
		}
		break
	}
}

func (l *Lexer) scanIdent() {
	for !l.eof() {
		b := l.byteAt(0)
		if b < 0x80 {
			if isIdentContinue(rune(b)) {
				l.advanceBytes(1)
				continue
			}
			break
		}
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if !isIdentContinue(r) {
			break
		}
		_ = r
		l.advanceBytes(size)
	}
}

// punctTable is ordered longest-prefix-first so the scan below always finds
// the maximal match (e.g. "**=" before "**" before "*").
var punctTable = []struct {
	text string
	kind SyntaxKind
}{
	{"**=", POWEQ},
	{"<<=", SHLEQ},
	{">>=", SHREQ},
	{"..=", DOTDOTEQ},
	{"::", COLONCOLON},
	{"->", ARROW},
	{"=>", FAT_ARROW},
	{"==", EQEQ},
	{"!=", NEQ},
	{"<=", LTE},
	{">=", GTE},
	{"&&", AMPAMP},
	{"||", PIPEPIPE},
	{"**", POW},
	{"<<", SHL},
	{">>", SHR},
	{"+=", PLUSEQ},
	{"-=", MINUSEQ},
	{"*=", STAREQ},
	{"/=", SLASHEQ},
	{"%=", PERCENTEQ},
	{"&=", ANDEQ},
	{"|=", OREQ},
	{"^=", XOREQ},
	{"..", DOTDOT},
	{"(", LPAREN},
	{")", RPAREN},
	{"{", LBRACE},
	{"}", RBRACE},
	{"[", LBRACKET},
	{"]", RBRACKET},
	{"#", HASH},
	{",", COMMA},
	{";", SEMICOLON},
	{":", COLON},
	{".", DOT},
	{"?", QUESTION},
	{"=", EQ},
	{"<", LT},
	{">", GT},
	{"+", PLUS},
	{"-", MINUS},
	{"*", STAR},
	{"/", SLASH},
	{"%", PERCENT},
	{"&", AMP},
	{"|", PIPE},
	{"^", XOR},
	{"!", BANG},
}

func (l *Lexer) scanPunct() (SyntaxKind, int) {
	rest := l.src[l.pos:]
	for _, p := range punctTable {
		if strings.HasPrefix(string(rest[:min(len(rest), len(p.text))]), p.text) {
			return p.kind, len(p.text)
		}
	}
	return 0, 0
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool   { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }
func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(byte(r)) || r >= 0x80
}
