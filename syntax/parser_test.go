package syntax

import "testing"

func parseScript(t *testing.T, src string) *Parse {
	t.Helper()
	p := NewParser(nil)
	return p.ParseScript([]byte(src))
}

func TestLosslessRoundTrip(t *testing.T) {
	sources := []string{
		"let x = 1 + 2 * 3;\n",
		"fn add(a, b) { a + b }\n",
		"// comment\nlet y = \"hi\"; // trailing\n",
		"if x { 1 } else { 2 }\n",
		"  let   weird_spacing =  42 ;  \n",
	}
	for _, src := range sources {
		parse := parseScript(t, src)
		got := parse.Tree.Root().Text()
		if got != src {
			t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", got, src)
		}
	}
}

func TestLosslessRoundTripWithErrors(t *testing.T) {
	// Even malformed input must round-trip exactly; the parser records
	// errors but never drops or rewrites source text.
	src := "let x = ;\nfn {\n"
	parse := parseScript(t, src)
	if len(parse.Errors) == 0 {
		t.Fatal("expected parse errors for malformed input")
	}
	if got := parse.Tree.Root().Text(); got != src {
		t.Errorf("round-trip mismatch on error recovery:\n got: %q\nwant: %q", got, src)
	}
}

func TestDocCommentKinds(t *testing.T) {
	// Only "///" (followed by something other than another slash) and
	// "/** ... */" (with content before the closing "*/") are doc comments;
	// "//!" has no special meaning to this lexer and lexes as a plain line
	// comment.
	lex := NewLexer([]byte("/// doc line\n//! not doc\n// plain\n/** block doc */\n/* plain block */\n"))
	var kinds []SyntaxKind
	for {
		tok := lex.Next()
		if tok.Kind == EOF {
			break
		}
		if tok.Kind == WHITESPACE {
			continue
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []SyntaxKind{COMMENT_LINE_DOC, COMMENT_LINE, COMMENT_LINE, COMMENT_BLOCK_DOC, COMMENT_BLOCK}
	if len(kinds) != len(want) {
		t.Fatalf("got %d comment tokens %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d: got %v, want %v", i, k, want[i])
		}
	}
}

func TestBuiltinOperatorPrecedence(t *testing.T) {
	// `*` binds tighter than `+`: "1 + 2 * 3" must parse as "1 + (2 * 3)",
	// so the outer binary node's RHS is itself a binary multiplication.
	parse := parseScript(t, "let x = 1 + 2 * 3;\n")
	root := parse.Tree.Root()
	letStmt := findKind(root, LET_STMT)
	if letStmt == nil {
		t.Fatal("no LET_STMT found")
	}
	// Locate the top-level binary expression under the let statement.
	outer := findKind(letStmt, EXPR_BINARY)
	if outer == nil {
		t.Fatal("no EXPR_BINARY found under let statement")
	}
	children := outer.Children()
	if len(children) != 2 {
		t.Fatalf("expected outer binary to have [LHS, RHS] children, got %d", len(children))
	}
	rhs := children[1]
	if rhs.Kind() != EXPR_BINARY {
		t.Errorf("expected RHS of outer binary to itself be EXPR_BINARY (got %v), precedence not respected", rhs.Kind())
	}
}

func TestCustomOperatorLeftAssociative(t *testing.T) {
	// A custom operator "into" with equal left/right binding power must be
	// left-associative: "a into b into c" parses as "(a into b) into c".
	ops := NewOperatorTable([]Operator{{Name: "into", BindingPower: BindingPower{10, 10}}})
	p := NewParser(ops)
	parse := p.ParseScript([]byte("let x = a into b into c;\n"))
	if len(parse.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", parse.Errors)
	}
	root := parse.Tree.Root()
	outer := findKind(root, EXPR_BINARY)
	if outer == nil {
		t.Fatal("no EXPR_BINARY found")
	}
	lhs := outer.LHS()
	if lhs == nil || lhs.Kind() != EXPR_BINARY {
		t.Errorf("expected LHS of outer binary to itself be EXPR_BINARY (left-associative), got %v", kindOrNil(lhs))
	}
}

func TestCustomOperatorInvalidNameIgnored(t *testing.T) {
	ops := NewOperatorTable([]Operator{{Name: "not-an-ident", BindingPower: BindingPower{10, 10}}})
	if _, ok := ops.Lookup("not-an-ident"); ok {
		t.Error("expected invalid-identifier operator name to be dropped from the table")
	}
}

func findKind(n *SyntaxNode, k SyntaxKind) *SyntaxNode {
	if n == nil {
		return nil
	}
	if n.Kind() == k {
		return n
	}
	for _, c := range n.Children() {
		if found := findKind(c, k); found != nil {
			return found
		}
	}
	return nil
}

func kindOrNil(n *SyntaxNode) any {
	if n == nil {
		return nil
	}
	return n.Kind()
}
