package syntax

// fields.go exposes each parser-assigned field slot as a named accessor on
// SyntaxNode, so consumers outside this package (the HIR builder) can walk
// the tree without needing the unexported fieldTag values themselves —
// mirroring how a generated rowan/rust-analyzer `ast` layer turns field IDs
// into typed accessor methods over the same underlying green tree.
//
// Name/Alias/Target/Value are always single leaf tokens in this grammar
// (an identifier, a string literal, or similar), so their accessors search
// token children and return text directly; the rest (LHS/RHS/Then/Else/...)
// are always whole subexpressions, so their accessors return a *SyntaxNode.

// childToken returns the text of the direct token child tagged with field,
// or "" if none is present.
func (n *SyntaxNode) childToken(f fieldTag) string {
	for _, c := range n.green.children {
		if c.isToken && c.field == f {
			return c.token.Text
		}
	}
	return ""
}

// Name returns the node's "name" token text (FN_DEF, DEF_FN, DEF_MODULE,
// DEF_TYPE, DEF_OP, DEF_CONST, LET_STMT, PARAM, EXPR_IDENT, EXPR_ACCESS,
// EXPR_FOR, OBJECT_FIELD, ...), or "" if the grammar left it missing.
func (n *SyntaxNode) Name() string { return n.childToken(fieldName) }

// Alias returns an import's bound-name token text, or "".
func (n *SyntaxNode) Alias() string { return n.childToken(fieldAlias) }

// TargetText returns a DEF_IMPORT's literal module-path token text
// (including its surrounding quotes), or "".
func (n *SyntaxNode) TargetText() string { return n.childToken(fieldTarget) }

// ValueText returns a DEF_MODULE header's literal or bare-identifier name
// token text, or "".
func (n *SyntaxNode) ValueText() string { return n.childToken(fieldValue) }

// LHS returns a binary/assignment expression's left operand, or a custom
// operator definition's declared left-hand binding power literal.
func (n *SyntaxNode) LHS() *SyntaxNode { return n.ChildByField(fieldLHS) }

// RHS returns a binary/assignment expression's right operand, or a custom
// operator definition's declared right-hand binding power literal.
func (n *SyntaxNode) RHS() *SyntaxNode { return n.ChildByField(fieldRHS) }

// Condition returns an if/while's condition expression, where the grammar
// tagged one.
func (n *SyntaxNode) Condition() *SyntaxNode { return n.ChildByField(fieldCondition) }

// Then returns an if expression's then-branch block.
func (n *SyntaxNode) Then() *SyntaxNode { return n.ChildByField(fieldThen) }

// Else returns an if expression's else-branch, if any (a nested EXPR_IF for
// "else if", or a BLOCK for a plain "else" / try's catch block).
func (n *SyntaxNode) Else() *SyntaxNode { return n.ChildByField(fieldElse) }

// Params returns a PARAM_LIST or CLOSURE_PARAM_LIST.
func (n *SyntaxNode) Params() *SyntaxNode { return n.ChildByField(fieldParams) }

// Body returns a function/closure/loop's body.
func (n *SyntaxNode) Body() *SyntaxNode { return n.ChildByField(fieldBody) }

// Callee returns a call expression's callee.
func (n *SyntaxNode) Callee() *SyntaxNode { return n.ChildByField(fieldCallee) }

// Args returns a call expression's ARG_LIST.
func (n *SyntaxNode) Args() *SyntaxNode { return n.ChildByField(fieldArgs) }

// TypeAnn returns a declared type annotation, where the grammar records one.
func (n *SyntaxNode) TypeAnn() *SyntaxNode { return n.ChildByField(fieldType) }

// SoleExprChild returns the node's last non-token child, for productions
// where the grammar parses a single subexpression without tagging it with
// a field (e.g. a let-initializer, an object field's value, a script
// import's path expression). Returns nil if the node has no non-token
// child; it does not check that the child it returns is the only one.
func (n *SyntaxNode) SoleExprChild() *SyntaxNode {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}
