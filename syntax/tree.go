package syntax

// GreenChild is either a child GreenNode (nonterminal) or a GreenToken
// (terminal), tagged by isToken. Storing both shapes inline (rather than an
// interface) keeps the arena's slab allocation simple, the same trade the
// teacher's Node.children ([]*Node) avoids by always being nodes; here a
// child can be a bare token, so the tag is explicit.
type GreenChild struct {
	isToken bool
	node    *GreenNode
	token   GreenToken
	field   fieldTag // which field of the parent this child fills, if any
}

// fieldTag names a semantically distinguished child slot (e.g. a binary
// expression's "lhs"/"rhs", a fn def's "name"/"params"/"body"). Zero value
// means "no field".
type fieldTag uint8

const (
	fieldNone fieldTag = iota
	fieldName
	fieldLHS
	fieldRHS
	fieldOperator
	fieldCondition
	fieldThen
	fieldElse
	fieldParams
	fieldBody
	fieldTarget
	fieldAlias
	fieldCallee
	fieldArgs
	fieldIndex
	fieldValue
	fieldType
)

// GreenToken is a terminal: a kind plus its verbatim source text. Storing
// the text on every token (rather than byte offsets into a shared source
// buffer) is what makes the tree "green" — content-addressed and reusable
// independent of where it sits in a document — while still reproducing the
// source exactly on concatenation (spec §3.1's round-trip invariant).
type GreenToken struct {
	Kind SyntaxKind
	Text string
}

func (t GreenToken) width() uint32 { return uint32(len(t.Text)) }

// GreenNode is an immutable, persistent, offset-free tree node: a kind plus
// an ordered sequence of children (nodes or tokens). Concatenating the text
// of every token in the tree, in order, reproduces the original source
// byte-for-byte — this is the lossless-round-trip invariant of spec §8.1.
type GreenNode struct {
	kind     SyntaxKind
	children []GreenChild
	width    uint32
	hasError bool
}

// Kind returns the node's syntax kind.
func (n *GreenNode) Kind() SyntaxKind { return n.kind }

// Width returns the total byte length covered by this node's children.
func (n *GreenNode) Width() uint32 { return n.width }

// HasError reports whether this node or any descendant was built around a
// parse error (an ERROR token, or a production missing a required child).
func (n *GreenNode) HasError() bool { return n.hasError }

func buildGreenNode(b *nodeArena, kind SyntaxKind, children []GreenChild) *GreenNode {
	n := b.alloc()
	n.kind = kind
	n.children = children
	for _, c := range children {
		if c.isToken {
			n.width += c.token.width()
			if c.token.Kind == ERROR {
				n.hasError = true
			}
		} else if c.node != nil {
			n.width += c.node.width
			if c.node.hasError {
				n.hasError = true
			}
		}
	}
	return n
}

// SyntaxNode is the "red" view of a GreenNode: a position-aware, navigable
// wrapper computed lazily while walking the tree. Spec §9 calls for typed
// AST views to be lightweight wrappers around the CST, not a separate tree;
// SyntaxNode is that wrapper, and the field accessors in fields.go are thin
// methods over it.
type SyntaxNode struct {
	green  *GreenNode
	offset uint32 // absolute byte offset where this node begins
	parent *SyntaxNode
	source []byte
}

// NewRoot creates the red root view over a green tree for the given source.
func NewRoot(green *GreenNode, source []byte) *SyntaxNode {
	if green == nil {
		return nil
	}
	return &SyntaxNode{green: green, offset: 0, source: source}
}

// Kind returns the node's syntax kind.
func (n *SyntaxNode) Kind() SyntaxKind { return n.green.kind }

// Span returns the node's absolute byte range.
func (n *SyntaxNode) Span() Span {
	return Span{Start: n.offset, End: n.offset + n.green.width}
}

// Text returns the exact source text covered by this node, reconstructed
// from its green children (not sliced from a stored source buffer — the
// green tree alone is enough to reproduce it, demonstrating losslessness).
func (n *SyntaxNode) Text() string {
	var buf []byte
	var walk func(g *GreenNode)
	walk = func(g *GreenNode) {
		for _, c := range g.children {
			if c.isToken {
				buf = append(buf, c.token.Text...)
			} else if c.node != nil {
				walk(c.node)
			}
		}
	}
	walk(n.green)
	return string(buf)
}

// Parent returns the enclosing SyntaxNode, or nil at the root.
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }

// HasError reports whether this node or a descendant carries a parse error.
func (n *SyntaxNode) HasError() bool { return n.green.HasError() }

// Children returns the red views of every non-token child, in order,
// skipping pure token children.
func (n *SyntaxNode) Children() []*SyntaxNode {
	var out []*SyntaxNode
	off := n.offset
	for _, c := range n.green.children {
		if c.isToken {
			off += c.token.width()
			continue
		}
		if c.node == nil {
			continue
		}
		out = append(out, &SyntaxNode{green: c.node, offset: off, parent: n, source: n.source})
		off += c.node.width
	}
	return out
}

// ChildByField returns the first child assigned to the given field tag, or
// nil. Mirrors gotreesitter/tree.go's ChildByFieldName, generalized from a
// language-table field-ID lookup to a fixed internal tag since this
// package's grammar is compiled in rather than loaded from data.
func (n *SyntaxNode) ChildByField(f fieldTag) *SyntaxNode {
	off := n.offset
	for _, c := range n.green.children {
		if c.isToken {
			off += c.token.width()
			continue
		}
		if c.node == nil {
			continue
		}
		if c.field == f {
			return &SyntaxNode{green: c.node, offset: off, parent: n, source: n.source}
		}
		off += c.node.width
	}
	return nil
}

// Tokens returns every GreenToken covered by this node, in order, including
// whitespace and comment trivia — the full set whose concatenation
// reproduces the source exactly.
func (n *SyntaxNode) Tokens() []GreenToken {
	var out []GreenToken
	var walk func(g *GreenNode)
	walk = func(g *GreenNode) {
		for _, c := range g.children {
			if c.isToken {
				out = append(out, c.token)
			} else if c.node != nil {
				walk(c.node)
			}
		}
	}
	walk(n.green)
	return out
}

// Tree is the result of a completed parse: the green root plus the source
// it was built from. It is immutable and safe to share across goroutines
// under a read lock (spec §5).
type Tree struct {
	green  *GreenNode
	source []byte
}

// Root returns the red view of the tree's root node.
func (t *Tree) Root() *SyntaxNode {
	if t == nil {
		return nil
	}
	return NewRoot(t.green, t.source)
}

// Source returns the original source bytes the tree was parsed from.
func (t *Tree) Source() []byte { return t.source }

// IsDef reports whether the tree's root is RHAI_DEF rather than RHAI, per
// spec §3.3 ("Parser output records which it is").
func (t *Tree) IsDef() bool {
	return t.green != nil && t.green.kind == RHAI_DEF
}
