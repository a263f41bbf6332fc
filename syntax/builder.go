package syntax

// treeBuilder assembles a green tree bottom-up as the parser recognizes
// productions, recording parse errors on the side rather than aborting —
// spec §4.2's "attach an error event to the builder and resynchronize".
type treeBuilder struct {
	arena  *nodeArena
	stack  []frame
	errors []ParseError
}

type frame struct {
	kind     SyntaxKind
	children []GreenChild
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{arena: newNodeArena()}
}

// startNode opens a new frame for kind.
func (b *treeBuilder) startNode(kind SyntaxKind) {
	b.stack = append(b.stack, frame{kind: kind})
}

// token appends a leaf token to the currently open frame.
func (b *treeBuilder) token(tok Token, field fieldTag) {
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, GreenChild{
		isToken: true,
		token:   GreenToken{Kind: tok.Kind, Text: tok.Text},
		field:   field,
	})
}

// missing records a synthetic "absent child" marker for error recovery
// (spec §9: "All downstream components must handle missing child at every
// position"), as a zero-width ERROR token so the grammar position is
// visible in the tree without inventing source text.
func (b *treeBuilder) missing(field fieldTag) {
	top := len(b.stack) - 1
	b.stack[top].children = append(b.stack[top].children, GreenChild{
		isToken: true,
		token:   GreenToken{Kind: ERROR, Text: ""},
		field:   field,
	})
}

// finishNode closes the innermost frame, builds its GreenNode, and attaches
// it as a child of the new top frame (or returns it if the stack is now
// empty, i.e. this was the root).
func (b *treeBuilder) finishNode(field fieldTag) *GreenNode {
	top := len(b.stack) - 1
	f := b.stack[top]
	b.stack = b.stack[:top]
	node := buildGreenNode(b.arena, f.kind, f.children)
	if len(b.stack) == 0 {
		return node
	}
	parent := len(b.stack) - 1
	b.stack[parent].children = append(b.stack[parent].children, GreenChild{node: node, field: field})
	return node
}

func (b *treeBuilder) error(err ParseError) {
	b.errors = append(b.errors, err)
}
