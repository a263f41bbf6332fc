package syntax

// nodeArenaSlab is sized for one typical file's worth of green-tree nodes;
// larger files simply overflow into heap-allocated nodes past the slab.
const nodeArenaSlab = 4096

// nodeArena is a slab-backed bump allocator for GreenNode values, grounded
// on gotreesitter/arena.go's slab/bump-allocation discipline. Unlike the
// teacher's arena, this one is not pooled and ref-counted: a gotreesitter
// Tree is mutated in place across incremental reparses and multiple trees
// can share a live arena, which is why the teacher needs Retain/Release. A
// syntax.Tree here is built once per Parse call and handed out as an
// immutable, persistent value (spec §3.1/§9's "lossless CST over AST" —
// typed views are wrappers, not copies), so its arena simply lives as long
// as the tree references it and is reclaimed by the garbage collector like
// any other slice-backed allocation.
type nodeArena struct {
	nodes []GreenNode
	used  int
}

func newNodeArena() *nodeArena {
	return &nodeArena{nodes: make([]GreenNode, nodeArenaSlab)}
}

// alloc returns a pointer to a fresh zeroed GreenNode, pulling from the
// slab when there is room and falling back to a heap allocation once the
// slab is exhausted (mirrors gotreesitter/arena.go's allocNode fallback).
func (a *nodeArena) alloc() *GreenNode {
	if a == nil {
		return &GreenNode{}
	}
	if a.used < len(a.nodes) {
		n := &a.nodes[a.used]
		a.used++
		return n
	}
	return &GreenNode{}
}
