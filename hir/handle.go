// Package hir implements the semantic model of modules, scopes, symbols,
// and types (spec §3.2), the builder that lowers a syntax tree into that
// model (spec §4.3), and the scope-aware resolver (spec §4.4).
package hir

// generation-tagged handles, grounded on gotreesitter/arena.go's slab/reuse
// discipline: an arena index alone is not enough once entries can be freed
// and their slots reused (spec §3.4's source/symbol/scope lifecycles), so
// every handle also carries a generation counter bumped each time its slot
// is recycled. A stale handle (held past its generation) simply misses on
// lookup instead of aliasing a newer, unrelated entry.

// SourceHandle is an opaque reference to a Source.
type SourceHandle struct{ index, generation uint32 }

// ModuleHandle is an opaque reference to a Module.
type ModuleHandle struct{ index, generation uint32 }

// ScopeHandle is an opaque reference to a Scope.
type ScopeHandle struct{ index, generation uint32 }

// SymbolHandle is an opaque reference to a Symbol.
type SymbolHandle struct{ index, generation uint32 }

// TypeHandle is an opaque reference to a Type.
type TypeHandle struct{ index, generation uint32 }

// IsNil reports whether the handle is the zero value, i.e. never assigned.
func (h SourceHandle) IsNil() bool { return h == SourceHandle{} }
func (h ModuleHandle) IsNil() bool { return h == ModuleHandle{} }
func (h ScopeHandle) IsNil() bool  { return h == ScopeHandle{} }
func (h SymbolHandle) IsNil() bool { return h == SymbolHandle{} }
func (h TypeHandle) IsNil() bool   { return h == TypeHandle{} }

// slot wraps a value together with the generation it was last written with,
// plus whether it is currently live (occupied).
type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// arena is a generic generational arena: indices are reused (via freeList)
// once an entry is removed, but reuse bumps the generation so handles
// minted before the removal no longer resolve.
type arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

func newArena[T any]() *arena[T] {
	return &arena[T]{}
}

func (a *arena[T]) insert(v T) (uint32, uint32) {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		a.slots[idx].value = v
		a.slots[idx].live = true
		return idx, a.slots[idx].generation
	}
	a.slots = append(a.slots, slot[T]{value: v, live: true})
	idx := uint32(len(a.slots) - 1)
	return idx, a.slots[idx].generation
}

func (a *arena[T]) get(index, generation uint32) (*T, bool) {
	if int(index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[index]
	if !s.live || s.generation != generation {
		return nil, false
	}
	return &s.value, true
}

func (a *arena[T]) remove(index, generation uint32) {
	if int(index) >= len(a.slots) {
		return
	}
	s := &a.slots[index]
	if !s.live || s.generation != generation {
		return
	}
	var zero T
	s.value = zero
	s.live = false
	s.generation++
	a.freeList = append(a.freeList, index)
}

// all iterates every live entry in insertion (index) order.
func (a *arena[T]) all(yield func(index, generation uint32, v *T) bool) {
	for i := range a.slots {
		if !a.slots[i].live {
			continue
		}
		if !yield(uint32(i), a.slots[i].generation, &a.slots[i].value) {
			return
		}
	}
}
