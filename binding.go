package butterfly

import (
	"github.com/phil-mansfield/butterfly/tree"
)

type slotState uint8

const (
	unsized slotState = iota
	sized
	dropped
)

// Binding associates a slice of values with each box of a tree. Each slot
// is sized exactly once and can be dropped when no longer needed.
type Binding[T any] struct {
	t     *tree.Tree
	slots [][]T
	state []slotState
}

// NewBinding creates a Binding with an unsized slot for every box in t.
func NewBinding[T any](t *tree.Tree) *Binding[T] {
	return &Binding[T]{
		t:     t,
		slots: make([][]T, t.NumBoxes()),
		state: make([]slotState, t.NumBoxes()),
	}
}

// Resize allocates n zero values in the slot of b. It panics with a
// *BindingStateError if the slot has already been sized.
func (bind *Binding[T]) Resize(b *tree.Box, n int) {
	id := b.ID()
	if bind.state[id] != unsized {
		panic(&BindingStateError{Box: id, Level: b.Level(), Op: "resize"})
	}
	bind.slots[id] = make([]T, n)
	bind.state[id] = sized
}

// At returns the slot of b. It panics with a *BindingStateError if the slot
// is not currently sized.
func (bind *Binding[T]) At(b *tree.Box) []T {
	id := b.ID()
	if bind.state[id] != sized {
		panic(&BindingStateError{Box: id, Level: b.Level(), Op: "read"})
	}
	return bind.slots[id]
}

// Sized returns true if the slot of b can be read.
func (bind *Binding[T]) Sized(b *tree.Box) bool {
	return bind.state[b.ID()] == sized
}

// Drop releases the slot of b. Later reads panic.
func (bind *Binding[T]) Drop(b *tree.Box) {
	id := b.ID()
	if bind.state[id] != sized {
		panic(&BindingStateError{Box: id, Level: b.Level(), Op: "drop"})
	}
	bind.slots[id] = nil
	bind.state[id] = dropped
}
