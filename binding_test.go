package butterfly

import (
	"testing"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panicValue(f func()) (v interface{}) {
	defer func() { v = recover() }()
	f()
	return nil
}

func TestBinding(t *testing.T) {
	pts := []geom.Vec{{0}, {0.3}, {0.6}, {0.9}}
	tr, err := tree.New(pts, 1)
	require.NoError(t, err)

	b := NewBinding[int](tr)
	box := tr.Boxes(1)[0]

	v := panicValue(func() { b.At(box) })
	require.IsType(t, &BindingStateError{}, v)
	assert.Equal(t, box.ID(), v.(*BindingStateError).Box)
	assert.Equal(t, "read", v.(*BindingStateError).Op)
	assert.False(t, b.Sized(box))

	b.Resize(box, 3)
	assert.True(t, b.Sized(box))
	b.At(box)[2] = 7
	assert.Equal(t, []int{0, 0, 7}, b.At(box))

	v = panicValue(func() { b.Resize(box, 5) })
	require.IsType(t, &BindingStateError{}, v)
	assert.Equal(t, "resize", v.(*BindingStateError).Op)

	b.Drop(box)
	assert.False(t, b.Sized(box))
	v = panicValue(func() { b.At(box) })
	require.IsType(t, &BindingStateError{}, v)

	v = panicValue(func() { b.Resize(box, 1) })
	require.IsType(t, &BindingStateError{}, v)
}
