/*package tree builds the uniform-depth 2^D-ary spatial partitions that the
butterfly sweeps over.

Every leaf of a Tree lies on its deepest level. Empty boxes are pruned, so
the number of boxes on a level is at most 2^(D level). Boxes on each level
are stored in Morton order, and the points of any box occupy a contiguous
range of the tree's permutation.
*/
package tree

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/butterfly/geom"
)

const (
	// DefaultLeafSize is the target number of points per leaf.
	DefaultLeafSize = 16
	// MaxDim is the largest supported dimension.
	MaxDim = 16
)

// Tree is a uniform-depth spatial partition of a point set.
type Tree struct {
	dim    int
	points []geom.Vec
	perm   []int
	levels [][]*Box
	boxes  []*Box
}

// Box is a single cube within a Tree.
type Box struct {
	id, level, index int
	start, end       int
	bounds           *geom.Bounds
	parent           *Box
	children         []*Box
	tree             *Tree
}

// Depth returns the depth of a tree over n points with the given leaf size:
// the smallest d for which leafSize * 2^(dim d) >= n.
func Depth(n, dim, leafSize int) int {
	d, capacity := 0, leafSize
	for capacity < n {
		d++
		capacity <<= uint(dim)
	}
	return d
}

// New partitions points into a tree with approximately leafSize points per
// leaf. The tree keeps a reference to points, which must not be modified
// while the tree is in use.
func New(points []geom.Vec, leafSize int) (*Tree, error) {
	if leafSize < 1 {
		return nil, fmt.Errorf("Leaf size %d is less than 1.", leafSize)
	}
	root, err := geom.BoundingCube(points)
	if err != nil {
		return nil, err
	}
	dim := root.Dim()
	if dim > MaxDim {
		return nil, fmt.Errorf(
			"Dimension %d is larger than the maximum of %d.", dim, MaxDim,
		)
	}

	t := &Tree{dim: dim, points: points, perm: make([]int, len(points))}
	for i := range t.perm {
		t.perm[i] = i
	}

	depth := Depth(len(points), dim, leafSize)
	t.levels = make([][]*Box, depth+1)
	t.levels[0] = []*Box{t.newBox(0, nil, root, 0, len(points))}

	buf := make([]int, len(points))
	for level := 0; level < depth; level++ {
		for _, b := range t.levels[level] {
			t.split(b, buf)
		}
	}
	return t, nil
}

func (t *Tree) newBox(level int, parent *Box, bounds *geom.Bounds, start, end int) *Box {
	b := &Box{
		id: len(t.boxes), level: level, index: len(t.levels[level]),
		start: start, end: end, bounds: bounds, parent: parent, tree: t,
	}
	t.boxes = append(t.boxes, b)
	t.levels[level] = append(t.levels[level], b)
	return b
}

// split sorts the points of b by orthant with a counting sort and appends
// the non-empty children to the next level.
func (t *Tree) split(b *Box, buf []int) {
	nChildren := 1 << uint(t.dim)
	counts := make([]int, nChildren+1)
	idx := t.perm[b.start:b.end]
	orthants := make([]int, len(idx))
	for i, p := range idx {
		orthants[i] = b.bounds.ChildIndex(t.points[p])
		counts[orthants[i]+1]++
	}
	for c := 1; c <= nChildren; c++ {
		counts[c] += counts[c-1]
	}

	offsets := make([]int, nChildren)
	copy(offsets, counts)
	out := buf[b.start:b.end]
	for i, p := range idx {
		out[offsets[orthants[i]]] = p
		offsets[orthants[i]]++
	}
	copy(idx, out)

	for c := 0; c < nChildren; c++ {
		if counts[c] == counts[c+1] {
			continue
		}
		child := t.newBox(
			b.level+1, b, b.bounds.Child(c),
			b.start+counts[c], b.start+counts[c+1],
		)
		b.children = append(b.children, child)
	}
}

// Levels returns the number of levels in t. The root is level 0.
func (t *Tree) Levels() int { return len(t.levels) }

// Boxes returns the boxes on the given level in Morton order.
func (t *Tree) Boxes(level int) []*Box { return t.levels[level] }

// Root returns the box at level 0.
func (t *Tree) Root() *Box { return t.levels[0][0] }

// NumBoxes returns the total number of boxes across all levels. Box IDs are
// in the range [0, NumBoxes()).
func (t *Tree) NumBoxes() int { return len(t.boxes) }

// Box returns the box with the given ID.
func (t *Tree) Box(id int) *Box { return t.boxes[id] }

// Len returns the number of points in t.
func (t *Tree) Len() int { return len(t.points) }

// Dim returns the dimension of the points in t.
func (t *Tree) Dim() int { return t.dim }

// Point returns the point with original index i.
func (t *Tree) Point(i int) geom.Vec { return t.points[i] }

// Index returns the original index of the i-th point in tree order.
func (t *Tree) Index(i int) int { return t.perm[i] }

// Leaves returns the leaf boxes of t.
func (t *Tree) Leaves() []*Box { return t.levels[len(t.levels)-1] }

// ID returns an identifier unique within the tree.
func (b *Box) ID() int { return b.id }

// Level returns the level of b.
func (b *Box) Level() int { return b.level }

// Index returns the position of b within its level.
func (b *Box) Index() int { return b.index }

// IsLeaf returns true if b has no children.
func (b *Box) IsLeaf() bool { return len(b.children) == 0 }

// Children returns the non-empty children of b.
func (b *Box) Children() []*Box { return b.children }

// Parent returns the parent of b, or nil for the root.
func (b *Box) Parent() *Box { return b.parent }

// Bounds returns the cube covered by b.
func (b *Box) Bounds() *geom.Bounds { return b.bounds }

// Center returns the center of b.
func (b *Box) Center() geom.Vec { return b.bounds.Center }

// HalfWidth returns the half side length of b.
func (b *Box) HalfWidth() float64 { return b.bounds.HalfWidth }

// Points returns the original indices of every point in the subtree rooted at
// b. The returned slice must not be modified.
func (b *Box) Points() []int { return b.tree.perm[b.start:b.end] }

// Len returns the number of points in the subtree rooted at b.
func (b *Box) Len() int { return b.end - b.start }

func (b *Box) String() string {
	return fmt.Sprintf("Box{level: %d, index: %d, len: %d}",
		b.level, b.index, b.Len())
}

// MaxChildren returns 2^D, the largest number of children a box can have.
func (t *Tree) MaxChildren() int { return 1 << uint(t.dim) }

// Depth returns the level of the leaves.
func (t *Tree) Depth() int { return len(t.levels) - 1 }

// Occupancy returns the mean number of points per leaf.
func (t *Tree) Occupancy() float64 {
	return float64(t.Len()) / math.Max(1, float64(len(t.Leaves())))
}
