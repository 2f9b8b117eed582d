package butterfly

// Op identifies one of the seven butterfly translation operators.
type Op int

const (
	// S2M builds a multipole from the raw sources of a box.
	S2M Op = iota
	// M2M merges the multipoles of a box's children.
	M2M
	// S2L builds a local directly from raw sources.
	S2L
	// M2L converts multipoles into a local at the split level.
	M2L
	// L2L refines a parent's local onto a child.
	L2L
	// L2T evaluates a local (or multipole) at the target points.
	L2T
	// M2T evaluates multipoles at the target points directly.
	M2T
	// NumOps is the number of operators.
	NumOps
)

var opNames = [NumOps]string{"S2M", "M2M", "S2L", "M2L", "L2L", "L2T", "M2T"}

func (op Op) String() string {
	if op < 0 || op >= NumOps {
		return "Op(?)"
	}
	return opNames[op]
}

// SelectSource returns the source-side operator for a pair at the given
// level. leaf reports whether the source box has no children.
func SelectSource(level, maxLevel, split int, leaf bool) Op {
	switch {
	case level == 0 || leaf:
		return S2M
	case level < split:
		return M2M
	default:
		return S2L
	}
}

// SelectTarget returns the target-side operator for a pair at the given
// level. leaf reports whether the target box has no children.
func SelectTarget(level, maxLevel, split int, leaf bool) Op {
	switch {
	case level == maxLevel || leaf:
		return L2T
	case level > split:
		return L2L
	default:
		return M2T
	}
}

// Route is the way a pair's interaction is carried.
type Route int

const (
	// Compressed carries the interaction through multipoles and locals.
	Compressed Route = iota
	// Raw builds the local of a post-split pair from raw sources.
	Raw
	// Direct delivers the interaction to the target points immediately.
	Direct
)

func (r Route) String() string {
	switch r {
	case Compressed:
		return "Compressed"
	case Raw:
		return "Raw"
	case Direct:
		return "Direct"
	}
	return "Route(?)"
}

// Stats counts the work done by a single sweep.
type Stats struct {
	Fired                   [NumOps]int
	Compressed, Raw, Direct int
	// Inadmissible counts post-split pairs which the policy rejected but
	// which were compressed anyway.
	Inadmissible int
	// Fallback is true if the sum was evaluated without a butterfly.
	Fallback bool
}

// Pairs returns the number of (source, target) pairs processed.
func (st *Stats) Pairs() int { return st.Compressed + st.Raw + st.Direct }

func (st *Stats) add(o *Stats) {
	for i := range st.Fired {
		st.Fired[i] += o.Fired[i]
	}
	st.Compressed += o.Compressed
	st.Raw += o.Raw
	st.Direct += o.Direct
	st.Inadmissible += o.Inadmissible
}
