/*package butterfly computes oscillatory kernel sums

	u(t) = sum_s K(t, s) f(s)

in roughly O((N + M) log(N + M)) time with an interpolative butterfly.

The source tree is traversed bottom-up while the target tree is traversed
top-down. On level L, every source box at depth maxLevel - L is paired with
every target box at depth L. Multipoles are carried until the split level
maxLevel / 2, converted into locals there, and the locals are refined until
they are evaluated at the targets.
*/
package butterfly

import (
	"log"
	"runtime"

	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"github.com/phil-mansfield/butterfly/math/interpolate"
	"github.com/phil-mansfield/butterfly/tree"
	"golang.org/x/sync/errgroup"
)

const (
	// consistencyTol is the relative tolerance of the kernel check done by
	// New.
	consistencyTol = 1e-12
	// MaxNodes is the largest number of interpolation nodes per box, Order^D,
	// that New accepts.
	MaxNodes = 1 << 12
)

// Scheduler holds everything about a butterfly that does not depend on the
// charges. It may be applied to any number of charge vectors, including
// concurrently.
type Scheduler struct {
	src, tgt *tree.Tree
	kern     kernel.Kernel
	policy   Policy
	basis    *interpolate.Chebyshev

	maxLevel, split int

	workers int
	log     bool
	raw     bool

	ops [NumOps]opFunc

	// Indexed by box ID.
	srcNodes, tgtNodes   [][]geom.Vec
	srcInterp, tgtInterp [][]float64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPolicy sets the compression policy. The default is DefaultPolicy().
func WithPolicy(p Policy) Option { return func(s *Scheduler) { s.policy = p } }

// Workers sets the number of goroutines used within each level. The default
// is runtime.NumCPU().
func Workers(n int) Option { return func(s *Scheduler) { s.workers = n } }

// Log turns progress logging on or off.
func Log(flag bool) Option { return func(s *Scheduler) { s.log = flag } }

// RawLocals lets pairs after the split level build their locals from raw
// sources whenever that is cheaper than refining the parent's locals. It is
// off by default.
func RawLocals(flag bool) Option { return func(s *Scheduler) { s.raw = flag } }

// MaxLevel returns the number of paired levels minus one.
func (s *Scheduler) MaxLevel() int { return s.maxLevel }

// Split returns the level at which multipoles become locals.
func (s *Scheduler) Split() int { return s.split }

// New prepares a butterfly between a source tree and a target tree.
func New(src, tgt *tree.Tree, k kernel.Kernel, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		src: src, tgt: tgt, kern: k,
		policy:  DefaultPolicy(),
		workers: runtime.NumCPU(),
		ops:     defaultOps,
	}
	for _, opt := range opts {
		opt(s)
	}

	if src.Dim() != tgt.Dim() {
		return nil, configErrorf(
			"source dimension %d does not match target dimension %d",
			src.Dim(), tgt.Dim(),
		)
	} else if s.policy.Order() < 1 {
		return nil, configErrorf("policy order %d is less than 1",
			s.policy.Order())
	} else if s.workers < 1 {
		return nil, configErrorf("worker count %d is less than 1", s.workers)
	} else if n, ok := nodeCount(s.policy.Order(), src.Dim()); !ok {
		return nil, configErrorf(
			"order %d in %d dimensions needs more than %d nodes per box "+
				"(%d)", s.policy.Order(), src.Dim(), MaxNodes, n,
		)
	}

	levels := src.Levels()
	if tgt.Levels() < levels {
		levels = tgt.Levels()
	}
	s.maxLevel = levels - 1
	s.split = s.maxLevel / 2
	if s.maxLevel < 2 {
		return nil, configErrorf(
			"the trees share %d levels, but a butterfly needs at least 3 "+
				"(reduce the leaf size or evaluate directly)", levels,
		)
	}

	err := kernel.Check(
		k, tgt.Root().Bounds().Samples(), src.Root().Bounds().Samples(),
		consistencyTol,
	)
	if err != nil {
		return nil, &ConfigurationError{Msg: "inconsistent kernel", Err: err}
	}

	s.basis = interpolate.NewChebyshev(src.Dim(), s.policy.Order())
	s.srcNodes, s.srcInterp = s.prepare(src)
	s.tgtNodes, s.tgtInterp = s.prepare(tgt)

	if s.log {
		log.Printf(
			"Butterfly: %d sources, %d targets, max level %d, split %d, "+
				"%d nodes per box, %d workers",
			src.Len(), tgt.Len(), s.maxLevel, s.split, s.basis.Len(),
			s.workers,
		)
		log.Printf(
			"Source tree depth %d, %.1f points per leaf. "+
				"Target tree depth %d, %.1f points per leaf.",
			src.Depth(), src.Occupancy(), tgt.Depth(), tgt.Occupancy(),
		)
	}
	return s, nil
}

// nodeCount returns order^dim and false if it exceeds MaxNodes. The returned
// count stops growing once it passes MaxNodes.
func nodeCount(order, dim int) (int, bool) {
	if order > MaxNodes {
		return order, false
	}
	n := 1
	for i := 0; i < dim; i++ {
		n *= order
		if n > MaxNodes {
			return n, false
		}
	}
	return n, true
}

// prepare computes the interpolation nodes of every box in the paired
// levels of t, and the basis of each box's parent evaluated at those nodes.
func (s *Scheduler) prepare(t *tree.Tree) ([][]geom.Vec, [][]float64) {
	nodes := make([][]geom.Vec, t.NumBoxes())
	interp := make([][]float64, t.NumBoxes())
	for level := 0; level <= s.maxLevel; level++ {
		for _, b := range t.Boxes(level) {
			nodes[b.ID()] = s.basis.Nodes(b.Bounds())
			if p := b.Parent(); p != nil {
				interp[b.ID()] = s.basis.Matrix(p.Bounds(), nodes[b.ID()])
			}
		}
	}
	return nodes, interp
}

// Apply computes the kernel sum for the given charges, which are indexed
// like the source points. The result is indexed like the target points.
func (s *Scheduler) Apply(charges []complex128) ([]complex128, *Stats, error) {
	if len(charges) != s.src.Len() {
		return nil, nil, configErrorf(
			"%d charges given for %d sources", len(charges), s.src.Len(),
		)
	}

	sw := &sweep{
		Scheduler: s,
		charges:   charges,
		mult:      NewBinding[Expansion](s.src),
		loc:       NewBinding[Expansion](s.tgt),
		result:    make([]complex128, s.tgt.Len()),
		stats:     &Stats{},
	}

	var ms runtime.MemStats
	for level := 0; level <= s.maxLevel; level++ {
		sw.size(level)
		if err := sw.level(level); err != nil {
			return nil, nil, err
		}
		if level > 0 {
			sw.drop(level - 1)
		}

		if s.log {
			runtime.ReadMemStats(&ms)
			log.Printf(
				"Level %d done. Alloc: %5d MB, Sys: %5d MB",
				level, ms.Alloc>>20, ms.Sys>>20,
			)
		}
	}

	return sw.result, sw.stats, nil
}

// Expansion is the content of one binding slot: a multipole or a local of a
// single (source, target) pair.
type Expansion struct {
	// Coef is nil if nothing was written to the slot.
	Coef []complex128
	// Direct is true if the pair's interaction was delivered to the target
	// points and must not be carried further.
	Direct bool
	// Partial is true if part of the pair's interaction was delivered
	// directly at an earlier level.
	Partial bool
}

// sweep is the per-Apply state.
type sweep struct {
	*Scheduler
	charges   []complex128
	mult, loc *Binding[Expansion]
	result    []complex128
	stats     *Stats
}

// pair is a single (source, target) box pair on a level.
type pair struct {
	level    int
	src, tgt *tree.Box
	route    Route
}

func (sw *sweep) srcLevel(level int) int { return sw.maxLevel - level }

// size allocates the binding slots written on the given level. Multipoles
// live on levels below the split, locals on the split and above.
func (sw *sweep) size(level int) {
	sBoxes := sw.src.Boxes(sw.srcLevel(level))
	tBoxes := sw.tgt.Boxes(level)
	if level < sw.split {
		for _, b := range sBoxes {
			sw.mult.Resize(b, len(tBoxes))
		}
	} else {
		for _, a := range tBoxes {
			sw.loc.Resize(a, len(sBoxes))
		}
	}
}

func (sw *sweep) drop(level int) {
	if level < sw.split {
		for _, b := range sw.src.Boxes(sw.srcLevel(level)) {
			sw.mult.Drop(b)
		}
	} else {
		for _, a := range sw.tgt.Boxes(level) {
			sw.loc.Drop(a)
		}
	}
}

// level runs every pair on a level. Work is split by target box: each pair
// writes only its own slot and the points of its own target box.
func (sw *sweep) level(level int) error {
	sBoxes := sw.src.Boxes(sw.srcLevel(level))
	tBoxes := sw.tgt.Boxes(level)
	stats := make([]Stats, len(tBoxes))

	g := new(errgroup.Group)
	g.SetLimit(sw.workers)
	for i, a := range tBoxes {
		i, a := i, a
		g.Go(func() error {
			for _, b := range sBoxes {
				sw.run(&pair{level: level, src: b, tgt: a}, &stats[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	before := *sw.stats
	for i := range stats {
		sw.stats.add(&stats[i])
	}

	if sw.log {
		log.Printf(
			"Level %d: %d source boxes x %d target boxes. "+
				"Compressed: %d, Raw: %d, Direct: %d",
			level, len(sBoxes), len(tBoxes),
			sw.stats.Compressed-before.Compressed, sw.stats.Raw-before.Raw,
			sw.stats.Direct-before.Direct,
		)
	}
	return nil
}

// run applies the source operator, the crossover, and the target operator
// to a pair, in that order.
func (sw *sweep) run(p *pair, st *Stats) {
	p.route = sw.classify(p, st)

	srcOp := SelectSource(p.level, sw.maxLevel, sw.split, p.src.IsLeaf())
	tgtOp := SelectTarget(p.level, sw.maxLevel, sw.split, p.tgt.IsLeaf())

	sw.ops[srcOp](sw, p)
	st.Fired[srcOp]++
	if p.level == sw.split {
		sw.ops[M2L](sw, p)
		st.Fired[M2L]++
	}
	sw.ops[tgtOp](sw, p)
	st.Fired[tgtOp]++
}

// classify picks the route of a pair.
func (sw *sweep) classify(p *pair, st *Stats) Route {
	admissible := sw.policy.Compressible(sw.kern, p.src, p.tgt)

	route := Compressed
	switch {
	case p.level <= sw.split && !admissible:
		route = Direct
	case sw.raw && p.level > sw.split && sw.rawCheaper(p.src) &&
		!sw.childrenPartial(p):
		route = Raw
	}

	if p.level > sw.split && !admissible {
		st.Inadmissible++
		if sw.log {
			log.Printf(
				"Pair (%v, %v) on level %d is not admissible at order %d.",
				p.src, p.tgt, p.level, sw.policy.Order(),
			)
		}
	}

	switch route {
	case Compressed:
		st.Compressed++
	case Raw:
		st.Raw++
	case Direct:
		st.Direct++
	}
	return route
}

// rawCheaper returns true if summing the raw sources of b is no more
// expensive than summing its children's equivalent sources.
func (sw *sweep) rawCheaper(b *tree.Box) bool {
	return b.Len() <= len(b.Children())*sw.basis.Len()
}

// childrenPartial returns true if any part of the interaction between the
// children of p.src and the parent of p.tgt has already been delivered.
func (sw *sweep) childrenPartial(p *pair) bool {
	if p.src.IsLeaf() || p.level == 0 {
		return false
	}
	for _, c := range p.src.Children() {
		e := sw.childSlot(p, c)
		if e.Direct || e.Partial {
			return true
		}
	}
	return false
}

// childSlot returns the expansion of the pair made of a child c of p.src
// and the parent of p.tgt, one level down.
func (sw *sweep) childSlot(p *pair, c *tree.Box) *Expansion {
	parent := p.tgt.Parent()
	if p.level-1 < sw.split {
		return &sw.mult.At(c)[parent.Index()]
	}
	return &sw.loc.At(parent)[c.Index()]
}
