package butterfly

import (
	"github.com/phil-mansfield/butterfly/geom"
	"github.com/phil-mansfield/butterfly/kernel"
	"github.com/phil-mansfield/butterfly/tree"
)

type opFunc func(sw *sweep, p *pair)

var defaultOps = [NumOps]opFunc{
	S2M: (*sweep).s2m,
	M2M: (*sweep).m2m,
	S2L: (*sweep).s2l,
	M2L: (*sweep).m2l,
	L2L: (*sweep).l2l,
	L2T: (*sweep).l2t,
	M2T: (*sweep).m2t,
}

// The multipole of (B, A) is a set of equivalent charges d_k at the nodes
// s_k of B such that for t in A
//
//	sum_{s in B} K(t, s) f(s) ~ sum_k K(t, s_k) d_k.
//
// The local of (A, B) is a set of coefficients b_j at the nodes t_j of A
// such that for t in A
//
//	sum_{s in B} K(t, s) f(s) ~ E(Phi(t, cB)) sum_j l_j(t) b_j.
//
// Here E(x) = exp(2 pi i x) and l_j is the Lagrange basis of the box.

// s2m interpolates raw charges onto the nodes of the source box.
func (sw *sweep) s2m(p *pair) {
	if p.level >= sw.split {
		sw.rawLocal(p)
		return
	} else if p.route == Direct {
		return
	}

	b, a := p.src, p.tgt
	ca := a.Center()
	n := sw.basis.Len()
	coef := make([]complex128, n)
	basis := make([]float64, n)

	for _, j := range b.Points() {
		s := sw.src.Point(j)
		w := kernel.Cis(sw.kern.Phase(ca, s)) * sw.charges[j]
		sw.basis.Eval(b.Bounds(), s, basis)
		for k := range coef {
			coef[k] += complex(basis[k], 0) * w
		}
	}

	sw.demodulateSources(ca, sw.srcNodes[b.ID()], coef)
	sw.mult.At(b)[a.Index()] = Expansion{Coef: coef}
}

// m2m merges the multipoles of the children of the source box, all paired
// with the parent of the target box.
func (sw *sweep) m2m(p *pair) {
	if p.route == Direct {
		return
	}

	b, a := p.src, p.tgt
	ca := a.Center()
	n := sw.basis.Len()
	coef := make([]complex128, n)
	partial := false

	for _, c := range b.Children() {
		e := sw.childSlot(p, c)
		partial = partial || e.Direct || e.Partial
		if e.Direct || e.Coef == nil {
			continue
		}

		m := sw.srcInterp[c.ID()]
		for kc, node := range sw.srcNodes[c.ID()] {
			w := kernel.Cis(sw.kern.Phase(ca, node)) * e.Coef[kc]
			row := m[kc*n : (kc+1)*n]
			for k := range coef {
				coef[k] += complex(row[k], 0) * w
			}
		}
	}

	sw.demodulateSources(ca, sw.srcNodes[b.ID()], coef)
	sw.mult.At(b)[a.Index()] = Expansion{Coef: coef, Partial: partial}
}

// s2l builds the local of a pair from raw sources when the pair is routed
// that way. Otherwise the local comes from m2l or l2l.
func (sw *sweep) s2l(p *pair) {
	if p.route == Raw {
		sw.rawLocal(p)
	}
}

func (sw *sweep) rawLocal(p *pair) {
	b, a := p.src, p.tgt
	cb := b.Center()
	nodes := sw.tgtNodes[a.ID()]
	coef := make([]complex128, len(nodes))
	for j, t := range nodes {
		coef[j] = kernel.Cis(-sw.kern.Phase(t, cb)) * sw.rawSum(t, b)
	}
	sw.loc.At(a)[b.Index()] = Expansion{Coef: coef}
}

// m2l converts the children's multipoles into a local at the split level.
// Pairs the policy rejects are left to m2t.
func (sw *sweep) m2l(p *pair) {
	if p.route != Compressed || p.src.IsLeaf() {
		return
	}

	b, a := p.src, p.tgt
	cb := b.Center()
	nodes := sw.tgtNodes[a.ID()]
	coef := make([]complex128, len(nodes))
	partial := false

	for _, c := range b.Children() {
		e := sw.childSlot(p, c)
		partial = partial || e.Direct || e.Partial
		if e.Direct || e.Coef == nil {
			continue
		}
		for j, t := range nodes {
			coef[j] += sw.equivalentSum(t, sw.srcNodes[c.ID()], e.Coef)
		}
	}

	for j, t := range nodes {
		coef[j] *= kernel.Cis(-sw.kern.Phase(t, cb))
	}
	sw.loc.At(a)[b.Index()] = Expansion{Coef: coef, Partial: partial}
}

// l2l pulls the locals of the parent of the target box, paired with the
// children of the source box, onto the nodes of the target box.
func (sw *sweep) l2l(p *pair) {
	if p.route == Raw || p.src.IsLeaf() {
		// The slot was written by s2l or s2m.
		return
	}

	b, a := p.src, p.tgt
	cb := b.Center()
	nodes := sw.tgtNodes[a.ID()]
	n := sw.basis.Len()
	m := sw.tgtInterp[a.ID()]
	coef := make([]complex128, len(nodes))
	partial := false

	for _, c := range b.Children() {
		e := sw.childSlot(p, c)
		partial = partial || e.Direct || e.Partial
		if e.Direct || e.Coef == nil {
			continue
		}
		cc := c.Center()
		for i, t := range nodes {
			u := dotReal(m[i*n:(i+1)*n], e.Coef)
			coef[i] += kernel.Cis(sw.kern.Phase(t, cc)) * u
		}
	}

	for i, t := range nodes {
		coef[i] *= kernel.Cis(-sw.kern.Phase(t, cb))
	}
	sw.loc.At(a)[b.Index()] = Expansion{Coef: coef, Partial: partial}
}

// l2t evaluates the expansion which covers a pair at the target points.
func (sw *sweep) l2t(p *pair) {
	if p.route == Direct {
		sw.m2t(p)
		return
	}

	b, a := p.src, p.tgt
	switch {
	case p.level < sw.split:
		e := &sw.mult.At(b)[a.Index()]
		if e.Coef == nil {
			return
		}
		for _, i := range a.Points() {
			sw.result[i] += sw.equivalentSum(
				sw.tgt.Point(i), sw.srcNodes[b.ID()], e.Coef,
			)
		}

	case p.level == sw.split || p.route == Raw || b.IsLeaf():
		e := &sw.loc.At(a)[b.Index()]
		if e.Direct || e.Coef == nil {
			return
		}
		sw.evalLocal(a, b.Center(), a.Bounds(), e.Coef)

	default:
		for _, c := range b.Children() {
			e := sw.childSlot(p, c)
			if e.Direct || e.Coef == nil {
				continue
			}
			sw.evalLocal(a, c.Center(), a.Parent().Bounds(), e.Coef)
		}
	}
}

// m2t delivers pairs on or before the split level which the policy rejects
// straight to the target points.
func (sw *sweep) m2t(p *pair) {
	if p.route != Direct {
		return
	}
	sw.deliver(p)
	if p.level < sw.split {
		sw.mult.At(p.src)[p.tgt.Index()] = Expansion{Direct: true}
	} else {
		sw.loc.At(p.tgt)[p.src.Index()] = Expansion{Direct: true}
	}
}

// deliver adds the interaction of a pair to the target points using the
// finest representation of the source box available: its raw points on the
// bottom level and its children's multipoles above it.
func (sw *sweep) deliver(p *pair) {
	b, a := p.src, p.tgt
	if p.level == 0 || b.IsLeaf() {
		for _, i := range a.Points() {
			sw.result[i] += sw.rawSum(sw.tgt.Point(i), b)
		}
		return
	}

	for _, c := range b.Children() {
		e := sw.childSlot(p, c)
		if e.Direct || e.Coef == nil {
			continue
		}
		nodes := sw.srcNodes[c.ID()]
		for _, i := range a.Points() {
			sw.result[i] += sw.equivalentSum(sw.tgt.Point(i), nodes, e.Coef)
		}
	}
}

// evalLocal adds E(Phi(t, center)) sum_j l_j(t) coef_j to every target point
// t of a, where l_j is the basis on the cube bounds.
func (sw *sweep) evalLocal(a *tree.Box, center geom.Vec, bounds *geom.Bounds, coef []complex128) {
	basis := make([]float64, sw.basis.Len())
	for _, i := range a.Points() {
		t := sw.tgt.Point(i)
		sw.basis.Eval(bounds, t, basis)
		sw.result[i] += kernel.Cis(sw.kern.Phase(t, center)) *
			dotReal(basis, coef)
	}
}

// rawSum returns sum_{s in b} K(t, s) f(s).
func (sw *sweep) rawSum(t geom.Vec, b *tree.Box) complex128 {
	var sum complex128
	for _, j := range b.Points() {
		sum += kernel.Eval(sw.kern, t, sw.src.Point(j)) * sw.charges[j]
	}
	return sum
}

// equivalentSum returns sum_k K(t, nodes_k) coef_k.
func (sw *sweep) equivalentSum(t geom.Vec, nodes []geom.Vec, coef []complex128) complex128 {
	var sum complex128
	for k, s := range nodes {
		sum += kernel.Eval(sw.kern, t, s) * coef[k]
	}
	return sum
}

// demodulateSources multiplies coef_k by E(-Phi(ca, nodes_k)).
func (sw *sweep) demodulateSources(ca geom.Vec, nodes []geom.Vec, coef []complex128) {
	for k, s := range nodes {
		coef[k] *= kernel.Cis(-sw.kern.Phase(ca, s))
	}
}

func dotReal(xs []float64, zs []complex128) complex128 {
	var sum complex128
	for i, x := range xs {
		sum += complex(x, 0) * zs[i]
	}
	return sum
}
