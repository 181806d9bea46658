// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "math"

// normalizeVector implements the vector-node normalization rule: the
// incoming children are scanned in reverse for the maximum-magnitude
// entry (a tie, within tolerance, is won by the lowest index, since a
// backward scan's last write is the smallest index touched), that entry's
// weight is factored out and rescaled so that the resulting child vector
// has unit L2 norm, and the factored-out weight becomes the new Edge's
// weight. If every child is (approximately) zero the whole Edge collapses
// to the canonical zero Edge (reported via the ok=false return).
//
// This differs from normalizeMatrix only in the scan direction/tie-break
// and in that it renormalizes to unit L2 norm afterwards; see
// normalizeMatrix for the asymmetric matrix rule spec.md §9 calls out as
// load-bearing.
func (p *Package) normalizeVector(children []Edge) (weight Complex, newChildren []Edge, ok bool) {
	tol := p.tolerance
	sumNorm2 := 0.0
	maxMag2 := -1.0
	argmax := 0
	for i := len(children) - 1; i >= 0; i-- {
		m := mag2(children[i].weight)
		sumNorm2 += m
		if m+tol >= maxMag2 {
			maxMag2 = m
			argmax = i
		}
	}
	if sumNorm2 < tol {
		return p.cn.Zero(), nil, false
	}

	common := children[argmax].weight
	magMax := mag(common)
	normFactor := math.Sqrt(sumNorm2)
	scale := normFactor / magMax
	factoredOut := rawComplex(common.Real()*scale, common.Imag()*scale)

	out := make([]Edge, len(children))
	for i, c := range children {
		if i == argmax {
			out[i] = Edge{node: c.node, weight: p.cn.lookup(rawComplex(magMax/normFactor, 0))}
			continue
		}
		out[i] = Edge{node: c.node, weight: p.cn.lookup(p.cn.div(c.weight, factoredOut))}
	}
	return p.cn.lookup(factoredOut), out, true
}

// normalizeMatrix implements the matrix-node normalization rule. Unlike
// normalizeVector it scans forward and breaks ties strictly in favor of
// the first (lowest-index) entry encountered, and — the asymmetry spec.md
// §9 flags as intentional and load-bearing — it does not renormalize the
// children afterwards: the factored-out weight is exactly the
// maximum-magnitude child's own weight, so the remaining children are
// simply divided by it and the argmax child becomes exactly One. This
// keeps the matrix's largest entry equal to one rather than keeping the
// matrix's Frobenius norm fixed, which is what lets identity and
// permutation matrices collapse to compact, easily-recognized diagrams.
func (p *Package) normalizeMatrix(children []Edge) (weight Complex, newChildren []Edge, ok bool) {
	tol := p.tolerance
	maxMag2 := -1.0
	argmax := 0
	for i, c := range children {
		m := mag2(c.weight)
		if m-maxMag2 > tol {
			maxMag2 = m
			argmax = i
		}
	}
	if maxMag2 < tol {
		return p.cn.Zero(), nil, false
	}

	common := children[argmax].weight
	out := make([]Edge, len(children))
	for i, c := range children {
		if i == argmax {
			out[i] = Edge{node: c.node, weight: p.cn.One()}
			continue
		}
		out[i] = Edge{node: c.node, weight: p.cn.lookup(p.cn.div(c.weight, common))}
	}
	return p.cn.lookup(common), out, true
}
