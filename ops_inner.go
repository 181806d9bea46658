// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// InnerProduct computes <x|y>, the conjugate-linear-in-the-first-argument
// inner product of two vector edges. Rather than conjugating at every
// recursive step, the top weight of x is conjugated exactly once at this
// public entry point, and the recursion below maintains the invariant that
// the Edge it carries for the "x side" always holds conj of the actual
// accumulated path weight — descending multiplies by conj(child.weight),
// which is valid because conj(a*b) = conj(a)*conj(b).
func (p *Package) InnerProduct(x, y Edge) (Complex, error) {
	p.clearerror()
	if x.node == nil || y.node == nil {
		return Complex{}, p.fail(invalidArgument("innerProduct: nil operand"))
	}
	if x.node.kind != vectorNode || y.node.kind != vectorNode {
		return Complex{}, p.fail(invalidArgument("innerProduct: operands must be vectors"))
	}
	xc := Edge{node: x.node, weight: conj(x.weight)}
	res, err := p.innerProduct(xc, y)
	if err != nil {
		return Complex{}, err
	}
	return res.weight, nil
}

// Fidelity returns |<x|y>|^2.
func (p *Package) Fidelity(x, y Edge) (float64, error) {
	ip, err := p.InnerProduct(x, y)
	if err != nil {
		return 0, err
	}
	return mag2(ip), nil
}

// xConjEntry descends x (carrying conj of its accumulated path weight, per
// the invariant established at InnerProduct's entry) to the k-th child at
// level varIndex, preserving that invariant: conj(accumulated) * conj(child
// weight) = conj(accumulated * child weight). A shallower or terminal x
// broadcasts itself unchanged, matching vEntry's treatment of the right
// operand.
func (p *Package) xConjEntry(x Edge, varIndex, k int) Edge {
	if !x.isTerminal() && int(x.node.varIndex) == varIndex {
		c := x.node.children[k]
		w := p.cn.lookup(p.cn.mul(x.weight, conj(c.weight)))
		return Edge{node: c.node, weight: w}
	}
	return x
}

func (p *Package) innerProduct(x, y Edge) (Edge, error) {
	tol := p.tolerance
	if x.weight.approximatelyZero(tol) || y.weight.approximatelyZero(tol) {
		return Edge{node: vTerminal, weight: p.cn.Zero()}, nil
	}
	if x.isTerminal() && y.isTerminal() {
		w := p.cn.lookup(p.cn.mul(x.weight, y.weight))
		return Edge{node: vTerminal, weight: w}, nil
	}
	// innerProduct is bilinear in (x, y) — x already carries the conjugated
	// accumulated weight per the invariant above — so, as with Multiply,
	// both operand weights are factored out of the cache key and reapplied
	// to the cached/stored scalar.
	xKey := Edge{node: x.node, weight: p.cn.One()}
	yKey := Edge{node: y.node, weight: p.cn.One()}
	if res, ok := p.innerCache.lookup(xKey, yKey); ok {
		w := p.cn.lookup(p.cn.mul(p.cn.mul(res.weight, x.weight), y.weight))
		return Edge{node: vTerminal, weight: w}, nil
	}

	varIndex := levelOf(x)
	if levelOf(y) > varIndex {
		varIndex = levelOf(y)
	}
	d := p.Radices[varIndex]
	var sum Edge = Edge{node: vTerminal, weight: p.cn.Zero()}
	for k := 0; k < d; k++ {
		xk := p.xConjEntry(x, varIndex, k)
		yk := p.vEntry(y, varIndex, k)
		term, err := p.innerProduct(xk, yk)
		if err != nil {
			return Edge{}, err
		}
		w := p.cn.lookup(p.cn.add(sum.weight, term.weight))
		sum = Edge{node: vTerminal, weight: w}
	}
	stored := p.cn.lookup(p.cn.div(p.cn.div(sum.weight, x.weight), y.weight))
	p.innerCache.insert(xKey, yKey, Edge{node: vTerminal, weight: stored})
	return sum, nil
}
