// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// zeroEdge and oneEdge return the canonical zero/one terminal Edge for a
// given node kind.
func (p *Package) zeroEdge(kind nodeKind) Edge { return Edge{node: terminalFor(kind), weight: p.cn.Zero()} }
func (p *Package) oneEdge(kind nodeKind) Edge  { return Edge{node: terminalFor(kind), weight: p.cn.One()} }

// makeDDNode is the universal node-construction pipeline: validate that
// every non-terminal child belongs to the level directly below varIndex,
// normalize the children (which may collapse the whole Edge to Zero),
// hash-cons the result against the appropriate unique table, and — for a
// freshly inserted matrix node — classify it as symmetric/identity so
// later multiplications and transposes can take their fast paths. This is
// a direct port of the original package's makeDDNode<Node> template,
// de-templated into a single function that branches on kind.
func (p *Package) makeDDNode(kind nodeKind, varIndex int, children []Edge) (Edge, error) {
	want := p.radixOf(kind, varIndex)
	if len(children) != want {
		return Edge{}, p.fail(invariantViolation("node at level %d expects %d children, got %d", varIndex, want, len(children)))
	}
	for _, c := range children {
		if !c.isTerminal() && int(c.node.varIndex) != varIndex-1 {
			return Edge{}, p.fail(invariantViolation("child at level %d, want level %d", c.node.varIndex, varIndex-1))
		}
		if c.node != nil && c.node.kind != kind {
			return Edge{}, p.fail(invariantViolation("child node kind mismatch at level %d", varIndex))
		}
	}

	var weight Complex
	var normalized []Edge
	var ok bool
	if kind == vectorNode {
		weight, normalized, ok = p.normalizeVector(children)
	} else {
		weight, normalized, ok = p.normalizeMatrix(children)
	}
	if !ok {
		return p.zeroEdge(kind), nil
	}

	if existing := p.uniqueTableFor(kind).lookup(varIndex, normalized); existing != nil {
		return Edge{node: existing, weight: weight}, nil
	}

	if err := p.reserveNodeSlot(); err != nil {
		return Edge{}, p.fail(err)
	}

	n := &ddNode{kind: kind, varIndex: int32(varIndex), children: normalized}
	if kind == matrixNode {
		checkSpecialMatrices(n, p.Radices[varIndex])
	}
	p.uniqueTableFor(kind).insert(n)
	p.refChildren(normalized)
	return Edge{node: n, weight: weight}, nil
}

// refChildren increments the reference count of every child a freshly
// inserted node now owns: one for the child's node (if non-terminal) and
// one for each component of its weight. This is the construction-time half
// of the reference-counting discipline GarbageCollect's sweep relies on —
// every edge a live node holds is counted exactly once, against the parent
// that holds it.
func (p *Package) refChildren(children []Edge) {
	for _, c := range children {
		incRefNode(c.node)
		p.cn.incRef(c.weight)
	}
}

func (p *Package) uniqueTableFor(kind nodeKind) *uniqueTable {
	if kind == matrixNode {
		return p.mUnique
	}
	return p.vUnique
}

// internNode hash-conses a node whose children are already normalized
// (e.g. because it is a structural relabeling of an existing node, as in
// shiftUp below), skipping the normalization step makeDDNode otherwise
// performs.
func (p *Package) internNode(kind nodeKind, varIndex int, children []Edge) *ddNode {
	t := p.uniqueTableFor(kind)
	if existing := t.lookup(varIndex, children); existing != nil {
		return existing
	}
	n := &ddNode{kind: kind, varIndex: int32(varIndex), children: children}
	if kind == matrixNode {
		checkSpecialMatrices(n, p.Radices[varIndex])
	}
	t.insert(n)
	p.refChildren(children)
	return n
}

// shiftUp relabels every node of x's diagram so that it occupies the
// registers starting offset levels higher than it currently does, leaving
// its weight and its relative structure untouched. This is what lets
// Kronecker place a pre-built operand above the registers its partner
// occupies without rebuilding it from scratch.
func (p *Package) shiftUp(x Edge, offset int) (Edge, error) {
	if offset == 0 || x.isTerminal() {
		return x, nil
	}
	memo := make(map[*ddNode]*ddNode)
	var walk func(n *ddNode) (*ddNode, error)
	walk = func(n *ddNode) (*ddNode, error) {
		if n.varIndex < 0 {
			return n, nil
		}
		if cached, ok := memo[n]; ok {
			return cached, nil
		}
		newChildren := make([]Edge, len(n.children))
		for i, c := range n.children {
			shifted, err := walk(c.node)
			if err != nil {
				return nil, err
			}
			newChildren[i] = Edge{node: shifted, weight: c.weight}
		}
		newVarIndex := int(n.varIndex) + offset
		if newVarIndex >= len(p.Radices) {
			return nil, outOfRange("shiftUp: register %d out of range", newVarIndex)
		}
		nn := p.internNode(n.kind, newVarIndex, newChildren)
		memo[n] = nn
		return nn, nil
	}
	shifted, err := walk(x.node)
	if err != nil {
		return Edge{}, err
	}
	return Edge{node: shifted, weight: x.weight}, nil
}

// checkSpecialMatrices flags a freshly built matrix node as symmetric
// and/or the identity, following the original package's
// checkSpecialMatrices: symmetric requires every child, on and off the
// diagonal, to be itself symmetric (or terminal) and every off-diagonal
// child to equal its mirror child on the other side of the diagonal, so
// that each off-diagonal block is the transpose of its mirror; identity
// additionally requires every diagonal child to be the identity with
// weight One, and every off-diagonal child to carry weight Zero (both
// within 1e-12).
func checkSpecialMatrices(n *ddNode, d int) {
	symmetric := true
	for i := 0; i < d && symmetric; i++ {
		for j := 0; j < d && symmetric; j++ {
			c := n.children[i*d+j]
			if i == j {
				if !c.isTerminal() && !c.node.symmetric {
					symmetric = false
				}
				continue
			}
			other := n.children[j*d+i]
			if c.node != other.node || !c.weight.Equal(other.weight) || (!c.isTerminal() && !c.node.symmetric) {
				symmetric = false
			}
		}
	}
	n.symmetric = symmetric

	identity := true
	for i := 0; i < d && identity; i++ {
		for j := 0; j < d && identity; j++ {
			c := n.children[i*d+j]
			if i == j {
				if !c.weight.approximatelyOne(1e-12) || (!c.isTerminal() && !c.node.identity) {
					identity = false
				}
				continue
			}
			if !c.weight.approximatelyZero(1e-12) {
				identity = false
			}
		}
	}
	n.identity = identity
}

// makeIdentity returns the identity matrix diagram spanning registers
// [0, hi] (inclusive), building on the largest previously cached prefix it
// can find, and caches the new prefixes it builds. Passing hi < 0 yields
// the empty (zero-register) identity: the matrix terminal Edge with
// weight One.
func (p *Package) makeIdentity(hi int) (Edge, error) {
	if hi < 0 {
		return p.oneEdge(matrixNode), nil
	}
	if e, ok := p.idTable[hi]; ok {
		return e, nil
	}
	cur := p.oneEdge(matrixNode)
	begin := 0
	for msq := hi - 1; msq >= 0; msq-- {
		if e, ok := p.idTable[msq]; ok {
			cur = e
			begin = msq + 1
			break
		}
	}
	for r := begin; r <= hi; r++ {
		d := p.Radices[r]
		children := make([]Edge, d*d)
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				if i == j {
					children[i*d+j] = cur
				} else {
					children[i*d+j] = p.zeroEdge(matrixNode)
				}
			}
		}
		ne, err := p.makeDDNode(matrixNode, r, children)
		if err != nil {
			return Edge{}, err
		}
		cur = ne
		p.idTable[r] = cur
		// The Package itself is a long-lived root for every prefix it
		// caches here, independent of whatever the caller does with the
		// edge it gets back; without this IncRef a GarbageCollect pass
		// could reclaim a cached prefix out from under the ladder.
		p.IncRef(cur)
	}
	return cur, nil
}

// Control identifies a controlled gate line: the gate's matrix is only
// applied when register Register holds the basis value Value. This
// generalizes the original package's binary Control (register, 0/1 type)
// to an arbitrary basis value, matching a qudit register's full range of
// control levels rather than just "control on 1".
type Control struct {
	Register int
	Value    int
}

func (p *Package) controlLevel(controls []Control, register int) (value int, isControl bool) {
	for _, c := range controls {
		if c.Register == register {
			return c.Value, true
		}
	}
	return 0, false
}

// wrapLevel lifts `below` one register higher: at a controlled register,
// only the matching control value carries `below` through, every other
// diagonal slot carries the plain identity for the registers strictly
// below r, and every off-diagonal slot is Zero. At an uncontrolled
// register, every diagonal slot carries `below` and every off-diagonal
// slot is Zero (the usual "identity-padding" used to lift an operator
// onto a larger space).
func (p *Package) wrapLevel(r int, below Edge, controls []Control) (Edge, error) {
	d := p.Radices[r]
	children := make([]Edge, d*d)
	val, isControl := p.controlLevel(controls, r)
	var pass Edge
	var err error
	if isControl {
		pass, err = p.makeIdentity(r - 1)
		if err != nil {
			return Edge{}, err
		}
	}
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			switch {
			case i != j:
				children[i*d+j] = p.zeroEdge(matrixNode)
			case isControl && i == val:
				children[i*d+j] = below
			case isControl:
				children[i*d+j] = pass
			default:
				children[i*d+j] = below
			}
		}
	}
	return p.makeDDNode(matrixNode, r, children)
}

// MakeGateDD builds the matrix diagram for a d x d gate matrix (row-major,
// d = Radices[target]) acting on register target, optionally controlled
// by other registers. Registers below target are processed first (lines
// below target), then the target register's raw matrix entries are
// attached, then registers above target wrap the result (lines above
// target) — the same three-phase bottom-up construction the original
// package's makeGateDD uses.
func (p *Package) MakeGateDD(mat [][]complex128, target int, controls []Control) (Edge, error) {
	p.clearerror()
	if target < 0 || target >= len(p.Radices) {
		return Edge{}, p.fail(outOfRange("target register %d out of range", target))
	}
	d := p.Radices[target]
	if len(mat) != d {
		return Edge{}, p.fail(invalidArgument("gate matrix has %d rows, want %d", len(mat), d))
	}
	for _, row := range mat {
		if len(row) != d {
			return Edge{}, p.fail(invalidArgument("gate matrix row has %d columns, want %d", len(row), d))
		}
	}

	below := p.oneEdge(matrixNode)
	var err error
	for r := 0; r < target; r++ {
		below, err = p.wrapLevel(r, below, controls)
		if err != nil {
			return Edge{}, err
		}
	}

	targetChildren := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v := mat[i][j]
			if v == 0 {
				targetChildren[i*d+j] = p.zeroEdge(matrixNode)
				continue
			}
			w := p.cn.mul(below.weight, rawComplex(real(v), imag(v)))
			targetChildren[i*d+j] = Edge{node: below.node, weight: p.cn.lookup(w)}
		}
	}
	cur, err := p.makeDDNode(matrixNode, target, targetChildren)
	if err != nil {
		return Edge{}, err
	}

	for r := target + 1; r < len(p.Radices); r++ {
		cur, err = p.wrapLevel(r, cur, controls)
		if err != nil {
			return Edge{}, err
		}
	}
	return cur, nil
}

// MakeZeroState returns the vector diagram for the all-zero basis state
// |0...0>, built bottom-up register by register.
func (p *Package) MakeZeroState() (Edge, error) {
	return p.MakeBasisState(make([]int, len(p.Radices)))
}

// MakeBasisState returns the vector diagram for the basis state whose
// register r holds value indices[r].
func (p *Package) MakeBasisState(indices []int) (Edge, error) {
	p.clearerror()
	if len(indices) != len(p.Radices) {
		return Edge{}, p.fail(invalidArgument("need %d register indices, got %d", len(p.Radices), len(indices)))
	}
	cur := p.oneEdge(vectorNode)
	for r := 0; r < len(p.Radices); r++ {
		d := p.Radices[r]
		if indices[r] < 0 || indices[r] >= d {
			return Edge{}, p.fail(outOfRange("register %d index %d out of range [0,%d)", r, indices[r], d))
		}
		children := make([]Edge, d)
		for i := range children {
			if i == indices[r] {
				children[i] = cur
			} else {
				children[i] = p.zeroEdge(vectorNode)
			}
		}
		ne, err := p.makeDDNode(vectorNode, r, children)
		if err != nil {
			return Edge{}, err
		}
		cur = ne
	}
	return cur, nil
}
