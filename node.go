// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// nodeKind distinguishes a vector (state-amplitude) node, whose children
// are indexed by a single register value, from a matrix (operator) node,
// whose children are indexed by a row/column pair and stored row-major.
// The original MQT DD package expresses this distinction with two
// separate C++ templates (vNode, mNode); Go has no template
// specialization, so we use a single node type tagged with its kind and
// branch on it wherever the two behave differently (normalization,
// multiplication, special-matrix detection). This mirrors how rudd itself
// collapses what BuDDy keeps as two parallel implementations (hudd vs
// buddy) behind one interface, just one level further: here both kinds of
// node share the same struct instead of only the same interface.
type nodeKind uint8

const (
	vectorNode nodeKind = iota
	matrixNode
)

// Edge is a labelled pointer to a node: a complex weight together with the
// node it leads to. The zero value of Edge is not meaningful; use the
// Package.zeroEdge/oneEdge helpers (build.go) to obtain terminal edges.
type Edge struct {
	node   *ddNode
	weight Complex
}

func (e Edge) isTerminal() bool { return e.node == nil || e.node.varIndex < 0 }

// ddNode is a single vertex of the decision diagram: either a vector node
// (fan-out equal to the radix of its register) or a matrix node (fan-out
// equal to the radix squared, children stored row-major as
// child[row*radix+col]). varIndex is -1 for the two shared terminal
// nodes. symmetric and identity are only meaningful, and only maintained,
// for matrix nodes.
type ddNode struct {
	kind      nodeKind
	varIndex  int32
	children  []Edge
	refCount  int32
	symmetric bool
	identity  bool
}

// vTerminal and mTerminal are the two shared terminal sentinels every leaf
// Edge of a vector, respectively matrix, diagram points to. A matrix
// terminal is trivially symmetric and the identity (the empty product),
// exactly as mNode::terminalNode is initialized in the original package.
var vTerminal = &ddNode{kind: vectorNode, varIndex: -1, refCount: _MAXREFCOUNT}
var mTerminal = &ddNode{kind: matrixNode, varIndex: -1, refCount: _MAXREFCOUNT, symmetric: true, identity: true}

func terminalFor(kind nodeKind) *ddNode {
	if kind == matrixNode {
		return mTerminal
	}
	return vTerminal
}

// radixOf returns the fan-in/out of a node given the Package's radix table:
// the register's radix for a vector node, its square for a matrix node.
func (p *Package) radixOf(kind nodeKind, varIndex int) int {
	d := p.Radices[varIndex]
	if kind == matrixNode {
		return d * d
	}
	return d
}

// incRefNode and decRefNode adjust a node's own reference count, saturating
// (and, symmetrically, refusing to decrement past) _MAXREFCOUNT exactly as
// scalarTable.incRef/decRef do for scalar entries: once a count pins at the
// maximum we no longer trust it closely enough to let it drop. Terminal
// nodes are already pinned at _MAXREFCOUNT and these are no-ops for them.
func incRefNode(n *ddNode) {
	if n == nil || n.varIndex < 0 {
		return
	}
	if n.refCount < _MAXREFCOUNT {
		n.refCount++
	}
}

func decRefNode(n *ddNode) {
	if n == nil || n.varIndex < 0 {
		return
	}
	if n.refCount > 0 && n.refCount < _MAXREFCOUNT {
		n.refCount--
	}
}
