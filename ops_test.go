// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

func pauliX() [][]complex128 {
	return [][]complex128{
		{0, 1},
		{1, 0},
	}
}

func pauliZ() [][]complex128 {
	return [][]complex128{
		{1, 0},
		{0, -1},
	}
}

// singleRegisterGate builds mat as a one-level matrix diagram on register 0
// alone, without the identity padding MakeGateDD adds on every register
// above the target.
func singleRegisterGate(t *testing.T, p *Package, mat [][]complex128) Edge {
	t.Helper()
	d := p.Radices[0]
	children := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			children[i*d+j] = Edge{node: mTerminal, weight: p.cn.lookup(rawComplex(real(mat[i][j]), imag(mat[i][j])))}
		}
	}
	e, err := p.makeDDNode(matrixNode, 0, children)
	require.NoError(t, err)
	return e
}

func requireMatEqual(t *testing.T, p *Package, got, want Edge, dim int) {
	t.Helper()
	g, err := p.GetVectorizedMatrix(got)
	require.NoError(t, err, "GetVectorizedMatrix(got)")
	w, err := p.GetVectorizedMatrix(want)
	require.NoError(t, err, "GetVectorizedMatrix(want)")
	for i := 0; i < dim*dim; i++ {
		require.InDelta(t, 0.0, cmplx.Abs(g[i]-w[i]), 1e-9, "matrix mismatch at flat index %d: got %v, want %v", i, g[i], w[i])
	}
}

func TestAddZeroOperandPassesThrough(t *testing.T) {
	p := newTestPackage(t, 2)
	psi, err := p.MakeBasisState([]int{1})
	require.NoError(t, err)
	zero := p.zeroEdge(vectorNode)
	sum, err := p.Add(zero, psi)
	require.NoError(t, err)
	require.Same(t, psi.node, sum.node, "Add(zero, x) must return x unchanged")
	require.True(t, sum.weight.Equal(psi.weight), "Add(zero, x) must return x unchanged")
}

func TestAddSameNodeFoldsWeights(t *testing.T) {
	p := newTestPackage(t, 2)
	psi, err := p.MakeBasisState([]int{1})
	require.NoError(t, err)
	sum, err := p.Add(psi, psi)
	require.NoError(t, err)
	vec, err := p.GetVector(sum)
	require.NoError(t, err)
	require.InDelta(t, 2.0, cmplx.Abs(vec[1]), 1e-9, "psi + psi at the occupied index")
}

// TestMultiplyIdentityFastPathReturnsSamePointer checks property P4: the
// identity matrix's multiplyMV fast path returns the very same node the
// operand carried, not a freshly rebuilt (structurally equal) one.
func TestMultiplyIdentityFastPathReturnsSamePointer(t *testing.T) {
	p := newTestPackage(t, 2)
	id, err := p.makeIdentity(0)
	require.NoError(t, err)
	psi, err := p.MakeBasisState([]int{1})
	require.NoError(t, err)
	res, err := p.Multiply(id, psi)
	require.NoError(t, err)
	require.Same(t, psi.node, res.node, "Multiply(identity, x) must return x's own node pointer unchanged")
}

// TestMultiplyUnitaryInverseIsIdentity checks property P5 using the
// Hadamard gate, which is both unitary and self-adjoint (real, symmetric):
// conjugateTranspose(H) == H, and H * H == I.
func TestMultiplyUnitaryInverseIsIdentity(t *testing.T) {
	p := newTestPackage(t, 2)
	h, err := p.MakeGateDD(hadamard(), 0, nil)
	require.NoError(t, err)
	hDag, err := p.ConjugateTranspose(h)
	require.NoError(t, err)
	requireMatEqual(t, p, hDag, h, 2)

	squared, err := p.Multiply(h, h)
	require.NoError(t, err)
	id, err := p.makeIdentity(0)
	require.NoError(t, err)
	requireMatEqual(t, p, squared, id, 2)
}

// TestKroneckerIdentityLaw checks part of property P7: kronecker(I_a, I_b)
// == I_{a+b}. Register 0 and register 1 share the same radix here so that
// shiftUp's relabeling of the register-0 identity onto register 1 is
// dimensionally consistent with the register-1 identity it is combined
// with, and the two sides hash-cons to the identical node.
func TestKroneckerIdentityLaw(t *testing.T) {
	p := newTestPackage(t, 2, 2)
	id0, err := p.makeIdentity(0)
	require.NoError(t, err)
	combined, err := p.Kronecker(id0, id0)
	require.NoError(t, err)
	id1, err := p.makeIdentity(1)
	require.NoError(t, err)
	require.Same(t, id1.node, combined.node, "kronecker(I_0, I_0) did not hash-cons to makeIdentity(1)")
	require.True(t, combined.weight.Equal(id1.weight), "kronecker(I_0, I_0) did not hash-cons to makeIdentity(1)")
}

// TestKroneckerAssociativity checks property P7: kronecker(A, kronecker(B,
// C)) == kronecker(kronecker(A, B), C), for three single-qubit gates placed
// on a 3-qubit package.
func TestKroneckerAssociativity(t *testing.T) {
	p := newTestPackage(t, 2, 2, 2)
	a := singleRegisterGate(t, p, hadamard())
	b := singleRegisterGate(t, p, pauliX())
	c := singleRegisterGate(t, p, pauliZ())

	bc, err := p.Kronecker(b, c)
	require.NoError(t, err)
	left, err := p.Kronecker(a, bc)
	require.NoError(t, err)

	ab, err := p.Kronecker(a, b)
	require.NoError(t, err)
	right, err := p.Kronecker(ab, c)
	require.NoError(t, err)

	requireMatEqual(t, p, left, right, 8)
}

// TestTransposeRoundTrip checks property R2: transpose is involutive.
func TestTransposeRoundTrip(t *testing.T) {
	p := newTestPackage(t, 3)
	gate, err := p.MakeGateDD(cyclicShift(3), 0, nil)
	require.NoError(t, err)
	once, err := p.Transpose(gate)
	require.NoError(t, err)
	twice, err := p.Transpose(once)
	require.NoError(t, err)
	requireMatEqual(t, p, twice, gate, 3)
}

// TestConjugateTransposeRoundTrip checks property R3: conjugate-transpose
// is involutive.
func TestConjugateTransposeRoundTrip(t *testing.T) {
	p := newTestPackage(t, 3)
	gate, err := p.MakeGateDD(cyclicShift(3), 0, nil)
	require.NoError(t, err)
	once, err := p.ConjugateTranspose(gate)
	require.NoError(t, err)
	twice, err := p.ConjugateTranspose(once)
	require.NoError(t, err)
	requireMatEqual(t, p, twice, gate, 3)
}

// TestInnerProductNormAndOrthogonality checks property P6:
// innerProduct(x, x) == ||x||^2, and distinct basis states are orthogonal.
func TestInnerProductNormAndOrthogonality(t *testing.T) {
	p := newTestPackage(t, 2)
	zero, err := p.MakeBasisState([]int{0})
	require.NoError(t, err)
	one, err := p.MakeBasisState([]int{1})
	require.NoError(t, err)
	selfIP, err := p.InnerProduct(zero, zero)
	require.NoError(t, err)
	require.True(t, selfIP.approximatelyOne(1e-9), "<0|0> = %v, want 1", selfIP)

	crossIP, err := p.InnerProduct(zero, one)
	require.NoError(t, err)
	require.True(t, crossIP.approximatelyZero(1e-9), "<0|1> = %v, want 0", crossIP)
}

// TestInnerProductConjugateSymmetry checks property P6:
// innerProduct(x, y) == conj(innerProduct(y, x)).
func TestInnerProductConjugateSymmetry(t *testing.T) {
	p := newTestPackage(t, 2)
	zero, err := p.MakeBasisState([]int{0})
	require.NoError(t, err)
	h, err := p.MakeGateDD(hadamard(), 0, nil)
	require.NoError(t, err)
	plus, err := p.Multiply(h, zero)
	require.NoError(t, err)
	xy, err := p.InnerProduct(zero, plus)
	require.NoError(t, err)
	yx, err := p.InnerProduct(plus, zero)
	require.NoError(t, err)
	cyx := conj(yx)
	require.InDelta(t, 0.0, cmplx.Abs(complex(xy.Real(), xy.Imag())-complex(cyx.Real(), cyx.Imag())), 1e-9,
		"<x|y> = %v, conj(<y|x>) = %v, must match", xy, cyx)
}

func TestFidelityIsSquaredMagnitudeOfInnerProduct(t *testing.T) {
	p := newTestPackage(t, 2)
	zero, err := p.MakeBasisState([]int{0})
	require.NoError(t, err)
	h, err := p.MakeGateDD(hadamard(), 0, nil)
	require.NoError(t, err)
	plus, err := p.Multiply(h, zero)
	require.NoError(t, err)
	fid, err := p.Fidelity(zero, plus)
	require.NoError(t, err)
	require.InDelta(t, 0.5, fid, 1e-9, "Fidelity(|0>, |+>)")
}
