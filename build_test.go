// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

func hadamard() [][]complex128 {
	s := 1 / math.Sqrt2
	return [][]complex128{
		{complex(s, 0), complex(s, 0)},
		{complex(s, 0), complex(-s, 0)},
	}
}

// cyclicShift returns the d x d permutation matrix implementing |k> -> |k+1
// mod d>, the qudit generalization of the Pauli X gate.
func cyclicShift(d int) [][]complex128 {
	mat := make([][]complex128, d)
	for i := range mat {
		mat[i] = make([]complex128, d)
	}
	for j := 0; j < d; j++ {
		mat[(j+1)%d][j] = 1
	}
	return mat
}

func TestMakeZeroStateIsNormalized(t *testing.T) {
	p := newTestPackage(t, 2, 3)
	psi, err := p.MakeZeroState()
	require.NoError(t, err)
	vec, err := p.GetVector(psi)
	require.NoError(t, err)
	require.InDelta(t, 1.0, cmplx.Abs(vec[0]), 1e-9, "|0...0> amplitude at index 0")
	for i := 1; i < len(vec); i++ {
		require.InDelta(t, 0.0, cmplx.Abs(vec[i]), 1e-9, "|0...0> amplitude at index %d", i)
	}
}

// TestMakeBasisStateRoundTrip checks property R1: getVector(makeBasisState)
// has a single 1 at the index implied by the little-endian mixed-radix
// encoding GetReprOfIndex/GetValueByIndices assume.
func TestMakeBasisStateRoundTrip(t *testing.T) {
	p := newTestPackage(t, 2, 3, 2)
	indices := []int{1, 2, 0}
	want := indices[0] + indices[1]*2 + indices[2]*2*3

	psi, err := p.MakeBasisState(indices)
	require.NoError(t, err)
	vec, err := p.GetVector(psi)
	require.NoError(t, err)
	for i, amp := range vec {
		expected := complex128(0)
		if i == want {
			expected = 1
		}
		require.InDelta(t, 0.0, cmplx.Abs(amp-expected), 1e-9, "amplitude at index %d", i)
	}
}

// TestStructuralUniqueness checks property P1: building the same basis
// state twice (independently) must return the same node pointer both
// times, since the unique table hash-conses by structure.
func TestStructuralUniqueness(t *testing.T) {
	p := newTestPackage(t, 2, 3)
	a, err := p.MakeBasisState([]int{1, 2})
	require.NoError(t, err)
	b, err := p.MakeBasisState([]int{1, 2})
	require.NoError(t, err)
	require.Same(t, a.node, b.node, "two structurally identical basis states produced distinct node pointers")
	require.True(t, a.weight.Equal(b.weight), "two structurally identical basis states produced distinct canonical weights")
}

func TestMakeIdentityIsDiagonalAndFlagged(t *testing.T) {
	p := newTestPackage(t, 2, 3)
	id, err := p.makeIdentity(1)
	require.NoError(t, err)
	require.False(t, id.isTerminal())
	require.True(t, id.node.identity, "makeIdentity's result must be flagged identity")

	mat, err := p.GetVectorizedMatrix(id)
	require.NoError(t, err)
	dim := 6
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			require.InDelta(t, 0.0, cmplx.Abs(mat[i*dim+j]-want), 1e-9, "identity[%d][%d]", i, j)
		}
	}
}

func TestMakeIdentityCachesLadderPrefixes(t *testing.T) {
	p := newTestPackage(t, 2, 3, 2)
	hi, err := p.makeIdentity(2)
	require.NoError(t, err)
	lo, ok := p.idTable[1]
	require.True(t, ok, "makeIdentity must cache every prefix it builds, not just the final one")
	require.EqualValues(t, 1, lo.node.varIndex, "cached prefix at key 1 should sit at level 1")
	_ = hi
}

// TestMakeGateDDControlledOnlyAppliesAtMatchingLevel builds a cyclic-shift
// gate on register 0 (a qutrit), controlled by register 1 (a qubit) at
// level 1. Since register 1 sits above the target in variable-index order,
// the control is realized by the top-down wrapLevel pass; it lifts the
// uncontrolled block to plain identity and the controlled block to the raw
// gate, block-diagonal in register 1.
func TestMakeGateDDControlledOnlyAppliesAtMatchingLevel(t *testing.T) {
	p := newTestPackage(t, 3, 2)
	gate, err := p.MakeGateDD(cyclicShift(3), 0, []Control{{Register: 1, Value: 1}})
	require.NoError(t, err)
	mat, err := p.GetVectorizedMatrix(gate)
	require.NoError(t, err)
	dim := 6
	// Basis order is register-0-fastest: index = r0 + r1*3.
	idx := func(r0, r1 int) int { return r0 + r1*3 }
	// Uncontrolled block (r1 == 0) must be identity.
	for r0 := 0; r0 < 3; r0++ {
		i := idx(r0, 0)
		for j := 0; j < dim; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			require.InDelta(t, 0.0, cmplx.Abs(mat[i*dim+j]-want), 1e-9, "uncontrolled block entry [%d][%d]", i, j)
		}
	}
	// Controlled block (r1 == 1) must cyclically shift register 0.
	for r0 := 0; r0 < 3; r0++ {
		i := idx((r0+1)%3, 1)
		j := idx(r0, 1)
		require.InDelta(t, 1.0, cmplx.Abs(mat[i*dim+j]), 1e-9, "controlled shift entry [%d][%d]", i, j)
	}
}
