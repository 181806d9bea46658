// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPackage(t *testing.T, radices ...int) *Package {
	t.Helper()
	p, err := New(radices)
	require.NoError(t, err, "New(%v)", radices)
	return p
}

// TestNormalizeVectorUnitNorm checks invariant P2 for vector nodes: the
// children that remain after normalization have unit L2 norm, and the
// argmax child's weight is real and non-negative.
func TestNormalizeVectorUnitNorm(t *testing.T) {
	p := newTestPackage(t, 2)
	children := []Edge{
		{node: vTerminal, weight: p.cn.lookup(rawComplex(3, 4))},
		{node: vTerminal, weight: p.cn.lookup(rawComplex(0, 0))},
	}
	weight, out, ok := p.normalizeVector(children)
	require.True(t, ok, "normalizeVector reported a zero collapse for a nonzero input")
	require.InDelta(t, 4.0, weight.Imag(), 1e-9, "extracted weight keeps the argmax child's phase")
	require.Greater(t, weight.Real(), 0.0, "extracted weight should carry the full magnitude")

	sum := 0.0
	for _, c := range out {
		sum += mag2(c.weight)
	}
	require.InDelta(t, 1.0, sum, 1e-9, "normalized vector children must have unit L2 norm")

	argmax := out[0]
	require.Zero(t, argmax.weight.Imag())
	require.GreaterOrEqual(t, argmax.weight.Real(), 0.0, "argmax child weight must be real and non-negative")
}

func TestNormalizeVectorAllZeroCollapses(t *testing.T) {
	p := newTestPackage(t, 2)
	children := []Edge{
		{node: vTerminal, weight: p.cn.Zero()},
		{node: vTerminal, weight: p.cn.Zero()},
	}
	_, _, ok := p.normalizeVector(children)
	require.False(t, ok, "normalizeVector must report a collapse when every child is zero")
}

// TestNormalizeMatrixMaxEntryIsOne checks invariant P2 for matrix nodes: the
// largest-magnitude child becomes exactly One and the others are divided by
// the extracted weight, without any renormalization step.
func TestNormalizeMatrixMaxEntryIsOne(t *testing.T) {
	p := newTestPackage(t, 2)
	children := []Edge{
		{node: mTerminal, weight: p.cn.lookup(rawComplex(2, 0))},
		{node: mTerminal, weight: p.cn.Zero()},
		{node: mTerminal, weight: p.cn.Zero()},
		{node: mTerminal, weight: p.cn.lookup(rawComplex(1, 0))},
	}
	weight, out, ok := p.normalizeMatrix(children)
	require.True(t, ok, "normalizeMatrix reported a zero collapse for a nonzero input")
	require.Equal(t, 2.0, weight.Real(), "extracted weight should be the argmax child's own value")
	require.Zero(t, weight.Imag())
	require.True(t, out[0].weight.approximatelyOne(1e-12), "argmax child must become exactly One")

	maxMag2 := 0.0
	for _, c := range out {
		if m := mag2(c.weight); m > maxMag2 {
			maxMag2 = m
		}
	}
	require.InDelta(t, 1.0, maxMag2, 1e-9, "max child magnitude-squared must be exactly 1 after matrix normalization")
	require.InDelta(t, 0.5, out[3].weight.Real(), 1e-9, "sibling child should be divided by the extracted weight")
}

func TestNormalizeMatrixAllZeroCollapses(t *testing.T) {
	p := newTestPackage(t, 2)
	children := make([]Edge, 4)
	for i := range children {
		children[i] = Edge{node: mTerminal, weight: p.cn.Zero()}
	}
	_, _, ok := p.normalizeMatrix(children)
	require.False(t, ok, "normalizeMatrix must report a collapse when every child is zero")
}
