// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarTableCanonicity(t *testing.T) {
	tbl := newScalarTable(1e-9, 16)
	a := tbl.lookup(0.5)
	b := tbl.lookup(0.5 + 1e-12)
	require.Same(t, a, b, "two values within tolerance got distinct entries")

	c := tbl.lookup(0.500001)
	require.NotSame(t, a, c, "values outside tolerance incorrectly collided")
}

func TestScalarTableZeroOneAreSticky(t *testing.T) {
	tbl := newScalarTable(1e-9, 16)
	z := tbl.lookup(1e-15)
	require.Same(t, tbl.zero, z, "near-zero value did not canonicalize to the pinned zero entry")

	one := tbl.lookup(1 + 1e-15)
	require.Same(t, tbl.one, one, "near-one value did not canonicalize to the pinned one entry")

	tbl.incRef(z)
	tbl.decRef(one)
	require.Equal(t, _MAXREFCOUNT, z.refCount, "zero refcount must stay pinned at _MAXREFCOUNT")
	require.Equal(t, _MAXREFCOUNT, one.refCount, "one refcount must stay pinned at _MAXREFCOUNT")
}

func TestScalarTableRefcountSaturatesAndSticks(t *testing.T) {
	tbl := newScalarTable(1e-9, 16)
	e := tbl.lookup(3.14159)
	e.refCount = _MAXREFCOUNT
	tbl.incRef(e)
	require.Equal(t, _MAXREFCOUNT, e.refCount, "refcount must not exceed _MAXREFCOUNT")

	tbl.decRef(e)
	require.Equal(t, _MAXREFCOUNT, e.refCount, "a refcount pinned at _MAXREFCOUNT must never be decremented")
}

func TestScalarTableGarbageCollectReclaimsOnlyZeroRefcount(t *testing.T) {
	tbl := newScalarTable(1e-9, 16)
	live := tbl.lookup(2.0)
	tbl.incRef(live)
	dead := tbl.lookup(7.0)
	before := tbl.size()
	reclaimed := tbl.garbageCollect()
	require.Equal(t, 1, reclaimed, "expected exactly one reclaimed entry")
	require.Equal(t, before-1, tbl.size(), "table size did not shrink by the reclaimed count")
	_ = dead
}
