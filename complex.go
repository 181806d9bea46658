// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"math"
	"strconv"
)

// Complex is an Edge weight: a complex number whose real and imaginary
// magnitudes are hash-consed in a scalarTable, with the sign of each
// component carried alongside the pointer. Two Complex values that denote
// the same number always compare equal field-by-field, which is what lets
// node unique tables and compute tables use Complex as a plain map/struct
// key instead of comparing floats.
type Complex struct {
	real, imag         *scalarEntry
	negReal, negImag bool
}

// Real returns the real part as a float64.
func (c Complex) Real() float64 {
	if c.negReal {
		return -c.real.value
	}
	return c.real.value
}

// Imag returns the imaginary part as a float64.
func (c Complex) Imag() float64 {
	if c.negImag {
		return -c.imag.value
	}
	return c.imag.value
}

// Equal reports whether c and o denote the same canonical weight. It is a
// plain struct comparison: valid only when both operands are canonical
// (obtained from complexNumbers.lookup), never for scratch values.
func (c Complex) Equal(o Complex) bool {
	return c.real == o.real && c.imag == o.imag && c.negReal == o.negReal && c.negImag == o.negImag
}

func (c Complex) approximatelyZero(tol float64) bool {
	return math.Abs(c.Real()) < tol && math.Abs(c.Imag()) < tol
}

func (c Complex) approximatelyOne(tol float64) bool {
	return math.Abs(c.Real()-1) < tol && math.Abs(c.Imag()) < tol
}

func (c Complex) approximatelyEqual(o Complex, tol float64) bool {
	return math.Abs(c.Real()-o.Real()) < tol && math.Abs(c.Imag()-o.Imag()) < tol
}

func (c Complex) String() string {
	if c.Imag() == 0 {
		return formatFloat(c.Real())
	}
	sign := "+"
	if c.Imag() < 0 {
		sign = "-"
	}
	return formatFloat(c.Real()) + sign + formatFloat(math.Abs(c.Imag())) + "i"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// complexNumbers bundles the scalar store with a set of stateless
// arithmetic helpers, mirroring ComplexNumbers in the original MQT DD
// package: a thin façade over the scalar table that knows how to add,
// multiply, divide, conjugate, and negate Edge weights, and how to
// canonicalize a freshly computed (r, i) pair back into the table.
type complexNumbers struct {
	table *scalarTable
}

func newComplexNumbers(tolerance float64, size int) *complexNumbers {
	return &complexNumbers{table: newScalarTable(tolerance, size)}
}

// Zero and One are the two pinned weights shared by every Edge that needs
// them; they are never reference counted or garbage collected.
func (cn *complexNumbers) Zero() Complex { return Complex{real: cn.table.zero, imag: cn.table.zero} }
func (cn *complexNumbers) One() Complex {
	return Complex{real: cn.table.one, imag: cn.table.zero}
}

func rawComplex(real, imag float64) Complex {
	c := Complex{real: &scalarEntry{value: real}, imag: &scalarEntry{value: imag}}
	if real < 0 {
		c.real.value = -real
		c.negReal = true
	}
	if imag < 0 {
		c.imag.value = -imag
		c.negImag = true
	}
	return c
}

// add, sub, mul and div operate on scratch (r, i) pairs and return a
// scratch Complex (when mul or div short-circuits, it returns one of its
// operands or the pinned Zero/One instead of a fresh value); they never
// touch the scalar table. Callers canonicalize
// the result with lookup once it is ready to become an Edge weight.
func (cn *complexNumbers) add(a, b Complex) Complex {
	return rawComplex(a.Real()+b.Real(), a.Imag()+b.Imag())
}

func (cn *complexNumbers) sub(a, b Complex) Complex {
	return rawComplex(a.Real()-b.Real(), a.Imag()-b.Imag())
}

func (cn *complexNumbers) mul(a, b Complex) Complex {
	tol := cn.table.tolerance
	if a.approximatelyOne(tol) {
		return b
	}
	if b.approximatelyOne(tol) {
		return a
	}
	if a.approximatelyZero(tol) || b.approximatelyZero(tol) {
		return cn.Zero()
	}
	ar, ai, br, bi := a.Real(), a.Imag(), b.Real(), b.Imag()
	return rawComplex(ar*br-ai*bi, ar*bi+ai*br)
}

func (cn *complexNumbers) div(a, b Complex) Complex {
	tol := cn.table.tolerance
	if a.approximatelyEqual(b, tol) {
		return cn.One()
	}
	if b.approximatelyOne(tol) {
		return a
	}
	ar, ai, br, bi := a.Real(), a.Imag(), b.Real(), b.Imag()
	denom := br*br + bi*bi
	return rawComplex((ar*br+ai*bi)/denom, (ai*br-ar*bi)/denom)
}

func mag2(c Complex) float64 {
	r, i := c.Real(), c.Imag()
	return r*r + i*i
}

func mag(c Complex) float64 { return math.Sqrt(mag2(c)) }

// conj negates the imaginary part, unless it is exactly zero (flipping the
// sign of a zero component would create a spurious -0.0 that compares
// unequal to a canonical, always-positive-signed zero entry).
func conj(a Complex) Complex {
	r := a
	if a.imag.value != 0 {
		r.negImag = !r.negImag
	}
	return r
}

// neg flips the sign of both components, unless a component is exactly
// zero. This resolves the "neg" open question: the original package
// compares its real component against the imaginary half of its pinned
// Zero constant when deciding whether to flip the real sign, rather than
// against the real half — an asymmetry with no observable effect there,
// since both halves of that pinned Zero alias the very same table entry.
// We implement the symmetric semantics that comparison was clearly
// reaching for: never flip the sign of a component that is itself zero.
func neg(a Complex) Complex {
	r := a
	if a.imag.value != 0 {
		r.negImag = !r.negImag
	}
	if a.real.value != 0 {
		r.negReal = !r.negReal
	}
	return r
}

// lookup canonicalizes a scratch Complex (as produced by add/sub/mul/div or
// rawComplex) into a hash-consed weight usable as an Edge label, sharing
// structure with any existing entry that has the same magnitude within
// tolerance. Complex::zero and Complex::one are returned as-is.
func (cn *complexNumbers) lookup(c Complex) Complex {
	if c.real == cn.table.zero && c.imag == cn.table.zero {
		return cn.Zero()
	}
	real := cn.table.lookup(math.Abs(c.Real()))
	negReal := false
	if real != cn.table.zero {
		negReal = c.negReal
	}
	imag := cn.table.lookup(math.Abs(c.Imag()))
	negImag := false
	if imag != cn.table.zero {
		negImag = c.negImag
	}
	return Complex{real: real, imag: imag, negReal: negReal, negImag: negImag}
}

// getTemporary returns a fresh scratch Complex, analogous to the original
// package's ComplexCache::getTemporaryComplex. Because Go's garbage
// collector reclaims unreferenced scratch values automatically, this
// package allocates a fresh entry on every call rather than pooling; rudd
// itself relies on the same host-runtime GC for its external node
// references, so this follows the teacher's own approach to memory
// management rather than reimplementing a manual arena.
func (cn *complexNumbers) getTemporary() Complex { return rawComplex(0, 0) }

func (cn *complexNumbers) getTemporaryValue(r, i float64) Complex { return rawComplex(r, i) }

// getCached is an alias for getTemporary kept for parity with the
// original's distinct getCached/getTemporary entry points; both return an
// unshared scratch value in this port.
func (cn *complexNumbers) getCached() Complex { return cn.getTemporary() }

func (cn *complexNumbers) getCachedValue(r, i float64) Complex { return rawComplex(r, i) }

// returnToCache is a no-op retained for API symmetry with the original;
// see the getTemporary comment above.
func (cn *complexNumbers) returnToCache(Complex) {}

func (cn *complexNumbers) incRef(c Complex) {
	if c.real == cn.table.zero && c.imag == cn.table.zero {
		return
	}
	if c.real == cn.table.one && c.imag == cn.table.zero {
		return
	}
	cn.table.incRef(c.real)
	cn.table.incRef(c.imag)
}

func (cn *complexNumbers) decRef(c Complex) {
	if c.real == cn.table.zero && c.imag == cn.table.zero {
		return
	}
	if c.real == cn.table.one && c.imag == cn.table.zero {
		return
	}
	cn.table.decRef(c.real)
	cn.table.decRef(c.imag)
}

func (cn *complexNumbers) garbageCollect() int {
	return cn.table.garbageCollect()
}
