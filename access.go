// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// GetReprOfIndex decomposes a linear basis index into its per-register
// digits, register 0 first, following the little-endian mixed-radix
// encoding spec.md's (R1) round-trip property assumes: register i's digit
// is weighted by the product of the radices of every register below it.
func (p *Package) GetReprOfIndex(index int) []int {
	repr := make([]int, len(p.Radices))
	for r := 0; r < len(p.Radices); r++ {
		repr[r] = index % p.Radices[r]
		index /= p.Radices[r]
	}
	return repr
}

// GetValueByIndices returns the amplitude at vector Edge e selected by
// repr, one digit per register (as produced by GetReprOfIndex), descending
// from the topmost register down to register 0 and multiplying weights
// along the way. A subtree that has collapsed to the zero terminal ends
// the descent early: its carried weight (zero) is already the answer for
// every digit choice below that point.
func (p *Package) GetValueByIndices(e Edge, repr []int) (complex128, error) {
	if e.node == nil || e.node.kind != vectorNode {
		return 0, invalidArgument("getValueByIndices: operand must be a vector")
	}
	if len(repr) != len(p.Radices) {
		return 0, invalidArgument("getValueByIndices: need %d register digits, got %d", len(p.Radices), len(repr))
	}
	cur := e
	for r := len(p.Radices) - 1; r >= 0; r-- {
		if cur.isTerminal() {
			break
		}
		k := repr[r]
		if k < 0 || k >= p.Radices[r] {
			return 0, outOfRange("getValueByIndices: register %d digit %d out of range [0,%d)", r, k, p.Radices[r])
		}
		c := cur.node.children[k]
		cur = Edge{node: c.node, weight: p.cn.mul(cur.weight, c.weight)}
	}
	return complex(cur.weight.Real(), cur.weight.Imag()), nil
}

// GetMatrixValueByIndices is GetValueByIndices' matrix counterpart: rowRepr
// and colRepr each give one digit per register, and at each level the two
// digits combine into the row*d+col child index a matrix node actually
// stores, following original_source's getValueByPath(mEdge, reprI, reprJ).
func (p *Package) GetMatrixValueByIndices(e Edge, rowRepr, colRepr []int) (complex128, error) {
	if e.node == nil || e.node.kind != matrixNode {
		return 0, invalidArgument("getMatrixValueByIndices: operand must be a matrix")
	}
	if len(rowRepr) != len(p.Radices) || len(colRepr) != len(p.Radices) {
		return 0, invalidArgument("getMatrixValueByIndices: need %d register digits per index", len(p.Radices))
	}
	cur := e
	for r := len(p.Radices) - 1; r >= 0; r-- {
		if cur.isTerminal() {
			break
		}
		d := p.Radices[r]
		i, j := rowRepr[r], colRepr[r]
		if i < 0 || i >= d || j < 0 || j >= d {
			return 0, outOfRange("getMatrixValueByIndices: register %d indices (%d,%d) out of range [0,%d)", r, i, j, d)
		}
		c := cur.node.children[i*d+j]
		cur = Edge{node: c.node, weight: p.cn.mul(cur.weight, c.weight)}
	}
	return complex(cur.weight.Real(), cur.weight.Imag()), nil
}

// GetValueByPath looks up an amplitude by a single-character-per-register
// digit string, leftmost character for the topmost register down to the
// rightmost for register 0 — matching the literal path strings spec.md's
// scenarios use ("00", "40", ...). For a matrix Edge each character is
// already the combined row*d+col child index (as in the Hadamard/qutrit
// scenario's "40"), which only fits a single decimal digit while d*d <= 9;
// GetMatrixValueByIndices is the general-purpose accessor for larger radix
// combinations.
func (p *Package) GetValueByPath(e Edge, path string) (complex128, error) {
	digits := []rune(path)
	if len(digits) != len(p.Radices) {
		return 0, invalidArgument("getValueByPath: need %d path digits, got %d", len(p.Radices), len(digits))
	}
	repr := make([]int, len(p.Radices))
	for i, ch := range digits {
		r := len(p.Radices) - 1 - i
		v, err := digitValue(ch)
		if err != nil {
			return 0, err
		}
		repr[r] = v
	}
	if e.node != nil && e.node.kind == matrixNode {
		rowRepr := make([]int, len(repr))
		colRepr := make([]int, len(repr))
		for r, k := range repr {
			d := p.Radices[r]
			if k >= d*d {
				return 0, outOfRange("getValueByPath: register %d child index %d out of range [0,%d)", r, k, d*d)
			}
			rowRepr[r], colRepr[r] = k/d, k%d
		}
		return p.GetMatrixValueByIndices(e, rowRepr, colRepr)
	}
	return p.GetValueByIndices(e, repr)
}

func digitValue(ch rune) (int, error) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), nil
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10, nil
	default:
		return 0, invalidArgument("getValueByPath: invalid path digit %q", ch)
	}
}

// GetVector returns the dense, row-major (register 0 fastest-varying)
// amplitude array of a vector Edge.
func (p *Package) GetVector(e Edge) ([]complex128, error) {
	if e.node == nil || e.node.kind != vectorNode {
		return nil, invalidArgument("getVector: operand must be a vector")
	}
	dim := 1
	for _, d := range p.Radices {
		dim *= d
	}
	out := make([]complex128, dim)
	for idx := 0; idx < dim; idx++ {
		v, err := p.GetValueByIndices(e, p.GetReprOfIndex(idx))
		if err != nil {
			return nil, err
		}
		out[idx] = v
	}
	return out, nil
}

// GetVectorizedMatrix returns the dense dim x dim amplitude matrix of a
// matrix Edge, flattened row-major (out[i*dim+j] = M[i][j]).
func (p *Package) GetVectorizedMatrix(e Edge) ([]complex128, error) {
	if e.node == nil || e.node.kind != matrixNode {
		return nil, invalidArgument("getVectorizedMatrix: operand must be a matrix")
	}
	dim := 1
	for _, d := range p.Radices {
		dim *= d
	}
	out := make([]complex128, dim*dim)
	for i := 0; i < dim; i++ {
		rowRepr := p.GetReprOfIndex(i)
		for j := 0; j < dim; j++ {
			colRepr := p.GetReprOfIndex(j)
			v, err := p.GetMatrixValueByIndices(e, rowRepr, colRepr)
			if err != nil {
				return nil, err
			}
			out[i*dim+j] = v
		}
	}
	return out, nil
}
