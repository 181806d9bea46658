// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Stats returns a short human-readable summary of a Package's table
// occupancy, following rudd's Stats (stdio.go): node counts per kind, the
// scalar store's size, and — only in a debug build — the hit/miss counters
// each compute table maintains under the "debug" build tag.
func (p *Package) Stats() string {
	res := fmt.Sprintf("Registers:      %d\n", len(p.Radices))
	res += fmt.Sprintf("Vector nodes:   %d\n", p.vUnique.size())
	res += fmt.Sprintf("Matrix nodes:   %d\n", p.mUnique.size())
	res += fmt.Sprintf("Scalars:        %d\n", p.cn.table.size())
	res += fmt.Sprintf("Identity cache: %d prefixes\n", len(p.idTable))
	if _DEBUG {
		res += "================\n"
		res += fmt.Sprintf("add   hits/misses: %d/%d\n", p.addCache.hits, p.addCache.misses)
		res += fmt.Sprintf("mul   hits/misses: %d/%d\n", p.mulCache.hits, p.mulCache.misses)
		res += fmt.Sprintf("kron  hits/misses: %d/%d\n", p.kronCache.hits, p.kronCache.misses)
		res += fmt.Sprintf("inner hits/misses: %d/%d\n", p.innerCache.hits, p.innerCache.misses)
	}
	return res
}

// Serialize writes a depth-first dump of Edge e's terminal weights to w, two
// float64s (real, imaginary) per terminal reached, exactly as spec.md §6
// describes: "a binary stream of the two complex doubles per terminal weight
// in depth-first order, suitable for debugging." There is deliberately no
// matching Deserialize: this is a debugging aid, not an on-disk format (the
// spec explicitly rules persistent DDs out of scope).
func (p *Package) Serialize(w io.Writer, e Edge) error {
	return p.serializeWalk(w, e)
}

func (p *Package) serializeWalk(w io.Writer, e Edge) error {
	if e.isTerminal() {
		return writeComplex(w, e.weight)
	}
	for _, c := range e.node.children {
		combined := Edge{node: c.node, weight: p.cn.lookup(p.cn.mul(e.weight, c.weight))}
		if err := p.serializeWalk(w, combined); err != nil {
			return err
		}
	}
	return nil
}

func writeComplex(w io.Writer, c Complex) error {
	if err := binary.Write(w, binary.LittleEndian, c.Real()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Imag())
}
