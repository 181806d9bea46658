// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// Package is the central handle for an MDD universe: a fixed register
// (radix) table, the shared scalar store, the per-kind node unique
// tables, the memoized-operator compute tables, and the identity-diagram
// cache. It plays the same role here that *BDD plays in rudd: one value
// per independent "universe" of diagrams, constructed with New and
// configured through functional options.
type Package struct {
	Radices   []int
	tolerance float64

	cn      *complexNumbers
	vUnique *uniqueTable
	mUnique *uniqueTable

	addCache            *computeTable2
	mulCache            *computeTable2
	kronCache           *computeTable2
	innerCache          *computeTable2
	transposeCache      *computeTable1
	conjTransposeCache  *computeTable1

	idTable map[int]Edge // identity ladder, keyed by most-significant register index

	cfg *configs
	err error
}

// New constructs a Package for the given register radices (radices[i] is
// the dimension of register i; every entry must be within
// [MinRadix, MaxRadix], and len(radices) must not exceed MaxRegisters).
// Following rudd's New, configuration is supplied through functional
// options such as Tolerance or MaxNodeTableSize.
func New(radices []int, options ...func(*configs)) (*Package, error) {
	if len(radices) == 0 {
		return nil, invalidArgument("a package needs at least one register")
	}
	if len(radices) > MaxRegisters {
		return nil, invalidArgument("too many registers: %d (max %d)", len(radices), MaxRegisters)
	}
	for i, d := range radices {
		if d < MinRadix || d > MaxRadix {
			return nil, invalidArgument("register %d has invalid radix %d (must be in [%d,%d])", i, d, MinRadix, MaxRadix)
		}
	}
	cfg := makeconfigs(radices)
	for _, opt := range options {
		opt(cfg)
	}

	p := &Package{
		Radices:   append([]int(nil), radices...),
		tolerance: cfg.tolerance,
		cfg:       cfg,
	}
	p.cn = newComplexNumbers(cfg.tolerance, cfg.scalarTableSize)
	p.vUnique = newUniqueTable(len(radices))
	p.mUnique = newUniqueTable(len(radices))
	p.addCache = newComputeTable2(cfg.computeTableSize, cfg.computeTableRatio)
	p.mulCache = newComputeTable2(cfg.computeTableSize, cfg.computeTableRatio)
	p.kronCache = newComputeTable2(_DEFAULTKRONECKERTABLESIZE, cfg.computeTableRatio)
	p.innerCache = newComputeTable2(cfg.computeTableSize, cfg.computeTableRatio)
	p.transposeCache = newComputeTable1(cfg.computeTableSize)
	p.conjTransposeCache = newComputeTable1(cfg.computeTableSize)
	p.idTable = make(map[int]Edge)
	return p, nil
}

// NumRegisters returns the number of quantum registers this Package was
// constructed with.
func (p *Package) NumRegisters() int { return len(p.Radices) }

// Resize extends the Package with additional registers, following rudd's
// SetVarnum/ExtVarnum pattern of growing a fixed-size table in place
// rather than requiring callers to rebuild everything from scratch. New
// registers are appended above the existing ones (addressable as the new
// highest variable indices); the identity cache and unique tables grow to
// match.
func (p *Package) Resize(extraRadices []int) error {
	p.clearerror()
	if len(p.Radices)+len(extraRadices) > MaxRegisters {
		return p.fail(invalidArgument("resize would exceed MaxRegisters (%d)", MaxRegisters))
	}
	for i, d := range extraRadices {
		if d < MinRadix || d > MaxRadix {
			return p.fail(invalidArgument("new register %d has invalid radix %d", i, d))
		}
	}
	p.Radices = append(p.Radices, extraRadices...)
	grown := len(p.Radices)
	growUnique(p.vUnique, grown)
	growUnique(p.mUnique, grown)
	return nil
}

func growUnique(t *uniqueTable, levels int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.buckets) < levels {
		t.buckets = append(t.buckets, make(map[uint64][]*ddNode))
	}
}
