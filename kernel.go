// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

// MaxRegisters bounds the number of quantum registers a Package can manage.
// The original MQT package encodes a register index in a signed 8-bit field;
// we keep the same bound rather than silently accepting more registers than
// the rest of the corpus's path/index encodings were designed for.
const MaxRegisters int = 127

// MinRadix and MaxRadix bound the valid per-register radices (a qubit has
// radix 2, a qutrit radix 3, ..., up to radix 7).
const MinRadix int = 2
const MaxRadix int = 7

// _MAXREFCOUNT is the maximal value of the reference counter, also used to
// stick entries (like the Zero/One scalars and terminal nodes) in their
// table so that garbage collection never reclaims them. 10 bits, as in rudd.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTTOLERANCE is the default tolerance used to compare floating point
// numbers when looking them up in the scalar store or deciding whether a
// weight is approximately zero/one.
const _DEFAULTTOLERANCE float64 = 1e-13

// _DEFAULTSCALARTABLESIZE is the initial number of buckets in the scalar
// store's hash table.
const _DEFAULTSCALARTABLESIZE int = 32768

// _DEFAULTNODETABLESIZE is the default value of the NodeTableSize option;
// the unique tables themselves do not read it (see NodeTableSize).
const _DEFAULTNODETABLESIZE int = 2048

// _DEFAULTCOMPUTETABLESIZE is the initial number of slots in each memoized
// operator's compute table, rounded up to a prime by primeGte.
const _DEFAULTCOMPUTETABLESIZE int = 32768

// _DEFAULTKRONECKERTABLESIZE is the initial number of slots in the
// Kronecker-product compute table; kept smaller than the other compute
// tables since its key space (pairs of small sub-diagrams) is narrower.
const _DEFAULTKRONECKERTABLESIZE int = 4096

// _DEFAULTCACHESIZE is not referenced by any code: scratch complex numbers
// are allocated fresh on every getTemporary call (complex.go), so there is
// no scratch pool for it to size.
const _DEFAULTCACHESIZE int = 2000

// _MINFREESCALARS is the minimal percentage of free scalar-table slots that
// must remain after a garbage collection before a resize is triggered.
const _MINFREESCALARS int = 20
