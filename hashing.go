// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "unsafe"

// murmur64 is the 64-bit finalizer mix from MurmurHash3, used throughout
// this package to turn a pointer-sized key into a well-distributed hash.
// It is the exact constant set used by the original MQT DD package this
// kernel is ported from.
func murmur64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// combineHash mixes a second hash value into the first, following the
// Boost-style combine used by the original MQT DD package.
func combineHash(lhs, rhs uint64) uint64 {
	lhs ^= rhs + 0x9e3779b97f4a7c15 + (lhs << 6) + (lhs >> 2)
	return lhs
}

// hashPointer folds a pointer's address into the murmur64 finalizer.
func hashPointer(p unsafe.Pointer) uint64 {
	return murmur64(uint64(uintptr(p)))
}

// hashPointerVal is a small generic convenience wrapper around hashPointer
// for the *ddNode and *scalarEntry pointers compute-table and unique-table
// keys are built from.
func hashPointerVal[T any](p *T) uint64 {
	return hashPointer(unsafe.Pointer(p))
}
