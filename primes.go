// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import "math/big"

// functions for Prime number calculations, used to size compute tables and
// unique tables so that index arithmetic distributes well across buckets.

func hasFactor(src int, n int) bool {
	return (src != n) && (src%n == 0)
}

func hasEasyFactors(src int) bool {
	return hasFactor(src, 3) || hasFactor(src, 5) || hasFactor(src, 7) || hasFactor(src, 11) || hasFactor(src, 13)
}

func primeGte(src int) int {
	if src%2 == 0 {
		src++
	}
	for {
		if hasEasyFactors(src) {
			src += 2
			continue
		}
		// ProbablyPrime is 100% accurate for inputs less than 2^64.
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}

func primeLte(src int) int {
	if src == 0 {
		return 1
	}
	if src%2 == 0 {
		src--
	}
	for {
		if hasEasyFactors(src) {
			src -= 2
			continue
		}
		if big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src -= 2
	}
}
