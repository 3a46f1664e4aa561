// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package util

// Magic FNV Base constant as suitable for a FNV-64 hash.
const fnvBase = uint64(14695981039346656037)
const fnvPrime = 1099511628211

// FNV64Init returns the initial state of an FNV-64 hash.
func FNV64Init() uint64 {
	return fnvBase
}

// FNV64AddToHash folds a single value into the hash state.
func FNV64AddToHash(s0 uint64, c int32) uint64 {
	s0 *= fnvPrime
	s0 ^= uint64(c)
	return s0
}

// FNV64AddString folds every rune of s into the hash state, followed by a
// terminator so that adjacent strings hash differently from their
// concatenation.
func FNV64AddString(s0 uint64, s string) uint64 {
	for _, r := range s {
		s0 = FNV64AddToHash(s0, r)
	}
	return FNV64AddToHash(s0, -1)
}

// FNV64AddUint64 folds all eight bytes of v into the hash state.
func FNV64AddUint64(s0 uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		s0 = FNV64AddToHash(s0, int32(v&0xff))
		v >>= 8
	}
	return s0
}
