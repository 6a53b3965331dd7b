// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import "golang.org/x/crypto/blake2s"

// blake2sPrimitive hashes with blake2s-256. There is no vectorized blake2s
// core to lean on, so the batched variants run the scalar hash per record.
type blake2sPrimitive struct{}

// NewBlake2s returns the blake2s-256 hashing primitive.
func NewBlake2s() Primitive { return blake2sPrimitive{} }

func (blake2sPrimitive) Algorithm() string { return "blake2s-256" }

func (blake2sPrimitive) Sum(dst, input []byte) {
	h := blake2s.Sum256(input)
	copy(dst, h[:])
}

func (blake2sPrimitive) SumPair(dst, a, b []byte) {
	h, _ := blake2s.New256(nil) // unkeyed blake2s cannot fail
	h.Write(a)
	h.Write(b)

	var d [DigestSize]byte
	h.Sum(d[:0])
	copy(dst, d[:])
}

func (p blake2sPrimitive) SumStrided(dst, input []byte, stride int) {
	sumStridedGeneric(p, dst, input, stride)
}

func (p blake2sPrimitive) SumAdjacentPairs(dst, input []byte, pairWidth int) {
	sumAdjacentPairsGeneric(p, dst, input, pairWidth)
}

func (p blake2sPrimitive) SumRows(dst []byte, columns [][]byte, elemSizes []int) {
	sumRowsGeneric(p, dst, columns, elemSizes)
}
