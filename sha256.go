// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import (
	sha256 "github.com/minio/sha256-simd"
	"github.com/prysmaticlabs/gohashtree"
)

// sha256Primitive hashes with sha256. Batches whose records are exactly two
// 32 byte chunks wide go through gohashtree's vectorized core, which computes
// the same digests as the scalar path several records at a time.
type sha256Primitive struct{}

// NewSha256 returns the sha256 hashing primitive.
func NewSha256() Primitive { return sha256Primitive{} }

func (sha256Primitive) Algorithm() string { return "sha256" }

func (sha256Primitive) Sum(dst, input []byte) {
	h := sha256.Sum256(input)
	copy(dst, h[:])
}

func (sha256Primitive) SumPair(dst, a, b []byte) {
	h := sha256.New()
	h.Write(a)
	h.Write(b)

	var d [DigestSize]byte
	h.Sum(d[:0])
	copy(dst, d[:])
}

func (p sha256Primitive) SumStrided(dst, input []byte, stride int) {
	if stride == 2*DigestSize {
		gohashtree.HashByteSlice(dst, input)
		return
	}
	sumStridedGeneric(p, dst, input, stride)
}

func (p sha256Primitive) SumAdjacentPairs(dst, input []byte, pairWidth int) {
	if pairWidth == 2*DigestSize {
		gohashtree.HashByteSlice(dst, input)
		return
	}
	sumAdjacentPairsGeneric(p, dst, input, pairWidth)
}

func (p sha256Primitive) SumRows(dst []byte, columns [][]byte, elemSizes []int) {
	width, count := rowShape(columns, elemSizes)
	if width == 2*DigestSize && count > 0 {
		// Rows are exactly one chunk pair wide: gather them once and hand the
		// whole batch to the vectorized core.
		rows := make([]byte, count*width)
		for i := 0; i < count; i++ {
			gatherRow(rows[i*width:(i+1)*width], columns, elemSizes, i)
		}
		gohashtree.HashByteSlice(dst, rows)
		return
	}
	sumRowsGeneric(p, dst, columns, elemSizes)
}
