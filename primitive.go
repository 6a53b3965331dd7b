// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

// Primitive is the external 256 bit hash contract the engine is built on. It
// is treated as an opaque, deterministic, collision resistant function from
// arbitrary length byte input to a fixed 32 byte digest, plus batched
// variants computing many digests in a single call.
//
// All methods write digests into a caller supplied destination, which for the
// batched variants must hold exactly one 32 byte digest per input.
type Primitive interface {
	// Algorithm returns the identifier of the hash variant, e.g. "sha256" or
	// "blake2s-256".
	Algorithm() string

	// Sum writes the digest of input into dst.
	Sum(dst, input []byte)

	// SumPair writes the digest of a followed by b into dst. Equivalent to
	// Sum over the concatenation, without materializing it.
	SumPair(dst, a, b []byte)

	// SumStrided computes one digest per consecutive stride-byte record of
	// input, writing the digests contiguously into dst.
	SumStrided(dst, input []byte, stride int)

	// SumAdjacentPairs computes one digest per adjacent pair of half-width
	// chunks: record i covers input[i*pairWidth : (i+1)*pairWidth] and its
	// digest is the pair hash of that record's two halves. This is the
	// building block that produces one tree level from the level below.
	SumAdjacentPairs(dst, input []byte, pairWidth int)

	// SumRows merges equal length columns row by row: the i-th digest is the
	// hash of the i-th element of every column, concatenated in column order.
	// Element sizes are given per column.
	SumRows(dst []byte, columns [][]byte, elemSizes []int)
}

// sumStridedGeneric is the scalar fallback for SumStrided, digesting one
// record at a time.
func sumStridedGeneric(p Primitive, dst, input []byte, stride int) {
	for off := 0; off+stride <= len(input); off += stride {
		p.Sum(dst[:DigestSize], input[off:off+stride])
		dst = dst[DigestSize:]
	}
}

// sumAdjacentPairsGeneric is the scalar fallback for SumAdjacentPairs,
// hashing one chunk pair at a time.
func sumAdjacentPairsGeneric(p Primitive, dst, input []byte, pairWidth int) {
	half := pairWidth / 2
	for off := 0; off+pairWidth <= len(input); off += pairWidth {
		p.SumPair(dst[:DigestSize], input[off:off+half], input[off+half:off+pairWidth])
		dst = dst[DigestSize:]
	}
}

// sumRowsGeneric is the scalar fallback for SumRows, gathering each row into
// a reused buffer and digesting it.
func sumRowsGeneric(p Primitive, dst []byte, columns [][]byte, elemSizes []int) {
	width, count := rowShape(columns, elemSizes)

	row := make([]byte, width)
	for i := 0; i < count; i++ {
		gatherRow(row, columns, elemSizes, i)
		p.Sum(dst[i*DigestSize:(i+1)*DigestSize], row)
	}
}

// rowShape returns the concatenated row width and the row count of a column
// set.
func rowShape(columns [][]byte, elemSizes []int) (width int, count int) {
	for _, size := range elemSizes {
		width += size
	}
	if len(columns) > 0 && elemSizes[0] > 0 {
		count = len(columns[0]) / elemSizes[0]
	}
	return width, count
}

// gatherRow concatenates the i-th element of every column into dst.
func gatherRow(dst []byte, columns [][]byte, elemSizes []int, i int) {
	off := 0
	for c, col := range columns {
		size := elemSizes[c]
		copy(dst[off:off+size], col[i*size:(i+1)*size])
		off += size
	}
}
