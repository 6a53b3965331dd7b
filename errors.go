// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import "errors"

// ErrInvalidElementSize is returned when a row merge is attempted over vectors
// whose element size exceeds the 64 byte merge width, or does not tile it
// evenly (64 modulo the size must be zero).
var ErrInvalidElementSize = errors.New("merkle: element size incompatible with merge width")

// ErrMisalignedBuffer is returned when a record buffer's byte length is not an
// exact multiple of the declared record size.
var ErrMisalignedBuffer = errors.New("merkle: buffer not a multiple of the record size")

// ErrEmptyVectorList is returned when a row merge is attempted over an empty
// list of vectors.
var ErrEmptyVectorList = errors.New("merkle: no vectors to merge")

// ErrLengthMismatch is returned when a row merge is attempted over vectors
// that disagree on their element counts.
var ErrLengthMismatch = errors.New("merkle: vectors differ in element count")

// ErrInvalidTreeDepth is returned when a tree build is requested with a
// negative depth, or one too large for the node buffer to be addressable.
var ErrInvalidTreeDepth = errors.New("merkle: tree depth out of range")

// ErrLeafOverflow is returned when a tree build is handed more leaves than the
// requested depth has capacity for.
var ErrLeafOverflow = errors.New("merkle: leaf count exceeds tree capacity")
