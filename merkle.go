// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package merkle is a batched Merkle tree construction and vectorized hashing
// engine built on a fixed 256 bit hash primitive. It serves commitment schemes
// that need to hash arbitrary byte spans, build complete binary hash trees
// over leaf vectors, and batch-hash large record arrays or merge parallel
// column vectors into row digests, all with as few copies as possible.
//
// All hashing runs inside a shared linear Arena. The Engine classifies every
// input by residency: buffers already living in the arena are hashed in place,
// host buffers are copied in for the duration of the call and the copy is
// released before returning. Arena allocations may relocate the backing
// region, so raw byte views must always be re-derived after any call that can
// allocate; the ArenaView type turns a stale access into a panic instead of
// silent corruption.
//
// The package is strictly single threaded: one logical caller drives one
// Engine instance at a time. Concurrent calls on a shared engine corrupt its
// scratch region and are not a supported use.
package merkle

// DigestSize is the byte length of every digest produced by this package,
// regardless of the selected hash primitive.
const DigestSize = 32

// Digest is the fixed 32 byte output of the hash primitive. Digests are
// returned by value and compare byte-wise.
type Digest [DigestSize]byte

// zeroChunk is the all-zero value standing in for absent leaves when a tree
// is built over fewer leaves than its capacity.
var zeroChunk [DigestSize]byte
