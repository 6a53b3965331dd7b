// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import "fmt"

const (
	// scratchBytes is the capacity of the engine's pre-reserved scratch input
	// block. Values below this size are staged through the scratch block,
	// skipping the allocate/release round trip on the hot path.
	scratchBytes = 4096

	// mergeWidth is the fixed working width of the batched row merge: every
	// merged vector's element size must tile a 64 byte block evenly.
	mergeWidth = 64

	// maxTreeDepth bounds BuildMerkleNodes so the node buffer size cannot
	// overflow the arena's addressable range.
	maxTreeDepth = 32
)

// Engine computes digests, pair merges, complete binary hash trees and
// batched record or row digests over a shared Arena. It reserves a scratch
// input block and an output block inside the arena at construction; those two
// blocks, and the arena itself, are the only state carried between calls.
//
// An engine instance serves exactly one logical caller: reentrant or
// concurrent calls share the scratch block and corrupt each other.
type Engine struct {
	prim  Primitive
	arena *Arena

	scratch Ref    // Reserved staging block for single-value inputs
	out     Ref    // Reserved landing block for single-value digests
	pad     Digest // Digest of an internal node with both children absent
}

// NewEngine creates a hashing engine over the given primitive and arena,
// reserving its scratch and output blocks up front.
func NewEngine(prim Primitive, arena *Arena) *Engine {
	e := &Engine{
		prim:    prim,
		arena:   arena,
		scratch: arena.Allocate(scratchBytes),
		out:     arena.Allocate(DigestSize),
	}
	prim.SumPair(arena.Bytes(e.out), zeroChunk[:], zeroChunk[:])
	copy(e.pad[:], arena.Bytes(e.out))
	return e
}

// Algorithm returns the identifier of the engine's hash variant.
func (e *Engine) Algorithm() string { return e.prim.Algorithm() }

// DigestSize returns the byte length of the engine's digests, fixed at 32.
func (e *Engine) DigestSize() int { return DigestSize }

// Arena returns the arena the engine operates in.
func (e *Engine) Arena() *Arena { return e.arena }

// Digest computes the hash of an arbitrary length byte span. Small values are
// staged through the engine's scratch block; values of at least the scratch
// capacity go through a per-call arena block that is released on every exit
// path. The result is copied out of the engine's output block, so it stays
// stable when the next call reuses the block.
func (e *Engine) Digest(value []byte) Digest {
	if len(value) < scratchBytes {
		staged := e.arena.Bytes(e.scratch)
		n := copy(staged, value)
		return e.sumOut(staged[:n])
	}
	src, release := e.stage(value)
	defer release()

	return e.sumOut(e.arena.Bytes(src))
}

// Merge computes the hash of a followed by b, equivalent to Digest over their
// concatenation without materializing it. Pairs within the scratch capacity
// are concatenated in place; larger ones fall back to per-call staging.
func (e *Engine) Merge(a, b []byte) Digest {
	if len(a)+len(b) > scratchBytes {
		srcA, releaseA := e.stage(a)
		defer releaseA()
		srcB, releaseB := e.stage(b)
		defer releaseB()

		return e.pairOut(e.arena.Bytes(srcA), e.arena.Bytes(srcB))
	}
	staged := e.arena.Bytes(e.scratch)
	n := copy(staged, a)
	m := copy(staged[n:], b)
	return e.pairOut(staged[:n], staged[n:n+m])
}

// BuildMerkleNodes builds the internal node layer of a complete binary tree
// of capacity 1<<depth over the given leaves, which may number anywhere from
// zero to the full capacity. Missing leaves count as all-zero.
//
// The returned buffer holds 1<<depth nodes of 32 bytes in heap order: the
// parents of the leaves fill the tail half, each higher row the half before
// it, and the root sits at the buffer's front. The buffer is an independent
// copy; the arena block backing the build is released before returning.
func (e *Engine) BuildMerkleNodes(depth int, leaves VectorView) ([]byte, error) {
	if depth < 0 || depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTreeDepth, depth)
	}
	nodeCount := 1 << depth
	if leaves.Len() > nodeCount {
		return nil, fmt.Errorf("%w: %d leaves in a capacity %d tree", ErrLeafOverflow, leaves.Len(), nodeCount)
	}
	// A capacity-1 tree has no internal nodes to compute
	if depth == 0 {
		return make([]byte, DigestSize), nil
	}
	tree := e.arena.Allocate(nodeCount * DigestSize)
	defer e.arena.Release(tree)

	src, release := e.stageView(leaves)
	defer release()

	// All allocations are done, views derived from here on stay put
	var (
		nodes  = e.arena.Bytes(tree)
		elems  = e.arena.Bytes(src)
		stride = leaves.ElemSize()

		parents = nodeCount / 2
		lowest  = parents * DigestSize
	)
	// Batch-hash the adjacent leaf pairs into the lowest internal row
	pairs := leaves.Len() / 2
	if pairs > 0 {
		e.prim.SumAdjacentPairs(nodes[lowest:lowest+pairs*DigestSize], elems[:2*pairs*stride], 2*stride)
	}
	// An unmatched trailing leaf pairs up with the zero leaf
	written := pairs
	if leaves.Len()%2 == 1 {
		last := elems[(leaves.Len()-1)*stride:]
		e.prim.SumPair(nodes[lowest+written*DigestSize:lowest+(written+1)*DigestSize], last, zeroChunk[:])
		written++
	}
	// Slots beyond the leaf set are parents of two absent leaves
	for slot := written; slot < parents; slot++ {
		copy(nodes[lowest+slot*DigestSize:], e.pad[:])
	}
	// Hash each completed row into the row above it, halving until the root
	for width := parents; width >= 2; width /= 2 {
		row := nodes[width*DigestSize : 2*width*DigestSize]
		e.prim.SumAdjacentPairs(nodes[width/2*DigestSize:width*DigestSize], row, 2*DigestSize)
	}
	copy(nodes[:DigestSize], nodes[DigestSize:2*DigestSize])

	out := make([]byte, nodeCount*DigestSize)
	copy(out, nodes)
	return out, nil
}

// MergeVectorRows merges a non-empty list of equal length column vectors into
// one digest per row: the i-th digest hashes the concatenation of every
// column's i-th element, in column order. Element sizes may differ between
// columns but each must tile the 64 byte merge width evenly.
//
// Host-resident columns are copied into the arena for the call and the copies
// released before returning. The result is an arena-resident view of 32 byte
// digests whose range the caller releases when done.
func (e *Engine) MergeVectorRows(vectors []VectorView) (VectorView, error) {
	if len(vectors) == 0 {
		return VectorView{}, ErrEmptyVectorList
	}
	count := vectors[0].Len()
	for _, v := range vectors {
		if size := v.ElemSize(); size <= 0 || size > mergeWidth || mergeWidth%size != 0 {
			return VectorView{}, fmt.Errorf("%w: %d byte elements", ErrInvalidElementSize, size)
		}
		if v.Len() != count {
			return VectorView{}, fmt.Errorf("%w: %d and %d", ErrLengthMismatch, count, v.Len())
		}
	}
	result := e.arena.Allocate(count * DigestSize)

	srcs := make([]Ref, len(vectors))
	sizes := make([]int, len(vectors))
	for i, v := range vectors {
		src, release := e.stageView(v)
		defer release()

		srcs[i] = src
		sizes[i] = v.ElemSize()
	}
	columns := make([][]byte, len(srcs))
	for i, src := range srcs {
		columns[i] = e.arena.Bytes(src)
	}
	e.prim.SumRows(e.arena.Bytes(result), columns, sizes)

	view, _ := e.arena.Vector(result, DigestSize) // aligned by construction
	return view, nil
}

// DigestValues computes one digest per fixed size record of a flat byte
// buffer, via a single strided batch hash. The buffer's length must be an
// exact multiple of the record size. A host-resident buffer is copied into
// the arena for the call and the copy released before returning.
//
// The result is an arena-resident view of 32 byte digests whose range the
// caller releases when done.
func (e *Engine) DigestValues(values []byte, valueSize int) (VectorView, error) {
	if valueSize <= 0 {
		return VectorView{}, fmt.Errorf("%w: record size %d", ErrMisalignedBuffer, valueSize)
	}
	if len(values)%valueSize != 0 {
		return VectorView{}, fmt.Errorf("%w: %d bytes of %d byte records", ErrMisalignedBuffer, len(values), valueSize)
	}
	count := len(values) / valueSize

	src, release := e.stage(values)
	defer release()

	result := e.arena.Allocate(count * DigestSize)
	e.prim.SumStrided(e.arena.Bytes(result), e.arena.Bytes(src), valueSize)

	view, _ := e.arena.Vector(result, DigestSize) // aligned by construction
	return view, nil
}

// stage makes value addressable inside the arena: a resident value resolves
// to its own range with no copy, a host value is copied into a fresh block.
// The returned release function gives back the staging block, if any, and is
// safe to defer on every exit path.
//
// Residency is resolved before any allocation, so a resident value cannot be
// invalidated by its own staging.
func (e *Engine) stage(value []byte) (Ref, func()) {
	if e.arena.Resident(value) {
		return e.arena.refOf(value), func() {}
	}
	ref := e.arena.Allocate(len(value))
	copy(e.arena.Bytes(ref), value)
	return ref, func() { e.arena.Release(ref) }
}

// stageView is stage for vector views, resolving the residency tag instead of
// probing backing storage.
func (e *Engine) stageView(v VectorView) (Ref, func()) {
	if v.Resident() {
		return v.ref, func() {}
	}
	return e.stage(v.host)
}

// sumOut hashes input into the engine's output block and copies the digest
// out of it.
func (e *Engine) sumOut(input []byte) Digest {
	out := e.arena.Bytes(e.out)
	e.prim.Sum(out, input)

	var d Digest
	copy(d[:], out)
	return d
}

// pairOut pair-hashes a and b into the engine's output block and copies the
// digest out of it.
func (e *Engine) pairOut(a, b []byte) Digest {
	out := e.arena.Bytes(e.out)
	e.prim.SumPair(out, a, b)

	var d Digest
	copy(d[:], out)
	return d
}
