// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import (
	"fmt"

	"github.com/holiman/uint256"
)

// VectorView is a logical ordered sequence of fixed size elements. A view is
// either arena-resident (the engine hashes it in place, zero copies) or
// host-resident (the engine copies it into the arena for the duration of an
// operation). The residency tag is part of the type, so the copying and the
// zero-copy branches are decided statically rather than by comparing backing
// storage identities at every use.
//
// A view never owns arena memory: releasing an arena-resident view's range is
// the responsibility of whoever allocated it. Views returned by the engine
// stay valid only as long as their underlying range is not released.
type VectorView struct {
	arena *Arena // Arena backing the elements, nil for host-resident views
	ref   Ref    // Arena range holding the elements
	host  []byte // Host buffer holding the elements

	count int // Number of elements in the view
	size  int // Byte length of a single element
}

// HostVector wraps a host buffer into a vector view of fixed size elements.
// The buffer's length must be an exact multiple of the element size.
func HostVector(data []byte, elemSize int) (VectorView, error) {
	if elemSize <= 0 {
		return VectorView{}, fmt.Errorf("%w: element size %d", ErrInvalidElementSize, elemSize)
	}
	if len(data)%elemSize != 0 {
		return VectorView{}, fmt.Errorf("%w: %d bytes of %d byte elements", ErrMisalignedBuffer, len(data), elemSize)
	}
	return VectorView{host: data, count: len(data) / elemSize, size: elemSize}, nil
}

// Vector wraps an allocated arena range into a vector view of fixed size
// elements. The range's length must be an exact multiple of the element size.
func (a *Arena) Vector(r Ref, elemSize int) (VectorView, error) {
	if elemSize <= 0 {
		return VectorView{}, fmt.Errorf("%w: element size %d", ErrInvalidElementSize, elemSize)
	}
	if r.size%elemSize != 0 {
		return VectorView{}, fmt.Errorf("%w: %d bytes of %d byte elements", ErrMisalignedBuffer, r.size, elemSize)
	}
	return VectorView{arena: a, ref: r, count: r.size / elemSize, size: elemSize}, nil
}

// Len returns the number of elements in the view.
func (v VectorView) Len() int { return v.count }

// ElemSize returns the byte length of a single element.
func (v VectorView) ElemSize() int { return v.size }

// Resident reports whether the view's elements live inside an arena.
func (v VectorView) Resident() bool { return v.arena != nil }

// Bytes returns the view's whole element range. For arena-resident views the
// slice is re-derived from the current backing region on every call and is
// valid only until the next call that may allocate.
func (v VectorView) Bytes() []byte {
	if v.arena != nil {
		return v.arena.Bytes(v.ref)
	}
	return v.host
}

// Elem returns the i-th element of the view, subject to the same validity
// window as Bytes.
func (v VectorView) Elem(i int) []byte {
	b := v.Bytes()
	return b[i*v.size : (i+1)*v.size]
}

// Digest returns the i-th element as a digest value. It is only meaningful on
// views of 32 byte elements, such as the ones produced by the engine's batch
// operations.
func (v VectorView) Digest(i int) Digest {
	var d Digest
	copy(d[:], v.Elem(i))
	return d
}

// Release frees the arena range backing an arena-resident view. It is the
// hand-back half of the ownership contract for views returned by the engine's
// batch operations. Releasing a host-resident view is a no-op.
func (v VectorView) Release() {
	if v.arena != nil {
		v.arena.Release(v.ref)
	}
}

// Uint256Leaves serializes a slice of 256 bit field elements into a host
// resident vector of 32 byte leaves, little endian. A nil element encodes as
// zero. Commitment schemes hand the result straight to BuildMerkleNodes or
// DigestValues.
func Uint256Leaves(ns []*uint256.Int) VectorView {
	buf := make([]byte, len(ns)*DigestSize)
	for i, n := range ns {
		if n != nil {
			n.MarshalSSZInto(buf[i*DigestSize : (i+1)*DigestSize])
		}
	}
	view, _ := HostVector(buf, DigestSize) // aligned by construction
	return view
}
