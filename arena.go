// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle

import (
	"fmt"
	"unsafe"
)

const (
	// defaultArenaBytes is the initial backing size handed out by NewArena
	// when the caller does not request a specific capacity.
	defaultArenaBytes = 64 * 1024

	// maxArenaBytes caps arena growth. Exceeding it is an allocation failure,
	// which is fatal and unrecoverable per the resource model of this package.
	maxArenaBytes = 1 << 30
)

// Ref is an opaque handle to a byte range allocated from an Arena. Refs stay
// valid across arena growth (the backing region may relocate, but offsets do
// not change), so they can be held across further allocations as long as the
// raw bytes are re-derived via Arena.Bytes afterwards.
type Ref struct {
	offset int
	size   int
}

// Size returns the byte length of the referenced range.
func (r Ref) Size() int { return r.size }

// Arena is a single linear memory region shared between callers and the hash
// engine. Allocation bumps an offset and may grow (and thus relocate) the
// backing region; release validates ownership and reclaims trailing freed
// ranges so the allocate/release pattern of a single operation leaves no
// residue behind.
//
// The arena performs no locking. Exactly one logical caller may drive it at
// a time.
type Arena struct {
	buf []byte // Current backing region, relocated on growth
	off int    // Bump offset of the next allocation
	gen uint64 // Relocation generation, bumped whenever buf moves

	live  map[int]int // Live allocations, keyed by offset
	freed map[int]int // Released trailing ranges pending reclaim, keyed by end offset
}

// NewArena creates an arena with the given initial capacity in bytes. A non
// positive capacity selects the default.
func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = defaultArenaBytes
	}
	return &Arena{
		buf:   make([]byte, capacity),
		live:  make(map[int]int),
		freed: make(map[int]int),
	}
}

// Allocate reserves a fresh byte range of the requested size and returns its
// handle. The content of the range is unspecified. Growing past the arena's
// hard capacity limit panics: allocation failure is a fatal condition, not an
// error to retry.
//
// Any allocation may relocate the backing region, invalidating every raw byte
// view derived before the call. Refs remain valid.
func (a *Arena) Allocate(size int) Ref {
	if size < 0 {
		panic(fmt.Sprintf("merkle: negative arena allocation: %d", size))
	}
	if size == 0 {
		return Ref{offset: a.off}
	}
	if a.off+size > len(a.buf) {
		a.grow(a.off + size)
	}
	ref := Ref{offset: a.off, size: size}
	a.live[ref.offset] = size
	a.off += size
	return ref
}

// Release frees a previously allocated range. Releasing a range twice, or one
// the arena never handed out, is a defect in the calling code and panics.
func (a *Arena) Release(r Ref) {
	if r.size == 0 {
		return
	}
	size, ok := a.live[r.offset]
	if !ok || size != r.size {
		panic(fmt.Sprintf("merkle: release of range not owned by the arena: offset %d, size %d", r.offset, r.size))
	}
	delete(a.live, r.offset)

	// Reclaim released ranges off the tail so that per-operation LIFO usage
	// returns the bump offset to its pre-operation position.
	a.freed[r.offset+r.size] = r.size
	for size, ok := a.freed[a.off]; ok; size, ok = a.freed[a.off] {
		delete(a.freed, a.off)
		a.off -= size
	}
}

// Bytes derives a fresh view over the referenced range from the current
// backing region. The view is valid until the next call that may allocate.
func (a *Arena) Bytes(r Ref) []byte {
	if r.size == 0 {
		return nil
	}
	if r.offset < 0 || r.offset+r.size > len(a.buf) {
		panic(fmt.Sprintf("merkle: arena address out of range: offset %d, size %d", r.offset, r.size))
	}
	return a.buf[r.offset : r.offset+r.size : r.offset+r.size]
}

// View returns a generation-stamped view over the arena's currently allocated
// span. Accessing the view after the arena has relocated panics rather than
// reading through a dangling region.
func (a *Arena) View() ArenaView {
	return ArenaView{arena: a, gen: a.gen}
}

// Resident reports whether the buffer's backing storage lies inside the
// arena's current backing region. The check is evaluated against the live
// region on every call and must not be cached: growth relocates the region
// and flips the answer for previously derived views.
func (a *Arena) Resident(b []byte) bool {
	if len(b) == 0 || len(a.buf) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&a.buf[0]))
	addr := uintptr(unsafe.Pointer(&b[0]))
	return addr >= base && addr+uintptr(len(b)) <= base+uintptr(len(a.buf))
}

// refOf converts a resident buffer back into its arena handle. The caller
// must have established residency via Resident first.
func (a *Arena) refOf(b []byte) Ref {
	base := uintptr(unsafe.Pointer(&a.buf[0]))
	addr := uintptr(unsafe.Pointer(&b[0]))
	return Ref{offset: int(addr - base), size: len(b)}
}

// Len returns the number of bytes currently allocated from the arena.
func (a *Arena) Len() int { return a.off }

// Cap returns the current capacity of the backing region.
func (a *Arena) Cap() int { return len(a.buf) }

// Generation returns the relocation generation of the backing region. It
// changes every time growth moves the region.
func (a *Arena) Generation() uint64 { return a.gen }

// grow relocates the backing region to at least need bytes.
func (a *Arena) grow(need int) {
	size := 2 * len(a.buf)
	for size < need {
		size *= 2
	}
	if size > maxArenaBytes {
		size = maxArenaBytes
	}
	if need > size {
		panic(fmt.Sprintf("merkle: arena exhausted: need %d bytes, limit %d", need, maxArenaBytes))
	}
	next := make([]byte, size)
	copy(next, a.buf[:a.off])
	a.buf = next
	a.gen++
}

// ArenaView is a raw view over the arena's allocated span, stamped with the
// relocation generation it was derived at. A view outlives its generation the
// moment any allocation grows the arena; using it past that point is a
// checked failure, never a silent read through stale memory.
type ArenaView struct {
	arena *Arena
	gen   uint64
}

// Bytes returns the viewed span. It panics if the arena has relocated since
// the view was derived; re-derive with Arena.View after any allocating call.
func (v ArenaView) Bytes() []byte {
	if v.gen != v.arena.gen {
		panic("merkle: stale arena view, re-derive after growth")
	}
	return v.arena.buf[:v.arena.off]
}
