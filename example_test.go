// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle_test

import (
	"bytes"
	"fmt"

	"github.com/webb-tools/merkle"
)

func ExampleEngine_Merge() {
	engine := merkle.NewEngine(merkle.NewSha256(), merkle.NewArena(0))

	merged := engine.Merge([]byte("left "), []byte("right"))
	direct := engine.Digest([]byte("left right"))

	fmt.Println(merged == direct)
	// Output: true
}

func ExampleEngine_BuildMerkleNodes() {
	engine := merkle.NewEngine(merkle.NewSha256(), merkle.NewArena(0))

	blob := make([]byte, 4*merkle.DigestSize)
	for i := range blob {
		blob[i] = byte(i)
	}
	leaves, _ := merkle.HostVector(blob, merkle.DigestSize)

	nodes, _ := engine.BuildMerkleNodes(2, leaves)

	left := engine.Merge(leaves.Elem(0), leaves.Elem(1))
	right := engine.Merge(leaves.Elem(2), leaves.Elem(3))
	root := engine.Merge(left[:], right[:])

	fmt.Println(bytes.Equal(nodes[:merkle.DigestSize], root[:]))
	// Output: true
}

func ExampleEngine_DigestValues() {
	engine := merkle.NewEngine(merkle.NewBlake2s(), merkle.NewArena(0))

	records := make([]byte, 8*64)
	digests, _ := engine.DigestValues(records, 64)
	defer digests.Release()

	fmt.Println(digests.Len(), digests.ElemSize(), digests.Resident())
	// Output: 8 32 true
}
