// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

// merkleroot digests a file as fixed size records and prints the Merkle root
// of the record digests, using the smallest tree capacity that covers them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/webb-tools/merkle"
)

func main() {
	var (
		recordSize = flag.Int("record", 32, "record size in bytes; a trailing partial record is zero padded")
		algorithm  = flag.String("hash", "sha256", "hash primitive to use: sha256 or blake2s")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: merkleroot [options] <file>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *recordSize <= 0 {
		fmt.Fprintf(os.Stderr, "invalid record size %d\n", *recordSize)
		os.Exit(1)
	}
	var prim merkle.Primitive
	switch *algorithm {
	case "sha256":
		prim = merkle.NewSha256()
	case "blake2s":
		prim = merkle.NewBlake2s()
	default:
		fmt.Fprintf(os.Stderr, "unknown hash primitive %q\n", *algorithm)
		os.Exit(1)
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}
	if rest := len(data) % *recordSize; rest != 0 {
		data = append(data, make([]byte, *recordSize-rest)...)
	}
	engine := merkle.NewEngine(prim, merkle.NewArena(0))

	leaves, err := engine.DigestValues(data, *recordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to digest records: %v\n", err)
		os.Exit(1)
	}
	defer leaves.Release()

	depth := 0
	for 1<<depth < leaves.Len() {
		depth++
	}
	nodes, err := engine.BuildMerkleNodes(depth, leaves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build tree: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s:%#x\n", engine.Algorithm(), nodes[:merkle.DigestSize])
}
