// merkle: batched Merkle tree construction and vectorized hashing
// Copyright 2026 merkle Authors
// SPDX-License-Identifier: BSD-3-Clause

package merkle_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/webb-tools/merkle"
)

// Tests that the pair hash of every primitive equals its plain hash over the
// concatenated input; the engine's merge paths depend on the equivalence.
func TestPrimitivePairEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	for _, prim := range testPrimitives {
		a := randomBytes(rng, 32)
		b := randomBytes(rng, 32)

		pair := make([]byte, merkle.DigestSize)
		prim.SumPair(pair, a, b)

		flat := make([]byte, merkle.DigestSize)
		prim.Sum(flat, append(append([]byte(nil), a...), b...))

		if !bytes.Equal(pair, flat) {
			t.Errorf("%s: pair hash diverges from the concatenated hash", prim.Algorithm())
		}
	}
}

// Tests that the vectorized adjacent-pair batch of the sha256 primitive
// agrees with its scalar pair hash, chunk pair by chunk pair.
func TestSha256BatchMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	prim := merkle.NewSha256()

	const pairs = 9
	input := randomBytes(rng, pairs*2*merkle.DigestSize)

	batch := make([]byte, pairs*merkle.DigestSize)
	prim.SumAdjacentPairs(batch, input, 2*merkle.DigestSize)

	for i := 0; i < pairs; i++ {
		chunk := input[i*2*merkle.DigestSize : (i+1)*2*merkle.DigestSize]

		want := make([]byte, merkle.DigestSize)
		prim.SumPair(want, chunk[:merkle.DigestSize], chunk[merkle.DigestSize:])

		if !bytes.Equal(batch[i*merkle.DigestSize:(i+1)*merkle.DigestSize], want) {
			t.Errorf("pair %d: vectorized digest diverges from the scalar digest", i)
		}
	}
}

// Tests that different primitives produce different digests for the same
// input, i.e. the algorithm identifier is not cosmetic.
func TestPrimitivesDisagree(t *testing.T) {
	input := []byte("the same input for every hash variant")

	sha := make([]byte, merkle.DigestSize)
	merkle.NewSha256().Sum(sha, input)

	blake := make([]byte, merkle.DigestSize)
	merkle.NewBlake2s().Sum(blake, input)

	if bytes.Equal(sha, blake) {
		t.Errorf("sha256 and blake2s-256 produced the same digest")
	}
}

// Tests that merge is order sensitive: the tree would be malleable otherwise.
func TestMergeOrderSensitive(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	for _, prim := range testPrimitives {
		engine := newTestEngine(prim)

		a := randomBytes(rng, 32)
		b := randomBytes(rng, 32)
		if engine.Merge(a, b) == engine.Merge(b, a) {
			t.Errorf("%s: merge is order insensitive", prim.Algorithm())
		}
	}
}
