// Copyright 2024 The eth-chainview Authors
// This file is part of the eth-chainview library.
//
// The eth-chainview library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The eth-chainview library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the eth-chainview library. If not, see <http://www.gnu.org/licenses/>.

// Package ethashverify decides whether a header's Ethash proof material is
// consistent with its epoch's DAG Merkle root: given a header, an optional
// expected hash, a root and a sequence of double-node proofs, accept or
// reject.
//
// It does not re-derive hashimoto's dataset-index generation.
// NewMerkleVerifier checks the Merkle half of the proof, folding each double
// node up to a root under the supplied siblings, with proof position
// standing in for the dataset index.
package ethashverify

import (
	"github.com/ckbridge/eth-chainview/dagroot"
	"github.com/ckbridge/eth-chainview/headercodec"
	"github.com/ckbridge/eth-chainview/witness"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Verifier is the EthashVerifier collaborator.
type Verifier interface {
	Verify(h headercodec.Header, expectedHash *common.Hash, root dagroot.Root, proofs []witness.DoubleNodeWithMerkleProof) bool
}

// merkleVerifier checks that every double node folds, via its recorded
// Merkle path, up to the supplied epoch root.
type merkleVerifier struct{}

// NewMerkleVerifier returns the production Verifier.
func NewMerkleVerifier() Verifier {
	return merkleVerifier{}
}

func (merkleVerifier) Verify(h headercodec.Header, expectedHash *common.Hash, root dagroot.Root, proofs []witness.DoubleNodeWithMerkleProof) bool {
	if expectedHash != nil && *expectedHash != h.Hash {
		return false
	}
	if len(proofs) == 0 {
		return false
	}
	for i, p := range proofs {
		if len(p.DagNodes) != 2 {
			return false
		}
		leaf := combineDoubleNode(p.DagNodes[0], p.DagNodes[1])
		if applyMerkleProof(leaf, p.Proof, uint64(i)) != root {
			return false
		}
	}
	return true
}

// combineDoubleNode hashes a pair of 64-byte DAG entries together and
// truncates to the low 128 bits, producing the proof's leaf value.
func combineDoubleNode(a, b [64]byte) dagroot.Root {
	data := make([]byte, 128)
	copy(data[:64], a[:])
	copy(data[64:], b[:])
	return truncateToRoot(crypto.Keccak256(data))
}

// applyMerkleProof folds leaf up through proof, one sibling per bit of
// index, low bit first.
func applyMerkleProof(leaf dagroot.Root, proof [][16]byte, index uint64) dagroot.Root {
	for i, sib := range proof {
		if (index>>uint(i))&1 == 0 {
			leaf = hashPair(leaf, sib)
		} else {
			leaf = hashPair(sib, leaf)
		}
	}
	return leaf
}

// hashPair is the hash_h128 convention: each side is placed in the low
// half (the last 16 bytes) of its own 32-byte slot before hashing, then the
// result is truncated to its low 128 bits.
func hashPair(l, r [16]byte) dagroot.Root {
	data := make([]byte, 64)
	copy(data[16:32], l[:])
	copy(data[48:64], r[:])
	return truncateToRoot(crypto.Keccak256(data))
}

func truncateToRoot(h []byte) dagroot.Root {
	var out dagroot.Root
	copy(out[:], h[16:])
	return out
}
