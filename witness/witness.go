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

// Package witness decodes and validates the per-transaction witness: the new
// header plus its Ethash double-node Merkle proof material.
package witness

import (
	"fmt"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/fxamacker/cbor/v2"
)

const (
	dagNodeLength  = 64
	proofSibLength = 16
)

// DoubleNodeWithMerkleProof is one pair of DAG entries read together during
// Ethash verification, plus the Merkle siblings attesting their inclusion.
type DoubleNodeWithMerkleProof struct {
	DagNodes [][dagNodeLength]byte
	Proof    [][proofSibLength]byte
}

// Witness is the decoded witness: the dep-cell index carrying the DAG root
// table, the new header's raw bytes, and its Merkle proof sequence.
type Witness struct {
	CellDepIndex byte
	HeaderRaw    []byte
	MerkleProof  []DoubleNodeWithMerkleProof
}

type doubleNodeWire struct {
	DagNodes [][]byte `cbor:"1,keyasint"`
	Proof    [][]byte `cbor:"2,keyasint"`
}

type witnessWire struct {
	CellDepIndexList []byte           `cbor:"1,keyasint"`
	Header           []byte           `cbor:"2,keyasint"`
	MerkleProof      []doubleNodeWire `cbor:"3,keyasint"`
}

// Codec decodes a witness's input_type bytes into a Witness.
type Codec interface {
	Decode(raw []byte) (*Witness, error)
}

type cborCodec struct{}

// NewCodec returns the production witness codec.
func NewCodec() Codec {
	return cborCodec{}
}

func (cborCodec) Decode(raw []byte) (*Witness, error) {
	var wire witnessWire
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", chaintypes.ErrInvalidWitness, err)
	}
	if len(wire.CellDepIndexList) != 1 {
		return nil, fmt.Errorf("%w: cell_dep_index_list must have length 1, got %d", chaintypes.ErrInvalidWitness, len(wire.CellDepIndexList))
	}
	proofs := make([]DoubleNodeWithMerkleProof, len(wire.MerkleProof))
	for i, p := range wire.MerkleProof {
		nodes := make([][dagNodeLength]byte, len(p.DagNodes))
		for j, n := range p.DagNodes {
			if len(n) != dagNodeLength {
				return nil, fmt.Errorf("%w: dag node %d.%d must be %d bytes, got %d", chaintypes.ErrInvalidWitness, i, j, dagNodeLength, len(n))
			}
			copy(nodes[j][:], n)
		}
		sibs := make([][proofSibLength]byte, len(p.Proof))
		for j, s := range p.Proof {
			if len(s) != proofSibLength {
				return nil, fmt.Errorf("%w: proof sibling %d.%d must be %d bytes, got %d", chaintypes.ErrInvalidWitness, i, j, proofSibLength, len(s))
			}
			copy(sibs[j][:], s)
		}
		proofs[i] = DoubleNodeWithMerkleProof{DagNodes: nodes, Proof: sibs}
	}
	return &Witness{
		CellDepIndex: wire.CellDepIndexList[0],
		HeaderRaw:    wire.Header,
		MerkleProof:  proofs,
	}, nil
}

// Encode serializes a Witness back into wire bytes, for fixtures and tests.
func Encode(w *Witness) ([]byte, error) {
	wire := witnessWire{
		CellDepIndexList: []byte{w.CellDepIndex},
		Header:           w.HeaderRaw,
		MerkleProof:      make([]doubleNodeWire, len(w.MerkleProof)),
	}
	for i, p := range w.MerkleProof {
		nodes := make([][]byte, len(p.DagNodes))
		for j, n := range p.DagNodes {
			b := make([]byte, dagNodeLength)
			copy(b, n[:])
			nodes[j] = b
		}
		sibs := make([][]byte, len(p.Proof))
		for j, s := range p.Proof {
			b := make([]byte, proofSibLength)
			copy(b, s[:])
			sibs[j] = b
		}
		wire.MerkleProof[i] = doubleNodeWire{DagNodes: nodes, Proof: sibs}
	}
	return cbor.Marshal(wire)
}
