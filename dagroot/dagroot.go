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

// Package dagroot loads and indexes the DagsMerkleRoots dep-cell: one 16-byte
// commitment per Ethash epoch.
package dagroot

import (
	"fmt"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/fxamacker/cbor/v2"
)

// RootLength is the width of one epoch's DAG Merkle root commitment.
const RootLength = 16

// Root is the 128-bit DAG Merkle root commitment for one epoch.
type Root [RootLength]byte

// Table is the decoded, indexable sequence of per-epoch roots.
type Table struct {
	Roots []Root
}

type tableWire struct {
	DagsMerkleRoots [][]byte `cbor:"1,keyasint"`
}

// Codec decodes a dep-cell's raw data into a Table.
type Codec interface {
	Decode(raw []byte) (*Table, error)
}

type cborCodec struct{}

// NewCodec returns the production DagsMerkleRoots codec.
func NewCodec() Codec {
	return cborCodec{}
}

func (cborCodec) Decode(raw []byte) (*Table, error) {
	var wire tableWire
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", chaintypes.ErrDagsMerkleRootsDataInvalid, err)
	}
	roots := make([]Root, len(wire.DagsMerkleRoots))
	for i, r := range wire.DagsMerkleRoots {
		if len(r) != RootLength {
			return nil, fmt.Errorf("%w: root %d must be %d bytes, got %d", chaintypes.ErrDagsMerkleRootsDataInvalid, i, RootLength, len(r))
		}
		copy(roots[i][:], r)
	}
	return &Table{Roots: roots}, nil
}

// Encode serializes a Table back into wire bytes, for fixtures and tests.
func Encode(t *Table) ([]byte, error) {
	wire := tableWire{DagsMerkleRoots: make([][]byte, len(t.Roots))}
	for i, r := range t.Roots {
		b := make([]byte, RootLength)
		copy(b, r[:])
		wire.DagsMerkleRoots[i] = b
	}
	return cbor.Marshal(wire)
}

// RootForHeight returns the epoch root covering block number, per the
// epoch = number / EpochLength indexing rule. Out-of-range indexing is
// fatal: the cache cannot vouch for an epoch it was never given a root for.
func (t *Table) RootForHeight(number uint64) (Root, error) {
	idx := number / chaintypes.EpochLength
	if idx >= uint64(len(t.Roots)) {
		return Root{}, fmt.Errorf("%w: epoch %d out of range (have %d roots)", chaintypes.ErrDagsMerkleRootsDataInvalid, idx, len(t.Roots))
	}
	return t.Roots[idx], nil
}
