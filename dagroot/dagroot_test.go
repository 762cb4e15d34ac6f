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

package dagroot

import (
	"errors"
	"testing"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/fxamacker/cbor/v2"
)

func TestRootForHeightIndexesByEpoch(t *testing.T) {
	table := &Table{Roots: []Root{{0x00}, {0x01}, {0x02}}}

	for _, tc := range []struct {
		number   uint64
		wantRoot byte
	}{
		{0, 0x00},
		{chaintypes.EpochLength - 1, 0x00},
		{chaintypes.EpochLength, 0x01},
		{2*chaintypes.EpochLength + 5, 0x02},
	} {
		got, err := table.RootForHeight(tc.number)
		if err != nil {
			t.Fatalf("number %d: %v", tc.number, err)
		}
		if got[0] != tc.wantRoot {
			t.Errorf("number %d: got root %v want first byte %x", tc.number, got, tc.wantRoot)
		}
	}
}

func TestRootForHeightRejectsOutOfRange(t *testing.T) {
	table := &Table{Roots: []Root{{0x00}}}
	_, err := table.RootForHeight(chaintypes.EpochLength)
	if !errors.Is(err, chaintypes.ErrDagsMerkleRootsDataInvalid) {
		t.Fatalf("expected ErrDagsMerkleRootsDataInvalid, got %v", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := &Table{Roots: []Root{{1, 2, 3}, {4, 5, 6}}}
	raw, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := NewCodec().Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Roots) != 2 || got.Roots[0] != want.Roots[0] || got.Roots[1] != want.Roots[1] {
		t.Fatalf("round trip mismatch: got %+v want %+v", got.Roots, want.Roots)
	}
}

func TestDecodeRejectsWrongRootLength(t *testing.T) {
	wire := tableWire{DagsMerkleRoots: [][]byte{make([]byte, 15)}}
	raw, err := cbor.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_, err = NewCodec().Decode(raw)
	if !errors.Is(err, chaintypes.ErrDagsMerkleRootsDataInvalid) {
		t.Fatalf("expected ErrDagsMerkleRootsDataInvalid, got %v", err)
	}
}
