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

package chainview

import (
	"errors"
	"testing"

	"github.com/ckbridge/eth-chainview/chaintypes"
)

func TestNewDecodesValidCellData(t *testing.T) {
	want := &chaintypes.CellDataView{
		OwnerLock: []byte("owner"),
		Chain: chaintypes.Chain{
			Main:  []chaintypes.HeaderInfo{{Header: []byte("h1"), TotalDifficulty: 5}},
			Uncle: []chaintypes.HeaderInfo{{Header: []byte("u1"), TotalDifficulty: 1}},
		},
	}
	raw, err := chaintypes.EncodeCellData(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	v, err := New(raw, chaintypes.NewCellDataCodec())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if string(v.OwnerLock()) != "owner" {
		t.Fatalf("owner lock: got %q", v.OwnerLock())
	}
	if len(v.Main()) != 1 || len(v.Uncle()) != 1 {
		t.Fatalf("unexpected chain shape: %+v", v.Chain())
	}
}

func TestNewRejectsMalformedCellData(t *testing.T) {
	_, err := New([]byte{0xff, 0xff, 0xff}, chaintypes.NewCellDataCodec())
	if !errors.Is(err, chaintypes.ErrInvalidCellData) {
		t.Fatalf("expected ErrInvalidCellData, got %v", err)
	}
}
