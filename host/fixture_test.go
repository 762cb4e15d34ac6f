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

package host

import "testing"

func TestFixtureHostCellDataCountAndLoad(t *testing.T) {
	h := NewFixtureHost()
	h.GroupInput = [][]byte{[]byte("in0")}
	h.GroupOutput = [][]byte{[]byte("out0"), []byte("out1")}

	n, err := h.CellDataCount(SourceGroupInput)
	if err != nil || n != 1 {
		t.Fatalf("group input count: got (%d, %v)", n, err)
	}
	n, err = h.CellDataCount(SourceGroupOutput)
	if err != nil || n != 2 {
		t.Fatalf("group output count: got (%d, %v)", n, err)
	}

	data, err := h.LoadCellData(0, SourceGroupInput)
	if err != nil || string(data) != "in0" {
		t.Fatalf("load cell data: got (%q, %v)", data, err)
	}

	if _, err := h.LoadCellData(5, SourceGroupInput); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestFixtureHostWitnessInputType(t *testing.T) {
	h := NewFixtureHost()
	h.WitnessInputType[0] = []byte("witness-bytes")

	data, ok, err := h.LoadWitnessInputType(0)
	if err != nil || !ok || string(data) != "witness-bytes" {
		t.Fatalf("unexpected result: (%q, %v, %v)", data, ok, err)
	}

	_, ok, err = h.LoadWitnessInputType(1)
	if err != nil || ok {
		t.Fatalf("expected ok=false for missing witness, got (%v, %v)", ok, err)
	}
}
