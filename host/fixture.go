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

import "fmt"

// FixtureHost is an in-memory Host backed by plain byte slices, the way
// rawdb.NewMemoryDatabase stands in for a real database in go-ethereum's
// tests. It is meant for tests and the CLI demonstration harness, never for
// production use.
type FixtureHost struct {
	GroupInput  [][]byte
	GroupOutput [][]byte
	CellDeps    [][]byte
	// WitnessInputType maps group-input index to the witness's input_type
	// bytes. A missing key means no witness at that index.
	WitnessInputType map[int][]byte
}

// NewFixtureHost returns an empty FixtureHost ready for population.
func NewFixtureHost() *FixtureHost {
	return &FixtureHost{WitnessInputType: make(map[int][]byte)}
}

func (f *FixtureHost) CellDataCount(source Source) (int, error) {
	switch source {
	case SourceGroupInput:
		return len(f.GroupInput), nil
	case SourceGroupOutput:
		return len(f.GroupOutput), nil
	case SourceCellDep:
		return len(f.CellDeps), nil
	default:
		return 0, fmt.Errorf("unknown source %d", source)
	}
}

func (f *FixtureHost) LoadCellData(index int, source Source) ([]byte, error) {
	var list [][]byte
	switch source {
	case SourceGroupInput:
		list = f.GroupInput
	case SourceGroupOutput:
		list = f.GroupOutput
	case SourceCellDep:
		list = f.CellDeps
	default:
		return nil, fmt.Errorf("unknown source %d", source)
	}
	if index < 0 || index >= len(list) {
		return nil, fmt.Errorf("index %d out of range for source %d (len %d)", index, source, len(list))
	}
	return list[index], nil
}

func (f *FixtureHost) LoadWitnessInputType(index int) ([]byte, bool, error) {
	data, ok := f.WitnessInputType[index]
	return data, ok, nil
}
