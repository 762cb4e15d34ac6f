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

// Package host names the collaborator interfaces the transaction-execution
// environment provides. The host itself — how cell data, witnesses and
// dep-cells actually reach the process — is explicitly out of scope for
// this verifier; this package only fixes the shape of what it expects to
// receive.
package host

// Source names which side of the transaction group, or which dep-cell
// table, a load targets.
type Source int

const (
	SourceGroupInput Source = iota
	SourceGroupOutput
	SourceCellDep
)

// CellDataSource loads cell-data blobs by index within a Source.
type CellDataSource interface {
	// LoadCellData returns the raw data of the cell at index within source.
	LoadCellData(index int, source Source) ([]byte, error)
	// CellDataCount reports how many cells exist at source, so callers can
	// enforce "exactly one" before loading.
	CellDataCount(source Source) (int, error)
}

// WitnessSource loads witness input_type bytes by group-input index.
type WitnessSource interface {
	// LoadWitnessInputType returns the input_type field of the witness at
	// the given group-input index. ok is false if the witness exists but
	// carries no input_type field.
	LoadWitnessInputType(index int) (data []byte, ok bool, err error)
}

// Host is everything VerifyEntry needs from the transaction-execution
// environment.
type Host interface {
	CellDataSource
	WitnessSource
}
