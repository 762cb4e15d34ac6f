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

package chaintypes

import "errors"

// Exit reasons returned by the verifier. Each maps 1:1 to a distinct non-zero
// host exit code; a nil error maps to accept.
var (
	ErrTxInvalid                  = errors.New("wrong number of input/output cells in group")
	ErrInvalidDataChange          = errors.New("owner lock bytes differ across input and output")
	ErrInvalidCellData            = errors.New("cell payload schema or chain shape invariant violated")
	ErrInvalidWitness             = errors.New("witness schema invalid or malformed")
	ErrDagsMerkleRootsDataInvalid = errors.New("dags merkle roots dep-cell schema invalid")
	ErrInvalidMerkleProofData     = errors.New("ethash merkle proof rejected")
)

// ExitCode maps a verification outcome to its distinct non-zero host exit
// code; a nil error maps to 0 (accept). The mapping is
// checked in sentinel-registration order, so a wrapped error that happens to
// match more than one sentinel (it shouldn't, in practice) resolves to the
// first one listed here.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrTxInvalid):
		return 1
	case errors.Is(err, ErrInvalidDataChange):
		return 2
	case errors.Is(err, ErrInvalidCellData):
		return 3
	case errors.Is(err, ErrInvalidWitness):
		return 4
	case errors.Is(err, ErrDagsMerkleRootsDataInvalid):
		return 5
	case errors.Is(err, ErrInvalidMerkleProofData):
		return 6
	default:
		return 127
	}
}
