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

// Package chaintypes holds the wire-adjacent data model shared by every
// component of the verifier: the bounded header caches making up a Chain,
// and the sum-typed error taxonomy returned by a failed transition.
package chaintypes

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// Bounds and epoch width fixed by the host schema. These are not tunable at
// runtime: a verifier built against a different cache size is a different
// verifier.
const (
	MainLimit   = 500
	UncleLimit  = 500
	EpochLength = 30000
)

// HeaderInfo is an immutable envelope around one cached header: its raw
// encoded bytes, the hash the host has committed to for it, and the
// cumulative difficulty of the chain ending at it. Hash and TotalDifficulty
// are trusted only insofar as the caller already checked them against a
// HeaderCodec decode and the previous entry's TotalDifficulty; HeaderInfo
// itself performs no validation.
type HeaderInfo struct {
	Header          []byte
	Hash            common.Hash
	TotalDifficulty uint64
}

// Equal reports whether two cache entries are byte-identical in every field.
func (h HeaderInfo) Equal(o HeaderInfo) bool {
	return h.Hash == o.Hash &&
		h.TotalDifficulty == o.TotalDifficulty &&
		bytes.Equal(h.Header, o.Header)
}

// HeaderInfoSliceEqual reports whether two cache slices are byte-identical,
// entry for entry.
func HeaderInfoSliceEqual(a, b []HeaderInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Chain is the pair of bounded rings the validator reasons about: main is the
// canonical suffix (oldest at index 0), uncle is the side pool of ancestry
// candidates for a reorg (also oldest at index 0).
type Chain struct {
	Main  []HeaderInfo
	Uncle []HeaderInfo
}

// CellDataView is the decoded form of one cell's payload: an opaque
// owner-lock prefix the core never interprets, plus the Chain it commits to.
type CellDataView struct {
	OwnerLock []byte
	Chain     Chain
}

// CellDataCodec decodes a cell's raw data blob into a CellDataView,
// rejecting anything that does not conform to the schema. It is an external
// collaborator: the core only calls it, it never defines the wire format.
type CellDataCodec interface {
	Decode(raw []byte) (*CellDataView, error)
}
