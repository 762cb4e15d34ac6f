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

// Package headercodec decodes the RLP-encoded Ethash block header carried in
// a witness into the handful of fields the transition validator needs: the
// validator never re-derives RLP or Ethash itself, it only consumes a
// decoded header.
package headercodec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// Header is the structured projection of a raw header the validator reasons
// about: parent, number, difficulty and the header's own hash.
type Header struct {
	ParentHash common.Hash
	Number     uint64
	Difficulty uint64
	Hash       common.Hash
}

// Codec decodes raw header bytes into a Header.
type Codec interface {
	Decode(raw []byte) (Header, error)
}

// rlpCodec decodes headers the way an Ethash full node does: as RLP-encoded
// core/types.Header values.
type rlpCodec struct{}

// NewCodec returns the production header codec, backed by go-ethereum's own
// RLP header encoding.
func NewCodec() Codec {
	return rlpCodec{}
}

func (rlpCodec) Decode(raw []byte) (Header, error) {
	var h types.Header
	if err := rlp.DecodeBytes(raw, &h); err != nil {
		return Header{}, fmt.Errorf("decode rlp header: %w", err)
	}
	if h.Number == nil || h.Difficulty == nil {
		return Header{}, fmt.Errorf("decode rlp header: missing number or difficulty")
	}
	if !h.Number.IsUint64() || !h.Difficulty.IsUint64() {
		return Header{}, fmt.Errorf("decode rlp header: number or difficulty overflows uint64")
	}
	return Header{
		ParentHash: h.ParentHash,
		Number:     h.Number.Uint64(),
		Difficulty: h.Difficulty.Uint64(),
		Hash:       h.Hash(),
	}, nil
}
