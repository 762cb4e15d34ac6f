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

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
)

// cellDataWire and headerInfoWire mirror the on-chain Chain/HeaderInfo
// schema field for field. CBOR is the concrete wire codec this verifier was
// built against; the host is free to swap in any codec that serializes the
// same shape.
type cellDataWire struct {
	OwnerLock []byte           `cbor:"1,keyasint"`
	Main      []headerInfoWire `cbor:"2,keyasint"`
	Uncle     []headerInfoWire `cbor:"3,keyasint"`
}

type headerInfoWire struct {
	Header          []byte `cbor:"1,keyasint"`
	Hash            []byte `cbor:"2,keyasint"`
	TotalDifficulty []byte `cbor:"3,keyasint"`
}

// cborCellDataCodec is the default CellDataCodec implementation.
type cborCellDataCodec struct{}

// NewCellDataCodec returns the CBOR-backed CellDataCodec used in production.
func NewCellDataCodec() CellDataCodec {
	return cborCellDataCodec{}
}

func (cborCellDataCodec) Decode(raw []byte) (*CellDataView, error) {
	var wire cellDataWire
	if err := cbor.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellData, err)
	}
	main, err := decodeHeaderInfoVec(wire.Main)
	if err != nil {
		return nil, err
	}
	uncle, err := decodeHeaderInfoVec(wire.Uncle)
	if err != nil {
		return nil, err
	}
	return &CellDataView{
		OwnerLock: wire.OwnerLock,
		Chain:     Chain{Main: main, Uncle: uncle},
	}, nil
}

func decodeHeaderInfoVec(wire []headerInfoWire) ([]HeaderInfo, error) {
	out := make([]HeaderInfo, len(wire))
	for i, w := range wire {
		if len(w.Hash) != common.HashLength {
			return nil, fmt.Errorf("%w: header info hash must be %d bytes, got %d", ErrInvalidCellData, common.HashLength, len(w.Hash))
		}
		if len(w.TotalDifficulty) != 8 {
			return nil, fmt.Errorf("%w: total difficulty must be 8 bytes, got %d", ErrInvalidCellData, len(w.TotalDifficulty))
		}
		out[i] = HeaderInfo{
			Header:          w.Header,
			Hash:            common.BytesToHash(w.Hash),
			TotalDifficulty: binary.BigEndian.Uint64(w.TotalDifficulty),
		}
	}
	return out, nil
}

// encodeHeaderInfo is the inverse of decodeHeaderInfoVec's element codec.
func encodeHeaderInfo(h HeaderInfo) headerInfoWire {
	var td [8]byte
	binary.BigEndian.PutUint64(td[:], h.TotalDifficulty)
	return headerInfoWire{
		Header:          h.Header,
		Hash:            h.Hash.Bytes(),
		TotalDifficulty: td[:],
	}
}

// EncodeCellData serializes a CellDataView back into the wire format this
// codec decodes, for use by fixtures and tests.
func EncodeCellData(v *CellDataView) ([]byte, error) {
	wire := cellDataWire{
		OwnerLock: v.OwnerLock,
		Main:      make([]headerInfoWire, len(v.Chain.Main)),
		Uncle:     make([]headerInfoWire, len(v.Chain.Uncle)),
	}
	for i, h := range v.Chain.Main {
		wire.Main[i] = encodeHeaderInfo(h)
	}
	for i, h := range v.Chain.Uncle {
		wire.Uncle[i] = encodeHeaderInfo(h)
	}
	return cbor.Marshal(wire)
}
