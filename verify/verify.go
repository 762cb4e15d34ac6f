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

// Package verify wires every collaborator together behind the single entry
// point the host calls: load input/output/witness/dep-cell, check owner-lock
// equality, run the transition validator, then the Ethash verifier.
package verify

import (
	"bytes"
	"fmt"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/ckbridge/eth-chainview/chainview"
	"github.com/ckbridge/eth-chainview/dagroot"
	"github.com/ckbridge/eth-chainview/ethashverify"
	"github.com/ckbridge/eth-chainview/headercodec"
	"github.com/ckbridge/eth-chainview/host"
	"github.com/ckbridge/eth-chainview/transition"
	"github.com/ckbridge/eth-chainview/witness"
	"github.com/ethereum/go-ethereum/log"
)

// Config bundles the collaborators VerifyEntry needs. Callers assemble it
// once (production config uses the CBOR/RLP/Keccak-backed implementations;
// tests may swap in fakes) and reuse it across calls.
type Config struct {
	CellDataCodec  chaintypes.CellDataCodec
	WitnessCodec   witness.Codec
	DagRootCodec   dagroot.Codec
	HeaderCodec    headercodec.Codec
	Transition     *transition.Validator
	EthashVerifier ethashverify.Verifier
}

// NewProductionConfig returns the Config wired to the real codecs and
// Ethash verifier.
func NewProductionConfig() Config {
	hc := headercodec.NewCodec()
	return Config{
		CellDataCodec:  chaintypes.NewCellDataCodec(),
		WitnessCodec:   witness.NewCodec(),
		DagRootCodec:   dagroot.NewCodec(),
		HeaderCodec:    hc,
		Transition:     transition.New(hc),
		EthashVerifier: ethashverify.NewMerkleVerifier(),
	}
}

// Entry runs the full verification pipeline against h and returns nil on
// accept, or one of the chaintypes.Err* sentinels (wrapped with context) on
// rejection. An error the host itself reports while counting or loading the
// group input/output cells is returned as is, without a sentinel, so
// chaintypes.ExitCode maps it to its fallback code. It never panics on
// malformed input: every external call is
// checked at its call site, and the first error encountered aborts the
// transition with no partial state escaping.
func Entry(h host.Host, cfg Config) error {
	input, output, err := loadGroupCells(h)
	if err != nil {
		return err
	}

	inputView, err := chainview.New(input, cfg.CellDataCodec)
	if err != nil {
		return err
	}
	outputView, err := chainview.New(output, cfg.CellDataCodec)
	if err != nil {
		return err
	}

	if !bytes.Equal(inputView.OwnerLock(), outputView.OwnerLock()) {
		return chaintypes.ErrInvalidDataChange
	}

	w, err := loadWitness(h, cfg.WitnessCodec)
	if err != nil {
		return err
	}

	decodedHeader, err := cfg.HeaderCodec.Decode(w.HeaderRaw)
	if err != nil {
		return fmt.Errorf("%w: %v", chaintypes.ErrInvalidWitness, err)
	}

	classification, err := cfg.Transition.Validate(inputView.Data(), outputView.Data(), w.HeaderRaw, decodedHeader)
	if err != nil {
		return err
	}

	root, err := loadDagRoot(h, w, decodedHeader, cfg.DagRootCodec)
	if err != nil {
		return err
	}

	if !cfg.EthashVerifier.Verify(decodedHeader, nil, root, w.MerkleProof) {
		return chaintypes.ErrInvalidMerkleProofData
	}

	log.Debug("chain-view transition accepted", "classification", classification, "number", decodedHeader.Number, "hash", decodedHeader.Hash)
	return nil
}

func loadGroupCells(h host.Host) (input, output []byte, err error) {
	inCount, err := h.CellDataCount(host.SourceGroupInput)
	if err != nil {
		return nil, nil, err
	}
	if inCount != 1 {
		return nil, nil, fmt.Errorf("%w: expected exactly 1 group input cell, got %d", chaintypes.ErrTxInvalid, inCount)
	}
	outCount, err := h.CellDataCount(host.SourceGroupOutput)
	if err != nil {
		return nil, nil, err
	}
	if outCount != 1 {
		return nil, nil, fmt.Errorf("%w: expected exactly 1 group output cell, got %d", chaintypes.ErrTxInvalid, outCount)
	}
	input, err = h.LoadCellData(0, host.SourceGroupInput)
	if err != nil {
		return nil, nil, err
	}
	output, err = h.LoadCellData(0, host.SourceGroupOutput)
	if err != nil {
		return nil, nil, err
	}
	return input, output, nil
}

func loadWitness(h host.Host, codec witness.Codec) (*witness.Witness, error) {
	raw, ok, err := h.LoadWitnessInputType(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chaintypes.ErrInvalidWitness, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing input_type at group-input index 0", chaintypes.ErrInvalidWitness)
	}
	w, err := codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func loadDagRoot(h host.Host, w *witness.Witness, header headercodec.Header, codec dagroot.Codec) (dagroot.Root, error) {
	raw, err := h.LoadCellData(int(w.CellDepIndex), host.SourceCellDep)
	if err != nil {
		return dagroot.Root{}, fmt.Errorf("%w: %v", chaintypes.ErrDagsMerkleRootsDataInvalid, err)
	}
	table, err := codec.Decode(raw)
	if err != nil {
		return dagroot.Root{}, err
	}
	return table.RootForHeight(header.Number)
}
