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

package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/ckbridge/eth-chainview/dagroot"
	"github.com/ckbridge/eth-chainview/witness"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/urfave/cli/v2"
)

var outDirFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "directory to write input/output/witness/dep fixture files into",
	Value: ".",
}

var fixtureCommand = &cli.Command{
	Name:      "gen-fixture",
	Usage:     "write a minimal straight-extension scenario usable by the verify command",
	ArgsUsage: " ",
	Flags:     []cli.Flag{outDirFlag},
	Action:    runGenFixture,
}

// runGenFixture builds the smallest accepted scenario (a straight extension
// below cap) with a genuine RLP header and an Ethash double-node proof that
// folds to the root it writes, so the generated files pass both the
// transition validator and the production EthashVerifier end to end.
func runGenFixture(c *cli.Context) error {
	dir := c.String(outDirFlag.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	parent := &types.Header{
		Number:     big.NewInt(1),
		Difficulty: big.NewInt(10),
		GasLimit:   8_000_000,
	}
	parentRaw, err := rlp.EncodeToBytes(parent)
	if err != nil {
		return err
	}
	parentInfo := chaintypes.HeaderInfo{Header: parentRaw, Hash: parent.Hash(), TotalDifficulty: 10}

	child := &types.Header{
		ParentHash: parent.Hash(),
		Number:     big.NewInt(2),
		Difficulty: big.NewInt(3),
		GasLimit:   8_000_000,
	}
	childRaw, err := rlp.EncodeToBytes(child)
	if err != nil {
		return err
	}
	childInfo := chaintypes.HeaderInfo{Header: childRaw, Hash: child.Hash(), TotalDifficulty: 13}

	uncle := &types.Header{
		Number:     big.NewInt(1),
		Difficulty: big.NewInt(10),
		GasLimit:   8_000_000,
		Extra:      []byte{0x01},
	}
	uncleRaw, err := rlp.EncodeToBytes(uncle)
	if err != nil {
		return err
	}
	uncleInfo := chaintypes.HeaderInfo{Header: uncleRaw, Hash: uncle.Hash(), TotalDifficulty: 10}

	inputData := &chaintypes.CellDataView{
		OwnerLock: []byte("owner-lock-demo"),
		Chain:     chaintypes.Chain{Main: []chaintypes.HeaderInfo{parentInfo}, Uncle: []chaintypes.HeaderInfo{uncleInfo}},
	}
	outputData := &chaintypes.CellDataView{
		OwnerLock: []byte("owner-lock-demo"),
		Chain:     chaintypes.Chain{Main: []chaintypes.HeaderInfo{parentInfo, childInfo}, Uncle: []chaintypes.HeaderInfo{uncleInfo}},
	}

	var node0, node1 [64]byte
	node0[0] = 0xAA
	node1[0] = 0xBB
	root := combineDoubleNodeDemo(node0, node1)

	w := &witness.Witness{
		CellDepIndex: 0,
		HeaderRaw:    childRaw,
		MerkleProof: []witness.DoubleNodeWithMerkleProof{
			{DagNodes: [][64]byte{node0, node1}, Proof: nil},
		},
	}
	dagTable := &dagroot.Table{Roots: []dagroot.Root{root}}

	inputBytes, err := chaintypes.EncodeCellData(inputData)
	if err != nil {
		return err
	}
	outputBytes, err := chaintypes.EncodeCellData(outputData)
	if err != nil {
		return err
	}
	witnessBytes, err := witness.Encode(w)
	if err != nil {
		return err
	}
	depBytes, err := dagroot.Encode(dagTable)
	if err != nil {
		return err
	}

	for name, data := range map[string][]byte{
		"input.cbor":   inputBytes,
		"output.cbor":  outputBytes,
		"witness.cbor": witnessBytes,
		"dep0.cbor":    depBytes,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	fmt.Printf("wrote fixture to %s; run:\n  chainview-verify verify --input %s --output %s --witness %s --dep %s\n",
		dir,
		filepath.Join(dir, "input.cbor"), filepath.Join(dir, "output.cbor"),
		filepath.Join(dir, "witness.cbor"), filepath.Join(dir, "dep0.cbor"))
	return nil
}

// combineDoubleNodeDemo mirrors ethashverify's unexported leaf construction
// so the fixture's proof is internally consistent with the production
// verifier without depending on its unexported helpers.
func combineDoubleNodeDemo(a, b [64]byte) dagroot.Root {
	data := make([]byte, 128)
	copy(data[:64], a[:])
	copy(data[64:], b[:])
	digest := crypto.Keccak256(data)
	var out dagroot.Root
	copy(out[:], digest[16:])
	return out
}
