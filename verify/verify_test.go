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

package verify

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/ckbridge/eth-chainview/dagroot"
	"github.com/ckbridge/eth-chainview/ethashverify"
	"github.com/ckbridge/eth-chainview/headercodec"
	"github.com/ckbridge/eth-chainview/host"
	"github.com/ckbridge/eth-chainview/witness"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// fixture bundles one accepted straight-extension scenario: main = [A, B],
// new header C extends B, uncle untouched.
type fixture struct {
	inputData, outputData *chaintypes.CellDataView
	childRaw              []byte
}

func buildExtensionFixture(t *testing.T) fixture {
	t.Helper()
	a := &gethtypes.Header{Number: big.NewInt(1), Difficulty: big.NewInt(5), GasLimit: 8_000_000}
	aRaw, err := rlp.EncodeToBytes(a)
	if err != nil {
		t.Fatal(err)
	}
	b := &gethtypes.Header{ParentHash: a.Hash(), Number: big.NewInt(2), Difficulty: big.NewInt(5), GasLimit: 8_000_000}
	bRaw, err := rlp.EncodeToBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	c := &gethtypes.Header{ParentHash: b.Hash(), Number: big.NewInt(3), Difficulty: big.NewInt(3), GasLimit: 8_000_000}
	cRaw, err := rlp.EncodeToBytes(c)
	if err != nil {
		t.Fatal(err)
	}
	u := &gethtypes.Header{Number: big.NewInt(1), Difficulty: big.NewInt(5), GasLimit: 8_000_000, Extra: []byte{1}}
	uRaw, err := rlp.EncodeToBytes(u)
	if err != nil {
		t.Fatal(err)
	}

	aInfo := chaintypes.HeaderInfo{Header: aRaw, Hash: a.Hash(), TotalDifficulty: 5}
	bInfo := chaintypes.HeaderInfo{Header: bRaw, Hash: b.Hash(), TotalDifficulty: 10}
	cInfo := chaintypes.HeaderInfo{Header: cRaw, Hash: c.Hash(), TotalDifficulty: 13}
	uInfo := chaintypes.HeaderInfo{Header: uRaw, Hash: u.Hash(), TotalDifficulty: 5}

	input := &chaintypes.CellDataView{
		OwnerLock: []byte("owner"),
		Chain:     chaintypes.Chain{Main: []chaintypes.HeaderInfo{aInfo, bInfo}, Uncle: []chaintypes.HeaderInfo{uInfo}},
	}
	output := &chaintypes.CellDataView{
		OwnerLock: []byte("owner"),
		Chain:     chaintypes.Chain{Main: []chaintypes.HeaderInfo{aInfo, bInfo, cInfo}, Uncle: []chaintypes.HeaderInfo{uInfo}},
	}
	return fixture{inputData: input, outputData: output, childRaw: cRaw}
}

func fixtureHost(t *testing.T, f fixture, cellDepIdx byte, dagTable *dagroot.Table) *host.FixtureHost {
	t.Helper()
	inputRaw, err := chaintypes.EncodeCellData(f.inputData)
	if err != nil {
		t.Fatal(err)
	}
	outputRaw, err := chaintypes.EncodeCellData(f.outputData)
	if err != nil {
		t.Fatal(err)
	}
	w := &witness.Witness{
		CellDepIndex: cellDepIdx,
		HeaderRaw:    f.childRaw,
		MerkleProof:  []witness.DoubleNodeWithMerkleProof{{DagNodes: [][64]byte{{1}, {2}}, Proof: nil}},
	}
	witnessRaw, err := witness.Encode(w)
	if err != nil {
		t.Fatal(err)
	}
	depRaw, err := dagroot.Encode(dagTable)
	if err != nil {
		t.Fatal(err)
	}

	h := host.NewFixtureHost()
	h.GroupInput = [][]byte{inputRaw}
	h.GroupOutput = [][]byte{outputRaw}
	h.CellDeps = [][]byte{depRaw}
	h.WitnessInputType[0] = witnessRaw
	return h
}

func testConfig(ethVerifier ethashverify.Verifier) Config {
	hc := headercodec.NewCodec()
	cfg := NewProductionConfig()
	cfg.HeaderCodec = hc
	cfg.EthashVerifier = ethVerifier
	return cfg
}

func TestEntryAcceptsStraightExtension(t *testing.T) {
	f := buildExtensionFixture(t)
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)

	if err := Entry(h, testConfig(ethashverify.NewFaker())); err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
}

func TestEntryRejectsOwnerLockTamper(t *testing.T) {
	f := buildExtensionFixture(t)
	f.outputData.OwnerLock = []byte("someone-else")
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)

	err := Entry(h, testConfig(ethashverify.NewFaker()))
	if !errors.Is(err, chaintypes.ErrInvalidDataChange) {
		t.Fatalf("expected ErrInvalidDataChange, got %v", err)
	}
}

func TestEntryRejectsWrongCellCount(t *testing.T) {
	f := buildExtensionFixture(t)
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)
	h.GroupInput = append(h.GroupInput, h.GroupInput[0])

	err := Entry(h, testConfig(ethashverify.NewFaker()))
	if !errors.Is(err, chaintypes.ErrTxInvalid) {
		t.Fatalf("expected ErrTxInvalid, got %v", err)
	}
}

func TestEntryRejectsMissingWitness(t *testing.T) {
	f := buildExtensionFixture(t)
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)
	delete(h.WitnessInputType, 0)

	err := Entry(h, testConfig(ethashverify.NewFaker()))
	if !errors.Is(err, chaintypes.ErrInvalidWitness) {
		t.Fatalf("expected ErrInvalidWitness, got %v", err)
	}
}

func TestEntryRejectsDifficultyDropOnReorg(t *testing.T) {
	f := buildExtensionFixture(t)
	// Fork off A with lower total difficulty than B's (10): invalid reorg.
	forked := &gethtypes.Header{ParentHash: f.inputData.Chain.Main[0].Hash, Number: big.NewInt(2), Difficulty: big.NewInt(1), GasLimit: 8_000_000}
	forkedRaw, err := rlp.EncodeToBytes(forked)
	if err != nil {
		t.Fatal(err)
	}
	f.childRaw = forkedRaw
	f.outputData.Chain.Main = []chaintypes.HeaderInfo{
		f.inputData.Chain.Main[0],
		{Header: forkedRaw, Hash: forked.Hash(), TotalDifficulty: 6},
	}
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)

	err = Entry(h, testConfig(ethashverify.NewFaker()))
	if !errors.Is(err, chaintypes.ErrInvalidCellData) {
		t.Fatalf("expected ErrInvalidCellData, got %v", err)
	}
}

func TestEntryRejectsFailedMerkleProof(t *testing.T) {
	f := buildExtensionFixture(t)
	dagTable := &dagroot.Table{Roots: []dagroot.Root{{}}}
	h := fixtureHost(t, f, 0, dagTable)

	err := Entry(h, testConfig(ethashverify.NewFakeFailer()))
	if !errors.Is(err, chaintypes.ErrInvalidMerkleProofData) {
		t.Fatalf("expected ErrInvalidMerkleProofData, got %v", err)
	}
}

func TestEntryRejectsOutOfRangeDagRoot(t *testing.T) {
	f := buildExtensionFixture(t)
	// No roots at all: epoch 0 is out of range for the child header.
	dagTable := &dagroot.Table{Roots: nil}
	h := fixtureHost(t, f, 0, dagTable)

	err := Entry(h, testConfig(ethashverify.NewFaker()))
	if !errors.Is(err, chaintypes.ErrDagsMerkleRootsDataInvalid) {
		t.Fatalf("expected ErrDagsMerkleRootsDataInvalid, got %v", err)
	}
}
