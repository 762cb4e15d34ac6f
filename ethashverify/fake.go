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

package ethashverify

import (
	"github.com/ckbridge/eth-chainview/dagroot"
	"github.com/ckbridge/eth-chainview/headercodec"
	"github.com/ckbridge/eth-chainview/witness"
	"github.com/ethereum/go-ethereum/common"
)

// fakeVerifier always returns a fixed verdict, regardless of its inputs. It
// mirrors consensus/ethash's NewFaker/NewFakeFailer test doubles: tests that
// exercise the chain-view transition rules should not also have to
// construct valid DAG proofs.
type fakeVerifier struct{ accept bool }

// NewFaker returns a Verifier that accepts every proof. Use it in tests that
// are exercising TransitionValidator, not Ethash verification itself.
func NewFaker() Verifier {
	return fakeVerifier{accept: true}
}

// NewFakeFailer returns a Verifier that rejects every proof.
func NewFakeFailer() Verifier {
	return fakeVerifier{accept: false}
}

func (f fakeVerifier) Verify(headercodec.Header, *common.Hash, dagroot.Root, []witness.DoubleNodeWithMerkleProof) bool {
	return f.accept
}
