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

// Package transition implements the chain-view state-transition validator:
// the rules governing how the bounded main/uncle header caches may evolve
// when a new header is appended, reorganised onto a shorter main chain, or
// diverted to the uncle side.
package transition

import (
	"bytes"
	"fmt"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/ckbridge/eth-chainview/headercodec"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Classification names which of the three shapes a transition takes, for
// callers that want to log or assert on it.
type Classification int

const (
	// Extension is a canonical append whose new header's parent is the
	// current main tail: no reorg needed.
	Extension Classification = iota
	// Reorg is a canonical append whose new header's parent is not the
	// current main tail: the ancestor is found via main or uncle.
	Reorg
	// UncleAppend places the new header on the uncle side; main is
	// untouched.
	UncleAppend
)

func (c Classification) String() string {
	switch c {
	case Extension:
		return "extension"
	case Reorg:
		return "reorg"
	case UncleAppend:
		return "uncle-append"
	default:
		return "unknown"
	}
}

// Validator enforces the per-case cache transformation rules. It needs a
// HeaderCodec because the reorg branch must decode ancestor headers (on the
// uncle side) to walk their parent-hash chain.
type Validator struct {
	headerCodec headercodec.Codec
}

// New returns a Validator backed by codec.
func New(codec headercodec.Codec) *Validator {
	return &Validator{headerCodec: codec}
}

// Validate checks that output is a legal successor of input given the new
// header H (already decoded from newHeaderRaw). It returns the
// Classification it found so the caller can log or assert on it.
func (v *Validator) Validate(input, output *chaintypes.CellDataView, newHeaderRaw []byte, h headercodec.Header) (Classification, error) {
	inMain, outMain := input.Chain.Main, output.Chain.Main
	inUncle, outUncle := input.Chain.Uncle, output.Chain.Uncle

	if len(inMain) == 0 || len(outMain) == 0 || len(inUncle) == 0 || len(outUncle) == 0 {
		return 0, fmt.Errorf("%w: main/uncle caches must be non-empty", chaintypes.ErrInvalidCellData)
	}

	outTail := outMain[len(outMain)-1]
	if !bytes.Equal(outTail.Header, newHeaderRaw) {
		log.Debug("new header is not on the main chain, appending to the uncle cache", "number", h.Number, "hash", h.Hash)
		if err := v.validateUncleAppend(inMain, outMain, inUncle, outUncle); err != nil {
			return 0, err
		}
		return UncleAppend, nil
	}

	if outTail.Hash != h.Hash {
		return 0, fmt.Errorf("%w: output main tail hash does not match decoded header hash", chaintypes.ErrInvalidCellData)
	}
	inTail := inMain[len(inMain)-1]
	if inTail.Hash == h.ParentHash {
		log.Debug("main chain extended without reorg", "number", h.Number, "hash", h.Hash)
		if err := v.validateExtension(inMain, outMain, inUncle, outUncle, inTail, outTail, h); err != nil {
			return 0, err
		}
		return Extension, nil
	}
	log.Debug("main chain reorged", "number", h.Number, "hash", h.Hash, "parent", h.ParentHash)
	if err := v.validateReorg(inMain, outMain, inUncle, inTail, outTail, h); err != nil {
		return 0, err
	}
	return Reorg, nil
}

// validateExtension handles the straight-extension case: the main cache
// behaves as a bounded ring that appends the new header at the tail and
// evicts the head iff it was already at capacity; the uncle cache is
// untouched.
func (v *Validator) validateExtension(inMain, outMain, inUncle, outUncle []chaintypes.HeaderInfo, inTail, outTail chaintypes.HeaderInfo, h headercodec.Header) error {
	want, overflow := addUint64(inTail.TotalDifficulty, h.Difficulty)
	if overflow || outTail.TotalDifficulty != want {
		return fmt.Errorf("%w: total difficulty law violated on extension", chaintypes.ErrInvalidCellData)
	}
	if len(outMain) > chaintypes.MainLimit {
		return fmt.Errorf("%w: main cache exceeds limit %d", chaintypes.ErrInvalidCellData, chaintypes.MainLimit)
	}
	if !ringAppendValid(inMain, outMain, chaintypes.MainLimit) {
		return fmt.Errorf("%w: main cache did not append as a bounded ring", chaintypes.ErrInvalidCellData)
	}
	if !chaintypes.HeaderInfoSliceEqual(inUncle, outUncle) {
		return fmt.Errorf("%w: uncle cache must be unchanged on a straight extension", chaintypes.ErrInvalidCellData)
	}
	return nil
}

// validateUncleAppend handles the side-chain case: the new header is
// appended to the uncle ring under the same bounded-ring rule, with main
// untouched.
func (v *Validator) validateUncleAppend(inMain, outMain, inUncle, outUncle []chaintypes.HeaderInfo) error {
	if !ringAppendValid(inUncle, outUncle, chaintypes.UncleLimit) {
		return fmt.Errorf("%w: uncle cache did not append as a bounded ring", chaintypes.ErrInvalidCellData)
	}
	if !chaintypes.HeaderInfoSliceEqual(inMain, outMain) {
		return fmt.Errorf("%w: main cache must be unchanged on an uncle append", chaintypes.ErrInvalidCellData)
	}
	return nil
}

// validateReorg handles a canonical append whose parent is not the current
// main tail: the ancestor search walks backward from the new header's
// parent, stepping through the uncle pool whenever the candidate height is
// above the cached main range, until it lands on an entry in the main cache
// or exhausts the search.
func (v *Validator) validateReorg(inMain, outMain, inUncle []chaintypes.HeaderInfo, inTail, outTail chaintypes.HeaderInfo, h headercodec.Header) error {
	if outTail.TotalDifficulty < inTail.TotalDifficulty {
		return fmt.Errorf("%w: total difficulty must not drop on reorg", chaintypes.ErrInvalidCellData)
	}
	inTailDecoded, err := v.headerCodec.Decode(inTail.Header)
	if err != nil {
		return fmt.Errorf("%w: cannot decode input main tail header: %v", chaintypes.ErrInvalidCellData, err)
	}

	number := h.Number - 1
	currentHash := h.ParentHash
	for number > 0 {
		if inTailDecoded.Number <= number {
			log.Debug("chain-view reorg: stepping via uncle pool (height above cached main range)", "number", number)
			currentHash, number, err = v.traverseUncle(inUncle, currentHash, number)
			if err != nil {
				return err
			}
			continue
		}
		offset := inTailDecoded.Number - number - 1
		if offset >= uint64(len(inMain)) {
			return fmt.Errorf("%w: reorg ancestor search offset out of range", chaintypes.ErrInvalidCellData)
		}
		candidateIdx := len(inMain) - 1 - int(offset)
		candidate := inMain[candidateIdx]
		if candidate.Hash == currentHash {
			// A fork point at the cache head leaves no surviving prefix.
			var prefixIn []chaintypes.HeaderInfo
			if candidateIdx > 1 {
				prefixIn = inMain[1:candidateIdx]
			}
			prefixOut := outMain[:len(outMain)-1]
			if !chaintypes.HeaderInfoSliceEqual(prefixIn, prefixOut) {
				return fmt.Errorf("%w: surviving main prefix does not match output", chaintypes.ErrInvalidCellData)
			}
			return nil
		}
		currentHash, number, err = v.traverseUncle(inUncle, currentHash, number)
		if err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: reorg ancestor search exhausted without finding a fork point", chaintypes.ErrInvalidCellData)
}

// traverseUncle scans inUncle from the tail backward for the entry whose
// hash equals currentHash. On a hit it decodes that entry's raw header and
// returns its parent hash, with number decremented unconditionally.
//
// The decrement is unconditional, whether or not the matched entry actually
// sits at the tracked height: a known limitation, correct only when the
// uncle pool holds a contiguous parent chain at exactly decreasing heights.
// Relayers populate the pool under that assumption, so the behavior is kept
// as-is rather than second-guessed here.
//
// The scan never examines index 0 of inUncle: the bounds check fires before
// that element is compared.
func (v *Validator) traverseUncle(inUncle []chaintypes.HeaderInfo, currentHash common.Hash, number uint64) (common.Hash, uint64, error) {
	index := len(inUncle) - 1
	for {
		if index == 0 {
			return common.Hash{}, 0, fmt.Errorf("%w: uncle chain traversal exhausted without finding parent", chaintypes.ErrInvalidCellData)
		}
		entry := inUncle[index]
		if entry.Hash == currentHash {
			decoded, err := v.headerCodec.Decode(entry.Header)
			if err != nil {
				return common.Hash{}, 0, fmt.Errorf("%w: cannot decode uncle header: %v", chaintypes.ErrInvalidCellData, err)
			}
			return decoded.ParentHash, number - 1, nil
		}
		index--
	}
}

// ringAppendValid checks the shared bounded-ring append rule used by both
// the main cache on a straight extension and the uncle cache on an uncle
// append: the new tail's cache either grew by exactly one entry with the
// old contents preserved as a prefix, or was already at capacity and
// dropped its oldest entry to make room.
func ringAppendValid(in, out []chaintypes.HeaderInfo, limit int) bool {
	if len(out) > limit {
		return false
	}
	switch {
	case len(in) == limit && len(out) == limit:
		return chaintypes.HeaderInfoSliceEqual(in[1:], out[:len(out)-1])
	case len(in) < len(out):
		return chaintypes.HeaderInfoSliceEqual(in, out[:len(out)-1])
	default:
		return false
	}
}

// addUint64 adds a and b, reporting overflow instead of wrapping silently.
func addUint64(a, b uint64) (sum uint64, overflow bool) {
	sum = a + b
	return sum, sum < a
}
