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

// Package chainview wraps one decoded cell's data into a read-only view:
// the owner-lock bytes plus the main and uncle header rings. It adds no
// behavior over chaintypes.CellDataView beyond naming the read-only surface
// the rest of the verifier is allowed to use.
package chainview

import "github.com/ckbridge/eth-chainview/chaintypes"

// View is a read-only projection over one cell's decoded data.
type View struct {
	data *chaintypes.CellDataView
}

// New decodes raw cell data with codec and returns the resulting View.
func New(raw []byte, codec chaintypes.CellDataCodec) (*View, error) {
	data, err := codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	return &View{data: data}, nil
}

// OwnerLock returns the opaque owner-lock bytes.
func (v *View) OwnerLock() []byte { return v.data.OwnerLock }

// Main returns the canonical chain suffix, oldest first.
func (v *View) Main() []chaintypes.HeaderInfo { return v.data.Chain.Main }

// Uncle returns the side pool of non-canonical headers, oldest first.
func (v *View) Uncle() []chaintypes.HeaderInfo { return v.data.Chain.Uncle }

// Chain returns the underlying Chain pair.
func (v *View) Chain() chaintypes.Chain { return v.data.Chain }

// Data returns the underlying decoded CellDataView, for collaborators (such
// as the transition validator) that need the full structure rather than one
// field at a time.
func (v *View) Data() *chaintypes.CellDataView { return v.data }
