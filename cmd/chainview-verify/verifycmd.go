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
	"os"

	"github.com/ckbridge/eth-chainview/chaintypes"
	"github.com/ckbridge/eth-chainview/host"
	"github.com/ckbridge/eth-chainview/verify"
	"github.com/urfave/cli/v2"
)

var (
	inputFlag   = &cli.StringFlag{Name: "input", Usage: "file holding the input cell's raw data", Required: true}
	outputFlag  = &cli.StringFlag{Name: "output", Usage: "file holding the output cell's raw data", Required: true}
	witnessFlag = &cli.StringFlag{Name: "witness", Usage: "file holding the witness input_type bytes", Required: true}
	depFlag     = &cli.StringSliceFlag{Name: "dep", Usage: "file holding one dep-cell's raw data; repeat in cell-dep index order"}
)

var verifyCommand = &cli.Command{
	Name:      "verify",
	Usage:     "run the chain-view transition validator against one transaction's cell/witness/dep-cell blobs",
	ArgsUsage: " ",
	Flags:     []cli.Flag{inputFlag, outputFlag, witnessFlag, depFlag},
	Action:    runVerify,
}

func runVerify(c *cli.Context) error {
	h, err := buildFixtureHost(c)
	if err != nil {
		return err
	}
	err = verify.Entry(h, verify.NewProductionConfig())
	code := chaintypes.ExitCode(err)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reject:", err)
	} else {
		fmt.Println("accept")
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func buildFixtureHost(c *cli.Context) (*host.FixtureHost, error) {
	input, err := os.ReadFile(c.String(inputFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	output, err := os.ReadFile(c.String(outputFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	witnessBytes, err := os.ReadFile(c.String(witnessFlag.Name))
	if err != nil {
		return nil, fmt.Errorf("read witness: %w", err)
	}

	fh := host.NewFixtureHost()
	fh.GroupInput = [][]byte{input}
	fh.GroupOutput = [][]byte{output}
	fh.WitnessInputType[0] = witnessBytes

	for _, path := range c.StringSlice(depFlag.Name) {
		dep, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dep %s: %w", path, err)
		}
		fh.CellDeps = append(fh.CellDeps, dep)
	}
	return fh, nil
}
