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

// Command chainview-verify is an offline harness around package verify: it
// runs the same state-transition validator a CKB script would run inside
// the chain, but against cell/witness/dep-cell blobs read from the local
// filesystem instead of a live transaction group. It exists for reproducing
// and debugging transitions outside the host VM; it is not itself part of
// the on-chain core.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML config file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
)

var cfg Config

func main() {
	app := &cli.App{
		Name:                 "chainview-verify",
		Usage:                "offline harness for the Ethash chain-view transition validator",
		Flags:                []cli.Flag{configFlag, verbosityFlag},
		Commands:             []*cli.Command{verifyCommand, fixtureCommand},
		EnableBashCompletion: true,
		Before: func(c *cli.Context) error {
			loaded, err := loadConfig(c.String(configFlag.Name))
			if err != nil {
				return err
			}
			if c.IsSet(verbosityFlag.Name) {
				loaded.Verbosity = c.Int(verbosityFlag.Name)
			}
			cfg = loaded
			return setupLogging(cfg.Verbosity)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setupLogging installs a terminal log handler at the requested level, the
// same pattern cmd/geth's Before hook uses to honor --verbosity.
func setupLogging(verbosity int) error {
	if verbosity < 0 || verbosity > 5 {
		return fmt.Errorf("invalid verbosity %d, want 0-5", verbosity)
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), true)))
	return nil
}
