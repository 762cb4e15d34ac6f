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

	"github.com/BurntSushi/toml"
)

// Config is the harness's on-disk configuration, loaded with --config the
// way cmd/geth loads its config.toml. It only carries knobs for the CLI
// harness itself; the verifier core (package verify) takes no configuration
// beyond the Config it assembles from production collaborators.
type Config struct {
	Verbosity int `toml:"verbosity"`
}

// defaultConfig mirrors the zero-flags behavior of the harness.
func defaultConfig() Config {
	return Config{Verbosity: 3}
}

// loadConfig decodes a TOML config file into defaultConfig's shape. A
// missing path is not an error: callers pass "" when --config was not set.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
