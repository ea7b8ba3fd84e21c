// Package config loads the server configuration from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the node.hcl schema. Every attribute is optional; the zero
// file is a valid configuration.
type Config struct {
	ListenAddr  string `hcl:"listen_addr,optional"`
	ContentRoot string `hcl:"content_root,optional"`
	Snapshot    string `hcl:"snapshot,optional"`
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() Config {
	return Config{
		ListenAddr:  ":8888",
		ContentRoot: "content",
		Snapshot:    "build/content_graph.json",
	}
}

// Load reads an HCL config file and fills unset attributes with defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	def := Default()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.ContentRoot == "" {
		cfg.ContentRoot = def.ContentRoot
	}
	if cfg.Snapshot == "" {
		cfg.Snapshot = def.Snapshot
	}
	return cfg, nil
}
