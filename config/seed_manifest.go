package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedManifest is an optional YAML file describing where the seed CSVs live.
// Empty fields keep the environment values.
//
//	data_dir: gs://billing-snapshots/2024-06
//	files:
//	  platforms: plataformas.csv
//	  transactions: transacciones.csv
type SeedManifest struct {
	DataDir string            `yaml:"data_dir"`
	Files   SeedManifestFiles `yaml:"files"`
}

type SeedManifestFiles struct {
	Platforms    string `yaml:"platforms"`
	Clients      string `yaml:"clients"`
	Invoices     string `yaml:"invoices"`
	Transactions string `yaml:"transactions"`
}

// SeedPaths holds the resolved location of every seed file
type SeedPaths struct {
	Platforms    string
	Clients      string
	Invoices     string
	Transactions string
}

// LoadSeedManifest reads and parses a seed manifest file
func LoadSeedManifest(path string) (*SeedManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest %s: %w", path, err)
	}

	var m SeedManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse seed manifest %s: %w", path, err)
	}
	return &m, nil
}

// ApplyManifest overrides the seed locations set in the manifest
func (c *SeedConfig) ApplyManifest(m *SeedManifest) {
	if m == nil {
		return
	}
	override := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	override(&c.DataDir, m.DataDir)
	override(&c.PlatformsFile, m.Files.Platforms)
	override(&c.ClientsFile, m.Files.Clients)
	override(&c.InvoicesFile, m.Files.Invoices)
	override(&c.TransactionsFile, m.Files.Transactions)
}

// Paths resolves every seed file against DataDir.
// Absolute paths and gs:// URIs are returned unchanged.
func (c SeedConfig) Paths() SeedPaths {
	return SeedPaths{
		Platforms:    c.resolve(c.PlatformsFile),
		Clients:      c.resolve(c.ClientsFile),
		Invoices:     c.resolve(c.InvoicesFile),
		Transactions: c.resolve(c.TransactionsFile),
	}
}

func (c SeedConfig) resolve(file string) string {
	if file == "" || filepath.IsAbs(file) || strings.HasPrefix(file, "gs://") || c.DataDir == "" {
		return file
	}
	if strings.HasPrefix(c.DataDir, "gs://") {
		return strings.TrimRight(c.DataDir, "/") + "/" + file
	}
	return filepath.Join(c.DataDir, file)
}
