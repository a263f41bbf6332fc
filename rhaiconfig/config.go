// Package rhaiconfig loads the workspace.Config object (spec §6.4) from
// YAML. Decoding the on-disk format is a host concern per spec §1; the core
// consumes only the decoded Config struct.
package rhaiconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/rhai-hir-go/workspace"
)

// file is the on-disk shape this loader decodes, nested under a top-level
// "source" key mirroring spec §6.4's "source.include" / "source.file_rule".
type file struct {
	Source struct {
		Include  []string `yaml:"include"`
		FileRule string   `yaml:"file_rule"`
	} `yaml:"source"`
}

// Load reads and decodes the config file at path into a workspace.Config.
func Load(path string) (workspace.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return workspace.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses YAML-encoded config bytes into a workspace.Config.
func Decode(data []byte) (workspace.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return workspace.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if len(f.Source.Include) == 0 {
		return workspace.Config{}, fmt.Errorf("config must set source.include")
	}
	return workspace.Config{
		Include:  f.Source.Include,
		FileRule: f.Source.FileRule,
	}, nil
}
