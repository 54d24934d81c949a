package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadFile reads an item catalog from a YAML file and builds a validated
// registry from it.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no templates", path)
	}
	return NewRegistry(file.Templates...)
}
