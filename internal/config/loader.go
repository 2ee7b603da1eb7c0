package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed example.yaml
var defaultDefinitionYAML []byte

// LoadDefinition loads a model definition from YAML.
// If path is empty, uses the embedded example definition.
func LoadDefinition(path string) (*Definition, error) {
	var data []byte
	var err error

	if path == "" {
		data = defaultDefinitionYAML
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read definition: %w", err)
		}
	}

	return ParseDefinition(data)
}

// ParseDefinition decodes a model definition, rejecting unknown fields
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &def, nil
}
