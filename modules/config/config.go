package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYamlFile decodes the YAML document at path into v. Keys that do not map to a
// field of v are rejected.
func FromYamlFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return FromYaml(data, v)
}

func FromYaml(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(v)
	if errors.Is(err, io.EOF) {
		// Empty document, keep defaults
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}
