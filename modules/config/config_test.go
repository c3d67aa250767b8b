package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Paths    []string `yaml:"paths"`
	LogLevel string   `yaml:"log_level"`
	Hash     bool     `yaml:"hash"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFromYamlFile(t *testing.T) {
	path := writeFile(t, "paths:\n  - /srv/in\n  - /srv/out\nlog_level: debug\nhash: true\n")

	var s sample
	require.NoError(t, FromYamlFile(path, &s))

	assert.Equal(t, []string{"/srv/in", "/srv/out"}, s.Paths)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Hash)
}

func TestFromYamlFile_Empty(t *testing.T) {
	path := writeFile(t, "")

	s := sample{LogLevel: "info"}
	require.NoError(t, FromYamlFile(path, &s))
	assert.Equal(t, "info", s.LogLevel)
}

func TestFromYamlFile_UnknownField(t *testing.T) {
	path := writeFile(t, "log_levle: debug\n")

	var s sample
	err := FromYamlFile(path, &s)
	assert.ErrorContains(t, err, "log_levle")
}

func TestFromYamlFile_Missing(t *testing.T) {
	var s sample
	err := FromYamlFile(filepath.Join(t.TempDir(), "nope.yaml"), &s)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
