package models

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestNewFsObject_RegularFile(t *testing.T) {
	content := []byte("integrity matters")
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, content, 0o640))

	obj, err := NewFsObject(path)
	require.NoError(t, err)

	sum := blake3.Sum256(content)
	assert.Equal(t, path, obj.Path)
	assert.Equal(t, hex.EncodeToString(sum[:]), obj.Hash)
}

func TestNewFsObject_Directory(t *testing.T) {
	_, err := NewFsObject(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestNewFsObject_Missing(t *testing.T) {
	_, err := NewFsObject(filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrNotRegular)
	assert.NotErrorIs(t, err, ErrRead)
}
