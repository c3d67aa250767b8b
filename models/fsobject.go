package models

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

var (
	ErrNotRegular = errors.New("not a regular file")

	// ErrRead is returned when the file was opened but its content could not be read.
	ErrRead = errors.New("failed to read content")
)

// FsObject is the content digest of a file at the moment an event for it was reported.
type FsObject struct {
	Path string
	Hash string
}

// NewFsObject hashes the regular file at path. Symlinks are not followed.
func NewFsObject(path string) (FsObject, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FsObject{}, fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.Mode().IsRegular() {
		return FsObject{}, fmt.Errorf("failed to describe %s: %w", path, ErrNotRegular)
	}

	sum, err := digest(path)
	if err != nil {
		return FsObject{}, err
	}

	return FsObject{Path: path, Hash: sum}, nil
}

func digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	_, err = io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("%w of %s: %v", ErrRead, path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
