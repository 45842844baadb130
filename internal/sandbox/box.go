package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Box is a scratch directory owned by one submission. Everything the
// submission compiles or writes lives inside it and is removed by Close.
type Box struct {
	path string
}

// NewBox creates a fresh box under root. An empty root means the OS
// temp directory.
func NewBox(root string) (*Box, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create work root: %w", err)
		}
	}
	path, err := os.MkdirTemp(root, "box-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	return &Box{path: path}, nil
}

func (box *Box) Path() string {
	return box.path
}

// Close removes the box with all its contents. Closing twice is a no-op.
func (box *Box) Close() error {
	if box.path == "" {
		return nil
	}
	err := os.RemoveAll(box.path)
	box.path = ""
	return err
}

// NewDir creates an empty subdirectory, e.g. a per-test working directory.
func (box *Box) NewDir(prefix string) (string, error) {
	dir, err := os.MkdirTemp(box.path, prefix+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create directory in box: %w", err)
	}
	return dir, nil
}

func (box *Box) AddFile(name string, content []byte) error {
	path := box.resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func (box *Box) HasFile(name string) bool {
	info, err := os.Stat(box.resolve(name))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func (box *Box) GetFile(name string) ([]byte, error) {
	content, err := os.ReadFile(box.resolve(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file %s not found in box", name)
	}
	return content, err
}

func (box *Box) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(box.path, name)
}
