// Package project discovers the workspace root and resolves the RFC
// directory used by every command.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFileName is the optional workspace configuration file.
	ConfigFileName = "agx.toml"

	// DefaultRFCDir is the documents directory under the workspace root.
	DefaultRFCDir = "rfc"
)

// Config is the workspace configuration loaded from agx.toml.
type Config struct {
	// RFCDir overrides the documents directory, relative to the root.
	RFCDir string `toml:"rfc_dir"`
}

// FindRoot walks ancestors from startDir looking for an agx.toml or a .git
// directory. When neither exists, startDir itself is the root.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for current := dir; ; {
		if _, err := os.Stat(filepath.Join(current, ConfigFileName)); err == nil {
			return current, nil
		}
		if info, err := os.Stat(filepath.Join(current, ".git")); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// LoadConfig reads agx.toml from the root. A missing file yields the zero
// config.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// RFCDir resolves the documents directory for the workspace containing
// startDir.
func RFCDir(startDir string) (string, error) {
	root, err := FindRoot(startDir)
	if err != nil {
		return "", err
	}
	return RFCDirAt(root)
}

// RFCDirAt resolves the documents directory for an already-known root.
func RFCDirAt(root string) (string, error) {
	cfg, err := LoadConfig(root)
	if err != nil {
		return "", err
	}

	dir := cfg.RFCDir
	if dir == "" {
		dir = DefaultRFCDir
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("rfc_dir must be relative to the workspace root: %s", dir)
	}
	return filepath.Join(root, dir), nil
}
