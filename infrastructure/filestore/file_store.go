// Package filestore provides file-based access to a directory of model documents.
package filestore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	extensions []string    // File extensions picked up by List
	dirPerm    os.FileMode // Permission for created directories
	filePerm   os.FileMode // Permission for created files
	recursive  bool        // Descend into subdirectories
	exclude    map[string]struct{}
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		extensions: []string{".json"},
		dirPerm:    0o755,
		filePerm:   0o644, // Model files and manifests are committed to source control
		recursive:  true,
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithExtensions restricts List to files with one of the given extensions.
// Matching is case-insensitive.
func WithExtensions(exts ...string) FileStoreOption {
	return func(c *fileStoreConfig) {
		if len(exts) > 0 {
			c.extensions = exts
		}
	}
}

// WithRecursive controls whether List descends into subdirectories.
// Default is true.
func WithRecursive(enabled bool) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.recursive = enabled
	}
}

// WithExclude keeps the given files out of List, typically the manifest
// when it is written inside the models directory.
func WithExclude(paths ...string) FileStoreOption {
	return func(c *fileStoreConfig) {
		if c.exclude == nil {
			c.exclude = make(map[string]struct{}, len(paths))
		}
		for _, path := range paths {
			if path == "" {
				continue
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			c.exclude[filepath.Clean(path)] = struct{}{}
		}
	}
}

// WithFilePermissions sets the permissions of files created by Write.
// Default is 0o644. Existing files keep their permissions.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// WithDirPermissions sets the permissions of directories created by Write.
// Default is 0o755.
func WithDirPermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.dirPerm = perm
	}
}

// FileStore reads and writes model documents below a root directory.
type FileStore struct {
	root   string
	config fileStoreConfig
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve models directory %s: %w", dir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open models directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("models path %s is not a directory", root)
	}

	return &FileStore{root: root, config: cfg}, nil
}

// List returns the absolute paths of the model documents in lexical order.
// Hidden files and directories are skipped. Symbolic links to regular files
// are listed under the link's path; a dangling link is an error.
func (s *FileStore) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == s.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !s.config.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.matches(d.Name()) {
			return nil
		}
		if _, excluded := s.config.exclude[path]; excluded {
			return nil
		}
		if !d.Type().IsRegular() {
			regular, err := isLinkToFile(path, d)
			if err != nil || !regular {
				return err
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list models directory: %w", err)
	}
	return paths, nil
}

func isLinkToFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve link %s: %w", filepath.Base(path), err)
	}
	return info.Mode().IsRegular(), nil
}

func (s *FileStore) matches(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range s.config.extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Read returns the content of the file at path.
func (s *FileStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model document: %w", err)
	}
	return data, nil
}

// Write replaces the content of the file at path.
func (s *FileStore) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Root returns the absolute path of the models directory.
func (s *FileStore) Root() string {
	return s.root
}
