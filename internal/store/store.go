// Package store persists the trainer's records as human-readable JSON files
// in a single data directory: the global user mapping, one result log per
// user, and a legacy default-levels record. Every mutation rewrites the
// affected file in full through a temp-file rename, so a file is either the
// old version or the new one, never a partial write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store owns the data directory and hands out record repositories.
type Store struct {
	dir string
}

// Open prepares the data directory and returns a Store. The legacy levels
// record is bootstrapped on first use.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{dir: dir}
	if err := s.bootstrapLegacyLevels(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Users returns the repository for the global user mapping.
func (s *Store) Users() *UserRepo {
	return &UserRepo{store: s}
}

// Results returns the repository for per-user result logs.
func (s *Store) Results() *ResultRepo {
	return &ResultRepo{store: s}
}

// CorruptStoreError reports a record file that exists but cannot be decoded.
// Callers recover by treating the store as empty.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt record file %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

func isCorrupt(err error) bool {
	var corrupt *CorruptStoreError
	return errors.As(err, &corrupt)
}

// readRecord loads a whole JSON record file. A missing file yields the zero
// value with no error; an undecodable file yields the zero value plus a
// *CorruptStoreError.
func readRecord[T any](path string) (T, error) {
	var zero T

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &zero); err != nil {
		var empty T
		return empty, &CorruptStoreError{Path: path, Err: err}
	}
	return zero, nil
}

// writeRecord rewrites a record file atomically. Output is indented UTF-8
// JSON with HTML escaping disabled so non-ASCII text stays readable.
func writeRecord[T any](path string, v T) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. EGETUTOR_DATA environment variable
// 2. $XDG_DATA_HOME/egetutor
// 3. ~/.local/share/egetutor
func DefaultDataDir() (string, error) {
	if d := os.Getenv("EGETUTOR_DATA"); d != "" {
		return d, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "egetutor"), nil
}
