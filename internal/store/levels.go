package store

import (
	"os"
	"path/filepath"

	"egetutor/internal/progression"
)

const legacyLevelsFile = "ege_levels.json"

// bootstrapLegacyLevels writes the standalone default-levels record if it is
// missing. Earlier versions of the trainer tracked a single global level
// here before levels moved into the per-user records; nothing reads it back,
// but the file is kept for behavioral parity with existing data directories.
func (s *Store) bootstrapLegacyLevels() error {
	path := filepath.Join(s.dir, legacyLevelsFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	return writeRecord(path, Levels{
		Full:  progression.MinLevel,
		Tasks: map[string]int{},
	})
}
