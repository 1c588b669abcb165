package store

import (
	"fmt"
	"path/filepath"

	"egetutor/internal/exam"
	"egetutor/internal/progression"
)

const usersFile = "users.json"

// Levels holds a user's difficulty state: one level for the full-exam mode
// and one per task category. A task absent from Tasks is at level 1.
// Task numbers are stored as string keys to match the on-disk format.
type Levels struct {
	Full  int            `json:"full"`
	Tasks map[string]int `json:"tasks"`
}

// User is one record in the global user mapping.
//
// Password is stored in plaintext. This mirrors the established record
// format; hashing it would break compatibility and is a documented
// limitation of the system, not something this layer fixes silently.
type User struct {
	Password string `json:"password"`
	Levels   Levels `json:"levels"`

	// Results exists for record-format parity. The authoritative attempt
	// history lives in the per-user result log, not here.
	Results []ResultEntry `json:"results"`
}

// Users is the global mapping keyed by username.
type Users map[string]*User

// UserRepo manages the user mapping file. Every operation loads the whole
// mapping and, on mutation, rewrites it in full.
type UserRepo struct {
	store *Store
}

func (r *UserRepo) path() string {
	return filepath.Join(r.store.dir, usersFile)
}

// load reads the full user mapping. A corrupt file comes back as an empty
// mapping together with the *CorruptStoreError, so callers can both report
// the problem and keep working.
func (r *UserRepo) load() (Users, error) {
	users, err := readRecord[Users](r.path())
	if users == nil {
		users = Users{}
	}
	return users, err
}

func (r *UserRepo) save(users Users) error {
	return writeRecord(r.path(), users)
}

// Register creates a new user with default levels and an empty history.
// Returns false with no error when the username is already taken. A corrupt
// mapping does not block registration: the rewrite replaces the bad file
// with a fresh mapping.
func (r *UserRepo) Register(username, password string) (bool, error) {
	users, err := r.load()
	if err != nil && !isCorrupt(err) {
		return false, err
	}
	if _, exists := users[username]; exists {
		return false, nil
	}

	users[username] = &User{
		Password: password,
		Levels: Levels{
			Full:  progression.MinLevel,
			Tasks: map[string]int{},
		},
		Results: []ResultEntry{},
	}
	if err := r.save(users); err != nil {
		return false, fmt.Errorf("persist users: %w", err)
	}
	return true, nil
}

// Authenticate returns the user record iff the username exists and the
// password matches exactly. Unknown user and wrong password are both
// reported as a nil user, deliberately indistinguishable.
func (r *UserRepo) Authenticate(username, password string) (*User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	u, ok := users[username]
	if !ok || u.Password != password {
		return nil, nil
	}
	return u, nil
}

// Get returns the current record for username, or nil if absent.
func (r *UserRepo) Get(username string) (*User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	return users[username], nil
}

// GetLevel returns the user's level for the given scope: the full-exam level
// for ModeFull, otherwise the task-specific level, defaulting to 1.
func GetLevel(u *User, mode exam.Mode, taskNumber int) int {
	if mode == exam.ModeFull {
		return progression.Clamp(u.Levels.Full)
	}
	if lvl, ok := u.Levels.Tasks[taskKey(taskNumber)]; ok {
		return progression.Clamp(lvl)
	}
	return progression.MinLevel
}

// SetLevel updates one level scope for username and rewrites the user
// mapping. The level is clamped to the valid range.
func (r *UserRepo) SetLevel(username string, mode exam.Mode, taskNumber, level int) error {
	users, err := r.load()
	if err != nil {
		return err
	}
	u, ok := users[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}

	level = progression.Clamp(level)
	if mode == exam.ModeFull {
		u.Levels.Full = level
	} else {
		if u.Levels.Tasks == nil {
			u.Levels.Tasks = map[string]int{}
		}
		u.Levels.Tasks[taskKey(taskNumber)] = level
	}

	if err := r.save(users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

func taskKey(taskNumber int) string {
	return fmt.Sprintf("%d", taskNumber)
}
