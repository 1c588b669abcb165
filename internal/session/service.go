// Package session orchestrates one user's practice flow: authentication,
// question generation, grading, result recording and level advancement. All
// state lives in the injected store; the service itself holds no per-user
// globals, so isolated instances can coexist in tests.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"egetutor/internal/exam"
	"egetutor/internal/problemgen"
	"egetutor/internal/progression"
	"egetutor/internal/store"
)

// Service ties the stores and the generator together behind the operations
// a presentation layer needs.
type Service struct {
	users   *store.UserRepo
	results *store.ResultRepo
	gen     *problemgen.Generator
	log     *zap.Logger

	now func() time.Time
}

// NewService creates a Service over the given store and generator.
func NewService(st *store.Store, gen *problemgen.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:   st.Users(),
		results: st.Results(),
		gen:     gen,
		log:     log,
		now:     time.Now,
	}
}

// Register creates a new user. Returns false when the username is taken.
func (s *Service) Register(username, password string) (bool, error) {
	return s.users.Register(username, password)
}

// Login authenticates a user. A nil user means no such session; whether the
// username or the password was wrong is deliberately not revealed. A corrupt
// user mapping is reported as a plain authentication failure, so the session
// can continue as if the store were empty.
func (s *Service) Login(username, password string) (*store.User, error) {
	u, err := s.users.Authenticate(username, password)
	if err != nil {
		if err := s.recoverCorrupt(err); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return u, nil
}

// recoverCorrupt downgrades a corrupt-record error to a warning. The repos
// already returned empty data for the bad file, so the session keeps working
// against an empty store.
func (s *Service) recoverCorrupt(err error) error {
	var corrupt *store.CorruptStoreError
	if errors.As(err, &corrupt) {
		s.log.Warn("corrupt record file, treating store as empty",
			zap.String("path", corrupt.Path),
			zap.Error(corrupt.Err),
		)
		return nil
	}
	return err
}

// Level returns username's current level for the given scope.
func (s *Service) Level(username string, mode exam.Mode, taskNumber int) (int, error) {
	u, err := s.users.Get(username)
	if err != nil {
		return progression.MinLevel, err
	}
	if u == nil {
		return progression.MinLevel, fmt.Errorf("unknown user %q", username)
	}
	return store.GetLevel(u, mode, taskNumber), nil
}

// StartSingle generates count variants of one task category at the user's
// current level for that task.
func (s *Service) StartSingle(ctx context.Context, username string, taskNumber, count int, theme string) ([]exam.Question, error) {
	if !exam.ValidTask(taskNumber) {
		return nil, fmt.Errorf("invalid task number %d", taskNumber)
	}
	level, err := s.Level(username, exam.ModeSingle, taskNumber)
	if err != nil {
		return nil, err
	}

	prompt := exam.BuildPrompt(exam.ModeSingle, taskNumber, count, theme, level)
	return s.gen.Generate(ctx, prompt)
}

// StartFull generates a full simulated exam at the user's full-exam level.
func (s *Service) StartFull(ctx context.Context, username, theme string) ([]exam.Question, error) {
	level, err := s.Level(username, exam.ModeFull, 0)
	if err != nil {
		return nil, err
	}
	return s.gen.GenerateFullExam(ctx, theme, level)
}

// Outcome summarizes a recorded attempt.
type Outcome struct {
	Correct  int
	Total    int
	Percent  float64
	Level    int // level the attempt was taken at
	NewLevel int // level after advancement
}

// LeveledUp reports whether the attempt raised the level.
func (o *Outcome) LeveledUp() bool {
	return o.NewLevel > o.Level
}

// RecordAttempt persists a completed attempt: the result entry is appended
// with the level the attempt was taken at, then the relevant level scope is
// advanced and persisted. taskNumber is ignored for full mode.
func (s *Service) RecordAttempt(username string, mode exam.Mode, taskNumber, total, correct int) (*Outcome, error) {
	u, err := s.users.Get(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("unknown user %q", username)
	}

	level := store.GetLevel(u, mode, taskNumber)

	entry := store.ResultEntry{
		Datetime: s.now().Format(store.DatetimeLayout),
		Mode:     mode,
		Total:    total,
		Correct:  correct,
		Percent:  progression.Percent(correct, total),
		Level:    level,
	}
	if mode == exam.ModeSingle {
		tn := taskNumber
		entry.TaskNumber = &tn
	}

	if err := s.results.Append(username, entry); err != nil {
		return nil, err
	}

	newLevel := progression.Advance(level, correct, total)
	if newLevel != level {
		if err := s.users.SetLevel(username, mode, taskNumber, newLevel); err != nil {
			return nil, err
		}
		s.log.Info("level advanced",
			zap.String("user", username),
			zap.String("mode", string(mode)),
			zap.Int("task", taskNumber),
			zap.Int("from", level),
			zap.Int("to", newLevel),
		)
	}

	return &Outcome{
		Correct:  correct,
		Total:    total,
		Percent:  entry.Percent,
		Level:    level,
		NewLevel: newLevel,
	}, nil
}

// History returns up to limit attempts matching the scope, newest first.
// limit <= 0 means no limit. A corrupt result log reads as empty.
func (s *Service) History(username string, mode exam.Mode, taskNumber, limit int) ([]store.ResultEntry, error) {
	entries, err := s.results.QueryByMode(username, mode, taskNumber)
	if err != nil {
		if err := s.recoverCorrupt(err); err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	// Stored order is oldest first; display wants recency.
	out := make([]store.ResultEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}
