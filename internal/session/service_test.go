package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"egetutor/internal/exam"
	"egetutor/internal/llm"
	"egetutor/internal/problemgen"
	"egetutor/internal/store"
)

const singleBatch = `[
  {"question": "q1", "answer": "1"},
  {"question": "q2", "answer": "2"},
  {"question": "q3", "answer": "3"},
  {"question": "q4", "answer": "4"},
  {"question": "q5", "answer": "5"}
]`

func testService(t *testing.T, provider llm.Provider) *Service {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	cfg := problemgen.DefaultConfig()
	cfg.Timeout = time.Second
	svc := NewService(st, problemgen.New(provider, cfg, nil), nil)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())

	ok, err := svc.Register("оля", "пw")
	require.NoError(t, err)
	require.True(t, ok)

	user, err := svc.Login("оля", "пw")
	require.NoError(t, err)
	require.NotNil(t, user)

	user, err = svc.Login("оля", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user, "wrong password yields no session")
}

func TestStartSingleUsesTaskLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: singleBatch})
	svc := testService(t, mock)

	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	questions, err := svc.StartSingle(context.Background(), "оля", 5, 5, "космос")
	require.NoError(t, err)
	assert.Len(t, questions, 5)

	require.Len(t, mock.Calls, 1)
	prompt := mock.Calls[0].Prompt
	assert.Contains(t, prompt, "№5")
	assert.Contains(t, prompt, "легкого", "fresh user starts at level 1")
	assert.Contains(t, prompt, "космос")
}

func TestStartSingleRejectsBadTask(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	_, err = svc.StartSingle(context.Background(), "оля", 22, 5, "")
	assert.Error(t, err)
}

func TestRecordAttemptAdvancesLevel(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	outcome, err := svc.RecordAttempt("оля", exam.ModeSingle, 5, 10, 8)
	require.NoError(t, err)

	assert.Equal(t, 80.0, outcome.Percent)
	assert.Equal(t, 1, outcome.Level, "attempt was taken at level 1")
	assert.Equal(t, 2, outcome.NewLevel)
	assert.True(t, outcome.LeveledUp())

	// The entry snapshots the level the attempt was taken at.
	entries, err := svc.History("оля", exam.ModeSingle, 5, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Level)
	assert.Equal(t, "2026-08-29 12:00", entries[0].Datetime)
	require.NotNil(t, entries[0].TaskNumber)
	assert.Equal(t, 5, *entries[0].TaskNumber)

	// The new level is persisted and scoped to task 5 only.
	level, err := svc.Level("оля", exam.ModeSingle, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	level, err = svc.Level("оля", exam.ModeSingle, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, level, "other tasks are unaffected")

	level, err = svc.Level("оля", exam.ModeFull, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, level, "full-exam level is unaffected")
}

func TestRecordAttemptBelowThreshold(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	outcome, err := svc.RecordAttempt("оля", exam.ModeFull, 0, 21, 10)
	require.NoError(t, err)
	assert.False(t, outcome.LeveledUp())

	entries, err := svc.History("оля", exam.ModeFull, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].TaskNumber, "full-mode entries carry no task number")
}

func TestRecordAttemptZeroTotal(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	outcome, err := svc.RecordAttempt("оля", exam.ModeFull, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, outcome.Percent)
	assert.False(t, outcome.LeveledUp())
}

func TestHistoryNewestFirst(t *testing.T) {
	svc := testService(t, llm.NewMockProvider())
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	times := []time.Time{
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		svc.now = func() time.Time { return ts }
		_, err := svc.RecordAttempt("оля", exam.ModeFull, 0, 21, 10+i)
		require.NoError(t, err)
	}

	entries, err := svc.History("оля", exam.ModeFull, 0, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2, "limit trims to the most recent entries")
	assert.Equal(t, "2026-08-03 10:00", entries[0].Datetime)
	assert.Equal(t, "2026-08-02 10:00", entries[1].Datetime)
}

func TestStartFullAbortsOnPartFailure(t *testing.T) {
	part := `[{"question": "q", "answer": "a"}]`
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: part},
		llm.MockResponse{Text: "no json here"},
	)
	svc := testService(t, mock)
	_, err := svc.Register("оля", "x")
	require.NoError(t, err)

	questions, err := svc.StartFull(context.Background(), "оля", "")
	assert.Error(t, err)
	assert.Empty(t, questions)
}

func TestCorruptStoreRecoversAtSessionLevel(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(dir)
	require.NoError(t, err)
	svc := NewService(st, problemgen.New(llm.NewMockProvider(), problemgen.DefaultConfig(), nil), nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{garbage"), 0o644))

	// A corrupt user mapping reads as empty: login simply fails.
	u, err := svc.Login("маша", "секрет")
	require.NoError(t, err)
	assert.Nil(t, u)

	// Registration replaces the bad mapping and the session proceeds.
	ok, err := svc.Register("маша", "секрет")
	require.NoError(t, err)
	require.True(t, ok)
	u, err = svc.Login("маша", "секрет")
	require.NoError(t, err)
	require.NotNil(t, u)

	// A corrupt result log reads as empty history.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results_маша.json"), []byte("[broken"), 0o644))
	entries, err := svc.History("маша", exam.ModeFull, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
