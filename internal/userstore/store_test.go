package userstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/news-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.UserStoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("alice", "alice@example.org"))
	err := s.Register("alice", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestNewAccountGetsDefaultPreferences(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", ""))

	prefs, err := s.Preferences("alice")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
}

func TestUpdatePreferences(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", ""))

	want := Preferences{
		DefaultCountry:  "jp",
		DefaultCategory: "technology",
		DefaultLanguage: "ja",
		SummaryStyle:    "formal",
	}
	require.NoError(t, s.UpdatePreferences("alice", want))

	got, err := s.Preferences("alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPreferencesUnknownUser(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Preferences("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, s.UpdatePreferences("nobody", DefaultPreferences()), ErrUserNotFound)
}

func TestActivityCounters(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", ""))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordSummary("alice"))
	}
	require.NoError(t, s.RecordFactCheck("alice"))

	stats, err := s.Stats("alice")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.SummariesGenerated)
	assert.Equal(t, 1, stats.FactChecksPerformed)
	assert.False(t, stats.MemberSince.IsZero())
}

func TestCounterIncrementsAreAtomic(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", ""))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// SQLite serializes writers; a busy database surfaces as an
			// error, so retry until the increment lands.
			for {
				if err := s.RecordSummary("alice"); err == nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	stats, err := s.Stats("alice")
	require.NoError(t, err)
	assert.Equal(t, n, stats.SummariesGenerated)
}

func TestRecordForUnknownUser(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.RecordSummary("nobody"), ErrUserNotFound)
	assert.ErrorIs(t, s.RecordFactCheck("nobody"), ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", ""))
	require.NoError(t, s.Delete("alice"))

	_, err := s.Preferences("alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, s.Delete("alice"), ErrUserNotFound)
}

func TestUsernames(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("carol", ""))
	require.NoError(t, s.Register("alice", ""))
	require.NoError(t, s.Register("bob", ""))

	names, err := s.Usernames()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

func TestStoreReopenPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.UserStoreConfig{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Register("alice", ""))
	require.NoError(t, s.RecordSummary("alice"))
	require.NoError(t, s.Close())

	s, err = NewStore(types.UserStoreConfig{DataDir: dir})
	require.NoError(t, err)
	defer s.Close()

	stats, err := s.Stats("alice")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SummariesGenerated)
}
