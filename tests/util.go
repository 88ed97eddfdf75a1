// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	"github.com/trezcool/homework/storage/database"
	logsvc "github.com/trezcool/homework/services/logger"
)

// NewConfig returns a TEST config whose store paths all live in a temporary directory.
func NewConfig(t *testing.T, backend string) *core.Config {
	t.Helper()
	dir := t.TempDir()
	return &core.Config{
		AppName:  "homework",
		Env:      "TEST",
		TestMode: true,
		Server: core.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ShutdownTimeout: time.Second,
		},
		Store: core.StoreConfig{
			Backend:     backend,
			DatabaseURL: filepath.Join(dir, "homework.db"),
			HomeworkDir: filepath.Join(dir, "homework"),
			BoltPath:    filepath.Join(dir, "homework.bolt"),
		},
	}
}

// OpenDB opens a migrated sqlite database in a temporary directory.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSource(database.Source{
		Dialect: database.SQLite,
		DSN:     "file:" + filepath.Join(t.TempDir(), "homework.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db, logsvc.Discard()))
	return db
}

// Date returns the given day as a present due date.
func Date(year int, month time.Month, day int) null.Time {
	return null.TimeFrom(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// AssertSameDate checks that both due dates are absent, or both present on the same day.
func AssertSameDate(t *testing.T, want, got null.Time) {
	t.Helper()
	if assert.Equal(t, want.Valid, got.Valid, "due date presence") && want.Valid {
		assert.True(t, want.Time.Equal(got.Time), "due date = %v, want %v", got.Time, want.Time)
	}
}

func CreateRecord(t *testing.T, repo homework.Repository, subject string, due null.Time, details string) homework.Record {
	t.Helper()
	rec := homework.Record{Subject: subject, DueDate: due, Details: details}
	if err := repo.UpsertRecord(context.Background(), rec); err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}

// RunRepositoryTests checks the behaviour every homework.Repository shares.
// newRepo must return an empty repository.
func RunRepositoryTests(t *testing.T, newRepo func(t *testing.T) homework.Repository) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		repo := newRepo(t)

		subjects, err := repo.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, subjects)

		_, err = repo.GetRecord(ctx, "Math")
		assert.Equal(t, homework.ErrNotFound, errors.Cause(err))
	})

	t.Run("upsert then get", func(t *testing.T) {
		repo := newRepo(t)
		want := CreateRecord(t, repo, "Math", Date(2024, time.May, 1), "Chapter 4")

		got, err := repo.GetRecord(ctx, "Math")
		require.NoError(t, err)
		assert.Equal(t, want.Subject, got.Subject)
		AssertSameDate(t, want.DueDate, got.DueDate)
		assert.Equal(t, want.Details, got.Details)
	})

	t.Run("no due date", func(t *testing.T) {
		repo := newRepo(t)
		CreateRecord(t, repo, "History", null.Time{}, "")

		got, err := repo.GetRecord(ctx, "History")
		require.NoError(t, err)
		assert.False(t, got.HasDueDate())
		assert.Empty(t, got.Details)
	})

	t.Run("earliest date", func(t *testing.T) {
		repo := newRepo(t)
		CreateRecord(t, repo, "History", Date(1, time.January, 1), "")

		got, err := repo.GetRecord(ctx, "History")
		require.NoError(t, err)
		assert.True(t, got.HasDueDate())
		assert.Equal(t, "0001-01-01", got.DueDateString())
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		repo := newRepo(t)
		CreateRecord(t, repo, "Math", Date(2024, time.May, 1), "Chapter 4")
		CreateRecord(t, repo, "Math", null.Time{}, "Chapter 5")

		got, err := repo.GetRecord(ctx, "Math")
		require.NoError(t, err)
		assert.False(t, got.HasDueDate())
		assert.Equal(t, "Chapter 5", got.Details)

		subjects, err := repo.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Math"}, subjects)
	})

	t.Run("subjects in byte order", func(t *testing.T) {
		repo := newRepo(t)
		for _, s := range []string{"math", "Zoology", "Histoire Géo", "Art", "biology"} {
			CreateRecord(t, repo, s, null.Time{}, "")
		}

		subjects, err := repo.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Art", "Histoire Géo", "Zoology", "biology", "math"}, subjects)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		CreateRecord(t, repo, "Math", Date(2024, time.May, 1), "Chapter 4")
		CreateRecord(t, repo, "Physics", null.Time{}, "lab report")

		require.NoError(t, repo.DeleteRecord(ctx, "Math"))
		_, err := repo.GetRecord(ctx, "Math")
		assert.Equal(t, homework.ErrNotFound, errors.Cause(err))

		subjects, err := repo.ListSubjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Physics"}, subjects)
	})

	t.Run("delete unknown subject", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.DeleteRecord(ctx, "Nope"))
	})
}
