package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	"github.com/trezcool/homework/tests"
)

func newRepo(t *testing.T) *homeworkRepository {
	repo, err := NewHomeworkRepository(filepath.Join(t.TempDir(), "homework"))
	require.NoError(t, err)
	return repo
}

func TestHomeworkRepository(t *testing.T) {
	testutil.RunRepositoryTests(t, func(t *testing.T) homework.Repository {
		return newRepo(t)
	})
}

func TestHomeworkRepository_fileFormat(t *testing.T) {
	repo := newRepo(t)
	testutil.CreateRecord(t, repo, "Math", testutil.Date(2024, time.May, 1), "Chapter 4")
	testutil.CreateRecord(t, repo, "History", null.Time{}, "")

	data, err := os.ReadFile(filepath.Join(repo.dir, "Math.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Due Date: 2024-05-01\nDetails: Chapter 4", string(data))

	data, err = os.ReadFile(filepath.Join(repo.dir, "History.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Due Date: \nDetails: ", string(data))
}

func TestHomeworkRepository_ignoresOtherFiles(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	testutil.CreateRecord(t, repo, "Math", null.Time{}, "")
	require.NoError(t, os.WriteFile(filepath.Join(repo.dir, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(repo.dir, "archive.txt"), 0o755))

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math"}, subjects)
}

func TestHomeworkRepository_handWrittenFiles(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	write := func(subject, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(repo.dir, subject+".txt"), []byte(content), 0o644))
	}
	write("Legacy", "Due Date: 01/05/2024\nDetails: Chapter 4\n")
	write("Windows", "Due Date: 2024-05-01\r\nDetails: Chapter 4\r\n")
	write("Short", "Due Date: 2024-05-01")
	write("Empty", "")
	write("Garbage", "Due Date: someday\nDetails: Chapter 4\nmore lines")

	tests := []struct {
		subject string
		want    homework.Record
	}{
		{subject: "Legacy", want: homework.Record{Subject: "Legacy", DueDate: testutil.Date(2024, time.May, 1), Details: "Chapter 4"}},
		{subject: "Windows", want: homework.Record{Subject: "Windows", DueDate: testutil.Date(2024, time.May, 1), Details: "Chapter 4"}},
		{subject: "Short", want: homework.Record{Subject: "Short", DueDate: testutil.Date(2024, time.May, 1)}},
		{subject: "Empty", want: homework.Record{Subject: "Empty"}},
		{subject: "Garbage", want: homework.Record{Subject: "Garbage", Details: "Chapter 4"}},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			got, err := repo.GetRecord(ctx, tt.subject)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHomeworkRepository_multilineDetails(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	testutil.CreateRecord(t, repo, "Math", null.Time{}, "line one\nline two")

	got, err := repo.GetRecord(ctx, "Math")
	require.NoError(t, err)
	assert.Equal(t, "line one", got.Details)
}

func TestHomeworkRepository_subjectsStayInsideDir(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	for _, subject := range []string{"../escaped", "CS/Math", `CS\Math`, ".", ".."} {
		t.Run(subject, func(t *testing.T) {
			err := repo.UpsertRecord(ctx, homework.Record{Subject: subject, Details: "x"})
			if assert.Error(t, err) {
				assert.True(t, core.IsValidationError(err), "got %v", err)
			}

			_, err = repo.GetRecord(ctx, subject)
			assert.Equal(t, homework.ErrNotFound, err)
			assert.NoError(t, repo.DeleteRecord(ctx, subject))
		})
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(repo.dir), "escaped.txt"))
	assert.True(t, os.IsNotExist(err), "nothing written outside the store dir")

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	testutil.CreateRecord(t, repo, "..Math..", null.Time{}, "dots are fine")
	subjects, err = repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"..Math.."}, subjects)
}
