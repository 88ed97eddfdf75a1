// Package filestore keeps each homework record in its own text file, named after the subject.
//
// A record file holds exactly two lines:
//
//	Due Date: 2024-05-01
//	Details: Chapter 4
//
// Nothing is escaped: details containing a newline are cut at the first line
// break when read back, and a subject must be usable as a plain file name
// inside the store directory (no path separator, not "." or "..").
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
)

const (
	ext           = ".txt"
	dueDatePrefix = "Due Date: "
	detailsPrefix = "Details: "
	dirPerms      = 0o755
)

type homeworkRepository struct {
	dir string
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

// NewHomeworkRepository stores records under dir, creating it if needed.
func NewHomeworkRepository(dir string) (*homeworkRepository, error) {
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, errors.Wrapf(err, "creating homework dir %s", dir)
	}
	return &homeworkRepository{dir: dir}, nil
}

func (repo homeworkRepository) path(subject string) string {
	return filepath.Join(repo.dir, subject+ext)
}

// checkSubject rejects subjects that would resolve outside the store directory.
func checkSubject(subject string) error {
	if subject == "" || subject == "." || subject == ".." ||
		strings.ContainsAny(subject, `/\`) || filepath.Base(subject) != subject {
		return core.NewValidationError(errors.Errorf("subject %q cannot be used as a file name", subject))
	}
	return nil
}

func (repo homeworkRepository) ListSubjects(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(repo.dir)
	if err != nil {
		return nil, errors.Wrap(err, "listing homework dir")
	}

	subjects := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext {
			continue
		}
		subjects = append(subjects, strings.TrimSuffix(name, ext))
	}
	// os.ReadDir sorts by filename, which is not subject order ("a.b.txt" < "a.txt")
	sort.Strings(subjects)
	return subjects, nil
}

func (repo homeworkRepository) GetRecord(_ context.Context, subject string) (homework.Record, error) {
	if checkSubject(subject) != nil {
		// never stored
		return homework.Record{}, homework.ErrNotFound
	}
	data, err := os.ReadFile(repo.path(subject))
	if err != nil {
		if os.IsNotExist(err) {
			return homework.Record{}, homework.ErrNotFound
		}
		return homework.Record{}, errors.Wrap(err, "reading homework file")
	}
	return decode(subject, data), nil
}

func (repo homeworkRepository) UpsertRecord(_ context.Context, rec homework.Record) error {
	if err := checkSubject(rec.Subject); err != nil {
		return errors.Wrap(err, "writing homework file")
	}
	if err := atomic.WriteFile(repo.path(rec.Subject), strings.NewReader(encode(rec))); err != nil {
		return errors.Wrap(err, "writing homework file")
	}
	return nil
}

func (repo homeworkRepository) DeleteRecord(_ context.Context, subject string) error {
	if checkSubject(subject) != nil {
		return nil
	}
	if err := os.Remove(repo.path(subject)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing homework file")
	}
	return nil
}

func encode(rec homework.Record) string {
	return dueDatePrefix + rec.DueDateString() + "\n" + detailsPrefix + rec.Details
}

// decode reads the first two lines; missing lines leave their field empty.
func decode(subject string, data []byte) homework.Record {
	rec := homework.Record{Subject: subject}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 {
		due := strings.TrimPrefix(strings.TrimSuffix(lines[0], "\r"), dueDatePrefix)
		rec.DueDate = homework.ParseDate(due)
	}
	if len(lines) > 1 {
		rec.Details = strings.TrimPrefix(strings.TrimSuffix(lines[1], "\r"), detailsPrefix)
	}
	return rec
}
