package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/homework/core/homework"
)

type homeworkRepository struct {
	db *homeworkTable
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *DB) *homeworkRepository {
	return &homeworkRepository{db: db.homework}
}

func (repo *homeworkRepository) ListSubjects(_ context.Context) ([]string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subjects := make([]string, 0, len(repo.db.table))
	for subject := range repo.db.table {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (repo *homeworkRepository) GetRecord(_ context.Context, subject string) (homework.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rec, ok := repo.db.table[subject]; ok {
		return rec, nil
	}
	return homework.Record{}, homework.ErrNotFound
}

func (repo *homeworkRepository) UpsertRecord(_ context.Context, rec homework.Record) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[rec.Subject] = rec
	return nil
}

func (repo *homeworkRepository) DeleteRecord(_ context.Context, subject string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.table, subject)
	return nil
}
