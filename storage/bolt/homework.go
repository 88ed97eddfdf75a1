// Package boltstore keeps homework records in a single bbolt file, keyed by subject.
package boltstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/homework/core/homework"
)

var bucket = []byte("Homework")

// entry is the JSON value stored under each subject key.
type entry struct {
	DueDate string `json:"due_date"`
	Details string `json:"details"`
}

// Open opens (or creates) the bbolt file at path.
func Open(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating bolt dir")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening bolt file %s", path)
	}
	return db, nil
}

type homeworkRepository struct {
	db *bbolt.DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *bbolt.DB) (*homeworkRepository, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating homework bucket")
	}
	return &homeworkRepository{db: db}, nil
}

// ListSubjects relies on bbolt keeping keys in byte order.
func (repo homeworkRepository) ListSubjects(_ context.Context) ([]string, error) {
	subjects := make([]string, 0)
	err := repo.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
			subjects = append(subjects, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing subjects")
	}
	return subjects, nil
}

func (repo homeworkRepository) GetRecord(_ context.Context, subject string) (homework.Record, error) {
	var e entry
	err := repo.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(subject))
		if v == nil {
			return homework.ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	if err != nil {
		if err == homework.ErrNotFound {
			return homework.Record{}, err
		}
		return homework.Record{}, errors.Wrap(err, "getting homework")
	}

	return homework.Record{Subject: subject, DueDate: homework.ParseDate(e.DueDate), Details: e.Details}, nil
}

func (repo homeworkRepository) UpsertRecord(_ context.Context, rec homework.Record) error {
	data, err := json.Marshal(entry{DueDate: rec.DueDateString(), Details: rec.Details})
	if err != nil {
		return errors.Wrap(err, "encoding homework")
	}
	err = repo.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(rec.Subject), data)
	})
	return errors.Wrap(err, "saving homework")
}

func (repo homeworkRepository) DeleteRecord(_ context.Context, subject string) error {
	err := repo.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(subject))
	})
	return errors.Wrap(err, "deleting homework")
}
