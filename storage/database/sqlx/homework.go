package sqlxrepos

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
)

const dateLayout = "2006-01-02"

// homeworkRow maps the `homework` table.
type homeworkRow struct {
	ID      int64       `db:"id"`
	Subject string      `db:"subject"`
	DueDate nullDate    `db:"due_date"`
	Details null.String `db:"details"`
}

// nullDate is a nullable DATE column.
// Drivers hand DATE values back either as time.Time (lib/pq) or as text (sqlite).
type nullDate struct {
	null.Time
}

func (d *nullDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case time.Time:
		d.Time = homework.DateFrom(v)
		return nil
	}
	return d.Time.Scan(value)
}

func (d *nullDate) scanText(s string) error {
	if len(s) < len(dateLayout) {
		return errors.Errorf("scanning due_date: unexpected value %q", s)
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return errors.Wrapf(err, "scanning due_date %q", s)
	}
	d.Time = null.TimeFrom(t)
	return nil
}

func (d nullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time.Time.Format(dateLayout), nil
}

type homeworkRepository struct {
	db core.DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db core.DB) *homeworkRepository {
	return &homeworkRepository{db: db}
}

func (repo homeworkRepository) boil(rec homework.Record) homeworkRow {
	return homeworkRow{
		Subject: rec.Subject,
		DueDate: nullDate{rec.DueDate},
		Details: null.StringFrom(rec.Details),
	}
}

func (repo homeworkRepository) unboil(row homeworkRow) homework.Record {
	return homework.Record{
		Subject: row.Subject,
		DueDate: row.DueDate.Time,
		Details: row.Details.String,
	}
}

// trapNoRowsErr maps sql "no rows" err to homework.ErrNotFound
func (repo homeworkRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return homework.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo homeworkRepository) ListSubjects(ctx context.Context) ([]string, error) {
	subjects := make([]string, 0)
	if err := repo.db.SelectContext(ctx, &subjects, "SELECT subject FROM homework"); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	// byte order, whatever the database collation
	sort.Strings(subjects)
	return subjects, nil
}

func (repo homeworkRepository) GetRecord(ctx context.Context, subject string) (homework.Record, error) {
	row, err := repo.get(ctx, repo.db, subject)
	if err != nil {
		return homework.Record{}, repo.trapNoRowsErr(err, "finding homework")
	}
	return repo.unboil(row), nil
}

// UpsertRecord looks the subject up first and then updates in place or inserts,
// within one transaction. A concurrent insert of the same new subject loses on
// the unique constraint and is returned as an error.
func (repo homeworkRepository) UpsertRecord(ctx context.Context, rec homework.Record) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}

	return finish(tx, repo.upsert(ctx, tx, rec))
}

// finish commits tx, or rolls it back if err is set.
func finish(tx core.DBTransactor, err error) error {
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rolling back: %v", rbErr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing homework")
}

func (repo homeworkRepository) upsert(ctx context.Context, exec core.DBExecutor, rec homework.Record) error {
	existing, err := repo.get(ctx, exec, rec.Subject)
	switch {
	case err == sql.ErrNoRows:
		return repo.insert(ctx, exec, rec)
	case err != nil:
		return errors.Wrap(err, "finding homework")
	}

	row := repo.boil(rec)
	row.ID = existing.ID
	q := exec.Rebind("UPDATE homework SET due_date = ?, details = ? WHERE id = ?")
	if _, err = exec.ExecContext(ctx, q, row.DueDate, row.Details, row.ID); err != nil {
		return errors.Wrap(err, "updating homework")
	}
	return nil
}

// insert is a blind insert: it fails on the unique constraint if the subject exists.
func (repo homeworkRepository) insert(ctx context.Context, exec core.DBExecutor, rec homework.Record) error {
	row := repo.boil(rec)
	q := exec.Rebind("INSERT INTO homework (subject, due_date, details) VALUES (?, ?, ?)")
	if _, err := exec.ExecContext(ctx, q, row.Subject, row.DueDate, row.Details); err != nil {
		return errors.Wrap(err, "inserting homework")
	}
	return nil
}

func (repo homeworkRepository) get(ctx context.Context, exec core.DBExecutor, subject string) (homeworkRow, error) {
	var row homeworkRow
	q := exec.Rebind("SELECT id, subject, due_date, details FROM homework WHERE subject = ?")
	err := exec.GetContext(ctx, &row, q, subject)
	return row, err
}

func (repo homeworkRepository) DeleteRecord(ctx context.Context, subject string) error {
	q := repo.db.Rebind("DELETE FROM homework WHERE subject = ?")
	if _, err := repo.db.ExecContext(ctx, q, subject); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return nil
}
