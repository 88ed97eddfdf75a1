package homework

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/homework/core"
)

// errors
var ErrNotFound = errors.New("homework not found")

type (
	// Repository persists homework records, one per subject.
	// Implementations do not validate subjects; callers pass non-blank, trimmed keys.
	Repository interface {
		// ListSubjects returns every stored subject, sorted.
		ListSubjects(ctx context.Context) ([]string, error)
		// GetRecord returns ErrNotFound for an unknown subject.
		GetRecord(ctx context.Context, subject string) (Record, error)
		// UpsertRecord creates the record or overwrites both its due date and details.
		UpsertRecord(ctx context.Context, rec Record) error
		// DeleteRecord is a no-op for an unknown subject.
		DeleteRecord(ctx context.Context, subject string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) ListSubjects(ctx context.Context) ([]string, error) {
	subjects, err := svc.repo.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	if !sort.StringsAreSorted(subjects) {
		sort.Strings(subjects)
	}
	return subjects, nil
}

// Read returns the subject's record; an unknown subject reads as an empty record.
func (svc *Service) Read(ctx context.Context, subject string) (Record, error) {
	subject = core.CleanString(subject)
	rec, err := svc.repo.GetRecord(ctx, subject)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Record{Subject: subject}, nil
		}
		return Record{}, err
	}
	return rec, nil
}

// Get is Read without the absence fallback: an unknown subject is ErrNotFound.
func (svc *Service) Get(ctx context.Context, subject string) (Record, error) {
	return svc.repo.GetRecord(ctx, core.CleanString(subject))
}

func (svc *Service) Upsert(ctx context.Context, rec Record) error {
	rec.Subject = core.CleanString(rec.Subject)
	return svc.repo.UpsertRecord(ctx, rec)
}

func (svc *Service) Delete(ctx context.Context, subject string) error {
	return svc.repo.DeleteRecord(ctx, core.CleanString(subject))
}
