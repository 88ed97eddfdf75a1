// Package storage opens the homework.Repository selected by configuration.
package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/homework/core"
	"github.com/trezcool/homework/core/homework"
	boltstore "github.com/trezcool/homework/storage/bolt"
	"github.com/trezcool/homework/storage/database"
	inmemdb "github.com/trezcool/homework/storage/database/inmem"
	sqlxrepos "github.com/trezcool/homework/storage/database/sqlx"
	filestore "github.com/trezcool/homework/storage/files"
)

// Store is an open homework.Repository along with whatever it holds open.
type Store struct {
	homework.Repository
	Backend string
	close   func() error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open opens the configured backend. The sql backend is migrated up first.
func Open(conf *core.Config, dbLogger core.Logger) (*Store, error) {
	backend := conf.Store.Backend
	if backend == "" {
		backend = core.StoreSQL
	}

	switch backend {
	case core.StoreSQL:
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db, dbLogger); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{Repository: sqlxrepos.NewHomeworkRepository(db), Backend: backend, close: db.Close}, nil

	case core.StoreFiles:
		repo, err := filestore.NewHomeworkRepository(conf.Store.HomeworkDir)
		if err != nil {
			return nil, err
		}
		return &Store{Repository: repo, Backend: backend}, nil

	case core.StoreBolt:
		db, err := boltstore.Open(conf.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		repo, err := boltstore.NewHomeworkRepository(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{Repository: repo, Backend: backend, close: db.Close}, nil

	case core.StoreMemory:
		return &Store{Repository: inmemdb.NewHomeworkRepository(inmemdb.Open()), Backend: backend}, nil

	default:
		return nil, errors.Errorf("unknown store backend %q", backend)
	}
}
