package inmemdb

import (
	"sync"

	"github.com/trezcool/homework/core/homework"
)

type (
	DB struct {
		homework *homeworkTable
	}

	homeworkTable struct {
		mutex sync.RWMutex
		table map[string]homework.Record // {subject: Record}
	}
)

func Open() *DB {
	return &DB{
		homework: &homeworkTable{table: make(map[string]homework.Record)},
	}
}
