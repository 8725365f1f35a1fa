package inmemdb

import (
	"sync"

	"github.com/trezcool/masomo-surveys/core/survey"
)

type (
	DB struct {
		questions *questionTable
	}

	questionTable struct {
		mutex     sync.RWMutex
		table     map[survey.Identity][]survey.Record
		malformed map[survey.Identity]bool
	}
)

func Open() (*DB, error) {
	db := &DB{
		questions: &questionTable{
			table:     make(map[survey.Identity][]survey.Record),
			malformed: make(map[survey.Identity]bool),
		},
	}
	return db, nil
}
