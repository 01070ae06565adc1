package inmemdb

import (
	"sync"

	"github.com/ewanblake/aihub/core/content"
)

type (
	DB struct {
		papers    *paperTable
		resources *resourceTable
	}

	paperTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*content.Paper
	}

	resourceTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*content.Resource
	}
)

func Open() (*DB, error) {
	db := &DB{
		papers:    &paperTable{table: make(map[int]*content.Paper)},
		resources: &resourceTable{table: make(map[int]*content.Resource)},
	}
	return db, nil
}
