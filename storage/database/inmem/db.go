// Package inmemdb stores objects in process memory. Used in development and tests.
package inmemdb

import (
	"sync"

	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	recordTable struct {
		mutex sync.RWMutex
		table map[string]*resource.Record
	}

	goalTable struct {
		mutex sync.RWMutex
		table map[string]*goal.Goal
	}

	DB struct {
		user   *userTable
		record *recordTable
		goal   *goalTable
	}
)

func NewDB() *DB {
	return &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		record: &recordTable{table: make(map[string]*resource.Record)},
		goal:   &goalTable{table: make(map[string]*goal.Goal)},
	}
}
