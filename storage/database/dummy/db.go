// Package dummydb provides in-memory repositories for tests and local
// development without postgres.
package dummydb

import (
	"sync"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/user"
)

type (
	DB struct {
		calendar *calendarTable
		event    *eventTable
		user     *userTable
	}

	calendarTable struct {
		sync.RWMutex
		calendars map[string]*calendar.Calendar
		terms     map[string]*calendar.Term
	}

	eventTable struct {
		sync.RWMutex
		table map[string]*event.Event
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
)

func Open() (*DB, error) {
	db := &DB{
		calendar: &calendarTable{
			calendars: make(map[string]*calendar.Calendar),
			terms:     make(map[string]*calendar.Term),
		},
		event: &eventTable{table: make(map[string]*event.Event)},
		user:  &userTable{table: make(map[string]*user.User)},
	}
	return db, nil
}
