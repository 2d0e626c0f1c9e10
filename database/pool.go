// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-05-19 21:48:02 hvpkod>

package database

import (
	"container/list"
	"log"
	"sync"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/logdomain"
)

// Pool is a pool of database connections. SQLite does not like concurrent
// writers, so instead of sharing one handle across goroutines, each worker
// borrows a connection and returns it when done.
type Pool struct {
	lock sync.Mutex
	cond *sync.Cond
	log  *log.Logger
	pool *list.List
}

// NewPool creates a database connection pool of the given size, connected to
// the application's default database.
func NewPool(cnt int) (*Pool, error) {
	var (
		err    error
		dbpath = common.Path(path.Database)
		pool   = &Pool{
			pool: list.New(),
		}
	)

	pool.cond = sync.NewCond(&pool.lock)

	if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(dbpath); err != nil {
			pool.log.Printf("[ERROR] Cannot open database at %s: %s\n",
				dbpath,
				err.Error())
			return nil, err
		}

		pool.pool.PushBack(db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the pool.
// If the pool is empty, it blocks until a connection is returned.
func (pool *Pool) Get() *Database {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	for pool.pool.Len() == 0 {
		pool.cond.Wait()
	}

	var item = pool.pool.Front()
	pool.pool.Remove(item)

	return item.Value.(*Database)
} // func (pool *Pool) Get() *Database

// GetNoWait returns a database connection from the pool.
// If the pool is empty, it returns nil immediately.
func (pool *Pool) GetNoWait() *Database {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	if pool.pool.Len() == 0 {
		return nil
	}

	var item = pool.pool.Front()
	pool.pool.Remove(item)

	return item.Value.(*Database)
} // func (pool *Pool) GetNoWait() *Database

// Put returns a connection to the pool.
func (pool *Pool) Put(db *Database) {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	pool.pool.PushBack(db)
	pool.cond.Signal()
} // func (pool *Pool) Put(db *Database)

// IsEmpty returns true if the pool currently has no available connections.
func (pool *Pool) IsEmpty() bool {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	return pool.pool.Len() == 0
} // func (pool *Pool) IsEmpty() bool

// Close closes all connections currently in the pool.
func (pool *Pool) Close() error {
	pool.lock.Lock()
	defer pool.lock.Unlock()

	var err error

	for item := pool.pool.Front(); item != nil; item = item.Next() {
		var db = item.Value.(*Database)

		if err = db.Close(); err != nil {
			pool.log.Printf("[ERROR] Cannot close database: %s\n",
				err.Error())
			return err
		}
	}

	pool.pool.Init()
	return nil
} // func (pool *Pool) Close() error
