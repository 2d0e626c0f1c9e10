// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-27 19:12:36 hvpkod>

// Package database provides persistence.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/database/query"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
	_ "github.com/mattn/go-sqlite3" // Import the database driver
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction failed
// because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrEmptyUpdate indicates that an update operation would not change any
// values.
var ErrEmptyUpdate = errors.New("Update operation does not change any values")

// ErrInvalidValue indicates that one or more parameters passed to a method
// had values that are invalid for that operation.
var ErrInvalidValue = errors.New("Invalid value for parameter")

// ErrObjectNotFound indicates that an Object was not found in the database.
var ErrObjectNotFound = errors.New("object was not found in database")

// ErrInvalidSavepoint is returned when a user of the Database uses an unkown
// (or expired) savepoint name.
var ErrInvalidSavepoint = errors.New("that save point does not exist")

// If a query returns an error and the error text is matched by this regex, we
// consider the error as transient and try again after a short delay.
var retryPat = regexp.MustCompile("(?i)database is (?:locked|busy)")

// worthARetry returns true if an error returned from the database
// is matched by the retryPat regex.
func worthARetry(e error) bool {
	return retryPat.MatchString(e.Error())
} // func worthARetry(e error) bool

// retryDelay is the amount of time we wait before we repeat a database
// operation that failed due to a transient error.
const retryDelay = 25 * time.Millisecond

func waitForRetry() {
	time.Sleep(retryDelay)
} // func waitForRetry()

// Database wraps a database connection and associated state.
type Database struct {
	id            int64
	db            *sql.DB
	tx            *sql.Tx
	log           *log.Logger
	path          string
	spNameCounter int
	spNameCache   map[string]string
	queries       map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database specified by the path does not exist,
// yet, it is created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:          path,
			spNameCounter: 1,
			spNameCache:   make(map[string]string),
			queries:       make(map[query.ID]*sql.Stmt),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	} else if common.Debug {
		db.log.Printf("[DEBUG] Open database %s\n", path)
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=true&recursive_triggers=true",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Failed to check if %s already exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Failed to open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Failed to remove database file %s: %s\n",
					db.path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Database at %s has been initialized\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if common.Debug {
		db.log.Printf("[DEBUG] Initialize fresh database at %s\n",
			db.path)
	}

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		db.log.Printf("[TRACE] Execute init query:\n%s\n",
			q)
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query: %s\n%s\n",
				err.Error(),
				q)
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
				return rbErr
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		db.log.Printf("[CANTHAPPEN] Failed to commit init transaction: %s\n",
			err.Error())
		return err
	}

	return nil
} // func (db *Database) initialize() error

// Close closes the database.
// If there is a pending transaction, it is rolled back.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt  *sql.Stmt
		found bool
		err   error
	)

	if stmt, found = db.queries[id]; found {
		return stmt, nil
	} else if _, found = dbQueries[id]; !found {
		return nil, fmt.Errorf("Unknown Query %d",
			id)
	}

	db.log.Printf("[TRACE] Prepare query %s\n", id)

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot parse query %s: %s\n%s\n",
			id,
			err.Error(),
			dbQueries[id])
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(query.ID) (*sql.Stmt, error)

func (db *Database) resetSPNamespace() {
	db.spNameCounter = 1
	db.spNameCache = make(map[string]string)
} // func (db *Database) resetSPNamespace()

func (db *Database) generateSPName(name string) string {
	var spname = fmt.Sprintf("Savepoint%05d",
		db.spNameCounter)

	db.spNameCache[name] = spname
	db.spNameCounter++
	return spname
} // func (db *Database) generateSPName() string

// PerformMaintenance performs some maintenance operations on the database.
// It cannot be called while a transaction is in progress and will block
// pretty much all access to the database while it is running.
func (db *Database) PerformMaintenance() error {
	var mQueries = []string{
		"PRAGMA wal_checkpoint(TRUNCATE)",
		"VACUUM",
		"REINDEX",
		"ANALYZE",
	}
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

	for _, q := range mQueries {
		if _, err = db.db.Exec(q); err != nil {
			db.log.Printf("[ERROR] Failed to execute %s: %s\n",
				q,
				err.Error())
		}
	}

	return nil
} // func (db *Database) PerformMaintenance() error

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start one,
// while another transaction is already in progress will yield ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Begin Transaction\n",
		db.id)

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			} else {
				db.log.Printf("[ERROR] Failed to start transaction: %s\n",
					err.Error())
				return err
			}
		}
	}

	db.resetSPNamespace()

	return nil
} // func (db *Database) Begin() error

// SavepointCreate creates a savepoint with the given name.
//
// Savepoints only make sense within a running transaction, and just like
// with explicit transactions, managing them is the responsibility of the
// user of the Database.
//
// Creating a savepoint without a surrounding transaction is not allowed,
// even though SQLite allows it.
//
// For details on how Savepoints work, check the excellent SQLite
// documentation, but here's a quick guide:
//
// Savepoints are kind-of-like transactions within a transaction: One
// can create a savepoint, make some changes to the database, and roll
// back to that savepoint, discarding all changes made between
// creating the savepoint and rolling back to it. Savepoints can be
// quite useful, but there are a few things to keep in mind:
//
//   - Savepoints exist within a transaction. When the surrounding transaction
//     is finished, all savepoints created within that transaction cease to exist,
//     no matter if the transaction is commited or rolled back.
//
//   - When the database is recovered after being interrupted during a
//     transaction, e.g. by a power outage, the entire transaction is rolled back,
//     including all savepoints that might exist.
//
//   - When a savepoint is released, nothing changes in the state of the
//     surrounding transaction. That means rolling back the surrounding
//     transaction rolls back the entire transaction, regardless of any
//     savepoints within.
//
//   - Savepoints do not nest. Releasing a savepoint releases it and *all*
//     existing savepoints that have been created before it. Rolling back to a
//     savepoint removes that savepoint and all savepoints created after it.
func (db *Database) SavepointCreate(name string) error {
	var err error

	db.log.Printf("[DEBUG] SavepointCreate(%s)\n",
		name)

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	// The SAVEPOINT statement does not support placeholders, so we generate
	// clean internal names and keep the user-supplied ones in a map.
	var internalName = db.generateSPName(name)

	var spQuery = "SAVEPOINT " + internalName

SAVEPOINT:
	if _, err = db.tx.Exec(spQuery); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto SAVEPOINT
		}

		db.log.Printf("[ERROR] Failed to create savepoint %s: %s\n",
			name,
			err.Error())
	}

	return err
} // func (db *Database) SavepointCreate(name string) error

// SavepointRelease releases the Savepoint with the given name, and all
// Savepoints created before the one being release.
func (db *Database) SavepointRelease(name string) error {
	var (
		err                   error
		internalName, spQuery string
		validName             bool
	)

	db.log.Printf("[DEBUG] SavepointRelease(%s)\n",
		name)

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if internalName, validName = db.spNameCache[name]; !validName {
		db.log.Printf("[ERROR] Attempt to release unknown Savepoint %q\n",
			name)
		return ErrInvalidSavepoint
	}

	db.log.Printf("[DEBUG] Release Savepoint %q (%q)",
		name,
		db.spNameCache[name])

	spQuery = "RELEASE SAVEPOINT " + internalName

SAVEPOINT:
	if _, err = db.tx.Exec(spQuery); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto SAVEPOINT
		}

		db.log.Printf("[ERROR] Failed to release savepoint %s: %s\n",
			name,
			err.Error())
	} else {
		delete(db.spNameCache, internalName)
	}

	return err
} // func (db *Database) SavepointRelease(name string) error

// SavepointRollback rolls back the running transaction to the given savepoint.
func (db *Database) SavepointRollback(name string) error {
	var (
		err                   error
		internalName, spQuery string
		validName             bool
	)

	db.log.Printf("[DEBUG] SavepointRollback(%s)\n",
		name)

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if internalName, validName = db.spNameCache[name]; !validName {
		return ErrInvalidSavepoint
	}

	spQuery = "ROLLBACK TO SAVEPOINT " + internalName

SAVEPOINT:
	if _, err = db.tx.Exec(spQuery); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto SAVEPOINT
		}

		db.log.Printf("[ERROR] Failed to roll back to savepoint %s: %s\n",
			name,
			err.Error())
	}

	delete(db.spNameCache, name)
	return err
} // func (db *Database) SavepointRollback(name string) error

// Rollback terminates a pending transaction, undoing any changes to the
// database made during that transaction.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Rollback() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Roll back Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Rollback(); err != nil {
		return fmt.Errorf("Cannot roll back database transaction: %s",
			err.Error())
	}

	db.tx = nil
	db.resetSPNamespace()

	return nil
} // func (db *Database) Rollback() error

// Commit ends the active transaction, making any changes made during that
// transaction permanent and visible to other connections.
// If no transaction is active, it returns ErrNoTxInProgress
func (db *Database) Commit() error {
	var err error

	db.log.Printf("[DEBUG] Database#%d Commit Transaction\n",
		db.id)

	if db.tx == nil {
		return ErrNoTxInProgress
	} else if err = db.tx.Commit(); err != nil {
		return fmt.Errorf("Cannot commit transaction: %s",
			err.Error())
	}

	db.resetSPNamespace()
	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// SourceAdd enters a Source into the database. Its group memberships are
// stored along with it.
func (db *Database) SourceAdd(s *model.Source) error {
	const qid query.ID = query.SourceAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)
	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(s.Title, s.URL); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add Source %s to database: %s",
				s.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	var id int64

	if !rows.Next() {
		// CANTHAPPEN
		rows.Close() // nolint: errcheck,gosec
		db.log.Printf("[ERROR] Query %s did not return a value\n",
			qid)
		return fmt.Errorf("Query %s did not return a value", qid)
	} else if err = rows.Scan(&id); err != nil {
		rows.Close() // nolint: errcheck,gosec
		msg = fmt.Sprintf("Failed to get ID for newly added Source %s: %s",
			s.Title,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	}

	rows.Close() // nolint: errcheck,gosec
	s.ID = id

	var gstmt *sql.Stmt

	if gstmt, err = db.getQuery(query.SourceGroupAdd); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.SourceGroupAdd,
			err.Error())
		return err
	}

	gstmt = tx.Stmt(gstmt)

	for _, g := range s.Groups {
	EXEC_GROUP:
		if _, err = gstmt.Exec(s.ID, g); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto EXEC_GROUP
			}

			err = fmt.Errorf("Cannot add Source %s to group %s: %s",
				s.Title,
				g,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) SourceAdd(s *model.Source) error

// SourceGetByID loads a Source by its ID.
func (db *Database) SourceGetByID(id int64) (*model.Source, error) {
	const qid query.ID = query.SourceGetByID
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var s = &model.Source{ID: id}

		if err = rows.Scan(&s.Title, &s.URL, &s.Archived); err != nil {
			msg = fmt.Sprintf("Error scanning row for Source %d: %s",
				id,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		} else if s.Groups, err = db.sourceGroupGet(id); err != nil {
			return nil, err
		}

		return s, nil
	}

	db.log.Printf("[INFO] Source %d was not found in database\n", id)
	return nil, nil
} // func (db *Database) SourceGetByID(id int64) (*model.Source, error)

// SourceGetByURL loads a Source by its feed URL.
func (db *Database) SourceGetByURL(u string) (*model.Source, error) {
	const qid query.ID = query.SourceGetByURL
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(u); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var s = &model.Source{URL: u}

		if err = rows.Scan(&s.ID, &s.Title, &s.Archived); err != nil {
			msg = fmt.Sprintf("Error scanning row for Source %q: %s",
				u,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		} else if s.Groups, err = db.sourceGroupGet(s.ID); err != nil {
			return nil, err
		}

		return s, nil
	}

	return nil, nil
} // func (db *Database) SourceGetByURL(u string) (*model.Source, error)

// SourceGetAll loads all Sources from the database, including their group
// memberships.
func (db *Database) SourceGetAll() ([]model.Source, error) {
	const qid query.ID = query.SourceGetAll
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var sources = make([]model.Source, 0, 16)

	for rows.Next() {
		var s model.Source

		if err = rows.Scan(&s.ID, &s.Title, &s.URL, &s.Archived); err != nil {
			msg = fmt.Sprintf("Error scanning row for Source: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		sources = append(sources, s)
	}

	var groups map[int64][]string

	if groups, err = db.SourceGroupGetAll(); err != nil {
		return nil, err
	}

	for i := range sources {
		sources[i].Groups = groups[sources[i].ID]
	}

	return sources, nil
} // func (db *Database) SourceGetAll() ([]model.Source, error)

// SourceSetTitle renames a Source.
func (db *Database) SourceSetTitle(s *model.Source, title string) error {
	const qid query.ID = query.SourceSetTitle
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if title == "" {
		return ErrInvalidValue
	} else if title == s.Title {
		return ErrEmptyUpdate
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(title, s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot rename Source %s: %s",
				s.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	s.Title = title
	status = true
	return nil
} // func (db *Database) SourceSetTitle(s *model.Source, title string) error

// SourceSetArchived sets or clears a Source's archived flag.
func (db *Database) SourceSetArchived(s *model.Source, archived bool) error {
	const qid query.ID = query.SourceSetArchived
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if s.Archived == archived {
		return ErrEmptyUpdate
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(archived, s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot set archived flag on Source %s: %s",
				s.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	s.Archived = archived
	status = true
	return nil
} // func (db *Database) SourceSetArchived(s *model.Source, archived bool) error

func (db *Database) sourceGroupGet(id int64) ([]string, error) {
	const qid query.ID = query.SourceGroupGetBySource
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var groups = make([]string, 0, 4)

	for rows.Next() {
		var g string

		if err = rows.Scan(&g); err != nil {
			db.log.Printf("[ERROR] Error scanning group for Source %d: %s\n",
				id,
				err.Error())
			return nil, err
		}

		groups = append(groups, g)
	}

	return groups, nil
} // func (db *Database) sourceGroupGet(id int64) ([]string, error)

// SourceGroupSet replaces a Source's group memberships with the given set.
func (db *Database) SourceGroupSet(s *model.Source, groups []string) error {
	var (
		err          error
		msg          string
		cstmt, astmt *sql.Stmt
		tx           *sql.Tx
		status       bool
	)

	if cstmt, err = db.getQuery(query.SourceGroupClear); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.SourceGroupClear,
			err.Error())
		return err
	} else if astmt, err = db.getQuery(query.SourceGroupAdd); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.SourceGroupAdd,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	cstmt = tx.Stmt(cstmt)
	astmt = tx.Stmt(astmt)

EXEC_CLEAR:
	if _, err = cstmt.Exec(s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_CLEAR
		}

		err = fmt.Errorf("Cannot clear groups of Source %s: %s",
			s.Title,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	for _, g := range groups {
	EXEC_ADD:
		if _, err = astmt.Exec(s.ID, g); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto EXEC_ADD
			}

			err = fmt.Errorf("Cannot add Source %s to group %s: %s",
				s.Title,
				g,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	s.Groups = make([]string, len(groups))
	copy(s.Groups, groups)

	status = true
	return nil
} // func (db *Database) SourceGroupSet(s *model.Source, groups []string) error

// SourceGroupGetAll returns the group memberships of all Sources, keyed by
// Source ID.
func (db *Database) SourceGroupGetAll() (map[int64][]string, error) {
	const qid query.ID = query.SourceGroupGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var groups = make(map[int64][]string)

	for rows.Next() {
		var (
			id int64
			g  string
		)

		if err = rows.Scan(&id, &g); err != nil {
			db.log.Printf("[ERROR] Error scanning source_group row: %s\n",
				err.Error())
			return nil, err
		}

		groups[id] = append(groups[id], g)
	}

	return groups, nil
} // func (db *Database) SourceGroupGetAll() (map[int64][]string, error)

// SourceRemoveStats describes what removing a Source would delete.
type SourceRemoveStats struct {
	Items    int64
	TagLinks int64
}

// SourceRemoveDryRun counts the records that SourceRemove would delete for
// the given Source, without touching anything.
func (db *Database) SourceRemoveDryRun(s *model.Source) (*SourceRemoveStats, error) {
	var (
		err   error
		stats = new(SourceRemoveStats)
	)

	if stats.Items, err = db.ItemCntBySource(s); err != nil {
		return nil, err
	} else if stats.TagLinks, err = db.TagLinkCntBySource(s); err != nil {
		return nil, err
	}

	return stats, nil
} // func (db *Database) SourceRemoveDryRun(s *model.Source) (*SourceRemoveStats, error)

// SourceRemove deletes a Source and everything that hangs off of it.
//
// The schema deliberately declares the child tables with RESTRICT, so the
// children have to go first: tag links, then items, then group memberships,
// then the source row itself. The whole cascade runs in one transaction.
// Tags orphaned by the removal are cleaned up as well.
func (db *Database) SourceRemove(s *model.Source) error {
	const qid query.ID = query.SourceDelete
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	db.log.Printf("[INFO] Remove Source %d (%s) and all of its children\n",
		s.ID,
		s.Title)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	var children = []query.ID{
		query.TagLinkDeleteBySource,
		query.ItemIdentityDeleteBySource,
		query.ItemDeleteBySource,
		query.SourceGroupClear,
	}

	for _, cid := range children {
		var cstmt *sql.Stmt

		if cstmt, err = db.getQuery(cid); err != nil {
			db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
				cid,
				err.Error())
			return err
		}

		cstmt = tx.Stmt(cstmt)

	EXEC_CHILD:
		if _, err = cstmt.Exec(s.ID); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto EXEC_CHILD
			}

			err = fmt.Errorf("Cannot delete children (%s) of Source %s: %s",
				cid,
				s.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot delete Source %s: %s",
				s.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	var ostmt *sql.Stmt

	if ostmt, err = db.getQuery(query.TagCleanOrphans); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.TagCleanOrphans,
			err.Error())
		return err
	}

	ostmt = tx.Stmt(ostmt)

EXEC_ORPHANS:
	if _, err = ostmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_ORPHANS
		}

		err = fmt.Errorf("Cannot clean up orphaned tags after removing Source %s: %s",
			s.Title,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) SourceRemove(s *model.Source) error

// ItemCntBySource returns the number of Items belonging to the given Source.
func (db *Database) ItemCntBySource(s *model.Source) (int64, error) {
	const qid query.ID = query.ItemCntBySource
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var cnt int64

	if !rows.Next() {
		// CANTHAPPEN
		db.log.Printf("[ERROR] Query %s did not return a value\n",
			qid)
		return 0, fmt.Errorf("Query %s did not return a value", qid)
	} else if err = rows.Scan(&cnt); err != nil {
		db.log.Printf("[ERROR] Cannot scan count for Source %d: %s\n",
			s.ID,
			err.Error())
		return 0, err
	}

	return cnt, nil
} // func (db *Database) ItemCntBySource(s *model.Source) (int64, error)

// TagLinkCntBySource returns the number of tag links attached to Items of the
// given Source.
func (db *Database) TagLinkCntBySource(s *model.Source) (int64, error) {
	const qid query.ID = query.TagLinkCntBySource
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(s.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return 0, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var cnt int64

	if !rows.Next() {
		// CANTHAPPEN
		db.log.Printf("[ERROR] Query %s did not return a value\n",
			qid)
		return 0, fmt.Errorf("Query %s did not return a value", qid)
	} else if err = rows.Scan(&cnt); err != nil {
		db.log.Printf("[ERROR] Cannot scan count for Source %d: %s\n",
			s.ID,
			err.Error())
		return 0, err
	}

	return cnt, nil
} // func (db *Database) TagLinkCntBySource(s *model.Source) (int64, error)

// ItemAdd enters an Item into the database.
func (db *Database) ItemAdd(i *model.Item) error {
	const qid query.ID = query.ItemInsert
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if i.SourceID == 0 || i.IdentityHash == "" {
		return ErrInvalidValue
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	if i.Created.IsZero() {
		i.Created = time.Now()
	}

	stmt = tx.Stmt(stmt)
	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(
		i.SourceID,
		i.IdentityHash,
		i.Title,
		i.Link,
		i.Published.Unix(),
		i.Created.Unix(),
		i.Content,
		i.Summary); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot add Item %q to database: %s",
				i.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	} else {
		var id int64

		defer rows.Close()

		if !rows.Next() {
			// CANTHAPPEN
			db.log.Printf("[ERROR] Query %s did not return a value\n",
				qid)
			return fmt.Errorf("Query %s did not return a value", qid)
		} else if err = rows.Scan(&id); err != nil {
			msg = fmt.Sprintf("Failed to get ID for newly added Item %q: %s",
				i.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return errors.New(msg)
		}

		i.ID = id
		rows.Close() // nolint: errcheck,gosec,sqlclosecheck
	}

	// The stored hash is registered as a lookup identity right away, so
	// ItemGetByIdentity finds the Item under it.
	var istmt *sql.Stmt

	if istmt, err = db.getQuery(query.ItemIdentityAdd); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.ItemIdentityAdd,
			err.Error())
		return err
	}

	istmt = tx.Stmt(istmt)

EXEC_IDENTITY:
	if _, err = istmt.Exec(i.ID, i.IdentityHash); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_IDENTITY
		}

		err = fmt.Errorf("Cannot register identity of Item %q: %s",
			i.Title,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	status = true
	return nil
} // func (db *Database) ItemAdd(i *model.Item) error

// ItemGetByIdentity looks up an Item by its Source and identity hash.
func (db *Database) ItemGetByIdentity(sourceID int64, hash string) (*model.Item, error) {
	const qid query.ID = query.ItemGetByIdentity
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(sourceID, hash); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			published, created int64
			i                  = &model.Item{
				SourceID: sourceID,
			}
		)

		// The probe hash may be a secondary identity, the stored hash
		// comes out of the row.
		if err = rows.Scan(
			&i.ID,
			&i.IdentityHash,
			&i.Title,
			&i.Link,
			&published,
			&created,
			&i.Content,
			&i.Summary,
			&i.Read,
			&i.Starred,
			&i.Deleted); err != nil {
			msg = fmt.Sprintf("Error scanning row for Item %s/%s: %s",
				hash,
				i.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		i.Published = time.Unix(published, 0)
		i.Created = time.Unix(created, 0)

		return i, nil
	}

	return nil, nil
} // func (db *Database) ItemGetByIdentity(sourceID int64, hash string) (*model.Item, error)

// ItemIdentityAdd registers an additional identity hash for an Item, so a
// lookup by that hash finds it as well. Registering a hash the Item already
// carries is a no-op.
func (db *Database) ItemIdentityAdd(i *model.Item, hash string) error {
	const qid query.ID = query.ItemIdentityAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if i.ID == 0 || hash == "" {
		return ErrInvalidValue
	}

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(i.ID, hash); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot register identity for Item %d: %s",
				i.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) ItemIdentityAdd(i *model.Item, hash string) error

// ItemGetByID loads an Item by its ID. Its tags are loaded along with it.
func (db *Database) ItemGetByID(id int64) (*model.Item, error) {
	const qid query.ID = query.ItemGetByID
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	if rows.Next() {
		var (
			published, created int64
			i                  = &model.Item{ID: id}
		)

		if err = rows.Scan(
			&i.SourceID,
			&i.IdentityHash,
			&i.Title,
			&i.Link,
			&published,
			&created,
			&i.Content,
			&i.Summary,
			&i.Read,
			&i.Starred,
			&i.Deleted); err != nil {
			msg = fmt.Sprintf("Error scanning row for Item %d: %s",
				id,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		i.Published = time.Unix(published, 0)
		i.Created = time.Unix(created, 0)

		if i.Tags, err = db.TagLinkGetByItem(i); err != nil {
			return nil, err
		}

		var src *model.Source

		if src, err = db.SourceGetByID(i.SourceID); err != nil {
			return nil, err
		} else if src != nil {
			i.Groups = src.Groups
		}

		return i, nil
	}

	db.log.Printf("[INFO] Item %d was not found in database\n", id)
	return nil, nil
} // func (db *Database) ItemGetByID(id int64) (*model.Item, error)

// ItemGetAll loads all Items from the database, with their tags and the
// groups of their Sources hydrated. The filter engine works on the result.
func (db *Database) ItemGetAll() ([]model.Item, error) {
	const qid query.ID = query.ItemGetAll
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var items = make([]model.Item, 0, 64)

	for rows.Next() {
		var (
			published, created int64
			i                  model.Item
		)

		if err = rows.Scan(
			&i.ID,
			&i.SourceID,
			&i.IdentityHash,
			&i.Title,
			&i.Link,
			&published,
			&created,
			&i.Content,
			&i.Summary,
			&i.Read,
			&i.Starred,
			&i.Deleted); err != nil {
			msg = fmt.Sprintf("Error scanning row for Item: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		i.Published = time.Unix(published, 0)
		i.Created = time.Unix(created, 0)

		items = append(items, i)
	}

	var (
		tags    map[int64][]string
		sources []model.Source
	)

	if tags, err = db.TagLinkGetAll(); err != nil {
		return nil, err
	} else if sources, err = db.SourceGetAll(); err != nil {
		return nil, err
	}

	var groups = make(map[int64][]string, len(sources))

	for _, s := range sources {
		groups[s.ID] = s.Groups
	}

	for idx := range items {
		items[idx].Tags = tags[items[idx].ID]
		items[idx].Groups = groups[items[idx].SourceID]
	}

	return items, nil
} // func (db *Database) ItemGetAll() ([]model.Item, error)

// ItemUpdateContent updates an Item's mutable fields from a fresh fetch.
// Its identity hash and the local flags are left alone.
func (db *Database) ItemUpdateContent(i *model.Item) error {
	const qid query.ID = query.ItemUpdateContent
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(
		i.Title,
		i.Link,
		i.Published.Unix(),
		i.Content,
		i.Summary,
		i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot update Item %d (%q): %s",
				i.ID,
				i.Title,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) ItemUpdateContent(i *model.Item) error

func (db *Database) itemSetFlag(qid query.ID, i *model.Item, flag bool) error {
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(flag, i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot set flag (%s) on Item %d: %s",
				qid,
				i.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) itemSetFlag(qid query.ID, i *model.Item, flag bool) error

// ItemSetRead sets or clears an Item's read flag.
func (db *Database) ItemSetRead(i *model.Item, read bool) error {
	var err error

	if err = db.itemSetFlag(query.ItemSetRead, i, read); err != nil {
		return err
	}

	i.Read = read
	return nil
} // func (db *Database) ItemSetRead(i *model.Item, read bool) error

// ItemSetStarred sets or clears an Item's starred flag.
func (db *Database) ItemSetStarred(i *model.Item, starred bool) error {
	var err error

	if err = db.itemSetFlag(query.ItemSetStarred, i, starred); err != nil {
		return err
	}

	i.Starred = starred
	return nil
} // func (db *Database) ItemSetStarred(i *model.Item, starred bool) error

// ItemSetDeleted sets or clears an Item's deleted flag. This is the soft
// delete, the row stays around until a purge gets rid of it.
func (db *Database) ItemSetDeleted(i *model.Item, deleted bool) error {
	var err error

	if err = db.itemSetFlag(query.ItemSetDeleted, i, deleted); err != nil {
		return err
	}

	i.Deleted = deleted
	return nil
} // func (db *Database) ItemSetDeleted(i *model.Item, deleted bool) error

// ItemPurge removes an Item from the database for good, along with its tag
// links. Tags orphaned by the removal stay, cleaning those up is a separate
// step.
func (db *Database) ItemPurge(i *model.Item) error {
	const qid query.ID = query.ItemPurge
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	var lstmt *sql.Stmt

	if lstmt, err = db.getQuery(query.TagLinkDeleteByItem); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.TagLinkDeleteByItem,
			err.Error())
		return err
	}

	lstmt = tx.Stmt(lstmt)

EXEC_LINKS:
	if _, err = lstmt.Exec(i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_LINKS
		}

		err = fmt.Errorf("Cannot delete tag links of Item %d: %s",
			i.ID,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	var istmt *sql.Stmt

	if istmt, err = db.getQuery(query.ItemIdentityDeleteByItem); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.ItemIdentityDeleteByItem,
			err.Error())
		return err
	}

	istmt = tx.Stmt(istmt)

EXEC_IDENTITIES:
	if _, err = istmt.Exec(i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_IDENTITIES
		}

		err = fmt.Errorf("Cannot delete identities of Item %d: %s",
			i.ID,
			err.Error())
		db.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot purge Item %d: %s",
				i.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) ItemPurge(i *model.Item) error

// TagEnsure returns the Tag with the given name, creating it if it does not
// exist, yet.
func (db *Database) TagEnsure(name string) (*model.Tag, error) {
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if name == "" {
		return nil, ErrInvalidValue
	}

	if stmt, err = db.getQuery(query.TagGetByName); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.TagGetByName,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_LOOKUP:
	if rows, err = stmt.Query(name); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_LOOKUP
		}

		return nil, err
	}

	if rows.Next() {
		var t = &model.Tag{Name: name}

		if err = rows.Scan(&t.ID); err != nil {
			rows.Close() // nolint: errcheck,gosec
			msg = fmt.Sprintf("Error scanning row for Tag %q: %s",
				name,
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		rows.Close() // nolint: errcheck,gosec
		return t, nil
	}

	rows.Close() // nolint: errcheck,gosec

	var (
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(query.TagAdd); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			query.TagAdd,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return nil, errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_ADD:
	if rows, err = stmt.Query(name); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_ADD
		} else {
			err = fmt.Errorf("Cannot add Tag %q to database: %s",
				name,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return nil, err
		}
	}

	defer rows.Close() // nolint: errcheck,gosec

	var t = &model.Tag{Name: name}

	if !rows.Next() {
		// CANTHAPPEN
		db.log.Printf("[ERROR] Query %s did not return a value\n",
			query.TagAdd)
		return nil, fmt.Errorf("Query %s did not return a value", query.TagAdd)
	} else if err = rows.Scan(&t.ID); err != nil {
		msg = fmt.Sprintf("Failed to get ID for newly added Tag %q: %s",
			name,
			err.Error())
		db.log.Printf("[ERROR] %s\n", msg)
		return nil, errors.New(msg)
	}

	status = true
	return t, nil
} // func (db *Database) TagEnsure(name string) (*model.Tag, error)

// TagGetAll loads all Tags, with the number of non-deleted Items each one is
// attached to, most used first.
func (db *Database) TagGetAll() ([]model.Tag, error) {
	const qid query.ID = query.TagGetAll
	var (
		err  error
		msg  string
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var tags = make([]model.Tag, 0, 32)

	for rows.Next() {
		var t model.Tag

		if err = rows.Scan(&t.ID, &t.Name, &t.ItemCnt); err != nil {
			msg = fmt.Sprintf("Error scanning row for Tag: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", msg)
			return nil, errors.New(msg)
		}

		tags = append(tags, t)
	}

	return tags, nil
} // func (db *Database) TagGetAll() ([]model.Tag, error)

// TagCleanOrphans removes Tags that are not attached to any Item anymore.
// It returns the number of Tags removed.
func (db *Database) TagCleanOrphans() (int64, error) {
	const qid query.ID = query.TagCleanOrphans
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return 0, err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return 0, errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot clean up orphaned Tags: %s",
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return 0, err
		}
	}

	var cnt int64

	if cnt, err = res.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot query number of deleted Tags: %s\n",
			err.Error())
		return 0, err
	}

	status = true
	return cnt, nil
} // func (db *Database) TagCleanOrphans() (int64, error)

// TagLinkAdd attaches a Tag to an Item. The auto flag records whether the
// link was made by the tagger or by hand. Attaching a Tag that is already
// attached is a no-op.
func (db *Database) TagLinkAdd(i *model.Item, t *model.Tag, auto bool) error {
	const qid query.ID = query.TagLinkAdd
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(t.ID, i.ID, auto); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot attach Tag %s to Item %d: %s",
				t.Name,
				i.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) TagLinkAdd(i *model.Item, t *model.Tag, auto bool) error

// TagLinkDeleteAuto removes all automatically made tag links from an Item,
// leaving the manual ones in place.
func (db *Database) TagLinkDeleteAuto(i *model.Item) error {
	const qid query.ID = query.TagLinkDeleteAutoByItem
	var (
		err    error
		msg    string
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	} else if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			} else {
				msg = fmt.Sprintf("Error starting transaction: %s\n",
					err.Error())
				db.log.Printf("[ERROR] %s\n", msg)
				return errors.New(msg)
			}

		} else {
			defer func() {
				var err2 error
				if status {
					if err2 = tx.Commit(); err2 != nil {
						db.log.Printf("[ERROR] Failed to commit ad-hoc transaction: %s\n",
							err2.Error())
					}
				} else if err2 = tx.Rollback(); err2 != nil {
					db.log.Printf("[ERROR] Rollback of ad-hoc transaction failed: %s\n",
						err2.Error())
				}
			}()
		}
	}

	stmt = tx.Stmt(stmt)

EXEC_QUERY:
	if _, err = stmt.Exec(i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		} else {
			err = fmt.Errorf("Cannot remove auto tags from Item %d: %s",
				i.ID,
				err.Error())
			db.log.Printf("[ERROR] %s\n", err.Error())
			return err
		}
	}

	status = true
	return nil
} // func (db *Database) TagLinkDeleteAuto(i *model.Item) error

// TagLinkGetByItem returns the names of all Tags attached to the given Item,
// in alphabetical order.
func (db *Database) TagLinkGetByItem(i *model.Item) ([]string, error) {
	const qid query.ID = query.TagLinkGetByItem
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(i.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var tags = make([]string, 0, 8)

	for rows.Next() {
		var (
			name string
			auto bool
		)

		if err = rows.Scan(&name, &auto); err != nil {
			db.log.Printf("[ERROR] Error scanning tag link for Item %d: %s\n",
				i.ID,
				err.Error())
			return nil, err
		}

		tags = append(tags, name)
	}

	return tags, nil
} // func (db *Database) TagLinkGetByItem(i *model.Item) ([]string, error)

// TagLinkGetAll returns the tag names of all Items, keyed by Item ID.
func (db *Database) TagLinkGetAll() (map[int64][]string, error) {
	const qid query.ID = query.TagLinkGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		return nil, err
	}

	defer rows.Close() // nolint: errcheck,gosec

	var links = make(map[int64][]string)

	for rows.Next() {
		var (
			id   int64
			name string
		)

		if err = rows.Scan(&id, &name); err != nil {
			db.log.Printf("[ERROR] Error scanning tag link row: %s\n",
				err.Error())
			return nil, err
		}

		links[id] = append(links[id], name)
	}

	return links, nil
} // func (db *Database) TagLinkGetAll() (map[int64][]string, error)
