// /home/hvpkod/go/src/github.com/hvpkod/rssel/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-02-21 18:55:30 hvpkod>

// Package common provides constants and state shared across the application,
// most notably the base directory, well-known file paths, and the creation
// of per-subsystem Loggers.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/logutils"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/logdomain"
)

// AppName is the name of the application, Version is, well, the version.
const (
	AppName         = "rssel"
	Version         = "0.4.2"
	Debug           = true
	TimestampFormat = "2006-01-02 15:04:05"
)

// LogLevels are the valid log levels, in ascending order of severity.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
}

// PackageLevels defines the minimum log level per subsystem.
var PackageLevels = func() map[logdomain.ID]logutils.LogLevel {
	var m = make(map[logdomain.ID]logutils.LogLevel, len(logdomain.AllDomains()))

	for _, dom := range logdomain.AllDomains() {
		if Debug {
			m[dom] = "TRACE"
		} else {
			m[dom] = "INFO"
		}
	}

	return m
}()

var (
	baseDirLock sync.RWMutex
	baseDir     = filepath.Join(mustCwd(), "."+AppName)
)

func mustCwd() string {
	var (
		err error
		cwd string
	)

	if cwd, err = os.Getwd(); err != nil {
		// If we cannot even determine the current directory, something
		// is so deeply wrong we might just as well give up.
		panic(err)
	}

	return cwd
} // func mustCwd() string

// BaseDir returns the directory the application keeps its files in.
func BaseDir() string {
	baseDirLock.RLock()
	defer baseDirLock.RUnlock()
	return baseDir
} // func BaseDir() string

// SetBaseDir sets the application's base directory and creates it if needed.
func SetBaseDir(dir string) error {
	baseDirLock.Lock()
	defer baseDirLock.Unlock()

	var err error

	if dir, err = filepath.Abs(dir); err != nil {
		return err
	}

	baseDir = dir
	return initDir(dir)
} // func SetBaseDir(dir string) error

// InitApp makes sure the application's base directory exists.
func InitApp() error {
	return initDir(BaseDir())
} // func InitApp() error

func initDir(dir string) error {
	var err error

	if err = os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("Cannot create base directory %s: %w",
			dir,
			err)
	}

	return nil
} // func initDir(dir string) error

// Path returns the full path for the given well-known file or directory.
func Path(id path.ID) string {
	var base = BaseDir()

	switch id {
	case path.Base:
		return base
	case path.Log:
		return filepath.Join(base, AppName+".log")
	case path.Database:
		return filepath.Join(base, AppName+".db")
	case path.Settings:
		return filepath.Join(base, "settings.yaml")
	case path.Sources:
		return filepath.Join(base, "sources.json")
	case path.Stopwords:
		return filepath.Join(base, "stopwords.txt")
	case path.Highlights:
		return filepath.Join(base, "highlights.txt")
	case path.FetchCache:
		return filepath.Join(base, "fetch_cache.db")
	case path.ExportTree:
		return filepath.Join(base, "fs")
	case path.ColdStorage:
		return filepath.Join(base, "cold")
	default:
		panic(fmt.Sprintf("Unknown path ID %d", id))
	}
} // func Path(id path.ID) string

// GetLogger returns a Logger for the given subsystem, writing both to the
// shared logfile and to stdout, filtered by the subsystem's log level.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err    error
		fh     *os.File
		writer io.Writer
	)

	if err = InitApp(); err != nil {
		return nil, err
	}

	var logpath = Path(path.Log)

	if fh, err = os.OpenFile(logpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err != nil {
		return nil, fmt.Errorf("Cannot open logfile %s: %w",
			logpath,
			err)
	}

	writer = io.MultiWriter(os.Stdout, fh)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}

	var prefix = fmt.Sprintf("[%s] ", dom)

	return log.New(filter, prefix, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// TimeEqual returns true if the two timestamps refer to the same second.
// SQLite stores timestamps with second precision, so this is the comparison
// the tests want.
func TimeEqual(t1, t2 time.Time) bool {
	return t1.Unix() == t2.Unix()
} // func TimeEqual(t1, t2 time.Time) bool
