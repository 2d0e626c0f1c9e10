// /home/hvpkod/go/src/github.com/hvpkod/rssel/common/path/path.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-01-07 19:02:41 hvpkod>

// Package path provides symbolic constants for application-specific files
// and directories.
package path

//go:generate stringer -type=ID

// ID identifies a file or directory used by the application.
type ID uint8

const (
	Base ID = iota
	Log
	Database
	Settings
	Sources
	Stopwords
	Highlights
	FetchCache
	ExportTree
	ColdStorage
)

// AllPaths returns a slice of all path IDs.
func AllPaths() []ID {
	return []ID{
		Base,
		Log,
		Database,
		Settings,
		Sources,
		Stopwords,
		Highlights,
		FetchCache,
		ExportTree,
		ColdStorage,
	}
} // func AllPaths() []ID
