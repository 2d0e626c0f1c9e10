// /home/hvpkod/go/src/github.com/hvpkod/rssel/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2025-11-19 21:44:08 hvpkod>

// Package logdomain provides symbolic constants to identify the various
// subsystems that emit log messages.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source
type ID uint8

const (
	Common ID = iota
	Database
	DBPool
	Ingest
	Tagger
	Filter
	Lifecycle
	Fetch
	Export
	CLI
)

// AllDomains returns a slice of all log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Database,
		DBPool,
		Ingest,
		Tagger,
		Filter,
		Lifecycle,
		Fetch,
		Export,
		CLI,
	}
} // func AllDomains() []ID
