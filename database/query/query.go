// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-04-11 17:28:03 hvpkod>

// Package query provides symbolic constants to identify database queries.
package query

//go:generate stringer -type=ID

// ID represents a database query
type ID uint8

const (
	SourceAdd ID = iota
	SourceGetByID
	SourceGetByURL
	SourceGetAll
	SourceSetTitle
	SourceSetArchived
	SourceDelete
	SourceGroupAdd
	SourceGroupClear
	SourceGroupGetBySource
	SourceGroupGetAll
	SourceGroupCnt
	ItemInsert
	ItemGetByIdentity
	ItemGetByID
	ItemGetAll
	ItemUpdateContent
	ItemSetRead
	ItemSetStarred
	ItemSetDeleted
	ItemDeleteBySource
	ItemPurge
	ItemCntBySource
	TagAdd
	TagGetByName
	TagGetAll
	TagCleanOrphans
	TagLinkAdd
	TagLinkDeleteAutoByItem
	TagLinkDeleteByItem
	TagLinkDeleteBySource
	TagLinkCntBySource
	TagLinkGetByItem
	TagLinkGetAll
	ItemIdentityAdd
	ItemIdentityDeleteByItem
	ItemIdentityDeleteBySource
)

// AllQueries returns a slice of all queries.
func AllQueries() []ID {
	return []ID{
		SourceAdd,
		SourceGetByID,
		SourceGetByURL,
		SourceGetAll,
		SourceSetTitle,
		SourceSetArchived,
		SourceDelete,
		SourceGroupAdd,
		SourceGroupClear,
		SourceGroupGetBySource,
		SourceGroupGetAll,
		SourceGroupCnt,
		ItemInsert,
		ItemGetByIdentity,
		ItemGetByID,
		ItemGetAll,
		ItemUpdateContent,
		ItemSetRead,
		ItemSetStarred,
		ItemSetDeleted,
		ItemDeleteBySource,
		ItemPurge,
		ItemCntBySource,
		TagAdd,
		TagGetByName,
		TagGetAll,
		TagCleanOrphans,
		TagLinkAdd,
		TagLinkDeleteAutoByItem,
		TagLinkDeleteByItem,
		TagLinkDeleteBySource,
		TagLinkCntBySource,
		TagLinkGetByItem,
		TagLinkGetAll,
		ItemIdentityAdd,
		ItemIdentityDeleteByItem,
		ItemIdentityDeleteBySource,
	}
} // func AllQueries() []ID
