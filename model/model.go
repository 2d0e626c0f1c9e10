// /home/hvpkod/go/src/github.com/hvpkod/rssel/model/model.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-03-02 20:17:49 hvpkod>

// Package model provides the data types used across the application.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jaytaylor/html2text"
	"github.com/mborgerson/GoTruncateHtml/truncatehtml"
)

// Source is a feed we pull items from. Its URL is unique, its numeric ID is
// the stable identity everything else hangs off of.
type Source struct {
	ID       int64
	Title    string
	URL      string
	Groups   []string
	Archived bool
}

func (s *Source) String() string {
	return fmt.Sprintf(`{ ID: %d, Title: %q, URL: %q, Groups: [%s], Archived: %t }`,
		s.ID,
		s.Title,
		s.URL,
		strings.Join(s.Groups, ", "),
		s.Archived)
}

// InGroup returns true if the Source belongs to the given group.
func (s *Source) InGroup(name string) bool {
	for _, g := range s.Groups {
		if g == name {
			return true
		}
	}
	return false
} // func (s *Source) InGroup(name string) bool

// Clone returns a copy of the Source.
func (s *Source) Clone() *Source {
	var c = &Source{
		ID:       s.ID,
		Title:    s.Title,
		URL:      s.URL,
		Groups:   make([]string, len(s.Groups)),
		Archived: s.Archived,
	}

	copy(c.Groups, s.Groups)
	return c
} // func (s *Source) Clone() *Source

// Item is a single cached feed entry.
//
// Tags and Groups are hydrated by the database when an Item is loaded; Groups
// are the groups of the owning Source, duplicated here so the filter engine
// can work on Items alone. Highlighted is computed per query, never stored.
type Item struct {
	ID           int64
	SourceID     int64
	IdentityHash string
	Title        string
	Link         string
	Published    time.Time
	Created      time.Time
	Content      string
	Summary      string
	Read         bool
	Starred      bool
	Deleted      bool
	Tags         []string
	Groups       []string
	Highlighted  bool
}

func (i *Item) String() string {
	return fmt.Sprintf(`{ ID: %d, SourceID: %d, Title: %q, Link: %q, Published: %s, Read: %t, Starred: %t, Deleted: %t, Tags: [%s] }`,
		i.ID,
		i.SourceID,
		i.Title,
		i.Link,
		i.Published.Format(time.DateTime),
		i.Read,
		i.Starred,
		i.Deleted,
		strings.Join(i.Tags, ", "))
}

// IDString returns the Item's ID as a string.
func (i *Item) IDString() string {
	return strconv.FormatInt(i.ID, 10)
} // func (i *Item) IDString() string

// HasTag returns true if the Item carries the given tag.
func (i *Item) HasTag(name string) bool {
	for _, t := range i.Tags {
		if t == name {
			return true
		}
	}
	return false
} // func (i *Item) HasTag(name string) bool

// BodyText returns the Item's content, falling back to the summary.
func (i *Item) BodyText() string {
	if i.Content != "" {
		return i.Content
	}
	return i.Summary
} // func (i *Item) BodyText() string

// Plaintext returns the Item's body with all HTML stripped.
func (i *Item) Plaintext() string {
	var (
		err  error
		text string
	)

	if text, err = html2text.FromString(i.BodyText(), html2text.Options{TextOnly: true}); err != nil {
		// html2text chokes on very little, but just in case.
		return i.BodyText()
	}

	return text
} // func (i *Item) Plaintext() string

// Preview returns up to maxlen characters of the Item's body, truncated at
// a tag boundary so the result is still valid HTML.
func (i *Item) Preview(maxlen int) string {
	var (
		err error
		buf []byte
	)

	if buf, err = truncatehtml.TruncateHtml([]byte(i.BodyText()), maxlen, "..."); err != nil {
		return i.BodyText()
	}

	return string(buf)
} // func (i *Item) Preview(maxlen int) string

// Tag is a label attached to Items. ItemCnt is derived from the link table
// when Tags are listed, it is not a stored attribute.
type Tag struct {
	ID      int64
	Name    string
	ItemCnt int64
}

func (t *Tag) String() string {
	return fmt.Sprintf("{ ID: %d, Name: %q, ItemCnt: %d }",
		t.ID,
		t.Name,
		t.ItemCnt)
}

// RawEntry is one freshly fetched, parsed feed entry, before deduplication.
// The fetcher produces these, the ingest step consumes them.
type RawEntry struct {
	Title     string
	Link      string
	GUID      string
	Published time.Time
	Content   string
	Summary   string
}
