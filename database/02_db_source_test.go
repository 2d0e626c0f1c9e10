// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/02_db_source_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-30 21:22:40 hvpkod>

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hvpkod/rssel/model"
)

func TestSourceAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	type testCase struct {
		s           model.Source
		expectError bool
	}

	var (
		err       error
		testCases = make([]testCase, srcCnt*2)
	)

	for i := 0; i < srcCnt; i++ {
		testCases[i] = testCase{
			s: model.Source{
				Title: fmt.Sprintf("Source %03d", i+1),
				URL: fmt.Sprintf("https://www.example.org/news/feed%03d.rss",
					i+1),
				Groups: []string{fmt.Sprintf("group%d", i%2+1)},
			},
		}

		// Adding the same URL twice must fail.
		testCases[i+srcCnt] = testCase{
			s:           testCases[i].s,
			expectError: true,
		}
	}

	sources = make([]model.Source, 0, srcCnt)

	for _, c := range testCases {
		if err = db.SourceAdd(&c.s); err != nil {
			if !c.expectError {
				t.Fatalf("Unexpected error while adding Source %s: %s",
					c.s.URL,
					err.Error())
			}
		} else if c.expectError {
			t.Fatalf("Adding Source %s twice should have failed",
				c.s.URL)
		} else if c.s.ID == 0 {
			t.Fatalf("After adding Source %s, ID is still zero",
				c.s.URL)
		} else {
			sources = append(sources, c.s)
		}
	}
} // func TestSourceAdd(t *testing.T)

func TestSourceGetByID(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for idx := range sources {
		var (
			err error
			ref = &sources[idx]
			s   *model.Source
		)

		if s, err = db.SourceGetByID(ref.ID); err != nil {
			t.Fatalf("Failed to look up Source %d: %s",
				ref.ID,
				err.Error())
		} else if s == nil {
			t.Fatalf("Did not find Source %d in database", ref.ID)
		} else if !sourceEqual(ref, s) {
			t.Fatalf("Source %d came back wrong:\nExpected: %s\nGot:      %s",
				ref.ID,
				ref,
				s)
		}
	}

	var (
		err error
		s   *model.Source
	)

	if s, err = db.SourceGetByID(4096); err != nil {
		t.Fatalf("Looking up a non-existent Source should not fail: %s",
			err.Error())
	} else if s != nil {
		t.Fatalf("Found a Source that should not exist: %s", s)
	}
} // func TestSourceGetByID(t *testing.T)

func TestSourceGetByURL(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	for idx := range sources {
		var (
			err error
			ref = &sources[idx]
			s   *model.Source
		)

		if s, err = db.SourceGetByURL(ref.URL); err != nil {
			t.Fatalf("Failed to look up Source %s: %s",
				ref.URL,
				err.Error())
		} else if s == nil {
			t.Fatalf("Did not find Source %s in database", ref.URL)
		} else if !sourceEqual(ref, s) {
			t.Fatalf("Source %s came back wrong:\nExpected: %s\nGot:      %s",
				ref.URL,
				ref,
				s)
		}
	}
} // func TestSourceGetByURL(t *testing.T)

func TestSourceGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err error
		all []model.Source
	)

	if all, err = db.SourceGetAll(); err != nil {
		t.Fatalf("Failed to load all Sources: %s", err.Error())
	} else if len(all) != len(sources) {
		t.Fatalf("Unexpected number of Sources: expected %d, got %d",
			len(sources),
			len(all))
	}
} // func TestSourceGetAll(t *testing.T)

func TestSourceSetTitle(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		s     = &sources[0]
		title = "Renamed Source"
	)

	if err = db.SourceSetTitle(s, ""); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Setting an empty title should return ErrInvalidValue, got %v",
			err)
	} else if err = db.SourceSetTitle(s, s.Title); !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("Setting the unchanged title should return ErrEmptyUpdate, got %v",
			err)
	} else if err = db.SourceSetTitle(s, title); err != nil {
		t.Fatalf("Failed to rename Source %d: %s",
			s.ID,
			err.Error())
	} else if s.Title != title {
		t.Fatalf("After renaming, Source title is %q, expected %q",
			s.Title,
			title)
	}

	var fresh *model.Source

	if fresh, err = db.SourceGetByID(s.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			s.ID,
			err.Error())
	} else if fresh.Title != title {
		t.Fatalf("Renaming Source %d did not stick, title is %q",
			s.ID,
			fresh.Title)
	}
} // func TestSourceSetTitle(t *testing.T)

func TestSourceGroupSet(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		s      = &sources[1]
		groups = []string{"science", "tech"}
		fresh  *model.Source
	)

	if err = db.SourceGroupSet(s, groups); err != nil {
		t.Fatalf("Failed to set groups on Source %d: %s",
			s.ID,
			err.Error())
	} else if fresh, err = db.SourceGetByID(s.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			s.ID,
			err.Error())
	} else if len(fresh.Groups) != len(groups) {
		t.Fatalf("Source %d should be in %d groups, found %d",
			s.ID,
			len(groups),
			len(fresh.Groups))
	}

	for i, g := range groups {
		if fresh.Groups[i] != g {
			t.Errorf("Unexpected group on Source %d: expected %q, got %q",
				s.ID,
				g,
				fresh.Groups[i])
		}
	}
} // func TestSourceGroupSet(t *testing.T)

func TestSourceSetArchived(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		s     = &sources[len(sources)-1]
		fresh *model.Source
	)

	if err = db.SourceSetArchived(s, true); err != nil {
		t.Fatalf("Failed to archive Source %d: %s",
			s.ID,
			err.Error())
	} else if fresh, err = db.SourceGetByID(s.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			s.ID,
			err.Error())
	} else if !fresh.Archived {
		t.Fatalf("Source %d should be archived now", s.ID)
	} else if err = db.SourceSetArchived(s, false); err != nil {
		t.Fatalf("Failed to un-archive Source %d: %s",
			s.ID,
			err.Error())
	}
} // func TestSourceSetArchived(t *testing.T)
