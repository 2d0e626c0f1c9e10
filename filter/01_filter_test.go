// /home/hvpkod/go/src/github.com/hvpkod/rssel/filter/01_filter_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 26. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 00:02:31 hvpkod>

package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/hvpkod/rssel/model"
)

var day1 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testItems returns a fresh fixture set, one slice per call so tests can
// mutate freely.
func testItems() []model.Item {
	return []model.Item{
		{
			ID:        1,
			SourceID:  1,
			Title:     "Alpha particle research",
			Published: day1,
			Groups:    []string{"science"},
			Tags:      []string{"physics", "research"},
		},
		{
			ID:        2,
			SourceID:  1,
			Title:     "Budget cuts loom",
			Published: day1.Add(time.Hour * 24),
			Groups:    []string{"politics"},
			Tags:      []string{"economy"},
			Read:      true,
		},
		{
			ID:        3,
			SourceID:  2,
			Title:     "Comet flyby tonight",
			Content:   "The comet passes closest to Earth tonight.",
			Published: day1.Add(time.Hour * 48),
			Groups:    []string{"science"},
			Tags:      []string{"physics"},
			Starred:   true,
		},
		{
			ID:        4,
			SourceID:  2,
			Title:     "Deleted junk",
			Published: day1.Add(time.Hour * 72),
			Deleted:   true,
		},
		{
			ID:        5,
			SourceID:  3,
			Title:     "Elections ahead",
			Published: day1.Add(time.Hour * 24),
			Groups:    []string{"politics", "science"},
			Tags:      []string{"economy", "research"},
			Read:      true,
		},
	}
} // func testItems() []model.Item

func matchIDs(t *testing.T, spec *Spec, expected ...int64) {
	t.Helper()

	var (
		err error
		f   *Filter
	)

	if f, err = Compile(spec); err != nil {
		t.Fatalf("Failed to compile filter: %s", err.Error())
	}

	var out = f.Apply(testItems())

	if len(out) != len(expected) {
		t.Fatalf("Expected %d Items, got %d (%v)",
			len(expected),
			len(out),
			out)
	}

	for i, id := range expected {
		if out[i].ID != id {
			t.Fatalf("Item %d should be #%d, is #%d",
				i,
				id,
				out[i].ID)
		}
	}
} // func matchIDs(t *testing.T, spec *Spec, expected ...int64)

func TestSpecValidate(t *testing.T) {
	type testCase struct {
		spec  Spec
		facet string
	}

	var testCases = []testCase{
		{
			spec: Spec{
				On:    day1,
				Since: day1,
			},
			facet: "dateRange",
		},
		{
			spec: Spec{
				Since: day1.Add(time.Hour),
				Until: day1,
			},
			facet: "dateRange",
		},
		{
			spec:  Spec{ReadState: ReadSeen + 1},
			facet: "readState",
		},
		{
			spec:  Spec{Sort: SortOldest + 1},
			facet: "sort",
		},
		{
			spec:  Spec{HighlightOnly: true},
			facet: "highlight",
		},
		{
			spec:  Spec{Limit: -1},
			facet: "limit",
		},
	}

	for _, c := range testCases {
		var (
			err error
			ve  *ValidationError
		)

		if err = c.spec.Validate(); err == nil {
			t.Errorf("Spec %#v should not validate", c.spec)
		} else if !errors.As(err, &ve) {
			t.Errorf("Expected a ValidationError, got %T", err)
		} else if ve.Facet != c.facet {
			t.Errorf("Expected facet %q to be rejected, got %q",
				c.facet,
				ve.Facet)
		}
	}

	var zero Spec

	if err := zero.Validate(); err != nil {
		t.Errorf("The zero Spec should validate: %s", err.Error())
	}
} // func TestSpecValidate(t *testing.T)

func TestFilterDefault(t *testing.T) {
	// The zero Spec matches everything except soft-deleted Items, in
	// ascending ID order.
	matchIDs(t, &Spec{}, 1, 2, 3, 5)
} // func TestFilterDefault(t *testing.T)

func TestFilterDeleted(t *testing.T) {
	matchIDs(t, &Spec{Deleted: true}, 4)
} // func TestFilterDeleted(t *testing.T)

func TestFilterSource(t *testing.T) {
	matchIDs(t, &Spec{SourceID: 2}, 3)
} // func TestFilterSource(t *testing.T)

func TestFilterGroups(t *testing.T) {
	// Any listed group qualifies.
	matchIDs(t, &Spec{Groups: []string{"politics"}}, 2, 5)
	matchIDs(t, &Spec{Groups: []string{"politics", "science"}}, 1, 2, 3, 5)
} // func TestFilterGroups(t *testing.T)

func TestFilterTags(t *testing.T) {
	// All listed tags are required.
	matchIDs(t, &Spec{Tags: []string{"physics"}}, 1, 3)
	matchIDs(t, &Spec{Tags: []string{"economy", "research"}}, 5)
	matchIDs(t, &Spec{Tags: []string{"economy", "physics"}})
} // func TestFilterTags(t *testing.T)

func TestFilterCombined(t *testing.T) {
	// Facets are a conjunction.
	matchIDs(t,
		&Spec{
			Groups: []string{"science"},
			Tags:   []string{"research"},
		},
		1, 5)
} // func TestFilterCombined(t *testing.T)

func TestFilterReadState(t *testing.T) {
	matchIDs(t, &Spec{ReadState: ReadUnread}, 1, 3)
	matchIDs(t, &Spec{ReadState: ReadSeen}, 2, 5)
} // func TestFilterReadState(t *testing.T)

func TestFilterStarred(t *testing.T) {
	var yes, no = true, false

	matchIDs(t, &Spec{Starred: &yes}, 3)
	matchIDs(t, &Spec{Starred: &no}, 1, 2, 5)
} // func TestFilterStarred(t *testing.T)

func TestFilterDateRange(t *testing.T) {
	matchIDs(t, &Spec{Since: day1.Add(time.Hour * 24)}, 2, 3, 5)
	matchIDs(t, &Spec{Until: day1.Add(time.Hour * 24)}, 1, 2, 5)
	matchIDs(t,
		&Spec{
			Since: day1.Add(time.Hour * 12),
			Until: day1.Add(time.Hour * 36),
		},
		2, 5)
	matchIDs(t, &Spec{On: day1.Add(time.Hour * 24)}, 2, 5)
} // func TestFilterDateRange(t *testing.T)

func TestFilterQuery(t *testing.T) {
	// The query searches title and body, case-insensitively.
	matchIDs(t, &Spec{Query: "COMET"}, 3)
	matchIDs(t, &Spec{Query: "earth"}, 3)
	matchIDs(t, &Spec{Query: "asteroid"})
} // func TestFilterQuery(t *testing.T)

func TestFilterHighlight(t *testing.T) {
	var (
		err  error
		f    *Filter
		spec = &Spec{HighlightWords: []string{"comet", "budget"}}
	)

	if f, err = Compile(spec); err != nil {
		t.Fatalf("Failed to compile filter: %s", err.Error())
	}

	var out = f.Apply(testItems())

	if len(out) != 4 {
		t.Fatalf("Highlighting alone should not filter, got %d Items",
			len(out))
	}

	for _, i := range out {
		var want = i.ID == 2 || i.ID == 3

		if i.Highlighted != want {
			t.Errorf("Item %d: Highlighted = %t, expected %t",
				i.ID,
				i.Highlighted,
				want)
		}
	}

	spec.HighlightOnly = true
	matchIDs(t, spec, 2, 3)
} // func TestFilterHighlight(t *testing.T)

func TestFilterSort(t *testing.T) {
	matchIDs(t, &Spec{Sort: SortIDDesc}, 5, 3, 2, 1)
	matchIDs(t, &Spec{Sort: SortTitle}, 1, 2, 3, 5)
	// Items 2 and 5 share a timestamp, the ID breaks the tie.
	matchIDs(t, &Spec{Sort: SortNewest}, 3, 2, 5, 1)
	matchIDs(t, &Spec{Sort: SortOldest}, 1, 2, 5, 3)
	// Most tags first.
	matchIDs(t, &Spec{Sort: SortTagCnt}, 1, 5, 2, 3)
	// Group name first, newest within the group.
	matchIDs(t, &Spec{Sort: SortGroupNewest}, 2, 5, 3, 1)
} // func TestFilterSort(t *testing.T)

func TestFilterLimit(t *testing.T) {
	matchIDs(t, &Spec{Sort: SortNewest, Limit: 2}, 3, 2)
} // func TestFilterLimit(t *testing.T)

func TestFilterSortStable(t *testing.T) {
	var (
		err error
		f   *Filter
	)

	if f, err = Compile(&Spec{Sort: SortNewest}); err != nil {
		t.Fatalf("Failed to compile filter: %s", err.Error())
	}

	var first = f.Apply(testItems())

	for n := 0; n < 8; n++ {
		var again = f.Apply(testItems())

		for i := range first {
			if again[i].ID != first[i].ID {
				t.Fatalf("Sort order is not deterministic: run %d, position %d",
					n,
					i)
			}
		}
	}
} // func TestFilterSortStable(t *testing.T)
