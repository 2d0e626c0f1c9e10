// /home/hvpkod/go/src/github.com/hvpkod/rssel/filter/filter.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-21 22:19:37 hvpkod>

// Package filter turns a declarative filter specification into a predicate
// and sort order over Items.
//
// Every read path of the application (listing, picking, export, statistics)
// goes through this package, so facet semantics exist in exactly one place.
package filter

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// ReadState narrows a query by an Item's read flag.
type ReadState uint8

// An unset ReadState matches everything.
const (
	ReadAny ReadState = iota
	ReadUnread
	ReadSeen
)

func (rs ReadState) String() string {
	switch rs {
	case ReadAny:
		return "any"
	case ReadUnread:
		return "unread"
	case ReadSeen:
		return "read"
	default:
		return fmt.Sprintf("ReadState(%d)", rs)
	}
} // func (rs ReadState) String() string

// ParseReadState parses a ReadState from its string form.
func ParseReadState(s string) (ReadState, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return ReadAny, nil
	case "unread":
		return ReadUnread, nil
	case "read":
		return ReadSeen, nil
	default:
		return ReadAny, &ValidationError{
			Facet: "readState",
			Msg:   fmt.Sprintf("unknown read state %q", s),
		}
	}
} // func ParseReadState(s string) (ReadState, error)

// DateField says which of an Item's two timestamps a date facet applies to.
type DateField uint8

// Published is when the feed says the entry appeared, Created is when we
// first saw it.
const (
	DatePublished DateField = iota
	DateCreated
)

func (df DateField) String() string {
	switch df {
	case DatePublished:
		return "published"
	case DateCreated:
		return "created"
	default:
		return fmt.Sprintf("DateField(%d)", df)
	}
} // func (df DateField) String() string

// ParseDateField parses a DateField from its string form.
func ParseDateField(s string) (DateField, error) {
	switch strings.ToLower(s) {
	case "", "published":
		return DatePublished, nil
	case "created":
		return DateCreated, nil
	default:
		return DatePublished, &ValidationError{
			Facet: "dateRange",
			Msg:   fmt.Sprintf("unknown date field %q", s),
		}
	}
} // func ParseDateField(s string) (DateField, error)

// SortKey identifies one of the supported orderings.
type SortKey uint8

// All orderings break ties by ascending Item ID, so the result order is
// fully deterministic.
const (
	SortIDAsc SortKey = iota
	SortIDDesc
	SortTitle
	SortGroupNewest
	SortTagCnt
	SortNewest
	SortOldest
)

func (sk SortKey) String() string {
	switch sk {
	case SortIDAsc:
		return "id"
	case SortIDDesc:
		return "id-desc"
	case SortTitle:
		return "title"
	case SortGroupNewest:
		return "group"
	case SortTagCnt:
		return "tags"
	case SortNewest:
		return "newest"
	case SortOldest:
		return "oldest"
	default:
		return fmt.Sprintf("SortKey(%d)", sk)
	}
} // func (sk SortKey) String() string

// ParseSortKey parses a SortKey from its string form.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "", "id":
		return SortIDAsc, nil
	case "id-desc":
		return SortIDDesc, nil
	case "title":
		return SortTitle, nil
	case "group":
		return SortGroupNewest, nil
	case "tags":
		return SortTagCnt, nil
	case "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	default:
		return SortIDAsc, &ValidationError{
			Facet: "sort",
			Msg:   fmt.Sprintf("unknown sort key %q", s),
		}
	}
} // func ParseSortKey(s string) (SortKey, error)

// ValidationError says a filter specification does not make sense.
type ValidationError struct {
	Facet string
	Msg   string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter (%s): %s",
		ve.Facet,
		ve.Msg)
} // func (ve *ValidationError) Error() string

// Spec is a declarative filter specification. Every facet is optional, the
// zero value matches all non-deleted Items in ID order.
//
// Facets combine as a conjunction: an Item matches only if every supplied
// facet matches. Within Groups the match is OR (any listed group), Tags is
// the exception, an Item must carry all listed tags.
type Spec struct {
	Groups         []string
	Tags           []string
	SourceID       int64
	SourceURL      string
	DateField      DateField
	Since          time.Time
	Until          time.Time
	On             time.Time
	ReadState      ReadState
	Starred        *bool
	Deleted        bool
	Query          string
	HighlightWords []string
	HighlightOnly  bool
	Sort           SortKey
	Limit          int
}

// Validate checks the Spec for contradictions. It is called once at the
// boundary, a validated Spec always compiles.
func (spec *Spec) Validate() error {
	if !spec.On.IsZero() && (!spec.Since.IsZero() || !spec.Until.IsZero()) {
		return &ValidationError{
			Facet: "dateRange",
			Msg:   "on cannot be combined with since/until",
		}
	}

	if !spec.Since.IsZero() && !spec.Until.IsZero() && spec.Until.Before(spec.Since) {
		return &ValidationError{
			Facet: "dateRange",
			Msg:   "until lies before since",
		}
	}

	if spec.DateField > DateCreated {
		return &ValidationError{
			Facet: "dateRange",
			Msg:   fmt.Sprintf("unknown date field %d", spec.DateField),
		}
	}

	if spec.ReadState > ReadSeen {
		return &ValidationError{
			Facet: "readState",
			Msg:   fmt.Sprintf("unknown read state %d", spec.ReadState),
		}
	}

	if spec.Sort > SortOldest {
		return &ValidationError{
			Facet: "sort",
			Msg:   fmt.Sprintf("unknown sort key %d", spec.Sort),
		}
	}

	if spec.HighlightOnly && len(spec.HighlightWords) == 0 {
		return &ValidationError{
			Facet: "highlight",
			Msg:   "highlightOnly without highlight words",
		}
	}

	if spec.Limit < 0 {
		return &ValidationError{
			Facet: "limit",
			Msg:   fmt.Sprintf("negative limit %d", spec.Limit),
		}
	}

	return nil
} // func (spec *Spec) Validate() error

// Filter is a compiled Spec.
type Filter struct {
	spec  *Spec
	words []string
}

// Compile validates the Spec and turns it into a Filter.
func Compile(spec *Spec) (*Filter, error) {
	var err error

	if err = spec.Validate(); err != nil {
		return nil, err
	}

	var f = &Filter{
		spec:  spec,
		words: make([]string, len(spec.HighlightWords)),
	}

	for idx, w := range spec.HighlightWords {
		f.words[idx] = strings.ToLower(w)
	}

	return f, nil
} // func Compile(spec *Spec) (*Filter, error)

// Match returns true if the Item satisfies every facet of the Spec. As a
// side effect it sets the Item's Highlighted flag when highlight words are
// configured.
func (f *Filter) Match(i *model.Item) bool {
	var spec = f.spec

	if len(f.words) > 0 {
		var text = strings.ToLower(i.Title + "\n" + i.BodyText())

		i.Highlighted = false
		for _, w := range f.words {
			if strings.Contains(text, w) {
				i.Highlighted = true
				break
			}
		}
	}

	if i.Deleted != spec.Deleted {
		return false
	}

	if spec.SourceID != 0 && i.SourceID != spec.SourceID {
		return false
	}

	if len(spec.Groups) > 0 {
		var found bool

		for _, g := range spec.Groups {
			for _, ig := range i.Groups {
				if g == ig {
					found = true
					break
				}
			}
		}

		if !found {
			return false
		}
	}

	for _, t := range spec.Tags {
		if !i.HasTag(t) {
			return false
		}
	}

	var stamp time.Time

	switch spec.DateField {
	case DatePublished:
		stamp = i.Published
	case DateCreated:
		stamp = i.Created
	}

	if !spec.On.IsZero() {
		var (
			y1, m1, d1 = spec.On.Date()
			y2, m2, d2 = stamp.Date()
		)

		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	} else {
		if !spec.Since.IsZero() && stamp.Before(spec.Since) {
			return false
		}
		if !spec.Until.IsZero() && stamp.After(spec.Until) {
			return false
		}
	}

	switch spec.ReadState {
	case ReadUnread:
		if i.Read {
			return false
		}
	case ReadSeen:
		if !i.Read {
			return false
		}
	}

	if spec.Starred != nil && i.Starred != *spec.Starred {
		return false
	}

	if spec.Query != "" {
		var (
			needle = strings.ToLower(spec.Query)
			text   = strings.ToLower(i.Title + "\n" + i.BodyText())
		)

		if !strings.Contains(text, needle) {
			return false
		}
	}

	if spec.HighlightOnly && !i.Highlighted {
		return false
	}

	return true
} // func (f *Filter) Match(i *model.Item) bool

// Less is the compiled sort order, ties always fall back to ascending ID.
func (f *Filter) Less(a, b *model.Item) bool {
	switch f.spec.Sort {
	case SortIDAsc:
		return a.ID < b.ID
	case SortIDDesc:
		return a.ID > b.ID
	case SortTitle:
		var ta, tb = strings.ToLower(a.Title), strings.ToLower(b.Title)
		if ta != tb {
			return ta < tb
		}
	case SortGroupNewest:
		var ga, gb = firstGroup(a), firstGroup(b)
		if ga != gb {
			return ga < gb
		}
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
	case SortTagCnt:
		if len(a.Tags) != len(b.Tags) {
			return len(a.Tags) > len(b.Tags)
		}
	case SortNewest:
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
	case SortOldest:
		if !a.Published.Equal(b.Published) {
			return a.Published.Before(b.Published)
		}
	}

	return a.ID < b.ID
} // func (f *Filter) Less(a, b *model.Item) bool

func firstGroup(i *model.Item) string {
	if len(i.Groups) == 0 {
		// Sorts after every named group.
		return "￿"
	}
	return i.Groups[0]
} // func firstGroup(i *model.Item) string

// Apply filters, sorts, and truncates the given Items.
func (f *Filter) Apply(items []model.Item) []model.Item {
	var out = make([]model.Item, 0, len(items))

	for idx := range items {
		if f.Match(&items[idx]) {
			out = append(out, items[idx])
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return f.Less(&out[i], &out[j])
	})

	if f.spec.Limit > 0 && len(out) > f.spec.Limit {
		out = out[:f.spec.Limit]
	}

	return out
} // func (f *Filter) Apply(items []model.Item) []model.Item

// Engine runs filter specifications against the database.
type Engine struct {
	log *log.Logger
	db  *database.Database
}

// NewEngine creates an Engine working on the given database connection.
func NewEngine(db *database.Database) (*Engine, error) {
	var (
		err error
		eng = &Engine{db: db}
	)

	if eng.log, err = common.GetLogger(logdomain.Filter); err != nil {
		return nil, err
	}

	return eng, nil
} // func NewEngine(db *database.Database) (*Engine, error)

// Select loads all Items and returns the ones matching the Spec, in the
// Spec's order. A SourceURL facet is resolved to the Source's ID first.
func (eng *Engine) Select(spec *Spec) ([]model.Item, error) {
	var (
		err error
		f   *Filter
	)

	if spec.SourceURL != "" && spec.SourceID == 0 {
		var src *model.Source

		if src, err = eng.db.SourceGetByURL(spec.SourceURL); err != nil {
			return nil, err
		} else if src == nil {
			return nil, &ValidationError{
				Facet: "source",
				Msg:   fmt.Sprintf("no source with URL %q", spec.SourceURL),
			}
		}

		spec.SourceID = src.ID
	}

	if f, err = Compile(spec); err != nil {
		eng.log.Printf("[ERROR] Cannot compile filter: %s\n",
			err.Error())
		return nil, err
	}

	var items []model.Item

	if items, err = eng.db.ItemGetAll(); err != nil {
		return nil, err
	}

	return f.Apply(items), nil
} // func (eng *Engine) Select(spec *Spec) ([]model.Item, error)
