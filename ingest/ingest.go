// /home/hvpkod/go/src/github.com/hvpkod/rssel/ingest/ingest.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-14 18:02:11 hvpkod>

// Package ingest merges freshly fetched feed entries into the database,
// deciding for each entry whether it is new or a fresh copy of an Item we
// already have.
package ingest

import (
	"crypto/sha256"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// Result describes what ingesting one batch of entries did.
type Result struct {
	New       int
	Updated   int
	Unchanged int
	Skipped   int
}

func (r *Result) String() string {
	return fmt.Sprintf("{ New: %d, Updated: %d, Unchanged: %d, Skipped: %d }",
		r.New,
		r.Updated,
		r.Unchanged,
		r.Skipped)
}

// Ingestor merges raw feed entries into the database.
type Ingestor struct {
	log *log.Logger
	db  *database.Database
}

// New creates an Ingestor working on the given database connection.
func New(db *database.Database) (*Ingestor, error) {
	var (
		err error
		ing = &Ingestor{db: db}
	)

	if ing.log, err = common.GetLogger(logdomain.Ingest); err != nil {
		return nil, err
	}

	return ing, nil
} // func New(db *database.Database) (*Ingestor, error)

// IngestSource merges the given entries into the database as Items of the
// given Source. The whole batch is applied in one transaction.
//
// An entry whose identity is already known only has its mutable content
// fields refreshed; read/star/tag/deleted state is never touched by ingest.
// An archived Source is skipped entirely.
func (ing *Ingestor) IngestSource(src *model.Source, entries []model.RawEntry) (*Result, error) {
	var (
		err error
		res = new(Result)
	)

	if src.Archived {
		ing.log.Printf("[INFO] Source %s is archived, skipping %d entries\n",
			src.Title,
			len(entries))
		res.Skipped = len(entries)
		return res, nil
	}

	if err = ing.db.Begin(); err != nil {
		ing.log.Printf("[ERROR] Cannot start transaction for Source %s: %s\n",
			src.Title,
			err.Error())
		return nil, err
	}

	for idx := range entries {
		if err = ing.ingestEntry(src, &entries[idx], res); err != nil {
			if rbErr := ing.db.Rollback(); rbErr != nil {
				ing.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return nil, err
		}
	}

	if err = ing.db.Commit(); err != nil {
		ing.log.Printf("[ERROR] Cannot commit ingest of Source %s: %s\n",
			src.Title,
			err.Error())
		return nil, err
	}

	ing.log.Printf("[INFO] Source %s: %d new, %d updated, %d unchanged\n",
		src.Title,
		res.New,
		res.Updated,
		res.Unchanged)

	return res, nil
} // func (ing *Ingestor) IngestSource(src *model.Source, entries []model.RawEntry) (*Result, error)

func (ing *Ingestor) ingestEntry(src *model.Source, e *model.RawEntry, res *Result) error {
	var (
		err        error
		item       *model.Item
		candidates = IdentityCandidates(e)
	)

	for _, hash := range candidates {
		if item, err = ing.db.ItemGetByIdentity(src.ID, hash); err != nil {
			return err
		} else if item != nil {
			break
		}
	}

	if item == nil {
		item = &model.Item{
			SourceID:     src.ID,
			IdentityHash: candidates[0],
			Title:        e.Title,
			Link:         e.Link,
			Published:    e.Published,
			Content:      e.Content,
			Summary:      e.Summary,
		}

		if err = ing.db.ItemAdd(item); err != nil {
			return err
		}

		for _, hash := range candidates[1:] {
			if err = ing.db.ItemIdentityAdd(item, hash); err != nil {
				return err
			}
		}

		res.New++
		return nil
	}

	// The stored identity hash stays as it is, even if the feed now offers
	// a "better" identity for the entry. But every candidate the entry
	// offers is registered as a lookup identity, so the Item keeps matching
	// when the feed stops sending its guid later, or starts sending one.
	for _, hash := range candidates {
		if err = ing.db.ItemIdentityAdd(item, hash); err != nil {
			return err
		}
	}

	if item.Title == e.Title &&
		item.Link == e.Link &&
		common.TimeEqual(item.Published, e.Published) &&
		item.Content == e.Content &&
		item.Summary == e.Summary {
		res.Unchanged++
		return nil
	}

	item.Title = e.Title
	item.Link = e.Link
	item.Published = e.Published
	item.Content = e.Content
	item.Summary = e.Summary

	if err = ing.db.ItemUpdateContent(item); err != nil {
		return err
	}

	res.Updated++
	return nil
} // func (ing *Ingestor) ingestEntry(src *model.Source, e *model.RawEntry, res *Result) error

// IdentityCandidates returns the possible identity hashes of an entry, most
// specific first: the guid if the feed sent one, the normalized link, a hash
// of title and publication timestamp as a last resort.
//
// On ingest all candidates are probed against the database, so an entry whose
// guid disappears between fetches but whose link is unchanged still finds the
// Item it belongs to.
func IdentityCandidates(e *model.RawEntry) []string {
	var candidates = make([]string, 0, 3)

	if e.GUID != "" {
		candidates = append(candidates, identityHash("guid", e.GUID))
	}

	if e.Link != "" {
		candidates = append(candidates, identityHash("link", NormalizeLink(e.Link)))
	}

	candidates = append(candidates,
		identityHash("title", fmt.Sprintf("%s\x00%d", e.Title, e.Published.Unix())))

	return candidates
} // func IdentityCandidates(e *model.RawEntry) []string

func identityHash(kind, value string) string {
	var cksum = sha256.Sum256([]byte(kind + "\x00" + value))
	return fmt.Sprintf("%x", cksum)
} // func identityHash(kind, value string) string

// Query parameters that only exist to track the reader. They carry no
// identity, so they are stripped before a link is hashed.
var trackingParams = map[string]bool{
	"fbclid":       true,
	"gclid":        true,
	"mc_cid":       true,
	"mc_eid":       true,
	"ref":          true,
	"utm_campaign": true,
	"utm_content":  true,
	"utm_medium":   true,
	"utm_source":   true,
	"utm_term":     true,
}

// NormalizeLink canonicalizes an entry's link for use as a dedup key:
// scheme and host are lowercased, tracking parameters and the fragment are
// dropped, the remaining query parameters are sorted.
// A link that does not parse as a URL is returned unchanged.
func NormalizeLink(link string) string {
	var (
		err error
		u   *url.URL
	)

	if u, err = url.Parse(link); err != nil {
		return link
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	var q = u.Query()

	for key := range q {
		if trackingParams[strings.ToLower(key)] {
			q.Del(key)
		}
	}

	if len(q) == 0 {
		u.RawQuery = ""
	} else {
		// Encode sorts by key, which is exactly what we want.
		u.RawQuery = q.Encode()
	}

	return u.String()
} // func NormalizeLink(link string) string

// SourceError is one Source's fetch or parse failure within a batch.
type SourceError struct {
	Source *model.Source
	Kind   ErrorKind
	Err    error
}

func (se *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %s",
		se.Kind,
		se.Source.Title,
		se.Err.Error())
} // func (se *SourceError) Error() string

func (se *SourceError) Unwrap() error {
	return se.Err
} // func (se *SourceError) Unwrap() error

// ErrorKind says which stage of processing a Source failed at.
type ErrorKind uint8

// Fetching and parsing are the two stages that can fail per Source without
// affecting the rest of the batch.
const (
	FetchError ErrorKind = iota
	ParseError
)

func (k ErrorKind) String() string {
	switch k {
	case FetchError:
		return "FetchError"
	case ParseError:
		return "ParseError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
} // func (k ErrorKind) String() string

// BatchResult aggregates the outcome of ingesting several Sources. Failures
// are collected per Source, one bad feed never aborts the rest of the batch.
type BatchResult struct {
	PerSource map[int64]*Result
	Errors    []*SourceError
}

// NewBatchResult creates an empty BatchResult.
func NewBatchResult() *BatchResult {
	return &BatchResult{
		PerSource: make(map[int64]*Result),
	}
} // func NewBatchResult() *BatchResult

// Add records one Source's ingest Result.
func (br *BatchResult) Add(src *model.Source, res *Result) {
	br.PerSource[src.ID] = res
} // func (br *BatchResult) Add(src *model.Source, res *Result)

// Fail records one Source's failure.
func (br *BatchResult) Fail(src *model.Source, kind ErrorKind, err error) {
	br.Errors = append(br.Errors, &SourceError{
		Source: src,
		Kind:   kind,
		Err:    err,
	})
} // func (br *BatchResult) Fail(src *model.Source, kind ErrorKind, err error)

// Totals sums up the per-Source Results.
func (br *BatchResult) Totals() Result {
	var total Result

	for _, res := range br.PerSource {
		total.New += res.New
		total.Updated += res.Updated
		total.Unchanged += res.Unchanged
		total.Skipped += res.Skipped
	}

	return total
} // func (br *BatchResult) Totals() Result

// SortedErrors returns the collected failures ordered by Source ID, for
// stable reporting.
func (br *BatchResult) SortedErrors() []*SourceError {
	var errs = make([]*SourceError, len(br.Errors))
	copy(errs, br.Errors)

	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Source.ID < errs[j].Source.ID
	})

	return errs
} // func (br *BatchResult) SortedErrors() []*SourceError
