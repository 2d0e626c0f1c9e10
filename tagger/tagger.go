// /home/hvpkod/go/src/github.com/hvpkod/rssel/tagger/tagger.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-14 18:40:56 hvpkod>

// Package tagger suggests tags for news items.
//
// There is no cleverness here, just word frequency over the item's text,
// with stopwords removed. The important property is determinism: the same
// text and the same settings always yield the same ordered tag list, so
// re-running the tagger is idempotent.
package tagger

import (
	"log"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/blicero/krylib"
	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// minWordLen is the length below which a token is never considered a tag
// candidate, no matter how often it occurs.
const minWordLen = 3

// titleWeight is how much more a word occurring in the title counts compared
// to the same word in the body.
const titleWeight = 2

// Config holds the tagger's settings. It is immutable once handed to the
// Tagger, callers wanting different settings create a new Config.
type Config struct {
	Stopwords     map[string]bool
	MaxTags       int
	IncludeDomain bool
}

// Tagger computes and stores suggested tags for Items.
type Tagger struct {
	log *log.Logger
	db  *database.Database
	cfg Config
}

// New creates a Tagger with the given settings, working on the given
// database connection.
func New(db *database.Database, cfg Config) (*Tagger, error) {
	var (
		err error
		tag = &Tagger{
			db:  db,
			cfg: cfg,
		}
	)

	if tag.log, err = common.GetLogger(logdomain.Tagger); err != nil {
		return nil, err
	}

	return tag, nil
} // func New(db *database.Database, cfg Config) (*Tagger, error)

// Suggest computes the tags for the given Item without touching the
// database. The body is stripped of HTML first, markup must never leak
// into the tag set.
func (t *Tagger) Suggest(i *model.Item) []string {
	var tags = Suggest(i.Title, i.Plaintext(), t.cfg)

	if t.cfg.IncludeDomain {
		if domain := linkDomain(i.Link); domain != "" {
			tags = append(tags, domain)
		}
	}

	return tags
} // func (t *Tagger) Suggest(i *model.Item) []string

// AutoTag computes the Item's tags and stores them, replacing any tags a
// previous tagger run attached. Tags the user added by hand are left alone.
func (t *Tagger) AutoTag(i *model.Item) ([]string, error) {
	var (
		err  error
		tags = t.Suggest(i)
	)

	if err = t.db.Begin(); err != nil {
		t.log.Printf("[ERROR] Cannot start transaction for Item %d: %s\n",
			i.ID,
			err.Error())
		return nil, err
	}

	if err = t.db.TagLinkDeleteAuto(i); err != nil {
		goto ROLLBACK
	}

	for _, name := range tags {
		var tg *model.Tag

		if tg, err = t.db.TagEnsure(name); err != nil {
			goto ROLLBACK
		} else if err = t.db.TagLinkAdd(i, tg, true); err != nil {
			goto ROLLBACK
		}
	}

	if err = t.db.Commit(); err != nil {
		t.log.Printf("[ERROR] Cannot commit tags for Item %d: %s\n",
			i.ID,
			err.Error())
		return nil, err
	}

	return tags, nil

ROLLBACK:
	if rbErr := t.db.Rollback(); rbErr != nil {
		t.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
			rbErr.Error())
	}

	return nil, err
} // func (t *Tagger) AutoTag(i *model.Item) ([]string, error)

// Suggest computes tags from the given title and body text.
//
// Tokens are split on non-letter boundaries, so words keep their diacritics,
// lowercased, and filtered against the stopword set and the minimum length.
// Words in the title count double. Candidates are ranked by descending
// count, ties broken by lexical order, and the list is cut off at
// cfg.MaxTags. Lowering MaxTags yields a prefix of the longer list.
func Suggest(title, body string, cfg Config) []string {
	var counts = make(map[string]int)

	countTokens(counts, title, titleWeight, cfg.Stopwords)
	countTokens(counts, body, 1, cfg.Stopwords)

	var words = make([]string, 0, len(counts))

	for w := range counts {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	return words[:krylib.Min(cfg.MaxTags, len(words))]
} // func Suggest(title, body string, cfg Config) []string

func countTokens(counts map[string]int, text string, weight int, stopwords map[string]bool) {
	var tokens = strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	for _, tok := range tokens {
		tok = strings.ToLower(tok)

		if len([]rune(tok)) < minWordLen || stopwords[tok] {
			continue
		}

		counts[tok] += weight
	}
} // func countTokens(counts map[string]int, text string, weight int, stopwords map[string]bool)

func linkDomain(link string) string {
	var (
		err error
		u   *url.URL
	)

	if u, err = url.Parse(link); err != nil || u.Host == "" {
		return ""
	}

	var host = strings.ToLower(u.Hostname())

	return strings.TrimPrefix(host, "www.")
} // func linkDomain(link string) string
