// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_filter.go
// -*- mode: go; coding: utf-8; -*-
// Created on 07. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 21:44:02 hvpkod>

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/wordlist"
)

// filterFlags are the query facets shared by every read command. Each
// command binds them once, buildSpec turns them into a filter.Spec.
type filterFlags struct {
	groups        []string
	tags          []string
	source        string
	dateField     string
	since         string
	until         string
	on            string
	read          string
	starred       string
	deleted       bool
	query         string
	highlightOnly bool
	sortKey       string
	limit         int
}

func (ff *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&ff.groups, "group", "g", nil,
		"Only items whose source is in any of these groups")
	cmd.Flags().StringSliceVarP(&ff.tags, "tag", "t", nil,
		"Only items carrying all of these tags")
	cmd.Flags().StringVarP(&ff.source, "source", "s", "",
		"Only items of this source (id or url)")
	cmd.Flags().StringVar(&ff.dateField, "date-field", "published",
		"Which timestamp date filters apply to (published|created)")
	cmd.Flags().StringVar(&ff.since, "since", "",
		"Only items on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.until, "until", "",
		"Only items on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.on, "on", "",
		"Only items from exactly this date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&ff.read, "read", "r", "any",
		"Filter by read state (unread|read|any)")
	cmd.Flags().StringVar(&ff.starred, "starred", "any",
		"Filter by star (yes|no|any)")
	cmd.Flags().BoolVar(&ff.deleted, "deleted", false,
		"Show soft-deleted items instead of live ones")
	cmd.Flags().StringVarP(&ff.query, "query", "q", "",
		"Only items whose title or body contains this string")
	cmd.Flags().BoolVar(&ff.highlightOnly, "highlight-only", false,
		"Only items matching a highlight word")
	cmd.Flags().StringVar(&ff.sortKey, "sort", "id",
		"Sort order (id|id-desc|title|group|tags|newest|oldest)")
	cmd.Flags().IntVarP(&ff.limit, "limit", "n", 0,
		"Return at most this many items, 0 for all")
} // func (ff *filterFlags) bind(cmd *cobra.Command)

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	var stamp, err = time.ParseInLocation(time.DateOnly, s, time.Local)

	if err != nil {
		return time.Time{}, &filter.ValidationError{
			Facet: "dateRange",
			Msg:   fmt.Sprintf("cannot parse date %q, expected YYYY-MM-DD", s),
		}
	}

	return stamp, nil
} // func parseDay(s string) (time.Time, error)

// buildSpec turns the bound flags into a validated filter.Spec, with the
// highlight words loaded from the highlight file.
func (ff *filterFlags) buildSpec() (*filter.Spec, error) {
	var (
		err  error
		spec = &filter.Spec{
			Groups:        ff.groups,
			Tags:          ff.tags,
			Deleted:       ff.deleted,
			Query:         ff.query,
			HighlightOnly: ff.highlightOnly,
			Limit:         ff.limit,
		}
	)

	if ff.source != "" {
		if id, perr := strconv.ParseInt(ff.source, 10, 64); perr == nil {
			spec.SourceID = id
		} else {
			spec.SourceURL = ff.source
		}
	}

	if spec.DateField, err = filter.ParseDateField(ff.dateField); err != nil {
		return nil, err
	} else if spec.ReadState, err = filter.ParseReadState(ff.read); err != nil {
		return nil, err
	} else if spec.Sort, err = filter.ParseSortKey(ff.sortKey); err != nil {
		return nil, err
	}

	switch ff.starred {
	case "", "any":
		// leave nil
	case "yes", "true", "on":
		var yes = true
		spec.Starred = &yes
	case "no", "false", "off":
		var no = false
		spec.Starred = &no
	default:
		return nil, &filter.ValidationError{
			Facet: "starred",
			Msg:   fmt.Sprintf("unknown starred filter %q", ff.starred),
		}
	}

	if spec.Since, err = parseDay(ff.since); err != nil {
		return nil, err
	} else if spec.On, err = parseDay(ff.on); err != nil {
		return nil, err
	} else if spec.Until, err = parseDay(ff.until); err != nil {
		return nil, err
	}

	// Date filters are day-granular, an until or on date covers its
	// whole day.
	if !spec.Until.IsZero() {
		spec.Until = spec.Until.AddDate(0, 0, 1).Add(-time.Second)
	}

	var words wordlist.Set

	if words, err = wordlist.Load(common.Path(path.Highlights)); err != nil {
		return nil, err
	}

	spec.HighlightWords = words.Words()

	if err = spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
} // func (ff *filterFlags) buildSpec() (*filter.Spec, error)
