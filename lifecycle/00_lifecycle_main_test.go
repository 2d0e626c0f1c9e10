// /home/hvpkod/go/src/github.com/hvpkod/rssel/lifecycle/00_lifecycle_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 00:31:47 hvpkod>

package lifecycle

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/model"
)

var (
	db   *database.Database
	mgr  *Manager
	src1 *model.Source
	src2 *model.Source

	// Items of src1, set up for the purge tests:
	// oldRead is purged by the cutoff, oldStarred and oldUnread are
	// protected, recent is too young, junk is soft-deleted.
	oldRead    *model.Item
	oldStarred *model.Item
	oldUnread  *model.Item
	recent     *model.Item
	junk       *model.Item

	// Items of src2, for the archive and removal tests.
	plain  *model.Item
	pinned *model.Item
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/rssel_lifecycle_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if err = prepare(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Failed to prepare database: %s\n",
			err.Error(),
		)
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

func mkItem(src *model.Source, idx int, published time.Time) (*model.Item, error) {
	var (
		err  error
		item = &model.Item{
			SourceID:     src.ID,
			IdentityHash: fmt.Sprintf("%060x%04d", src.ID, idx),
			Title: fmt.Sprintf("Item %d/%d",
				src.ID,
				idx),
			Link: fmt.Sprintf("https://www.example.org/news/%03d/%03d.html",
				src.ID,
				idx),
			Published: published,
		}
	)

	if err = db.ItemAdd(item); err != nil {
		return nil, err
	}

	return item, nil
} // func mkItem(src *model.Source, idx int, published time.Time) (*model.Item, error)

func prepare() error {
	var (
		err error
		now = time.Now()
		old = now.AddDate(0, 0, -100)
		tag *model.Tag
	)

	if db, err = database.Open(common.Path(path.Database)); err != nil {
		return err
	}

	src1 = &model.Source{
		Title: "First Feed",
		URL:   "https://www.example.org/one/feed.rss",
	}
	src2 = &model.Source{
		Title:  "Second Feed",
		URL:    "https://www.example.org/two/feed.rss",
		Groups: []string{"news"},
	}

	if err = db.SourceAdd(src1); err != nil {
		return err
	} else if err = db.SourceAdd(src2); err != nil {
		return err
	}

	if oldRead, err = mkItem(src1, 1, old); err != nil {
		return err
	} else if err = db.ItemSetRead(oldRead, true); err != nil {
		return err
	}

	if oldStarred, err = mkItem(src1, 2, old); err != nil {
		return err
	} else if err = db.ItemSetRead(oldStarred, true); err != nil {
		return err
	} else if err = db.ItemSetStarred(oldStarred, true); err != nil {
		return err
	}

	if oldUnread, err = mkItem(src1, 3, old); err != nil {
		return err
	}

	if recent, err = mkItem(src1, 4, now.AddDate(0, 0, -1)); err != nil {
		return err
	} else if err = db.ItemSetRead(recent, true); err != nil {
		return err
	}

	if junk, err = mkItem(src1, 5, old); err != nil {
		return err
	} else if err = db.ItemSetDeleted(junk, true); err != nil {
		return err
	}

	if plain, err = mkItem(src2, 1, now); err != nil {
		return err
	}

	if pinned, err = mkItem(src2, 2, now); err != nil {
		return err
	} else if err = db.ItemSetStarred(pinned, true); err != nil {
		return err
	}

	// A tag only the purge victim carries, and one that survives.
	if tag, err = db.TagEnsure("fleeting"); err != nil {
		return err
	} else if err = db.TagLinkAdd(oldRead, tag, false); err != nil {
		return err
	}

	if tag, err = db.TagEnsure("evergreen"); err != nil {
		return err
	} else if err = db.TagLinkAdd(oldUnread, tag, false); err != nil {
		return err
	}

	mgr, err = NewManager(db)
	return err
} // func prepare() error
