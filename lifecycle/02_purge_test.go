// /home/hvpkod/go/src/github.com/hvpkod/rssel/lifecycle/02_purge_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 00:58:12 hvpkod>

package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/model"
)

func purgeCrit() *PurgeCriteria {
	return &PurgeCriteria{
		Cutoff:   time.Now().AddDate(0, 0, -30),
		SourceID: src1.ID,
	}
} // func purgeCrit() *PurgeCriteria

func TestPurgeDryRun(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		res *PurgeResult
	)

	if res, err = mgr.Purge(purgeCrit(), true); err != nil {
		t.Fatalf("Purge dry run failed: %s", err.Error())
	} else if res.Cnt() != 2 {
		t.Fatalf("Dry run should name 2 victims, names %v", res.IDs)
	}

	var expected = map[int64]bool{
		oldRead.ID: true,
		junk.ID:    true,
	}

	for _, id := range res.IDs {
		if !expected[id] {
			t.Errorf("Item %d should not be a purge victim", id)
		}
	}

	// A dry run must leave everything in place.
	for _, id := range res.IDs {
		var i *model.Item

		if i, err = db.ItemGetByID(id); err != nil {
			t.Fatalf("Failed to look up Item %d: %s",
				id,
				err.Error())
		} else if i == nil {
			t.Fatalf("The dry run removed Item %d", id)
		}
	}
} // func TestPurgeDryRun(t *testing.T)

func TestPurge(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err error
		res *PurgeResult
	)

	if res, err = mgr.Purge(purgeCrit(), false); err != nil {
		t.Fatalf("Purge failed: %s", err.Error())
	} else if res.Cnt() != 2 {
		t.Fatalf("Purge should remove 2 Items, removed %v", res.IDs)
	} else if res.TagsCleaned != 1 {
		t.Fatalf("Purge should clean 1 orphaned Tag, cleaned %d",
			res.TagsCleaned)
	}

	// The victims are gone for good, the protected Items remain.
	type expectation struct {
		item  *model.Item
		alive bool
	}

	var expectations = []expectation{
		{item: oldRead},
		{item: junk},
		{item: oldStarred, alive: true},
		{item: oldUnread, alive: true},
		{item: recent, alive: true},
	}

	for _, e := range expectations {
		var i *model.Item

		if i, err = db.ItemGetByID(e.item.ID); err != nil {
			t.Fatalf("Failed to look up Item %d: %s",
				e.item.ID,
				err.Error())
		} else if e.alive && i == nil {
			t.Errorf("Item %d should have survived the purge", e.item.ID)
		} else if !e.alive && i != nil {
			t.Errorf("Item %d should be gone: %s",
				e.item.ID,
				i)
		}
	}

	// The tag that only a victim carried is gone, the other one stays.
	var all []model.Tag

	if all, err = db.TagGetAll(); err != nil {
		t.Fatalf("Failed to load all Tags: %s", err.Error())
	}

	var names = make(map[string]bool, len(all))

	for idx := range all {
		names[all[idx].Name] = true
	}

	if names["fleeting"] {
		t.Error("The orphaned Tag should be gone")
	}

	if !names["evergreen"] {
		t.Error("A Tag still in use got dropped")
	}

	// A second run finds nothing left to do.
	if res, err = mgr.Purge(purgeCrit(), false); err != nil {
		t.Fatalf("Re-running the purge failed: %s", err.Error())
	} else if res.Cnt() != 0 {
		t.Fatalf("Re-running the purge found new victims: %v", res.IDs)
	}
} // func TestPurge(t *testing.T)

func TestArchiveGroup(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err    error
		srcCnt int
		nfe    *NotFoundError
		fresh  *model.Source
	)

	if srcCnt, _, err = mgr.ArchiveGroup("news", false, false); err != nil {
		t.Fatalf("Failed to archive group: %s", err.Error())
	} else if srcCnt != 1 {
		t.Fatalf("Archiving the group should touch 1 Source, touched %d",
			srcCnt)
	} else if fresh, err = db.SourceGetByID(src2.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			src2.ID,
			err.Error())
	} else if !fresh.Archived {
		t.Fatalf("Source %d should be archived now", src2.ID)
	}

	if _, _, err = mgr.ArchiveGroup("news", false, true); err != nil {
		t.Fatalf("Failed to un-archive group: %s", err.Error())
	} else if fresh, err = db.SourceGetByID(src2.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			src2.ID,
			err.Error())
	} else if fresh.Archived {
		t.Fatalf("Source %d should not be archived anymore", src2.ID)
	}

	if _, _, err = mgr.ArchiveGroup("no-such-group", false, false); err == nil {
		t.Fatal("Archiving an unknown group should fail")
	} else if !errors.As(err, &nfe) {
		t.Fatalf("Expected a NotFoundError, got %T: %s",
			err,
			err.Error())
	}
} // func TestArchiveGroup(t *testing.T)

func TestArchiveSource(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err   error
		cnt   int
		fresh *model.Source
		i     *model.Item
	)

	if cnt, err = mgr.ArchiveSource(src2.URL, true, false); err != nil {
		t.Fatalf("Failed to archive Source %d: %s",
			src2.ID,
			err.Error())
	} else if cnt != 1 {
		t.Fatalf("Archiving should soft-delete 1 Item, deleted %d", cnt)
	} else if fresh, err = db.SourceGetByID(src2.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			src2.ID,
			err.Error())
	} else if !fresh.Archived {
		t.Fatalf("Source %d should be archived now", src2.ID)
	}

	// The starred Item survives, the plain one is soft-deleted but still
	// in the database.
	if i, err = db.ItemGetByID(pinned.ID); err != nil {
		t.Fatalf("Failed to look up Item %d: %s",
			pinned.ID,
			err.Error())
	} else if i == nil || i.Deleted {
		t.Fatalf("Starred Item %d should be untouched", pinned.ID)
	}

	if i, err = db.ItemGetByID(plain.ID); err != nil {
		t.Fatalf("Failed to look up Item %d: %s",
			plain.ID,
			err.Error())
	} else if i == nil {
		t.Fatalf("Archiving should not purge Item %d", plain.ID)
	} else if !i.Deleted {
		t.Fatalf("Item %d should be soft-deleted now", plain.ID)
	}

	if _, err = mgr.ArchiveSource(src2.URL, false, true); err != nil {
		t.Fatalf("Failed to un-archive Source %d: %s",
			src2.ID,
			err.Error())
	} else if fresh, err = db.SourceGetByID(src2.ID); err != nil {
		t.Fatalf("Failed to reload Source %d: %s",
			src2.ID,
			err.Error())
	} else if fresh.Archived {
		t.Fatalf("Source %d should not be archived anymore", src2.ID)
	}
} // func TestArchiveSource(t *testing.T)

func TestRemoveSource(t *testing.T) {
	if mgr == nil {
		t.SkipNow()
	}

	var (
		err   error
		stats *database.SourceRemoveStats
	)

	if stats, err = mgr.RemoveSourceDryRun(src2.URL); err != nil {
		t.Fatalf("Dry run for removing Source %d failed: %s",
			src2.ID,
			err.Error())
	} else if stats.Items != 2 {
		t.Fatalf("Removing Source %d should delete 2 Items, dry run says %d",
			src2.ID,
			stats.Items)
	}

	if err = mgr.RemoveSource(src2.URL); err != nil {
		t.Fatalf("Failed to remove Source %d: %s",
			src2.ID,
			err.Error())
	}

	var nfe *NotFoundError

	if _, err = mgr.SourceResolve(src2.URL); err == nil {
		t.Fatal("The removed Source should not resolve anymore")
	} else if !errors.As(err, &nfe) {
		t.Fatalf("Expected a NotFoundError, got %T: %s",
			err,
			err.Error())
	}

	// Its Items are gone with it.
	var i *model.Item

	if i, err = db.ItemGetByID(pinned.ID); err != nil {
		t.Fatalf("Failed to look up Item %d: %s",
			pinned.ID,
			err.Error())
	} else if i != nil {
		t.Fatalf("Item %d of the removed Source is still there: %s",
			pinned.ID,
			i)
	}
} // func TestRemoveSource(t *testing.T)
