// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/04_db_tag_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 19. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-30 21:58:33 hvpkod>

package database

import (
	"testing"

	"github.com/hvpkod/rssel/model"
)

func TestTagEnsure(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var names = []string{"politics", "science", "weather", "sports"}

	tags = make([]*model.Tag, 0, len(names))

	for _, name := range names {
		var (
			err error
			tag *model.Tag
		)

		if tag, err = db.TagEnsure(name); err != nil {
			t.Fatalf("Failed to create Tag %q: %s",
				name,
				err.Error())
		} else if tag.ID == 0 {
			t.Fatalf("Tag %q has no ID", name)
		}

		tags = append(tags, tag)
	}

	// Ensuring an existing Tag must return the same record, not a new one.
	for idx, name := range names {
		var (
			err error
			tag *model.Tag
		)

		if tag, err = db.TagEnsure(name); err != nil {
			t.Fatalf("Failed to re-ensure Tag %q: %s",
				name,
				err.Error())
		} else if tag.ID != tags[idx].ID {
			t.Fatalf("Re-ensuring Tag %q returned a new ID: expected %d, got %d",
				name,
				tags[idx].ID,
				tag.ID)
		}
	}
} // func TestTagEnsure(t *testing.T)

func TestTagLinkAdd(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	// Attach tag 0 to every fourth Item manually, tag 1 to every eighth
	// automatically.
	for idx, item := range items {
		var err error

		if idx%4 == 0 {
			if err = db.TagLinkAdd(item, tags[0], false); err != nil {
				t.Fatalf("Failed to tag Item %d with %q: %s",
					item.ID,
					tags[0].Name,
					err.Error())
			}
		}

		if idx%8 == 0 {
			if err = db.TagLinkAdd(item, tags[1], true); err != nil {
				t.Fatalf("Failed to auto-tag Item %d with %q: %s",
					item.ID,
					tags[1].Name,
					err.Error())
			}
		}
	}
} // func TestTagLinkAdd(t *testing.T)

func TestTagLinkGetByItem(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		names []string
	)

	if names, err = db.TagLinkGetByItem(items[0]); err != nil {
		t.Fatalf("Failed to get tags for Item %d: %s",
			items[0].ID,
			err.Error())
	} else if len(names) != 2 {
		t.Fatalf("Item %d should carry 2 tags, found %d (%v)",
			items[0].ID,
			len(names),
			names)
	}

	if names, err = db.TagLinkGetByItem(items[1]); err != nil {
		t.Fatalf("Failed to get tags for Item %d: %s",
			items[1].ID,
			err.Error())
	} else if len(names) != 0 {
		t.Fatalf("Item %d should carry no tags, found %v",
			items[1].ID,
			names)
	}
} // func TestTagLinkGetByItem(t *testing.T)

func TestTagGetAll(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err      error
		all      []model.Tag
		expected = map[string]int64{
			tags[0].Name: int64((len(items) + 3) / 4),
			tags[1].Name: int64((len(items) + 7) / 8),
			tags[2].Name: 0,
			tags[3].Name: 0,
		}
	)

	if all, err = db.TagGetAll(); err != nil {
		t.Fatalf("Failed to load all Tags: %s", err.Error())
	} else if len(all) != len(tags) {
		t.Fatalf("Unexpected number of Tags: expected %d, got %d",
			len(tags),
			len(all))
	}

	for idx := range all {
		var tag = &all[idx]

		if cnt, ok := expected[tag.Name]; !ok {
			t.Errorf("Unexpected Tag %q", tag.Name)
		} else if tag.ItemCnt != cnt {
			t.Errorf("Tag %q should count %d Items, counts %d",
				tag.Name,
				cnt,
				tag.ItemCnt)
		}
	}
} // func TestTagGetAll(t *testing.T)

func TestTagLinkDeleteAuto(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err   error
		names []string
	)

	// Item 0 carries one manual and one automatic tag. Clearing the
	// automatic ones must leave the manual one alone.
	if err = db.TagLinkDeleteAuto(items[0]); err != nil {
		t.Fatalf("Failed to clear automatic tags on Item %d: %s",
			items[0].ID,
			err.Error())
	} else if names, err = db.TagLinkGetByItem(items[0]); err != nil {
		t.Fatalf("Failed to get tags for Item %d: %s",
			items[0].ID,
			err.Error())
	} else if len(names) != 1 || names[0] != tags[0].Name {
		t.Fatalf("Item %d should carry only %q now, found %v",
			items[0].ID,
			tags[0].Name,
			names)
	}
} // func TestTagLinkDeleteAuto(t *testing.T)

func TestItemPurgeAndCleanOrphans(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	var (
		err    error
		victim = items[4]
		onesie *model.Tag
		fresh  *model.Item
		cnt    int64
	)

	// Give the victim a tag nothing else uses, so purging it leaves an
	// orphan behind.
	if onesie, err = db.TagEnsure("ephemeral"); err != nil {
		t.Fatalf("Failed to create Tag: %s", err.Error())
	} else if err = db.TagLinkAdd(victim, onesie, false); err != nil {
		t.Fatalf("Failed to tag Item %d: %s",
			victim.ID,
			err.Error())
	}

	if err = db.ItemPurge(victim); err != nil {
		t.Fatalf("Failed to purge Item %d: %s",
			victim.ID,
			err.Error())
	} else if fresh, err = db.ItemGetByID(victim.ID); err != nil {
		t.Fatalf("Failed to look up purged Item %d: %s",
			victim.ID,
			err.Error())
	} else if fresh != nil {
		t.Fatalf("Item %d should be gone from the database: %s",
			victim.ID,
			fresh)
	}

	if cnt, err = db.TagCleanOrphans(); err != nil {
		t.Fatalf("Failed to clean orphaned Tags: %s", err.Error())
	} else if cnt < 1 {
		t.Fatalf("Cleaning orphaned Tags should have removed at least 1, removed %d",
			cnt)
	}

	items = append(items[:4], items[5:]...)

	// The named tags from the earlier tests are still in use.
	var all []model.Tag

	if all, err = db.TagGetAll(); err != nil {
		t.Fatalf("Failed to load all Tags: %s", err.Error())
	}

	for idx := range all {
		if all[idx].Name == "ephemeral" {
			t.Fatalf("Orphaned Tag %q is still in the database",
				all[idx].Name)
		}
	}
} // func TestItemPurgeAndCleanOrphans(t *testing.T)
