// /home/hvpkod/go/src/github.com/hvpkod/rssel/lifecycle/lifecycle.go
// -*- mode: go; coding: utf-8; -*-
// Created on 03. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-26 21:55:13 hvpkod>

// Package lifecycle implements the star/archive/delete/purge operations on
// Items and Sources.
//
// The rules that cut across entities live here: starred Items survive every
// automatic or date-based removal path, soft-deletion stays reversible
// until a purge, and removing a Source takes all of its children with it in
// one transaction.
package lifecycle

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// NotFoundError says the Item or Source a caller named does not exist.
type NotFoundError struct {
	Kind string
	Key  string
}

func (ne *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s was not found",
		ne.Kind,
		ne.Key)
} // func (ne *NotFoundError) Error() string

// ConstraintError says an operation was refused because it would violate an
// invariant, most commonly deleting a starred Item without force.
type ConstraintError struct {
	Msg string
}

func (ce *ConstraintError) Error() string {
	return ce.Msg
} // func (ce *ConstraintError) Error() string

// Manager performs lifecycle operations on the database.
type Manager struct {
	log *log.Logger
	db  *database.Database
	eng *filter.Engine
}

// NewManager creates a Manager working on the given database connection.
func NewManager(db *database.Database) (*Manager, error) {
	var (
		err error
		mgr = &Manager{db: db}
	)

	if mgr.log, err = common.GetLogger(logdomain.Lifecycle); err != nil {
		return nil, err
	} else if mgr.eng, err = filter.NewEngine(db); err != nil {
		return nil, err
	}

	return mgr, nil
} // func NewManager(db *database.Database) (*Manager, error)

func (mgr *Manager) itemGet(id int64) (*model.Item, error) {
	var (
		err error
		i   *model.Item
	)

	if i, err = mgr.db.ItemGetByID(id); err != nil {
		return nil, err
	} else if i == nil {
		return nil, &NotFoundError{
			Kind: "Item",
			Key:  strconv.FormatInt(id, 10),
		}
	}

	return i, nil
} // func (mgr *Manager) itemGet(id int64) (*model.Item, error)

// SourceResolve looks up a Source by its numeric ID or its URL.
func (mgr *Manager) SourceResolve(key string) (*model.Source, error) {
	var (
		err error
		src *model.Source
	)

	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil {
		if src, err = mgr.db.SourceGetByID(id); err != nil {
			return nil, err
		}
	} else if src, err = mgr.db.SourceGetByURL(key); err != nil {
		return nil, err
	}

	if src == nil {
		return nil, &NotFoundError{
			Kind: "Source",
			Key:  key,
		}
	}

	return src, nil
} // func (mgr *Manager) SourceResolve(key string) (*model.Source, error)

// Star sets an Item's starred flag, or clears it if undo is true. Starring
// an already-starred Item is a no-op.
func (mgr *Manager) Star(id int64, undo bool) error {
	var (
		err error
		i   *model.Item
	)

	if i, err = mgr.itemGet(id); err != nil {
		return err
	} else if i.Starred == !undo {
		return nil
	}

	return mgr.db.ItemSetStarred(i, !undo)
} // func (mgr *Manager) Star(id int64, undo bool) error

// MarkRead sets an Item's read flag, or clears it if undo is true.
func (mgr *Manager) MarkRead(id int64, undo bool) error {
	var (
		err error
		i   *model.Item
	)

	if i, err = mgr.itemGet(id); err != nil {
		return err
	} else if i.Read == !undo {
		return nil
	}

	return mgr.db.ItemSetRead(i, !undo)
} // func (mgr *Manager) MarkRead(id int64, undo bool) error

// DeleteItem soft-deletes an Item, or restores it if undo is true.
// A starred Item is only deleted if force is set, otherwise the call fails
// with a ConstraintError. Undo never needs force.
func (mgr *Manager) DeleteItem(id int64, force, undo bool) error {
	var (
		err error
		i   *model.Item
	)

	if i, err = mgr.itemGet(id); err != nil {
		return err
	}

	if undo {
		if !i.Deleted {
			return nil
		}
		return mgr.db.ItemSetDeleted(i, false)
	}

	if i.Deleted {
		return nil
	} else if i.Starred && !force {
		return &ConstraintError{
			Msg: fmt.Sprintf("Item %d is starred, it can only be deleted with force", id),
		}
	}

	return mgr.db.ItemSetDeleted(i, true)
} // func (mgr *Manager) DeleteItem(id int64, force, undo bool) error

// DeleteMatching soft-deletes every Item matching the given Spec in one
// transaction, or, if undo is set, restores the soft-deleted Items the Spec
// matches. Starred Items are skipped on the delete path, there is no force
// variant here. Restoring never needs force.
//
// The Spec's Deleted facet is overridden to fit the direction, callers only
// provide the scope (source, groups, dates, tags).
func (mgr *Manager) DeleteMatching(spec *filter.Spec, undo bool) (int, error) {
	var (
		err   error
		local = *spec
		items []model.Item
	)

	local.Deleted = undo

	if items, err = mgr.eng.Select(&local); err != nil {
		return 0, err
	}

	if err = mgr.db.Begin(); err != nil {
		return 0, err
	}

	var cnt int

	for idx := range items {
		if !undo && items[idx].Starred {
			continue
		}

		if err = mgr.db.ItemSetDeleted(&items[idx], !undo); err != nil {
			if rbErr := mgr.db.Rollback(); rbErr != nil {
				mgr.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return 0, err
		}
		cnt++
	}

	if err = mgr.db.Commit(); err != nil {
		return 0, err
	}

	if undo {
		mgr.log.Printf("[INFO] Restored %d items\n", cnt)
	} else {
		mgr.log.Printf("[INFO] Soft-deleted %d items\n", cnt)
	}

	return cnt, nil
} // func (mgr *Manager) DeleteMatching(spec *filter.Spec, undo bool) (int, error)

// ArchiveSource sets a Source's archived flag, or clears it if undo is true.
// An archived Source is skipped on fetch, its Items stay queryable.
//
// If deleteItems is set, all of the Source's Items that are neither deleted
// nor starred are soft-deleted along with it. Starred Items are never
// touched by this path.
func (mgr *Manager) ArchiveSource(key string, deleteItems, undo bool) (int, error) {
	var (
		err error
		src *model.Source
	)

	if src, err = mgr.SourceResolve(key); err != nil {
		return 0, err
	}

	if src.Archived != !undo {
		if err = mgr.db.SourceSetArchived(src, !undo); err != nil {
			return 0, err
		}
	}

	if undo || !deleteItems {
		return 0, nil
	}

	var (
		cnt     int
		starred = false
		spec    = &filter.Spec{
			SourceID: src.ID,
			Starred:  &starred,
		}
		items []model.Item
	)

	if items, err = mgr.eng.Select(spec); err != nil {
		return 0, err
	}

	if err = mgr.db.Begin(); err != nil {
		return 0, err
	}

	for idx := range items {
		if err = mgr.db.ItemSetDeleted(&items[idx], true); err != nil {
			if rbErr := mgr.db.Rollback(); rbErr != nil {
				mgr.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return 0, err
		}
		cnt++
	}

	if err = mgr.db.Commit(); err != nil {
		return 0, err
	}

	mgr.log.Printf("[INFO] Archived Source %s, soft-deleted %d items\n",
		src.Title,
		cnt)

	return cnt, nil
} // func (mgr *Manager) ArchiveSource(key string, deleteItems, undo bool) (int, error)

// ArchiveGroup archives every Source belonging to the given group, with the
// same semantics per Source as ArchiveSource. It returns the number of
// Sources touched and the total number of soft-deleted Items.
func (mgr *Manager) ArchiveGroup(name string, deleteItems, undo bool) (int, int, error) {
	var (
		err     error
		sources []model.Source
	)

	if sources, err = mgr.db.SourceGetAll(); err != nil {
		return 0, 0, err
	}

	var srcCnt, itemCnt int

	for idx := range sources {
		if !sources[idx].InGroup(name) {
			continue
		}

		var cnt int

		if cnt, err = mgr.ArchiveSource(strconv.FormatInt(sources[idx].ID, 10), deleteItems, undo); err != nil {
			return srcCnt, itemCnt, err
		}

		srcCnt++
		itemCnt += cnt
	}

	if srcCnt == 0 {
		return 0, 0, &NotFoundError{
			Kind: "Group",
			Key:  name,
		}
	}

	return srcCnt, itemCnt, nil
} // func (mgr *Manager) ArchiveGroup(name string, deleteItems, undo bool) (int, int, error)

// RemoveSourceDryRun returns the counts of what RemoveSource would delete.
func (mgr *Manager) RemoveSourceDryRun(key string) (*database.SourceRemoveStats, error) {
	var (
		err error
		src *model.Source
	)

	if src, err = mgr.SourceResolve(key); err != nil {
		return nil, err
	}

	return mgr.db.SourceRemoveDryRun(src)
} // func (mgr *Manager) RemoveSourceDryRun(key string) (*database.SourceRemoveStats, error)

// RemoveSource deletes a Source with all of its Items, tag links, and group
// memberships, atomically. There is no undo.
func (mgr *Manager) RemoveSource(key string) error {
	var (
		err error
		src *model.Source
	)

	if src, err = mgr.SourceResolve(key); err != nil {
		return err
	}

	return mgr.db.SourceRemove(src)
} // func (mgr *Manager) RemoveSource(key string) error

// PurgeCriteria says which Items a purge may remove and what scope it is
// limited to.
//
// An Item is eligible if it is soft-deleted, or if it has been read, is not
// starred, and was published before the Cutoff. A zero Cutoff disables the
// date-based branch entirely. Groups and Source narrow both branches.
// Starred Items can never be purged through the date-based branch, no
// matter what the criteria say.
type PurgeCriteria struct {
	Cutoff    time.Time
	Groups    []string
	SourceID  int64
	SourceURL string
	Reclaim   bool
}

// PurgeResult lists what a purge removed, or, for a dry run, would remove.
type PurgeResult struct {
	IDs         []int64
	TagsCleaned int64
}

// Cnt returns the number of purged Items.
func (pr *PurgeResult) Cnt() int {
	return len(pr.IDs)
} // func (pr *PurgeResult) Cnt()

// Purge permanently removes all Items matching the criteria, then drops any
// Tags left without Items. If dryRun is set, it computes the same matching
// set and returns it without touching the database.
//
// The removal happens in a single transaction. The optional disk reclaim
// runs after the commit, its failure does not undo the purge.
func (mgr *Manager) Purge(crit *PurgeCriteria, dryRun bool) (*PurgeResult, error) {
	var (
		err     error
		starred = false
		res     = new(PurgeResult)
		seen    = make(map[int64]bool)
		victims []model.Item
	)

	// Branch one, Items the user soft-deleted.
	var delSpec = &filter.Spec{
		Deleted:   true,
		Groups:    crit.Groups,
		SourceID:  crit.SourceID,
		SourceURL: crit.SourceURL,
	}

	var batch []model.Item

	if batch, err = mgr.eng.Select(delSpec); err != nil {
		return nil, err
	}

	victims = append(victims, batch...)

	// Branch two, read and unstarred Items older than the cutoff.
	if !crit.Cutoff.IsZero() {
		var dateSpec = &filter.Spec{
			ReadState: filter.ReadSeen,
			Starred:   &starred,
			Until:     crit.Cutoff,
			Groups:    crit.Groups,
			SourceID:  crit.SourceID,
			SourceURL: crit.SourceURL,
		}

		if batch, err = mgr.eng.Select(dateSpec); err != nil {
			return nil, err
		}

		victims = append(victims, batch...)
	}

	for idx := range victims {
		if !seen[victims[idx].ID] {
			seen[victims[idx].ID] = true
			res.IDs = append(res.IDs, victims[idx].ID)
		}
	}

	if dryRun {
		mgr.log.Printf("[INFO] Purge dry run, %d items would be removed\n",
			res.Cnt())
		return res, nil
	}

	if err = mgr.db.Begin(); err != nil {
		return nil, err
	}

	for idx := range victims {
		if !seen[victims[idx].ID] {
			continue
		}
		seen[victims[idx].ID] = false

		if err = mgr.db.ItemPurge(&victims[idx]); err != nil {
			if rbErr := mgr.db.Rollback(); rbErr != nil {
				mgr.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
					rbErr.Error())
			}
			return nil, err
		}
	}

	if res.TagsCleaned, err = mgr.db.TagCleanOrphans(); err != nil {
		if rbErr := mgr.db.Rollback(); rbErr != nil {
			mgr.log.Printf("[CANTHAPPEN] Cannot roll back transaction: %s\n",
				rbErr.Error())
		}
		return nil, err
	}

	if err = mgr.db.Commit(); err != nil {
		return nil, err
	}

	mgr.log.Printf("[INFO] Purged %d items, cleaned %d orphaned tags\n",
		res.Cnt(),
		res.TagsCleaned)

	if crit.Reclaim {
		if err = mgr.db.PerformMaintenance(); err != nil {
			mgr.log.Printf("[ERROR] Reclaim after purge failed: %s\n",
				err.Error())
		}
	}

	return res, nil
} // func (mgr *Manager) Purge(crit *PurgeCriteria, dryRun bool) (*PurgeResult, error)

// CleanTags drops all Tags that no Item carries anymore. It is idempotent.
func (mgr *Manager) CleanTags() (int64, error) {
	return mgr.db.TagCleanOrphans()
} // func (mgr *Manager) CleanTags() (int64, error)
