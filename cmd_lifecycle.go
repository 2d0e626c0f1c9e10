// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_lifecycle.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 22:16:55 hvpkod>

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/lifecycle"
)

func manager() (*lifecycle.Manager, error) {
	var (
		err error
		c   *database.Database
	)

	if c, err = db(); err != nil {
		return nil, err
	}

	return lifecycle.NewManager(c)
} // func manager() (*lifecycle.Manager, error)

func parseIDs(args []string) ([]int64, error) {
	var ids = make([]int64, len(args))

	for idx, arg := range args {
		var id, err = strconv.ParseInt(arg, 10, 64)

		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", arg)
		}

		ids[idx] = id
	}

	return ids, nil
} // func parseIDs(args []string) ([]int64, error)

var starUndo bool

var starCmd = &cobra.Command{
	Use:   "star ID...",
	Short: "Star items so no automatic cleanup can remove them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			mgr *lifecycle.Manager
			ids []int64
		)

		if mgr, err = manager(); err != nil {
			return err
		} else if ids, err = parseIDs(args); err != nil {
			return err
		}

		for _, id := range ids {
			if err = mgr.Star(id, starUndo); err != nil {
				return err
			}
		}

		return nil
	},
}

var markUndo bool

var markCmd = &cobra.Command{
	Use:   "mark ID...",
	Short: "Mark items as read",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			mgr *lifecycle.Manager
			ids []int64
		)

		if mgr, err = manager(); err != nil {
			return err
		} else if ids, err = parseIDs(args); err != nil {
			return err
		}

		for _, id := range ids {
			if err = mgr.MarkRead(id, markUndo); err != nil {
				return err
			}
		}

		return nil
	},
}

var (
	deleteForce  bool
	deleteUndo   bool
	deleteGroups []string
	deleteSource string
	deleteSince  string
	deleteUntil  string
	deleteOn     string
)

var deleteCmd = &cobra.Command{
	Use:     "delete [ID...]",
	Aliases: []string{"del", "rm"},
	Short:   "Soft-delete items, or restore them with --undo",
	Long: `Soft-deletes items, given either by id or by criteria (--group,
--source, --since, --until, --on). Deleted items disappear from all
listings unless asked for explicitly, and stay restorable until a purge
removes them for good. Deleting a starred item by id requires --force,
the criteria path skips starred items instead.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			mgr *lifecycle.Manager
		)

		if mgr, err = manager(); err != nil {
			return err
		}

		var byCriteria = len(deleteGroups) > 0 ||
			deleteSource != "" ||
			deleteSince != "" ||
			deleteUntil != "" ||
			deleteOn != ""

		switch {
		case byCriteria && len(args) > 0:
			return fmt.Errorf("give either item ids or criteria, not both")
		case !byCriteria && len(args) == 0:
			return fmt.Errorf("no item ids and no criteria given")
		case byCriteria:
			var spec = &filter.Spec{Groups: deleteGroups}

			if deleteSource != "" {
				if id, perr := strconv.ParseInt(deleteSource, 10, 64); perr == nil {
					spec.SourceID = id
				} else {
					spec.SourceURL = deleteSource
				}
			}

			if spec.Since, err = parseDay(deleteSince); err != nil {
				return err
			} else if spec.On, err = parseDay(deleteOn); err != nil {
				return err
			} else if spec.Until, err = parseDay(deleteUntil); err != nil {
				return err
			}

			if !spec.Until.IsZero() {
				spec.Until = spec.Until.AddDate(0, 0, 1).Add(-time.Second)
			}

			var cnt int

			if cnt, err = mgr.DeleteMatching(spec, deleteUndo); err != nil {
				return err
			}

			if deleteUndo {
				fmt.Printf("%d items restored\n", cnt)
			} else {
				fmt.Printf("%d items deleted\n", cnt)
			}

			return nil
		}

		var ids []int64

		if ids, err = parseIDs(args); err != nil {
			return err
		}

		for _, id := range ids {
			if err = mgr.DeleteItem(id, deleteForce, deleteUndo); err != nil {
				return err
			}
		}

		return nil
	},
}

var (
	purgeFlags       filterFlags
	purgeDays        int
	purgeBefore      string
	purgeDeletedOnly bool
	purgeDryRun      bool
	purgeReclaim     bool
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Permanently remove deleted and old read items",
	Long: `Purges items for good. An item is eligible if it is soft-deleted, or if
it has been read, is not starred, and is older than the cutoff. Starred
items are never removed by the date-based path. There is no undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			mgr *lifecycle.Manager
		)

		if mgr, err = manager(); err != nil {
			return err
		}

		var crit = &lifecycle.PurgeCriteria{
			Groups:  purgeFlags.groups,
			Reclaim: purgeReclaim,
		}

		if purgeFlags.source != "" {
			if id, perr := strconv.ParseInt(purgeFlags.source, 10, 64); perr == nil {
				crit.SourceID = id
			} else {
				crit.SourceURL = purgeFlags.source
			}
		}

		switch {
		case purgeDeletedOnly:
			// no cutoff, only soft-deleted items go
		case purgeBefore != "":
			if crit.Cutoff, err = parseDay(purgeBefore); err != nil {
				return err
			}
		case purgeDays > 0:
			crit.Cutoff = time.Now().AddDate(0, 0, -purgeDays)
		case cfg.PurgeDays > 0:
			crit.Cutoff = time.Now().AddDate(0, 0, -cfg.PurgeDays)
		}

		var res *lifecycle.PurgeResult

		if res, err = mgr.Purge(crit, purgeDryRun); err != nil {
			return err
		}

		if purgeDryRun {
			fmt.Printf("%d items would be purged:", res.Cnt())
			for _, id := range res.IDs {
				fmt.Printf(" %d", id)
			}
			fmt.Println("")
			return nil
		}

		fmt.Printf("%d items purged, %d orphaned tags removed\n",
			res.Cnt(),
			res.TagsCleaned)
		return nil
	},
}

var maintenanceCmd = &cobra.Command{
	Use:     "maintenance",
	Aliases: []string{"vacuum"},
	Short:   "Run database maintenance (checkpoint, vacuum, reindex, analyze)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var c, err = db()

		if err != nil {
			return err
		}

		return c.PerformMaintenance()
	},
}

func init() {
	starCmd.Flags().BoolVar(&starUndo, "undo", false, "Remove the star instead")
	markCmd.Flags().BoolVar(&markUndo, "undo", false, "Mark as unread instead")
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false,
		"Delete even if the item is starred")
	deleteCmd.Flags().BoolVar(&deleteUndo, "undo", false,
		"Restore instead of delete")
	deleteCmd.Flags().StringSliceVarP(&deleteGroups, "group", "g", nil,
		"Delete items whose source is in any of these groups")
	deleteCmd.Flags().StringVarP(&deleteSource, "source", "s", "",
		"Delete items of this source (id or url)")
	deleteCmd.Flags().StringVar(&deleteSince, "since", "",
		"Delete items on or after this date (YYYY-MM-DD)")
	deleteCmd.Flags().StringVar(&deleteUntil, "until", "",
		"Delete items on or before this date (YYYY-MM-DD)")
	deleteCmd.Flags().StringVar(&deleteOn, "on", "",
		"Delete items from exactly this date (YYYY-MM-DD)")

	purgeCmd.Flags().StringSliceVarP(&purgeFlags.groups, "group", "g", nil,
		"Only purge items whose source is in any of these groups")
	purgeCmd.Flags().StringVarP(&purgeFlags.source, "source", "s", "",
		"Only purge items of this source (id or url)")
	purgeCmd.Flags().IntVar(&purgeDays, "days", 0,
		"Cutoff for the date-based path, in days before today (default from settings)")
	purgeCmd.Flags().StringVar(&purgeBefore, "before", "",
		"Cutoff for the date-based path (YYYY-MM-DD), overrides --days")
	purgeCmd.Flags().BoolVar(&purgeDeletedOnly, "deleted-only", false,
		"Skip the date-based path, only purge soft-deleted items")
	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false,
		"Only show what would be purged")
	purgeCmd.Flags().BoolVar(&purgeReclaim, "reclaim", false,
		"Reclaim disk space after purging")

	rootCmd.AddCommand(starCmd, markCmd, deleteCmd, purgeCmd, maintenanceCmd)
} // func init()
