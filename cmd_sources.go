// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_sources.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 21:52:47 hvpkod>

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/lifecycle"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/settings"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the data directory, the database, and default config files",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err  error
			base = common.BaseDir()
		)

		if _, err = db(); err != nil {
			return err
		}

		var spath = common.Path(path.Settings)

		if err = settings.Defaults().Save(spath); err != nil {
			return err
		}

		fmt.Printf("Initialized %s\n", base)
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:     "sources",
	Aliases: []string{"source"},
	Short:   "List and manage subscribed feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err     error
			c       *database.Database
			sources []model.Source
		)

		if c, err = db(); err != nil {
			return err
		} else if sources, err = c.SourceGetAll(); err != nil {
			return err
		}

		for idx := range sources {
			var (
				s    = &sources[idx]
				note string
			)

			if s.Archived {
				note = " [archived]"
			}

			fmt.Printf("%4d  %s%s\n      %s\n",
				s.ID,
				s.Title,
				note,
				s.URL)

			if len(s.Groups) > 0 {
				fmt.Printf("      groups: %s\n",
					strings.Join(s.Groups, ", "))
			}
		}

		return nil
	},
}

var (
	addTitle  string
	addGroups []string
)

var sourcesAddCmd = &cobra.Command{
	Use:   "add URL",
	Short: "Subscribe to a feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			url = args[0]
		)

		if c, err = db(); err != nil {
			return err
		}

		var existing *model.Source

		if existing, err = c.SourceGetByURL(url); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("source %d already subscribes to %s",
				existing.ID,
				url)
		}

		var title = addTitle

		if title == "" {
			title = url
		}

		var src = &model.Source{
			Title:  title,
			URL:    url,
			Groups: addGroups,
		}

		if err = c.SourceAdd(src); err != nil {
			return err
		}

		fmt.Printf("Added source %d (%s)\n", src.ID, src.Title)
		return nil
	},
}

var removeYes bool

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove ID|URL",
	Short: "Remove a feed with all its items, tags, and group memberships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			mgr *lifecycle.Manager
		)

		if c, err = db(); err != nil {
			return err
		} else if mgr, err = lifecycle.NewManager(c); err != nil {
			return err
		}

		var stats *database.SourceRemoveStats

		if stats, err = mgr.RemoveSourceDryRun(args[0]); err != nil {
			return err
		}

		if !removeYes {
			fmt.Printf("Removing source %s would delete %d items and %d tag links.\n"+
				"Run again with --yes to proceed.\n",
				args[0],
				stats.Items,
				stats.TagLinks)
			return nil
		}

		if err = mgr.RemoveSource(args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed source %s (%d items, %d tag links)\n",
			args[0],
			stats.Items,
			stats.TagLinks)
		return nil
	},
}

var (
	archiveDelete bool
	archiveUndo   bool
	archiveGroup  string
)

var sourcesArchiveCmd = &cobra.Command{
	Use:   "archive ID|URL",
	Short: "Archive a feed so it is skipped on fetch, keeping its items",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			mgr *lifecycle.Manager
			cnt int
		)

		if c, err = db(); err != nil {
			return err
		} else if mgr, err = lifecycle.NewManager(c); err != nil {
			return err
		}

		if archiveGroup != "" {
			if len(args) > 0 {
				return fmt.Errorf("either name a source or use --group, not both")
			}

			var srcCnt int

			if srcCnt, cnt, err = mgr.ArchiveGroup(archiveGroup, archiveDelete, archiveUndo); err != nil {
				return err
			}

			if archiveUndo {
				fmt.Printf("Unarchived %d sources in group %s\n",
					srcCnt,
					archiveGroup)
			} else {
				fmt.Printf("Archived %d sources in group %s, soft-deleted %d items\n",
					srcCnt,
					archiveGroup,
					cnt)
			}

			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("name a source or use --group")
		}

		if cnt, err = mgr.ArchiveSource(args[0], archiveDelete, archiveUndo); err != nil {
			return err
		}

		if archiveUndo {
			fmt.Printf("Unarchived source %s\n", args[0])
		} else if archiveDelete {
			fmt.Printf("Archived source %s, soft-deleted %d items\n",
				args[0],
				cnt)
		} else {
			fmt.Printf("Archived source %s\n", args[0])
		}

		return nil
	},
}

// syncSources reconciles the sources file with the database: new URLs are
// added, known ones get their title and groups updated. Sources missing
// from the file are left alone, removal is always explicit.
func syncSources(c *database.Database, specs []settings.SourceSpec) (added, updated int, err error) {
	for idx := range specs {
		var (
			sp  = &specs[idx]
			src *model.Source
		)

		if sp.URL == "" {
			continue
		}

		if src, err = c.SourceGetByURL(sp.URL); err != nil {
			return added, updated, err
		}

		if src == nil {
			var title = sp.Title

			if title == "" {
				title = sp.URL
			}

			src = &model.Source{
				Title:  title,
				URL:    sp.URL,
				Groups: sp.Groups,
			}

			if err = c.SourceAdd(src); err != nil {
				return added, updated, err
			}

			added++
			continue
		}

		var changed bool

		if sp.Title != "" && sp.Title != src.Title {
			if err = c.SourceSetTitle(src, sp.Title); err != nil {
				return added, updated, err
			}
			changed = true
		}

		if !sameGroups(src.Groups, sp.Groups) {
			if err = c.SourceGroupSet(src, sp.Groups); err != nil {
				return added, updated, err
			}
			changed = true
		}

		if changed {
			updated++
		}
	}

	return added, updated, nil
} // func syncSources(c *database.Database, specs []settings.SourceSpec) (added, updated int, err error)

func sameGroups(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	var set = make(map[string]bool, len(a))

	for _, g := range a {
		set[g] = true
	}

	for _, g := range b {
		if !set[g] {
			return false
		}
	}

	return true
} // func sameGroups(a, b []string) bool

func init() {
	sourcesAddCmd.Flags().StringVar(&addTitle, "title", "",
		"Title of the new source, defaults to its URL")
	sourcesAddCmd.Flags().StringSliceVar(&addGroups, "groups", nil,
		"Groups the new source belongs to")
	sourcesRemoveCmd.Flags().BoolVar(&removeYes, "yes", false,
		"Actually remove, instead of showing what would be removed")
	sourcesArchiveCmd.Flags().BoolVar(&archiveDelete, "delete-items", false,
		"Soft-delete the source's unstarred items as well")
	sourcesArchiveCmd.Flags().BoolVar(&archiveUndo, "undo", false,
		"Unarchive instead")
	sourcesArchiveCmd.Flags().StringVarP(&archiveGroup, "group", "g", "",
		"Archive every source in this group instead of a single one")

	sourcesCmd.AddCommand(sourcesAddCmd, sourcesRemoveCmd, sourcesArchiveCmd)
	rootCmd.AddCommand(initCmd, sourcesCmd)
} // func init()
