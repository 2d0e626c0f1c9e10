// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_tags.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 22:04:18 hvpkod>

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/lifecycle"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/tagger"
	"github.com/hvpkod/rssel/wordlist"
)

var tagsCmd = &cobra.Command{
	Use:     "tags",
	Aliases: []string{"tag"},
	Short:   "Manage item tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags with their item counts, most used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err  error
			c    *database.Database
			tags []model.Tag
		)

		if c, err = db(); err != nil {
			return err
		} else if tags, err = c.TagGetAll(); err != nil {
			return err
		}

		for idx := range tags {
			fmt.Printf("%5d  %s\n",
				tags[idx].ItemCnt,
				tags[idx].Name)
		}

		return nil
	},
}

var (
	tagsAutoSource string
	tagsAutoMax    int
	tagsAutoAll    bool
	tagsAutoDomain bool
	tagsAutoDryRun bool
)

var tagsAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Compute tags for untagged items",
	Long: `Computes tags for all live items that have none yet. With --all, already
tagged items get their automatic tags recomputed as well, so changed
settings take effect on them. Tags added by hand are never touched.
With --dry-run the tags are printed instead of stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			cnt int
		)

		var (
			maxTags = cfg.MaxTags
			domain  = cfg.IncludeDomain
		)

		if cmd.Flags().Changed("max-tags") {
			maxTags = tagsAutoMax
		}
		if cmd.Flags().Changed("include-domain") {
			domain = tagsAutoDomain
		}

		if c, err = db(); err != nil {
			return err
		} else if cnt, err = autoTagAll(c, !tagsAutoAll, tagsAutoDryRun, maxTags, domain); err != nil {
			return err
		}

		if tagsAutoDryRun {
			fmt.Printf("%d items would get tags\n", cnt)
		} else {
			fmt.Printf("%d items tagged\n", cnt)
		}
		return nil
	},
}

// autoTagAll runs the tagger over all live items, or only the untagged
// ones. With dryRun the tags are printed, not stored. Returns the number of
// items that got tags.
func autoTagAll(c *database.Database, onlyUntagged, dryRun bool, maxTags int, includeDomain bool) (int, error) {
	var (
		err   error
		stops wordlist.Set
		eng   *filter.Engine
		items []model.Item
	)

	if stops, err = wordlist.LoadStopwords(common.Path(path.Stopwords)); err != nil {
		return 0, err
	} else if eng, err = filter.NewEngine(c); err != nil {
		return 0, err
	}

	var spec = &filter.Spec{}

	if tagsAutoSource != "" {
		if id, perr := strconv.ParseInt(tagsAutoSource, 10, 64); perr == nil {
			spec.SourceID = id
		} else {
			spec.SourceURL = tagsAutoSource
		}
	}

	if items, err = eng.Select(spec); err != nil {
		return 0, err
	}

	var tgr *tagger.Tagger

	if tgr, err = tagger.New(c, tagger.Config{
		Stopwords:     map[string]bool(stops),
		MaxTags:       maxTags,
		IncludeDomain: includeDomain,
	}); err != nil {
		return 0, err
	}

	var cnt int

	for idx := range items {
		if onlyUntagged && len(items[idx].Tags) > 0 {
			continue
		}

		var tags []string

		if dryRun {
			if tags = tgr.Suggest(&items[idx]); len(tags) > 0 {
				fmt.Printf("%6d  %s\n",
					items[idx].ID,
					strings.Join(tags, ", "))
				cnt++
			}
			continue
		}

		if tags, err = tgr.AutoTag(&items[idx]); err != nil {
			return cnt, err
		} else if len(tags) > 0 {
			cnt++
		}
	}

	return cnt, nil
} // func autoTagAll(c *database.Database, onlyUntagged, dryRun bool, maxTags int, includeDomain bool) (int, error)

var tagsItemsCmd = &cobra.Command{
	Use:   "items TAG...",
	Short: "List the items carrying all of the given tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			c     *database.Database
			eng   *filter.Engine
			items []model.Item
		)

		if c, err = db(); err != nil {
			return err
		} else if eng, err = filter.NewEngine(c); err != nil {
			return err
		}

		var spec = &filter.Spec{Tags: args}

		if items, err = eng.Select(spec); err != nil {
			return err
		}

		for idx := range items {
			fmt.Printf("%6d  %s  %s\n",
				items[idx].ID,
				items[idx].Published.Format("2006-01-02"),
				items[idx].Title)
		}

		return nil
	},
}

var tagsMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Show which items carry which tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			c     *database.Database
			links map[int64][]string
		)

		if c, err = db(); err != nil {
			return err
		} else if links, err = c.TagLinkGetAll(); err != nil {
			return err
		}

		var ids = make([]int64, 0, len(links))

		for id := range links {
			ids = append(ids, id)
		}

		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			fmt.Printf("%6d  %s\n",
				id,
				strings.Join(links[id], ", "))
		}

		return nil
	},
}

var tagsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop tags no item carries anymore",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			mgr *lifecycle.Manager
			cnt int64
		)

		if c, err = db(); err != nil {
			return err
		} else if mgr, err = lifecycle.NewManager(c); err != nil {
			return err
		} else if cnt, err = mgr.CleanTags(); err != nil {
			return err
		}

		fmt.Printf("%d orphaned tags removed\n", cnt)
		return nil
	},
}

func init() {
	tagsAutoCmd.Flags().StringVarP(&tagsAutoSource, "source", "s", "",
		"Only tag items of this source (id or url)")
	tagsAutoCmd.Flags().IntVar(&tagsAutoMax, "max-tags", 0,
		"Tags per item (defaults to the configured value)")
	tagsAutoCmd.Flags().BoolVarP(&tagsAutoAll, "all", "a", false,
		"Recompute the automatic tags of already tagged items, too")
	tagsAutoCmd.Flags().BoolVar(&tagsAutoDomain, "include-domain", false,
		"Add the link's domain as a tag")
	tagsAutoCmd.Flags().BoolVar(&tagsAutoDryRun, "dry-run", false,
		"Print the tags instead of storing them")

	tagsCmd.AddCommand(tagsAutoCmd, tagsListCmd, tagsItemsCmd, tagsMapCmd, tagsCleanCmd)
	rootCmd.AddCommand(tagsCmd)
} // func init()
