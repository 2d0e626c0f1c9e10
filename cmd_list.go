// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_list.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 22:10:42 hvpkod>

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/lifecycle"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/render"
)

// selectItems runs the shared read path: spec from flags, filter engine,
// ordered result.
func selectItems(ff *filterFlags) ([]model.Item, error) {
	var (
		err  error
		c    *database.Database
		eng  *filter.Engine
		spec *filter.Spec
	)

	if c, err = db(); err != nil {
		return nil, err
	} else if eng, err = filter.NewEngine(c); err != nil {
		return nil, err
	} else if spec, err = ff.buildSpec(); err != nil {
		return nil, err
	}

	return eng.Select(spec)
} // func selectItems(ff *filterFlags) ([]model.Item, error)

var (
	listFlags  filterFlags
	listFormat string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cached items",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			items []model.Item
			f     render.Format
			rnd   *render.Renderer
		)

		if items, err = selectItems(&listFlags); err != nil {
			return err
		} else if f, err = render.ParseFormat(listFormat); err != nil {
			return err
		} else if rnd, err = render.New(f); err != nil {
			return err
		}

		return rnd.RenderList(os.Stdout, items)
	},
}

var pickFormat string

var pickCmd = &cobra.Command{
	Use:     "pick ID...",
	Aliases: []string{"view", "show"},
	Short:   "Show items in full and mark them read",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			c   *database.Database
			mgr *lifecycle.Manager
			f   render.Format
			rnd *render.Renderer
		)

		if c, err = db(); err != nil {
			return err
		} else if mgr, err = lifecycle.NewManager(c); err != nil {
			return err
		} else if f, err = render.ParseFormat(pickFormat); err != nil {
			return err
		} else if rnd, err = render.New(f); err != nil {
			return err
		}

		for _, arg := range args {
			var id int64

			if id, err = strconv.ParseInt(arg, 10, 64); err != nil {
				return fmt.Errorf("invalid item id %q", arg)
			}

			var i *model.Item

			if i, err = c.ItemGetByID(id); err != nil {
				return err
			} else if i == nil {
				return &lifecycle.NotFoundError{Kind: "Item", Key: arg}
			}

			if err = rnd.RenderItem(os.Stdout, i); err != nil {
				return err
			}

			if err = mgr.MarkRead(id, false); err != nil {
				return err
			}
		}

		return nil
	},
}

var statsFlags filterFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts over the cached items",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			items []model.Item
		)

		if items, err = selectItems(&statsFlags); err != nil {
			return err
		}

		var (
			unread, starred, highlighted int
			byGroup                      = make(map[string]int)
			byTag                        = make(map[string]int)
		)

		for idx := range items {
			var i = &items[idx]

			if !i.Read {
				unread++
			}
			if i.Starred {
				starred++
			}
			if i.Highlighted {
				highlighted++
			}

			if len(i.Groups) == 0 {
				byGroup["(none)"]++
			}
			for _, g := range i.Groups {
				byGroup[g]++
			}
			for _, t := range i.Tags {
				byTag[t]++
			}
		}

		fmt.Printf("%d items, %d unread, %d starred, %d highlighted\n",
			len(items),
			unread,
			starred,
			highlighted)

		fmt.Println("\nBy group:")
		for _, g := range sortedKeys(byGroup) {
			fmt.Printf("  %5d  %s\n", byGroup[g], g)
		}

		fmt.Println("\nBy tag:")
		for _, t := range sortedKeys(byTag) {
			fmt.Printf("  %5d  %s\n", byTag[t], t)
		}

		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	var keys = make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})

	return keys
} // func sortedKeys(m map[string]int) []string

func init() {
	listFlags.bind(listCmd)
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "txt",
		"Output format (md|txt|json|html)")
	pickCmd.Flags().StringVarP(&pickFormat, "format", "f", "md",
		"Output format (md|txt|json|html)")
	statsFlags.bind(statsCmd)

	rootCmd.AddCommand(listCmd, pickCmd, statsCmd)
} // func init()
