// /home/hvpkod/go/src/github.com/hvpkod/rssel/cmd_fetch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 04. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 21:58:30 hvpkod>

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/export"
	"github.com/hvpkod/rssel/filter"
	"github.com/hvpkod/rssel/ingest"
	"github.com/hvpkod/rssel/lifecycle"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/reader"
	"github.com/hvpkod/rssel/render"
	"github.com/hvpkod/rssel/settings"
)

var fetchSource string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the subscribed feeds and merge their entries into the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err error
			rdr *reader.Reader
		)

		if rdr, err = reader.New(cfg.FetchWorkers, cfg.FetchTimeout); err != nil {
			return err
		}

		defer rdr.Close() // nolint: errcheck

		if fetchSource != "" {
			return fetchOne(rdr)
		}

		var res *ingest.BatchResult

		if res, err = rdr.FetchAll(context.Background()); err != nil {
			return err
		}

		reportBatch(res)
		return nil
	},
}

func fetchOne(rdr *reader.Reader) error {
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

	var src, serr = mgr.SourceResolve(fetchSource)

	if serr != nil {
		return serr
	}

	var res *ingest.Result

	if res, err = rdr.FetchOne(context.Background(), src); err != nil {
		return err
	}

	fmt.Printf("%s: %d new, %d updated, %d unchanged\n",
		src.Title,
		res.New,
		res.Updated,
		res.Unchanged)
	return nil
} // func fetchOne(rdr *reader.Reader) error

func reportBatch(res *ingest.BatchResult) {
	var total = res.Totals()

	fmt.Printf("%d sources fetched: %d new, %d updated, %d unchanged\n",
		len(res.PerSource),
		total.New,
		total.Updated,
		total.Unchanged)

	for _, serr := range res.SortedErrors() {
		fmt.Printf("  %s: %s\n",
			serr.Source.Title,
			serr.Error())
	}
} // func reportBatch(res *ingest.BatchResult)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the sources file into the database, fetch, and auto-tag new items",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			err   error
			c     *database.Database
			specs []settings.SourceSpec
		)

		if c, err = db(); err != nil {
			return err
		} else if specs, err = settings.LoadSources(common.Path(path.Sources)); err != nil {
			return err
		}

		var added, updated int

		if added, updated, err = syncSources(c, specs); err != nil {
			return err
		}

		fmt.Printf("Sources synced: %d added, %d updated\n",
			added,
			updated)

		var rdr *reader.Reader

		if rdr, err = reader.New(cfg.FetchWorkers, cfg.FetchTimeout); err != nil {
			return err
		}

		var res *ingest.BatchResult

		res, err = rdr.FetchAll(context.Background())
		rdr.Close() // nolint: errcheck

		if err != nil {
			return err
		}

		reportBatch(res)

		var tagged int

		if tagged, err = autoTagAll(c, true, false, cfg.MaxTags, cfg.IncludeDomain); err != nil {
			return err
		}

		fmt.Printf("%d items tagged\n", tagged)

		// Refresh the export tree so the on-disk view matches the cache.
		var (
			f     render.Format
			exp   *export.Exporter
			eng   *filter.Engine
			items []model.Item
			cnt   int
		)

		if f, err = render.ParseFormat(cfg.ExportFormat); err != nil {
			return err
		} else if exp, err = export.New(f); err != nil {
			return err
		} else if eng, err = filter.NewEngine(c); err != nil {
			return err
		} else if items, err = eng.Select(&filter.Spec{}); err != nil {
			return err
		} else if cnt, err = exp.ExportTree(common.Path(path.ExportTree), items); err != nil {
			return err
		}

		fmt.Printf("%d items exported below %s\n",
			cnt,
			common.Path(path.ExportTree))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchSource, "source", "s", "",
		"Only fetch this source (id or url)")
	rootCmd.AddCommand(fetchCmd, syncCmd)
} // func init()
