// /home/hvpkod/go/src/github.com/hvpkod/rssel/tagger/00_tagger_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-30 23:02:44 hvpkod>

package tagger

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
	src  *model.Source
	item *model.Item
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/rssel_tagger_test_20060102_150405")
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

func prepare() error {
	var err error

	if db, err = database.Open(common.Path(path.Database)); err != nil {
		return err
	}

	src = &model.Source{
		Title: "Test Feed",
		URL:   "https://www.example.org/news/feed.rss",
	}

	if err = db.SourceAdd(src); err != nil {
		return err
	}

	item = &model.Item{
		SourceID:     src.ID,
		IdentityHash: fmt.Sprintf("%064x", 1),
		Title:        "Fusion breakthrough announced",
		Link:         "https://www.example.org/news/fusion.html",
		Published:    time.Unix(1700000000, 0),
		Content:      "Researchers report a fusion milestone. The fusion reactor ran for a full minute.",
	}

	return db.ItemAdd(item)
} // func prepare() error
