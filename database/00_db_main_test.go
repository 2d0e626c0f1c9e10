// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/00_db_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-30 21:04:18 hvpkod>

package database

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/model"
)

const (
	srcCnt  = 8
	itemCnt = 16
)

var (
	db      *Database
	sources []model.Source
	items   []*model.Item
	tags    []*model.Tag
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/rssel_db_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
		os.Exit(1)
	} else if result = m.Run(); result == 0 {
		// If any test failed, we keep the test directory (and the
		// database inside it) around, so we can manually inspect it
		// if needed.
		// If all tests pass, OTOH, we can safely remove the directory.
		fmt.Printf("Removing BaseDir %s\n",
			baseDir)
		_ = os.RemoveAll(baseDir)
	} else {
		fmt.Printf(">>> TEST DIRECTORY: %s\n", baseDir)
	}

	os.Exit(result)
} // func TestMain(m *testing.M)

// Helpers

func sourceEqual(s1, s2 *model.Source) bool {
	if s1.ID != s2.ID ||
		s1.Title != s2.Title ||
		s1.URL != s2.URL ||
		s1.Archived != s2.Archived ||
		len(s1.Groups) != len(s2.Groups) {
		return false
	}

	for i, g := range s1.Groups {
		if s2.Groups[i] != g {
			return false
		}
	}

	return true
} // func sourceEqual(s1, s2 *model.Source) bool

func fakeHash(sourceID int64, idx int) string {
	return fmt.Sprintf("%064x", sourceID*1000+int64(idx))
} // func fakeHash(sourceID int64, idx int) string
