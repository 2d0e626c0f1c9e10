// /home/hvpkod/go/src/github.com/hvpkod/rssel/reader/00_reader_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 01:35:21 hvpkod>

package reader

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hvpkod/rssel/common"
)

var rdr *Reader

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/rssel_reader_test_20060102_150405")
	)

	if err = common.SetBaseDir(baseDir); err != nil {
		fmt.Printf("Cannot set base directory to %s: %s\n",
			baseDir,
			err.Error())
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
