// /home/hvpkod/go/src/github.com/hvpkod/rssel/render/00_render_main_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 09. 2026 by hvpkod
// (c) 2026 hvpkod
// Time-stamp: <2026-09-01 10:20:41 hvpkod>

package render

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hvpkod/rssel/common"
)

func TestMain(m *testing.M) {
	var (
		err     error
		result  int
		baseDir = time.Now().Format("/tmp/rssel_render_test_20060102_150405")
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
