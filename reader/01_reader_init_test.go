// /home/hvpkod/go/src/github.com/hvpkod/rssel/reader/01_reader_init_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 02. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 01:37:03 hvpkod>

package reader

import (
	"testing"
	"time"
)

func TestReaderNew(t *testing.T) {
	var err error

	if rdr, err = New(2, time.Second*10); err != nil {
		rdr = nil
		t.Fatalf("Error creating new Reader: %s",
			err.Error())
	}
} // func TestReaderNew(t *testing.T)

func TestReaderClose(t *testing.T) {
	if rdr == nil {
		t.SkipNow()
	}

	if err := rdr.Close(); err != nil {
		t.Fatalf("Error closing Reader: %s",
			err.Error())
	}
} // func TestReaderClose(t *testing.T)
