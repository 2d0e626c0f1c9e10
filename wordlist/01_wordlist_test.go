// /home/hvpkod/go/src/github.com/hvpkod/rssel/wordlist/01_wordlist_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 01:12:40 hvpkod>

package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	const text = `# Words to highlight
Fusion

  comet
# a comment, not a word
FUSION
`

	var s = Parse(text)

	if len(s) != 2 {
		t.Fatalf("Expected 2 words, got %d (%v)",
			len(s),
			s.Words())
	}

	if !s.Contains("fusion") || !s.Contains("comet") {
		t.Fatalf("Unexpected word set: %v", s.Words())
	}

	if s.Contains("comment") {
		t.Fatal("Comment lines should be skipped")
	}
} // func TestParse(t *testing.T)

func TestWordsSorted(t *testing.T) {
	var (
		s     = Parse("zebra\napple\nmango\n")
		words = s.Words()
	)

	for i := 1; i < len(words); i++ {
		if words[i-1] >= words[i] {
			t.Fatalf("Words are not sorted: %v", words)
		}
	}
} // func TestWordsSorted(t *testing.T)

func TestLoadMissing(t *testing.T) {
	var (
		err error
		s   Set
	)

	// A missing word list is not an error, there is just nothing to
	// highlight.
	if s, err = Load("/nonexistent/highlights.txt"); err != nil {
		t.Fatalf("Loading a missing file should not fail: %s", err.Error())
	} else if len(s) != 0 {
		t.Fatalf("A missing file should yield an empty Set, got %v",
			s.Words())
	}
} // func TestLoadMissing(t *testing.T)

func TestLoad(t *testing.T) {
	var (
		err  error
		s    Set
		path = filepath.Join(t.TempDir(), "words.txt")
	)

	if err = os.WriteFile(path, []byte("Solar\nwind\n"), 0644); err != nil {
		t.Fatalf("Failed to write word list: %s", err.Error())
	}

	if s, err = Load(path); err != nil {
		t.Fatalf("Failed to load word list: %s", err.Error())
	} else if !s.Contains("solar") || !s.Contains("wind") {
		t.Fatalf("Unexpected word set: %v", s.Words())
	}
} // func TestLoad(t *testing.T)

func TestLoadStopwordsFallback(t *testing.T) {
	var (
		err error
		s   Set
	)

	if s, err = LoadStopwords("/nonexistent/stopwords.txt"); err != nil {
		t.Fatalf("Loading missing stopwords should not fail: %s",
			err.Error())
	} else if len(s) == 0 {
		t.Fatal("Missing stopwords should fall back to the built-in list")
	} else if !s.Contains("the") {
		t.Fatalf("The built-in stopwords should contain \"the\": %v",
			s.Words())
	}
} // func TestLoadStopwordsFallback(t *testing.T)
