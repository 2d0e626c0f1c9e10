// /home/hvpkod/go/src/github.com/hvpkod/rssel/settings/01_settings_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-31 01:20:05 hvpkod>

package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissing(t *testing.T) {
	var (
		err error
		st  *Settings
	)

	if st, err = Load("/nonexistent/settings.yaml"); err != nil {
		t.Fatalf("Loading missing settings should yield the defaults: %s",
			err.Error())
	} else if *st != *Defaults() {
		t.Fatalf("Expected the default settings, got %#v", st)
	}
} // func TestLoadMissing(t *testing.T)

func TestSaveLoad(t *testing.T) {
	var (
		err  error
		path = filepath.Join(t.TempDir(), "settings.yaml")
		st   = Defaults()
		back *Settings
	)

	st.MaxTags = 8
	st.IncludeDomain = true
	st.FetchTimeout = time.Second * 10

	if err = st.Save(path); err != nil {
		t.Fatalf("Failed to save settings: %s", err.Error())
	} else if back, err = Load(path); err != nil {
		t.Fatalf("Failed to load settings: %s", err.Error())
	} else if *back != *st {
		t.Fatalf("Settings came back wrong:\nExpected: %#v\nGot:      %#v",
			st,
			back)
	}
} // func TestSaveLoad(t *testing.T)

func TestLoadPartial(t *testing.T) {
	var (
		err  error
		path = filepath.Join(t.TempDir(), "settings.yaml")
		st   *Settings
	)

	// Keys absent from the file keep their defaults.
	if err = os.WriteFile(path, []byte("max_tags: 12\n"), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %s", err.Error())
	} else if st, err = Load(path); err != nil {
		t.Fatalf("Failed to load settings: %s", err.Error())
	} else if st.MaxTags != 12 {
		t.Fatalf("max_tags should be 12, is %d", st.MaxTags)
	} else if st.FetchWorkers != Defaults().FetchWorkers {
		t.Fatalf("fetch_workers should keep its default, is %d",
			st.FetchWorkers)
	}
} // func TestLoadPartial(t *testing.T)

func TestSourcesRoundTrip(t *testing.T) {
	var (
		err   error
		path  = filepath.Join(t.TempDir(), "sources.json")
		specs = []SourceSpec{
			{
				Title:  "First Feed",
				URL:    "https://www.example.org/one/feed.rss",
				Groups: []string{"news"},
			},
			{
				Title: "Second Feed",
				URL:   "https://www.example.org/two/feed.rss",
			},
		}
		back []SourceSpec
	)

	if err = SaveSources(path, specs); err != nil {
		t.Fatalf("Failed to save sources: %s", err.Error())
	} else if back, err = LoadSources(path); err != nil {
		t.Fatalf("Failed to load sources: %s", err.Error())
	} else if len(back) != len(specs) {
		t.Fatalf("Expected %d sources, got %d",
			len(specs),
			len(back))
	}

	for i, s := range specs {
		if back[i].Title != s.Title || back[i].URL != s.URL {
			t.Errorf("Source %d came back wrong: %#v", i, back[i])
		}
	}
} // func TestSourcesRoundTrip(t *testing.T)

func TestLoadSourcesMissing(t *testing.T) {
	var (
		err   error
		specs []SourceSpec
	)

	if specs, err = LoadSources("/nonexistent/sources.json"); err != nil {
		t.Fatalf("Loading missing sources should not fail: %s",
			err.Error())
	} else if len(specs) != 0 {
		t.Fatalf("A missing sources file should yield an empty list, got %v",
			specs)
	}
} // func TestLoadSourcesMissing(t *testing.T)
