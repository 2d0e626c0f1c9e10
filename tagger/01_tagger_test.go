// /home/hvpkod/go/src/github.com/hvpkod/rssel/tagger/01_tagger_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-30 23:14:30 hvpkod>

package tagger

import (
	"testing"
)

func strEqual(s1, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}

	for i, s := range s1 {
		if s2[i] != s {
			return false
		}
	}

	return true
} // func strEqual(s1, s2 []string) bool

func TestSuggestRanking(t *testing.T) {
	var (
		cfg = Config{MaxTags: 10}
		got = Suggest("apple banana",
			"banana cherry banana",
			cfg)
		expected = []string{"banana", "apple", "cherry"}
	)

	// banana counts 2 in the title plus 2 in the body, apple counts 2,
	// cherry counts 1.
	if !strEqual(got, expected) {
		t.Errorf("Unexpected tags: expected %v, got %v",
			expected,
			got)
	}
} // func TestSuggestRanking(t *testing.T)

func TestSuggestTieBreak(t *testing.T) {
	var (
		cfg      = Config{MaxTags: 10}
		got      = Suggest("zebra apple", "", cfg)
		expected = []string{"apple", "zebra"}
	)

	if !strEqual(got, expected) {
		t.Errorf("Ties should break lexically: expected %v, got %v",
			expected,
			got)
	}
} // func TestSuggestTieBreak(t *testing.T)

func TestSuggestShortAndStopwords(t *testing.T) {
	var (
		cfg = Config{
			MaxTags:   10,
			Stopwords: map[string]bool{"the": true},
		}
		got      = Suggest("", "it is ok the muon decays", cfg)
		expected = []string{"decays", "muon"}
	)

	if !strEqual(got, expected) {
		t.Errorf("Short words and stopwords should be dropped: expected %v, got %v",
			expected,
			got)
	}
} // func TestSuggestShortAndStopwords(t *testing.T)

func TestSuggestUnicode(t *testing.T) {
	var (
		cfg      = Config{MaxTags: 10}
		got      = Suggest("", "Café café résumé", cfg)
		expected = []string{"café", "résumé"}
	)

	if !strEqual(got, expected) {
		t.Errorf("Diacritics should survive, case should not: expected %v, got %v",
			expected,
			got)
	}
} // func TestSuggestUnicode(t *testing.T)

func TestSuggestMaxTagsPrefix(t *testing.T) {
	var (
		title = "solar wind probes"
		body  = "solar flares disturb the solar wind, probes measure the wind"
		long  = Suggest(title, body, Config{MaxTags: 6})
		short = Suggest(title, body, Config{MaxTags: 2})
	)

	if len(short) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(short))
	}

	// A lower MaxTags yields a prefix of the longer list.
	if !strEqual(short, long[:2]) {
		t.Errorf("Short list %v is not a prefix of %v",
			short,
			long)
	}
} // func TestSuggestMaxTagsPrefix(t *testing.T)

func TestSuggestDeterministic(t *testing.T) {
	var (
		cfg   = Config{MaxTags: 8}
		title = "quakes shake the city"
		body  = "aftershocks kept the city awake, geologists expect more quakes"
	)

	var first = Suggest(title, body, cfg)

	for i := 0; i < 16; i++ {
		if got := Suggest(title, body, cfg); !strEqual(first, got) {
			t.Fatalf("Suggest is not deterministic: %v vs %v",
				first,
				got)
		}
	}
} // func TestSuggestDeterministic(t *testing.T)
