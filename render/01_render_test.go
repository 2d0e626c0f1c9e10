// /home/hvpkod/go/src/github.com/hvpkod/rssel/render/01_render_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 01. 09. 2026 by hvpkod
// (c) 2026 hvpkod
// Time-stamp: <2026-09-01 10:22:18 hvpkod>

package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hvpkod/rssel/model"
)

func TestParseFormat(t *testing.T) {
	type testCase struct {
		raw         string
		expected    Format
		expectError bool
	}

	var testCases = []testCase{
		{raw: "", expected: Markdown},
		{raw: "md", expected: Markdown},
		{raw: "Markdown", expected: Markdown},
		{raw: "TXT", expected: Text},
		{raw: "json", expected: JSON},
		{raw: "html", expected: HTML},
		{raw: "pdf", expectError: true},
	}

	for _, c := range testCases {
		var f, err = ParseFormat(c.raw)

		if c.expectError {
			if err == nil {
				t.Errorf("ParseFormat(%q) should have failed", c.raw)
			}
		} else if err != nil {
			t.Errorf("ParseFormat(%q) failed: %s", c.raw, err.Error())
		} else if f != c.expected {
			t.Errorf("ParseFormat(%q) = %s, expected %s",
				c.raw,
				f,
				c.expected)
		}
	}
} // func TestParseFormat(t *testing.T)

// An HTML listing carries snippets cut at a tag boundary, a single item
// gets its full body.
func TestRenderHTMLSnippet(t *testing.T) {
	var (
		err  error
		rnd  *Renderer
		item = model.Item{
			ID:        1,
			Title:     "A very long article",
			Link:      "https://www.example.org/news/long.html",
			Published: time.Unix(1700000000, 0),
			Content: "<p>" +
				strings.Repeat("word ", 200) +
				"terminus</p>",
		}
	)

	if rnd, err = New(HTML); err != nil {
		t.Fatalf("Failed to create Renderer: %s", err.Error())
	}

	var buf bytes.Buffer

	if err = rnd.RenderList(&buf, []model.Item{item}); err != nil {
		t.Fatalf("Failed to render item list: %s", err.Error())
	}

	var listing = buf.String()

	if strings.Contains(listing, "terminus") {
		t.Error("The listing should carry a snippet, not the full body")
	} else if !strings.Contains(listing, "...") {
		t.Error("The snippet should end in an ellipsis")
	}

	buf.Reset()

	if err = rnd.RenderItem(&buf, &item); err != nil {
		t.Fatalf("Failed to render single item: %s", err.Error())
	}

	if !strings.Contains(buf.String(), "terminus") {
		t.Error("A single item should be rendered with its full body")
	}
} // func TestRenderHTMLSnippet(t *testing.T)
