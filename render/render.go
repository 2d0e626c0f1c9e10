// /home/hvpkod/go/src/github.com/hvpkod/rssel/render/render.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-22 16:48:29 hvpkod>

// Package render formats Items for output, as Markdown, plain text, JSON,
// or HTML. It consumes the ordered Item sequences the filter engine
// produces and holds no lifecycle logic of its own.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// previewLen is the length of the body snippet in list output.
const previewLen = 240

// htmlPreviewLen is the length of the body snippet in HTML list output.
// HTML snippets are cut at a tag boundary, so the markup stays valid.
const htmlPreviewLen = 600

// Format identifies an output format.
type Format uint8

const (
	Markdown Format = iota
	Text
	JSON
	HTML
)

func (f Format) String() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	case JSON:
		return "json"
	case HTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
} // func (f Format) String() string

// Ext returns the file extension used for the Format.
func (f Format) Ext() string {
	return "." + f.String()
} // func (f Format) Ext() string

// ParseFormat parses a Format from its string form.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "md", "markdown":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "html":
		return HTML, nil
	default:
		return Markdown, fmt.Errorf("unknown output format %q", s)
	}
} // func ParseFormat(s string) (Format, error)

// Renderer formats Items.
type Renderer struct {
	log *log.Logger
	fmt Format
}

// New creates a Renderer for the given Format.
func New(f Format) (*Renderer, error) {
	var (
		err error
		r   = &Renderer{fmt: f}
	)

	if r.log, err = common.GetLogger(logdomain.Export); err != nil {
		return nil, err
	}

	return r, nil
} // func New(f Format) (*Renderer, error)

// RenderList writes the given Items to w, one after the other, in the
// Renderer's Format.
func (r *Renderer) RenderList(w io.Writer, items []model.Item) error {
	switch r.fmt {
	case JSON:
		return renderJSON(w, items)
	case HTML:
		return renderHTML(w, items, false)
	}

	var err error

	for idx := range items {
		if err = r.RenderItem(w, &items[idx]); err != nil {
			return err
		}
	}

	return nil
} // func (r *Renderer) RenderList(w io.Writer, items []model.Item) error

// RenderItem writes a single Item to w in the Renderer's Format.
func (r *Renderer) RenderItem(w io.Writer, i *model.Item) error {
	switch r.fmt {
	case Markdown:
		return renderMarkdown(w, i)
	case Text:
		return renderText(w, i)
	case JSON:
		return renderJSON(w, []model.Item{*i})
	case HTML:
		return renderHTML(w, []model.Item{*i}, true)
	default:
		return fmt.Errorf("unknown output format %d", r.fmt)
	}
} // func (r *Renderer) RenderItem(w io.Writer, i *model.Item) error

func renderMarkdown(w io.Writer, i *model.Item) error {
	var (
		err  error
		mark string
	)

	if i.Starred {
		mark = " ★"
	}

	if _, err = fmt.Fprintf(w, "## [%d]%s %s\n\n", i.ID, mark, i.Title); err != nil {
		return err
	} else if _, err = fmt.Fprintf(w, "- Link: <%s>\n- Date: %s\n",
		i.Link,
		i.Published.Format(time.DateTime)); err != nil {
		return err
	}

	if len(i.Groups) > 0 {
		if _, err = fmt.Fprintf(w, "- Groups: %s\n", strings.Join(i.Groups, ", ")); err != nil {
			return err
		}
	}

	if len(i.Tags) > 0 {
		if _, err = fmt.Fprintf(w, "- Tags: %s\n", strings.Join(i.Tags, ", ")); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "\n%s\n\n", strings.TrimSpace(i.Plaintext()))
	return err
} // func renderMarkdown(w io.Writer, i *model.Item) error

func renderText(w io.Writer, i *model.Item) error {
	var flags = make([]byte, 0, 3)

	if !i.Read {
		flags = append(flags, 'N')
	}
	if i.Starred {
		flags = append(flags, '*')
	}
	if i.Highlighted {
		flags = append(flags, '!')
	}

	var preview = strings.TrimSpace(i.Plaintext())

	if len([]rune(preview)) > previewLen {
		preview = string([]rune(preview)[:previewLen]) + "..."
	}

	var _, err = fmt.Fprintf(w, "%6d %-3s %s  %s\n       %s\n",
		i.ID,
		string(flags),
		i.Published.Format(time.DateOnly),
		i.Title,
		preview)

	return err
} // func renderText(w io.Writer, i *model.Item) error

// wireItem is the JSON wire form of an Item.
type wireItem struct {
	ID          int64     `json:"id"`
	SourceID    int64     `json:"source_id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published"`
	Groups      []string  `json:"groups,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Read        bool      `json:"read"`
	Starred     bool      `json:"starred"`
	Highlighted bool      `json:"highlighted,omitempty"`
	Body        string    `json:"body"`
}

func renderJSON(w io.Writer, items []model.Item) error {
	var wire = make([]wireItem, len(items))

	for idx := range items {
		wire[idx] = wireItem{
			ID:          items[idx].ID,
			SourceID:    items[idx].SourceID,
			Title:       items[idx].Title,
			Link:        items[idx].Link,
			Published:   items[idx].Published,
			Groups:      items[idx].Groups,
			Tags:        items[idx].Tags,
			Read:        items[idx].Read,
			Starred:     items[idx].Starred,
			Highlighted: items[idx].Highlighted,
			Body:        items[idx].Plaintext(),
		}
	}

	var enc = json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(wire)
} // func renderJSON(w io.Writer, items []model.Item) error

var htmlTmpl = template.Must(template.New("items").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>rssel export</title>
  </head>
  <body>
    {{ range . }}
    <article>
      <h2>[{{ .ID }}]{{ if .Starred }} &#9733;{{ end }} <a href="{{ .Link }}">{{ .Title }}</a></h2>
      <p>{{ .Published.Format "2006-01-02 15:04:05" }}
      {{- if .Tags }} &mdash; {{ range $i, $t := .Tags }}{{ if $i }}, {{ end }}{{ $t }}{{ end }}{{ end }}</p>
      <div>{{ .BodyHTML }}</div>
    </article>
    {{ end }}
  </body>
</html>
`))

type htmlItem struct {
	ID        int64
	Title     string
	Link      string
	Published time.Time
	Tags      []string
	Starred   bool
	BodyHTML  template.HTML
}

// renderHTML writes the Items as an HTML document. In list mode the bodies
// are cut down to snippets, a single Item gets its full body.
func renderHTML(w io.Writer, items []model.Item, full bool) error {
	var wire = make([]htmlItem, len(items))

	for idx := range items {
		var body = items[idx].BodyText()

		if !full {
			body = items[idx].Preview(htmlPreviewLen)
		}

		wire[idx] = htmlItem{
			ID:        items[idx].ID,
			Title:     items[idx].Title,
			Link:      items[idx].Link,
			Published: items[idx].Published,
			Tags:      items[idx].Tags,
			Starred:   items[idx].Starred,
			BodyHTML:  template.HTML(body), // nolint: gosec
		}
	}

	return htmlTmpl.Execute(w, wire)
} // func renderHTML(w io.Writer, items []model.Item, full bool) error
