// /home/hvpkod/go/src/github.com/hvpkod/rssel/export/export.go
// -*- mode: go; coding: utf-8; -*-
// Created on 31. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-22 17:59:40 hvpkod>

// Package export writes Items out of the database, either as a file tree
// for browsing or as a tar archive for cold storage.
//
// The archive carries a MANIFEST.json describing every exported Item, so
// the contents stay useful after the originals have been purged.
package export

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
	"github.com/hvpkod/rssel/render"
)

// ungrouped is the directory Items whose Source belongs to no group end
// up in.
const ungrouped = "ungrouped"

// slugLen caps the length of the title part of exported file names.
const slugLen = 48

// ManifestEntry describes one exported Item in the MANIFEST.json.
type ManifestEntry struct {
	ID    int64     `json:"id"`
	Group string    `json:"group"`
	Title string    `json:"title"`
	Link  string    `json:"link"`
	Date  time.Time `json:"date"`
	Tags  []string  `json:"tags,omitempty"`
	Path  string    `json:"path"`
}

// Manifest is the table of contents of a cold-storage archive.
type Manifest struct {
	ExportID string          `json:"export_id"`
	App      string          `json:"app"`
	Version  string          `json:"version"`
	Created  time.Time       `json:"created"`
	Items    []ManifestEntry `json:"items"`
}

// Exporter writes Items to disk.
type Exporter struct {
	log    *log.Logger
	rnd    *render.Renderer
	format render.Format
}

// New creates an Exporter producing files in the given Format.
func New(f render.Format) (*Exporter, error) {
	var (
		err error
		exp = &Exporter{format: f}
	)

	if exp.log, err = common.GetLogger(logdomain.Export); err != nil {
		return nil, err
	} else if exp.rnd, err = render.New(f); err != nil {
		return nil, err
	}

	return exp, nil
} // func New(f render.Format) (*Exporter, error)

// itemPath is the relative path of an Item within an export, i.e.
// group/NNNNNN-slug.ext.
func (exp *Exporter) itemPath(i *model.Item) string {
	var group = ungrouped

	if len(i.Groups) > 0 {
		group = slugify(i.Groups[0])
	}

	return filepath.Join(group,
		fmt.Sprintf("%06d-%s%s",
			i.ID,
			slugify(i.Title),
			exp.format.Ext()))
} // func (exp *Exporter) itemPath(i *model.Item) string

// ExportTree writes the given Items below dir, one file per Item, grouped
// into one directory per group. It returns the number of files written.
func (exp *Exporter) ExportTree(dir string, items []model.Item) (int, error) {
	var (
		err error
		cnt int
	)

	for idx := range items {
		var (
			i   = &items[idx]
			dst = filepath.Join(dir, exp.itemPath(i))
			fh  *os.File
		)

		if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			exp.log.Printf("[ERROR] Cannot create directory %s: %s\n",
				filepath.Dir(dst),
				err.Error())
			return cnt, err
		} else if fh, err = os.Create(dst); err != nil {
			exp.log.Printf("[ERROR] Cannot create %s: %s\n",
				dst,
				err.Error())
			return cnt, err
		}

		err = exp.rnd.RenderItem(fh, i)
		fh.Close() // nolint: errcheck,gosec

		if err != nil {
			exp.log.Printf("[ERROR] Cannot render Item %d to %s: %s\n",
				i.ID,
				dst,
				err.Error())
			return cnt, err
		}

		cnt++
	}

	exp.log.Printf("[INFO] Exported %d items below %s\n",
		cnt,
		dir)

	return cnt, nil
} // func (exp *Exporter) ExportTree(dir string, items []model.Item) (int, error)

// ExportArchive writes the given Items into a gzipped tar archive at dst,
// the same layout as ExportTree plus a MANIFEST.json at the root.
func (exp *Exporter) ExportArchive(dst string, items []model.Item) error {
	var (
		err error
		fh  *os.File
	)

	if err = os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		exp.log.Printf("[ERROR] Cannot create directory %s: %s\n",
			filepath.Dir(dst),
			err.Error())
		return err
	} else if fh, err = os.Create(dst); err != nil {
		exp.log.Printf("[ERROR] Cannot create archive %s: %s\n",
			dst,
			err.Error())
		return err
	}

	defer fh.Close() // nolint: errcheck,gosec

	var (
		zw  = gzip.NewWriter(fh)
		tw  = tar.NewWriter(zw)
		now = time.Now()
		man = Manifest{
			ExportID: uuid.NewString(),
			App:      common.AppName,
			Version:  common.Version,
			Created:  now,
		}
	)

	for idx := range items {
		var (
			i   = &items[idx]
			rel = exp.itemPath(i)
			buf bytes.Buffer
		)

		if err = exp.rnd.RenderItem(&buf, i); err != nil {
			exp.log.Printf("[ERROR] Cannot render Item %d: %s\n",
				i.ID,
				err.Error())
			return err
		}

		if err = writeTarFile(tw, rel, buf.Bytes(), i.Published); err != nil {
			exp.log.Printf("[ERROR] Cannot add %s to archive: %s\n",
				rel,
				err.Error())
			return err
		}

		var group = ungrouped

		if len(i.Groups) > 0 {
			group = i.Groups[0]
		}

		man.Items = append(man.Items, ManifestEntry{
			ID:    i.ID,
			Group: group,
			Title: i.Title,
			Link:  i.Link,
			Date:  i.Published,
			Tags:  i.Tags,
			Path:  rel,
		})
	}

	var raw []byte

	if raw, err = json.MarshalIndent(&man, "", "  "); err != nil {
		return err
	} else if err = writeTarFile(tw, "MANIFEST.json", raw, now); err != nil {
		exp.log.Printf("[ERROR] Cannot add manifest to archive: %s\n",
			err.Error())
		return err
	}

	if err = tw.Close(); err != nil {
		return err
	} else if err = zw.Close(); err != nil {
		return err
	}

	exp.log.Printf("[INFO] Exported %d items to archive %s (export id %s)\n",
		len(man.Items),
		dst,
		man.ExportID)

	return nil
} // func (exp *Exporter) ExportArchive(dst string, items []model.Item) error

func writeTarFile(tw *tar.Writer, name string, body []byte, stamp time.Time) error {
	var (
		err error
		hdr = &tar.Header{
			Name:    name,
			Mode:    0644,
			Size:    int64(len(body)),
			ModTime: stamp,
		}
	)

	if err = tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = tw.Write(body)
	return err
} // func writeTarFile(tw *tar.Writer, name string, body []byte, stamp time.Time) error

// slugify turns an arbitrary string into something safe for a file name.
func slugify(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteRune('-')
		}

		if b.Len() >= slugLen {
			break
		}
	}

	var slug = strings.Trim(b.String(), "-")

	if slug == "" {
		slug = "untitled"
	}

	return slug
} // func slugify(s string) string
