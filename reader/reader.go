// /home/hvpkod/go/src/github.com/hvpkod/rssel/reader/reader.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 03. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-08-28 20:33:10 hvpkod>

// Package reader fetches and parses the subscribed feeds and hands the
// resulting entries to the ingest step.
//
// Fetches run concurrently in a bounded worker pool, the per-source writes
// serialize against the database through its connection pool. ETags and
// Last-Modified headers from earlier fetches are cached, so feeds that have
// not changed cost one conditional request and no parsing.
package reader

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/faabiosr/cachego"
	"github.com/faabiosr/cachego/bolt"
	"github.com/mmcdole/gofeed"
	bt "go.etcd.io/bbolt" // Use the BoltDB backend

	"github.com/hvpkod/rssel/common"
	"github.com/hvpkod/rssel/common/path"
	"github.com/hvpkod/rssel/database"
	"github.com/hvpkod/rssel/ingest"
	"github.com/hvpkod/rssel/logdomain"
	"github.com/hvpkod/rssel/model"
)

// cacheLifetime is how long cached ETag/Last-Modified values are kept.
// Feeds that vanish for longer than this get one unconditional fetch.
const cacheLifetime = time.Hour * 24 * 30

// Reader fetches the subscribed feeds.
type Reader struct {
	log     *log.Logger
	pool    *database.Pool
	client  *http.Client
	cdb     *bt.DB
	cache   cachego.Cache
	workers int
}

// New creates a Reader with the given number of fetch workers.
func New(workers int, timeout time.Duration) (*Reader, error) {
	var (
		err error
		rdr = &Reader{
			workers: workers,
			client:  &http.Client{Timeout: timeout},
		}
	)

	if rdr.log, err = common.GetLogger(logdomain.Fetch); err != nil {
		return nil, err
	} else if rdr.pool, err = database.NewPool(workers); err != nil {
		rdr.log.Printf("[ERROR] Cannot open database Pool: %s\n",
			err.Error())
		return nil, err
	} else if rdr.cdb, err = bt.Open(common.Path(path.FetchCache), 0600, nil); err != nil {
		rdr.log.Printf("[ERROR] Failed to open fetch cache at %s: %s\n",
			common.Path(path.FetchCache),
			err.Error())
		rdr.pool.Close() // nolint: errcheck
		return nil, err
	}

	rdr.cache = bolt.New(rdr.cdb)

	return rdr, nil
} // func New(workers int, timeout time.Duration) (*Reader, error)

// Close releases the Reader's database connections and its fetch cache.
func (rdr *Reader) Close() error {
	var err error

	if err = rdr.pool.Close(); err != nil {
		return err
	}

	return rdr.cdb.Close()
} // func (rdr *Reader) Close() error

// FetchAll fetches every non-archived Source and ingests the results.
// One feed failing to fetch or parse does not affect the others, failures
// are collected per Source in the returned BatchResult.
func (rdr *Reader) FetchAll(ctx context.Context) (*ingest.BatchResult, error) {
	var (
		err     error
		sources []model.Source
		db      = rdr.pool.Get()
	)

	sources, err = db.SourceGetAll()
	rdr.pool.Put(db)

	if err != nil {
		return nil, err
	}

	var (
		res  = ingest.NewBatchResult()
		lock sync.Mutex
		wg   sync.WaitGroup
		q    = make(chan *model.Source, rdr.workers)
	)

	for i := 0; i < rdr.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for src := range q {
				select {
				case <-ctx.Done():
					return
				default:
				}

				var (
					sres *ingest.Result
					serr *ingest.SourceError
				)

				sres, serr = rdr.fetchSource(ctx, src)

				lock.Lock()
				if serr != nil {
					res.Errors = append(res.Errors, serr)
				} else {
					res.PerSource[src.ID] = sres
				}
				lock.Unlock()
			}
		}()
	}

	for idx := range sources {
		if sources[idx].Archived {
			continue
		}

		select {
		case <-ctx.Done():
			close(q)
			wg.Wait()
			return res, ctx.Err()
		case q <- &sources[idx]:
		}
	}

	close(q)
	wg.Wait()

	var total = res.Totals()

	rdr.log.Printf("[INFO] Fetched %d sources: %d new, %d updated, %d failed\n",
		len(res.PerSource),
		total.New,
		total.Updated,
		len(res.Errors))

	return res, nil
} // func (rdr *Reader) FetchAll(ctx context.Context) (*ingest.BatchResult, error)

// FetchOne fetches a single Source and ingests the result.
func (rdr *Reader) FetchOne(ctx context.Context, src *model.Source) (*ingest.Result, error) {
	var res, serr = rdr.fetchSource(ctx, src)

	if serr != nil {
		return nil, serr
	}

	return res, nil
} // func (rdr *Reader) FetchOne(ctx context.Context, src *model.Source) (*ingest.Result, error)

func (rdr *Reader) fetchSource(ctx context.Context, src *model.Source) (*ingest.Result, *ingest.SourceError) {
	var (
		err     error
		entries []model.RawEntry
		kind    ingest.ErrorKind
	)

	if entries, kind, err = rdr.fetchEntries(ctx, src); err != nil {
		rdr.log.Printf("[ERROR] %s %s: %s\n",
			kind,
			src.URL,
			err.Error())
		return nil, &ingest.SourceError{
			Source: src,
			Kind:   kind,
			Err:    err,
		}
	} else if entries == nil {
		// Not modified since the last fetch.
		return new(ingest.Result), nil
	}

	var (
		db  = rdr.pool.Get()
		ing *ingest.Ingestor
		res *ingest.Result
	)

	defer rdr.pool.Put(db)

	if ing, err = ingest.New(db); err != nil {
		return nil, &ingest.SourceError{
			Source: src,
			Kind:   ingest.FetchError,
			Err:    err,
		}
	} else if res, err = ing.IngestSource(src, entries); err != nil {
		return nil, &ingest.SourceError{
			Source: src,
			Kind:   ingest.FetchError,
			Err:    err,
		}
	}

	return res, nil
} // func (rdr *Reader) fetchSource(ctx context.Context, src *model.Source) (*ingest.Result, *ingest.SourceError)

// fetchEntries performs the HTTP request and parses the feed. A nil entry
// slice with a nil error means the feed has not changed since last time.
func (rdr *Reader) fetchEntries(ctx context.Context, src *model.Source) ([]model.RawEntry, ingest.ErrorKind, error) {
	var (
		err error
		req *http.Request
		res *http.Response
	)

	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil); err != nil {
		return nil, ingest.FetchError, err
	}

	req.Header.Set("User-Agent",
		fmt.Sprintf("%s/%s", common.AppName, common.Version))

	if etag, cerr := rdr.cache.Fetch(etagKey(src)); cerr == nil && etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastmod, cerr := rdr.cache.Fetch(lastmodKey(src)); cerr == nil && lastmod != "" {
		req.Header.Set("If-Modified-Since", lastmod)
	}

	if res, err = rdr.client.Do(req); err != nil {
		return nil, ingest.FetchError, err
	}

	defer res.Body.Close() // nolint: errcheck,gosec

	switch {
	case res.StatusCode == http.StatusNotModified:
		rdr.log.Printf("[DEBUG] %s has not changed\n", src.URL)
		return nil, ingest.FetchError, nil
	case res.StatusCode != http.StatusOK:
		return nil, ingest.FetchError, fmt.Errorf("GET %s: %s",
			src.URL,
			res.Status)
	}

	if etag := res.Header.Get("ETag"); etag != "" {
		if cerr := rdr.cache.Save(etagKey(src), etag, cacheLifetime); cerr != nil {
			rdr.log.Printf("[ERROR] Cannot cache ETag for %s: %s\n",
				src.URL,
				cerr.Error())
		}
	}
	if lastmod := res.Header.Get("Last-Modified"); lastmod != "" {
		if cerr := rdr.cache.Save(lastmodKey(src), lastmod, cacheLifetime); cerr != nil {
			rdr.log.Printf("[ERROR] Cannot cache Last-Modified for %s: %s\n",
				src.URL,
				cerr.Error())
		}
	}

	var (
		parser = gofeed.NewParser()
		feed   *gofeed.Feed
	)

	if feed, err = parser.Parse(res.Body); err != nil {
		return nil, ingest.ParseError, err
	}

	var entries = make([]model.RawEntry, 0, len(feed.Items))

	for _, item := range feed.Items {
		var e = model.RawEntry{
			Title: item.Title,
			Link:  item.Link,
			GUID:  item.GUID,
			// Entries without a date get the epoch. The value has to
			// be stable across fetches, or every fetch would count
			// the entry as updated and its fallback identity would
			// drift.
			Published: time.Unix(0, 0),
			Content:   item.Content,
			Summary:   item.Description,
		}

		if item.PublishedParsed != nil {
			e.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			e.Published = *item.UpdatedParsed
		}

		if e.Content == "" {
			e.Content = item.Description
		}

		entries = append(entries, e)
	}

	return entries, ingest.FetchError, nil
} // func (rdr *Reader) fetchEntries(ctx context.Context, src *model.Source) ([]model.RawEntry, ingest.ErrorKind, error)

func etagKey(src *model.Source) string {
	return "etag:" + src.URL
} // func etagKey(src *model.Source) string

func lastmodKey(src *model.Source) string {
	return "lastmod:" + src.URL
} // func lastmodKey(src *model.Source) string
