// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/qinit.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-02-14 16:40:28 hvpkod>

package database

var initQueries = []string{
	`
CREATE TABLE source (
    id                  INTEGER PRIMARY KEY,
    title               TEXT NOT NULL DEFAULT '',
    url                 TEXT UNIQUE NOT NULL,
    archived            INTEGER NOT NULL DEFAULT 0,
    CHECK (url <> '')
) STRICT
`,
	"CREATE INDEX source_archived_idx ON source (archived <> 0)",

	`
CREATE TABLE source_group (
    id		INTEGER PRIMARY KEY,
    source_id	INTEGER NOT NULL,
    name	TEXT NOT NULL,
    FOREIGN KEY (source_id) REFERENCES source (id)
        ON UPDATE RESTRICT
        ON DELETE RESTRICT,
    UNIQUE (source_id, name),
    CHECK (name <> '')
) STRICT`,
	"CREATE INDEX sg_source_idx ON source_group (source_id)",
	"CREATE INDEX sg_name_idx ON source_group (name)",

	`
CREATE TABLE item (
    id                  INTEGER PRIMARY KEY,
    source_id           INTEGER NOT NULL,
    identity_hash       TEXT NOT NULL,
    title               TEXT NOT NULL DEFAULT '',
    link                TEXT NOT NULL DEFAULT '',
    published           INTEGER NOT NULL DEFAULT 0,
    created             INTEGER NOT NULL,
    content             TEXT NOT NULL DEFAULT '',
    summary             TEXT NOT NULL DEFAULT '',
    read                INTEGER NOT NULL DEFAULT 0,
    starred             INTEGER NOT NULL DEFAULT 0,
    deleted             INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (source_id) REFERENCES source (id)
        ON UPDATE RESTRICT
        ON DELETE RESTRICT,
    UNIQUE (source_id, identity_hash),
    CHECK (identity_hash <> '')
) STRICT
`,
	"CREATE INDEX item_source_idx ON item (source_id)",
	"CREATE INDEX item_published_idx ON item (published)",
	"CREATE INDEX item_created_idx ON item (created)",
	"CREATE INDEX item_read_idx ON item (read)",
	"CREATE INDEX item_starred_idx ON item (starred <> 0)",
	"CREATE INDEX item_deleted_idx ON item (deleted <> 0)",

	`
CREATE TABLE item_identity (
    id		INTEGER PRIMARY KEY,
    item_id	INTEGER NOT NULL,
    hash	TEXT NOT NULL,
    FOREIGN KEY (item_id) REFERENCES item (id)
        ON UPDATE RESTRICT
        ON DELETE CASCADE,
    UNIQUE (item_id, hash),
    CHECK (hash <> '')
) STRICT
`,
	"CREATE INDEX ii_item_idx ON item_identity (item_id)",
	"CREATE INDEX ii_hash_idx ON item_identity (hash)",

	`
CREATE TABLE tag (
    id		INTEGER PRIMARY KEY,
    name	TEXT UNIQUE NOT NULL,
    CHECK (name <> '')
) STRICT`,

	`
CREATE TABLE tag_link (
    id		INTEGER PRIMARY KEY,
    tag_id	INTEGER NOT NULL,
    item_id	INTEGER NOT NULL,
    auto	INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (tag_id) REFERENCES tag (id)
        ON UPDATE RESTRICT
        ON DELETE CASCADE,
    FOREIGN KEY (item_id) REFERENCES item (id)
        ON UPDATE RESTRICT
        ON DELETE CASCADE,
    UNIQUE (tag_id, item_id)
) STRICT
`,
	"CREATE INDEX tl_tag_idx ON tag_link (tag_id)",
	"CREATE INDEX tl_item_idx ON tag_link (item_id)",
}
