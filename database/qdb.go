// /home/hvpkod/go/src/github.com/hvpkod/rssel/database/qdb.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 02. 2025 by hvpkod
// (c) 2025 hvpkod
// Time-stamp: <2026-04-11 17:31:44 hvpkod>

package database

import "github.com/hvpkod/rssel/database/query"

var dbQueries = map[query.ID]string{
	query.SourceAdd: `
INSERT INTO source (title, url)
           VALUES (    ?,   ?)
RETURNING id
`,
	query.SourceGetByID: `
SELECT
    title,
    url,
    archived
FROM source
WHERE id = ?
`,
	query.SourceGetByURL: `
SELECT
    id,
    title,
    archived
FROM source
WHERE url = ?
`,
	query.SourceGetAll: `
SELECT
    id,
    title,
    url,
    archived
FROM source
ORDER BY id
`,
	query.SourceSetTitle:    "UPDATE source SET title = ? WHERE id = ?",
	query.SourceSetArchived: "UPDATE source SET archived = ? WHERE id = ?",
	query.SourceDelete:      "DELETE FROM source WHERE id = ?",
	query.SourceGroupAdd: `
INSERT OR IGNORE INTO source_group (source_id, name)
                            VALUES (       ?,    ?)
`,
	query.SourceGroupClear: "DELETE FROM source_group WHERE source_id = ?",
	query.SourceGroupGetBySource: `
SELECT name
FROM source_group
WHERE source_id = ?
ORDER BY name
`,
	query.SourceGroupGetAll: `
SELECT
    source_id,
    name
FROM source_group
ORDER BY source_id, name
`,
	query.SourceGroupCnt: "SELECT COUNT(*) FROM source_group WHERE source_id = ?",
	query.ItemInsert: `
INSERT INTO item (source_id, identity_hash, title, link, published, created, content, summary)
          VALUES (        ?,             ?,     ?,    ?,         ?,       ?,       ?,       ?)
RETURNING id
`,
	query.ItemGetByIdentity: `
SELECT
    i.id,
    i.identity_hash,
    i.title,
    i.link,
    i.published,
    i.created,
    i.content,
    i.summary,
    i.read,
    i.starred,
    i.deleted
FROM item i
JOIN item_identity x ON x.item_id = i.id
WHERE i.source_id = ? AND x.hash = ?
ORDER BY i.id
LIMIT 1
`,
	query.ItemGetByID: `
SELECT
    source_id,
    identity_hash,
    title,
    link,
    published,
    created,
    content,
    summary,
    read,
    starred,
    deleted
FROM item
WHERE id = ?
`,
	query.ItemGetAll: `
SELECT
    id,
    source_id,
    identity_hash,
    title,
    link,
    published,
    created,
    content,
    summary,
    read,
    starred,
    deleted
FROM item
ORDER BY id
`,
	query.ItemUpdateContent: `
UPDATE item
SET title = ?, link = ?, published = ?, content = ?, summary = ?
WHERE id = ?
`,
	query.ItemSetRead:        "UPDATE item SET read = ? WHERE id = ?",
	query.ItemSetStarred:     "UPDATE item SET starred = ? WHERE id = ?",
	query.ItemSetDeleted:     "UPDATE item SET deleted = ? WHERE id = ?",
	query.ItemDeleteBySource: "DELETE FROM item WHERE source_id = ?",
	query.ItemPurge:          "DELETE FROM item WHERE id = ?",
	query.ItemCntBySource:    "SELECT COUNT(*) FROM item WHERE source_id = ?",
	query.ItemIdentityAdd: `
INSERT OR IGNORE INTO item_identity (item_id, hash)
                             VALUES (      ?,    ?)
`,
	query.ItemIdentityDeleteByItem: "DELETE FROM item_identity WHERE item_id = ?",
	query.ItemIdentityDeleteBySource: `
DELETE FROM item_identity
WHERE item_id IN (SELECT id FROM item WHERE source_id = ?)
`,
	query.TagAdd: `
INSERT INTO tag (name)
         VALUES (   ?)
RETURNING id
`,
	query.TagGetByName: "SELECT id FROM tag WHERE name = ?",
	query.TagGetAll: `
SELECT
    t.id,
    t.name,
    COUNT(i.id) AS cnt
FROM tag t
LEFT JOIN tag_link l ON l.tag_id = t.id
LEFT JOIN item i ON i.id = l.item_id AND i.deleted = 0
GROUP BY t.id, t.name
ORDER BY cnt DESC, t.name
`,
	query.TagCleanOrphans: `
DELETE FROM tag
WHERE id NOT IN (SELECT DISTINCT tag_id FROM tag_link)
`,
	query.TagLinkAdd: `
INSERT OR IGNORE INTO tag_link (tag_id, item_id, auto)
                        VALUES (     ?,       ?,    ?)
`,
	query.TagLinkDeleteAutoByItem: "DELETE FROM tag_link WHERE item_id = ? AND auto <> 0",
	query.TagLinkDeleteByItem:     "DELETE FROM tag_link WHERE item_id = ?",
	query.TagLinkDeleteBySource: `
DELETE FROM tag_link
WHERE item_id IN (SELECT id FROM item WHERE source_id = ?)
`,
	query.TagLinkCntBySource: `
SELECT COUNT(*)
FROM tag_link
WHERE item_id IN (SELECT id FROM item WHERE source_id = ?)
`,
	query.TagLinkGetByItem: `
SELECT
    t.name,
    l.auto
FROM tag t
JOIN tag_link l ON t.id = l.tag_id
WHERE l.item_id = ?
ORDER BY t.name
`,
	query.TagLinkGetAll: `
SELECT
    l.item_id,
    t.name
FROM tag_link l
JOIN tag t ON t.id = l.tag_id
ORDER BY l.item_id, t.name
`,
}
