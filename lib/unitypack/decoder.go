// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"strings"
	"unicode/utf8"
)

// AssetRecord accumulates the members of one GUID bundle. Archive
// entries for a GUID are not guaranteed contiguous or complete, so
// records are built incrementally and only inspected once the whole
// archive has been read.
type AssetRecord struct {
	// GUID is the bundle directory name, a non-empty opaque token.
	GUID string

	// Path is the decoded project-relative path from the pathname
	// member. Empty when HasPath is false.
	Path string

	// HasPath reports whether a usable pathname member was seen.
	HasPath bool

	// Asset holds the raw asset payload, nil if the bundle had none.
	Asset []byte

	// Meta holds the raw asset.meta sidecar, nil if absent. Treated as
	// opaque bytes except for the advisory MetaGUID cross-check.
	Meta []byte

	// MetaGUID is the guid field parsed from the meta sidecar, empty
	// when the sidecar is absent or not parseable.
	MetaGUID string

	// pathDefect describes why a pathname member that was present
	// could not be used (currently: invalid UTF-8). Reported through
	// the resolver as a skip reason.
	pathDefect string
}

// Extractable reports whether the record carries both a destination
// and at least one payload. Records failing this never reach the
// materializer.
func (r *AssetRecord) Extractable() bool {
	return r.HasPath && (r.Asset != nil || r.Meta != nil)
}

// Decoder groups package entries by GUID into AssetRecords. Grouping
// requires seeing the whole archive — member order within a bundle is
// arbitrary — so the decoder accumulates until the entry sequence is
// exhausted and [Decoder.Records] is called.
type Decoder struct {
	records map[string]*AssetRecord
	order   []string
	loose   []string
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	return &Decoder{records: make(map[string]*AssetRecord)}
}

// Add folds one entry into the matching record. Loose top-level
// entries (empty GUID) are remembered for the summary but never
// produce a record. Unknown member names under a GUID are ignored.
func (d *Decoder) Add(entry *Entry) {
	if entry.GUID == "" {
		d.loose = append(d.loose, entry.Member)
		return
	}

	record, ok := d.records[entry.GUID]
	if !ok {
		record = &AssetRecord{GUID: entry.GUID}
		d.records[entry.GUID] = record
		d.order = append(d.order, entry.GUID)
	}

	switch entry.Member {
	case memberPathname:
		record.Path, record.HasPath, record.pathDefect = decodePathname(entry.Content)
	case memberAsset:
		record.Asset = entry.Content
	case memberMeta:
		record.Meta = entry.Content
		record.MetaGUID = metaGUID(entry.Content)
	}
}

// Records returns the accumulated records in first-seen archive order.
// That order is the tie-break for destination collisions, so it must
// be deterministic across runs.
func (d *Decoder) Records() []*AssetRecord {
	records := make([]*AssetRecord, 0, len(d.order))
	for _, guid := range d.order {
		records = append(records, d.records[guid])
	}
	return records
}

// Loose returns the member names of top-level entries that belonged to
// no GUID bundle.
func (d *Decoder) Loose() []string {
	return d.loose
}

// decodePathname decodes a pathname member. The path is the first line
// of the file (newer Unity exporters append a second line holding an
// asset-origin marker), with trailing whitespace trimmed. Content that
// is not valid UTF-8 is fatal for the record: there is no way to know
// what destination was intended.
func decodePathname(content []byte) (path string, ok bool, defect string) {
	if !utf8.Valid(content) {
		return "", false, "pathname is not valid UTF-8"
	}
	line := string(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimRight(line, " \t\r")
	if line == "" {
		return "", false, "pathname is empty"
	}
	return line, true, ""
}
