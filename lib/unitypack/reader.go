// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Member names a bundle can contain. Anything else under a GUID
// directory (preview.png, asset.meta.orig, ...) is ignored by the
// decoder.
const (
	memberPathname = "pathname"
	memberAsset    = "asset"
	memberMeta     = "asset.meta"
)

// Entry is one raw tar member of a package archive, keyed by the GUID
// directory it belongs to. Entries are transient: the [Decoder]
// consumes them immediately and they are not retained.
type Entry struct {
	// GUID is the top-level directory segment of the member name.
	// Empty for loose top-level files, which are never extractable.
	GUID string

	// Member is the path remainder below the GUID directory, e.g.
	// "pathname", "asset", "asset.meta", or something unknown.
	Member string

	// Content is the full member content.
	Content []byte

	// Size is the member size from the tar header.
	Size int64
}

// Reader streams entries from a .unitypackage archive in archive
// order. The sequence is lazy, finite, and non-restartable: open a new
// Reader to iterate again.
type Reader struct {
	path string
	file *os.File
	gz   *gzip.Reader
	tr   *tar.Reader
}

// OpenReader opens a package archive for reading. Returns an
// [ArchiveError] if the file cannot be opened or is not valid gzip.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, &ArchiveError{Path: path, Err: fmt.Errorf("gzip: %w", err)}
	}

	return &Reader{
		path: path,
		file: file,
		gz:   gz,
		tr:   tar.NewReader(gz),
	}, nil
}

// Next returns the next regular-file entry, io.EOF at the end of the
// archive, or an [ArchiveError] if the tar stream is truncated or
// corrupt. Directory members are skipped: the archive's directory
// structure is an artifact of the tar writer, not data.
func (r *Reader) Next() (*Entry, error) {
	for {
		header, err := r.tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, &ArchiveError{Path: r.path, Err: fmt.Errorf("tar: %w", err)}
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		content, err := io.ReadAll(r.tr)
		if err != nil {
			return nil, &ArchiveError{Path: r.path, Err: fmt.Errorf("tar member %s: %w", header.Name, err)}
		}

		guid, member := splitMemberName(header.Name)
		return &Entry{
			GUID:    guid,
			Member:  member,
			Content: content,
			Size:    header.Size,
		}, nil
	}
}

// Close releases the underlying file. Safe to call after a failed
// Next.
func (r *Reader) Close() error {
	gzErr := r.gz.Close()
	fileErr := r.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// splitMemberName splits a tar member name into its GUID directory
// segment and the remainder. Some tar writers prefix member names with
// "./"; that prefix is not part of the layout and is stripped first.
// A name with no directory separator is a loose top-level file and
// yields an empty GUID.
func splitMemberName(name string) (guid, member string) {
	name = strings.TrimPrefix(name, "./")
	guid, member, found := strings.Cut(name, "/")
	if !found {
		return "", name
	}
	if guid == "" {
		// "/foo" — an absolute member name. Treat as loose.
		return "", member
	}
	return guid, member
}
