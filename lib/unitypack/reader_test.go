// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"errors"
	"io"
	"testing"

	"github.com/unitypack-tools/unitypack/lib/testutil"
)

// readAll drains a reader into a slice of entries.
func readAll(t *testing.T, path string) []*Entry {
	t.Helper()
	reader, err := OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer reader.Close()

	var entries []*Entry
	for {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return entries
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		entries = append(entries, entry)
	}
}

func TestReaderYieldsEntriesInArchiveOrder(t *testing.T) {
	path := testutil.WritePackage(t, []testutil.Bundle{
		{GUID: "aaaa", Pathname: "Assets/A.txt\n", Asset: []byte("alpha")},
		{GUID: "bbbb", Pathname: "Assets/B.txt\n", Asset: []byte("beta")},
	})

	entries := readAll(t, path)
	want := []struct {
		guid, member string
	}{
		{"aaaa", "pathname"},
		{"aaaa", "asset"},
		{"bbbb", "pathname"},
		{"bbbb", "asset"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.GUID != want[i].guid || entry.Member != want[i].member {
			t.Errorf("entry %d = %s/%s, want %s/%s",
				i, entry.GUID, entry.Member, want[i].guid, want[i].member)
		}
	}
	if string(entries[1].Content) != "alpha" {
		t.Errorf("asset content = %q, want %q", entries[1].Content, "alpha")
	}
	if entries[1].Size != int64(len("alpha")) {
		t.Errorf("asset size = %d, want %d", entries[1].Size, len("alpha"))
	}
}

func TestReaderLooseTopLevelFile(t *testing.T) {
	path := testutil.WritePackage(t,
		[]testutil.Bundle{{GUID: "aaaa", Pathname: "Assets/A.txt", Asset: []byte("a")}},
		testutil.Loose{Name: "stray.txt", Content: []byte("stray")},
	)

	entries := readAll(t, path)
	last := entries[len(entries)-1]
	if last.GUID != "" {
		t.Errorf("loose entry GUID = %q, want empty", last.GUID)
	}
	if last.Member != "stray.txt" {
		t.Errorf("loose entry member = %q, want stray.txt", last.Member)
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := OpenReader("/nonexistent/package.unitypackage")
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("error = %v, want *ArchiveError", err)
	}
}

func TestReaderNotGzip(t *testing.T) {
	path := testutil.WriteRawPackage(t, []byte("this is not a gzip stream"))
	_, err := OpenReader(path)
	var archiveErr *ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("error = %v, want *ArchiveError", err)
	}
}

func TestReaderTruncatedArchive(t *testing.T) {
	path := testutil.TruncatedPackage(t, []testutil.Bundle{
		{GUID: "aaaa", Pathname: "Assets/A.txt", Asset: make([]byte, 4096)},
		{GUID: "bbbb", Pathname: "Assets/B.txt", Asset: make([]byte, 4096)},
	})

	reader, err := OpenReader(path)
	if err != nil {
		// Truncation may already hit the gzip header, which is a
		// valid fatal outcome too.
		var archiveErr *ArchiveError
		if !errors.As(err, &archiveErr) {
			t.Fatalf("open error = %v, want *ArchiveError", err)
		}
		return
	}
	defer reader.Close()

	for {
		_, err := reader.Next()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			t.Fatal("truncated archive reached clean EOF")
		}
		var archiveErr *ArchiveError
		if !errors.As(err, &archiveErr) {
			t.Fatalf("error = %v, want *ArchiveError", err)
		}
		return
	}
}

func TestSplitMemberName(t *testing.T) {
	tests := []struct {
		name       string
		wantGUID   string
		wantMember string
	}{
		{"aaaa/pathname", "aaaa", "pathname"},
		{"./aaaa/asset", "aaaa", "asset"},
		{"aaaa/preview.png", "aaaa", "preview.png"},
		{"stray.txt", "", "stray.txt"},
		{"./stray.txt", "", "stray.txt"},
		{"/rooted.txt", "", "rooted.txt"},
		{"aaaa/nested/file", "aaaa", "nested/file"},
	}
	for _, test := range tests {
		guid, member := splitMemberName(test.name)
		if guid != test.wantGUID || member != test.wantMember {
			t.Errorf("splitMemberName(%q) = (%q, %q), want (%q, %q)",
				test.name, guid, member, test.wantGUID, test.wantMember)
		}
	}
}
