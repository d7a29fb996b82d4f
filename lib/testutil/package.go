// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Bundle describes one GUID bundle to place in a synthetic package.
// Nil/empty members are omitted from the archive, which is how real
// packages express directory entries (pathname only) and malformed
// bundles.
type Bundle struct {
	// GUID is the bundle directory name.
	GUID string

	// Pathname is the raw content of the pathname member, written
	// verbatim (no newline appended). Empty means no pathname member.
	Pathname string

	// Asset is the asset payload. Nil means no asset member.
	Asset []byte

	// Meta is the asset.meta payload. Nil means no meta member.
	Meta []byte

	// Extra maps additional member names (e.g. "preview.png") to
	// content. Map iteration order is not deterministic; tests that
	// depend on member order must not put more than one member here.
	Extra map[string][]byte
}

// Loose is a top-level archive member outside any GUID directory.
type Loose struct {
	Name    string
	Content []byte
}

// WritePackage writes a synthetic .unitypackage to a file inside a
// test temp directory and returns its path. Members are emitted in
// the order given: bundles first (pathname, asset, asset.meta, extras
// per bundle), then loose members. Collision tests rely on this order
// being exactly what the archive presents.
func WritePackage(t *testing.T, bundles []Bundle, loose ...Loose) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.unitypackage")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture archive: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			t.Fatalf("closing fixture archive: %v", err)
		}
	}()

	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)

	writeMember := func(name string, content []byte) {
		t.Helper()
		header := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    int64(len(content)),
			ModTime: time.Unix(0, 0),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("writing tar header %s: %v", name, err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatalf("writing tar member %s: %v", name, err)
		}
	}

	for _, bundle := range bundles {
		// Real packages carry a directory entry per bundle.
		dirHeader := &tar.Header{
			Name:     bundle.GUID + "/",
			Mode:     0o755,
			Typeflag: tar.TypeDir,
			ModTime:  time.Unix(0, 0),
		}
		if err := tw.WriteHeader(dirHeader); err != nil {
			t.Fatalf("writing tar directory %s: %v", bundle.GUID, err)
		}
		if bundle.Pathname != "" {
			writeMember(bundle.GUID+"/pathname", []byte(bundle.Pathname))
		}
		if bundle.Asset != nil {
			writeMember(bundle.GUID+"/asset", bundle.Asset)
		}
		if bundle.Meta != nil {
			writeMember(bundle.GUID+"/asset.meta", bundle.Meta)
		}
		for name, content := range bundle.Extra {
			writeMember(bundle.GUID+"/"+name, content)
		}
	}
	for _, member := range loose {
		writeMember(member.Name, member.Content)
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return path
}

// WriteRawPackage writes arbitrary bytes to a .unitypackage path for
// corrupt-archive tests.
func WriteRawPackage(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corrupt.unitypackage")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing raw archive: %v", err)
	}
	return path
}

// TruncatedPackage builds a valid package from bundles, then truncates
// the gzip stream so the tar decode fails partway through.
func TruncatedPackage(t *testing.T, bundles []Bundle) string {
	t.Helper()

	full := WritePackage(t, bundles)
	content, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("reading fixture for truncation: %v", err)
	}
	if len(content) < 64 {
		t.Fatalf("fixture too small to truncate meaningfully (%d bytes)", len(content))
	}
	path := filepath.Join(t.TempDir(), "truncated.unitypackage")
	if err := os.WriteFile(path, content[:len(content)/2], 0o644); err != nil {
		t.Fatalf("writing truncated archive: %v", err)
	}
	return path
}

// MetaFor returns a minimal Unity meta sidecar for the given GUID.
func MetaFor(guid string) []byte {
	return []byte("fileFormatVersion: 2\nguid: " + guid + "\n")
}
