// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unitypack-tools/unitypack/cmd/unitypack/cli"
	"github.com/unitypack-tools/unitypack/lib/testutil"
	"github.com/unitypack-tools/unitypack/lib/unitypack"
)

func TestDefaultOutputRoot(t *testing.T) {
	tests := []struct {
		archive string
		want    string
	}{
		{"/packs/CoolAssets.unitypackage", "/packs/CoolAssets"},
		{"CoolAssets.unitypackage", "CoolAssets"},
		{"/packs/no-extension", "/packs/no-extension"},
	}
	for _, test := range tests {
		if got := defaultOutputRoot(test.archive); got != test.want {
			t.Errorf("defaultOutputRoot(%q) = %q, want %q", test.archive, got, test.want)
		}
	}
}

func TestRunExtractWritesTree(t *testing.T) {
	archive := testutil.WritePackage(t, []testutil.Bundle{
		{GUID: "aaaa", Pathname: "Assets/A.txt\n", Asset: []byte("a"), Meta: testutil.MetaFor("aaaa")},
	})
	output := filepath.Join(t.TempDir(), "out")

	err := runExtract(archive, &extractParams{output: output})
	if err != nil {
		t.Fatalf("runExtract failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "Assets", "A.txt")); err != nil {
		t.Errorf("extracted file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "Assets", "A.txt.meta")); err != nil {
		t.Errorf("meta sidecar missing: %v", err)
	}
}

func TestRunExtractPartialFailureExitCode(t *testing.T) {
	archive := testutil.WritePackage(t, []testutil.Bundle{
		{GUID: "good", Pathname: "Assets/ok.txt\n", Asset: []byte("ok")},
		{GUID: "evil", Pathname: "../escape\n", Asset: []byte("no")},
	})

	err := runExtract(archive, &extractParams{output: filepath.Join(t.TempDir(), "out")})
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *cli.ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
}

func TestRunExtractBadArchive(t *testing.T) {
	path := testutil.WriteRawPackage(t, []byte("garbage"))

	err := runExtract(path, &extractParams{output: filepath.Join(t.TempDir(), "out")})
	var archiveErr *unitypack.ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("error = %v, want *unitypack.ArchiveError", err)
	}
}

func TestRunInspectDoesNotWrite(t *testing.T) {
	archive := testutil.WritePackage(t, []testutil.Bundle{
		{GUID: "aaaa", Pathname: "Assets/A.txt\n", Asset: []byte("a")},
	})
	archiveDir := filepath.Dir(archive)
	before, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatal(err)
	}

	if err := runInspect(archive, false); err != nil {
		t.Fatalf("runInspect failed: %v", err)
	}

	after, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Errorf("inspect changed the archive directory: %d → %d entries", len(before), len(after))
	}
}
