// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedTarget is the resolver's verdict for one record: where the
// bundle goes on disk and whether it goes at all. The materializer
// finalizes pending-written targets and may downgrade the outcome.
type ResolvedTarget struct {
	// Record is the bundle this verdict applies to.
	Record *AssetRecord

	// Destination is the absolute on-disk path, empty for skipped
	// targets. Always a strict descendant of the output root.
	Destination string

	// Outcome is the verdict. OutcomeWritten here means "pending
	// write"; the materializer confirms or downgrades it.
	Outcome Outcome

	// Reason explains non-written outcomes.
	Reason string

	// Digest is filled by the materializer for written asset payloads.
	Digest string
}

// Resolver decides the on-disk destination for each asset record and
// owns the path-safety invariant: every destination it emits is a
// strict descendant of the output root, no matter how hostile the
// archive. It also owns the collision policy — the first record in
// archive order to claim a destination wins, later claimants are
// skipped. Archive order is the only deterministic tie-break the
// format offers (Unity does not guarantee path uniqueness across
// renamed or duplicated asset histories).
type Resolver struct {
	root    string
	claimed map[string]string // normalized destination → claiming GUID
}

// NewResolver returns a resolver writing under outputRoot. The root is
// cleaned but not required to exist yet.
func NewResolver(outputRoot string) *Resolver {
	return &Resolver{
		root:    filepath.Clean(outputRoot),
		claimed: make(map[string]string),
	}
}

// Resolve produces the verdict for one record.
func (r *Resolver) Resolve(record *AssetRecord) *ResolvedTarget {
	if !record.HasPath {
		reason := record.pathDefect
		if reason == "" {
			reason = "bundle has no pathname member"
		}
		return &ResolvedTarget{Record: record, Outcome: OutcomeSkippedNoPath, Reason: reason}
	}

	normalized, err := normalizeArchivePath(record.Path)
	if err != nil {
		return &ResolvedTarget{Record: record, Outcome: OutcomeSkippedUnsafePath, Reason: err.Error()}
	}

	destination := filepath.Join(r.root, filepath.FromSlash(normalized))

	// Containment re-check. normalizeArchivePath already rejects every
	// escape vector we know of; this guards the invariant against the
	// ones we don't.
	if !strictlyUnder(r.root, destination) {
		return &ResolvedTarget{
			Record:  record,
			Outcome: OutcomeSkippedUnsafePath,
			Reason:  fmt.Sprintf("path %q escapes the output root", record.Path),
		}
	}

	if winner, taken := r.claimed[normalized]; taken {
		return &ResolvedTarget{
			Record:  record,
			Outcome: OutcomeSkippedCollision,
			Reason:  fmt.Sprintf("destination already claimed by bundle %s", winner),
		}
	}
	r.claimed[normalized] = record.GUID

	return &ResolvedTarget{Record: record, Destination: destination, Outcome: OutcomeWritten}
}

// normalizeArchivePath validates and normalizes a pathname from the
// archive. The archive's separator is always forward slash regardless
// of host. Rejected outright: absolute paths, ".." segments, empty
// segments, drive/volume prefixes, and backslashes (a separator on
// Windows, and a hostile filename everywhere else). "." segments are
// collapsed; they cannot affect containment and some exporters emit
// them.
func normalizeArchivePath(archivePath string) (string, error) {
	if strings.HasPrefix(archivePath, "/") {
		return "", fmt.Errorf("absolute path %q", archivePath)
	}
	if strings.ContainsRune(archivePath, '\\') {
		return "", fmt.Errorf("backslash in path %q", archivePath)
	}
	if volumeName(archivePath) != "" {
		return "", fmt.Errorf("volume prefix in path %q", archivePath)
	}

	segments := strings.Split(archivePath, "/")
	normalized := segments[:0]
	for _, segment := range segments {
		switch segment {
		case "":
			return "", fmt.Errorf("empty segment in path %q", archivePath)
		case "..":
			return "", fmt.Errorf("parent traversal in path %q", archivePath)
		case ".":
			continue
		}
		normalized = append(normalized, segment)
	}
	if len(normalized) == 0 {
		return "", fmt.Errorf("path %q has no segments", archivePath)
	}
	return strings.Join(normalized, "/"), nil
}

// volumeName detects Windows-style drive prefixes ("C:", "//server")
// independent of the host platform, so a crafted archive is rejected
// identically on every OS. filepath.VolumeName is platform-dependent
// and cannot be used here.
func volumeName(archivePath string) string {
	if len(archivePath) >= 2 && archivePath[1] == ':' {
		return archivePath[:2]
	}
	if strings.HasPrefix(archivePath, "//") {
		return "//"
	}
	return ""
}

// strictlyUnder reports whether target is a strict descendant of root.
func strictlyUnder(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
