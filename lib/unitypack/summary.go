// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import "fmt"

// Outcome classifies what happened to one GUID bundle during
// extraction. The zero value is OutcomeWritten.
type Outcome int

const (
	// OutcomeWritten means the asset (and meta sidecar, if present)
	// reached its destination.
	OutcomeWritten Outcome = iota

	// OutcomeSkippedNoPath means the bundle had no usable pathname or
	// no payload bytes at all. Common for the package root bundle and
	// for bundles whose pathname names a bare directory.
	OutcomeSkippedNoPath

	// OutcomeSkippedUnsafePath means the decoded pathname would have
	// escaped the output root (traversal, absolute path, drive
	// prefix). Security-relevant: these are reported, never written.
	OutcomeSkippedUnsafePath

	// OutcomeSkippedCollision means an earlier bundle in archive order
	// already claimed the same destination path. First writer wins.
	OutcomeSkippedCollision

	// OutcomeIOError means the destination write failed for reasons
	// unrelated to path safety (permissions, disk space).
	OutcomeIOError
)

// String returns the stable machine-readable name of an outcome. These
// values appear in JSON summaries and logs; changing them breaks
// consumers.
func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeSkippedNoPath:
		return "skipped_no_path"
	case OutcomeSkippedUnsafePath:
		return "skipped_unsafe_path"
	case OutcomeSkippedCollision:
		return "skipped_collision"
	case OutcomeIOError:
		return "io_error"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// ParseOutcome parses an outcome from its string representation.
func ParseOutcome(name string) (Outcome, error) {
	switch name {
	case "written":
		return OutcomeWritten, nil
	case "skipped_no_path":
		return OutcomeSkippedNoPath, nil
	case "skipped_unsafe_path":
		return OutcomeSkippedUnsafePath, nil
	case "skipped_collision":
		return OutcomeSkippedCollision, nil
	case "io_error":
		return OutcomeIOError, nil
	default:
		return 0, fmt.Errorf("unknown outcome: %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so outcomes serialize
// as their names in JSON summaries.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Detail records why one GUID bundle was not written. Extraction never
// silently drops an asset: every non-written bundle produces a Detail.
type Detail struct {
	// GUID is the bundle's directory name in the archive.
	GUID string `json:"guid"`

	// Path is the decoded project-relative path, empty when the bundle
	// had none.
	Path string `json:"path,omitempty"`

	// Outcome is the reason code. Never OutcomeWritten.
	Outcome Outcome `json:"outcome"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason"`
}

// WrittenFile records one successfully materialized bundle.
type WrittenFile struct {
	// GUID is the bundle's directory name in the archive.
	GUID string `json:"guid"`

	// Path is the project-relative destination path.
	Path string `json:"path"`

	// Digest is the hex BLAKE3 digest of the written asset bytes,
	// empty for meta-only bundles. Reruns over the same archive
	// produce identical digests.
	Digest string `json:"digest,omitempty"`
}

// Summary reports the result of one extraction run.
type Summary struct {
	// Written counts bundles fully materialized on disk.
	Written int `json:"written"`

	// SkippedNoPath, SkippedUnsafePath, SkippedCollision, and IOErrors
	// count bundles per skip class. See the [Outcome] constants.
	SkippedNoPath     int `json:"skipped_no_path"`
	SkippedUnsafePath int `json:"skipped_unsafe_path"`
	SkippedCollision  int `json:"skipped_collision"`
	IOErrors          int `json:"io_errors"`

	// Files lists every written bundle in archive order.
	Files []WrittenFile `json:"files"`

	// Loose lists top-level archive members that belong to no GUID
	// bundle. They carry no reconstructible path and are not written.
	Loose []string `json:"loose,omitempty"`

	// Details holds one entry per skipped or failed bundle, in archive
	// order.
	Details []Detail `json:"details"`
}

// Total returns the number of bundles the run classified.
func (s *Summary) Total() int {
	return s.Written + s.SkippedNoPath + s.SkippedUnsafePath + s.SkippedCollision + s.IOErrors
}

// Clean reports whether every bundle was written.
func (s *Summary) Clean() bool {
	return s.Total() == s.Written
}

// record folds one finished target into the counters, file list, and
// details.
func (s *Summary) record(target *ResolvedTarget) {
	switch target.Outcome {
	case OutcomeWritten:
		s.Written++
		s.Files = append(s.Files, WrittenFile{
			GUID:   target.Record.GUID,
			Path:   target.Record.Path,
			Digest: target.Digest,
		})
		return
	case OutcomeSkippedNoPath:
		s.SkippedNoPath++
	case OutcomeSkippedUnsafePath:
		s.SkippedUnsafePath++
	case OutcomeSkippedCollision:
		s.SkippedCollision++
	case OutcomeIOError:
		s.IOErrors++
	}

	s.Details = append(s.Details, Detail{
		GUID:    target.Record.GUID,
		Path:    target.Record.Path,
		Outcome: target.Outcome,
		Reason:  target.Reason,
	})
}
