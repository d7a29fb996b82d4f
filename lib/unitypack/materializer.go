// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"fmt"
	"os"
	"path/filepath"
)

// writtenFileMode is applied to every materialized file. Archived
// members often arrive mode 0755; executable bits on extracted assets
// are never wanted.
const writtenFileMode = 0o644

// Materializer writes pending targets to disk. Each payload goes
// through a temp file in the destination directory followed by a
// rename, so a crash mid-write never leaves a file that looks complete
// but is not. Pre-existing directories and files are overwritten in
// place, which makes reruns idempotent.
type Materializer struct{}

// Write finalizes one pending-written target, mutating its Outcome in
// place. Targets whose bundle turned out to carry no payload at all
// are downgraded to skipped-no-path; write failures become io-error.
// Neither aborts the run.
func (m *Materializer) Write(target *ResolvedTarget) {
	record := target.Record

	if record.Asset == nil && record.Meta == nil {
		target.Outcome = OutcomeSkippedNoPath
		target.Reason = "bundle has a pathname but no payload"
		target.Destination = ""
		return
	}

	if err := os.MkdirAll(filepath.Dir(target.Destination), 0o755); err != nil {
		target.Outcome = OutcomeIOError
		target.Reason = fmt.Sprintf("creating directories: %v", err)
		return
	}

	if record.Asset != nil {
		if err := writeFileAtomic(target.Destination, record.Asset); err != nil {
			target.Outcome = OutcomeIOError
			target.Reason = fmt.Sprintf("writing asset: %v", err)
			return
		}
		target.Digest = FormatHash(HashPayload(record.Asset))
	}

	if record.Meta != nil {
		if err := writeFileAtomic(target.Destination+".meta", record.Meta); err != nil {
			target.Outcome = OutcomeIOError
			target.Reason = fmt.Sprintf("writing meta sidecar: %v", err)
			return
		}
	}
}

// writeFileAtomic writes content to destination via a temp file in the
// same directory and an atomic rename. The temp file is removed on
// every failure path.
func writeFileAtomic(destination string, content []byte) error {
	directory := filepath.Dir(destination)

	tmpFile, err := os.CreateTemp(directory, ".unitypack-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up the temp file on any error path.
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(writtenFileMode); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destination); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	success = true
	return nil
}
