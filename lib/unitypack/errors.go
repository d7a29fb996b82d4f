// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import "fmt"

// ArchiveError reports that the package archive itself could not be
// read: the file is missing, the gzip stream is invalid, or the tar
// stream is truncated or corrupt. It is the only fatal error class in
// this package — once the tar stream fails to decode there is no
// reliable per-entry boundary to resume from, so the whole run aborts.
//
// Per-asset problems (missing pathname, unsafe path, collision, write
// failure) are never ArchiveErrors; they degrade to [Summary] entries.
type ArchiveError struct {
	// Path is the archive file path as given by the caller.
	Path string

	// Err is the underlying open, gzip, or tar error.
	Err error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("reading package archive %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ArchiveError) Unwrap() error {
	return e.Err
}
