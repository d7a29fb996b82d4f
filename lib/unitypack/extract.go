// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Options configures one extraction run.
type Options struct {
	// Logger receives per-asset progress and warnings. Nil disables
	// extraction logging.
	Logger *slog.Logger

	// Force removes an existing output root before extracting,
	// guaranteeing the result contains only this package's content.
	// Without Force, extraction merges into the existing tree
	// (overwriting files it owns), which keeps reruns idempotent.
	Force bool
}

// Extract reads the package archive at archivePath and materializes
// its assets under outputRoot. It returns a fatal error only when the
// archive itself cannot be read (always an [ArchiveError]) or the
// output root cannot be prepared; every per-asset problem is degraded
// to a reason-coded [Summary] entry and the run continues.
//
// The pipeline is single-threaded by design: throughput is bound by
// the single archive stream, and the first-writer-wins collision
// policy depends on processing records in archive order.
func Extract(archivePath, outputRoot string, options Options) (*Summary, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if options.Force {
		if err := os.RemoveAll(outputRoot); err != nil {
			return nil, fmt.Errorf("clearing output root %s: %w", outputRoot, err)
		}
	}

	decoder, err := decodeArchive(archivePath)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(outputRoot)
	materializer := &Materializer{}
	summary := &Summary{Loose: decoder.Loose()}

	for _, member := range summary.Loose {
		logger.Warn("ignoring loose archive member", "member", member)
	}

	for _, record := range decoder.Records() {
		if record.MetaGUID != "" && record.MetaGUID != record.GUID {
			logger.Warn("meta sidecar guid disagrees with bundle directory",
				"bundle", record.GUID, "meta_guid", record.MetaGUID)
		}

		target := resolver.Resolve(record)
		if target.Outcome == OutcomeWritten {
			materializer.Write(target)
		}
		summary.record(target)

		switch target.Outcome {
		case OutcomeWritten:
			logger.Info("extracted", "guid", record.GUID, "path", record.Path)
		default:
			logger.Warn("skipped bundle",
				"guid", record.GUID, "outcome", target.Outcome.String(), "reason", target.Reason)
		}
	}

	logger.Info("extraction complete",
		"written", summary.Written,
		"skipped_no_path", summary.SkippedNoPath,
		"skipped_unsafe_path", summary.SkippedUnsafePath,
		"skipped_collision", summary.SkippedCollision,
		"io_errors", summary.IOErrors)

	return summary, nil
}

// decodeArchive runs the reader to exhaustion and returns the loaded
// decoder. Grouping needs the whole archive: members of one bundle may
// arrive in any order and interleaved with other bundles.
func decodeArchive(archivePath string) (*Decoder, error) {
	reader, err := OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	decoder := NewDecoder()
	for {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return decoder, nil
		}
		if err != nil {
			return nil, err
		}
		decoder.Add(entry)
	}
}
