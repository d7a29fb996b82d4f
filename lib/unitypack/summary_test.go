// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOutcomeStringRoundTrip(t *testing.T) {
	outcomes := []Outcome{
		OutcomeWritten,
		OutcomeSkippedNoPath,
		OutcomeSkippedUnsafePath,
		OutcomeSkippedCollision,
		OutcomeIOError,
	}
	for _, outcome := range outcomes {
		parsed, err := ParseOutcome(outcome.String())
		if err != nil {
			t.Errorf("ParseOutcome(%q) failed: %v", outcome.String(), err)
			continue
		}
		if parsed != outcome {
			t.Errorf("round trip %v → %q → %v", outcome, outcome.String(), parsed)
		}
	}

	if _, err := ParseOutcome("bogus"); err == nil {
		t.Error("ParseOutcome accepted an unknown name")
	}
}

func TestSummaryCounters(t *testing.T) {
	summary := &Summary{}
	summary.record(&ResolvedTarget{
		Record:  &AssetRecord{GUID: "a", Path: "x"},
		Outcome: OutcomeWritten,
		Digest:  "abc",
	})
	summary.record(&ResolvedTarget{
		Record:  &AssetRecord{GUID: "b"},
		Outcome: OutcomeSkippedNoPath,
		Reason:  "no pathname",
	})
	summary.record(&ResolvedTarget{
		Record:  &AssetRecord{GUID: "c", Path: "x"},
		Outcome: OutcomeSkippedCollision,
		Reason:  "taken",
	})

	if summary.Total() != 3 {
		t.Errorf("Total = %d, want 3", summary.Total())
	}
	if summary.Clean() {
		t.Error("summary with skips reports clean")
	}
	if len(summary.Files) != 1 || summary.Files[0].Digest != "abc" {
		t.Errorf("files = %+v", summary.Files)
	}
	if len(summary.Details) != 2 {
		t.Errorf("details = %+v, want 2 entries", summary.Details)
	}
}

func TestSummaryJSONUsesOutcomeNames(t *testing.T) {
	summary := &Summary{}
	summary.record(&ResolvedTarget{
		Record:  &AssetRecord{GUID: "evil", Path: "../x"},
		Outcome: OutcomeSkippedUnsafePath,
		Reason:  "traversal",
	})

	encoded, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(encoded), `"skipped_unsafe_path"`) {
		t.Errorf("JSON %s does not use outcome name encoding", encoded)
	}
}

func TestHashPayloadStable(t *testing.T) {
	first := FormatHash(HashPayload([]byte("content")))
	second := FormatHash(HashPayload([]byte("content")))
	if first != second {
		t.Error("digest is not deterministic")
	}
	if len(first) != 64 {
		t.Errorf("hex digest length = %d, want 64", len(first))
	}
	if first == FormatHash(HashPayload([]byte("other"))) {
		t.Error("distinct payloads share a digest")
	}
}
