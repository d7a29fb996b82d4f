// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package unitypack

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of an asset payload. Digests are
// recorded in the extraction summary so that reruns can be verified
// byte-identical without re-reading the output tree.
type Hash [32]byte

// HashPayload computes the BLAKE3 digest of asset bytes.
func HashPayload(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// FormatHash returns the hex encoding of a hash, the canonical form
// used in summaries, logs, and CLI output.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}
