// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

// Package unitypack extracts Unity Editor asset-package archives
// (.unitypackage files) and reconstructs the original project tree.
//
// A .unitypackage is a gzip-compressed tar archive with no real file
// tree inside: each archived asset lives in a directory named by an
// opaque GUID, containing an "asset" payload, an "asset.meta" sidecar,
// and a "pathname" text file recording the asset's original
// project-relative path. Extraction therefore has two halves: decoding
// the flat GUID-keyed bundles, and rewriting them into a nested
// directory structure while resolving path collisions, missing
// metadata, and partial or hostile entries.
//
// The pipeline is a single synchronous pass:
//
//	archive bytes → [Reader] → [Decoder] → [Resolver] → [Materializer]
//
// [Extract] drives the whole pipeline and returns a [Summary]. The run
// fails fatally only when the archive itself cannot be read (an
// [ArchiveError]); every per-asset problem is degraded to a reason-coded
// summary entry so that one malformed bundle never blocks the other
// thousands.
//
// Asset and meta payloads are treated as opaque bytes and written
// byte-exact. The only interpretation applied to asset.meta is an
// advisory cross-check of its "guid:" field against the bundle
// directory name.
package unitypack
