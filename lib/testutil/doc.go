// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for unitypack packages.
//
// [WritePackage] builds synthetic .unitypackage archives from bundle
// descriptions, including deliberately malformed and adversarial ones
// (traversal pathnames, missing members, loose top-level files). Both
// the library tests and the CLI tests construct their fixtures through
// it so the archive layout is defined in exactly one place.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no unitypack-internal dependencies.
package testutil
