// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the unitypack CLI command tree.
package commands

import (
	"fmt"

	"github.com/unitypack-tools/unitypack/cmd/unitypack/cli"
	"github.com/unitypack-tools/unitypack/lib/version"
)

// Root builds and returns the complete unitypack command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "unitypack",
		Description: `unitypack: extract Unity asset packages.

Reconstructs the original project tree from a .unitypackage archive,
resolving the archive's GUID-keyed bundles back to their recorded
project-relative paths. Hostile or malformed bundles are skipped and
reported, never written outside the output root.`,
		Subcommands: []*cli.Command{
			extractCommand(),
			inspectCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ []string) error {
					fmt.Printf("unitypack %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Extract a package next to the archive",
				Command:     "unitypack extract CoolAssets.unitypackage",
			},
			{
				Description: "Extract into a specific directory, replacing a previous attempt",
				Command:     "unitypack extract CoolAssets.unitypackage --output ./assets --force",
			},
			{
				Description: "See what a package contains without writing anything",
				Command:     "unitypack inspect CoolAssets.unitypackage",
			},
		},
	}
}
