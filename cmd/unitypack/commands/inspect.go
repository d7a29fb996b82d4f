// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/unitypack-tools/unitypack/cmd/unitypack/cli"
	"github.com/unitypack-tools/unitypack/lib/unitypack"
)

// inspectEntry is one row of inspect output.
type inspectEntry struct {
	GUID      string `json:"guid"`
	Path      string `json:"path,omitempty"`
	AssetSize int    `json:"asset_size"`
	HasMeta   bool   `json:"has_meta"`
}

func inspectCommand() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:    "inspect",
		Summary: "List package contents without extracting",
		Description: `List the bundles of a .unitypackage archive.

Reads and decodes the whole archive but writes nothing: the output is
one row per GUID bundle with its recorded project path, asset payload
size, and whether a .meta sidecar is present.`,
		Usage: "unitypack inspect <archive> [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			fs.BoolVar(&asJSON, "json", false, "print bundles as JSON")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one archive path required")
			}
			return runInspect(args[0], asJSON)
		},
	}
}

func runInspect(archivePath string, asJSON bool) error {
	reader, err := unitypack.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	decoder := unitypack.NewDecoder()
	for {
		entry, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		decoder.Add(entry)
	}

	records := decoder.Records()
	entries := make([]inspectEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, inspectEntry{
			GUID:      record.GUID,
			Path:      record.Path,
			AssetSize: len(record.Asset),
			HasMeta:   record.Meta != nil,
		})
	}

	if asJSON {
		return cli.WriteJSON(entries)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GUID\tPATH\tASSET BYTES\tMETA")
	for _, entry := range entries {
		path := entry.Path
		if path == "" {
			path = "-"
		}
		meta := "-"
		if entry.HasMeta {
			meta = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", entry.GUID, path, entry.AssetSize, meta)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if loose := decoder.Loose(); len(loose) > 0 {
		fmt.Printf("\n%d loose archive member(s) outside any bundle\n", len(loose))
	}
	return nil
}
