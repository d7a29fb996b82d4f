// Copyright 2026 The Unitypack Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/unitypack-tools/unitypack/cmd/unitypack/cli"
	"github.com/unitypack-tools/unitypack/lib/unitypack"
)

// extractParams holds the extract command's flag values.
type extractParams struct {
	output  string
	force   bool
	json    bool
	verbose bool
}

func extractCommand() *cli.Command {
	params := &extractParams{}
	return &cli.Command{
		Name:    "extract",
		Summary: "Extract a package archive into a directory tree",
		Description: `Extract a .unitypackage archive.

Each asset is written to its recorded project-relative path under the
output directory, with its .meta sidecar alongside when the package
carries one. Bundles that cannot be extracted (no pathname, unsafe
path, destination collision, write failure) are skipped and reported
in the summary; they never abort the run.

Exits 0 when every asset was written, 1 when anything was skipped.`,
		Usage: "unitypack extract <archive> [flags]",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
			fs.StringVarP(&params.output, "output", "o", "",
				"output directory (default: archive name without extension, next to the archive)")
			fs.BoolVarP(&params.force, "force", "f", false,
				"remove the output directory before extracting")
			fs.BoolVar(&params.json, "json", false, "print the summary as JSON")
			fs.BoolVarP(&params.verbose, "verbose", "v", false, "log per-asset progress")
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("exactly one archive path required")
			}
			return runExtract(args[0], params)
		},
	}
}

func runExtract(archivePath string, params *extractParams) error {
	outputRoot := params.output
	if outputRoot == "" {
		outputRoot = defaultOutputRoot(archivePath)
	}

	summary, err := unitypack.Extract(archivePath, outputRoot, unitypack.Options{
		Logger: cli.NewCommandLogger(params.verbose),
		Force:  params.force,
	})
	if err != nil {
		return err
	}

	if params.json {
		if err := cli.WriteJSON(summary); err != nil {
			return err
		}
	} else {
		printSummary(summary, outputRoot)
	}

	if !summary.Clean() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// defaultOutputRoot derives the output directory from the archive
// path: the archive's name without its extension, as a sibling of the
// archive.
func defaultOutputRoot(archivePath string) string {
	base := filepath.Base(archivePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(archivePath), base)
}

func printSummary(summary *unitypack.Summary, outputRoot string) {
	fmt.Printf("extracted %d of %d assets to %s\n", summary.Written, summary.Total(), outputRoot)

	if len(summary.Loose) > 0 {
		fmt.Printf("ignored %d loose archive member(s): %s\n",
			len(summary.Loose), strings.Join(summary.Loose, ", "))
	}

	if len(summary.Details) > 0 {
		fmt.Println()
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "GUID\tOUTCOME\tREASON")
		for _, detail := range summary.Details {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", detail.GUID, detail.Outcome, detail.Reason)
		}
		tw.Flush()
	}
}
