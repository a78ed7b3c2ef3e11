// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command cinematch-artifacts builds and checks the catalog and similarity
// artifacts the server loads at startup.
//
//	cinematch-artifacts build -movies movies.csv -similarity similarity.csv -out .
//	cinematch-artifacts verify -catalog movie_list.json -similarity similarity.bin
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Default artifact names written by build, matching the server defaults.
const (
	DefaultCatalogName    = "movie_list.json"
	DefaultSimilarityName = "similarity.bin"
)

const usage = `usage: cinematch-artifacts <command> [flags]

commands:
  build   convert movies.csv and similarity.csv into artifacts
  verify  load artifacts and report their shape
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "build":
		err = runBuild(args[1:], stdout, stderr)
	case "verify":
		err = runVerify(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
