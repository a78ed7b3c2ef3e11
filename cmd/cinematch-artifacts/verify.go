// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// errDiagonal is returned by verify -strict when a row's self-score is not its maximum.
var errDiagonal = errors.New("self-similarity is not the row maximum")

func runVerify(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	catalogPath := fs.String("catalog", DefaultCatalogName, "catalog artifact")
	similarityPath := fs.String("similarity", DefaultSimilarityName, "similarity artifact")
	strict := fs.Bool("strict", false, "fail when a row's self-score is not its maximum")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cat, err := catalog.Load(*catalogPath, *similarityPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "movies: %d\n", cat.Len())
	fmt.Fprintf(stdout, "matrix: %dx%d\n", cat.Matrix().Dim(), cat.Matrix().Dim())
	violations := reportWarnings(stdout, cat)

	if *strict && violations > 0 {
		return fmt.Errorf("%w in %d rows", errDiagonal, violations)
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

// reportWarnings prints duplicate titles and diagonal violations and
// returns the number of violating rows.
func reportWarnings(w io.Writer, cat *catalog.Catalog) int {
	if dups := cat.DuplicateTitles(); len(dups) > 0 {
		fmt.Fprintf(w, "duplicate titles (first row wins): %s\n", strings.Join(dups, ", "))
	}

	rows := cat.Matrix().DiagonalViolations()
	if len(rows) == 0 {
		fmt.Fprintln(w, "diagonal: self-score is the row maximum in every row")
		return 0
	}

	const shown = 10
	sample := rows
	if len(sample) > shown {
		sample = sample[:shown]
	}
	fmt.Fprintf(w, "diagonal: %d rows where another movie outscores the row itself, e.g. rows %v\n", len(rows), sample)
	return len(rows)
}
