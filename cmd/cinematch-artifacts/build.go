// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// errUsage reports a flag error that the flag package has already printed.
var errUsage = errors.New("usage error")

func runBuild(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	moviesPath := fs.String("movies", "", "CSV with a title,external_id header")
	similarityPath := fs.String("similarity", "", "CSV of N rows with N scores each")
	outDir := fs.String("out", ".", "output directory for the artifacts")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *moviesPath == "" || *similarityPath == "" {
		fmt.Fprintln(stderr, "build: -movies and -similarity are required")
		fs.PrintDefaults()
		return errUsage
	}

	movies, err := readMoviesCSVFile(*moviesPath)
	if err != nil {
		return err
	}
	rows, err := readSimilarityCSVFile(*similarityPath)
	if err != nil {
		return err
	}

	matrix, err := catalog.NewSimilarityMatrix(rows)
	if err != nil {
		return fmt.Errorf("similarity %s: %w", *similarityPath, err)
	}
	cat, err := catalog.New(movies, matrix)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	catalogOut := filepath.Join(*outDir, DefaultCatalogName)
	similarityOut := filepath.Join(*outDir, DefaultSimilarityName)

	if err := writeFileAtomic(catalogOut, func(w io.Writer) error {
		return catalog.WriteCatalog(w, movies)
	}); err != nil {
		return err
	}
	if err := writeFileAtomic(similarityOut, func(w io.Writer) error {
		return catalog.WriteMatrix(w, matrix)
	}); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s (%d movies)\n", catalogOut, cat.Len())
	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", similarityOut, matrix.Dim(), matrix.Dim())
	reportWarnings(stdout, cat)
	return nil
}

func readMoviesCSVFile(path string) ([]catalog.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies: %w", err)
	}
	defer f.Close()

	movies, err := readMoviesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("movies %s: %w", path, err)
	}
	return movies, nil
}

// readMoviesCSV parses a title,external_id CSV. The header row is required
// and columns are located by name.
func readMoviesCSV(r io.Reader) ([]catalog.Movie, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	titleCol, idCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			titleCol = i
		case "external_id", "movie_id", "id":
			if idCol < 0 {
				idCol = i
			}
		}
	}
	if titleCol < 0 || idCol < 0 {
		return nil, fmt.Errorf("header must contain title and external_id columns, got %v", header)
	}

	var movies []catalog.Movie
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		id, err := strconv.ParseInt(strings.TrimSpace(record[idCol]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: external_id: %w", line, err)
		}
		movies = append(movies, catalog.Movie{
			Title:      record[titleCol],
			ExternalID: id,
			RowIndex:   len(movies),
		})
	}
	return movies, nil
}

func readSimilarityCSVFile(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open similarity: %w", err)
	}
	defer f.Close()

	rows, err := readSimilarityCSV(f)
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", path, err)
	}
	return rows, nil
}

// readSimilarityCSV parses rows of comma-separated scores with no header.
// Squareness is checked by catalog.NewSimilarityMatrix.
func readSimilarityCSV(r io.Reader) ([][]float32, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var rows [][]float32
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float32, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", len(rows), j, err)
			}
			row[j] = float32(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path.
func writeFileAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
