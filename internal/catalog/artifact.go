// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
)

const (
	// CatalogFormat identifies a catalog artifact.
	CatalogFormat = "cinematch.catalog"

	// CatalogVersion is the only catalog artifact version this package reads and writes.
	CatalogVersion = 1

	// MatrixVersion is the only similarity artifact version this package reads and writes.
	MatrixVersion uint16 = 1

	// MaxDimension bounds the matrix size accepted from an artifact header.
	MaxDimension = 1 << 16

	matrixHeaderSize = 16
)

var matrixMagic = [4]byte{'C', 'M', 'S', 'M'}

// catalogFile is the on-disk shape of the catalog artifact.
type catalogFile struct {
	Format  string  `json:"format"`
	Version int     `json:"version"`
	Movies  []Movie `json:"movies"`
}

// catalogRecord decodes one movie with pointers so absent keys are detectable.
type catalogRecord struct {
	Title      *string `json:"title"`
	ExternalID *int64  `json:"external_id"`
}

// catalogFileIn is the decode-side counterpart of catalogFile.
type catalogFileIn struct {
	Format  string          `json:"format"`
	Version int             `json:"version"`
	Movies  []catalogRecord `json:"movies"`
}

// Load reads and validates both artifacts from disk.
func Load(catalogPath, similarityPath string) (*Catalog, error) {
	catFile, err := os.Open(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog %s: %w", ErrArtifactMissing, catalogPath, err)
	}
	defer catFile.Close()

	simFile, err := os.Open(similarityPath)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity %s: %w", ErrArtifactMissing, similarityPath, err)
	}
	defer simFile.Close()

	cat, err := LoadFrom(catFile, simFile)
	if err != nil {
		return nil, fmt.Errorf("load %s, %s: %w", catalogPath, similarityPath, err)
	}
	return cat, nil
}

// LoadFrom reads and validates both artifacts from readers.
func LoadFrom(catalogReader, similarityReader io.Reader) (*Catalog, error) {
	movies, err := ReadCatalog(catalogReader)
	if err != nil {
		return nil, err
	}

	matrix, err := ReadMatrix(similarityReader)
	if err != nil {
		return nil, err
	}

	cat, err := New(movies, matrix)
	if err != nil {
		return nil, err
	}

	if dups := cat.DuplicateTitles(); len(dups) > 0 {
		logging.Warn().
			Int("count", len(dups)).
			Strs("titles", dups).
			Msg("Catalog contains duplicate titles, first row wins on lookup")
	}

	return cat, nil
}

// ReadCatalog decodes a catalog artifact.
func ReadCatalog(r io.Reader) ([]Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog: %w", ErrArtifactMissing, err)
	}

	var file catalogFileIn
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", ErrArtifactCorrupt, err)
	}

	if file.Format != CatalogFormat {
		return nil, fmt.Errorf("%w: catalog format %q, want %q", ErrArtifactCorrupt, file.Format, CatalogFormat)
	}
	if file.Version != CatalogVersion {
		return nil, fmt.Errorf("%w: unsupported catalog version %d", ErrArtifactCorrupt, file.Version)
	}

	movies := make([]Movie, 0, len(file.Movies))
	for i, rec := range file.Movies {
		if rec.Title == nil {
			return nil, fmt.Errorf("%w: movie %d has no title", ErrArtifactCorrupt, i)
		}
		if rec.ExternalID == nil {
			return nil, fmt.Errorf("%w: movie %d (%q) has no external_id", ErrArtifactCorrupt, i, *rec.Title)
		}
		movies = append(movies, Movie{Title: *rec.Title, ExternalID: *rec.ExternalID, RowIndex: i})
	}

	if err := validateMovies(movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// WriteCatalog encodes movies as a catalog artifact.
func WriteCatalog(w io.Writer, movies []Movie) error {
	file := catalogFile{
		Format:  CatalogFormat,
		Version: CatalogVersion,
		Movies:  movies,
	}
	if file.Movies == nil {
		file.Movies = []Movie{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// ReadMatrix decodes a similarity artifact. The checksum trailer must match and
// no bytes may follow it.
func ReadMatrix(r io.Reader) (*SimilarityMatrix, error) {
	br := bufio.NewReader(r)
	crc := crc32.NewIEEE()
	body := io.TeeReader(br, crc)

	var header [matrixHeaderSize]byte
	if err := readFull(body, header[:], "header"); err != nil {
		return nil, err
	}

	if !bytes.Equal(header[0:4], matrixMagic[:]) {
		return nil, fmt.Errorf("%w: bad similarity magic %q", ErrArtifactCorrupt, header[0:4])
	}
	if v := binary.LittleEndian.Uint16(header[4:6]); v != MatrixVersion {
		return nil, fmt.Errorf("%w: unsupported similarity version %d", ErrArtifactCorrupt, v)
	}

	rows := binary.LittleEndian.Uint32(header[8:12])
	cols := binary.LittleEndian.Uint32(header[12:16])
	if rows != cols {
		return nil, fmt.Errorf("%w: similarity matrix is %dx%d, not square", ErrArtifactCorrupt, rows, cols)
	}
	if rows > MaxDimension {
		return nil, fmt.Errorf("%w: similarity dimension %d exceeds %d", ErrArtifactCorrupt, rows, MaxDimension)
	}

	dim := int(rows)
	scores, err := readScores(body, dim)
	if err != nil {
		return nil, err
	}

	sum := crc.Sum32()
	var trailer [4]byte
	if err := readFull(br, trailer[:], "checksum"); err != nil {
		return nil, err
	}
	if got := binary.LittleEndian.Uint32(trailer[:]); got != sum {
		return nil, fmt.Errorf("%w: similarity checksum %08x, computed %08x", ErrArtifactCorrupt, got, sum)
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, fmt.Errorf("%w: trailing bytes after similarity checksum", ErrArtifactCorrupt)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: read similarity: %w", ErrArtifactMissing, err)
	}

	return &SimilarityMatrix{dim: dim, scores: scores}, nil
}

// readScores reads dim rows one at a time so a truncated file fails before
// the full payload is allocated.
func readScores(r io.Reader, dim int) ([]float32, error) {
	scores := make([]float32, 0, min(dim*dim, 1<<20))
	rowBuf := make([]byte, 4*dim)

	for i := 0; i < dim; i++ {
		if err := readFull(r, rowBuf, "payload"); err != nil {
			return nil, err
		}
		for j := 0; j < dim; j++ {
			v := math.Float32frombits(binary.LittleEndian.Uint32(rowBuf[4*j:]))
			if !finite(v) {
				return nil, fmt.Errorf("%w: non-finite score at (%d,%d)", ErrArtifactCorrupt, i, j)
			}
			scores = append(scores, v)
		}
	}
	return scores, nil
}

// WriteMatrix encodes m as a similarity artifact.
func WriteMatrix(w io.Writer, m *SimilarityMatrix) error {
	if m == nil {
		return errors.New("write similarity: nil matrix")
	}

	bw := bufio.NewWriter(w)
	crc := crc32.NewIEEE()
	out := io.MultiWriter(bw, crc)

	var header [matrixHeaderSize]byte
	copy(header[0:4], matrixMagic[:])
	binary.LittleEndian.PutUint16(header[4:6], MatrixVersion)
	binary.LittleEndian.PutUint32(header[8:12], uint32(m.dim))
	binary.LittleEndian.PutUint32(header[12:16], uint32(m.dim))
	if _, err := out.Write(header[:]); err != nil {
		return fmt.Errorf("write similarity header: %w", err)
	}

	if err := writeScores(out, m); err != nil {
		return err
	}

	if err := writeChecksum(bw, crc); err != nil {
		return err
	}
	return bw.Flush()
}

func writeScores(w io.Writer, m *SimilarityMatrix) error {
	rowBuf := make([]byte, 4*m.dim)
	for i := 0; i < m.dim; i++ {
		for j, v := range m.scores[i*m.dim : (i+1)*m.dim] {
			binary.LittleEndian.PutUint32(rowBuf[4*j:], math.Float32bits(v))
		}
		if _, err := w.Write(rowBuf); err != nil {
			return fmt.Errorf("write similarity row %d: %w", i, err)
		}
	}
	return nil
}

func writeChecksum(w io.Writer, crc hash.Hash32) error {
	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], crc.Sum32())
	if _, err := w.Write(trailer[:]); err != nil {
		return fmt.Errorf("write similarity checksum: %w", err)
	}
	return nil
}

// readFull maps short reads to ErrArtifactCorrupt and other read failures to
// ErrArtifactMissing.
func readFull(r io.Reader, buf []byte, section string) error {
	_, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: similarity %s truncated", ErrArtifactCorrupt, section)
	default:
		return fmt.Errorf("%w: read similarity %s: %w", ErrArtifactMissing, section, err)
	}
}
