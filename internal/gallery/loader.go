package gallery

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ErrUnsupportedFormat is returned for dataset files that are not JSON, JSONL or Parquet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNotFound is returned by Find when no gallery has the requested id.
var ErrNotFound = errors.New("gallery not found")

// Loader handles loading of scraped gallery datasets
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads every gallery in the dataset file.
func (l *Loader) Load() ([]Gallery, error) {
	return l.LoadSample(-1)
}

// LoadSample loads at most limit galleries. A negative limit loads everything.
func (l *Loader) LoadSample(limit int) ([]Gallery, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet(limit)
	case ".jsonl":
		return l.loadJSONL(limit)
	case ".json":
		return l.loadJSON(limit)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .json, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}
}

// Find loads the dataset and returns the gallery with the given id.
func (l *Loader) Find(id int64) (Gallery, error) {
	galleries, err := l.Load()
	if err != nil {
		return Gallery{}, err
	}
	for _, g := range galleries {
		if g.ID == id {
			return g, nil
		}
	}
	return Gallery{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// loadJSON reads a single gallery object or an array of them
func (l *Loader) loadJSON(limit int) ([]Gallery, error) {
	slog.Debug("Opening JSON file", "path", l.datasetPath)

	data, err := os.ReadFile(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	galleries, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if limit >= 0 && len(galleries) > limit {
		galleries = galleries[:limit]
	}

	slog.Debug("Finished reading JSON file", "total_records", len(galleries))
	return galleries, nil
}

// DecodeJSON decodes either one gallery object or an array of gallery objects.
func DecodeJSON(r io.Reader) ([]Gallery, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case '[':
		var galleries []Gallery
		if err := json.Unmarshal(data, &galleries); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return galleries, nil
	case '{':
		var g Gallery
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("failed to parse JSON object: %w", err)
		}
		return []Gallery{g}, nil
	default:
		return nil, fmt.Errorf("invalid JSON: expected { or [")
	}
}

// loadJSONL reads one gallery per line
func (l *Loader) loadJSONL(limit int) ([]Gallery, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var galleries []Gallery
	scanner := bufio.NewScanner(file)

	// Gallery lines with hundreds of tags can exceed the default token size
	const maxCapacity = 4 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		if limit >= 0 && len(galleries) >= limit {
			break
		}
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())

		if len(line) == 0 {
			continue
		}

		var g Gallery
		if err := json.Unmarshal(line, &g); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		galleries = append(galleries, g)

		if lineNum%1000 == 0 {
			slog.Debug("Reading JSONL", "lines_read", lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(galleries), "total_lines", lineNum)

	return galleries, nil
}

// loadParquet reads galleries from a Parquet file in batches
func (l *Loader) loadParquet(limit int) ([]Gallery, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath, "sample_limit", limit)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[galleryRow](pf)
	defer reader.Close()

	var galleries []Gallery
	rows := make([]galleryRow, 128)

	batchNum := 0
	for limit < 0 || len(galleries) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			batchNum++
			if limit >= 0 && n > limit-len(galleries) {
				n = limit - len(galleries)
			}
			for _, row := range rows[:n] {
				g, err := row.toGallery()
				if err != nil {
					return nil, fmt.Errorf("failed to convert parquet row %d: %w", len(galleries), err)
				}
				galleries = append(galleries, g)
			}
			slog.Debug("Read batch from Parquet", "batch", batchNum, "rows_in_batch", n, "total_rows_read", len(galleries))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(galleries), "total_batches", batchNum)

	return galleries, nil
}
