// Package storage persists BMI records to the append-only history file.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/logger"
	"bmi-tracker/internal/models"
)

const (
	ColumnWeight   = "Weight (kg)"
	ColumnHeight   = "Height (m)"
	ColumnBMI      = "BMI"
	ColumnCategory = "Category"
)

// Header is the fixed first row of every history file.
var Header = []string{ColumnWeight, ColumnHeight, ColumnBMI, ColumnCategory}

var (
	// ErrNoData is returned by ReadAll when the file holds no records.
	ErrNoData = models.ErrNoData
	ErrClosed = errors.New("history store closed")
)

// CSVStore appends records to a CSV file and reads them back in order.
// One append handle is held open until Close.
type CSVStore struct {
	path   string
	logger logger.Logger

	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVStore opens (creating if needed) the history file at path and makes
// sure it starts with the header row.
func NewCSVStore(path string, log logger.Logger) (*CSVStore, error) {
	file, writer, err := openAppend(path)
	if err != nil {
		return nil, err
	}

	store := &CSVStore{
		path:   path,
		logger: log,
		file:   file,
		writer: writer,
	}

	if err := store.ensureHeader(); err != nil {
		file.Close()
		return nil, err
	}

	log.Debug("HistoryStore", "history file opened", map[string]interface{}{
		"path": path,
	})

	return store, nil
}

func openAppend(path string) (*os.File, *csv.Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history file: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.UseCRLF = true
	return file, writer, nil
}

// Path returns the backing file location
func (s *CSVStore) Path() string {
	return s.path
}

// Append writes rec as the last row of the file. The BMI is rounded to two
// decimals. The row is synced to disk before Append returns.
func (s *CSVStore) Append(rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return ErrClosed
	}

	if err := s.reopenIfReplaced(); err != nil {
		return err
	}
	if err := s.ensureHeader(); err != nil {
		return err
	}

	row := []string{
		bmi.FormatNumber(rec.Weight),
		bmi.FormatNumber(rec.Height),
		bmi.FormatNumber(bmi.Round2(rec.BMI)),
		rec.Category.String(),
	}
	if err := s.writeRow(row); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	s.logger.Debug("HistoryStore", "record appended", map[string]interface{}{
		"weight":   rec.Weight,
		"height":   rec.Height,
		"bmi":      row[2],
		"category": row[3],
	})

	return nil
}

// ReadAll returns every stored record in file order. It returns ErrNoData
// when the file is missing or contains only the header.
func (s *CSVStore) ReadAll() ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return records, nil
}

// Close releases the append handle. Further appends fail with ErrClosed.
func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	s.writer.Flush()
	werr := s.writer.Error()
	cerr := s.file.Close()
	s.file = nil
	s.writer = nil

	if werr != nil {
		return werr
	}
	return cerr
}

// reopenIfReplaced swaps the append handle for a fresh one when the file at
// path was removed or replaced after it was opened. Callers hold mu.
func (s *CSVStore) reopenIfReplaced() error {
	onDisk, err := os.Stat(s.path)
	switch {
	case err == nil:
		held, err := s.file.Stat()
		if err == nil && os.SameFile(onDisk, held) {
			return nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to stat history file: %w", err)
	}

	s.logger.Warning("HistoryStore", "history file was replaced or removed, reopening", map[string]interface{}{
		"path": s.path,
	})

	file, writer, err := openAppend(s.path)
	if err != nil {
		return err
	}
	s.file.Close()
	s.file = file
	s.writer = writer
	return nil
}

// ensureHeader writes the header into an empty file. Callers hold mu or own
// the store exclusively.
func (s *CSVStore) ensureHeader() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat history file: %w", err)
	}
	if info.Size() > 0 {
		return nil
	}
	if err := s.writeRow(Header); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}
	return nil
}

func (s *CSVStore) writeRow(row []string) error {
	if err := s.writer.Write(row); err != nil {
		return err
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return err
	}
	return s.file.Sync()
}

// decode parses a history file. Columns are located by header name.
func decode(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

type columns struct {
	weight, height, bmi, category int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var cols columns
	targets := []struct {
		name string
		dst  *int
	}{
		{ColumnWeight, &cols.weight},
		{ColumnHeight, &cols.height},
		{ColumnBMI, &cols.bmi},
		{ColumnCategory, &cols.category},
	}
	for _, target := range targets {
		i, ok := pos[target.name]
		if !ok {
			return columns{}, fmt.Errorf("header is missing column %q", target.name)
		}
		*target.dst = i
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (models.Record, error) {
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", fmt.Errorf("expected at least %d fields, got %d", i+1, len(row))
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec models.Record
	numbers := []struct {
		col int
		dst *float64
	}{
		{cols.weight, &rec.Weight},
		{cols.height, &rec.Height},
		{cols.bmi, &rec.BMI},
	}
	for _, n := range numbers {
		text, err := field(n.col)
		if err != nil {
			return models.Record{}, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return models.Record{}, fmt.Errorf("invalid number %q: %w", text, err)
		}
		*n.dst = v
	}

	label, err := field(cols.category)
	if err != nil {
		return models.Record{}, err
	}
	rec.Category, err = bmi.ParseCategory(label)
	if err != nil {
		return models.Record{}, err
	}

	return rec, nil
}
