package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fystack/lotofacil-generator/internal/sampler"
	"github.com/fystack/lotofacil-generator/pkg/common/types"
	"github.com/fystack/lotofacil-generator/pkg/store/drawstore"
)

const fieldsPerRow = 2 + sampler.GameSize

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ErrRow wraps every per-row failure.
var ErrRow = errors.New("invalid row")

type Options struct {
	// Comma is the field separator, ',' by default. Caixa exports use ';'.
	Comma rune
}

// ParseCSV reads contest,date,n1..n15 rows. A leading header row is skipped.
// Bad rows are skipped and reported together in a *types.MultiError; the
// valid records are returned either way.
func ParseCSV(r io.Reader, opts Options) ([]drawstore.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	var (
		records []drawstore.Record
		errs    types.MultiError
		line    int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return records, fmt.Errorf("read csv: %w", err)
		}
		if line == 1 && isHeader(row) {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			errs.Add(fmt.Errorf("%w at line %d: %w", ErrRow, line, err))
			continue
		}
		records = append(records, rec)
	}
	return records, errs.ErrorOrNil()
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}

func parseRow(row []string) (drawstore.Record, error) {
	var rec drawstore.Record
	if len(row) != fieldsPerRow {
		return rec, fmt.Errorf("expected %d fields, got %d", fieldsPerRow, len(row))
	}

	contest, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return rec, fmt.Errorf("contest: %w", err)
	}
	date, err := parseDate(strings.TrimSpace(row[1]))
	if err != nil {
		return rec, err
	}

	numbers := make([]int, 0, sampler.GameSize)
	for _, field := range row[2:] {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return rec, fmt.Errorf("number %q: %w", field, err)
		}
		numbers = append(numbers, n)
	}

	rec = drawstore.Record{Contest: contest, Date: date, Numbers: numbers}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: unsupported format", s)
}
