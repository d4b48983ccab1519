package core

// ingest.go shapes uploaded CSV and JSON files into validation tables.
//
// Cell text is kept verbatim. Whitespace hygiene checks run on the raw
// values, so nothing here trims.

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/brfss/internal/validation"
)

// Sentinel errors returned by ingestion. Check with errors.Is.
var (
	ErrEmptyTable        = errors.New("empty file")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrExcelFile         = fmt.Errorf("%w: excel workbook", ErrUnsupportedFormat)
	ErrFileTooLarge      = errors.New("file too large")
	ErrInvalidCSV        = errors.New("invalid csv")
	ErrInvalidJSON       = errors.New("invalid json")
)

// FileKind is the upload encoding, decided by extension.
type FileKind int

const (
	KindCSV FileKind = iota
	KindJSON
)

func (k FileKind) String() string {
	if k == KindJSON {
		return "json"
	}
	return "csv"
}

// DetectFileKind maps a filename to the parser that handles it.
// Excel workbooks get their own error so callers can suggest exporting.
func DetectFileKind(filename string) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return KindCSV, nil
	case ".json":
		return KindJSON, nil
	case ".xlsx", ".xls":
		return 0, ErrExcelFile
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ParseTable reads r as kind and returns the table. r should already be
// wrapped with WrapForParsing.
//
// A source without a header returns ErrEmptyTable. A header with no data
// rows returns an empty table. Short CSV rows are padded with blanks but a
// row wider than the header is malformed. Malformed input wraps
// ErrInvalidCSV or ErrInvalidJSON.
func ParseTable(kind FileKind, r io.Reader) (*validation.Table, error) {
	if kind == KindJSON {
		return parseJSONRecords(r)
	}
	return parseCSV(r)
}

func parseCSV(r io.Reader) (*validation.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, csvError(err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d",
				ErrInvalidCSV, len(header), line, len(record))
		}
		for i, cell := range record {
			record[i] = blankMissing(cell)
		}
		rows = append(rows, record)
	}
	return validation.NewTable(header, rows), nil
}

// csvError marks parse problems as ErrInvalidCSV. Read failures such as the
// size limit or a dropped connection come back from encoding/csv unwrapped
// and pass through untouched.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	return err
}

// parseJSONRecords reads an array of flat objects. Columns appear in the
// order keys are first seen; missing keys and nulls become blank cells.
func parseJSONRecords(r io.Reader) (*validation.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, jsonError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("%w: expected an array of records", ErrInvalidJSON)
	}

	var (
		columns []string
		seen    = make(map[string]int)
		records []map[string]string
	)
	for dec.More() {
		rec, keys, err := readJSONObject(dec)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(columns)
				columns = append(columns, k)
			}
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, jsonError(err)
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for k, v := range rec {
			row[seen[k]] = v
		}
		rows[i] = row
	}
	return validation.NewTable(columns, rows), nil
}

// readJSONObject decodes one record, keeping key order.
func readJSONObject(dec *json.Decoder) (map[string]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, jsonError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("%w: each record must be an object", ErrInvalidJSON)
	}

	rec := make(map[string]string)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, jsonError(err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, jsonError(err)
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = jsonCell(raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, jsonError(err)
	}
	return rec, keys, nil
}

// jsonCell renders a scalar as cell text. Numbers keep their literal form
// so "2023" and "2023.0" stay distinguishable.
func jsonCell(raw json.RawMessage) string {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null":
		return ""
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return blankMissing(s)
		}
	}
	return text
}

// missingMarkers are the cell texts statistical exports write for a
// missing value. Matching is exact, as in pandas' default na_values.
var missingMarkers = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// blankMissing turns a missing-value marker into a blank cell.
func blankMissing(cell string) string {
	if missingMarkers[cell] {
		return ""
	}
	return cell
}

func jsonError(err error) error {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syntax) || errors.As(err, &typ) || err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return err
}
