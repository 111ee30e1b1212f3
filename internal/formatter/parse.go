package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: cannot infer format of %q", shared.ErrInvalidArgument, path)
	}
	return ParseFormat(ext)
}

// ParseEntries reads entries back from a CSV or JSON export. Ids in the input are kept as-is.
func ParseEntries(data []byte, f Format) ([]models.Entry, error) {
	switch f {
	case FormatCSV:
		return ParseCSV(data)
	case FormatJSON:
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: cannot read %s exports", shared.ErrInvalidArgument, string(f))
	}
}

// ParseCSV reads the output of [ExportToCSV]. Columns are matched by header name, so their order may differ.
func ParseCSV(data []byte) ([]models.Entry, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: malformed CSV: %w", shared.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return []models.Entry{}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["kind"]; !ok {
		return nil, fmt.Errorf("%w: CSV header has no Kind column", shared.ErrInvalidInput)
	}

	entries := make([]models.Entry, 0, len(rows)-1)
	for n, row := range rows[1:] {
		get := func(name string) string {
			if i, ok := columns[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		r := record{
			Kind:     get("kind"),
			Title:    get("title"),
			Comment:  get("comment"),
			Author:   get("author"),
			ISBN:     get("isbn"),
			URL:      get("url"),
			Duration: get("duration"),
		}
		if id := get("id"); id != "" {
			if r.ID, err = strconv.ParseInt(id, 10, 64); err != nil {
				return nil, fmt.Errorf("%w: row %d: bad id %q", shared.ErrInvalidInput, n+2, id)
			}
		}

		entry, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseJSON reads the output of [ExportToJSON].
func ParseJSON(data []byte) ([]models.Entry, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %w", shared.ErrInvalidInput, err)
	}

	entries := make([]models.Entry, 0, len(records))
	for i, r := range records {
		entry, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func fromRecord(r record) (models.Entry, error) {
	kind, err := models.ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	switch kind {
	case models.KindBook:
		return models.Book{ID: r.ID, Title: r.Title, Comment: r.Comment, Author: r.Author, ISBN: r.ISBN}, nil
	default:
		return models.Video{ID: r.ID, Title: r.Title, Comment: r.Comment, URL: r.URL, Duration: r.Duration}, nil
	}
}
