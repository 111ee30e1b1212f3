// package formatter provides functions to export reading list entries to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a format name into a [Format]. An empty name yields [FormatText].
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use text, csv, markdown or json)", shared.ErrInvalidArgument, name)
	}
}

// Extension returns the file extension used for exports in format f.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Export renders entries in the given format.
func Export(entries []models.Entry, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return ExportToText(entries)
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatMarkdown:
		return ExportToMarkdown(entries)
	case FormatJSON:
		return ExportToJSON(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, string(f))
	}
}

// record is the flattened view of an entry shared by the CSV and JSON exports.
type record struct {
	Kind     string `json:"kind"`
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Comment  string `json:"comment,omitempty"`
	Author   string `json:"author,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	URL      string `json:"url,omitempty"`
	Duration string `json:"duration,omitempty"`
}

func toRecord(entry models.Entry) record {
	switch e := entry.(type) {
	case models.Book:
		return record{Kind: e.Kind().String(), ID: e.ID, Title: e.Title, Comment: e.Comment, Author: e.Author, ISBN: e.ISBN}
	case models.Video:
		return record{Kind: e.Kind().String(), ID: e.ID, Title: e.Title, Comment: e.Comment, URL: e.URL, Duration: e.Duration}
	case *models.Book:
		return toRecord(*e)
	case *models.Video:
		return toRecord(*e)
	default:
		return record{Kind: entry.Kind().String(), ID: entry.Ref().ID, Title: entry.Label()}
	}
}

// ExportToText numbers each entry and prints it as "[kind] <entry>"
func ExportToText(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Entries: %d\n", len(entries)))
	if len(entries) > 0 {
		buf.WriteString("\n")
	}

	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, entry.Kind(), entry))
	}

	return buf.Bytes(), nil
}

// ExportToCSV converts entries to CSV with columns: Kind, ID, Title, Comment, Author, ISBN, URL, Duration
func ExportToCSV(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Kind", "ID", "Title", "Comment", "Author", "ISBN", "URL", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		r := toRecord(entry)
		row := []string{
			r.Kind,
			strconv.FormatInt(r.ID, 10),
			r.Title,
			r.Comment,
			r.Author,
			r.ISBN,
			r.URL,
			r.Duration,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a "Books" and a "Videos" section.
func ExportToMarkdown(entries []models.Entry) ([]byte, error) {
	var books, videos []record
	for _, entry := range entries {
		r := toRecord(entry)
		if entry.Kind() == models.KindBook {
			books = append(books, r)
		} else {
			videos = append(videos, r)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("# Reading list\n\n")

	buf.WriteString("## Books\n\n")
	if len(books) == 0 {
		buf.WriteString("_No books._\n")
	}
	for i, b := range books {
		line := fmt.Sprintf("%d. **%s**", i+1, b.Title)
		if b.Author != "" {
			line += " by " + b.Author
		}
		if b.ISBN != "" {
			line += fmt.Sprintf(" (ISBN %s)", b.ISBN)
		}
		writeItem(&buf, line, b.Comment)
	}

	buf.WriteString("\n## Videos\n\n")
	if len(videos) == 0 {
		buf.WriteString("_No videos._\n")
	}
	for i, v := range videos {
		line := fmt.Sprintf("%d. **%s**", i+1, v.Title)
		if v.URL != "" {
			line = fmt.Sprintf("%d. [%s](%s)", i+1, v.Title, v.URL)
		}
		if v.Duration != "" {
			line += fmt.Sprintf(" [%s]", v.Duration)
		}
		writeItem(&buf, line, v.Comment)
	}

	return buf.Bytes(), nil
}

func writeItem(buf *bytes.Buffer, line, comment string) {
	buf.WriteString(line)
	buf.WriteString("\n")
	if comment != "" {
		buf.WriteString(fmt.Sprintf("   > %s\n", comment))
	}
}

// ExportToJSON encodes entries as an indented JSON array tagged with their kind.
func ExportToJSON(entries []models.Entry) ([]byte, error) {
	records := make([]record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, toRecord(entry))
	}

	data, err := shared.MarshalJSON(records, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// WriteFile writes an export to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
