// Package export converts tabular data into the download formats the
// administration UI offers: CSV, a JSON envelope, XLSX workbooks and
// printable HTML reports.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Table is the tabular shape every exporter consumes.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// escapeCSV quotes a cell when it contains a comma, quote or newline,
// doubling internal quotes.
func escapeCSV(cell string) string {
	if strings.ContainsAny(cell, ",\"\n") {
		return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return cell
}

// CSV renders the table as comma-separated text: a header line followed by
// one line per row.
func CSV(t Table) string {
	var b strings.Builder
	for i, h := range t.Headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(h))
	}
	b.WriteByte('\n')
	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Envelope is the JSON export wrapper.
type Envelope struct {
	Title       string              `json:"title"`
	ExportDate  time.Time           `json:"exportDate"`
	RecordCount int                 `json:"recordCount"`
	Data        []map[string]string `json:"data"`
}

// JSON renders the table as an indented JSON envelope; each row becomes an
// object keyed by the header names.
func JSON(t Table) (string, error) {
	data := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				obj[h] = row[i]
			} else {
				obj[h] = ""
			}
		}
		data = append(data, obj)
	}
	env := Envelope{
		Title:       t.Title,
		ExportDate:  time.Now().UTC(),
		RecordCount: len(t.Rows),
		Data:        data,
	}
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export envelope: %w", err)
	}
	return string(raw), nil
}

// Filename builds the download filename: <context>-<id-or-date>.<ext>.
func Filename(context, idOrDate, ext string) string {
	return fmt.Sprintf("%s-%s.%s", context, idOrDate, ext)
}
