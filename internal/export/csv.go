// Package export renders report downloads: violations as CSV and security
// evaluations as an XLSX workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hejazi/internal/port"
)

// BOM makes Excel on Windows open the Arabic text as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var violationColumns = []string{
	"Title",
	"Company",
	"Building",
	"Severity",
	"Status",
	"Occurred At",
	"Penalty Amount",
	"Reported By",
	"Closed At",
	"Description",
}

// ViolationCSV writes violations as CSV.
type ViolationCSV struct {
	csv *csv.Writer
}

// NewViolationCSV writes the BOM to w and returns a writer positioned after it.
func NewViolationCSV(w io.Writer) (*ViolationCSV, error) {
	if _, err := w.Write(BOM); err != nil {
		return nil, fmt.Errorf("writing BOM: %w", err)
	}
	return &ViolationCSV{csv: csv.NewWriter(w)}, nil
}

// WriteHeader writes the column row.
func (w *ViolationCSV) WriteHeader() error {
	return w.csv.Write(violationColumns)
}

// WriteRows writes one line per violation.
func (w *ViolationCSV) WriteRows(rows []port.ViolationExportRow) error {
	for i := range rows {
		if err := w.csv.Write(violationRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows and reports any write error.
func (w *ViolationCSV) Close() error {
	w.csv.Flush()
	return w.csv.Error()
}

func violationRow(v *port.ViolationExportRow) []string {
	return []string{
		v.Title,
		v.CompanyName,
		v.BuildingName,
		string(v.Severity),
		string(v.Status),
		v.OccurredAt.Format(time.RFC3339),
		formatMoney(v.PenaltyAmount),
		v.ReporterName,
		formatTime(v.ClosedAt),
		v.Description,
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var nonFilenameChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename keeps letters (any script), digits, hyphens and
// underscores, collapses runs of underscores and caps the result at 100 runes.
func SanitizeFilename(name string) string {
	s := nonFilenameChars.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns "{name}_{YYYY-MM-DD}.{ext}" for Content-Disposition.
func BuildFilename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), ext)
}
