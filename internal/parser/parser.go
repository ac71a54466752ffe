package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

// Options tunes decoding.
type Options struct {
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
	// Delimiter overrides CSV delimiter detection when non-zero.
	Delimiter rune
}

// Parser decodes raw source bytes into a table.
type Parser interface {
	CanParse(locator, contentType string) bool
	Parse(content []byte, opt Options) (*records.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseTable selects a parser based on the locator and content type and
// decodes content. Sources no parser claims are read as CSV, which is what a
// published spreadsheet link serves.
func ParseTable(locator, contentType string, content []byte, opt Options) (*records.Table, error) {
	if opt.Delimiter == 0 && (sourceFormat(locator) == "tsv" || mediaType(contentType) == "text/tab-separated-values") {
		opt.Delimiter = '\t'
	}
	for _, p := range registry {
		if p.CanParse(locator, contentType) {
			return p.Parse(content, opt)
		}
	}
	return csvParser{}.Parse(content, opt)
}

// sourceFormat guesses the table format from a path or URL: the file
// extension of the path part, or Google Sheets' output=<format> parameter.
func sourceFormat(locator string) string {
	l := strings.ToLower(strings.TrimSpace(locator))
	path, query, _ := strings.Cut(l, "?")
	path, _, _ = strings.Cut(path, "#")
	for _, kv := range strings.Split(query, "&") {
		if v, ok := strings.CutPrefix(kv, "output="); ok {
			return v
		}
		if v, ok := strings.CutPrefix(kv, "format="); ok {
			return v
		}
	}
	if i := strings.LastIndex(path, "."); i >= 0 && !strings.Contains(path[i:], "/") {
		return path[i+1:]
	}
	return ""
}

// mediaType strips parameters from a Content-Type value.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func init() {
	// Register default parsers
	Register(xlsxParser{})
	Register(csvParser{})
}

// ErrNoHeader indicates the source has no header row.
var ErrNoHeader = errors.New("no header row")

func wrapRow(row int, err error) error {
	return fmt.Errorf("read row %d: %w", row, err)
}
