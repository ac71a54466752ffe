package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
)

type csvParser struct{}

func (csvParser) CanParse(locator, contentType string) bool {
	switch sourceFormat(locator) {
	case "csv", "tsv":
		return true
	}
	switch mediaType(contentType) {
	case "text/csv", "text/tab-separated-values", "application/csv":
		return true
	}
	return false
}

// Parse reads a header row followed by data rows. Ragged rows are kept
// as-is and padded later by normalization.
func (csvParser) Parse(content []byte, opt Options) (*records.Table, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(content)
	}
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, wrapRow(len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return records.StringRows(header, rows), nil
}

// sniffDelimiter picks tab when the header line has tabs and no commas.
func sniffDelimiter(content []byte) rune {
	line := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	if bytes.IndexByte(line, '\t') >= 0 && bytes.IndexByte(line, ',') < 0 {
		return '\t'
	}
	return ','
}
