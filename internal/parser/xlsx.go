package parser

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/actionboard-cli/internal/records"
	"github.com/xuri/excelize/v2"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(locator, contentType string) bool {
	if sourceFormat(locator) == "xlsx" {
		return true
	}
	return mediaType(contentType) == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Parse reads the selected worksheet; the first row is the header. Numeric
// cells become number cells, everything else stays text.
func (xlsxParser) Parse(content []byte, opt Options) (*records.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found; available sheets: %v", sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	t := &records.Table{Header: rows[0], Rows: make([][]records.Cell, 0, len(rows)-1)}
	for r, row := range rows[1:] {
		cells := make([]records.Cell, len(row))
		for c, v := range row {
			cells[c] = records.StringCell(v)
			if v == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				continue
			}
			typ, err := f.GetCellType(sheet, axis)
			if err != nil {
				continue
			}
			if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cells[c] = records.NumberCell(n)
				}
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}
