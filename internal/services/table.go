package services

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cleanguard-backend/internal/textutil"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// TableFile is a rendered spreadsheet ready to be sent as a download
type TableFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseFormat accepts csv or xlsx, defaulting to xlsx
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatXLSX, "excel":
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", validationf("unsupported format %q, expected csv or xlsx", format)
}

// formatOf picks the reader from the uploaded file name
func formatOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", validationf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))
}

// ReadTable returns every row of a csv or xlsx upload with cells trimmed.
// CSV text that is not valid UTF-8 is decoded as GBK, which is what Excel
// writes on Chinese Windows.
func ReadTable(filename string, data []byte) ([][]string, error) {
	format, err := formatOf(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, validationf("file is empty")
	}

	var rows [][]string
	if format == FormatXLSX {
		rows, err = readXLSX(data)
	} else {
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i] = textutil.TrimCells(rows[i])
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = textutil.StripBOM(rows[0][0])
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	var reader io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		reader = transform.NewReader(reader, simplifiedchinese.GBK.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, validationf("invalid csv: %v", err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, validationf("invalid xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, validationf("invalid xlsx: %v", err)
	}

	// GetRows drops trailing empty cells; pad to the header width
	if len(rows) > 0 {
		width := len(rows[0])
		for i := range rows {
			for len(rows[i]) < width {
				rows[i] = append(rows[i], "")
			}
		}
	}
	return rows, nil
}

// RenderTable writes headers and rows as csv (UTF-8 BOM) or a styled xlsx sheet
func RenderTable(format, baseName, sheet string, headers []string, rows [][]string) (*TableFile, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		data, err := renderCSV(headers, rows)
		if err != nil {
			return nil, err
		}
		return &TableFile{Name: baseName + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
	}

	data, err := renderXLSX(sheet, headers, rows)
	if err != nil {
		return nil, err
	}
	return &TableFile{
		Name:        baseName + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

func renderCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheet string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		f.SetColWidth(sheet, col, col, 14)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellStr(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
