package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Grid is a raw 2-D view of an uploaded spreadsheet, before any header
// detection. Cell values are kept as strings; typing happens in Parse.
type Grid [][]string

const maxXLSRows = 100000

// ReadGrid loads an uploaded attendance or roster file into a Grid. The
// format is chosen by extension: legacy .xls, delimited text (including the
// UTF-16 tab-separated dumps some terminals produce), or .xlsx for anything
// else.
func ReadGrid(r io.Reader, filename string) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	case ".csv", ".tsv", ".txt":
		return readDelimited(data)
	default:
		return readXLSX(data)
	}
}

func readXLS(data []byte) (Grid, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func readXLSX(data []byte) (Grid, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func readDelimited(data []byte) (Grid, error) {
	data = decodeUTF16(data)

	comma := ','
	if line, _, found := bytes.Cut(data, []byte("\n")); found || len(line) > 0 {
		if bytes.ContainsRune(line, '\t') {
			comma = '\t'
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return rows, nil
}

// decodeUTF16 converts BOM-marked UTF-16 exports to UTF-8 and passes
// everything else through untouched.
func decodeUTF16(data []byte) []byte {
	if len(data) < 2 {
		return data
	}

	var endian unicode.Endianness
	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		endian = unicode.LittleEndian
	case data[0] == 0xFE && data[1] == 0xFF:
		endian = unicode.BigEndian
	default:
		return data
	}

	decoder := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return data
	}
	return decoded
}
