// Package decoder turns raw spreadsheet bytes into labelled rows. It
// understands the two formats the source is published in: XLSX workbooks
// and CSV exports of the same table.
package decoder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoSheet means the workbook holds no readable sheet.
	ErrNoSheet = errors.New("decoder: spreadsheet has no readable sheet")
	// ErrNoHeader means the sheet has no header row to label columns with.
	ErrNoHeader = errors.New("decoder: missing header row")
	// ErrNoRows means no data rows survived the blank-row filter.
	ErrNoRows = errors.New("decoder: no data rows after filtering")
)

// Row maps a header label to the trimmed text of one cell. Cells that
// were empty in the source are absent from the map.
type Row map[string]string

// Get returns the trimmed cell text under label and whether the cell
// holds a non-empty value.
func (r Row) Get(label string) (string, bool) {
	v, ok := r[label]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Table is the raw decoded sheet: header labels plus every non-blank data
// row, in sheet order.
type Table struct {
	Header []string
	Rows   [][]string
}

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// DecodeTable parses raw spreadsheet bytes into an ordered table. XLSX
// workbooks are detected by their ZIP signature; anything else is treated
// as CSV with delimiter sniffing. The first sheet row is the header; rows
// whose every cell is blank are dropped.
func DecodeTable(data []byte) (*Table, error) {
	var cells [][]string
	var err error
	if bytes.HasPrefix(data, zipMagic) {
		cells, err = readXLSX(data)
	} else {
		cells, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(cells)
}

// Decode parses raw spreadsheet bytes and labels every data row with the
// header cell of its column.
func Decode(data []byte) ([]Row, error) {
	table, err := DecodeTable(data)
	if err != nil {
		return nil, err
	}
	return table.Label(), nil
}

// Label applies the header positionally to every row: cell i of a row is
// exposed under the label found at header position i. Cells beyond the
// header width and cells under an unnamed column are dropped.
func (t *Table) Label() []Row {
	rows := make([]Row, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row := make(Row, len(t.Header))
		for i, label := range t.Header {
			if label == "" || i >= len(cells) {
				continue
			}
			if v := strings.TrimSpace(cells[i]); v != "" {
				row[label] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoder: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("decoder: read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoder: read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// sniffDelimiter picks between comma and semicolon by counting their
// occurrences in the first line, the same heuristic the upstream exports
// require (Caixa has published both).
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func buildTable(cells [][]string) (*Table, error) {
	if len(cells) == 0 || blankRow(cells[0]) {
		return nil, ErrNoHeader
	}

	header := make([]string, len(cells[0]))
	for i, label := range cells[0] {
		header[i] = strings.TrimSpace(label)
	}

	table := &Table{Header: header}
	for _, row := range cells[1:] {
		if blankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return nil, ErrNoRows
	}
	return table, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
