package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrInvalidRow      = errors.New("invalid row")
	ErrNoRows          = errors.New("no data rows")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrUnknownSheet    = errors.New("unknown sheet")
)

// dateLayouts are tried in order when parsing the date column
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// Columns names the input columns of the tabular dataset
type Columns struct {
	Entity      string `json:"entity"`
	Date        string `json:"date"`
	Value       string `json:"value"`
	Code        string `json:"code"`
	PeriodIndex string `json:"period_index"`
}

// NewDefaultColumns returns the column names of the preprocessed county dataset
func NewDefaultColumns() *Columns {
	return &Columns{
		Entity:      "County",
		Date:        "Date",
		Value:       "Electric Vehicle (EV) Total",
		Code:        "county_encoded",
		PeriodIndex: "months_since_start",
	}
}

// Validate fills in any unset column names with the defaults
func (c *Columns) Validate() (*Columns, error) {
	def := NewDefaultColumns()
	if c == nil {
		return def, nil
	}
	out := *c
	if out.Entity == "" {
		out.Entity = def.Entity
	}
	if out.Date == "" {
		out.Date = def.Date
	}
	if out.Value == "" {
		out.Value = def.Value
	}
	if out.Code == "" {
		out.Code = def.Code
	}
	if out.PeriodIndex == "" {
		out.PeriodIndex = def.PeriodIndex
	}
	return &out, nil
}

// LoadCSV reads a csv with a header row
func LoadCSV(r io.Reader, cols *Columns) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse csv, %w", err)
	}
	return fromRows(rows, cols)
}

// LoadXLSX reads an excel workbook with a header row. If sheet is empty the first sheet is
// used.
func LoadXLSX(r io.Reader, sheet string, cols *Columns) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook, %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%q, %w", sheet, ErrUnknownSheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read rows from sheet %q, %w", sheet, err)
	}
	return fromRows(rows, cols)
}

// LoadFile loads a .csv or .xlsx dataset from path
func LoadFile(path, sheet string, cols *Columns) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(file, cols)
	case ".xlsx":
		return LoadXLSX(file, sheet, cols)
	default:
		return nil, fmt.Errorf("%s, %w", path, ErrUnsupportedFile)
	}
}

func fromRows(rows [][]string, cols *Columns) (*Dataset, error) {
	cols, err := cols.Validate()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	header := rows[0]
	entityIdx, err := columnIndex(header, cols.Entity)
	if err != nil {
		return nil, err
	}
	dateIdx, err := columnIndex(header, cols.Date)
	if err != nil {
		return nil, err
	}
	valueIdx, err := columnIndex(header, cols.Value)
	if err != nil {
		return nil, err
	}
	codeIdx, err := columnIndex(header, cols.Code)
	if err != nil {
		return nil, err
	}
	periodIdx, err := columnIndex(header, cols.PeriodIndex)
	if err != nil {
		return nil, err
	}

	obs := make([]Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based including the header
		entity := strings.TrimSpace(cell(row, entityIdx))
		if entity == "" {
			continue
		}

		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d column %q, %v, %w", rowNum, cols.Date, err, ErrInvalidRow)
		}
		value, err := parseInt(cell(row, valueIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d column %q, %v, %w", rowNum, cols.Value, err, ErrInvalidRow)
		}
		code, err := parseInt(cell(row, codeIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d column %q, %v, %w", rowNum, cols.Code, err, ErrInvalidRow)
		}
		period, err := parseInt(cell(row, periodIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d column %q, %v, %w", rowNum, cols.PeriodIndex, err, ErrInvalidRow)
		}

		obs = append(obs, Observation{
			Entity:      entity,
			Date:        date,
			Value:       value,
			Code:        code,
			PeriodIndex: period,
		})
	}
	return New(obs)
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q, %w", name, ErrMissingColumn)
}

// cell returns an empty string for short rows, excelize trims trailing empty cells
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", s)
}

// parseInt accepts integers written as floats such as "12.0"
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse number %q", s)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if math.Abs(f) >= math.MaxInt {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(f), nil
}
