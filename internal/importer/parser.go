package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"menu-console/internal/domain"
)

// Row is one record of tabular input, keyed by column name. Values are kept
// as strings; the mapper does all type coercion.
type Row map[string]string

// Parse turns raw file bytes into an ordered sequence of rows. Content that
// cannot be decoded as the declared format yields a *ParseError.
func Parse(data []byte, format Format) ([]Row, error) {
	switch format {
	case FormatCSV:
		return parseCSV(data)
	case FormatJSON:
		return parseJSON(data)
	case FormatXLSX:
		return parseXLSX(data)
	default:
		return nil, &ParseError{Format: format, Err: fmt.Errorf("unknown format %q", format)}
	}
}

func parseCSV(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows may be ragged

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Format: FormatCSV, Err: errors.New("missing header row")}
	}
	return rowsFromRecords(records), nil
}

func parseXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	// The first worksheet is the data sheet.
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Format: FormatXLSX, Err: errors.New("workbook has no sheets")}
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: errors.New("missing header row")}
	}
	return rowsFromRecords(records), nil
}

// rowsFromRecords maps header cells onto data cells, skipping fully blank rows.
func rowsFromRecords(records [][]string) []Row {
	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		blank := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// exportEnvelope mirrors the exporter's JSON artifact so an export can be
// imported back.
type exportEnvelope struct {
	Categories []domain.Category `json:"categories"`
	Items      []domain.Item     `json:"items"`
}

func parseJSON(data []byte) ([]Row, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("empty input")}
	}

	// A bare array is treated as generic row objects; an object is expected
	// to be an export envelope.
	if trimmed[0] == '[' {
		var raw []map[string]any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &ParseError{Format: FormatJSON, Err: err}
		}
		rows := make([]Row, 0, len(raw))
		for _, obj := range raw {
			row := make(Row, len(obj))
			for k, v := range obj {
				row[k] = stringifyJSON(v)
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	var env exportEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}
	if env.Items == nil {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("object is not an export envelope (missing items)")}
	}

	catNames := make(map[string]string, len(env.Categories))
	for _, c := range env.Categories {
		catNames[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(env.Items))
	for _, it := range env.Items {
		rows = append(rows, Row{
			"Name":              it.Name,
			"Description":       it.Description,
			"Category Name":     catNames[it.CategoryID],
			"Price":             strconv.FormatFloat(it.Price, 'f', -1, 64),
			"Currency":          it.Currency,
			"Available":         strconv.FormatBool(it.Available),
			"Sold Out":          strconv.FormatBool(it.SoldOut),
			"BOGO":              strconv.FormatBool(it.Bogo),
			"Allergens":         strings.Join(it.Allergens, ";"),
			"Calories":          strconv.Itoa(it.Calories),
			"Prep Minutes":      strconv.Itoa(it.PrepMinutes),
			"Special Type":      it.SpecialType,
			"Image Orientation": it.ImageOrientation,
			"Time Availability": it.TimeAvailability,
			"Date Availability": it.DateAvailability,
		})
	}
	return rows, nil
}

func stringifyJSON(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringifyJSON(item))
		}
		return strings.Join(parts, ";")
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}
