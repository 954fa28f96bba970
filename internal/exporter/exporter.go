// Package exporter serializes the current menu into downloadable CSV, JSON,
// or XLSX artifacts. Export is a pure read: it never mutates source data.
package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"menu-console/internal/domain"
)

// FormatVersion is bumped on breaking changes to the JSON envelope.
const FormatVersion = 1

type Options struct {
	Format          string `json:"format"` // csv | json | xlsx
	IncludeMetadata bool   `json:"includeMetadata"`
	// From/To bound items by CreatedAt, inclusive. Zero values mean unbounded.
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

type envelope struct {
	ExportedAt    time.Time         `json:"exportedAt"`
	FormatVersion int               `json:"formatVersion"`
	Metadata      *metadata         `json:"metadata,omitempty"`
	Categories    []domain.Category `json:"categories"`
	Items         []domain.Item     `json:"items"`
}

type metadata struct {
	ItemCount     int     `json:"itemCount"`
	CategoryCount int     `json:"categoryCount"`
	Options       Options `json:"options"`
}

// Export produces an artifact for the given item/category set. An empty item
// set (after the optional date-range filter) yields domain.ErrNoItems rather
// than a silently empty file.
func Export(items []domain.Item, categories []domain.Category, opts Options) (*Artifact, error) {
	items = filterByDate(items, opts.From, opts.To)
	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}

	now := time.Now().UTC()
	var (
		data        []byte
		contentType string
		err         error
	)
	switch strings.ToLower(opts.Format) {
	case "csv":
		data, err = exportCSV(items, categories)
		contentType = "text/csv"
	case "json":
		data, err = exportJSON(items, categories, opts, now)
		contentType = "application/json"
	case "xlsx":
		data, err = exportXLSX(items, categories, now)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    fmt.Sprintf("menu-export-%s.%s", now.Format("2006-01-02"), strings.ToLower(opts.Format)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func filterByDate(items []domain.Item, from, to time.Time) []domain.Item {
	if from.IsZero() && to.IsZero() {
		return items
	}
	var out []domain.Item
	for _, it := range items {
		if !from.IsZero() && it.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && it.CreatedAt.After(to) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// categoryNames indexes id -> name for the join on CategoryID. Items whose
// category is gone export with a blank name.
func categoryNames(categories []domain.Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

var csvHeader = []string{
	"Name", "Description", "Category Name", "Price", "Currency",
	"Available", "Sold Out", "BOGO", "Allergens", "Calories", "Prep Minutes",
	"Special Type", "Image Orientation", "Time Availability", "Date Availability",
}

func itemRecord(it domain.Item, names map[string]string) []string {
	return []string{
		it.Name,
		it.Description,
		names[it.CategoryID],
		strconv.FormatFloat(it.Price, 'f', -1, 64),
		it.Currency,
		strconv.FormatBool(it.Available),
		strconv.FormatBool(it.SoldOut),
		strconv.FormatBool(it.Bogo),
		strings.Join(it.Allergens, ";"),
		strconv.Itoa(it.Calories),
		strconv.Itoa(it.PrepMinutes),
		it.SpecialType,
		it.ImageOrientation,
		it.TimeAvailability,
		it.DateAvailability,
	}
}

func exportCSV(items []domain.Item, categories []domain.Category) ([]byte, error) {
	names := categoryNames(categories)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := w.Write(itemRecord(it, names)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportJSON(items []domain.Item, categories []domain.Category, opts Options, now time.Time) ([]byte, error) {
	env := envelope{
		ExportedAt:    now,
		FormatVersion: FormatVersion,
		Categories:    categories,
		Items:         items,
	}
	if opts.IncludeMetadata {
		env.Metadata = &metadata{
			ItemCount:     len(items),
			CategoryCount: len(categories),
			Options:       opts,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

func exportXLSX(items []domain.Item, categories []domain.Category, now time.Time) ([]byte, error) {
	names := categoryNames(categories)

	f := excelize.NewFile()
	defer f.Close()

	const catSheet = "Categories"
	if err := f.SetSheetName("Sheet1", catSheet); err != nil {
		return nil, err
	}
	if err := writeSheetRow(f, catSheet, 1, []any{"Name", "Description", "Sort Order", "Active"}); err != nil {
		return nil, err
	}
	for i, c := range categories {
		row := []any{c.Name, c.Description, c.SortOrder, c.Active}
		if err := writeSheetRow(f, catSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	const itemSheet = "Menu Items"
	if _, err := f.NewSheet(itemSheet); err != nil {
		return nil, err
	}
	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := writeSheetRow(f, itemSheet, 1, header); err != nil {
		return nil, err
	}
	for i, it := range items {
		record := itemRecord(it, names)
		row := make([]any, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		if err := writeSheetRow(f, itemSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	var total float64
	for _, it := range items {
		total += it.Price
	}
	summary := [][]any{
		{"Metric", "Value"},
		{"Item Count", len(items)},
		{"Category Count", len(categories)},
		{"Total Price", total},
		{"Average Price", total / float64(len(items))},
		{"Exported At", now.Format(time.RFC3339)},
	}
	for i, row := range summary {
		if err := writeSheetRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
