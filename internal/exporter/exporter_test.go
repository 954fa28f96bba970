package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"menu-console/internal/domain"
)

func fixtureMenu() ([]domain.Item, []domain.Category) {
	categories := []domain.Category{
		{ID: "cat-tacos", Name: "Tacos", SortOrder: 0, Active: true},
		{ID: "cat-sides", Name: "Sides", SortOrder: 1, Active: true},
	}
	items := []domain.Item{
		{
			ID: "item-1", CategoryID: "cat-tacos", Name: "Taco", Price: 5.50,
			Currency: domain.CurrencyUSD, Available: true,
			SpecialType: domain.SpecialNone, ImageOrientation: domain.OrientationSquare,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "item-2", CategoryID: "cat-sides", Name: "Chips, Salsa & Guac", Price: 7.25,
			Currency: domain.CurrencyUSD, Allergens: []string{"corn"},
			SpecialType: domain.SpecialDaily, ImageOrientation: domain.OrientationLandscape,
			CreatedAt: time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC),
		},
	}
	return items, categories
}

func TestExportCSV_JoinsAndQuotes(t *testing.T) {
	items, categories := fixtureMenu()
	artifact, err := Export(items, categories, Options{Format: "csv"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(artifact.Filename, "menu-export-") || !strings.HasSuffix(artifact.Filename, ".csv") {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if artifact.ContentType != "text/csv" {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}

	records, err := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	if err != nil {
		t.Fatalf("artifact is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Name" || records[0][2] != "Category Name" {
		t.Fatalf("unexpected header %v", records[0])
	}
	// The comma-bearing name must survive a csv round trip intact.
	if records[2][0] != "Chips, Salsa & Guac" {
		t.Fatalf("quoting failed: %q", records[2][0])
	}
	if records[1][2] != "Tacos" || records[2][2] != "Sides" {
		t.Fatalf("category join failed: %v / %v", records[1], records[2])
	}
}

func TestExportCSV_MissingCategoryLeftBlank(t *testing.T) {
	items, _ := fixtureMenu()
	artifact, err := Export(items, nil, Options{Format: "csv"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records, _ := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	if records[1][2] != "" {
		t.Fatalf("expected blank category name, got %q", records[1][2])
	}
}

func TestExportJSON_Envelope(t *testing.T) {
	items, categories := fixtureMenu()
	artifact, err := Export(items, categories, Options{Format: "json", IncludeMetadata: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var env struct {
		ExportedAt    time.Time `json:"exportedAt"`
		FormatVersion int       `json:"formatVersion"`
		Metadata      *struct {
			ItemCount     int `json:"itemCount"`
			CategoryCount int `json:"categoryCount"`
		} `json:"metadata"`
		Categories []domain.Category `json:"categories"`
		Items      []domain.Item     `json:"items"`
	}
	if err := json.Unmarshal(artifact.Data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.FormatVersion != FormatVersion || env.ExportedAt.IsZero() {
		t.Fatalf("unexpected envelope header %+v", env)
	}
	if env.Metadata == nil || env.Metadata.ItemCount != 2 || env.Metadata.CategoryCount != 2 {
		t.Fatalf("unexpected metadata %+v", env.Metadata)
	}
	if len(env.Items) != 2 || len(env.Categories) != 2 {
		t.Fatalf("arrays not verbatim: %d items, %d categories", len(env.Items), len(env.Categories))
	}
	if env.Items[0].Price != 5.50 {
		t.Fatalf("item data mangled: %+v", env.Items[0])
	}
}

func TestExportJSON_MetadataOmitted(t *testing.T) {
	items, categories := fixtureMenu()
	artifact, err := Export(items, categories, Options{Format: "json"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.Contains(string(artifact.Data), `"metadata"`) {
		t.Fatalf("metadata should be omitted by default")
	}
}

func TestExportXLSX_Sheets(t *testing.T) {
	items, categories := fixtureMenu()
	artifact, err := Export(items, categories, Options{Format: "xlsx"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	if err != nil {
		t.Fatalf("artifact is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Categories", "Menu Items", "Summary"}
	if len(sheets) != len(want) {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Fatalf("sheet %d: want %q, got %q", i, name, sheets[i])
		}
	}

	name, err := f.GetCellValue("Menu Items", "A2")
	if err != nil || name != "Taco" {
		t.Fatalf("unexpected first item cell %q (%v)", name, err)
	}
	cat, _ := f.GetCellValue("Menu Items", "C2")
	if cat != "Tacos" {
		t.Fatalf("category join missing in workbook: %q", cat)
	}
	count, _ := f.GetCellValue("Summary", "B2")
	if count != "2" {
		t.Fatalf("unexpected summary item count %q", count)
	}
}

func TestExport_EmptySetIsNoOp(t *testing.T) {
	_, categories := fixtureMenu()
	_, err := Export(nil, categories, Options{Format: "csv"})
	if !errors.Is(err, domain.ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
}

func TestExport_DateRangeFilter(t *testing.T) {
	items, categories := fixtureMenu()

	// Only the June item falls inside the window.
	artifact, err := Export(items, categories, Options{
		Format: "csv",
		From:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records, _ := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	if len(records) != 2 || records[1][0] != "Taco" {
		t.Fatalf("unexpected filtered rows %v", records)
	}

	// A window past every item is a no-op, not an empty file.
	_, err = Export(items, categories, Options{
		Format: "csv",
		From:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrNoItems) {
		t.Fatalf("expected ErrNoItems for out-of-range window, got %v", err)
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	items, categories := fixtureMenu()
	if _, err := Export(items, categories, Options{Format: "pdf"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
