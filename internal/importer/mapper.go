package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"menu-console/internal/domain"
)

// Candidate is a mapped row awaiting category resolution and batch creation.
// Warnings record values the mapper coerced (unrecognized enums falling back
// to defaults); they are logged, not counted as failures.
type Candidate struct {
	Item         domain.Item
	CategoryName string
	Warnings     []string
}

// Column aliases, matched after normalization (lowercased, separators
// stripped), so "Category Name", "category_name" and "CategoryName" all hit
// the same field.
var (
	nameAliases        = []string{"name", "item name", "item"}
	categoryAliases    = []string{"category name", "category"}
	priceAliases       = []string{"price", "cost"}
	descriptionAliases = []string{"description", "desc"}
	currencyAliases    = []string{"currency"}
	availableAliases   = []string{"available", "availability"}
	soldOutAliases     = []string{"sold out", "soldout"}
	bogoAliases        = []string{"bogo"}
	allergenAliases    = []string{"allergens", "allergen"}
	caloriesAliases    = []string{"calories", "kcal"}
	prepAliases        = []string{"prep minutes", "prep time", "preparation time"}
	specialAliases     = []string{"special type", "special"}
	orientationAliases = []string{"image orientation", "orientation"}
	timeAvailAliases   = []string{"time availability", "available time"}
	dateAvailAliases   = []string{"date availability", "available date"}
)

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, s)
}

// mapRow produces a candidate item plus zero or more row-level errors. One
// row's failure never blocks the others, so errors are collected rather than
// returned early.
func mapRow(row Row) (Candidate, []string) {
	lookup := make(map[string]string, len(row))
	for k, v := range row {
		lookup[normalizeKey(k)] = v
	}
	pick := func(aliases []string) string {
		for _, a := range aliases {
			if v, ok := lookup[normalizeKey(a)]; ok && v != "" {
				return v
			}
		}
		return ""
	}
	// Boolean-like columns are true only on a case-insensitive "true".
	pickBool := func(aliases []string) bool {
		return strings.EqualFold(pick(aliases), "true")
	}

	var errs []string

	name := strings.TrimSpace(pick(nameAliases))
	if name == "" {
		errs = append(errs, "item name is required")
	}

	categoryName := strings.TrimSpace(pick(categoryAliases))
	if categoryName == "" {
		errs = append(errs, "category name is required")
	}

	var price float64
	rawPrice := pick(priceAliases)
	if rawPrice == "" {
		errs = append(errs, "price is required")
	} else {
		parsed, err := strconv.ParseFloat(rawPrice, 64)
		switch {
		// ParseFloat accepts "NaN" and "Inf", which would slip past the
		// positive check below.
		case err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0):
			errs = append(errs, fmt.Sprintf("price %q is not a number", rawPrice))
		case parsed <= 0:
			errs = append(errs, fmt.Sprintf("price must be positive, got %q", rawPrice))
		default:
			price = parsed
		}
	}

	// Unrecognized enum values fall back to defaults instead of erroring,
	// but the coercion is recorded so the import log shows it.
	var warnings []string
	normalize := func(field, raw string, fn func(string) string) string {
		v := fn(raw)
		if raw != "" && !strings.EqualFold(strings.TrimSpace(raw), v) {
			warnings = append(warnings, fmt.Sprintf("%s %q not recognized, using %s", field, raw, v))
		}
		return v
	}

	cand := Candidate{
		CategoryName: categoryName,
		Item: domain.Item{
			Name:             name,
			Description:      strings.TrimSpace(pick(descriptionAliases)),
			Price:            price,
			Currency:         normalize("currency", pick(currencyAliases), domain.NormalizeCurrency),
			SpecialType:      normalize("special type", pick(specialAliases), domain.NormalizeSpecialType),
			ImageOrientation: normalize("image orientation", pick(orientationAliases), domain.NormalizeImageOrientation),
			Available:        pickBool(availableAliases),
			SoldOut:          pickBool(soldOutAliases),
			Bogo:             pickBool(bogoAliases),
			Allergens:        splitList(pick(allergenAliases)),
			Calories:         intOrZero(pick(caloriesAliases)),
			PrepMinutes:      intOrZero(pick(prepAliases)),
			TimeAvailability: strings.TrimSpace(pick(timeAvailAliases)),
			DateAvailability: strings.TrimSpace(pick(dateAvailAliases)),
		},
	}
	cand.Warnings = warnings
	return cand, errs
}

// splitList splits a delimited cell ("nuts;dairy" or "nuts, dairy") into a
// cleaned slice.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// intOrZero parses best-effort; unparsable numeric extras are not worth
// failing a row over.
func intOrZero(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
