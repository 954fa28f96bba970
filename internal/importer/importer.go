// Package importer implements the bulk menu import pipeline: parse tabular
// input, map and validate rows, resolve categories (auto-creating missing
// ones), and submit the surviving items as one batch.
package importer

import (
	"context"
	"fmt"
	"io"
	"log"

	"menu-console/internal/domain"
	categoryrepo "menu-console/internal/repository/category"
	itemrepo "menu-console/internal/repository/item"
)

type Importer struct {
	categories categoryrepo.Repository
	items      itemrepo.Repository
	logger     *log.Logger
}

func New(categories categoryrepo.Repository, items itemrepo.Repository, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Importer{categories: categories, items: items, logger: logger}
}

// Result reports what one import run did. Counts are truthful even when
// nothing succeeded.
type Result struct {
	Created           int      `json:"created"`
	Failed            int      `json:"failed"`
	CategoriesCreated int      `json:"categoriesCreated"`
	Errors            []string `json:"errors,omitempty"`
}

// Run executes one import. Row-level failures are collected and skipped;
// parse failures and a rejected batch abort with an error. Rows are processed
// strictly in order so each row sees the categories created before it.
func (imp *Importer) Run(ctx context.Context, tenantID string, data []byte, format Format) (*Result, error) {
	rows, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	resolve, err := newResolver(ctx, imp.categories, tenantID)
	if err != nil {
		return nil, err
	}

	var pending []domain.Item
	for i, row := range rows {
		cand, rowErrs := mapRow(row)
		label := cand.Item.Name
		if label == "" {
			label = "N/A"
		}

		for _, w := range cand.Warnings {
			imp.logger.Printf("importer: tenant=%s row %d (%s): %s", tenantID, i+1, label, w)
		}

		if len(rowErrs) > 0 {
			res.Failed++
			for _, msg := range rowErrs {
				res.Errors = append(res.Errors, fmt.Sprintf("row %d (%s): %s", i+1, label, msg))
			}
			continue
		}

		categoryID, err := resolve.resolve(ctx, cand.CategoryName)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d (%s): %v", i+1, label, err))
			continue
		}

		it := cand.Item
		it.TenantID = tenantID
		it.CategoryID = categoryID
		pending = append(pending, it)
	}

	res.CategoriesCreated = resolve.created

	if len(pending) > 0 {
		created, err := imp.items.CreateBatch(ctx, pending)
		if err != nil {
			// The batch is all-or-nothing: a rejection discards every
			// validated row.
			res.Failed += len(pending)
			res.Errors = append(res.Errors, fmt.Sprintf("batch create rejected: %v", err))
			imp.logger.Printf("importer: tenant=%s batch rejected rows=%d error=%v", tenantID, len(pending), err)
			return res, fmt.Errorf("create items batch: %w", err)
		}
		res.Created = created
	}

	imp.logger.Printf("importer: tenant=%s format=%s created=%d failed=%d categories_created=%d",
		tenantID, format, res.Created, res.Failed, res.CategoriesCreated)
	return res, nil
}
