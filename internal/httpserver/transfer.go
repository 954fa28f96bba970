package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"menu-console/internal/domain"
	"menu-console/internal/exporter"
	"menu-console/internal/importer"
	categorysvc "menu-console/internal/service/category"
	itemsvc "menu-console/internal/service/item"
)

// transferGate rejects re-entrant import/export triggering. The pipeline
// assumes at most one active run.
type transferGate struct {
	busy atomic.Bool
}

func (g *transferGate) tryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *transferGate) release() {
	g.busy.Store(false)
}

func importHandler(imp *importer.Importer, gate *transferGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.tryAcquire() {
			c.JSON(http.StatusConflict, gin.H{"error": "an import or export is already in progress"})
			return
		}
		defer gate.release()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
			return
		}
		format, err := importer.FormatFromFilename(fileHeader.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := imp.Run(c.Request.Context(), tenantID(c), data, format)
		if err != nil {
			var parseErr *importer.ParseError
			if errors.As(err, &parseErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
				return
			}
			// Batch rejection still carries truthful counts.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "result": result})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func exportHandler(items *itemsvc.Service, categories *categorysvc.Service, gate *transferGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.tryAcquire() {
			c.JSON(http.StatusConflict, gin.H{"error": "an import or export is already in progress"})
			return
		}
		defer gate.release()

		opts := exporter.Options{
			Format:          c.DefaultQuery("format", "csv"),
			IncludeMetadata: c.Query("metadata") == "true",
		}
		var err error
		if opts.From, _, err = parseDateParam(c.Query("from")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid from date: %v", err)})
			return
		}
		var toDateOnly bool
		if opts.To, toDateOnly, err = parseDateParam(c.Query("to")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid to date: %v", err)})
			return
		}
		// A date-only upper bound means the whole day, not its midnight.
		if toDateOnly {
			opts.To = opts.To.Add(24*time.Hour - time.Nanosecond)
		}

		tenant := tenantID(c)
		allItems, err := items.List(c.Request.Context(), tenant, "")
		if err != nil {
			respondError(c, err)
			return
		}
		cats, err := categories.List(c.Request.Context(), tenant)
		if err != nil {
			respondError(c, err)
			return
		}

		artifact, err := exporter.Export(allItems, cats, opts)
		if err != nil {
			if errors.Is(err, domain.ErrNoItems) {
				c.JSON(http.StatusOK, gin.H{"noop": true, "message": "no items to export"})
				return
			}
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
	}
}

// parseDateParam accepts RFC3339 timestamps and bare dates. The second return
// reports the date-only form so the caller can widen an upper bound.
func parseDateParam(raw string) (time.Time, bool, error) {
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
