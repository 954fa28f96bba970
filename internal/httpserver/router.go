package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"menu-console/internal/domain"
	"menu-console/internal/importer"
	categorysvc "menu-console/internal/service/category"
	itemsvc "menu-console/internal/service/item"
)

// Deps carries the collaborators handlers need.
type Deps struct {
	CategorySvc *categorysvc.Service
	ItemSvc     *itemsvc.Service
	Importer    *importer.Importer
}

// buildRouter wires routes for the console API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	gate := &transferGate{}

	api := router.Group("/tenants/:tenantKey")
	api.Use(tenantMiddleware())
	{
		api.GET("/categories", listCategoriesHandler(deps.CategorySvc))
		api.POST("/categories", createCategoryHandler(deps.CategorySvc))
		api.POST("/categories/reorder", reorderCategoriesHandler(deps.CategorySvc))
		api.PUT("/categories/:id", updateCategoryHandler(deps.CategorySvc))
		api.DELETE("/categories/:id", deleteCategoryHandler(deps.CategorySvc))

		api.GET("/items", listItemsHandler(deps.ItemSvc))
		api.GET("/items/search", searchItemsHandler(deps.ItemSvc))
		api.POST("/items", createItemHandler(deps.ItemSvc))
		api.POST("/items/bulk", bulkUpdateItemsHandler(deps.ItemSvc))
		api.GET("/items/:id", getItemHandler(deps.ItemSvc))
		api.PUT("/items/:id", updateItemHandler(deps.ItemSvc))
		api.DELETE("/items/:id", deleteItemHandler(deps.ItemSvc))
		api.POST("/items/:id/available", setAvailableHandler(deps.ItemSvc))
		api.POST("/items/:id/sold-out", setSoldOutHandler(deps.ItemSvc))

		api.POST("/import", importHandler(deps.Importer, gate))
		api.GET("/export", exportHandler(deps.ItemSvc, deps.CategorySvc, gate))
	}

	return router
}

func tenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("tenantKey")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "tenant key is required"})
			return
		}
		c.Set("tenantID", key)
		c.Next()
	}
}

func tenantID(c *gin.Context) string {
	return c.GetString("tenantID")
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
