package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"menu-console/internal/domain"
	categorysvc "menu-console/internal/service/category"
)

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func listCategoriesHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svc.List(c.Request.Context(), tenantID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if cats == nil {
			cats = []domain.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"categories": cats})
	}
}

func createCategoryHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		created, err := svc.Create(c.Request.Context(), domain.Category{
			TenantID:    tenantID(c),
			Name:        req.Name,
			Description: req.Description,
			Active:      active,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateCategoryHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		existing, err := svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		existing.Name = req.Name
		existing.Description = req.Description
		if req.Active != nil {
			existing.Active = *req.Active
		}
		updated, err := svc.Update(c.Request.Context(), *existing)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteCategoryHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func reorderCategoriesHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Reorder(c.Request.Context(), tenantID(c), req.IDs); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
