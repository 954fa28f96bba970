package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"menu-console/internal/domain"
	itemsvc "menu-console/internal/service/item"
)

type itemRequest struct {
	CategoryID       string   `json:"categoryId" binding:"required"`
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	Available        bool     `json:"available"`
	SoldOut          bool     `json:"soldOut"`
	Bogo             bool     `json:"bogo"`
	Allergens        []string `json:"allergens"`
	Calories         int      `json:"calories"`
	PrepMinutes      int      `json:"prepMinutes"`
	SpecialType      string   `json:"specialType"`
	ImageOrientation string   `json:"imageOrientation"`
	TimeAvailability string   `json:"timeAvailability"`
	DateAvailability string   `json:"dateAvailability"`
}

func (r itemRequest) toDomain(tenant, id string) domain.Item {
	return domain.Item{
		ID:               id,
		TenantID:         tenant,
		CategoryID:       r.CategoryID,
		Name:             r.Name,
		Description:      r.Description,
		Price:            r.Price,
		Currency:         r.Currency,
		Available:        r.Available,
		SoldOut:          r.SoldOut,
		Bogo:             r.Bogo,
		Allergens:        r.Allergens,
		Calories:         r.Calories,
		PrepMinutes:      r.PrepMinutes,
		SpecialType:      r.SpecialType,
		ImageOrientation: r.ImageOrientation,
		TimeAvailability: r.TimeAvailability,
		DateAvailability: r.DateAvailability,
	}
}

type bulkUpdateRequest struct {
	IDs   []string      `json:"ids" binding:"required"`
	Patch itemsvc.Patch `json:"patch"`
}

type toggleRequest struct {
	Value bool `json:"value"`
}

func listItemsHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context(), tenantID(c), c.Query("categoryId"))
		if err != nil {
			respondError(c, err)
			return
		}
		if items == nil {
			items = []domain.Item{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getItemHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		it, err := svc.Get(c.Request.Context(), tenantID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func createItemHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		created, err := svc.Create(c.Request.Context(), req.toDomain(tenantID(c), ""))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateItemHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := svc.Update(c.Request.Context(), req.toDomain(tenantID(c), c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteItemHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setAvailableHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		it, err := svc.SetAvailable(c.Request.Context(), tenantID(c), c.Param("id"), req.Value)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func setSoldOutHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		it, err := svc.SetSoldOut(c.Request.Context(), tenantID(c), c.Param("id"), req.Value)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, it)
	}
}

func bulkUpdateItemsHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated, err := svc.BulkUpdate(c.Request.Context(), tenantID(c), req.IDs, req.Patch)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

func searchItemsHandler(svc *itemsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := itemsvc.Query{
			Text:       c.Query("q"),
			CategoryID: c.Query("categoryId"),
		}
		if raw := c.Query("available"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "available must be a boolean"})
				return
			}
			q.Available = &v
		}
		if raw := c.Query("minPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice must be a number"})
				return
			}
			q.MinPrice = &v
		}
		if raw := c.Query("maxPrice"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
				return
			}
			q.MaxPrice = &v
		}

		items, err := svc.Search(c.Request.Context(), tenantID(c), q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}
