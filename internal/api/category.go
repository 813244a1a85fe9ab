package api

import (
	"net/http"

	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateCategoryRequest is the category create payload.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// UpdateCategoryRequest carries the optional name of a partial category
// update. A nil pointer marks an absent field.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

// ListCategoriesHandler returns one page of categories, newest first.
func ListCategoriesHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, p, err := svc.List(pageParam(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      true,
			"message":     "listing categories",
			"data":        categories,
			"page":        p.Page,
			"page_size":   p.PageSize,
			"total":       p.Total,
			"total_pages": p.TotalPages,
		})
	}
}

// GetCategoryHandler returns a single category.
func GetCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "category")
		if !ok {
			return
		}
		category, err := svc.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"data":   category,
		})
	}
}

// CreateCategoryHandler stores a new category.
func CreateCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		category, err := svc.Create(req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"category_id": category.ID,
			"name":        category.Name,
		}).Info("Category created")
		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "category created successfully",
			"data":    category,
		})
	}
}

// UpdateCategoryHandler applies a partial update to a category.
func UpdateCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "category")
		if !ok {
			return
		}
		var req UpdateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		category, err := svc.Update(id, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "category updated successfully",
			"data":    category,
		})
	}
}

// DeleteCategoryHandler removes a category unless transactions still
// reference it.
func DeleteCategoryHandler(svc *service.CategoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "category")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"category_id": id}).Info("Category deleted")
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "category deleted successfully",
		})
	}
}
