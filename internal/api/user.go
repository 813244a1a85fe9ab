package api

import (
	"net/http"

	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UpdateUserRequest carries the optional fields of a partial user update.
// Nil pointers mark fields that were absent from the body.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ListUsersHandler returns one page of users, newest first.
func ListUsersHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, p, err := svc.List(pageParam(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      true,
			"users":       users,
			"page":        p.Page,
			"page_size":   p.PageSize,
			"total":       p.Total,
			"total_pages": p.TotalPages,
		})
	}
}

// GetUserHandler returns a single user.
func GetUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "user")
		if !ok {
			return
		}
		user, err := svc.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"user":   user,
		})
	}
}

// UpdateUserHandler applies a partial update to a user.
func UpdateUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "user")
		if !ok {
			return
		}
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		user, err := svc.Update(id, service.UserUpdates{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "user updated successfully",
			"data":    user,
		})
	}
}

// DeleteUserHandler removes a user unless transactions still reference them.
func DeleteUserHandler(svc *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "user")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": id}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "user deleted successfully",
		})
	}
}
