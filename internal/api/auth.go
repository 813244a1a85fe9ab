package api

import (
	"net/http"

	"finance_api/internal/domain"
	"finance_api/internal/middleware"
	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RegisterRequest is the registration payload. Field rules are enforced in
// the service so every violation is reported together.
type RegisterRequest struct {
	Name     string `json:"name"`
	CPF      string `json:"cpf"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a user and issues their first access token.
func RegisterHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		user, token, err := svc.Register(service.RegisterInput{
			Name:     req.Name,
			CPF:      req.CPF,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{
			"status":  true,
			"message": "user registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

// LoginHandler authenticates a user and issues a new access token. Earlier
// tokens stay valid.
func LoginHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		user, token, err := svc.Login(req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// LogoutHandler revokes every token owned by the caller, ending all of their
// sessions at once.
func LogoutHandler(svc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(middleware.CurrentUserKey).(*domain.User)
		if err := svc.Logout(user); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User logged out")
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "logout successful",
		})
	}
}
