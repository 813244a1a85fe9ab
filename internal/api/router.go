package api

import (
	"finance_api/internal/middleware"
	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires the services and declares every route under /api.
// register and login are open; everything else sits behind the bearer-token
// middleware.
func NewRouter(db *gorm.DB, secret string) *gin.Engine {
	auth := service.NewAuthService(db, secret)
	users := service.NewUserService(db)
	categories := service.NewCategoryService(db)
	transactions := service.NewTransactionService(db)

	r := gin.Default() // Gin router instance

	root := r.Group("/api")
	root.POST("/register", RegisterHandler(auth))
	root.POST("/login", LoginHandler(auth))

	protected := root.Group("")
	protected.Use(middleware.TokenAuthMiddleware(db, secret))

	protected.POST("/logout", LogoutHandler(auth))

	// User routes
	protected.GET("/users", ListUsersHandler(users))
	protected.GET("/users/:id", GetUserHandler(users))
	protected.PUT("/users/:id", UpdateUserHandler(users))
	protected.DELETE("/users/:id", DeleteUserHandler(users))

	// Category routes
	protected.GET("/categories", ListCategoriesHandler(categories))
	protected.GET("/categories/:id", GetCategoryHandler(categories))
	protected.POST("/categories", CreateCategoryHandler(categories))
	protected.PUT("/categories/:id", UpdateCategoryHandler(categories))
	protected.DELETE("/categories/:id", DeleteCategoryHandler(categories))

	// Transaction routes
	protected.GET("/transactions", ListTransactionsHandler(transactions))
	protected.GET("/transactions/:id", GetTransactionHandler(transactions))
	protected.POST("/transactions", CreateTransactionHandler(transactions))
	protected.PUT("/transactions/:id", UpdateTransactionHandler(transactions))
	protected.DELETE("/transactions/:id", DeleteTransactionHandler(transactions))

	return r
}
