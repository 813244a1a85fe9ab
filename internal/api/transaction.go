package api

import (
	"net/http"

	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateTransactionRequest is the transaction create payload.
type CreateTransactionRequest struct {
	UserID      uint    `json:"user_id"`
	CategoryID  uint    `json:"category_id"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// UpdateTransactionRequest carries the optional fields of a partial
// transaction update. Nil pointers mark fields that were absent.
type UpdateTransactionRequest struct {
	UserID      *uint    `json:"user_id"`
	CategoryID  *uint    `json:"category_id"`
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
}

// ListTransactionsHandler returns one page of transactions, newest first,
// narrowed by the optional category_id, user_id and type query filters.
func ListTransactionsHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := service.TransactionFilters{
			CategoryID: c.Query("category_id"),
			UserID:     c.Query("user_id"),
			Type:       c.Query("type"),
		}
		transactions, p, err := svc.List(filters, pageParam(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      true,
			"message":     "listing transactions",
			"data":        transactions,
			"page":        p.Page,
			"page_size":   p.PageSize,
			"total":       p.Total,
			"total_pages": p.TotalPages,
		})
	}
}

// GetTransactionHandler returns a single transaction.
func GetTransactionHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "transaction")
		if !ok {
			return
		}
		transaction, err := svc.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": true,
			"data":   transaction,
		})
	}
}

// CreateTransactionHandler stores a new transaction.
func CreateTransactionHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		transaction, err := svc.Create(service.TransactionInput{
			UserID:      req.UserID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Type:        req.Type,
			Description: req.Description,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"transaction_id": transaction.ID,
			"user_id":        transaction.UserID,
			"category_id":    transaction.CategoryID,
			"type":           transaction.Type,
			"amount":         transaction.Amount,
		}).Info("Transaction created")
		c.JSON(http.StatusCreated, gin.H{
			"status":      true,
			"message":     "transaction created successfully",
			"transaction": transaction,
		})
	}
}

// UpdateTransactionHandler applies a partial update to a transaction.
func UpdateTransactionHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "transaction")
		if !ok {
			return
		}
		var req UpdateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c)
			return
		}
		transaction, err := svc.Update(id, service.TransactionUpdates{
			UserID:      req.UserID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Type:        req.Type,
			Description: req.Description,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "transaction updated successfully",
			"data":    transaction,
		})
	}
}

// DeleteTransactionHandler removes a transaction unconditionally.
func DeleteTransactionHandler(svc *service.TransactionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "transaction")
		if !ok {
			return
		}
		if err := svc.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"transaction_id": id}).Info("Transaction deleted")
		c.JSON(http.StatusOK, gin.H{
			"status":  true,
			"message": "transaction deleted successfully",
		})
	}
}
