package domain

import "time"

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`              // Primary key
	UserID      uint      `gorm:"index;not null" json:"user_id"`     // Foreign key to User
	CategoryID  uint      `gorm:"index;not null" json:"category_id"` // Foreign key to Category
	Type        string    `gorm:"size:10;not null" json:"type"`      // income or expense
	Amount      float64   `gorm:"not null" json:"amount"`            // Positive amount
	Description string    `gorm:"size:255" json:"description"`       // Optional free text
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
