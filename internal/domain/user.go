package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                  // Primary key
	Name      string    `gorm:"size:255;not null" json:"name"`         // Full name
	CPF       string    `gorm:"size:11;unique;not null" json:"cpf"`    // National identifier, unique
	Email     string    `gorm:"size:255;unique;not null" json:"email"` // Unique email
	Password  string    `gorm:"not null" json:"-"`                     // Bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
