package domain

import "time"

// AccessToken Model. A row here is what makes a bearer token valid;
// logout deletes every row owned by the caller.
type AccessToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	UserID    uint      `gorm:"index;not null" json:"user_id"`   // Owning user
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"` // Issued token string
	CreatedAt time.Time `json:"created_at"`
}
