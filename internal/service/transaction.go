package service

import (
	"errors"

	"finance_api/internal/domain"

	"gorm.io/gorm"
)

// TransactionService implements transaction CRUD with foreign-key and
// amount/type validation.
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService builds a TransactionService on top of db.
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// TransactionFilters narrows a listing. Empty strings mean the filter was
// not supplied and is omitted, not defaulted.
type TransactionFilters struct {
	CategoryID string
	UserID     string
	Type       string
}

// TransactionInput carries the create payload.
type TransactionInput struct {
	UserID      uint
	CategoryID  uint
	Amount      float64
	Type        string
	Description string
}

// TransactionUpdates carries the optional fields of a partial update. A nil
// pointer means the field was absent from the request.
type TransactionUpdates struct {
	UserID      *uint
	CategoryID  *uint
	Amount      *float64
	Type        *string
	Description *string
}

// List returns one page of transactions matching the supplied filters,
// newest first. Filters are AND-combined equality predicates.
func (s *TransactionService) List(f TransactionFilters, page int) ([]domain.Transaction, *Pagination, error) {
	query := s.db.Model(&domain.Transaction{})
	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.UserID != "" {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	var transactions []domain.Transaction
	p, err := paginate(query, page, &transactions)
	if err != nil {
		return nil, nil, err
	}
	return transactions, p, nil
}

// Get returns a single transaction by id.
func (s *TransactionService) Get(id uint) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "transaction"}
		}
		return nil, err
	}
	return &transaction, nil
}

// Create validates every field, checking that the referenced user and
// category exist, and stores a new transaction.
func (s *TransactionService) Create(in TransactionInput) (*domain.Transaction, error) {
	v := NewValidationError()
	if in.UserID == 0 {
		v.Add("user_id", "the user_id field is required")
	} else if !s.exists(&domain.User{}, in.UserID) {
		v.Add("user_id", "the selected user_id is invalid")
	}
	if in.CategoryID == 0 {
		v.Add("category_id", "the category_id field is required")
	} else if !s.exists(&domain.Category{}, in.CategoryID) {
		v.Add("category_id", "the selected category_id is invalid")
	}
	if in.Amount < 0.01 {
		v.Add("amount", "the amount must be at least 0.01")
	}
	if in.Type == "" {
		v.Add("type", "the type field is required")
	} else if in.Type != domain.TypeIncome && in.Type != domain.TypeExpense {
		v.Add("type", "the selected type is invalid")
	}
	if len(in.Description) > 255 {
		v.Add("description", "the description may not be greater than 255 characters")
	}
	if v.HasErrors() {
		return nil, v
	}
	transaction := domain.Transaction{
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: in.Description,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// Update applies the supplied fields only, under the same per-field rules as
// Create. Absent fields keep their stored values.
func (s *TransactionService) Update(id uint, in TransactionUpdates) (*domain.Transaction, error) {
	transaction, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	v := NewValidationError()
	updates := map[string]any{}
	if in.UserID != nil {
		if !s.exists(&domain.User{}, *in.UserID) {
			v.Add("user_id", "the selected user_id is invalid")
		} else {
			updates["user_id"] = *in.UserID
		}
	}
	if in.CategoryID != nil {
		if !s.exists(&domain.Category{}, *in.CategoryID) {
			v.Add("category_id", "the selected category_id is invalid")
		} else {
			updates["category_id"] = *in.CategoryID
		}
	}
	if in.Amount != nil {
		if *in.Amount < 0.01 {
			v.Add("amount", "the amount must be at least 0.01")
		} else {
			updates["amount"] = *in.Amount
		}
	}
	if in.Type != nil {
		if *in.Type != domain.TypeIncome && *in.Type != domain.TypeExpense {
			v.Add("type", "the selected type is invalid")
		} else {
			updates["type"] = *in.Type
		}
	}
	if in.Description != nil {
		if len(*in.Description) > 255 {
			v.Add("description", "the description may not be greater than 255 characters")
		} else {
			updates["description"] = *in.Description
		}
	}
	if v.HasErrors() {
		return nil, v
	}
	if len(updates) == 0 {
		return transaction, nil
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, err
	}
	// Reload so the returned row reflects exactly what was stored
	if err := s.db.First(transaction, id).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// Delete removes a transaction. Nothing references transactions, so the
// delete is unconditional.
func (s *TransactionService) Delete(id uint) error {
	transaction, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(transaction).Error
}

// exists reports whether a row of model with the given id exists.
func (s *TransactionService) exists(model any, id uint) bool {
	var n int64
	s.db.Model(model).Where("id = ?", id).Count(&n)
	return n > 0
}
