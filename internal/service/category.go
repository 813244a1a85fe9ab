package service

import (
	"errors"
	"net/http"

	"finance_api/internal/domain"

	"gorm.io/gorm"
)

// CategoryService implements category CRUD with the uniqueness and
// referential-integrity rules.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService builds a CategoryService on top of db.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns one page of categories, newest first.
func (s *CategoryService) List(page int) ([]domain.Category, *Pagination, error) {
	var categories []domain.Category
	p, err := paginate(s.db.Model(&domain.Category{}), page, &categories)
	if err != nil {
		return nil, nil, err
	}
	return categories, p, nil
}

// Get returns a single category by id.
func (s *CategoryService) Get(id uint) (*domain.Category, error) {
	var category domain.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "category"}
		}
		return nil, err
	}
	return &category, nil
}

// Create validates the name and stores a new category.
func (s *CategoryService) Create(name string) (*domain.Category, error) {
	v := NewValidationError()
	if name == "" {
		v.Add("name", "the name field is required")
	} else if len(name) > 255 {
		v.Add("name", "the name may not be greater than 255 characters")
	} else if s.nameTaken(name, 0) {
		v.Add("name", "the name has already been taken")
	}
	if v.HasErrors() {
		return nil, v
	}
	category := domain.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			v.Add("name", "the name has already been taken")
			return nil, v
		}
		return nil, err
	}
	return &category, nil
}

// Update renames a category. A nil name leaves the row untouched; a supplied
// name must be unique among all other categories.
func (s *CategoryService) Update(id uint, name *string) (*domain.Category, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return category, nil
	}
	v := NewValidationError()
	if *name == "" {
		v.Add("name", "the name field must not be empty")
	} else if len(*name) > 255 {
		v.Add("name", "the name may not be greater than 255 characters")
	} else if s.nameTaken(*name, id) {
		v.Add("name", "the name has already been taken")
	}
	if v.HasErrors() {
		return nil, v
	}
	if err := s.db.Model(category).Update("name", *name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			v.Add("name", "the name has already been taken")
			return nil, v
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless any transaction still references it.
func (s *CategoryService) Delete(id uint) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}
	var n int64
	if err := s.db.Model(&domain.Transaction{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{
			Code: http.StatusBadRequest,
			Msg:  "category has associated transactions",
		}
	}
	return s.db.Delete(category).Error
}

// nameTaken reports whether another category (excluding excludeID) already
// uses name.
func (s *CategoryService) nameTaken(name string, excludeID uint) bool {
	var n int64
	s.db.Model(&domain.Category{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&n)
	return n > 0
}
