package service

import (
	"errors"
	"net/http"

	"finance_api/internal/domain"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService implements user CRUD. Registration lives in AuthService; this
// covers the managed side of the resource.
type UserService struct {
	db *gorm.DB
}

// NewUserService builds a UserService on top of db.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserUpdates carries the optional fields of a partial user update. A nil
// pointer means the field was absent from the request.
type UserUpdates struct {
	Name     *string
	Email    *string
	Password *string
}

// List returns one page of users, newest first.
func (s *UserService) List(page int) ([]domain.User, *Pagination, error) {
	var users []domain.User
	p, err := paginate(s.db.Model(&domain.User{}), page, &users)
	if err != nil {
		return nil, nil, err
	}
	return users, p, nil
}

// Get returns a single user by id.
func (s *UserService) Get(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &user, nil
}

// Update applies the supplied fields only. Email stays unique across all
// other users; a new password is re-hashed before storage. CPF is immutable.
func (s *UserService) Update(id uint, in UserUpdates) (*domain.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	v := NewValidationError()
	updates := map[string]any{}
	if in.Name != nil {
		switch {
		case *in.Name == "":
			v.Add("name", "the name field must not be empty")
		case len(*in.Name) > 255:
			v.Add("name", "the name may not be greater than 255 characters")
		default:
			updates["name"] = *in.Name
		}
	}
	if in.Email != nil {
		switch {
		case checkmail.ValidateFormat(*in.Email) != nil:
			v.Add("email", "the email must be a valid email address")
		case s.emailTaken(*in.Email, id):
			v.Add("email", "the email has already been taken")
		default:
			updates["email"] = *in.Email
		}
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			v.Add("password", "the password must be at least 6 characters")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			updates["password"] = string(hash)
		}
	}
	if v.HasErrors() {
		return nil, v
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			v.Add("email", "the email has already been taken")
			return nil, v
		}
		return nil, err
	}
	// Reload so the returned row reflects exactly what was stored
	if err := s.db.First(user, id).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user unless any transaction still references them. The
// user's access tokens go with the row.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	var n int64
	if err := s.db.Model(&domain.Transaction{}).Where("user_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{
			Code: http.StatusForbidden,
			Msg:  "user has associated transactions",
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.AccessToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// emailTaken reports whether another user (excluding excludeID) already uses
// email.
func (s *UserService) emailTaken(email string, excludeID uint) bool {
	var n int64
	s.db.Model(&domain.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&n)
	return n > 0
}
