package service

import (
	"errors"

	"finance_api/internal/domain"
	"finance_api/internal/utils"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registers users, verifies credentials and manages the
// access-token lifecycle.
type AuthService struct {
	db     *gorm.DB
	secret string // Signing secret for issued tokens
}

// NewAuthService builds an AuthService on top of db.
func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{db: db, secret: secret}
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name     string
	CPF      string
	Email    string
	Password string
}

// Register validates the input, stores the user with a hashed password and
// issues a fresh access token. Returns the created user and the token.
func (s *AuthService) Register(in RegisterInput) (*domain.User, string, error) {
	v := NewValidationError()
	if in.Name == "" {
		v.Add("name", "the name field is required")
	} else if len(in.Name) > 255 {
		v.Add("name", "the name may not be greater than 255 characters")
	}
	if in.CPF == "" {
		v.Add("cpf", "the cpf field is required")
	} else if len(in.CPF) > 11 {
		v.Add("cpf", "the cpf may not be greater than 11 characters")
	} else if s.taken(&domain.User{}, "cpf = ?", in.CPF) {
		v.Add("cpf", "the cpf has already been taken")
	}
	if in.Email == "" {
		v.Add("email", "the email field is required")
	} else if checkmail.ValidateFormat(in.Email) != nil {
		v.Add("email", "the email must be a valid email address")
	} else if s.taken(&domain.User{}, "email = ?", in.Email) {
		v.Add("email", "the email has already been taken")
	}
	if in.Password == "" {
		v.Add("password", "the password field is required")
	} else if len(in.Password) < 6 {
		v.Add("password", "the password must be at least 6 characters")
	}
	if v.HasErrors() {
		return nil, "", v
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	user := domain.User{Name: in.Name, CPF: in.CPF, Email: in.Email, Password: string(hash)}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique constraints are the final arbiter; a race past the
		// advisory checks above still surfaces as a validation error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", s.duplicateUserError(in.Email, in.CPF)
		}
		return nil, "", err
	}
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and issues a new access token. Earlier tokens
// stay valid, so a user may hold several concurrent sessions.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	v := NewValidationError()
	if email == "" {
		v.Add("email", "the email field is required")
	} else if checkmail.ValidateFormat(email) != nil {
		v.Add("email", "the email must be a valid email address")
	}
	if password == "" {
		v.Add("password", "the password field is required")
	}
	if v.HasErrors() {
		return nil, "", v
	}

	var user domain.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password, so callers cannot probe
			// which emails are registered.
			return nil, "", &AuthenticationError{Msg: "invalid credentials"}
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", &AuthenticationError{Msg: "invalid credentials"}
	}
	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Logout revokes every access token owned by user, ending all sessions.
func (s *AuthService) Logout(user *domain.User) error {
	return s.db.Where("user_id = ?", user.ID).Delete(&domain.AccessToken{}).Error
}

// issueToken mints a signed token and persists it; the stored row is what
// keeps the token valid until logout deletes it.
func (s *AuthService) issueToken(userID uint) (string, error) {
	token, err := utils.GenerateToken(userID, s.secret)
	if err != nil {
		return "", err
	}
	record := domain.AccessToken{UserID: userID, Token: token}
	if err := s.db.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// taken reports whether any row of model matches the condition.
func (s *AuthService) taken(model any, cond string, args ...any) bool {
	var n int64
	s.db.Model(model).Where(cond, args...).Count(&n)
	return n > 0
}

// duplicateUserError rebuilds the per-field map after a write-time
// unique-constraint violation.
func (s *AuthService) duplicateUserError(email, cpf string) *ValidationError {
	v := NewValidationError()
	if s.taken(&domain.User{}, "email = ?", email) {
		v.Add("email", "the email has already been taken")
	}
	if s.taken(&domain.User{}, "cpf = ?", cpf) {
		v.Add("cpf", "the cpf has already been taken")
	}
	if !v.HasErrors() {
		v.Add("email", "the email has already been taken")
	}
	return v
}
