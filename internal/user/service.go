package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 254
	minEmailLength    = 3
	minPasswordLength = 6
	maxNameLength     = 100
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = fmt.Errorf("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidRole        = errors.New("role must be one of admin, user or read-only")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Service interface {
	Register(name, email, password, role string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	VerifyPassword(user *User, password string) bool
	ListUsers() ([]User, error)
	UpdateUserRole(userID, role string) (*User, error)
	DeleteUser(userID string) error
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

// Register creates an account. The role defaults to "user" when empty; any
// other value must be one of the three known roles.
func (s *service) Register(name, email, password, role string) (*User, error) {
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if name == "" || len(name) > maxNameLength {
		return nil, ErrInvalidName
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if role == "" {
		role = RoleUser
	}
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	_, err := s.repo.getUserByEmail(email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.repo.createUser(user); err != nil {
		return nil, ErrInternalError
	}
	return user, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByEmail(email string) (*User, error) {
	return s.repo.getUserByEmail(email)
}

func (s *service) VerifyPassword(user *User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

func (s *service) ListUsers() ([]User, error) {
	return s.repo.listUsers()
}

func (s *service) UpdateUserRole(userID, role string) (*User, error) {
	if !IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.repo.updateUserRole(userID, role); err != nil {
		return nil, err
	}
	return s.repo.getUserByID(userID)
}

func (s *service) DeleteUser(userID string) error {
	return s.repo.deleteUser(userID)
}
