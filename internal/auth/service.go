package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gopikrish1/Personal-Finance-Tracker/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Register(name, email, password, role string) (*user.User, string, error)
	Login(email, password string) (*user.User, string, error)
	GetUserByID(userID string) (*user.User, error)
	Authenticate() func(http.Handler) http.Handler
	RequireWritePermission() func(http.Handler) http.Handler
	RequireUserManagement() func(http.Handler) http.Handler
}

type service struct {
	userService   user.Service
	jwtManager    JWTManagerInterface
	tokenDuration time.Duration
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface, tokenDuration time.Duration) Service {
	if tokenDuration <= 0 {
		tokenDuration = DefaultJWTDuration
	}
	return &service{
		userService:   userService,
		jwtManager:    jwtManager,
		tokenDuration: tokenDuration,
	}
}

// Register creates the account and immediately issues a bearer token for it.
func (s *service) Register(name, email, password, role string) (*user.User, string, error) {
	newUser, err := s.userService.Register(name, email, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.GenerateAccessJWT(newUser.ID, s.tokenDuration)
	if err != nil {
		return nil, "", ErrInternalError
	}
	return newUser, token, nil
}

// Login verifies the password and issues a bearer token. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *service) Login(email, password string) (*user.User, string, error) {
	existingUser, err := s.userService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", ErrInternalError
	}

	if !s.userService.VerifyPassword(existingUser, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, s.tokenDuration)
	if err != nil {
		return nil, "", ErrInternalError
	}
	return existingUser, token, nil
}

func (s *service) GetUserByID(userID string) (*user.User, error) {
	return s.userService.GetUserByID(userID)
}
