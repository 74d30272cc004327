package app

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"twitterclone/internal/model"
	"twitterclone/internal/pkg/jwtutil"
	"twitterclone/internal/repository"
)

const minPasswordLength = 6

var (
	ErrUserExists       = errors.New("user already exists")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrUnknownUser      = errors.New("invalid user")
	ErrWrongPassword    = errors.New("invalid password")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Gender   string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user. The uniqueness check runs before the password
// policy check, so a taken username reports ErrUserExists even when the
// password is also too short.
func (s *AuthService) Register(input RegisterInput) error {
	username := strings.TrimSpace(input.Username)

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	if len(input.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Name:     input.Name,
		Gender:   input.Gender,
	}
	return s.userRepo.Create(user)
}

// Login verifies credentials and issues a signed token carrying the
// username. ErrUnknownUser and ErrWrongPassword are distinct on purpose;
// the login surface leaks username existence and that behavior is kept
// as-is.
func (s *AuthService) Login(input LoginInput) (string, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUnknownUser
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", ErrWrongPassword
	}

	return jwtutil.GenerateToken(s.jwtSecret, user.Username)
}
