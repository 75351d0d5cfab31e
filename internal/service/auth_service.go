package service

import (
	"strings"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/repository"
	"go-inventory-client/pkg/jwt"
	"go-inventory-client/pkg/validator"

	"github.com/pkg/errors"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserInactive       = errors.New("User account is inactive")
	ErrEmailExists        = errors.New("Email already exists")
)

type AuthService interface {
	Login(email, password string) (*model.LoginResponse, error)
	Register(req *model.RegisterRequest) error
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Login(email, password string) (*model.LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	// 2. Check if user is active
	if !user.Active {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	return &model.LoginResponse{
		Token:     token,
		Email:     user.Email,
		FullName:  user.FullName,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Register creates an active USER account. It does not log the user in.
func (s *authService) Register(req *model.RegisterRequest) error {
	if msg := validator.Message(req); msg != "" {
		return &ValidationError{Message: msg}
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	user := &model.User{
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
		Role:     model.RoleUser,
		Active:   true,
	}
	user.CreatedBy = "register"
	user.UpdatedBy = "register"
	if err := user.SetPassword(req.Password); err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrUserInactive
	}
	return claims, nil
}
