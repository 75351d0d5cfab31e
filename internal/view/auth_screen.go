package view

import (
	"sync"

	"go-inventory-client/internal/model"
	"go-inventory-client/internal/session"
	"go-inventory-client/pkg/validator"

	"github.com/pkg/errors"
)

type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// AuthScreen is the login/register screen. Its banner dismisses itself.
type AuthScreen struct {
	auth   Authenticator
	Banner *Banner

	mu      sync.RWMutex
	loading bool
	mode    AuthMode
}

func NewAuthScreen(auth Authenticator) *AuthScreen {
	return &AuthScreen{auth: auth, Banner: NewBanner(DismissDelay), mode: ModeLogin}
}

func (s *AuthScreen) Mode() AuthMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *AuthScreen) SetMode(m AuthMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

func (s *AuthScreen) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User is the logged-in session, or nil.
func (s *AuthScreen) User() *session.Session {
	return s.auth.CurrentUser()
}

func (s *AuthScreen) Login(email, password string) (*session.Session, error) {
	if msg := validator.Message(&model.LoginRequest{Email: email, Password: password}); msg != "" {
		s.Banner.Error(msg)
		return nil, errors.New(msg)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.auth.Login(email, password)
	if err != nil {
		s.Banner.Error(messageOr(err, "Login failed"))
		return nil, err
	}
	s.Banner.Success("Login successful!")
	return sess, nil
}

// Register creates the account and switches back to login mode.
func (s *AuthScreen) Register(email, password, fullName string) error {
	req := &model.RegisterRequest{Email: email, Password: password, FullName: fullName}
	if msg := validator.Message(req); msg != "" {
		s.Banner.Error(msg)
		return errors.New(msg)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.auth.Register(email, password, fullName); err != nil {
		s.Banner.Error(messageOr(err, "Registration failed"))
		return err
	}
	s.SetMode(ModeLogin)
	s.Banner.Success("Registration successful! Please login.")
	return nil
}

func (s *AuthScreen) Logout() error {
	s.Banner.Clear()
	return s.auth.Logout()
}

func (s *AuthScreen) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func messageOr(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
