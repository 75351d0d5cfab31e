package client

import (
	"go-inventory-client/internal/model"
	"go-inventory-client/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthService manages the one session of the client.
type AuthService struct {
	client *Client
}

// Login authenticates and persists the returned session. On failure the error
// message is the backend's, suitable for showing verbatim.
func (s *AuthService) Login(email, password string) (*session.Session, error) {
	if email == "" || password == "" {
		return nil, invalid("Email and password are required")
	}

	sess, err := call[*session.Session](s.client, fiber.MethodPost, "/auth/login", nil, model.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token == "" {
		return nil, &Error{Message: "Login failed", kind: ErrUnauthorized}
	}

	if err := s.client.session.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Register creates an account. It does not log in.
func (s *AuthService) Register(email, password, fullName string) error {
	return s.client.do(fiber.MethodPost, "/auth/register", nil, model.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, nil)
}

// Logout forgets the stored session. It makes no network call.
func (s *AuthService) Logout() error {
	return s.client.session.Clear()
}

// CurrentUser returns the stored session, or nil when logged out.
func (s *AuthService) CurrentUser() *session.Session {
	return s.client.session.Current()
}
