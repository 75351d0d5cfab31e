package session

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Session is the authenticated user: bearer token plus display data.
type Session struct {
	Token     string `json:"token"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}

// Provider is the handle through which the client reads and writes the one
// active session. It is passed to the HTTP client explicitly.
type Provider struct {
	store Store
	log   *zap.Logger
}

func NewProvider(store Store, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{store: store, log: log}
}

// Token returns the stored bearer token, or "" when logged out.
func (p *Provider) Token() string {
	token, _, err := p.store.Get(KeyToken)
	if err != nil {
		p.log.Warn("read session token", zap.Error(err))
		return ""
	}
	return token
}

// Current returns the stored session, or nil when absent or unreadable.
func (p *Provider) Current() *Session {
	raw, ok, err := p.store.Get(KeyUser)
	if err != nil {
		p.log.Warn("read session user", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var s Session
	if err := jsoniter.UnmarshalFromString(raw, &s); err != nil {
		p.log.Warn("decode session user", zap.Error(err))
		return nil
	}
	return &s
}

// Save replaces the stored session.
func (p *Provider) Save(s *Session) error {
	raw, err := jsoniter.MarshalToString(s)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	return p.store.SetAll(map[string]string{KeyToken: s.Token, KeyUser: raw})
}

// Clear removes both session entries.
func (p *Provider) Clear() error {
	return p.store.Delete(KeyToken, KeyUser)
}
