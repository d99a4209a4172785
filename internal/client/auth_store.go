package client

import (
	"context"
	"sync"

	"vendorly/internal/domain/users"
)

type AuthState struct {
	User            *users.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

type AuthStore struct {
	backend Backend
	tokens  TokenStore

	mu    sync.RWMutex
	state AuthState
}

func NewAuthStore(backend Backend, tokens TokenStore) *AuthStore {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &AuthStore{backend: backend, tokens: tokens}
}

func (s *AuthStore) Snapshot() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.begin()

	session, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}
	return s.establish(session.User, session.Token)
}

func (s *AuthStore) Signup(ctx context.Context, name, email, password string) error {
	s.begin()

	session, err := s.backend.Signup(ctx, name, email, password)
	if err != nil {
		return s.fail(err)
	}
	return s.establish(session.User, session.Token)
}

// Logout forgets the session locally. Tokens are stateless, so the server is
// not told.
func (s *AuthStore) Logout() error {
	s.backend.SetToken("")

	s.mu.Lock()
	s.state = AuthState{}
	s.mu.Unlock()

	return s.tokens.Clear()
}

// CheckAuth restores a session from the persisted token. A token that no
// longer resolves, or that cannot be checked, is discarded.
func (s *AuthStore) CheckAuth(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return s.fail(err)
	}
	if token == "" {
		s.mu.Lock()
		s.state.User = nil
		s.state.IsAuthenticated = false
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.state.IsLoading = true
	s.mu.Unlock()

	s.backend.SetToken(token)
	user, err := s.backend.CurrentUser(ctx)
	if err != nil || user == nil {
		s.backend.SetToken("")
		s.mu.Lock()
		s.state = AuthState{}
		s.mu.Unlock()
		if clearErr := s.tokens.Clear(); clearErr != nil {
			return clearErr
		}
		return nil
	}

	s.mu.Lock()
	s.state = AuthState{User: user, Token: token, IsAuthenticated: true}
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *AuthStore) begin() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
}

func (s *AuthStore) fail(err error) error {
	s.mu.Lock()
	s.state.IsLoading = false
	s.state.Error = err.Error()
	s.mu.Unlock()
	return err
}

func (s *AuthStore) establish(user *users.User, token string) error {
	s.backend.SetToken(token)

	s.mu.Lock()
	s.state = AuthState{User: user, Token: token, IsAuthenticated: true}
	s.mu.Unlock()

	return s.tokens.Save(token)
}
