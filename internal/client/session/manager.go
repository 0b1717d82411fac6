package session

import (
	"context"

	"github.com/wallfeed/wallfeed/internal/client/api"
	"github.com/wallfeed/wallfeed/internal/dto"
)

// Manager holds the client's authentication state and drives it through
// login, register and logout. It is not safe for concurrent use: the
// Loading flag only guards against repeated submissions from a single
// interactive loop.
type Manager struct {
	api  *api.Client
	repo *Repository

	Token           string
	User            *dto.UserSnapshot
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// NewManager rehydrates the state from durable storage before returning.
// A stored token counts as authenticated until the server says otherwise.
func NewManager(apiClient *api.Client, repo *Repository) *Manager {
	m := &Manager{api: apiClient, repo: repo}
	if saved, err := repo.Load(); err == nil && saved != nil {
		m.Token = saved.Token
		m.User = saved.User
		m.IsAuthenticated = saved.Token != ""
	}
	return m
}

func (m *Manager) Login(ctx context.Context, email, password string) error {
	if m.Loading {
		return nil
	}
	m.Loading = true
	defer func() { m.Loading = false }()

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.Err = err.Error()
		m.IsAuthenticated = false
		return err
	}
	return m.adopt(resp)
}

func (m *Manager) Register(ctx context.Context, email, password string) error {
	if m.Loading {
		return nil
	}
	m.Loading = true
	defer func() { m.Loading = false }()

	resp, err := m.api.Register(ctx, email, password)
	if err != nil {
		m.Err = err.Error()
		m.IsAuthenticated = false
		return err
	}
	return m.adopt(resp)
}

// Logout clears both durable keys and the in-memory state.
func (m *Manager) Logout() error {
	m.Token = ""
	m.User = nil
	m.IsAuthenticated = false
	m.Err = ""
	return m.repo.Clear()
}

func (m *Manager) adopt(resp *dto.AuthResponse) error {
	user := resp.User
	m.Token = resp.AccessToken
	m.User = &user
	m.IsAuthenticated = true
	m.Err = ""
	return m.repo.Save(&Session{Token: resp.AccessToken, User: &user})
}
