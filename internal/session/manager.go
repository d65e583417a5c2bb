package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/transport"
)

const (
	loginPath    = "/auth/login/"
	registerPath = "/auth/register/"
	profilePath  = "/auth/profile/"
)

// Manager runs the authentication lifecycle against the auth endpoints and
// records the outcome in the Store.
type Manager struct {
	store  *Store
	api    transport.Requester
	logger providers.Logger
}

func NewManager(store *Store, api transport.Requester, logger providers.Logger) *Manager {
	return &Manager{
		store:  store,
		api:    api,
		logger: logger,
	}
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (models.CredentialPair, error) {
	var pair models.CredentialPair
	err := m.api.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      loginPath,
		Body:      models.LoginRequest{Email: email, Password: password},
		Anonymous: true,
	}, &pair)
	if err != nil {
		if errors.Is(err, transport.ErrValidation) || errors.Is(err, transport.ErrUnauthorized) {
			m.logger.Infof(providers.TypeSession, "Sign-in rejected for %s", email)
			return models.CredentialPair{}, fmt.Errorf("%w: %w", transport.ErrInvalidCredentials, err)
		}
		return models.CredentialPair{}, err
	}
	return m.adopt(pair)
}

func (m *Manager) SignUp(ctx context.Context, reg models.Registration) (models.CredentialPair, error) {
	var pair models.CredentialPair
	err := m.api.Do(ctx, transport.Request{
		Method:    http.MethodPost,
		Path:      registerPath,
		Body:      reg,
		Anonymous: true,
	}, &pair)
	if err != nil {
		return models.CredentialPair{}, err
	}
	return m.adopt(pair)
}

func (m *Manager) adopt(pair models.CredentialPair) (models.CredentialPair, error) {
	if !pair.Valid() {
		return models.CredentialPair{}, fmt.Errorf("%w: auth response without access token", transport.ErrNetwork)
	}
	if err := m.store.Replace(pair); err != nil {
		return models.CredentialPair{}, err
	}
	m.logger.Infof(providers.TypeSession, "Signed in as %s (id %d)", pair.User.Email, pair.User.ID)
	return pair, nil
}

// SignOut is idempotent.
func (m *Manager) SignOut() {
	m.store.Clear()
	m.logger.Infof(providers.TypeSession, "Signed out")
}

// Restore revalidates a persisted session with the profile endpoint and only
// then makes it live. Any failure clears the persisted pair; the caller only
// learns whether a session exists.
func (m *Manager) Restore(ctx context.Context) (models.User, bool) {
	pair, ok := m.store.Peek()
	if !ok {
		return models.User{}, false
	}

	var user models.User
	err := m.api.Do(ctx, transport.Request{Method: http.MethodGet, Path: profilePath, Token: pair.Access}, &user)
	if err != nil {
		m.logger.Warnf(providers.TypeSession, "Persisted session rejected, signing out: %s", err)
		m.store.Revoke(pair.Access)
		return models.User{}, false
	}

	pair.User = user
	if err := m.store.Replace(pair); err != nil {
		m.logger.Warnf(providers.TypeSession, "Unable to install restored session: %s", err)
		return models.User{}, false
	}
	return user, true
}

func (m *Manager) Authenticated() bool {
	_, ok := m.store.Credentials()
	return ok
}

func (m *Manager) Identity() (models.User, bool) {
	return m.store.Identity()
}

func (m *Manager) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := m.api.Do(ctx, transport.Request{Method: http.MethodGet, Path: profilePath}, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile sends a partial identity and swaps the returned identity
// into the live pair.
func (m *Manager) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.User, error) {
	pair, ok := m.store.Credentials()
	if ok {
		upd = upd.Over(pair.User)
	}

	var user models.User
	err := m.api.Do(ctx, transport.Request{Method: http.MethodPut, Path: profilePath, Body: upd}, &user)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return user, nil
	}
	if _, err := m.store.ReplaceIdentity(pair.Access, user); err != nil {
		return user, err
	}
	return user, nil
}
