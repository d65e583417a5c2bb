// Package session owns the credential pair: its in-memory copy, its
// persisted copy, and the sign-in/sign-out lifecycle around them.
package session

import (
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
	"jobdash/internal/models"
	"jobdash/internal/providers"
	"jobdash/internal/storage"
	"jobdash/internal/structures"
)

// Store holds at most one live credential pair. Reads never observe a
// partially replaced pair.
type Store struct {
	mu     sync.RWMutex
	pair   *models.CredentialPair
	kv     storage.KeyValueStorage
	key    string
	logger providers.Logger
}

func NewStore(conf *structures.Config, kv storage.KeyValueStorage, logger providers.Logger) *Store {
	key := conf.Session.Key
	if key == "" {
		key = providers.DefaultSessionKey
	}
	return &Store{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Peek reads the persisted pair without making it live. A missing or
// unreadable value reports false.
func (s *Store) Peek() (models.CredentialPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warnf(providers.TypeSession, "Unable to read persisted session: %s", err)
		}
		return models.CredentialPair{}, false
	}

	var pair models.CredentialPair
	if err := json.Unmarshal(data, &pair); err != nil || !pair.Valid() {
		s.logger.Warnf(providers.TypeSession, "Ignoring malformed persisted session")
		return models.CredentialPair{}, false
	}
	return pair, true
}

func (s *Store) Credentials() (models.CredentialPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return models.CredentialPair{}, false
	}
	return *s.pair, true
}

func (s *Store) Identity() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return models.User{}, false
	}
	return s.pair.User, true
}

func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return "", false
	}
	return s.pair.Access, true
}

// Replace persists pair and then makes it the live pair. If persisting
// fails the previous pair stays live.
func (s *Store) Replace(pair models.CredentialPair) error {
	if !pair.Valid() {
		return errors.New("credential pair without access token")
	}
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.pair = &pair
	return nil
}

// Clear drops the live and persisted pair. It never fails.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.pair = nil
	if err := s.kv.Delete(s.key); err != nil {
		s.logger.Errorf(providers.TypeSession, "Unable to remove persisted session: %s", err)
	}
}

// ReplaceIdentity swaps the identity inside the live pair, provided the pair
// issued with access is still the live one. It reports whether it did.
func (s *Store) ReplaceIdentity(access string, user models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil || s.pair.Access != access {
		return false, nil
	}

	next := *s.pair
	next.User = user
	data, err := json.Marshal(next)
	if err != nil {
		return false, err
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return false, fmt.Errorf("persist session: %w", err)
	}
	s.pair = &next
	return true, nil
}

// Revoke drops the pair issued with access, live or persisted. A different
// live pair is left alone together with its persisted copy.
func (s *Store) Revoke(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair != nil && s.pair.Access != access {
		return
	}
	s.clearLocked()
}
