package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

const sessionKey = "session"

type clientAuthService struct {
	kv     store.KeyValueStore
	server adapter.ServerAdapter

	mu       sync.RWMutex
	session  *models.Session
	onLogin  []func(ctx context.Context)
	onLogout []func(ctx context.Context)

	logger *logger.Logger
}

func NewClientAuthService(kv store.KeyValueStore, server adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{kv: kv, server: server, logger: logger.WithComponent("auth")}
}

func (s *clientAuthService) Register(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	session, err := s.server.Register(ctx, req)
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}
	return session, s.store(ctx, session)
}

func (s *clientAuthService) Login(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	session, err := s.server.Login(ctx, req)
	if err != nil {
		return models.Session{}, mapAdapterError(err)
	}
	return session, s.store(ctx, session)
}

// store keeps the previous account's cache from leaking into a new one by
// logging out first when the user changes.
func (s *clientAuthService) store(ctx context.Context, session models.Session) error {
	if current, ok := s.Current(); ok && current.User.UserID != session.User.UserID {
		s.runHooks(ctx, &s.onLogout)
	}

	if err := store.PutJSON(ctx, s.kv, sessionKey, session); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	s.server.SetToken(session.Token)

	s.logger.Info().Str("func", "*clientAuthService.store").Int64("user_id", session.User.UserID).
		Str("role", string(session.User.Role)).Msg("session started")
	s.runHooks(ctx, &s.onLogin)
	return nil
}

func (s *clientAuthService) Restore(ctx context.Context) (models.Session, bool, error) {
	var session models.Session
	found, err := store.GetJSON(ctx, s.kv, sessionKey, &session)
	if errors.Is(err, store.ErrCorruptDocument) {
		s.logger.Err(err).Str("func", "*clientAuthService.Restore").Msg("discarding corrupt session")
		return models.Session{}, false, s.kv.Delete(ctx, sessionKey)
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("loading session: %w", err)
	}
	if !found || session.Token == "" {
		return models.Session{}, false, nil
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()
	s.server.SetToken(session.Token)
	s.runHooks(ctx, &s.onLogin)
	return session, true, nil
}

// Reload picks up a login or logout done by another process on the same
// database. A different stored session replaces the current one; a missing
// one ends it without touching the store again.
func (s *clientAuthService) Reload(ctx context.Context) error {
	var stored models.Session
	found, err := store.GetJSON(ctx, s.kv, sessionKey, &stored)
	if err != nil && !errors.Is(err, store.ErrCorruptDocument) {
		return fmt.Errorf("loading session: %w", err)
	}
	current, signedIn := s.Current()

	if err != nil || !found || stored.Token == "" {
		if !signedIn {
			return nil
		}
		s.logger.Info().Str("func", "*clientAuthService.Reload").Msg("session ended by another process")
		s.mu.Lock()
		s.session = nil
		s.mu.Unlock()
		s.server.SetToken("")
		s.runHooks(ctx, &s.onLogout)
		return nil
	}

	if signedIn && current.Token == stored.Token {
		return nil
	}
	if signedIn && current.User.UserID != stored.User.UserID {
		s.runHooks(ctx, &s.onLogout)
	}

	s.mu.Lock()
	s.session = &stored
	s.mu.Unlock()
	s.server.SetToken(stored.Token)

	s.logger.Info().Str("func", "*clientAuthService.Reload").Int64("user_id", stored.User.UserID).
		Msg("session picked up from storage")
	s.runHooks(ctx, &s.onLogin)
	return nil
}

func (s *clientAuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	s.server.SetToken("")

	err := s.kv.Delete(ctx, sessionKey)
	s.runHooks(ctx, &s.onLogout)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *clientAuthService) Expire(ctx context.Context) {
	if !s.Authenticated() {
		return
	}
	s.logger.Warn().Str("func", "*clientAuthService.Expire").Msg("server rejected the session, logging out")
	if err := s.Logout(ctx); err != nil {
		s.logger.Err(err).Str("func", "*clientAuthService.Expire").Msg("forced logout failed")
	}
}

func (s *clientAuthService) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *clientAuthService) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

func (s *clientAuthService) OnLogin(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogin = append(s.onLogin, fn)
}

func (s *clientAuthService) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// runHooks calls a copy of *hooks so that a hook may register another.
func (s *clientAuthService) runHooks(ctx context.Context, hooks *[]func(ctx context.Context)) {
	s.mu.RLock()
	fns := make([]func(ctx context.Context), len(*hooks))
	copy(fns, *hooks)
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
