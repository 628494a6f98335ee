package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/store"
)

// SessionService tracks the signed-in account. It holds a single slot; the
// feed core reads the acting account from here instead of a global.
type SessionService struct {
	store    *store.Store
	accounts *AccountService
	logger   logging.Logger
	current  *models.Account
}

func NewSessionService(st *store.Store, accounts *AccountService, logger logging.Logger) *SessionService {
	return &SessionService{store: st, accounts: accounts, logger: logger}
}

// Start persists {email, remember} and makes account the current user.
func (s *SessionService) Start(ctx context.Context, account models.Account, remember bool) error {
	session := &models.Session{Email: account.Email, Remember: remember}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	s.current = &account
	s.logger.Info(ctx, "session started", "account_id", account.ID, "remember", remember)
	return nil
}

// End persists an absent session and clears the current user.
func (s *SessionService) End(ctx context.Context) error {
	if err := s.store.SaveSession(ctx, nil); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if s.current != nil {
		s.logger.Info(ctx, "session ended", "account_id", s.current.ID)
	}
	s.current = nil
	return nil
}

// Restore signs the remembered account back in. It returns (nil, nil) when
// there is no remembered session or its account no longer exists; a stale
// session record is left as is.
func (s *SessionService) Restore(ctx context.Context) (*models.Account, error) {
	session, err := s.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Remember || session.Email == "" {
		return nil, nil
	}

	account, err := s.accounts.FindByEmail(ctx, session.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.logger.Debug(ctx, "remembered account not found", "email", session.Email)
		return nil, nil
	}

	s.current = account
	s.logger.Info(ctx, "session restored", "account_id", account.ID)
	restored, _ := s.Current()
	return restored, nil
}

// Sync re-reads the session record and its account after the store was
// replaced underneath. The stored record decides who is signed in,
// whatever its remember flag; an absent record or a vanished account signs
// the current user out. Nothing is written.
func (s *SessionService) Sync(ctx context.Context) error {
	session, err := s.store.LoadSession(ctx)
	if err != nil {
		return err
	}

	var account *models.Account
	if session != nil && session.Email != "" {
		account, err = s.accounts.FindByEmail(ctx, session.Email)
		if err != nil {
			return err
		}
	}

	if account == nil && s.current != nil {
		s.logger.Info(ctx, "session dropped", "account_id", s.current.ID)
	}
	s.current = account
	return nil
}

// Current returns a copy of the signed-in account.
func (s *SessionService) Current() (*models.Account, bool) {
	if s.current == nil {
		return nil, false
	}
	a := *s.current
	return &a, true
}
