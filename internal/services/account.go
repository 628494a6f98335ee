package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/minifeed/internal/common"
	"github.com/dmitrijs2005/minifeed/internal/logging"
	"github.com/dmitrijs2005/minifeed/internal/models"
	"github.com/dmitrijs2005/minifeed/internal/store"
)

// NormalizeEmail is the canonical form used for storing and matching emails.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountService registers and looks up accounts. It reads the account list
// from the store on every call, so it never serves a stale copy.
type AccountService struct {
	store  *store.Store
	logger logging.Logger
	newID  func() string
}

func NewAccountService(st *store.Store, logger logging.Logger) *AccountService {
	return &AccountService{store: st, logger: logger, newID: uuid.NewString}
}

// Register creates an account. The name is trimmed and must not be empty;
// the email is normalized and must not be taken yet. The password is stored
// as given.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, common.ErrInvalidName
	}

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(accounts, func(a models.Account) bool { return NormalizeEmail(a.Email) == email }) {
		return nil, common.ErrDuplicateEmail
	}

	account := models.Account{ID: s.newID(), Name: name, Email: email, Password: password}
	if err := s.store.SaveAccounts(ctx, append(accounts, account)); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID)
	return &account, nil
}

// Authenticate returns the account whose email matches (case-insensitively)
// and whose password matches exactly, or common.ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	email = NormalizeEmail(email)

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if NormalizeEmail(a.Email) != email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1 {
			return &a, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// FindByEmail returns the account with that email or (nil, nil).
func (s *AccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = NormalizeEmail(email)

	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(accounts, func(a models.Account) bool { return NormalizeEmail(a.Email) == email })
	if i < 0 {
		return nil, nil
	}
	return &accounts[i], nil
}

// List returns all accounts in registration order with passwords blanked.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].Password = ""
	}
	return accounts, nil
}
