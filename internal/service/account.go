package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/hr_notify/internal/activation"
	"github.com/Skotchmaster/hr_notify/internal/hash"
	"github.com/Skotchmaster/hr_notify/internal/logging"
	"github.com/Skotchmaster/hr_notify/internal/models"
	"github.com/Skotchmaster/hr_notify/internal/mykafka"
	"github.com/Skotchmaster/hr_notify/internal/repo"
	"github.com/Skotchmaster/hr_notify/internal/tokens"
	"github.com/Skotchmaster/hr_notify/internal/validation"
)

type AccountStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, a *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	FindByActivationToken(ctx context.Context, token string, now time.Time) (*models.Account, error)
	MarkActive(ctx context.Context, id string) error
	SetActivation(ctx context.Context, id, token string, expiry time.Time) error
}

type ActivationPublisher interface {
	PublishActivation(ctx context.Context, ev mykafka.ActivationEvent) error
}

type AccountService struct {
	Repo       AccountStore
	Hasher     hash.Hasher
	Tokens     *tokens.Issuer
	Activation *activation.Generator
	Publisher  ActivationPublisher

	// RequireActive rejects login for accounts that never activated.
	RequireActive bool

	Now func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) Register(ctx context.Context, in validation.RegisterInput) error {
	l := logging.FromContext(ctx).With("svc", "account.register")

	if errs, ok := validation.ValidateRegister(in); !ok {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return &ValidationError{Errors: errs}
	}

	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		l.Error("register_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	if exists {
		l.Warn("register_failed", "status", 400, "reason", "email_exists")
		return ErrEmailExists
	}

	now := s.now()
	act, err := s.Activation.GenerateAt(in.Email, now)
	if err != nil {
		l.Error("register_error", "status", 404, "reason", "cannot create activation token", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	pwHash, err := s.Hasher.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "status", 404, "reason", "cannot hash the password", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	account := models.Account{
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     pwHash,
		ActivationToken:  &act.Token,
		ActivationExpiry: &act.Expiry,
		CreatedAt:        now,
	}
	if err := s.Repo.CreateAccount(ctx, &account); err != nil {
		l.Error("register_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.publishActivation(ctx, &account, act)
	l.Info("register_successful", "account_id", account.ID)
	return nil
}

func (s *AccountService) Login(ctx context.Context, in validation.LoginInput) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.login")

	if errs, ok := validation.ValidateLogin(in); !ok {
		l.Warn("login_failed", "status", 400, "reason", "validation")
		return nil, &ValidationError{Errors: errs}
	}

	account, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "email_not_found")
			return nil, ErrEmailNotFound
		}
		l.Error("login_error", "status", 404, "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	if !s.Hasher.CheckPassword(account.PasswordHash, in.Password) {
		l.Warn("login_failed", "status", 404, "reason", "password_incorrect", "account_id", account.ID)
		return nil, ErrPasswordIncorrect
	}

	if s.RequireActive && !account.Active {
		l.Warn("login_failed", "status", 404, "reason", "not_active", "account_id", account.ID)
		return nil, ErrNotActive
	}

	token, exp, err := s.Tokens.Issue(tokens.AccessClaims{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		IsStaff: account.IsStaff,
	})
	if err != nil {
		l.Error("login_error", "status", 404, "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	l.Info("login_successful", "account_id", account.ID)
	return &LoginResult{Token: token, ExpiresAt: exp}, nil
}

// CurrentUser re-reads the account behind a verified token.
func (s *AccountService) CurrentUser(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		logging.FromContext(ctx).Error("current_user_error", "status", 404, "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, caller *models.Account) ([]models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "account.list")

	if caller == nil || !caller.IsStaff {
		l.Warn("list_failed", "status", 401, "reason", "not_staff")
		return nil, ErrNotStaff
	}

	accounts, err := s.Repo.ListAccounts(ctx)
	if err != nil {
		l.Error("list_error", "status", 404, "reason", "db_error", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	return accounts, nil
}

func (s *AccountService) Activate(ctx context.Context, token string) error {
	l := logging.FromContext(ctx).With("svc", "account.activate")

	if token == "" {
		return ErrActivationFailed
	}

	account, err := s.Repo.FindByActivationToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			l.Warn("activate_failed", "status", 404, "reason", "token_invalid_or_expired")
			return ErrActivationFailed
		}
		l.Error("activate_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	if err := s.Repo.MarkActive(ctx, account.ID); err != nil {
		l.Error("activate_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	l.Info("activate_successful", "account_id", account.ID)
	return nil
}

// ResendActivation replaces the activation token of an inactive account.
func (s *AccountService) ResendActivation(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "account.resend_activation")

	account, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			l.Warn("resend_failed", "status", 404, "reason", "user_not_found")
			return ErrAccountNotFound
		}
		l.Error("resend_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	if account.Active {
		l.Warn("resend_failed", "status", 404, "reason", "already_active", "account_id", account.ID)
		return ErrAlreadyActive
	}

	act, err := s.Activation.GenerateAt(account.Email, s.now())
	if err != nil {
		l.Error("resend_error", "status", 404, "reason", "cannot create activation token", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}
	if err := s.Repo.SetActivation(ctx, account.ID, act.Token, act.Expiry); err != nil {
		l.Error("resend_error", "status", 404, "reason", "db_error", "error", err)
		return fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.publishActivation(ctx, account, act)
	return nil
}

func (s *AccountService) publishActivation(ctx context.Context, a *models.Account, act activation.Activation) {
	if s.Publisher == nil {
		return
	}
	err := s.Publisher.PublishActivation(ctx, mykafka.ActivationEvent{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Token:     act.Token,
		ExpiresAt: act.Expiry,
	})
	if err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "account_id", a.ID, "error", err)
	}
}
