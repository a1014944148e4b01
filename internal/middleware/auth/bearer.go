package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/hr_notify/internal/logging"
	"github.com/Skotchmaster/hr_notify/internal/models"
	"github.com/Skotchmaster/hr_notify/internal/tokens"
)

const (
	CtxAccount = "account"
	CtxClaims  = "claims"

	bearerPrefix = "Bearer "
)

type Verifier interface {
	Verify(token string) (*tokens.AccessClaims, error)
}

type AccountLoader interface {
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

type BearerAuth struct {
	Tokens   Verifier
	Accounts AccountLoader
}

func NewBearerAuth(v Verifier, accounts AccountLoader) *BearerAuth {
	return &BearerAuth{Tokens: v, Accounts: accounts}
}

// RequireAuth admits a request only when its bearer token verifies and the
// account it names still exists. Callers see one undifferentiated 401.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "bearer_auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_rejected", "status", 401, "reason", "missing_bearer_token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			l.Warn("auth_rejected", "status", 401, "reason", "invalid_token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		account, err := m.Accounts.FindByID(ctx, claims.ID)
		if err != nil || account == nil {
			l.Warn("auth_rejected", "status", 401, "reason", "unknown_subject", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		c.Set(CtxClaims, claims)
		c.Set(CtxAccount, account)
		return next(c)
	}
}

func AccountFrom(c echo.Context) (*models.Account, bool) {
	a, ok := c.Get(CtxAccount).(*models.Account)
	return a, ok && a != nil
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
