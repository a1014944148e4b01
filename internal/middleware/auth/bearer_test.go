package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/hr_notify/internal/models"
	"github.com/Skotchmaster/hr_notify/internal/tokens"
)

type mapLoader map[string]*models.Account

func (m mapLoader) FindByID(_ context.Context, id string) (*models.Account, error) {
	if a, ok := m[id]; ok {
		return a, nil
	}
	return nil, errors.New("not found")
}

func serve(t *testing.T, mw *BearerAuth, header string) (*httptest.ResponseRecorder, *models.Account, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/current", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.Account
	err := mw.RequireAuth(func(c echo.Context) error {
		seen, _ = AccountFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, seen, err
}

func TestBearerAuth_RequireAuth(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issuer := tokens.NewIssuer([]byte("test-jwt-secret"), 0)
	issuer.Now = func() time.Time { return now }

	account := &models.Account{ID: "acc-1", Name: "Jo", Email: "jo@x.com"}
	mw := NewBearerAuth(issuer, mapLoader{"acc-1": account})

	valid, _, err := issuer.Issue(tokens.AccessClaims{ID: "acc-1", Name: "Jo", Email: "jo@x.com"})
	require.NoError(t, err)
	ghost, _, err := issuer.Issue(tokens.AccessClaims{ID: "deleted", Name: "Ghost"})
	require.NoError(t, err)

	other := tokens.NewIssuer([]byte("other-secret"), 0)
	forged, _, err := other.Issue(tokens.AccessClaims{ID: "acc-1"})
	require.NoError(t, err)

	expiredIssuer := tokens.NewIssuer(issuer.Secret, 0)
	expiredIssuer.Now = func() time.Time { return now.Add(-4 * time.Hour) }
	expired, _, err := expiredIssuer.Issue(tokens.AccessClaims{ID: "acc-1"})
	require.NoError(t, err)

	t.Run("valid token attaches account", func(t *testing.T) {
		rec, seen, err := serve(t, mw, "Bearer "+valid)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Same(t, account, seen)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: valid},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage", header: "Bearer abc.def.ghi"},
		{name: "wrong secret", header: "Bearer " + forged},
		{name: "expired", header: "Bearer " + expired},
		{name: "unknown subject", header: "Bearer " + ghost},
	}
	for _, tt := range rejected {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, seen, err := serve(t, mw, tt.header)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.Equal(t, "Unauthorized", he.Message)
			assert.Nil(t, seen)
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tok, ok := bearerToken("bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
}
