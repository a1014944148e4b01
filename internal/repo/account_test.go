package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/hr_notify/internal/db"
	"github.com/Skotchmaster/hr_notify/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return New(gdb)
}

func strPtr(s string) *string { return &s }

func createAccount(t *testing.T, r *GormRepo, name, email string) *models.Account {
	t.Helper()

	a := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, r.CreateAccount(context.Background(), a))
	return a
}

func TestGormRepo_CreateAndFind(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	a := createAccount(t, r, "Jo", "jo@x.com")
	require.NotEmpty(t, a.ID)

	byEmail, err := r.FindByEmail(ctx, "jo@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)
	assert.False(t, byEmail.IsStaff)
	assert.False(t, byEmail.Active)

	byID, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jo", byID.Name)

	exists, err := r.EmailExists(ctx, "jo@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.EmailExists(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormRepo_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = r.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	assert.ErrorIs(t, r.MarkActive(ctx, "missing"), ErrAccountNotFound)
	assert.ErrorIs(t, r.SetActivation(ctx, "missing", "t", time.Now()), ErrAccountNotFound)
}

func TestGormRepo_ListAccounts_OnlyProjectedColumns(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	createAccount(t, r, "Jo", "jo@x.com")
	createAccount(t, r, "Al", "al@x.com")

	accounts, err := r.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Email)
		assert.Empty(t, a.ID)
		assert.Empty(t, a.PasswordHash)
	}
}

func TestGormRepo_ActivationLifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	a := &models.Account{
		Name:             "Jo",
		Email:            "jo@x.com",
		PasswordHash:     "hash",
		ActivationToken:  strPtr("jo@x.comabc"),
		ActivationExpiry: func() *time.Time { t := now.Add(24 * time.Hour); return &t }(),
		CreatedAt:        now,
	}
	require.NoError(t, r.CreateAccount(ctx, a))

	_, err := r.FindByActivationToken(ctx, "jo@x.comabc", now.Add(25*time.Hour))
	assert.ErrorIs(t, err, ErrAccountNotFound)

	found, err := r.FindByActivationToken(ctx, "jo@x.comabc", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	require.NoError(t, r.MarkActive(ctx, a.ID))
	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Nil(t, got.ActivationToken)
	assert.Nil(t, got.ActivationExpiry)

	require.NoError(t, r.SetActivation(ctx, a.ID, "jo@x.comdef", now.Add(48*time.Hour)))
	found, err = r.FindByActivationToken(ctx, "jo@x.comdef", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
}

func TestGormRepo_DuplicateEmailNotRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	createAccount(t, r, "Jo", "jo@x.com")
	createAccount(t, r, "Jo2", "jo@x.com")

	accounts, err := r.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
