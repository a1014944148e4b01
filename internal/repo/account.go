package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/hr_notify/internal/models"
)

func (r *GormRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAccount inserts a. It does not re-check the email; callers race
// between EmailExists and CreateAccount.
func (r *GormRepo) CreateAccount(ctx context.Context, a *models.Account) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *GormRepo) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ListAccounts loads only the name, email and active columns.
func (r *GormRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.DB.WithContext(ctx).
		Select("name", "email", "active").
		Order("created_at").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *GormRepo) FindByActivationToken(ctx context.Context, token string, now time.Time) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).
		Where("activation_token = ? AND activation_expiry > ?", token, now).
		First(&a).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *GormRepo) MarkActive(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"active":            true,
			"activation_token":  nil,
			"activation_expiry": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *GormRepo) SetActivation(ctx context.Context, id, token string, expiry time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"activation_token":  token,
			"activation_expiry": expiry,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
