package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	// FindByEmail matches the whole stored email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	// FindByID loads the account with its messages.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// Create inserts the account and any messages it carries.
	Create(ctx context.Context, account *model.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// FindByEmail finds the oldest account whose email equals email, ignoring case.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Preload("Messages", byPosition).
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at ASC").
		First(&account).Error
	if err != nil {
		return nil, translate("find account by email", err)
	}
	return &account, nil
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Preload("Messages", byPosition).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translate("find account by id", err)
	}
	return &account, nil
}

// Create creates a new account. Messages keep their slice order through Position.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	for i := range account.Messages {
		account.Messages[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrEmailAlreadyExists
		}
		return translate("insert account", err)
	}
	return nil
}

// byPosition loads messages in the order they were stored.
func byPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrAccountNotFound
	}
	return apperrors.NewStorageError(op, err)
}
