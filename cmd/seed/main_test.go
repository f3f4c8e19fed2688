package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"breakthrough/internal/auth"
	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/model"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func TestLoadFixtures_BundledFile(t *testing.T) {
	fixtures, err := loadFixtures("accounts.json")
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Len(t, fixtures[0].Messages, 3)
}

func TestLoadFixtures_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o600))

	_, err := loadFixtures(path)
	assert.Error(t, err)

	_, err = loadFixtures(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBuildAccounts(t *testing.T) {
	hasher := auth.NewLegacyHasher(auth.DefaultLegacySalt)
	fixtures := []SeedAccount{{
		Name:     "  Bob ",
		Email:    " Bob@Example.com",
		Gender:   "male",
		Timezone: "UTC",
		Password: "secret1",
		Messages: []SeedMessage{{Content: "b", Order: 1}, {Content: "a", Order: 0}},
	}}

	accounts, err := buildAccounts(fixtures, hasher)
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	account := accounts[0]
	assert.Equal(t, "Bob", account.Name)
	assert.Equal(t, "bob@example.com", account.Email)
	assert.True(t, hasher.Verify("secret1", account.PasswordHash))
	require.Len(t, account.Messages, 2)
	assert.Equal(t, "b", account.Messages[0].Content)
}

func TestBuildAccounts_RequiresCredentials(t *testing.T) {
	hasher := auth.NewLegacyHasher(auth.DefaultLegacySalt)
	_, err := buildAccounts([]SeedAccount{{Name: "nobody", Email: " "}}, hasher)
	assert.Error(t, err)
}

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()
	accounts := []model.Account{
		{Email: "new@example.com"},
		{Email: "existing@example.com"},
		{Email: "raced@example.com"},
	}

	repo := new(MockAccountRepository)
	repo.On("FindByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrAccountNotFound)
	repo.On("FindByEmail", ctx, "existing@example.com").Return(&model.Account{}, nil)
	repo.On("FindByEmail", ctx, "raced@example.com").Return(nil, apperrors.ErrAccountNotFound)
	repo.On("Create", ctx, &accounts[0]).Return(nil)
	repo.On("Create", ctx, &accounts[2]).Return(apperrors.ErrEmailAlreadyExists)

	created, skipped, err := seedAccounts(ctx, repo, accounts)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 2, skipped)
	repo.AssertExpectations(t)
}

func TestSeedAccounts_StorageFailure(t *testing.T) {
	ctx := context.Background()
	cause := apperrors.NewStorageError("find account", errors.New("connection refused"))

	repo := new(MockAccountRepository)
	repo.On("FindByEmail", ctx, "a@example.com").Return(nil, cause)

	created, _, err := seedAccounts(ctx, repo, []model.Account{{Email: "a@example.com"}})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
