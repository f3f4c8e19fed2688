package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"breakthrough/internal/db"
	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() { _ = db.Close(gormDB) })
	return gormDB
}

func newAccount(email string, messages ...model.Message) *model.Account {
	return &model.Account{
		Name:         "Ann",
		Email:        email,
		Gender:       "f",
		Timezone:     "UTC",
		PasswordHash: "hash",
		Messages:     messages,
	}
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newAccount("ann@test.com")))

	tests := []struct {
		name        string
		email       string
		expectedErr error
	}{
		{name: "exact", email: "ann@test.com"},
		{name: "different case", email: "ANN@Test.com"},
		{name: "prefix only", email: "ann@test.co", expectedErr: apperrors.ErrAccountNotFound},
		{name: "longer value", email: "ann@test.com.au", expectedErr: apperrors.ErrAccountNotFound},
		{name: "pattern characters are literal", email: "%@test.com", expectedErr: apperrors.ErrAccountNotFound},
		{name: "single char wildcard is literal", email: "an_@test.com", expectedErr: apperrors.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := repo.FindByEmail(ctx, tt.email)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ann@test.com", account.Email)
		})
	}
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newAccount("ann@test.com")))

	err := repo.Create(ctx, newAccount("ann@test.com"))

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "email", conflictErr.Field)
}

func TestAccountRepository_FindByIDPreloadsMessagesInStoredOrder(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewAccountRepository(gormDB)
	ctx := context.Background()

	account := newAccount("ann@test.com",
		model.Message{Content: "a", Order: 1},
		model.Message{Content: "b", Order: 0},
		model.Message{Content: "c", Order: 1},
		model.Message{Content: "d", Order: 0},
	)
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, contents(found.Messages))
	for i, m := range found.Messages {
		assert.Equal(t, i, m.Position)
		assert.Equal(t, account.ID, m.AccountID)
	}

	// Reverse the stored positions without touching row order.
	for i, m := range found.Messages {
		require.NoError(t, gormDB.Model(&model.Message{}).
			Where("id = ?", m.ID).
			Update("position", len(found.Messages)-1-i).Error)
	}

	reloaded, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b", "a"}, contents(reloaded.Messages))

	byEmail, err := repo.FindByEmail(ctx, "ann@test.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b", "a"}, contents(byEmail.Messages))
}

func TestAccountRepository_FindByIDUnknown(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	account, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.Nil(t, account)
}

func contents(messages []model.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.Content)
	}
	return out
}
