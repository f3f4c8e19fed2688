package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"breakthrough/internal/auth"
	"breakthrough/internal/config"
	"breakthrough/internal/db"
	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/logging"
	"breakthrough/internal/model"
	"breakthrough/internal/repository"
	"breakthrough/internal/service"
)

// SeedMessage is one journal entry in the fixtures file.
type SeedMessage struct {
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// SeedAccount is one account in the fixtures file.
type SeedAccount struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Gender   string        `json:"gender"`
	Timezone string        `json:"timezone"`
	Password string        `json:"password"`
	Messages []SeedMessage `json:"messages"`
}

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	file := flag.String("file", envOr("SEED_FILE", "cmd/seed/accounts.json"), "path to the JSON fixtures file")
	flag.Parse()

	if err := run(context.Background(), cfg, log, *file); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, file string) error {
	log.Info("starting seed", "file", file)

	fixtures, err := loadFixtures(file)
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, log, false)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	hasher, err := auth.NewHasher(auth.Options{
		Algorithm:  cfg.PasswordHasher,
		LegacySalt: cfg.LegacyPasswordSalt,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		return err
	}

	accounts, err := buildAccounts(fixtures, hasher)
	if err != nil {
		return err
	}

	created, skipped, err := seedAccounts(ctx, repository.NewAccountRepository(gormDB), accounts)
	if err != nil {
		return err
	}

	log.Info("seed completed", "created", created, "skipped", skipped, "total", len(accounts))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadFixtures reads the accounts array from path.
func loadFixtures(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []SeedAccount
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return fixtures, nil
}

// buildAccounts turns fixtures into accounts the way registration stores them.
func buildAccounts(fixtures []SeedAccount, hasher auth.Hasher) ([]model.Account, error) {
	accounts := make([]model.Account, 0, len(fixtures))
	for _, f := range fixtures {
		email := service.NormalizeEmail(f.Email)
		if email == "" || f.Password == "" {
			return nil, fmt.Errorf("fixture %q: email and password are required", f.Name)
		}

		hash, err := hasher.Hash(f.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", email, err)
		}

		messages := make([]model.Message, 0, len(f.Messages))
		for _, m := range f.Messages {
			messages = append(messages, model.Message{Content: m.Content, Order: m.Order})
		}

		accounts = append(accounts, model.Account{
			Name:         strings.TrimSpace(f.Name),
			Email:        email,
			Gender:       f.Gender,
			Timezone:     f.Timezone,
			PasswordHash: hash,
			Messages:     messages,
		})
	}
	return accounts, nil
}

// seedAccounts inserts accounts whose email is not yet registered.
func seedAccounts(ctx context.Context, repo repository.AccountRepository, accounts []model.Account) (created int, skipped int, err error) {
	for i := range accounts {
		account := &accounts[i]

		_, err := repo.FindByEmail(ctx, account.Email)
		switch {
		case err == nil:
			skipped++
			continue
		case !errors.Is(err, apperrors.ErrAccountNotFound):
			return created, skipped, fmt.Errorf("check account %s: %w", account.Email, err)
		}

		if err := repo.Create(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("create account %s: %w", account.Email, err)
		}
		created++
	}
	return created, skipped, nil
}
