package service

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"breakthrough/internal/cache"
	apperrors "breakthrough/internal/errors"
	"breakthrough/internal/model"
	"breakthrough/internal/repository"
)

// MessageService exposes an account's journal.
type MessageService interface {
	ListMessages(ctx context.Context, accountID string) ([]model.Message, error)
}

type messageService struct {
	repo  repository.AccountRepository
	cache cache.Store
	ttl   time.Duration
	log   *slog.Logger
}

// NewMessageService creates a new message service. A zero ttl disables caching.
func NewMessageService(repo repository.AccountRepository, cache cache.Store, ttl time.Duration, log *slog.Logger) MessageService {
	return &messageService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func (s *messageService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s:messages", id.String())
}

// ListMessages returns the account's messages ordered ascending by Order.
func (s *messageService) ListMessages(ctx context.Context, accountID string) ([]model.Message, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apperrors.ErrMissingAccountID
	}

	// Ids are only ever issued as UUIDs, so anything else cannot exist.
	id, err := uuid.Parse(accountID)
	if err != nil {
		return nil, apperrors.ErrAccountNotFound
	}

	messages, err := s.loadMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	return SortMessages(messages), nil
}

func (s *messageService) loadMessages(ctx context.Context, id uuid.UUID) ([]model.Message, error) {
	caching := s.cache != nil && s.ttl > 0

	if caching {
		if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
			var cached []model.Message
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			s.log.ErrorContext(ctx, "find account", "account_id", id, "error", err)
		}
		return nil, err
	}

	if caching {
		if payload, err := json.Marshal(account.Messages); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.ttl)
		}
	}
	return account.Messages, nil
}

// SortMessages returns a copy of messages stable-sorted ascending by Order.
// The result is never nil.
func SortMessages(messages []model.Message) []model.Message {
	sorted := make([]model.Message, len(messages))
	copy(sorted, messages)
	slices.SortStableFunc(sorted, func(a, b model.Message) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}
