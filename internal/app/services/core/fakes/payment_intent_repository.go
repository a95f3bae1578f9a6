package fakes

import (
	"context"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"sort"
	"sync"
	"time"
)

type PaymentIntentRepository struct {
	mu      sync.Mutex
	intents map[string]*models.PaymentIntent
}

func NewPaymentIntentRepository() *PaymentIntentRepository {
	return &PaymentIntentRepository{intents: map[string]*models.PaymentIntent{}}
}

func (r *PaymentIntentRepository) CreateIntent(ctx context.Context, intent *models.PaymentIntent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *intent
	if copied.ID == "" {
		copied.ID = newID()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.intents[copied.Token] = &copied
	return copied.ID, nil
}

func (r *PaymentIntentRepository) FindByToken(ctx context.Context, token string) (*models.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[token]
	if !ok {
		return nil, nil
	}
	copied := *intent
	return &copied, nil
}

func (r *PaymentIntentRepository) FindPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.PaymentIntent, 0)
	for _, intent := range r.intents {
		if intent.Status == constvars.PaymentIntentStatusPending && intent.CreatedAt.Before(cutoff) {
			result = append(result, *intent)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].LastCheckedAt, result[j].LastCheckedAt
		switch {
		case a == nil && b != nil:
			return true
		case a != nil && b == nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.Before(*b)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *PaymentIntentRepository) MarkChecked(ctx context.Context, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if intent, ok := r.intents[token]; ok {
		checked := at
		intent.LastCheckedAt = &checked
	}
	return nil
}

func (r *PaymentIntentRepository) UpdateStatus(ctx context.Context, token string, status constvars.PaymentIntentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if intent, ok := r.intents[token]; ok {
		intent.Status = status
		intent.UpdatedAt = time.Now()
	}
	return nil
}
