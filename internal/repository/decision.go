package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrDecisionNotFound = errors.New("decision not found")

type DecisionRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, answer string) error
}

type dbDecision struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDecisionRepository stores oracle answers in redis. A zero ttl keeps them forever.
func NewDecisionRepository(client *redis.Client, ttl time.Duration) DecisionRepository {
	return &dbDecision{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbDecision) Save(ctx context.Context, key, answer string) error {
	decisionKey := "decision:" + key

	err := that.client.Set(ctx, decisionKey, answer, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set decision: %w", err)
	}

	return nil
}

func (that *dbDecision) Get(ctx context.Context, key string) (string, error) {
	decisionKey := "decision:" + key

	response, err := that.client.Get(ctx, decisionKey).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrDecisionNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get decision: %w", err)
	}

	return response, nil
}
