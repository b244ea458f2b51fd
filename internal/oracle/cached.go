package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/inversi/internal/entity"
)

type decisionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, answer string) error
}

// CachedOracle remembers answers per position, so repeated positions do not
// hit the wrapped oracle again. Only answers naming one of the request's legal
// moves are stored. Store failures only cost a cache miss.
type CachedOracle struct {
	logger *slog.Logger
	next   Oracle
	store  decisionStore
}

func NewCachedOracle(logger *slog.Logger, next Oracle, store decisionStore) *CachedOracle {
	return &CachedOracle{
		logger: logger.With("component", "cached_oracle"),
		next:   next,
		store:  store,
	}
}

func DecisionKey(req Request) string {
	return fmt.Sprintf("%s:%s", req.Player, req.Board.Encode())
}

func (that *CachedOracle) Decide(ctx context.Context, req Request) (string, error) {
	log := that.logger.With("method", "Decide")

	key := DecisionKey(req)

	answer, err := that.store.Get(ctx, key)
	if err == nil {
		log.Debug("decision served from cache", "key", key)
		return answer, nil
	}

	answer, err = that.next.Decide(ctx, req)
	if err != nil {
		return "", err
	}

	if !isLegalAnswer(answer, req.LegalMoves) {
		log.Debug("answer not cached, no legal move in it", "key", key, "answer", answer)
		return answer, nil
	}

	if err = that.store.Save(ctx, key, answer); err != nil {
		log.Warn("failed to cache decision", "error", err)
	}

	return answer, nil
}

func isLegalAnswer(answer string, legalMoves []entity.Move) bool {
	move, err := entity.ParseMove(answer)
	if err != nil {
		return false
	}

	return entity.ContainsMove(legalMoves, move)
}
