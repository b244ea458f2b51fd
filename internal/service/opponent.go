package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/inversi/internal/entity"
	"github.com/rocketscienceinc/inversi/internal/oracle"
)

var ErrOracleIllegalMove = errors.New("oracle suggested a move that is not legal")

type OpponentPolicy interface {
	// SelectMove picks one of legalMoves; false only when legalMoves is empty.
	SelectMove(ctx context.Context, board entity.Board, player entity.Player, legalMoves []entity.Move) (entity.Move, bool)
}

type opponentPolicy struct {
	logger *slog.Logger
	oracle oracle.Oracle

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOpponentPolicy - oracle may be nil, in which case only the heuristic is used.
// A nil rng is replaced by a clock-seeded one.
func NewOpponentPolicy(logger *slog.Logger, decider oracle.Oracle, rng *rand.Rand) OpponentPolicy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &opponentPolicy{
		logger: logger.With("component", "opponent_policy"),
		oracle: decider,
		rng:    rng,
	}
}

func (that *opponentPolicy) SelectMove(ctx context.Context, board entity.Board, player entity.Player, legalMoves []entity.Move) (entity.Move, bool) {
	log := that.logger.With("method", "SelectMove", "player", player.String())

	if len(legalMoves) == 0 {
		return entity.Move{}, false
	}

	if that.oracle != nil {
		move, err := that.askOracle(ctx, board, player, legalMoves)
		if err == nil {
			log.Info("oracle move accepted", "move", move.String())
			return move, true
		}

		log.Warn("oracle move rejected, using heuristic", "error", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	move := HeuristicMove(legalMoves, that.rng)
	log.Info("heuristic move selected", "move", move.String())

	return move, true
}

func (that *opponentPolicy) askOracle(ctx context.Context, board entity.Board, player entity.Player, legalMoves []entity.Move) (entity.Move, error) {
	answer, err := that.oracle.Decide(ctx, oracle.NewRequest(board, player, legalMoves))
	if err != nil {
		return entity.Move{}, fmt.Errorf("oracle failed: %w", err)
	}

	move, err := entity.ParseMove(answer)
	if err != nil {
		return entity.Move{}, err
	}

	if !entity.ContainsMove(legalMoves, move) {
		return entity.Move{}, fmt.Errorf("%w: %s", ErrOracleIllegalMove, move)
	}

	return move, nil
}

// HeuristicMove prefers the first corner, then the first edge, in the given
// order; otherwise it picks uniformly at random, from the shared source when
// rng is nil. legalMoves must not be empty.
func HeuristicMove(legalMoves []entity.Move, rng *rand.Rand) entity.Move {
	for _, move := range legalMoves {
		if move.IsCorner() {
			return move
		}
	}

	for _, move := range legalMoves {
		if move.IsEdge() {
			return move
		}
	}

	if rng == nil {
		return legalMoves[rand.Intn(len(legalMoves))] //nolint: gosec // it's ok
	}

	return legalMoves[rng.Intn(len(legalMoves))] //nolint: gosec // it's ok
}
