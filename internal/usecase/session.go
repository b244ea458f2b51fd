package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/inversi/internal/apperror"
	"github.com/rocketscienceinc/inversi/internal/entity"
	"github.com/rocketscienceinc/inversi/internal/inversi"
)

type Mode int

const (
	TwoPlayer Mode = iota
	VersusAI
)

func (m Mode) String() string {
	if m == VersusAI {
		return "versus_ai"
	}

	return "two_player"
}

// Snapshot is what observers get after every change of the session.
type Snapshot struct {
	SessionID     string
	Mode          Mode
	Board         entity.Board
	CurrentPlayer entity.Player
	Ended         bool
	Outcome       entity.Outcome
	Counts        entity.Counts
	LegalMoves    []entity.Move
	Thinking      bool
}

type opponentPolicy interface {
	SelectMove(ctx context.Context, board entity.Board, player entity.Player, legalMoves []entity.Move) (entity.Move, bool)
}

type observer struct {
	id int
	fn func(Snapshot)
}

type Option func(*Session)

// WithThinkDelay makes the automated side wait before it decides.
func WithThinkDelay(delay time.Duration) Option {
	return func(s *Session) {
		s.thinkDelay = delay
	}
}

// WithController starts the session from an existing controller instead of
// a new game.
func WithController(controller *inversi.Controller) Option {
	return func(s *Session) {
		s.controller = controller
	}
}

type Session struct {
	logger     *slog.Logger
	id         string
	mode       Mode
	automated  entity.Player
	policy     opponentPolicy
	thinkDelay time.Duration

	mu             sync.Mutex
	controller     *inversi.Controller
	thinking       bool
	generation     uint64
	cancelDecision context.CancelFunc
	observers      []observer
	nextObserverID int
}

func NewSession(logger *slog.Logger, mode Mode, policy opponentPolicy, opts ...Option) *Session {
	id := uuid.NewString()

	session := &Session{
		logger:    logger.With("component", "session", "session_id", id, "mode", mode.String()),
		id:        id,
		mode:      mode,
		automated: entity.PlayerWhite,
		policy:    policy,
	}

	for _, opt := range opts {
		opt(session)
	}

	if session.controller == nil {
		session.controller = inversi.NewGameController()
	}

	return session
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Mode() Mode {
	return that.mode
}

func (that *Session) ApplyMove(row, col int) error {
	log := that.logger.With("method", "ApplyMove")

	that.mu.Lock()

	if err := that.checkPresenterTurn(); err != nil {
		that.mu.Unlock()
		return err
	}

	player := that.controller.State().CurrentPlayer
	if err := that.controller.ApplyMove(row, col); err != nil {
		that.mu.Unlock()
		log.Debug("move rejected", "row", row, "col", col, "error", err)
		return err
	}

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	log.Debug("move applied", "player", player.String(), "move", entity.Move{Row: row, Col: col}.String())
	that.notify(snapshot)

	return nil
}

func (that *Session) ExplicitPass() error {
	log := that.logger.With("method", "ExplicitPass")

	that.mu.Lock()

	if err := that.checkPresenterTurn(); err != nil {
		that.mu.Unlock()
		return err
	}

	if err := that.controller.ExplicitPass(); err != nil {
		that.mu.Unlock()
		return err
	}

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	log.Debug("turn passed", "ended", snapshot.Ended)
	that.notify(snapshot)

	return nil
}

// Reset restores the initial position. A decision in flight is cancelled and
// its result will be dropped when it arrives.
func (that *Session) Reset() {
	log := that.logger.With("method", "Reset")

	that.mu.Lock()

	if that.cancelDecision != nil {
		that.cancelDecision()
		that.cancelDecision = nil
	}

	that.generation++
	that.thinking = false
	that.controller.Reset()

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	log.Debug("session reset")
	that.notify(snapshot)
}

func (that *Session) LegalMoves(player entity.Player) []entity.Move {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.LegalMoves(player)
}

func (that *Session) Counts() entity.Counts {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.Counts()
}

func (that *Session) State() entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.controller.State()
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Subscribe registers fn for every future snapshot. Observers are called
// without the session lock held, in subscription order.
func (that *Session) Subscribe(fn func(Snapshot)) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nextObserverID++
	id := that.nextObserverID
	that.observers = append(that.observers, observer{id: id, fn: fn})

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		for i, o := range that.observers {
			if o.id == id {
				that.observers = append(that.observers[:i:i], that.observers[i+1:]...)
				return
			}
		}
	}
}

func (that *Session) AutomatedTurnPending() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := that.controller.State()

	return that.mode == VersusAI && !state.IsFinished() && !that.thinking && state.CurrentPlayer == that.automated
}

// PlayAutomatedTurn lets the automated side decide and apply its move. The
// lock is released while the policy runs.
func (that *Session) PlayAutomatedTurn(ctx context.Context) error {
	log := that.logger.With("method", "PlayAutomatedTurn")

	that.mu.Lock()

	if that.thinking {
		that.mu.Unlock()
		return apperror.ErrOpponentThinking
	}

	state := that.controller.State()
	if state.IsFinished() {
		that.mu.Unlock()
		return apperror.ErrGameFinished
	}

	if that.mode != VersusAI || state.CurrentPlayer != that.automated {
		that.mu.Unlock()
		return apperror.ErrNotYourTurn
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	that.thinking = true
	that.cancelDecision = cancel
	generation := that.generation
	legal := that.controller.LegalMoves(that.automated)

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.notify(snapshot)

	if err := that.wait(ctx); err != nil {
		return that.abandon(generation, err)
	}

	move, ok := that.policy.SelectMove(ctx, state.Board, that.automated, legal)

	that.mu.Lock()

	if generation != that.generation {
		that.mu.Unlock()
		log.Debug("decision discarded after reset")
		return apperror.ErrDecisionDiscarded
	}

	that.thinking = false
	that.cancelDecision = nil

	var err error
	if ok {
		err = that.controller.ApplyMove(move.Row, move.Col)
	} else {
		err = that.controller.ExplicitPass()
	}

	snapshot = that.snapshotLocked()
	that.mu.Unlock()

	if err != nil {
		log.Error("failed to apply automated decision", "error", err)
		that.notify(snapshot)
		return fmt.Errorf("failed to apply automated decision: %w", err)
	}

	if ok {
		log.Debug("automated move applied", "move", move.String())
	} else {
		log.Debug("automated side passed")
	}

	that.notify(snapshot)

	return nil
}

func (that *Session) wait(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// abandon clears the thinking flag after a cancelled wait, unless a reset
// already did.
func (that *Session) abandon(generation uint64, cause error) error {
	that.mu.Lock()

	if generation != that.generation {
		that.mu.Unlock()
		return apperror.ErrDecisionDiscarded
	}

	that.thinking = false
	that.cancelDecision = nil

	snapshot := that.snapshotLocked()
	that.mu.Unlock()

	that.notify(snapshot)

	return fmt.Errorf("automated turn interrupted: %w", cause)
}

func (that *Session) checkPresenterTurn() error {
	if that.thinking {
		return apperror.ErrOpponentThinking
	}

	state := that.controller.State()
	if that.mode == VersusAI && !state.IsFinished() && state.CurrentPlayer == that.automated {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Session) snapshotLocked() Snapshot {
	state := that.controller.State()

	var legal []entity.Move
	if !state.IsFinished() {
		legal = that.controller.LegalMoves(state.CurrentPlayer)
	}

	return Snapshot{
		SessionID:     that.id,
		Mode:          that.mode,
		Board:         state.Board,
		CurrentPlayer: state.CurrentPlayer,
		Ended:         state.Ended,
		Outcome:       state.Outcome,
		Counts:        that.controller.Counts(),
		LegalMoves:    legal,
		Thinking:      that.thinking,
	}
}

func (that *Session) notify(snapshot Snapshot) {
	that.mu.Lock()
	observers := make([]observer, len(that.observers))
	copy(observers, that.observers)
	that.mu.Unlock()

	for _, o := range observers {
		o.fn(snapshot)
	}
}
