package inversi

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/inversi/internal/apperror"
	"github.com/rocketscienceinc/inversi/internal/entity"
)

var ErrInvalidCell = errors.New("invalid cell coordinates")

// NewGame returns the initial state: standard layout, black to move.
func NewGame() entity.GameState {
	return entity.GameState{
		Board:         entity.NewBoard(),
		CurrentPlayer: entity.PlayerBlack,
		Outcome:       entity.InProgress,
	}
}

// ApplyMove places the current player's piece and advances the turn. On error
// the given state is returned as is.
func ApplyMove(state entity.GameState, move entity.Move) (entity.GameState, error) {
	if state.IsFinished() {
		return state, apperror.ErrGameFinished
	}

	if err := validateMove(state, move); err != nil {
		return state, fmt.Errorf("invalid move %s: %w", move, err)
	}

	state.Board.Set(move.Row, move.Col, state.CurrentPlayer)
	state.ConsecutivePasses = 0
	state.SwitchPlayer()

	return checkEndOfTurn(state), nil
}

// Pass gives the turn away. Refusing a pass while moves exist is left to the caller.
func Pass(state entity.GameState) (entity.GameState, error) {
	if state.IsFinished() {
		return state, apperror.ErrGameFinished
	}

	state.ConsecutivePasses++
	state.SwitchPlayer()

	if state.ConsecutivePasses >= 2 {
		return endGame(state), nil
	}

	return checkEndOfTurn(state), nil
}

// validateMove - checks if the move is valid.
func validateMove(state entity.GameState, move entity.Move) error {
	if !state.Board.InBounds(move.Row, move.Col) {
		return ErrInvalidCell
	}

	if !IsLegalMove(state.Board, move.Row, move.Col, state.CurrentPlayer) {
		return apperror.ErrIllegalMove
	}

	return nil
}

// checkEndOfTurn runs after every turn switch. A player without moves passes
// automatically; if the other side is stuck as well the game ends right away.
func checkEndOfTurn(state entity.GameState) entity.GameState {
	if len(LegalMoves(state.Board, state.CurrentPlayer)) > 0 {
		return state
	}

	state.ConsecutivePasses++
	if state.ConsecutivePasses >= 2 {
		return endGame(state)
	}

	state.SwitchPlayer()
	if len(LegalMoves(state.Board, state.CurrentPlayer)) == 0 {
		return endGame(state)
	}

	return state
}

func endGame(state entity.GameState) entity.GameState {
	state.Ended = true
	state.Outcome = state.DetermineOutcome()

	return state
}

// Controller owns the state of one game and applies transitions to it in place.
type Controller struct {
	state entity.GameState
}

func NewGameController() *Controller {
	return &Controller{state: NewGame()}
}

// NewGameControllerFrom starts from an arbitrary position, e.g. a prepared test board.
func NewGameControllerFrom(state entity.GameState) *Controller {
	return &Controller{state: state}
}

func (that *Controller) ApplyMove(row, col int) error {
	next, err := ApplyMove(that.state, entity.Move{Row: row, Col: col})
	if err != nil {
		return err
	}

	that.state = next

	return nil
}

func (that *Controller) ExplicitPass() error {
	next, err := Pass(that.state)
	if err != nil {
		return err
	}

	that.state = next

	return nil
}

func (that *Controller) Reset() {
	that.state = NewGame()
}

func (that *Controller) LegalMoves(player entity.Player) []entity.Move {
	return LegalMoves(that.state.Board, player)
}

func (that *Controller) Counts() entity.Counts {
	return that.state.Board.CountPieces()
}

// State returns a copy; mutating it does not affect the controller.
func (that *Controller) State() entity.GameState {
	return that.state
}
