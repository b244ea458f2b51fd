package inversi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inversi/internal/apperror"
	"github.com/rocketscienceinc/inversi/internal/entity"
)

func TestNewGame(t *testing.T) {
	// Given: a new game
	state := NewGame()

	// Then: black moves first on the standard layout with no passes
	assert.Equal(t, entity.PlayerBlack, state.CurrentPlayer)
	assert.Equal(t, 0, state.ConsecutivePasses)
	assert.False(t, state.Ended)
	assert.Equal(t, entity.InProgress, state.Outcome)
	assert.Equal(t, entity.NewBoard(), state.Board)
	assert.Equal(t, entity.Counts{Black: 2, White: 2}, state.Board.CountPieces())
}

func TestApplyMove(t *testing.T) {
	t.Run("Places a piece and switches the player", func(t *testing.T) {
		// Given: a new game
		state := NewGame()

		// When: black plays a non-capturing move
		next, err := ApplyMove(state, entity.Move{Row: 2, Col: 2})
		require.NoError(t, err)

		// Then: only the target cell changed and white is to move
		expected := entity.NewBoard()
		expected.Set(2, 2, entity.PlayerBlack)

		assert.Equal(t, expected, next.Board)
		assert.Equal(t, entity.PlayerWhite, next.CurrentPlayer)
		assert.Equal(t, 0, next.ConsecutivePasses)
		assert.False(t, next.Ended)
	})

	t.Run("Does not mutate the input state", func(t *testing.T) {
		state := NewGame()

		_, err := ApplyMove(state, entity.Move{Row: 2, Col: 2})
		require.NoError(t, err)

		assert.Equal(t, NewGame(), state)
	})

	t.Run("Error on capturing move", func(t *testing.T) {
		// Given: a new game
		state := NewGame()

		// When: black tries the standard Othello opening that would flip
		next, err := ApplyMove(state, entity.Move{Row: 2, Col: 3})

		// Then: ErrIllegalMove is returned and nothing changed
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, state, next)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		state := NewGame()

		next, err := ApplyMove(state, entity.Move{Row: 3, Col: 3})

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, state, next)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		state := NewGame()

		_, err := ApplyMove(state, entity.Move{Row: 8, Col: 0})
		require.ErrorIs(t, err, ErrInvalidCell)

		_, err = ApplyMove(state, entity.Move{Row: 0, Col: -1})
		require.ErrorIs(t, err, ErrInvalidCell)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a finished game
		state := NewGame()
		state.Ended = true
		state.Outcome = entity.Draw

		// When: a move is attempted
		next, err := ApplyMove(state, entity.Move{Row: 2, Col: 2})

		// Then: ErrGameFinished is returned and the state is untouched
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, state, next)
	})

	t.Run("Forced pass hands the turn back when the opponent can move", func(t *testing.T) {
		// Given: black to move; after black fills A1, white's only empty cell captures
		state := entity.GameState{
			Board: boardFrom(t,
				".BBBBBB.",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"WBBBBBBW",
			),
			CurrentPlayer: entity.PlayerBlack,
		}

		// When: black plays A1
		next, err := ApplyMove(state, entity.Move{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: white is skipped, black moves again and the game goes on
		assert.Empty(t, LegalMoves(next.Board, entity.PlayerWhite))
		assert.Equal(t, entity.PlayerBlack, next.CurrentPlayer)
		assert.Equal(t, 1, next.ConsecutivePasses)
		assert.False(t, next.Ended)
		assert.Equal(t, []entity.Move{{Row: 0, Col: 7}}, LegalMoves(next.Board, entity.PlayerBlack))
	})

	t.Run("Game ends at once when neither side can move", func(t *testing.T) {
		// Given: the position above with only H1 left
		state := entity.GameState{
			Board: boardFrom(t,
				"BBBBBBB.",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"WBBBBBBW",
			),
			CurrentPlayer:     entity.PlayerBlack,
			ConsecutivePasses: 1,
		}

		// When: black fills the last cell
		next, err := ApplyMove(state, entity.Move{Row: 0, Col: 7})
		require.NoError(t, err)

		// Then: the game ends with black ahead
		assert.True(t, next.Ended)
		assert.Equal(t, entity.BlackWins, next.Outcome)
	})

	t.Run("Full board with equal counts is a draw", func(t *testing.T) {
		state := entity.GameState{
			Board: boardFrom(t,
				".BBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
			),
			CurrentPlayer: entity.PlayerBlack,
		}

		next, err := ApplyMove(state, entity.Move{Row: 0, Col: 0})
		require.NoError(t, err)

		assert.True(t, next.Ended)
		assert.Equal(t, entity.Draw, next.Outcome)
	})

	t.Run("White ahead at the end wins", func(t *testing.T) {
		state := entity.GameState{
			Board: boardFrom(t,
				".WWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
			),
			CurrentPlayer: entity.PlayerWhite,
		}

		next, err := ApplyMove(state, entity.Move{Row: 0, Col: 0})
		require.NoError(t, err)

		assert.True(t, next.Ended)
		assert.Equal(t, entity.WhiteWins, next.Outcome)
	})
}

func TestPass(t *testing.T) {
	t.Run("Single pass switches the player", func(t *testing.T) {
		// Given: a new game
		state := NewGame()

		// When: black passes
		next, err := Pass(state)
		require.NoError(t, err)

		// Then: white is to move with one pass counted
		assert.Equal(t, entity.PlayerWhite, next.CurrentPlayer)
		assert.Equal(t, 1, next.ConsecutivePasses)
		assert.False(t, next.Ended)
	})

	t.Run("Two passes in a row end the game", func(t *testing.T) {
		state := NewGame()

		next, err := Pass(state)
		require.NoError(t, err)
		next, err = Pass(next)
		require.NoError(t, err)

		assert.True(t, next.Ended)
		assert.Equal(t, entity.Draw, next.Outcome)
	})

	t.Run("A placed piece resets the pass counter", func(t *testing.T) {
		state := NewGame()

		next, err := Pass(state)
		require.NoError(t, err)
		next, err = ApplyMove(next, LegalMoves(next.Board, next.CurrentPlayer)[0])
		require.NoError(t, err)
		next, err = Pass(next)
		require.NoError(t, err)

		assert.Equal(t, 1, next.ConsecutivePasses)
		assert.False(t, next.Ended)
	})

	t.Run("Pass After Game Finished", func(t *testing.T) {
		state := NewGame()
		state.Ended = true

		next, err := Pass(state)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, state, next)
	})
}

func TestApplyMove_NeverFlips(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 50; game++ {
		state := NewGame()

		for !state.Ended {
			moves := LegalMoves(state.Board, state.CurrentPlayer)
			require.NotEmpty(t, moves, "an in-progress game always has a mover")

			move := moves[rng.Intn(len(moves))]
			before := state.Board

			next, err := ApplyMove(state, move)
			require.NoError(t, err)

			changed := 0
			for row := 0; row < entity.BoardSize; row++ {
				for col := 0; col < entity.BoardSize; col++ {
					if before.Get(row, col) != next.Board.Get(row, col) {
						changed++
						assert.Equal(t, move, entity.Move{Row: row, Col: col})
					}
				}
			}
			require.Equal(t, 1, changed)
			require.Equal(t, before.Pieces()+1, next.Board.Pieces())

			state = next
		}

		assert.NotEqual(t, entity.InProgress, state.Outcome)
		assert.Equal(t, state.DetermineOutcome(), state.Outcome)
	}
}

func TestController(t *testing.T) {
	t.Run("Applies moves in place", func(t *testing.T) {
		// Given: a fresh controller
		controller := NewGameController()

		// When: black plays C3
		err := controller.ApplyMove(2, 2)
		require.NoError(t, err)

		// Then: the state reflects the move
		state := controller.State()
		assert.Equal(t, entity.Black, state.Board.Get(2, 2))
		assert.Equal(t, entity.PlayerWhite, state.CurrentPlayer)
		assert.Equal(t, entity.Counts{Black: 3, White: 2}, controller.Counts())
	})

	t.Run("Rejected move leaves state untouched", func(t *testing.T) {
		controller := NewGameController()
		before := controller.State()

		err := controller.ApplyMove(2, 3)

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, controller.State())
	})

	t.Run("State is a copy", func(t *testing.T) {
		controller := NewGameController()

		state := controller.State()
		state.Board.Set(0, 0, entity.PlayerWhite)

		fresh := controller.State()
		assert.Equal(t, entity.Empty, fresh.Board.Get(0, 0))
	})

	t.Run("Explicit passes and reset", func(t *testing.T) {
		controller := NewGameController()

		require.NoError(t, controller.ExplicitPass())
		require.NoError(t, controller.ExplicitPass())
		assert.True(t, controller.State().Ended)
		require.ErrorIs(t, controller.ExplicitPass(), apperror.ErrGameFinished)

		controller.Reset()

		assert.Equal(t, NewGame(), controller.State())
	})

	t.Run("LegalMoves is stable without mutation", func(t *testing.T) {
		controller := NewGameController()

		assert.Equal(t, controller.LegalMoves(entity.PlayerBlack), controller.LegalMoves(entity.PlayerBlack))
		assert.Equal(t, LegalMoves(entity.NewBoard(), entity.PlayerWhite), controller.LegalMoves(entity.PlayerWhite))
	})

	t.Run("Starts from a prepared position", func(t *testing.T) {
		state := NewGame()
		state.CurrentPlayer = entity.PlayerWhite

		controller := NewGameControllerFrom(state)

		assert.Equal(t, entity.PlayerWhite, controller.State().CurrentPlayer)
	})
}
