package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_DetermineOutcome(t *testing.T) {
	t.Run("Returns BlackWins when black has more pieces", func(t *testing.T) {
		// Given: a board with one extra black piece
		state := &GameState{Board: NewBoard()}
		state.Board.Set(2, 3, PlayerBlack)

		// When: determining the outcome
		outcome := state.DetermineOutcome()

		// Then: black should win
		assert.Equal(t, BlackWins, outcome)
	})

	t.Run("Returns WhiteWins when white has more pieces", func(t *testing.T) {
		// Given: a board with one extra white piece
		state := &GameState{Board: NewBoard()}
		state.Board.Set(0, 0, PlayerWhite)

		// When: determining the outcome
		outcome := state.DetermineOutcome()

		// Then: white should win
		assert.Equal(t, WhiteWins, outcome)
	})

	t.Run("Returns Draw when counts are equal", func(t *testing.T) {
		// Given: the starting board with two pieces each
		state := &GameState{Board: NewBoard()}

		// When: determining the outcome
		outcome := state.DetermineOutcome()

		// Then: it should be a draw
		assert.Equal(t, Draw, outcome)
	})

	t.Run("Returns Draw on an empty board", func(t *testing.T) {
		// Given: an empty board
		state := &GameState{}

		// When: determining the outcome
		outcome := state.DetermineOutcome()

		// Then: it should be a draw
		assert.Equal(t, Draw, outcome)
	})
}

func TestGameState_SwitchPlayer(t *testing.T) {
	// Given: a state where black is to move
	state := &GameState{CurrentPlayer: PlayerBlack}

	// When: switching twice
	state.SwitchPlayer()
	afterFirst := state.CurrentPlayer
	state.SwitchPlayer()

	// Then: white moves after black, then black again
	assert.Equal(t, PlayerWhite, afterFirst)
	assert.Equal(t, PlayerBlack, state.CurrentPlayer)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "black_wins", BlackWins.String())
	assert.Equal(t, "white_wins", WhiteWins.String())
	assert.Equal(t, "draw", Draw.String())
}
