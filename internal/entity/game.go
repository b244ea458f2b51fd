package entity

type Outcome int

const (
	InProgress Outcome = iota
	BlackWins
	WhiteWins
	Draw
)

func (that Outcome) String() string {
	switch that {
	case InProgress:
		return "in_progress"
	case BlackWins:
		return "black_wins"
	case WhiteWins:
		return "white_wins"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// GameState is a complete, copyable game position. ConsecutivePasses is reset
// by every placed piece; two in a row end the game.
type GameState struct {
	Board             Board   `json:"board"`
	CurrentPlayer     Player  `json:"current_player"`
	ConsecutivePasses int     `json:"consecutive_passes"`
	Ended             bool    `json:"ended"`
	Outcome           Outcome `json:"outcome"`
}

func (that *GameState) IsFinished() bool {
	return that.Ended
}

// DetermineOutcome compares piece counts. It does not look at Ended.
func (that *GameState) DetermineOutcome() Outcome {
	counts := that.Board.CountPieces()

	switch {
	case counts.Black > counts.White:
		return BlackWins
	case counts.White > counts.Black:
		return WhiteWins
	default:
		return Draw
	}
}

func (that *GameState) SwitchPlayer() {
	that.CurrentPlayer = that.CurrentPlayer.Opponent()
}
