package entity

import "strings"

const BoardSize = 8

type Cell int

const (
	Empty Cell = iota
	Black
	White
)

// Player is the side to move. Its values match the Cell a player occupies.
type Player int

const (
	PlayerBlack = Player(Black)
	PlayerWhite = Player(White)
)

func (that Player) Opponent() Player {
	if that == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (that Player) Cell() Cell {
	return Cell(that)
}

func (that Player) String() string {
	switch that {
	case PlayerBlack:
		return "black"
	case PlayerWhite:
		return "white"
	default:
		return "unknown"
	}
}

type Counts struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Board is a value type: assigning or passing it copies the whole grid.
type Board [BoardSize][BoardSize]Cell

// NewBoard returns the starting layout with the four center cells occupied.
func NewBoard() Board {
	var board Board

	mid := BoardSize / 2
	board[mid-1][mid-1] = White
	board[mid-1][mid] = Black
	board[mid][mid-1] = Black
	board[mid][mid] = White

	return board
}

func (that *Board) Get(row, col int) Cell {
	return that[row][col]
}

// Set places player's piece. Callers must check bounds first.
func (that *Board) Set(row, col int, player Player) {
	that[row][col] = player.Cell()
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) CountPieces() Counts {
	var counts Counts

	for row := range that {
		for _, cell := range that[row] {
			switch cell {
			case Black:
				counts.Black++
			case White:
				counts.White++
			}
		}
	}

	return counts
}

func (that *Board) Pieces() int {
	counts := that.CountPieces()
	return counts.Black + counts.White
}

// Encode renders the board row by row as 64 characters: '.', 'B' or 'W'.
func (that *Board) Encode() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for row := range that {
		for _, cell := range that[row] {
			switch cell {
			case Black:
				sb.WriteByte('B')
			case White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
	}

	return sb.String()
}
