package inversi

import "github.com/rocketscienceinc/inversi/internal/entity"

// Directions in clockwise order starting from north: N, NE, E, SE, S, SW, W, NW.
var Directions = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// IsAdjacentToOccupied reports whether any in-bounds neighbour of (row, col) holds a piece.
func IsAdjacentToOccupied(board entity.Board, row, col int) bool {
	for _, dir := range Directions {
		r, c := row+dir[0], col+dir[1]
		if board.InBounds(r, c) && board.Get(r, c) != entity.Empty {
			return true
		}
	}

	return false
}

// WouldFlip reports whether placing player's piece at (row, col) would bracket
// at least one opponent piece in any direction, as a normal Othello move would.
func WouldFlip(board entity.Board, row, col int, player entity.Player) bool {
	for _, dir := range Directions {
		if flipsInDirection(board, row, col, dir[0], dir[1], player) {
			return true
		}
	}

	return false
}

func flipsInDirection(board entity.Board, row, col, dr, dc int, player entity.Player) bool {
	opponent := player.Opponent().Cell()
	r, c := row+dr, col+dc

	if !board.InBounds(r, c) || board.Get(r, c) != opponent {
		return false
	}

	for board.InBounds(r, c) && board.Get(r, c) == opponent {
		r += dr
		c += dc
	}

	return board.InBounds(r, c) && board.Get(r, c) == player.Cell()
}

// IsLegalMove: the cell is empty, touches a piece and captures nothing.
// Out-of-bounds coordinates are never legal.
func IsLegalMove(board entity.Board, row, col int, player entity.Player) bool {
	if !board.InBounds(row, col) {
		return false
	}

	if board.Get(row, col) != entity.Empty {
		return false
	}

	if !IsAdjacentToOccupied(board, row, col) {
		return false
	}

	return !WouldFlip(board, row, col, player)
}

// LegalMoves lists player's legal moves in row-major order. Opponent policies
// break ties on this order, so it must not change.
func LegalMoves(board entity.Board, player entity.Player) []entity.Move {
	moves := make([]entity.Move, 0, entity.BoardSize)

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if IsLegalMove(board, row, col, player) {
				moves = append(moves, entity.Move{Row: row, Col: col})
			}
		}
	}

	return moves
}
