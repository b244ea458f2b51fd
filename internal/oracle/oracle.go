// Package oracle talks to external move-suggestion services. The answers are
// free text; picking a legal move out of them is the opponent policy's job.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/inversi/internal/entity"
)

var ErrEmptyAnswer = errors.New("oracle returned an empty answer")

type Oracle interface {
	Decide(ctx context.Context, req Request) (string, error)
}

type Request struct {
	Board          entity.Board  `json:"-"`
	Player         entity.Player `json:"-"`
	LegalMoves     []entity.Move `json:"-"`
	BoardText      string        `json:"board"`
	LegalMovesText string        `json:"legal_moves"`
	Counts         entity.Counts `json:"counts"`
}

func NewRequest(board entity.Board, player entity.Player, legalMoves []entity.Move) Request {
	return Request{
		Board:          board,
		Player:         player,
		LegalMoves:     legalMoves,
		BoardText:      RenderBoard(board),
		LegalMovesText: RenderLegalMoves(legalMoves),
		Counts:         board.CountPieces(),
	}
}

const columnHeader = "  A B C D E F G H\n"

// RenderBoard draws the board with ● for black, ○ for white and . for empty,
// labelled with the same letters and digits used for moves.
func RenderBoard(board entity.Board) string {
	var sb strings.Builder

	sb.WriteString(columnHeader)
	for row := 0; row < entity.BoardSize; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < entity.BoardSize; col++ {
			switch board.Get(row, col) {
			case entity.Black:
				sb.WriteString("● ")
			case entity.White:
				sb.WriteString("○ ")
			default:
				sb.WriteString(". ")
			}
		}
		fmt.Fprintf(&sb, "%d\n", row+1)
	}
	sb.WriteString(columnHeader)

	return sb.String()
}

// RenderLegalMoves joins moves as "A1, B2, ...". An empty list renders as "none".
func RenderLegalMoves(moves []entity.Move) string {
	if len(moves) == 0 {
		return "none"
	}

	names := make([]string, 0, len(moves))
	for _, move := range moves {
		names = append(names, move.String())
	}

	return strings.Join(names, ", ")
}

func stoneName(player entity.Player) string {
	if player == entity.PlayerBlack {
		return "black (●)"
	}
	return "white (○)"
}

// Prompt is the instruction text sent to model-backed oracles.
func Prompt(req Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are playing \"no-flip Othello\" as %s. Choose the best move.\n\n", stoneName(req.Player))
	sb.WriteString("Rules:\n")
	sb.WriteString("- A piece may only be placed next to an existing piece.\n")
	sb.WriteString("- A piece may not be placed where it would flip an opponent's piece.\n")
	sb.WriteString("- A player with no legal move passes; the game ends when neither side can move.\n\n")
	sb.WriteString("Current board:\n")
	sb.WriteString(req.BoardText)
	fmt.Fprintf(&sb, "\nPieces: black ●=%d, white ○=%d\n\n", req.Counts.Black, req.Counts.White)
	fmt.Fprintf(&sb, "Legal moves: %s\n\n", req.LegalMovesText)
	sb.WriteString("Strategy hints:\n")
	sb.WriteString("1. Corners and edges are strong positions.\n")
	sb.WriteString("2. Prefer moves that reduce the opponent's options.\n")
	sb.WriteString("3. Grow your piece count while restricting the opponent.\n\n")
	sb.WriteString("Answer with exactly one move in the form \"A1\". No explanation.\n")

	return sb.String()
}
