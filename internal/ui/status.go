package ui

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/inversi/internal/entity"
	"github.com/rocketscienceinc/inversi/internal/usecase"
)

const keyHelp = "[gray]arrows/hjkl move  enter place  p pass  r reset  q menu[-]"

// StatusText renders the side panel for a snapshot, with tview color tags.
func StatusText(snapshot usecase.Snapshot, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Mode: %s\n\n", modeName(snapshot.Mode))

	switch {
	case snapshot.Ended:
		fmt.Fprintf(&b, "[yellow]%s[-]\n", outcomeText(snapshot.Outcome))
	case snapshot.Thinking:
		fmt.Fprintf(&b, "%s to move\n[yellow]Thinking...[-]\n", sideName(snapshot.CurrentPlayer))
	default:
		fmt.Fprintf(&b, "%s to move\n", sideName(snapshot.CurrentPlayer))
		if len(snapshot.LegalMoves) == 0 {
			b.WriteString("No legal moves, press p to pass\n")
		}
	}

	fmt.Fprintf(&b, "\n%c Black: %d\n%c White: %d\n", blackPiece, snapshot.Counts.Black, whitePiece, snapshot.Counts.White)

	if message != "" {
		fmt.Fprintf(&b, "\n[red]%s[-]\n", message)
	}

	b.WriteString("\n" + keyHelp)

	return b.String()
}

func modeName(mode usecase.Mode) string {
	if mode == usecase.VersusAI {
		return "vs AI"
	}
	return "two players"
}

func sideName(player entity.Player) string {
	if player == entity.PlayerBlack {
		return fmt.Sprintf("Black %c", blackPiece)
	}
	return fmt.Sprintf("White %c", whitePiece)
}

func outcomeText(outcome entity.Outcome) string {
	switch outcome {
	case entity.BlackWins:
		return "Black wins!"
	case entity.WhiteWins:
		return "White wins!"
	case entity.Draw:
		return "Draw"
	default:
		return "Game over"
	}
}
