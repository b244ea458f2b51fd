// Package ui is the terminal presenter: a main menu and a board view driven by
// usecase.Session snapshots.
package ui

import (
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/inversi/internal/apperror"
	"github.com/rocketscienceinc/inversi/internal/entity"
	"github.com/rocketscienceinc/inversi/internal/usecase"
)

const (
	blackPiece = '●'
	whitePiece = '○'
	legalMark  = '·'
	emptyCell  = ' '

	// columns taken by the row labels on the left
	labelWidth = 3
	boardWidth = entity.BoardSize*2 + labelWidth
)

var (
	boardStyle = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type BoardView struct {
	*tview.Box

	logger   *slog.Logger
	session  *usecase.Session
	snapshot usecase.Snapshot
	row, col int
	message  string
	onQuit   func()
}

func NewBoardView(logger *slog.Logger, onQuit func()) *BoardView {
	view := &BoardView{
		Box:    tview.NewBox(),
		logger: logger.With("component", "board_view"),
		row:    entity.BoardSize/2 - 1,
		col:    entity.BoardSize/2 - 1,
		onQuit: onQuit,
	}

	view.Box.SetDrawFunc(view.draw)
	view.Box.SetInputCapture(view.HandleKey)

	return view
}

// Attach points the view at a new session and centres the cursor.
func (that *BoardView) Attach(session *usecase.Session) {
	that.session = session
	that.row, that.col = entity.BoardSize/2-1, entity.BoardSize/2-1
	that.message = ""
	that.Refresh()
}

// Refresh pulls the latest snapshot from the session.
func (that *BoardView) Refresh() {
	if that.session == nil {
		return
	}

	that.snapshot = that.session.Snapshot()
}

func (that *BoardView) Snapshot() usecase.Snapshot {
	return that.snapshot
}

func (that *BoardView) Cursor() (int, int) {
	return that.row, that.col
}

func (that *BoardView) Message() string {
	return that.message
}

func (that *BoardView) MoveCursor(dRow, dCol int) {
	row, col := that.row+dRow, that.col+dCol
	if row < 0 || row >= entity.BoardSize || col < 0 || col >= entity.BoardSize {
		return
	}

	that.row, that.col = row, col
}

func (that *BoardView) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		that.MoveCursor(-1, 0)
	case tcell.KeyDown:
		that.MoveCursor(1, 0)
	case tcell.KeyLeft:
		that.MoveCursor(0, -1)
	case tcell.KeyRight:
		that.MoveCursor(0, 1)
	case tcell.KeyEnter:
		that.place()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			that.MoveCursor(-1, 0)
		case 'j':
			that.MoveCursor(1, 0)
		case 'h':
			that.MoveCursor(0, -1)
		case 'l':
			that.MoveCursor(0, 1)
		case 'p':
			that.pass()
		case 'r':
			that.reset()
		case 'q':
			if that.onQuit != nil {
				that.onQuit()
			}
		default:
			return event
		}
	default:
		return event
	}

	return nil
}

func (that *BoardView) place() {
	if that.session == nil {
		return
	}

	move := entity.Move{Row: that.row, Col: that.col}
	if err := that.session.ApplyMove(move.Row, move.Col); err != nil {
		that.logger.Debug("move rejected", "move", move.String(), "error", err)
		that.message = describeError(err, move)
	} else {
		that.message = ""
	}

	that.Refresh()
}

// pass is only offered when the side to move has nothing to play.
func (that *BoardView) pass() {
	if that.session == nil {
		return
	}

	that.Refresh()
	if that.snapshot.Ended || len(that.snapshot.LegalMoves) > 0 {
		return
	}

	if err := that.session.ExplicitPass(); err != nil {
		that.message = describeError(err, entity.Move{})
	} else {
		that.message = ""
	}

	that.Refresh()
}

func (that *BoardView) reset() {
	if that.session == nil {
		return
	}

	that.session.Reset()
	that.message = ""
	that.Refresh()
}

func describeError(err error, move entity.Move) string {
	switch {
	case errors.Is(err, apperror.ErrOpponentThinking):
		return "Wait, the opponent is thinking"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "It is not your turn"
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over, press r to play again"
	case errors.Is(err, apperror.ErrIllegalMove):
		return move.String() + " is not a legal move"
	default:
		return err.Error()
	}
}

func (that *BoardView) draw(screen tcell.Screen, x, y, _, _ int) (int, int, int, int) {
	snapshot := that.snapshot

	legal := make(map[entity.Move]bool, len(snapshot.LegalMoves))
	for _, move := range snapshot.LegalMoves {
		legal[move] = true
	}

	for col := 0; col < entity.BoardSize; col++ {
		screen.SetContent(x+labelWidth+col*2, y, rune('A'+col), nil, labelStyle)
	}

	for row := 0; row < entity.BoardSize; row++ {
		cy := y + 1 + row
		screen.SetContent(x+1, cy, rune('1'+row), nil, labelStyle)

		for col := 0; col < entity.BoardSize; col++ {
			cx := x + labelWidth + col*2
			ch, style := that.cellAppearance(snapshot.Board.Get(row, col), legal[entity.Move{Row: row, Col: col}])

			if row == that.row && col == that.col {
				style = style.Background(tcell.ColorOlive)
			}

			screen.SetContent(cx, cy, ch, nil, style)
			screen.SetContent(cx+1, cy, emptyCell, nil, boardStyle)
		}
	}

	return x, y, boardWidth, entity.BoardSize + 1
}

func (that *BoardView) cellAppearance(cell entity.Cell, legal bool) (rune, tcell.Style) {
	switch cell {
	case entity.Black:
		return blackPiece, boardStyle.Foreground(tcell.ColorBlack)
	case entity.White:
		return whitePiece, boardStyle.Foreground(tcell.ColorWhite)
	}

	if legal && !that.snapshot.Thinking {
		return legalMark, boardStyle.Foreground(tcell.ColorYellow)
	}

	return emptyCell, boardStyle
}
