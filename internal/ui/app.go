package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/inversi/internal/apperror"
	"github.com/rocketscienceinc/inversi/internal/usecase"
)

const (
	pageMenu = "menu"
	pageGame = "game"
)

// App wires the menu and the board view to a Navigator.
type App struct {
	logger    *slog.Logger
	navigator *usecase.Navigator

	app    *tview.Application
	pages  *tview.Pages
	menu   *tview.List
	board  *BoardView
	status *tview.TextView

	ctx         context.Context
	unsubscribe func()
	// queueDraw hands a redraw to the UI goroutine.
	queueDraw func(func())
}

func New(logger *slog.Logger, navigator *usecase.Navigator) *App {
	that := &App{
		logger:    logger.With("component", "ui"),
		navigator: navigator,
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		ctx:       context.Background(),
	}

	that.queueDraw = func(f func()) {
		go that.app.QueueUpdateDraw(f)
	}

	that.status = tview.NewTextView().SetDynamicColors(true)
	that.status.SetBorder(true).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)
	that.status.SetBorderPadding(0, 0, 1, 1)

	that.board = NewBoardView(logger, that.backToMenu)
	that.board.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		result := that.board.HandleKey(event)
		if that.navigator.Session() != nil {
			that.updateStatus()
		}
		return result
	})

	that.menu = tview.NewList().
		AddItem("Play vs AI", "You are black, the computer plays white", 'a', func() { that.startGame(usecase.VersusAI) }).
		AddItem("Two players", "Both sides share this keyboard", 't', func() { that.startGame(usecase.TwoPlayer) }).
		AddItem("Quit", "", 'q', that.app.Stop)
	that.menu.SetBorder(true).SetTitle(" Inversi ")

	game := tview.NewFlex().
		AddItem(that.board, boardWidth+1, 0, true).
		AddItem(that.status, 0, 1, false)

	that.pages.AddPage(pageMenu, that.menu, true, true)
	that.pages.AddPage(pageGame, game, true, false)

	return that
}

// Run blocks until the user quits or ctx is cancelled.
func (that *App) Run(ctx context.Context) error {
	that.ctx = ctx

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.SetRoot(that.pages, true).SetFocus(that.menu).Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	if that.unsubscribe != nil {
		that.unsubscribe()
		that.unsubscribe = nil
	}

	that.navigator.BackToMenu()

	return nil
}

func (that *App) startGame(mode usecase.Mode) {
	if that.unsubscribe != nil {
		that.unsubscribe()
	}

	session := that.navigator.Start(mode)
	that.unsubscribe = session.Subscribe(that.onSnapshot)

	that.board.Attach(session)
	that.updateStatus()

	that.pages.SwitchToPage(pageGame)
	that.app.SetFocus(that.board)
}

func (that *App) backToMenu() {
	if that.unsubscribe != nil {
		that.unsubscribe()
		that.unsubscribe = nil
	}

	that.navigator.BackToMenu()
	that.board.Attach(nil)

	that.pages.SwitchToPage(pageMenu)
	that.app.SetFocus(that.menu)
}

// onSnapshot may run on the UI goroutine or on the automated turn's one, so
// drawing is always queued.
func (that *App) onSnapshot(snapshot usecase.Snapshot) {
	that.queueDraw(func() {
		that.board.Refresh()
		that.updateStatus()
	})

	session := that.navigator.Session()
	if session == nil || session.ID() != snapshot.SessionID {
		return
	}

	if session.AutomatedTurnPending() {
		go that.playAutomated(session)
	}
}

func (that *App) playAutomated(session *usecase.Session) {
	log := that.logger.With("method", "playAutomated", "session_id", session.ID())

	err := session.PlayAutomatedTurn(that.ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrDecisionDiscarded), errors.Is(err, apperror.ErrOpponentThinking),
		errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, context.Canceled):
		log.Debug("automated turn skipped", "error", err)
	default:
		log.Error("automated turn failed", "error", err)
	}
}

func (that *App) updateStatus() {
	that.status.SetText(StatusText(that.board.Snapshot(), that.board.Message()))
}
