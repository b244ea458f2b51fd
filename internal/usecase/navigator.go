package usecase

import (
	"log/slog"
	"sync"
)

type Screen int

const (
	MainMenu Screen = iota
	Playing
)

// AppMode is either the main menu or a running game in a given mode.
type AppMode struct {
	Screen Screen
	Mode   Mode
}

func (m AppMode) String() string {
	if m.Screen == MainMenu {
		return "main_menu"
	}

	return "playing:" + m.Mode.String()
}

// Navigator owns the application mode and the session that belongs to it.
type Navigator struct {
	logger *slog.Logger
	policy opponentPolicy
	opts   []Option

	mu      sync.Mutex
	mode    AppMode
	session *Session
}

func NewNavigator(logger *slog.Logger, policy opponentPolicy, opts ...Option) *Navigator {
	return &Navigator{
		logger: logger.With("component", "navigator"),
		policy: policy,
		opts:   opts,
		mode:   AppMode{Screen: MainMenu},
	}
}

// Start drops whatever game was running and begins a fresh one in mode. The
// old session is reset outside the lock, since its observers may call back
// into the navigator.
func (that *Navigator) Start(mode Mode) *Session {
	log := that.logger.With("method", "Start")

	session := NewSession(that.logger, mode, that.policy, that.opts...)

	that.mu.Lock()
	previous := that.session
	that.session = session
	that.mode = AppMode{Screen: Playing, Mode: mode}
	that.mu.Unlock()

	if previous != nil {
		previous.Reset()
	}

	log.Info("game started", "session_id", session.ID(), "mode", mode.String())

	return session
}

func (that *Navigator) BackToMenu() {
	log := that.logger.With("method", "BackToMenu")

	that.mu.Lock()
	previous := that.session
	that.session = nil
	that.mode = AppMode{Screen: MainMenu}
	that.mu.Unlock()

	if previous != nil {
		previous.Reset()
		log.Info("game closed", "session_id", previous.ID())
	}
}

func (that *Navigator) Mode() AppMode {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.mode
}

// Session returns the running session, nil on the main menu.
func (that *Navigator) Session() *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session
}
