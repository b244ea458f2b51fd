package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrIllegalMove       = errors.New("move is not legal")
	ErrOpponentThinking  = errors.New("opponent is still thinking")
	ErrDecisionDiscarded = errors.New("opponent decision discarded by reset")
)
