package game

import "errors"

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrSkillUnavailable = errors.New("skill unavailable")
	ErrWrongTurn        = errors.New("not this side's turn")
	ErrGameOver         = errors.New("game is over")
)
