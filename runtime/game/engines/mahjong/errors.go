package mahjong

import (
	"errors"
	"fmt"
)

var ErrGameFinished = errors.New("game is finished")

// InvariantError 调用方违反了引擎契约（座位越界、前置条件不成立等），属于程序错误，直接 panic
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("mahjong: %s: %s", e.Op, e.Msg)
}

func newInvariantError(op string, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

func checkSeat(op string, seat int) {
	if seat < 0 || seat > 3 {
		panic(newInvariantError(op, "座位 %d 越界", seat))
	}
}
