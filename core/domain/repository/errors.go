package repository

import "errors"

var (
	ErrNoRecord = errors.New("game record not found")
	ErrStorage  = errors.New("storage error")
)
