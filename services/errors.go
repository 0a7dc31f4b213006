package services

import "errors"

var (
	ErrNotOwner       = errors.New("record belongs to another user")
	ErrInvalidLogType = errors.New("invalid time log type")
)
