package service

import "errors"

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrUnknownCategory     = errors.New("unknown item category")
	ErrItemIndexOutOfRange = errors.New("item index out of range")

	// ErrPersistence wraps every failed or timed-out save. The roster in
	// memory is unchanged when it is returned.
	ErrPersistence = errors.New("failed to persist roster")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
