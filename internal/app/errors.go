package app

import "errors"

var (
	// ErrBookNotFound reports a chat or favorite against an unknown book.
	ErrBookNotFound = errors.New("app: book not found")
	// ErrEmptyMessage reports a blank chat message.
	ErrEmptyMessage = errors.New("app: message content required")
)
