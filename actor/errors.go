package actor

import "errors"

var (
	ErrMissingSettings = errors.New("actor: settings record is missing")
	ErrInvalidSettings = errors.New("actor: invalid settings")
	ErrMissingGraph    = errors.New("actor: animation graph is missing")
	ErrMissingView     = errors.New("actor: view is missing")
	ErrMissingStore    = errors.New("actor: state store is missing")
	ErrMissingClock    = errors.New("actor: time source is missing")
	ErrMissingAnimator = errors.New("actor: animator is missing")
)
