package services

import "errors"

// Error taxonomy shared by all session-facing services. Handlers map these
// onto HTTP statuses with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrNotMember        = errors.New("not a member of this session")
	ErrAlreadyMember    = errors.New("already a member of this session")
	ErrInvalidState     = errors.New("session is not active")
	ErrInvalidDirection = errors.New("invalid vote direction")
)
