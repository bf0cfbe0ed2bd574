package service

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("account is inactive")
	ErrProgressNotFound   = errors.New("no progress for this word")
	ErrWrongWordNotFound  = errors.New("no wrong-word record for this word")
	ErrDuplicateAttempt   = errors.New("duplicate attempt submission")
)
