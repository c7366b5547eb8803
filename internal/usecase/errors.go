package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")

	ErrInvalidInput        = errors.New("invalid input")
	ErrForbidden           = errors.New("forbidden")
	ErrJobNotFound         = errors.New("job not found")
	ErrCVNotFound          = errors.New("cv not found")
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrInvalidMatchMode    = errors.New("invalid match mode")
	ErrRemoteUnavailable   = errors.New("remote matching unavailable")
)
