package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidRole         = errors.New("invalid role")
	ErrUnauthenticated     = errors.New("no token provided")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrForbidden           = errors.New("forbidden: insufficient permissions")
	ErrServerMisconfigured = errors.New("jwt secret not configured")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")
)

// ErrTokenExpired is a variant of ErrTokenInvalid: errors.Is matches both.
var ErrTokenExpired = fmt.Errorf("%w: token expired", ErrTokenInvalid)
