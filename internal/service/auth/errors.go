package auth

import "errors"

var (
	// ErrInvalidToken means the token is malformed, signed with another key
	// or carries claims this service did not issue.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken means the token's exp claim has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid means the token's nbf or iat claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken means the request carried no bearer token.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordMismatch means a login password did not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
