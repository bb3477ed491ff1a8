// Package auth issues and validates HMAC-signed JWT access tokens and
// verifies bcrypt password hashes.
package auth
