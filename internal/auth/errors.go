// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("a user with this email address has already been registered")
	// ErrUserNotFound is returned when the target account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned when a session is missing, revoked or expired.
	ErrSessionNotFound = errors.New("session_not_found")
	// ErrInvalidToken is returned for malformed or forged access tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for expired access tokens.
	ErrTokenExpired = errors.New("token expired")
	// ErrAdminExists is returned by SetupAdmin once an administrator exists.
	ErrAdminExists = errors.New("admin user already exists")
	// ErrSetupDisabled is returned by SetupAdmin without bootstrap credentials.
	ErrSetupDisabled = errors.New("admin setup is not configured")
	// ErrCannotDeleteSelf is returned when an administrator deletes their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	// ErrInvalidRole is returned for roles outside admin, editor and user.
	ErrInvalidRole = errors.New("invalid role")
)

// IsUnauthenticated reports whether err means the caller has no valid session.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
