// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Roles stored in user_roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

// IsValidRole reports whether role is a known role.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

// HasAccess reports whether a user with the given role flags may use the
// dashboard.
func HasAccess(isAdmin, isEditor bool) bool {
	return isAdmin || isEditor
}
