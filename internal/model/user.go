// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"strings"
	"time"
)

// User is an account as listed to administrators.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Roles     []string  `json:"roles"`
}

// HasRole reports whether the user holds role.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CredentialsInput is the sign-in and sign-up form.
type CredentialsInput struct {
	Email    string `json:"email" label:"Email" validate:"required,email,max=255"`
	Password string `json:"password" label:"Password" validate:"required,max=128"`
}

// Normalize implements validation.Normalizer.
func (in *CredentialsInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
}

// CreateUserInput is the admin-create-user request.
type CreateUserInput struct {
	Email    string `json:"email" label:"Email" validate:"required,email,max=255"`
	Password string `json:"password" label:"Password" validate:"required,password"`
	Role     string `json:"role" label:"Role" validate:"required,oneof=admin editor"`
}

// Normalize implements validation.Normalizer. The role defaults to editor.
func (in *CreateUserInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = RoleEditor
	}
}

// ChangePasswordInput is the admin-change-password request.
type ChangePasswordInput struct {
	Email       string `json:"email" label:"Email" validate:"required,email,max=255"`
	NewPassword string `json:"newPassword" label:"Password" validate:"required,password"`
}

// Normalize implements validation.Normalizer. The password is left as typed.
func (in *ChangePasswordInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
}

// DeleteUserInput is the admin-delete-user request.
type DeleteUserInput struct {
	UserID string `json:"userId" label:"User ID" validate:"required,uuid"`
}

// Normalize implements validation.Normalizer.
func (in *DeleteUserInput) Normalize() {
	in.UserID = strings.TrimSpace(in.UserID)
}

// PasswordForm is the dashboard form with a confirmation field.
type PasswordForm struct {
	NewPassword     string `json:"newPassword" label:"Password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" label:"Confirm password" validate:"eqfield=NewPassword"`
}
