// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// User management notification texts.
const (
	MsgUserCreated     = "User created successfully"
	MsgUserDeleted     = "User deleted successfully"
	MsgPasswordChanged = "Password changed successfully"
)

// UserDirectory is the admin functions surface. *client.Client
// implements it.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in model.CreateUserInput) (model.User, error)
	ChangePassword(ctx context.Context, email, newPassword string) error
	DeleteUser(ctx context.Context, userID string) error
}

// UserAdmin is the user management screen. The server checks the admin
// role on every call.
type UserAdmin struct {
	dir      UserDirectory
	validate *validation.Validator
	notify   Notifier
	logger   *slog.Logger
}

// NewUserAdmin creates a UserAdmin. v, notify and logger may be nil.
func NewUserAdmin(dir UserDirectory, v *validation.Validator, notify Notifier, logger *slog.Logger) *UserAdmin {
	if v == nil {
		v = validation.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserAdmin{dir: dir, validate: v, notify: notify, logger: logger}
}

// List returns every account.
func (u *UserAdmin) List(ctx context.Context) ([]model.User, error) {
	users, err := u.dir.ListUsers(ctx)
	if err != nil {
		u.fail("Failed to load users", err)
		return nil, err
	}
	return users, nil
}

// Create validates and creates an account.
func (u *UserAdmin) Create(ctx context.Context, in model.CreateUserInput) (model.User, error) {
	if err := u.validate.Struct(&in); err != nil {
		u.fail(firstMessage(err), err)
		return model.User{}, err
	}
	user, err := u.dir.CreateUser(ctx, in)
	if err != nil {
		u.fail("Failed to create user", err)
		return model.User{}, err
	}
	u.ok(MsgUserCreated)
	return user, nil
}

// ChangePassword validates the form and sets a new password for email.
// All sessions of that account end.
func (u *UserAdmin) ChangePassword(ctx context.Context, email string, form model.PasswordForm) error {
	if err := u.validate.Struct(&form); err != nil {
		u.fail(firstMessage(err), err)
		return err
	}
	if err := u.dir.ChangePassword(ctx, email, form.NewPassword); err != nil {
		u.fail("Failed to change password", err)
		return err
	}
	u.ok(MsgPasswordChanged)
	return nil
}

// RequestDelete asks for confirmation before deleting the account.
func (u *UserAdmin) RequestDelete(userID string) *DeleteConfirmation {
	return &DeleteConfirmation{
		id: userID,
		run: func(ctx context.Context) error {
			if err := u.dir.DeleteUser(ctx, userID); err != nil {
				u.fail("Failed to delete user", err)
				return err
			}
			u.ok(MsgUserDeleted)
			return nil
		},
	}
}

func (u *UserAdmin) ok(msg string) {
	if u.notify != nil {
		u.notify.Success(msg)
	}
}

func (u *UserAdmin) fail(msg string, err error) {
	u.logger.Warn(msg, "error", err)
	if u.notify != nil {
		u.notify.Error(msg, err)
	}
}

// firstMessage returns the first field message of a validation error.
func firstMessage(err error) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs.First()
	}
	return err.Error()
}
