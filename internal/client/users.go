// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"

	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/handler/functions"
	"github.com/olegiv/firstsun-go/internal/model"
)

// callFunction posts body to an admin function and decodes the answer.
func (c *Client) callFunction(ctx context.Context, name string, body, out any) error {
	return c.do(ctx, http.MethodPost, handler.RouteFunctions+name, body, out)
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var resp functions.UserListResponse
	if err := c.callFunction(ctx, handler.FunctionListUsers, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// CreateUser creates an account holding a dashboard role. Admin only.
func (c *Client) CreateUser(ctx context.Context, in model.CreateUserInput) (model.User, error) {
	var resp functions.SuccessResponse
	if err := c.callFunction(ctx, handler.FunctionCreateUser, in, &resp); err != nil {
		return model.User{}, err
	}
	if resp.User == nil {
		return model.User{Email: model.NormalizeEmail(in.Email), Roles: []string{in.Role}}, nil
	}
	return *resp.User, nil
}

// ChangePassword sets a new password for the account with email and ends
// all of its sessions. Admin only.
func (c *Client) ChangePassword(ctx context.Context, email, newPassword string) error {
	return c.callFunction(ctx, handler.FunctionChangePassword,
		model.ChangePasswordInput{Email: email, NewPassword: newPassword}, nil)
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.callFunction(ctx, handler.FunctionDeleteUser, model.DeleteUserInput{UserID: userID}, nil)
}

// SetupAdmin asks the server to create the first administrator from its
// configured bootstrap credentials.
func (c *Client) SetupAdmin(ctx context.Context) (functions.SuccessResponse, error) {
	var resp functions.SuccessResponse
	err := c.callFunction(ctx, handler.FunctionSetupAdmin, struct{}{}, &resp)
	return resp, err
}
