// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/handler"
	"github.com/olegiv/firstsun-go/internal/handler/api"
	"github.com/olegiv/firstsun-go/internal/model"
)

// SignUp registers an account. It does not sign in.
func (c *Client) SignUp(ctx context.Context, email, password string) (model.User, error) {
	resp, err := getData[api.SignUpResponse](ctx, c, http.MethodPost, handler.RouteAuth+handler.RouteSignUp,
		model.CredentialsInput{Email: email, Password: password})
	return resp.User, err
}

// SignIn opens a session and uses its access token for later requests.
func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	sess, err := getData[auth.Session](ctx, c, http.MethodPost, handler.RouteAuth+handler.RouteSignIn,
		model.CredentialsInput{Email: email, Password: password})
	if err != nil {
		return auth.Session{}, err
	}
	c.SetAccessToken(sess.AccessToken)
	return sess, nil
}

// SignOut ends the current session (scope local) or every session of the
// user (scope global). The access token is dropped either way.
func (c *Client) SignOut(ctx context.Context, scope string) error {
	path := handler.RouteAPI + handler.RouteAuth + handler.RouteSignOut
	if scope != "" {
		path += "?scope=" + url.QueryEscape(scope)
	}
	err := c.do(ctx, http.MethodPost, path, nil, nil)
	c.SetAccessToken("")
	return err
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	sess, err := getData[auth.Session](ctx, c, http.MethodPost, handler.RouteAuth+handler.RouteRefresh,
		api.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return auth.Session{}, err
	}
	c.SetAccessToken(sess.AccessToken)
	return sess, nil
}

// GetUser returns the signed-in user.
func (c *Client) GetUser(ctx context.Context) (model.User, error) {
	return getData[model.User](ctx, c, http.MethodGet, handler.RouteAuth+handler.RouteUser, nil)
}

// HasRole asks the server whether userID holds role.
func (c *Client) HasRole(ctx context.Context, userID, role string) (bool, error) {
	var ok bool
	err := c.do(ctx, http.MethodPost, handler.RouteAPI+handler.RouteHasRole,
		api.HasRoleRequest{UserID: userID, Role: role}, &ok)
	return ok, err
}
