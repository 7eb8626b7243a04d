// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard holds the client-side state of the content dashboard:
// the signed-in identity with its resolved roles, and one CRUD manager per
// content type. All types are safe for concurrent use.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/model"
)

// Dashboard errors.
var (
	ErrSignInRequired = errors.New("sign in required")
	ErrAccessDenied   = errors.New("access denied: admin or editor role required")
	ErrBusy           = errors.New("another record is being added or edited")
	ErrNoForm         = errors.New("no record is being added or edited")
	ErrAlreadyDone    = errors.New("confirmation already used")
)

// SignInPath is where SignOut navigates to.
const SignInPath = "/auth"

// IdentityProvider is the remote account service. *client.Client
// implements it.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (model.User, error)
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignOut(ctx context.Context, scope string) error
	Refresh(ctx context.Context, refreshToken string) (auth.Session, error)
	GetUser(ctx context.Context) (model.User, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
	SetAccessToken(token string)
}

// TokenStore persists the session between runs.
type TokenStore interface {
	Load() (auth.Session, bool, error)
	Save(sess auth.Session) error
	Clear() error
}

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Notifier shows short success and error messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// ConsoleNotifier prints notifications, successes to Out and errors to Err.
type ConsoleNotifier struct {
	Out io.Writer
	Err io.Writer

	mu sync.Mutex
}

// Success implements Notifier.
func (n *ConsoleNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.Out, msg)
}

// Error implements Notifier.
func (n *ConsoleNotifier) Error(msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil && err.Error() != msg {
		_, _ = fmt.Fprintf(n.Err, "error: %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(n.Err, "error: %s\n", msg)
}

// MemoryTokenStore keeps the session in memory.
type MemoryTokenStore struct {
	mu   sync.Mutex
	sess *auth.Session
}

// Load implements TokenStore.
func (m *MemoryTokenStore) Load() (auth.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return auth.Session{}, false, nil
	}
	return *m.sess, true, nil
}

// Save implements TokenStore.
func (m *MemoryTokenStore) Save(sess auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &sess
	return nil
}

// Clear implements TokenStore.
func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
