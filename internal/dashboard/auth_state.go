// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/firstsun-go/internal/auth"
	"github.com/olegiv/firstsun-go/internal/client"
	"github.com/olegiv/firstsun-go/internal/model"
)

// Event is a session change.
type Event string

// Session change events.
const (
	EventInitialSession Event = "INITIAL_SESSION"
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// Notification texts.
const (
	MsgSignedIn  = "Successfully signed in!"
	MsgSignedUp  = "Account created! You can now sign in."
	MsgSignedOut = "Signed out successfully"
)

// HasAccess reports whether a user with the given roles may use the
// dashboard.
func HasAccess(isAdmin, isEditor bool) bool {
	return model.HasAccess(isAdmin, isEditor)
}

// AuthOptions configures an AuthState.
type AuthOptions struct {
	Provider  IdentityProvider
	Tokens    TokenStore // optional; defaults to memory
	Navigator Navigator  // optional
	Notifier  Notifier   // optional
	Logger    *slog.Logger
}

// AuthState tracks the signed-in user, the session and the dashboard
// roles. Roles are computed after every session change on a separate
// goroutine and read as false until resolved.
type AuthState struct {
	provider IdentityProvider
	tokens   TokenStore
	nav      Navigator
	notify   Notifier
	logger   *slog.Logger

	mu         sync.RWMutex
	user       *model.User
	session    *auth.Session
	isAdmin    bool
	isEditor   bool
	loading    bool
	generation uint64
	rolesDone  chan struct{}
	listeners  []func(Event)
	resumeErr  error
}

// NewAuthState creates a signed-out, loading state. Call Start to resume
// a stored session.
func NewAuthState(opts AuthOptions) *AuthState {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tokens == nil {
		opts.Tokens = &MemoryTokenStore{}
	}
	return &AuthState{
		provider:  opts.Provider,
		tokens:    opts.Tokens,
		nav:       opts.Navigator,
		notify:    opts.Notifier,
		logger:    opts.Logger,
		loading:   true,
		rolesDone: closedChan(),
	}
}

// Subscribe registers fn for session change events. fn runs on the
// goroutine that caused the change, after the state is updated.
func (a *AuthState) Subscribe(fn func(Event)) {
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

// Start resumes the stored session. A session the server rejects is
// removed and the state stays signed out. When the server cannot be
// reached the stored session is kept for the next Start and RequireAccess
// reports the failure.
func (a *AuthState) Start(ctx context.Context) error {
	defer a.setLoading(false)

	sess, ok, err := a.tokens.Load()
	if err != nil {
		a.logger.Warn("failed to load stored session", "error", err)
		return nil
	}
	if !ok || sess.AccessToken == "" {
		return nil
	}

	a.provider.SetAccessToken(sess.AccessToken)
	user, err := a.provider.GetUser(ctx)
	if err != nil && sessionGone(err) && sess.RefreshToken != "" {
		a.logger.Debug("stored access token rejected, refreshing", "error", err)
		refreshed, rerr := a.provider.Refresh(ctx, sess.RefreshToken)
		if rerr == nil {
			sess = refreshed
			user, err = refreshed.User, nil
			a.saveSession(sess)
		} else {
			err = rerr
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		a.provider.SetAccessToken("")
		if !sessionGone(err) {
			a.logger.Warn("could not check stored session", "error", err)
			a.mu.Lock()
			a.resumeErr = err
			a.mu.Unlock()
			return nil
		}
		a.logger.Info("stored session is no longer valid", "error", err)
		if cerr := a.tokens.Clear(); cerr != nil {
			a.logger.Warn("failed to clear stored session", "error", cerr)
		}
		return nil
	}

	sess.User = user
	a.changeSession(EventInitialSession, sess)
	return nil
}

// SignIn opens a session. Failures are notified and returned.
func (a *AuthState) SignIn(ctx context.Context, email, password string) error {
	sess, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		a.notifyError(err.Error(), err)
		return err
	}
	a.saveSession(sess)
	a.changeSession(EventSignedIn, sess)
	a.notifySuccess(MsgSignedIn)
	return nil
}

// SignUp registers an account. The account holds no role and is not
// signed in.
func (a *AuthState) SignUp(ctx context.Context, email, password string) error {
	if _, err := a.provider.SignUp(ctx, email, password); err != nil {
		a.notifyError(err.Error(), err)
		return err
	}
	a.notifySuccess(MsgSignedUp)
	return nil
}

// SignOut clears the local state, ends every session of the user on the
// server, removes the stored token and navigates to the sign-in screen.
// A session the server no longer knows counts as signed out. Other errors
// are notified and returned after the local cleanup.
func (a *AuthState) SignOut(ctx context.Context) error {
	a.mu.Lock()
	a.user = nil
	a.session = nil
	a.isAdmin, a.isEditor = false, false
	a.generation++
	a.rolesDone = closedChan()
	a.mu.Unlock()

	var result error
	if err := a.provider.SignOut(ctx, auth.ScopeGlobal); err != nil && !sessionGone(err) {
		a.logger.Error("sign out failed", "error", err)
		a.notifyError(err.Error(), err)
		result = err
	}

	a.provider.SetAccessToken("")
	if err := a.tokens.Clear(); err != nil {
		a.logger.Warn("failed to clear stored session", "error", err)
	}

	if result == nil {
		a.notifySuccess(MsgSignedOut)
	}
	if a.nav != nil {
		a.nav.Navigate(SignInPath)
	}
	a.emit(EventSignedOut)
	return result
}

// Refresh exchanges the refresh token for a new session.
func (a *AuthState) Refresh(ctx context.Context) error {
	a.mu.RLock()
	sess := a.session
	a.mu.RUnlock()
	if sess == nil {
		return ErrSignInRequired
	}

	next, err := a.provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return err
	}
	a.saveSession(next)
	a.changeSession(EventTokenRefreshed, next)
	return nil
}

// changeSession installs sess, resets the role flags and schedules the
// role checks for the new generation.
func (a *AuthState) changeSession(event Event, sess auth.Session) {
	a.mu.Lock()
	user := sess.User
	a.user = &user
	a.session = &sess
	a.isAdmin, a.isEditor = false, false
	a.loading = false
	a.resumeErr = nil
	a.generation++
	gen := a.generation
	done := make(chan struct{})
	a.rolesDone = done
	a.mu.Unlock()

	go a.resolveRoles(gen, user.ID, done)
	a.emit(event)
}

// resolveRoles runs both role checks concurrently. A failed check counts
// as not holding the role. Results for an older generation are dropped.
func (a *AuthState) resolveRoles(gen uint64, userID string, done chan struct{}) {
	defer close(done)

	var isAdmin, isEditor bool
	g, ctx := errgroup.WithContext(context.Background())
	check := func(role string, dst *bool) {
		g.Go(func() error {
			ok, err := a.provider.HasRole(ctx, userID, role)
			if err != nil {
				a.logger.Warn("role check failed", "user_id", userID, "role", role, "error", err)
				return nil
			}
			*dst = ok
			return nil
		})
	}
	check(model.RoleAdmin, &isAdmin)
	check(model.RoleEditor, &isEditor)
	_ = g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return
	}
	a.isAdmin, a.isEditor = isAdmin, isEditor
}

// WaitRoles blocks until the role checks of the current session finish.
func (a *AuthState) WaitRoles(ctx context.Context) error {
	a.mu.RLock()
	done := a.rolesDone
	a.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// User returns the signed-in user.
func (a *AuthState) User() (model.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return model.User{}, false
	}
	return *a.user, true
}

// Session returns the current session.
func (a *AuthState) Session() (auth.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.session == nil {
		return auth.Session{}, false
	}
	return *a.session, true
}

// IsAdmin reports the resolved admin role.
func (a *AuthState) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isAdmin
}

// IsEditor reports the resolved editor role.
func (a *AuthState) IsEditor() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isEditor
}

// HasAccess reports whether the user may use the dashboard.
func (a *AuthState) HasAccess() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return HasAccess(a.isAdmin, a.isEditor)
}

// IsLoading reports whether the stored session is still being resumed.
func (a *AuthState) IsLoading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// RequireAccess gates dashboard screens.
func (a *AuthState) RequireAccess() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		if a.resumeErr != nil {
			return fmt.Errorf("%w: %w", ErrSignInRequired, a.resumeErr)
		}
		return ErrSignInRequired
	}
	if !HasAccess(a.isAdmin, a.isEditor) {
		return ErrAccessDenied
	}
	return nil
}

func (a *AuthState) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}

func (a *AuthState) saveSession(sess auth.Session) {
	if err := a.tokens.Save(sess); err != nil {
		a.logger.Warn("failed to store session", "error", err)
	}
}

func (a *AuthState) emit(event Event) {
	a.mu.RLock()
	listeners := append([]func(Event){}, a.listeners...)
	a.mu.RUnlock()
	for _, fn := range listeners {
		fn(event)
	}
}

func (a *AuthState) notifySuccess(msg string) {
	if a.notify != nil {
		a.notify.Success(msg)
	}
}

func (a *AuthState) notifyError(msg string, err error) {
	if a.notify != nil {
		a.notify.Error(msg, err)
	}
}

// sessionGone reports whether the server rejected the session, as opposed
// to failing to answer.
func sessionGone(err error) bool {
	return client.IsUnauthorized(err) || client.IsSessionMissing(err) || auth.IsUnauthenticated(err)
}

func closedChan() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}
