// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/firstsun-go/internal/model"
	"github.com/olegiv/firstsun-go/internal/store"
	"github.com/olegiv/firstsun-go/internal/validation"
)

// refreshTokenBytes is the entropy of a refresh token.
const refreshTokenBytes = 32

// Sign-out scopes.
const (
	ScopeGlobal = "global"
	ScopeLocal  = "local"
)

// EventLogger records audit events. *service.EventService implements it.
type EventLogger interface {
	LogAuthEvent(ctx context.Context, level, message, userID, ipAddress string, metadata map[string]any) error
	LogUserEvent(ctx context.Context, level, message, userID, ipAddress string, metadata map[string]any) error
}

// CountryResolver maps a client IP to an ISO country code. *geoip.Locator
// implements it.
type CountryResolver interface {
	Country(ip string) string
}

// ClientInfo describes the caller that opens a session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Session is the result of a sign-in or refresh.
type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    int64      `json:"expires_at"`
	User         model.User `json:"user"`

	// SessionID is the auth_sessions row behind the tokens.
	SessionID string `json:"-"`
}

// Principal is a verified caller.
type Principal struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

// Options configures a Service.
type Options struct {
	Tokens     *Tokens
	RefreshTTL time.Duration
	Events     EventLogger
	Geo        CountryResolver // optional; adds "country" to sign-in events
	Logger     *slog.Logger
	Validator  *validation.Validator
	Now        func() time.Time
}

// Service manages accounts, roles and sessions.
type Service struct {
	db         *sql.DB
	queries    *store.Queries
	tokens     *Tokens
	validate   *validation.Validator
	events     EventLogger
	geo        CountryResolver
	logger     *slog.Logger
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService creates a Service. Tokens is required.
func NewService(db *sql.DB, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	return &Service{
		db:         db,
		queries:    store.New(db),
		tokens:     opts.Tokens,
		validate:   opts.Validator,
		events:     opts.Events,
		geo:        opts.Geo,
		logger:     opts.Logger,
		refreshTTL: opts.RefreshTTL,
		now:        opts.Now,
	}
}

// SignUp registers an account. No role is granted.
func (s *Service) SignUp(ctx context.Context, email, password string) (model.User, error) {
	in := model.CredentialsInput{Email: email, Password: password}
	if err := s.validate.Struct(&in); err != nil {
		return model.User{}, err
	}
	if err := s.validate.CheckPassword(password); err != nil {
		return model.User{}, err
	}

	var user model.User
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		u, err := s.createUser(ctx, q, in.Email, password)
		if err != nil {
			return err
		}
		user = userFromRow(u, nil)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.logEvent(ctx, model.EventCategoryAuth, model.EventLevelInfo, "User signed up", user.ID, "", map[string]any{"email": user.Email})
	return user, nil
}

// SignIn verifies credentials and opens a new session.
func (s *Service) SignIn(ctx context.Context, email, password string, client ClientInfo) (Session, error) {
	email = model.NormalizeEmail(email)

	u, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logEvent(ctx, model.EventCategoryAuth, model.EventLevelWarning, "Failed login attempt: unknown email", "", client.IPAddress, s.clientMeta(client, map[string]any{"email": email}))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := CheckPassword(password, u.PasswordHash)
	if err != nil || !ok {
		s.logEvent(ctx, model.EventCategoryAuth, model.EventLevelWarning, "Failed login attempt: wrong password", u.ID, client.IPAddress, s.clientMeta(client, map[string]any{"email": email}))
		return Session{}, ErrInvalidCredentials
	}

	if NeedsRehash(u.PasswordHash) {
		if hash, herr := HashPassword(password); herr == nil {
			if _, uerr := s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: hash,
				UpdatedAt:    s.now().UTC(),
				ID:           u.ID,
			}); uerr != nil {
				s.logger.Warn("failed to rehash password", "user_id", u.ID, "error", uerr)
			}
		}
	}

	refresh, err := newOpaqueToken(refreshTokenBytes)
	if err != nil {
		return Session{}, err
	}

	now := s.now().UTC()
	row, err := s.queries.CreateAuthSession(ctx, store.CreateAuthSessionParams{
		ID:               uuid.NewString(),
		UserID:           u.ID,
		RefreshTokenHash: hashToken(refresh),
		UserAgent:        client.UserAgent,
		Device:           DeviceLabel(client.UserAgent),
		IpAddress:        client.IPAddress,
		CreatedAt:        now,
		LastSeenAt:       now,
		ExpiresAt:        now.Add(s.refreshTTL),
	})
	if err != nil {
		return Session{}, fmt.Errorf("creating session: %w", err)
	}

	roles, err := s.queries.ListRolesForUser(ctx, u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("loading roles: %w", err)
	}

	sess, err := s.issue(row.ID, userFromRow(u, roles), refresh)
	if err != nil {
		return Session{}, err
	}

	s.logEvent(ctx, model.EventCategoryAuth, model.EventLevelInfo, "User logged in", u.ID, client.IPAddress, s.clientMeta(client, map[string]any{"device": row.Device}))
	return sess, nil
}

// Refresh rotates a refresh token and issues a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrInvalidToken
	}

	row, err := s.queries.GetAuthSessionByRefreshHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("loading session: %w", err)
	}
	now := s.now().UTC()
	if row.RevokedAt.Valid || !row.ExpiresAt.After(now) {
		return Session{}, ErrSessionNotFound
	}

	u, err := s.queries.GetUserByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrUserNotFound
		}
		return Session{}, fmt.Errorf("loading user: %w", err)
	}

	next, err := newOpaqueToken(refreshTokenBytes)
	if err != nil {
		return Session{}, err
	}
	n, err := s.queries.RotateAuthSessionRefresh(ctx, store.RotateAuthSessionRefreshParams{
		RefreshTokenHash: hashToken(next),
		LastSeenAt:       now,
		ExpiresAt:        now.Add(s.refreshTTL),
		ID:               row.ID,
	})
	if err != nil {
		return Session{}, fmt.Errorf("rotating refresh token: %w", err)
	}
	if n == 0 {
		return Session{}, ErrSessionNotFound
	}

	roles, err := s.queries.ListRolesForUser(ctx, u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("loading roles: %w", err)
	}
	return s.issue(row.ID, userFromRow(u, roles), next)
}

// SignOut revokes the principal's session, or every session of the user
// when scope is ScopeGlobal.
func (s *Service) SignOut(ctx context.Context, p Principal, scope string) error {
	row, err := s.queries.GetAuthSession(ctx, p.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("loading session: %w", err)
	}
	if row.RevokedAt.Valid || row.UserID != p.UserID {
		return ErrSessionNotFound
	}

	revokedAt := sql.NullTime{Time: s.now().UTC(), Valid: true}
	switch scope {
	case ScopeLocal:
		if _, err := s.queries.RevokeAuthSession(ctx, store.RevokeAuthSessionParams{RevokedAt: revokedAt, ID: row.ID}); err != nil {
			return fmt.Errorf("revoking session: %w", err)
		}
	default:
		if _, err := s.queries.RevokeUserAuthSessions(ctx, store.RevokeUserAuthSessionsParams{RevokedAt: revokedAt, UserID: p.UserID}); err != nil {
			return fmt.Errorf("revoking sessions: %w", err)
		}
	}

	s.logEvent(ctx, model.EventCategoryAuth, model.EventLevelInfo, "User logged out", p.UserID, "", map[string]any{"scope": scope})
	return nil
}

// VerifyAccessToken checks an access token and its bound session.
func (s *Service) VerifyAccessToken(ctx context.Context, token string) (Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Principal{}, err
	}
	p, err := s.SessionPrincipal(ctx, claims.SessionID)
	if err != nil {
		return Principal{}, err
	}
	if p.UserID != claims.UserID {
		return Principal{}, ErrInvalidToken
	}
	p.ExpiresAt = claims.ExpiresAt
	return p, nil
}

// SessionPrincipal resolves a live session id to its principal. It is the
// check behind cookie-authenticated dashboard requests.
func (s *Service) SessionPrincipal(ctx context.Context, sessionID string) (Principal, error) {
	if sessionID == "" {
		return Principal{}, ErrSessionNotFound
	}
	row, err := s.queries.GetAuthSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Principal{}, ErrSessionNotFound
		}
		return Principal{}, fmt.Errorf("loading session: %w", err)
	}
	if row.RevokedAt.Valid || !row.ExpiresAt.After(s.now().UTC()) {
		return Principal{}, ErrSessionNotFound
	}

	u, err := s.queries.GetUserByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Principal{}, ErrUserNotFound
		}
		return Principal{}, fmt.Errorf("loading user: %w", err)
	}

	return Principal{UserID: u.ID, Email: u.Email, SessionID: row.ID, ExpiresAt: row.ExpiresAt}, nil
}

// HasRole reports whether the user holds role.
func (s *Service) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if !model.IsValidRole(role) {
		return false, ErrInvalidRole
	}
	n, err := s.queries.HasUserRole(ctx, store.HasUserRoleParams{UserID: userID, Role: role})
	if err != nil {
		return false, fmt.Errorf("checking role: %w", err)
	}
	return n != 0, nil
}

// Roles returns the roles of a user in name order.
func (s *Service) Roles(ctx context.Context, userID string) ([]string, error) {
	roles, err := s.queries.ListRolesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return roles, nil
}

// GetUser returns a user with roles.
func (s *Service) GetUser(ctx context.Context, userID string) (model.User, error) {
	u, err := s.queries.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("loading user: %w", err)
	}
	roles, err := s.Roles(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return userFromRow(u, roles), nil
}

// ListUsers returns every account with its roles, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	roleRows, err := s.queries.ListAllUserRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	byUser := make(map[string][]string, len(rows))
	for _, r := range roleRows {
		byUser[r.UserID] = append(byUser[r.UserID], r.Role)
	}

	users := make([]model.User, 0, len(rows))
	for _, u := range rows {
		users = append(users, userFromRow(u, byUser[u.ID]))
	}
	return users, nil
}

// CountUsers returns the number of accounts.
func (s *Service) CountUsers(ctx context.Context) (int64, error) {
	return s.queries.CountUsers(ctx)
}

// CreateUser creates an account with a dashboard role.
func (s *Service) CreateUser(ctx context.Context, actorID string, in model.CreateUserInput) (model.User, error) {
	if err := s.validate.Struct(&in); err != nil {
		return model.User{}, err
	}

	var user model.User
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		u, err := s.createUser(ctx, q, in.Email, in.Password)
		if err != nil {
			return err
		}
		if err := q.AddUserRole(ctx, store.AddUserRoleParams{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			Role:      in.Role,
			CreatedAt: s.now().UTC(),
		}); err != nil {
			return fmt.Errorf("granting role: %w", err)
		}
		user = userFromRow(u, []string{in.Role})
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.logEvent(ctx, model.EventCategoryUser, model.EventLevelInfo, "User created", actorID, "",
		map[string]any{"user_id": user.ID, "email": user.Email, "role": in.Role})
	return user, nil
}

// ChangePassword sets a new password for the account with the given email
// and revokes all of its sessions.
func (s *Service) ChangePassword(ctx context.Context, actorID string, in model.ChangePasswordInput) error {
	if err := s.validate.Struct(&in); err != nil {
		return err
	}
	email := model.NormalizeEmail(in.Email)

	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}

	var userID string
	err = store.InTx(ctx, s.db, func(q *store.Queries) error {
		u, err := q.GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("user with email %s not found: %w", email, ErrUserNotFound)
			}
			return fmt.Errorf("loading user: %w", err)
		}
		userID = u.ID

		now := s.now().UTC()
		if _, err := q.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
			PasswordHash: hash,
			UpdatedAt:    now,
			ID:           u.ID,
		}); err != nil {
			return fmt.Errorf("updating password: %w", err)
		}
		if _, err := q.RevokeUserAuthSessions(ctx, store.RevokeUserAuthSessionsParams{
			RevokedAt: sql.NullTime{Time: now, Valid: true},
			UserID:    u.ID,
		}); err != nil {
			return fmt.Errorf("revoking sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logEvent(ctx, model.EventCategoryUser, model.EventLevelInfo, "Password changed", actorID, "",
		map[string]any{"user_id": userID, "email": email})
	return nil
}

// DeleteUser removes an account. Sessions and roles are removed with it.
func (s *Service) DeleteUser(ctx context.Context, actorID string, in model.DeleteUserInput) error {
	if err := s.validate.Struct(&in); err != nil {
		return err
	}
	if in.UserID == actorID {
		return ErrCannotDeleteSelf
	}

	n, err := s.queries.DeleteUser(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	s.logEvent(ctx, model.EventCategoryUser, model.EventLevelInfo, "User deleted", actorID, "",
		map[string]any{"user_id": in.UserID})
	return nil
}

// SetupAdmin creates the first administrator. It fails with ErrAdminExists
// once any admin exists.
func (s *Service) SetupAdmin(ctx context.Context, email, password string) (model.User, error) {
	if email == "" || password == "" {
		return model.User{}, ErrSetupDisabled
	}

	in := model.CreateUserInput{Email: email, Password: password, Role: model.RoleAdmin}
	if err := s.validate.Struct(&in); err != nil {
		return model.User{}, err
	}

	var user model.User
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		admins, err := q.CountUsersWithRole(ctx, model.RoleAdmin)
		if err != nil {
			return fmt.Errorf("counting admins: %w", err)
		}
		if admins > 0 {
			return ErrAdminExists
		}

		u, err := s.createUser(ctx, q, in.Email, in.Password)
		if err != nil {
			return err
		}
		if err := q.AddUserRole(ctx, store.AddUserRoleParams{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			Role:      model.RoleAdmin,
			CreatedAt: s.now().UTC(),
		}); err != nil {
			return fmt.Errorf("granting admin role: %w", err)
		}
		user = userFromRow(u, []string{model.RoleAdmin})
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	s.logEvent(ctx, model.EventCategoryUser, model.EventLevelInfo, "Admin user created", user.ID, "",
		map[string]any{"email": user.Email})
	return user, nil
}

// PurgeSessions deletes expired sessions and sessions revoked before
// olderThan ago.
func (s *Service) PurgeSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	now := s.now().UTC()
	return s.queries.DeleteStaleAuthSessions(ctx, store.DeleteStaleAuthSessionsParams{
		ExpiresAt: now,
		RevokedAt: sql.NullTime{Time: now.Add(-olderThan), Valid: true},
	})
}

func (s *Service) createUser(ctx context.Context, q *store.Queries, email, password string) (store.User, error) {
	if _, err := q.GetUserByEmail(ctx, email); err == nil {
		return store.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("checking email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return store.User{}, err
	}

	now := s.now().UTC()
	u, err := q.CreateUser(ctx, store.CreateUserParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

func (s *Service) issue(sessionID string, user model.User, refresh string) (Session, error) {
	access, exp, err := s.tokens.Issue(user.ID, sessionID, user.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
		ExpiresAt:    exp.Unix(),
		User:         user,
		SessionID:    sessionID,
	}, nil
}

// clientMeta adds the client's country to event metadata when known.
func (s *Service) clientMeta(client ClientInfo, metadata map[string]any) map[string]any {
	if s.geo == nil {
		return metadata
	}
	if country := s.geo.Country(client.IPAddress); country != "" {
		metadata["country"] = country
	}
	return metadata
}

func (s *Service) logEvent(ctx context.Context, category, level, message, userID, ip string, metadata map[string]any) {
	if s.events == nil {
		return
	}
	if category == model.EventCategoryUser {
		_ = s.events.LogUserEvent(ctx, level, message, userID, ip, metadata)
		return
	}
	_ = s.events.LogAuthEvent(ctx, level, message, userID, ip, metadata)
}

func userFromRow(u store.User, roles []string) model.User {
	if roles == nil {
		roles = []string{}
	}
	return model.User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		Roles:     roles,
	}
}
