package commands

import (
	"context"
	"log/slog"
	"time"

	"fin-approvals/internal/domain/user"
	reqdto "fin-approvals/internal/handler/dto/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/config"
	"fin-approvals/internal/pkg/errs"
	"fin-approvals/internal/pkg/jwt"
	"fin-approvals/internal/pkg/password"
	"fin-approvals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAccountLocked        = errs.New("account temporarily locked")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest, clientIP string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clk        clock.Clock
	lockCfg    config.RateLimitConfig
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, lockCfg config.RateLimitConfig, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		lockCfg:    lockCfg,
		clk:        clk,
	}
}

// Login authenticates by email and password. Failed attempts are counted per
// account and the account locks for a while once the limit is hit; every
// outcome lands in the auth audit trail.
func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest, clientIP string) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	email := credentials.Email().Value()

	snap, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			a.recordAuthEvent(ctx, nil, email, "login_failed", clientIP)
			// Same error as a password mismatch to prevent user enumeration
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if !snap.Active {
		a.recordAuthEvent(ctx, &snap.ID, email, "login_failed", clientIP)
		return nil, ErrUserInactive
	}
	if snap.LockedUntil != nil && snap.LockedUntil.After(a.clk.Now()) {
		a.recordAuthEvent(ctx, &snap.ID, email, "login_locked", clientIP)
		return nil, ErrAccountLocked
	}

	if err := password.ComparePassword(snap.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, a.handleFailedPassword(ctx, snap, email, clientIP)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().ResetFailedLogins(ctx, tx.DB(), snap.ID); err != nil {
			return err
		}
		if err := tx.Users().UpdateLastLogin(ctx, tx.DB(), snap.ID); err != nil {
			return err
		}
		return tx.Events().AddAuthEvent(ctx, tx.DB(), &snap.ID, email, "login_succeeded", clientIP)
	})
	if err != nil {
		slog.Warn("failed to record successful login", "user_id", snap.ID, "error", err.Error())
		// Login still succeeds; only the bookkeeping write failed
	}

	pair, err := a.generatePair(snap.ID, snap.Role, snap.DivisionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: snap.ID, Role: snap.Role, TokenPair: pair}, nil
}

func (a *authCommandsImpl) handleFailedPassword(
	ctx context.Context,
	snap *shared.UserSnapshot,
	email, clientIP string,
) error {
	var lockedUntil *time.Time
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		until, err := tx.Users().RecordFailedLogin(ctx, tx.DB(), snap.ID, a.lockCfg.MaxAttempts, a.lockCfg.LockFor)
		if err != nil {
			return err
		}
		lockedUntil = until
		kind := "login_failed"
		if until != nil {
			kind = "login_locked"
		}
		return tx.Events().AddAuthEvent(ctx, tx.DB(), &snap.ID, email, kind, clientIP)
	})
	if err != nil {
		slog.Warn("failed to record login failure", "user_id", snap.ID, "error", err.Error())
	}

	if lockedUntil != nil {
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	// Validate user still exists and is active
	snap, err := a.uow.CommandReads().UserByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if !snap.Active {
		return nil, ErrUserInactive
	}

	// Claims are rebuilt from the current row so role or division changes
	// take effect at rotation.
	return a.generatePair(snap.ID, snap.Role, snap.DivisionID)
}

func (a *authCommandsImpl) generatePair(userID uuid.UUID, role user.Role, divisionID *uuid.UUID) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role.String(), divisionID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role.String(), divisionID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (a *authCommandsImpl) recordAuthEvent(ctx context.Context, userID *uuid.UUID, email, kind, clientIP string) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Events().AddAuthEvent(ctx, tx.DB(), userID, email, kind, clientIP)
	})
	if err != nil {
		slog.Warn("failed to record auth event", "kind", kind, "error", err.Error())
	}
}
