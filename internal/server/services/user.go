// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, password reset, and
// issuing/refreshing JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/furari-app/furari/internal/common"
	"github.com/furari-app/furari/internal/dbx"
	"github.com/furari-app/furari/internal/mq"
	"github.com/furari-app/furari/internal/server/auth"
	"github.com/furari-app/furari/internal/server/config"
	"github.com/furari-app/furari/internal/server/models"
	"github.com/furari-app/furari/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// EventPublisher is the slice of mq.Publisher the user service needs.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// resetCodeValidity bounds how long a password reset code stays usable.
const resetCodeValidity = 15 * time.Minute

// UserService provides authentication-related operations:
// - Register: validate and create accounts, mint tokens
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - RequestPasswordReset / ConfirmPasswordReset: one-time reset codes
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	publisher                    EventPublisher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, p EventPublisher, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		publisher:                    p,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register validates the email and password, creates the account, and logs
// the new user in. Validation failures surface before any repository call.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	if err := validateEmail(email); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	var user *models.User
	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		user = u
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, u.ID, tx)
		return genErr
	}); err != nil {
		if errors.Is(err, common.ErrEmailInUse) {
			return nil, nil, common.ErrEmailInUse
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, pair, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// An unknown email yields ErrUserNotFound; a wrong password yields
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, common.ErrorInternal
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}
	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes a single refresh token. A token that is already gone is
// not an error; logout is idempotent.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	repo := s.repomanager.RefreshTokens(s.db)
	if err := repo.Delete(ctx, refreshToken); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// RequestPasswordReset stores a one-time code for the account and hands it
// to the notifier via the message broker. An unknown email is reported so
// the user can correct a typo before waiting on mail that never comes.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return common.ErrorInternal
	}

	code, err := common.MakeRandHexString(16)
	if err != nil {
		return common.ErrorInternal
	}

	expires := time.Now().Add(resetCodeValidity)
	if err := s.repomanager.ResetTokens(s.db).Create(ctx, user.ID, code, resetCodeValidity); err != nil {
		return fmt.Errorf("error storing reset code: %w", err)
	}

	if err := s.publisher.PublishJSON(ctx, mq.RKPasswordResetRequested, mq.PasswordResetRequested{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: expires.Unix(),
	}); err != nil {
		return fmt.Errorf("error publishing reset event: %w", err)
	}
	return nil
}

// ConfirmPasswordReset consumes a reset code, replaces the password, and
// revokes every refresh token the account holds so stolen sessions die
// with the old password.
func (s *UserService) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	token, err := s.repomanager.ResetTokens(s.db).Find(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidCode
		}
		return common.ErrorInternal
	}
	if token.Expires.Before(time.Now()) {
		return common.ErrExpiredCode
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).UpdatePassword(ctx, token.UserID, hash); err != nil {
			return err
		}
		if err := s.repomanager.ResetTokens(tx).Delete(ctx, code); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).DeleteForUser(ctx, token.UserID)
	})
}

// --- helpers below ---

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return common.ErrInvalidEmail
	}
	return nil
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
