// Package services contains server-side business logic. UserService
// handles registration, login, logout and issuing/refreshing JWTs plus
// server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token issued to UserID.
type TokenPair struct {
	UserID       string `json:"-"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// dummyHash is compared against when the user does not exist so a login
// attempt costs one bcrypt comparison either way.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("pantrykeeper")
	return h
})

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger.With("module", "users"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates an account. Blank credentials yield a
// *common.ValidationError, a taken username common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	var fields []string
	if strings.TrimSpace(username) == "" {
		fields = append(fields, "username")
	}
	if password == "" {
		fields = append(fields, "password")
	}
	if len(fields) > 0 {
		return nil, &common.ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = auth.CheckPassword(dummyHash(), password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "password check failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, user.ID, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired,
// unknown ones ErrorUnauthorized.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expired(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
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

// Logout revokes every refresh token of userID. Access tokens already
// issued stay valid until they expire.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.repomanager.RefreshTokens(s.db).DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking refresh tokens: %w", err)
	}
	s.logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

// UserIDFromAccessToken verifies an access token issued by this service.
func (s *UserService) UserIDFromAccessToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		s.logger.Error(ctx, "storing refresh token failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return &TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}
