package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/recipehub/internal/common"
	"github.com/dmitrijs2005/recipehub/internal/dbx"
	"github.com/dmitrijs2005/recipehub/internal/logging"
	"github.com/dmitrijs2005/recipehub/internal/obs"
	"github.com/dmitrijs2005/recipehub/internal/server/auth"
	"github.com/dmitrijs2005/recipehub/internal/server/config"
	"github.com/dmitrijs2005/recipehub/internal/server/events"
	"github.com/dmitrijs2005/recipehub/internal/server/models"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// LoginResult is a TokenPair plus the user it was issued for.
type LoginResult struct {
	TokenPair
	User *models.User
}

// AuthService owns user accounts and session tokens.
type AuthService struct {
	repomanager                  repomanager.RepositoryManager
	hasher                       *auth.PasswordHasher
	publisher                    events.Publisher
	logger                       logging.Logger
	tracer                       trace.Tracer
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewAuthService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, p events.Publisher, l logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		repomanager:                  m,
		hasher:                       hasher,
		publisher:                    p,
		logger:                       l.With("module", "auth"),
		tracer:                       obs.Tracer("recipehub/services/auth"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Signup registers a new user. The email is stored normalized; the
// password only as a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	name, err := requireText("name", name, maxNameLength)
	if err != nil {
		return nil, err
	}
	email, err = NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, s.internal(ctx, span, "password hash failed", err)
	}

	u, err := s.repomanager.Users(s.repomanager.Conn()).Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, s.internal(ctx, span, "user create failed", err)
	}

	span.SetAttributes(attribute.String("user.id", u.ID))
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	s.publish(ctx, events.Event{Type: events.UserRegistered, UserID: u.ID})

	return u, nil
}

// Login checks credentials and issues a token pair. Unknown emails and wrong
// passwords both yield common.ErrInvalidCredentials after one bcrypt compare.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	normalized, err := NormalizeEmail(email)
	if err != nil {
		normalized = ""
	}

	var user *models.User
	if normalized != "" {
		user, err = s.repomanager.Users(s.repomanager.Conn()).GetByEmail(ctx, normalized)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, s.internal(ctx, span, "user lookup failed", err)
		}
	}

	var hash []byte
	if user != nil {
		hash = user.PasswordHash
	}

	ok, err := s.hasher.Compare(ctx, hash, password)
	if err != nil {
		return nil, s.internal(ctx, span, "password compare failed", err)
	}
	if !ok || user == nil {
		s.logger.Info(ctx, "login rejected")
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.repomanager.Conn())
	if err != nil {
		return nil, s.internal(ctx, span, "token issue failed", err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Verify returns the user id bound to an access token. It has no side effects.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// Refresh consumes refreshToken and issues a new pair in one transaction.
// A token is accepted at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", common.ErrInvalidToken)
	}

	var pair *TokenPair
	var expired bool
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		rt, err := s.repomanager.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			return err
		}
		if rt.Expired(time.Now()) {
			expired = true
			return nil
		}
		pair, err = s.generateTokenPair(ctx, rt.UserID, tx)
		return err
	})

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: unknown refresh token", common.ErrInvalidToken)
	case err != nil:
		return nil, s.internal(ctx, span, "token refresh failed", err)
	case expired:
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrRefreshTokenExpired)
	}

	return pair, nil
}

// Logout revokes refreshToken. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.repomanager.Conn()).Delete(ctx, refreshToken); err != nil {
		s.logger.Error(ctx, "refresh token revoke failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Me returns the account of userID.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	if !validID(userID) {
		return nil, common.ErrorNotFound
	}
	u, err := s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return u, nil
}

// PurgeExpiredTokens removes refresh tokens that can no longer be used.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repomanager.RefreshTokens(s.repomanager.Conn()).DeleteExpired(ctx, time.Now())
}

func (s *AuthService) generateTokenPair(ctx context.Context, userID string, db dbx.DBTX) (*TokenPair, error) {
	access, expires, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expires}, nil
}

func (s *AuthService) internal(ctx context.Context, span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.Error(ctx, msg, "error", err)
	return internalError(msg, err)
}

func (s *AuthService) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "event publish failed", "event", e.Type, "error", err)
	}
}
