package service

import (
	"context"
	"crypto/subtle"

	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/internal/dto"
	apperrors "github.com/schedulebob/auth/internal/errors"
	"github.com/schedulebob/auth/internal/model"
	"github.com/schedulebob/auth/internal/repository"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
	"github.com/schedulebob/auth/pkg/metrics"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AuthService runs login and access token refresh. Each call is one
// transaction over the user and session repositories.
type AuthService struct {
	store     repository.Store
	tokens    *TokenProvider
	passwords *PasswordVerifier
	metrics   metrics.AuthRecorder
}

func NewAuthService(store repository.Store, tokens *TokenProvider, passwords *PasswordVerifier, recorder metrics.AuthRecorder) *AuthService {
	if recorder == nil {
		recorder = metrics.Nop
	}
	return &AuthService{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		metrics:   recorder,
	}
}

// Login checks the credential, issues a token pair and stores it as the
// user's only session, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, constants.ModuleService, "Login")

	logger.InfoWithContext(ctx, "Login attempt").
		String("email", email).
		Log()

	var response *dto.LoginResponse
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByEmail(ctx, email)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}

		if !s.passwords.Matches(password, user.Password) {
			return apperrors.ErrInvalidCredential
		}

		accessToken, err := s.tokens.IssueAccessToken(user.Email, user.Role)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		refreshToken, err := s.tokens.IssueRefreshToken(user.Email)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		now := s.tokens.now()
		if err := tx.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		session, err := tx.Sessions().FindByUserID(ctx, user.ID)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if session == nil {
			session = &model.Session{UserID: user.ID}
		}
		session.AccessToken = accessToken
		session.RefreshToken = refreshToken
		session.IssuedAt = now
		session.ExpiredAt = now.Add(s.tokens.RefreshTTL())
		session.ClientInfo = clientInfo(ctx)

		if err := tx.Sessions().Save(ctx, session); err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		response = &dto.LoginResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    constants.TokenTypeBearer,
		}
		return nil
	})

	s.metrics.RecordLogin(outcome(err))
	if err != nil {
		err = asDomainError(err)
		logFailure(ctx, "login", err, email)
		return nil, err
	}

	logger.LogAuth(email, "login", true, zap.String("request_id", ctxutil.GetRequestID(ctx)))

	return response, nil
}

// RefreshAccessToken issues a new access token for the holder of the
// current refresh token. The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.AccessTokenResponse, error) {
	ctx = ctxutil.NewContextWithRequest(ctx, constants.ModuleService, "RefreshAccessToken")

	var (
		response *dto.AccessTokenResponse
		subject  string
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if !s.tokens.Validate(refreshToken) {
			return apperrors.ErrInvalidToken
		}

		var err error
		subject, err = s.tokens.Subject(refreshToken)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInvalidToken, err)
		}

		user, err := tx.Users().FindByEmail(ctx, subject)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if user == nil {
			return apperrors.ErrUserNotFound
		}

		session, err := tx.Sessions().FindByUserID(ctx, user.ID)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if session == nil {
			return apperrors.ErrSessionNotFound
		}

		if subtle.ConstantTimeCompare([]byte(session.RefreshToken), []byte(refreshToken)) != 1 {
			return apperrors.ErrTokenMismatch
		}

		accessToken, err := s.tokens.IssueAccessToken(user.Email, user.Role)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		session.AccessToken = accessToken
		session.ClientInfo = clientInfo(ctx)
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		response = &dto.AccessTokenResponse{
			AccessToken: accessToken,
			TokenType:   constants.TokenTypeBearer,
		}
		return nil
	})

	s.metrics.RecordRefresh(outcome(err))
	if err != nil {
		err = asDomainError(err)
		logFailure(ctx, "refresh", err, subject)
		return nil, err
	}

	logger.LogAuth(subject, "refresh", true, zap.String("request_id", ctxutil.GetRequestID(ctx)))

	return response, nil
}

func clientInfo(ctx context.Context) datatypes.JSONMap {
	info := ctxutil.ClientInfo(ctx)
	if len(info) == 0 {
		return nil
	}
	return datatypes.JSONMap(info)
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	return apperrors.GetErrorCode(err)
}

// asDomainError wraps errors the transaction itself raised, such as a
// failed commit, so callers only ever see domain errors.
func asDomainError(err error) error {
	if apperrors.IsDomainError(err) {
		return err
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}

// logFailure reports rejected credentials as auth events and anything
// internal as an error with its cause.
func logFailure(ctx context.Context, action string, err error, email string) {
	code := apperrors.GetErrorCode(err)
	if code == apperrors.CodeInternal {
		logger.ErrorWithContext(ctx, "Authentication error").
			String("action", action).
			String("email", email).
			Err(err).
			Log()
		return
	}
	logger.LogAuth(email, action, false,
		zap.String("code", code),
		zap.String("request_id", ctxutil.GetRequestID(ctx)),
	)
}
