package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/entity"
	"backoffice/internal/repository"
	"backoffice/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	mfaSecrets repository.MFASecretRepository

	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	mfaTokens    MFATokenIssuer
	mfaProvider  MFAProvider
	clock        Clock
	config       AuthConfig
	audit        auditor
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	mfaSecrets repository.MFASecretRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	mfaTokens MFATokenIssuer,
	mfaProvider MFAProvider,
	clock Clock,
	config AuthConfig,
	logger logrus.FieldLogger,
) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		users:        users,
		sessions:     sessions,
		mfaSecrets:   mfaSecrets,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		mfaTokens:    mfaTokens,
		mfaProvider:  mfaProvider,
		clock:        clock,
		config:       config,
		audit:        auditor{logs: securityLogs, logger: logger.WithField("component", "auth_service")},
	}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.audit.record(ctx, nil, nil, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		s.audit.record(ctx, nil, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if s.mfaEnabled() {
		secret, err := s.mfaSecrets.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if secret.Confirmed() {
			mfaToken, expiresIn, err := s.mfaTokens.IssueMFAToken(user.ID)
			if err != nil {
				return nil, err
			}
			return &LoginResult{
				MFARequired:       true,
				MFAToken:          mfaToken,
				MFATokenExpiresIn: int64(expiresIn.Seconds()),
			}, nil
		}
	}

	result, err := s.startSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, &user.ID, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	return result, nil
}

func (s *AuthService) LoginWithMFA(ctx context.Context, input LoginMFAInput) (*LoginResult, error) {
	if !s.mfaEnabled() {
		return nil, ErrMFANotConfigured
	}
	if strings.TrimSpace(input.MFAToken) == "" || strings.TrimSpace(input.Code) == "" {
		return nil, ErrInvalidInput
	}
	userID, err := s.mfaTokens.ParseMFAToken(input.MFAToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	secret, err := s.mfaSecrets.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !secret.Confirmed() {
		return nil, ErrInvalidToken
	}
	if !s.mfaProvider.Validate(secret.Secret, input.Code, s.now()) {
		s.audit.record(ctx, nil, &user.ID, input.IPAddress, entity.MFAFailed, nil)
		return nil, ErrInvalidMFACode
	}

	result, err := s.startSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}
	s.audit.record(ctx, &user.ID, &user.ID, input.IPAddress, entity.LoginSuccess, map[string]any{"mfa": true})
	return result, nil
}

// Authenticate resolves the user and live session behind an access token.
func (s *AuthService) Authenticate(ctx context.Context, userID, sessionID uuid.UUID) (*entity.User, *entity.Session, error) {
	session, err := s.sessions.FindActive(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil || session.UserID != userID || !session.Active(s.now()) {
		return nil, nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}
	return user, session, nil
}

func (s *AuthService) Logout(ctx context.Context, actor Actor, sessionID uuid.UUID) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	s.audit.record(ctx, &actor.UserID, &actor.UserID, actor.IPAddress, entity.Logout, nil)
	return nil
}

// Lock puts the session behind the lockscreen until the password is entered again.
func (s *AuthService) Lock(ctx context.Context, actor Actor, sessionID uuid.UUID) error {
	now := s.now()
	if err := s.sessions.SetLocked(ctx, sessionID, &now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	s.audit.record(ctx, &actor.UserID, &actor.UserID, actor.IPAddress, entity.ScreenLocked, nil)
	return nil
}

func (s *AuthService) Unlock(ctx context.Context, actor Actor, user *entity.User, sessionID uuid.UUID, password string) error {
	if password == "" {
		return ErrInvalidInput
	}
	if user.PasswordHash == nil || !s.passwordHash.Verify(*user.PasswordHash, password) {
		s.audit.record(ctx, &actor.UserID, &user.ID, actor.IPAddress, entity.UnlockFailed, nil)
		return ErrInvalidCredentials
	}
	if err := s.sessions.SetLocked(ctx, sessionID, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	s.audit.record(ctx, &actor.UserID, &user.ID, actor.IPAddress, entity.ScreenUnlocked, nil)
	return nil
}

// ChangePassword replaces the user's password after checking the current one and
// revokes every other session of the user.
func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, user *entity.User, sessionID uuid.UUID, input ChangePasswordInput) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return ErrInvalidInput
	}
	if user.PasswordHash == nil {
		return ErrPasswordNotConfigured
	}
	if !s.passwordHash.Verify(*user.PasswordHash, input.CurrentPassword) {
		return ErrCurrentPassword
	}

	hash, err := s.passwordHash.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	user.PasswordHash = &hash

	if err := s.sessions.RevokeAllByUser(ctx, user.ID, sessionID); err != nil {
		return err
	}
	s.audit.record(ctx, &actor.UserID, &user.ID, actor.IPAddress, entity.PasswordChanged, nil)
	return nil
}

// EnableMFA stores a fresh, unconfirmed TOTP secret and returns its otpauth URL.
func (s *AuthService) EnableMFA(ctx context.Context, user *entity.User) (string, error) {
	if !s.mfaEnabled() {
		return "", ErrMFANotConfigured
	}

	enrollment, err := s.mfaProvider.Enroll(s.mfaIssuer(), user.Email)
	if err != nil {
		return "", err
	}
	if err := s.mfaSecrets.Upsert(ctx, &entity.MFASecret{UserID: user.ID, Secret: enrollment.Secret}); err != nil {
		return "", err
	}
	return enrollment.URL, nil
}

func (s *AuthService) ConfirmMFA(ctx context.Context, actor Actor, userID uuid.UUID, code string) error {
	if !s.mfaEnabled() {
		return ErrMFANotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return ErrInvalidInput
	}
	secret, err := s.mfaSecrets.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if secret == nil {
		return ErrMFANotStarted
	}
	if secret.Confirmed() {
		return nil
	}
	if !s.mfaProvider.Validate(secret.Secret, code, s.now()) {
		return ErrInvalidMFACode
	}
	if err := s.mfaSecrets.Confirm(ctx, userID, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMFANotStarted
		}
		return err
	}
	s.audit.record(ctx, &actor.UserID, &userID, actor.IPAddress, entity.MFAEnabled, nil)
	return nil
}

func (s *AuthService) DisableMFA(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if s.mfaSecrets == nil {
		return nil
	}
	if err := s.mfaSecrets.Delete(ctx, userID); err != nil {
		return err
	}
	s.audit.record(ctx, &actor.UserID, &userID, actor.IPAddress, entity.MFADisabled, nil)
	return nil
}

// MFAStatus reports whether the user has a confirmed second factor.
func (s *AuthService) MFAStatus(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.mfaSecrets == nil {
		return false, nil
	}
	secret, err := s.mfaSecrets.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return secret.Confirmed(), nil
}

func (s *AuthService) startSession(ctx context.Context, user *entity.User, ipAddress, userAgent *string) (*LoginResult, error) {
	now := s.now()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, expiresIn, err := s.accessTokens.IssueAccessToken(*user, session.ID, now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(expiresIn.Seconds()),
	}, nil
}

func (s *AuthService) mfaEnabled() bool {
	return s.mfaProvider != nil && s.mfaSecrets != nil && s.mfaTokens != nil
}

func (s *AuthService) mfaIssuer() string {
	if strings.TrimSpace(s.config.MFAIssuer) == "" {
		return "Backoffice"
	}
	return s.config.MFAIssuer
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.config.SessionTTL > 0 {
		return s.config.SessionTTL
	}
	return 8 * time.Hour
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
