package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akhilesh53/authcore/internal/core/domain"
	"github.com/Akhilesh53/authcore/internal/core/ports"
	"github.com/Akhilesh53/authcore/internal/pkg/metrics"
	"github.com/Akhilesh53/authcore/internal/pkg/token"
)

const minPasswordLength = 8

// Config holds the tunable policy knobs of the auth flows.
type Config struct {
	// ResetTokenTTL is the validity window of a reset token. Defaults to 1h.
	ResetTokenTTL time.Duration
	// ResetURLBase is the link prefix embedded in reset mails; the token is
	// appended as the final path segment.
	ResetURLBase string
	// RequireCurrentPassword makes ChangePassword verify the caller's current
	// password before accepting a new one.
	RequireCurrentPassword bool
}

// AuthService orchestrates the credential store, hasher, session manager,
// and notifier. It owns the authentication and password-reset state machine.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionManager
	notifier ports.Notifier
	cfg      Config
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, sessions ports.SessionManager, notifier ports.Notifier, cfg Config, logger zerolog.Logger) *AuthService {
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates a new account. Registration does not establish a session;
// the user logs in explicitly afterwards.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (string, error) {
	if err := validateEmail(email); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return "", err
	}
	if err := validatePassword(password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("hash password", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
			return "", domain.ErrDuplicateEmail
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("create user", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created.ID, nil
}

// Login transitions Anonymous to Authenticated. Unknown email and wrong
// password yield the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("find user", err)
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, domain.ErrCorruptCredential) {
			// Damaged hash material is an operator problem, not a caller one.
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			s.logger.Error().Str("user_id", user.ID).Msg("stored password hash is unparseable")
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return "", domain.ErrInvalidCredentials
	}

	sessionToken, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("create session", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return sessionToken, nil
}

// Logout destroys the session. Logging out an unknown or already-destroyed
// token is a no-op success.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionToken); err != nil {
		s.logger.Error().Err(err).Msg("session destroy failed")
	}
	return nil
}

// ChangePassword replaces the authenticated caller's password. The stored
// hash is only replaced once the write is confirmed.
func (s *AuthService) ChangePassword(ctx context.Context, sessionToken, currentPassword, newPassword string) error {
	userID, err := s.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return domain.ErrNotAuthenticated
		}
		return domain.DependencyFailure("resolve session", err)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if s.cfg.RequireCurrentPassword {
		user, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return domain.DependencyFailure("find user", err)
		}
		if err := s.hasher.Verify(currentPassword, user.PasswordHash); err != nil {
			return domain.ErrInvalidCredentials
		}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.DependencyFailure("hash password", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return domain.DependencyFailure("update password", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// RequestReset starts the self-service recovery flow. The caller observes the
// same outcome whether or not the email is registered; only a token
// generation or persistence failure is reported, and only as a generic
// dependency failure.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	resetToken, err := token.NewResetToken()
	if err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		return domain.DependencyFailure("generate token", err)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// No token, no mail, same outward outcome.
			metrics.ResetRequestsTotal.WithLabelValues("unknown_email").Inc()
			return nil
		}
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		return domain.DependencyFailure("find user", err)
	}

	expiresAt := time.Now().UTC().Add(s.cfg.ResetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, resetToken, expiresAt); err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		return domain.DependencyFailure("persist token", err)
	}

	// Mail goes out strictly after the token is durable. A dispatch failure
	// leaves the token valid; it is logged and measured but not surfaced.
	if err := s.notifier.Send(ctx, user.Email, "Password reset", s.resetInstructionsBody(resetToken)); err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("mail_failed").Inc()
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("reset mail dispatch failed")
	} else {
		metrics.ResetRequestsTotal.WithLabelValues("sent").Inc()
	}
	s.logger.Info().Str("user_id", user.ID).Time("expires_at", expiresAt).Msg("reset token issued")
	return nil
}

// CompleteReset consumes a reset token and replaces the password. The hash
// swap and the token clear are one store write; the loser of a race on the
// same token observes ErrInvalidOrExpiredToken. The observed design
// auto-authenticates on success, so a session token is returned.
func (s *AuthService) CompleteReset(ctx context.Context, resetToken, newPassword, confirmPassword string) (string, error) {
	now := time.Now().UTC()

	user, err := s.repo.FindByResetToken(ctx, resetToken, now)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.ResetCompletionsTotal.WithLabelValues("invalid_token").Inc()
			return "", domain.ErrInvalidOrExpiredToken
		}
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("find token", err)
	}

	// Mismatch does not consume the token; the user may retry within the
	// remaining window.
	if newPassword != confirmPassword {
		metrics.ResetCompletionsTotal.WithLabelValues("password_mismatch").Inc()
		return "", domain.ErrPasswordMismatch
	}
	if err := validatePassword(newPassword); err != nil {
		metrics.ResetCompletionsTotal.WithLabelValues("invalid_password").Inc()
		return "", err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("hash password", err)
	}

	consumed, err := s.repo.ConsumeResetToken(ctx, resetToken, now, hash)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Lost a race, or the window closed between lookup and consume.
			metrics.ResetCompletionsTotal.WithLabelValues("invalid_token").Inc()
			return "", domain.ErrInvalidOrExpiredToken
		}
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("consume token", err)
	}

	sessionToken, err := s.sessions.Create(ctx, consumed.ID)
	if err != nil {
		// The password change already happened and must stand; the caller
		// simply has to log in manually.
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return "", domain.DependencyFailure("create session", err)
	}

	if err := s.notifier.Send(ctx, consumed.Email, "Your password has been changed", s.resetConfirmationBody(consumed.Email)); err != nil {
		s.logger.Error().Err(err).Str("user_id", consumed.ID).Msg("confirmation mail dispatch failed")
	}

	metrics.ResetCompletionsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return sessionToken, nil
}

// CurrentUser resolves the session and loads its user record.
func (s *AuthService) CurrentUser(ctx context.Context, sessionToken string) (*domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, domain.DependencyFailure("resolve session", err)
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.DependencyFailure("find user", err)
	}
	return user, nil
}

func (s *AuthService) resetInstructionsBody(resetToken string) string {
	return "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
		"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
		fmt.Sprintf("%s/%s\n\n", s.cfg.ResetURLBase, resetToken) +
		"If you did not request this, please ignore this email and your password will remain unchanged.\n"
}

func (s *AuthService) resetConfirmationBody(email string) string {
	return fmt.Sprintf("Hello,\n\nThis is a confirmation that the password for your account %s has just been changed.\n", email)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not well-formed", domain.ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}
