package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/calckit/calculator-service/internal/core/domain"
	"github.com/calckit/calculator-service/internal/core/ports"
	"github.com/calckit/calculator-service/internal/core/security"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	// Allowed reports whether the account may attempt a login right now.
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   security.Hasher
	codec    *security.TokenCodec
	throttle LoginThrottle
	activity ports.ActivityRecorder
	tokenTTL time.Duration
	log      zerolog.Logger
}

// NewAuthService wires the credential pipeline. throttle and activity may be
// nil, in which case throttling and the activity trail are skipped.
func NewAuthService(
	repo ports.UserRepository,
	hasher security.Hasher,
	codec *security.TokenCodec,
	throttle LoginThrottle,
	activity ports.ActivityRecorder,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		throttle: throttle,
		activity: activity,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a principal and returns it with a freshly issued token.
// A username or email collision surfaces as the single undifferentiated
// domain.ErrUserExists, regardless of which field collided.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}

	s.record(domain.ActivityEvent{UserID: created.ID, Action: domain.ActivityRegistered})
	s.log.Info().Str("username", created.Username).Msg("user registered")

	return created, token, nil
}

// Login authenticates by username and password. Unknown username and wrong
// password collapse into the same domain.ErrInvalidCredentials so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allowed(ctx, username)
		if err != nil {
			// Degrade open: a throttle outage must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil || !s.hasher.Verify(password, user.PasswordHash) {
		s.noteFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		// Advisory only. The hash keeps verifying under the legacy scheme.
		s.log.Info().Str("username", username).Msg("stored hash uses a legacy scheme, due for rehash")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	s.record(domain.ActivityEvent{UserID: user.ID, Action: domain.ActivityLoggedIn})

	return token, user, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	return s.codec.Issue(security.Claims{"sub": user.Username}, int64(s.tokenTTL.Seconds()))
}

func (s *AuthService) noteFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) record(event domain.ActivityEvent) {
	if s.activity == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.activity.Record(event)
}
