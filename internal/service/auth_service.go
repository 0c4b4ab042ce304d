package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/auth"
	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/domain"
	"github.com/fernwave/chat-service/internal/events"
	"github.com/fernwave/chat-service/internal/repository"
	apperrors "github.com/fernwave/chat-service/pkg/util"
)

const guestSequenceKey = "auth:guest:seq"

// AuthService is the credential authenticator. Every outcome maps onto the
// closed ActionState set; no raw error crosses into caller-visible state.
type AuthService struct {
	users      repository.UserRepository
	issuer     auth.SessionIssuer
	flags      config.FeatureFlags
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Issuer     auth.SessionIssuer
	Dispatcher events.Dispatcher
	Redis      *redis.Client
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		issuer:     deps.Issuer,
		flags:      cfg.Features,
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		redis:      deps.Redis,
	}
}

// Login authenticates an existing identity. Bad credentials, unknown users
// and store failures all surface as StateFailed so the login path leaks no
// account-existence information.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.ActionState, *auth.Session) {
	creds, err := auth.ValidateCredentials(email, password)
	if err != nil {
		return domain.StateInvalidData, nil
	}

	session, err := s.issuer.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("login session establishment failed", zap.Error(err))
		}
		return domain.StateFailed, nil
	}

	s.publish(ctx, events.EventUserLoggedIn, creds.Email, nil)
	return domain.StateSuccess, session
}

// Register creates a new user record and establishes a session for it. The
// store is the authority on the unique-email invariant: a uniqueness
// rejection at create time surfaces as StateUserExists, not StateFailed.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.ActionState, *auth.Session) {
	if !s.flags.Registration {
		return domain.StateRegistrationDisabled, nil
	}

	creds, err := auth.ValidateCredentials(email, password)
	if err != nil {
		return domain.StateInvalidData, nil
	}

	if _, err := s.users.GetByEmail(ctx, creds.Email); err == nil {
		return domain.StateUserExists, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Warn("registration lookup failed", zap.Error(err))
		return domain.StateFailed, nil
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		s.logger.Warn("password hashing failed", zap.Error(err))
		return domain.StateFailed, nil
	}

	user := &domain.User{Email: creds.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return domain.StateUserExists, nil
		}
		s.logger.Warn("user creation failed", zap.Error(err))
		return domain.StateFailed, nil
	}

	session, err := s.issuer.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		s.logger.Warn("post-registration session establishment failed", zap.Error(err))
		return domain.StateFailed, nil
	}

	s.publish(ctx, events.EventUserRegistered, creds.Email, nil)
	return domain.StateSuccess, session
}

// IssueGuest mints a throwaway guest identity and signs a session for it.
// The identity is never written to the user store.
func (s *AuthService) IssueGuest(ctx context.Context) (*auth.Session, error) {
	email := fmt.Sprintf("guest-%d", s.nextGuestID(ctx))
	session, err := s.issuer.SignInGuest(ctx, email)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventGuestSessionIssued, email, nil)
	return session, nil
}

// nextGuestID draws from a redis sequence so concurrent issuance stays
// collision-free; without redis it falls back to a timestamp.
func (s *AuthService) nextGuestID(ctx context.Context) int64 {
	if s.redis != nil {
		if n, err := s.redis.Incr(ctx, guestSequenceKey).Result(); err == nil {
			return n
		}
	}
	return time.Now().UnixMilli()
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return apperrors.IsConflict(err)
}
