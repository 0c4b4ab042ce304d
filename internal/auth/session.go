package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/repository"
)

// Session cookie names. Outside development the __Secure- prefixed name is
// used, which browsers only accept over HTTPS.
const (
	cookieName       = "session_token"
	secureCookieName = "__Secure-session_token"
)

// ErrNoSession indicates the request carried no session cookie.
var ErrNoSession = errors.New("no session token")

// ErrInvalidCredentials is returned for any credential failure. Unknown
// email and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is a freshly signed token ready to be attached to a response.
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// SessionIssuer establishes sessions. The credential path verifies the
// password against the user store before signing.
type SessionIssuer interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignInGuest(ctx context.Context, email string) (*Session, error)
}

// ClaimDecoder extracts and validates the identity claim carried by a request.
type ClaimDecoder interface {
	Decode(c *fiber.Ctx) (*Claim, error)
}

// SessionManager implements both SessionIssuer and ClaimDecoder over JWT
// cookies.
type SessionManager struct {
	tokens        *TokenManager
	users         repository.UserRepository
	secureCookies bool
	dummyHash     string
}

// NewSessionManager builds the manager. secureCookies should be false only
// in development.
func NewSessionManager(cfg config.AuthConfig, users repository.UserRepository, secureCookies bool) *SessionManager {
	// Burned on unknown emails so that lookup misses and password
	// mismatches take comparable time.
	dummyHash, err := HashPassword(uuid.NewString(), cfg.BcryptCost)
	if err != nil {
		dummyHash = ""
	}
	return &SessionManager{
		tokens:        NewTokenManager(cfg.Secret, cfg.SessionTTLMinutes),
		users:         users,
		secureCookies: secureCookies,
		dummyHash:     dummyHash,
	}
}

// SignIn verifies credentials and returns a signed session.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if m.dummyHash != "" {
			_ = ComparePassword(m.dummyHash, password)
		}
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return m.sign(user.Email)
}

// SignInGuest signs a storeless guest session for the given guest email.
func (m *SessionManager) SignInGuest(_ context.Context, email string) (*Session, error) {
	return m.sign(email)
}

func (m *SessionManager) sign(email string) (*Session, error) {
	token, expiresAt, err := m.tokens.GenerateToken(email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Email: email, ExpiresAt: expiresAt}, nil
}

// Decode reads and validates the session cookie from an inbound request.
func (m *SessionManager) Decode(c *fiber.Ctx) (*Claim, error) {
	raw := c.Cookies(m.CookieName())
	if raw == "" {
		return nil, ErrNoSession
	}
	return m.tokens.ParseToken(raw)
}

// Attach writes the session cookie onto the response so the next request
// carries an identity claim.
func (m *SessionManager) Attach(c *fiber.Ctx, s *Session) {
	c.Cookie(&fiber.Cookie{
		Name:     m.CookieName(),
		Value:    s.Token,
		Expires:  s.ExpiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.CookieName(),
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// CookieName returns the active session cookie name.
func (m *SessionManager) CookieName() string {
	if m.secureCookies {
		return secureCookieName
	}
	return cookieName
}
