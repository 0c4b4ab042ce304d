package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{Secret: "test-secret", SessionTTLMinutes: 60, BcryptCost: bcrypt.MinCost}
}

func newStubRepoWithUser(t *testing.T, email, password string) *stubUserRepo {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &stubUserRepo{users: map[string]*domain.User{
		email: {ID: "u-1", Email: email, PasswordHash: hash},
	}}
}

func TestSessionManagerSignIn(t *testing.T) {
	repo := newStubRepoWithUser(t, "alice@example.com", "secret1")
	manager := NewSessionManager(testAuthConfig(), repo, false)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := manager.SignIn(context.Background(), "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", session.Email)
		assert.NotEmpty(t, session.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := manager.SignIn(context.Background(), "alice@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		_, err := manager.SignIn(context.Background(), "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionManagerGuestSignIn(t *testing.T) {
	manager := NewSessionManager(testAuthConfig(), &stubUserRepo{users: map[string]*domain.User{}}, false)

	session, err := manager.SignInGuest(context.Background(), "guest-42")
	require.NoError(t, err)
	assert.Equal(t, "guest-42", session.Email)

	claim, err := manager.tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "guest-42", claim.Email)
}

func TestSessionManagerCookieNames(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	assert.Equal(t, "session_token", NewSessionManager(testAuthConfig(), repo, false).CookieName())
	assert.Equal(t, "__Secure-session_token", NewSessionManager(testAuthConfig(), repo, true).CookieName())
}

func TestSessionManagerAttachDecodeRoundTrip(t *testing.T) {
	repo := newStubRepoWithUser(t, "alice@example.com", "secret1")
	manager := NewSessionManager(testAuthConfig(), repo, false)

	app := fiber.New()
	app.Post("/signin", func(c *fiber.Ctx) error {
		session, err := manager.SignIn(c.UserContext(), "alice@example.com", "secret1")
		if err != nil {
			return err
		}
		manager.Attach(c, session)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		claim, err := manager.Decode(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(claim.Email)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/signin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	var token string
	for _, cookie := range cookies {
		if cookie.Name == "session_token" {
			token = cookie.Value
			assert.True(t, cookie.HttpOnly)
		}
	}
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", "session_token="+token)
	resp, err = app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", string(body))
}

func TestSessionManagerDecodeMissingCookie(t *testing.T) {
	manager := NewSessionManager(testAuthConfig(), &stubUserRepo{users: map[string]*domain.User{}}, false)

	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		_, err := manager.Decode(c)
		assert.ErrorIs(t, err, ErrNoSession)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
