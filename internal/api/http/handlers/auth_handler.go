package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fernwave/chat-service/internal/api/dto"
	"github.com/fernwave/chat-service/internal/auth"
	"github.com/fernwave/chat-service/internal/config"
	"github.com/fernwave/chat-service/internal/domain"
	"github.com/fernwave/chat-service/internal/service"
)

// AuthHandler exposes the credential and guest session endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
	flags    config.FeatureFlags
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, flags config.FeatureFlags) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, flags: flags}
}

// Login handles credential sign-in form submissions. The session cookie is
// attached before the success tag is rendered, so a caller observing
// "success" already holds a retrievable token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(dto.ActionResponse{Status: string(domain.StateInvalidData)})
	}

	state, session := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if state == domain.StateSuccess {
		h.sessions.Attach(c, session)
	}
	return c.Status(loginStatusCode(state)).JSON(dto.ActionResponse{Status: string(state)})
}

// Register handles account creation form submissions.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(dto.ActionResponse{Status: string(domain.StateInvalidData)})
	}

	state, session := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if state == domain.StateSuccess {
		h.sessions.Attach(c, session)
	}
	return c.Status(registerStatusCode(state)).JSON(dto.ActionResponse{Status: string(state)})
}

// Guest issues a throwaway session and bounces the caller back to the URL
// they originally requested. Idempotent for existing non-guest sessions.
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	if claim, ok := auth.ClaimFromContext(c); ok && !domain.IsGuestEmail(claim.Email) {
		return c.Redirect(auth.PathHome, fiber.StatusFound)
	}
	if !h.flags.GuestMode {
		return c.Redirect(auth.PathLogin, fiber.StatusFound)
	}

	session, err := h.auth.IssueGuest(c.UserContext())
	if err != nil {
		return err
	}
	h.sessions.Attach(c, session)

	redirectURL := c.Query("redirectUrl")
	if redirectURL == "" {
		redirectURL = auth.PathHome
	}
	return c.Redirect(redirectURL, fiber.StatusFound)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"status": "ok"})
}

func loginStatusCode(state domain.ActionState) int {
	switch state {
	case domain.StateSuccess:
		return http.StatusOK
	case domain.StateInvalidData:
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func registerStatusCode(state domain.ActionState) int {
	switch state {
	case domain.StateSuccess:
		return http.StatusCreated
	case domain.StateInvalidData:
		return http.StatusBadRequest
	case domain.StateUserExists:
		return http.StatusConflict
	case domain.StateRegistrationDisabled:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
