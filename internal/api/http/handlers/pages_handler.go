package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fernwave/chat-service/internal/auth"
	"github.com/fernwave/chat-service/internal/domain"
)

// PagesHandler serves the app-shell routes the gateway guards. The real UI
// lives in a separate frontend; these return the shell state it boots from.
type PagesHandler struct{}

// NewPagesHandler constructs handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "home", "user": displayIdentity(c)})
}

// Chat handles GET /chat/:id.
func (h *PagesHandler) Chat(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "chat", "chat_id": c.Params("id"), "user": displayIdentity(c)})
}

// Login handles GET /login.
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login"})
}

// Register handles GET /register.
func (h *PagesHandler) Register(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "register"})
}

// displayIdentity renders the identity label: guests never see their
// synthetic email, only the generic label.
func displayIdentity(c *fiber.Ctx) fiber.Map {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return fiber.Map{"label": "Guest", "guest": true}
	}
	if domain.IsGuestEmail(claim.Email) {
		return fiber.Map{"label": "Guest", "guest": true}
	}
	return fiber.Map{"label": claim.Email, "guest": false}
}
