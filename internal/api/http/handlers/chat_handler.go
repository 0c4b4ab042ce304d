package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fernwave/chat-service/internal/api/dto"
	"github.com/fernwave/chat-service/internal/auth"
	"github.com/fernwave/chat-service/internal/service"
	apperrors "github.com/fernwave/chat-service/pkg/util"
)

// ChatHandler exposes conversation endpoints. All routes sit behind the
// access gateway, so a claim is always present by the time these run.
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chatService}
}

// Send handles POST /api/chat.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "message required")
	}

	chat, reply, err := h.chats.SendMessage(c.UserContext(), claim.Email, req.ChatID, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"chat":  dto.NewChatResponse(chat),
			"reply": dto.NewMessageResponse(reply),
		},
	})
}

// History handles GET /api/history.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	chats, err := h.chats.History(c.UserContext(), claim.Email)
	if err != nil {
		return err
	}

	out := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		out = append(out, dto.NewChatResponse(&chats[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /api/chat/:id.
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	chat, messages, err := h.chats.GetChat(c.UserContext(), claim.Email, c.Params("id"))
	if err != nil {
		return err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.NewMessageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"chat":     dto.NewChatResponse(chat),
			"messages": out,
		},
	})
}

// Delete handles DELETE /api/chat/:id.
func (h *ChatHandler) Delete(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.chats.DeleteChat(c.UserContext(), claim.Email, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
