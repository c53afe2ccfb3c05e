// Package handlers contains the Fiber HTTP handlers.
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/havenstead/tenant-assist-be/internal/services"
)

var validate = validator.New()

type ChatbotHandler struct {
	chat *services.ChatService
}

func NewChatbotHandler(chat *services.ChatService) *ChatbotHandler {
	return &ChatbotHandler{chat: chat}
}

// MessageRequest is the body for posting a chat message.
type MessageRequest struct {
	Message        string `json:"message" validate:"required,min=1,max=2000" example:"when is my rent due"`
	ConversationID string `json:"conversation_id,omitempty" validate:"omitempty,uuid4"`
}

// FeedbackRequest rates a bot message.
type FeedbackRequest struct {
	MessageID string `json:"message_id" validate:"required,uuid4"`
	Helpful   *bool  `json:"helpful" validate:"required"`
	Feedback  string `json:"feedback,omitempty" validate:"max=1000"`
}

// PostMessage godoc
// @Summary Send a message to the assistant
// @Description Processes one chat turn and returns the assistant's response. Omitting conversation_id continues the tenant's open conversation, creating one if needed.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param data body MessageRequest true "Message"
// @Success 200 {object} services.TurnResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/chatbot/message [post]
func (h *ChatbotHandler) PostMessage(c *fiber.Ctx) error {
	tenantID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var conversationID *uuid.UUID
	if req.ConversationID != "" {
		id, err := uuid.Parse(req.ConversationID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid conversation_id format",
			})
		}
		conversationID = &id
	}

	resp, err := h.chat.HandleMessage(c.UserContext(), tenantID, conversationID, req.Message)
	if errors.Is(err, services.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "conversation not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process message",
		})
	}

	return c.JSON(resp)
}

// GetConversation godoc
// @Summary Get the conversation transcript
// @Description Returns the message history and escalation flag. Without an id query param, returns the tenant's open conversation.
// @Tags Chatbot
// @Produce json
// @Param id query string false "Conversation ID"
// @Success 200 {object} services.ConversationView
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/chatbot/conversation [get]
func (h *ChatbotHandler) GetConversation(c *fiber.Ctx) error {
	tenantID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid user identity",
		})
	}

	var view *services.ConversationView
	if raw := c.Query("id"); raw != "" {
		conversationID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid conversation id format",
			})
		}
		view, err = h.chat.GetConversation(c.UserContext(), tenantID, conversationID)
		if errors.Is(err, services.ErrConversationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "conversation not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch conversation",
			})
		}
	} else {
		view, err = h.chat.ActiveConversation(c.UserContext(), tenantID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch conversation",
			})
		}
	}

	return c.JSON(view)
}

// PutFeedback godoc
// @Summary Rate a bot message
// @Description Stores whether a bot response was helpful. Re-rating a message replaces the previous rating.
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param data body FeedbackRequest true "Feedback"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/chatbot/feedback [put]
func (h *ChatbotHandler) PutFeedback(c *fiber.Ctx) error {
	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	messageID, err := uuid.Parse(req.MessageID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid message_id format",
		})
	}

	if err := h.chat.RecordFeedback(c.UserContext(), messageID, *req.Helpful, req.Feedback); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to record feedback",
		})
	}

	return c.JSON(fiber.Map{"status": "recorded"})
}

// callerID reads the authenticated user's ID set by the auth middleware.
func callerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	return uuid.Parse(raw)
}
