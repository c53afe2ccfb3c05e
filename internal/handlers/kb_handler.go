package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/havenstead/tenant-assist-be/internal/models"
	"github.com/havenstead/tenant-assist-be/internal/repositories"
)

type KBHandler struct {
	kbRepo repositories.KBRepo
}

func NewKBHandler(repo repositories.KBRepo) *KBHandler {
	return &KBHandler{kbRepo: repo}
}

// KnowledgeBaseRequest is the body for adding an FAQ entry.
type KnowledgeBaseRequest struct {
	Question string   `json:"question" validate:"required,min=5" example:"How do I submit a maintenance request?"`
	Answer   string   `json:"answer" validate:"required,min=5" example:"Open the maintenance page in your portal and describe the issue."`
	Category string   `json:"category" validate:"required" example:"maintenance"`
	Keywords string   `json:"keywords,omitempty" example:"maintenance repair submit request"`
	Tags     []string `json:"tags,omitempty" example:"maintenance,howto"`
}

// ListEntries godoc
// @Summary List knowledge base entries
// @Tags KnowledgeBase
// @Produce json
// @Success 200 {array} models.KnowledgeBaseEntry
// @Security BearerAuth
// @Router /api/knowledge-base [get]
func (h *KBHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.kbRepo.List(c.UserContext(), 200)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch knowledge base",
		})
	}
	return c.JSON(entries)
}

// AddEntry godoc
// @Summary Add a knowledge base entry
// @Description Adds an FAQ entry that the assistant can serve. Keywords is free text used by keyword matching.
// @Tags KnowledgeBase
// @Accept json
// @Produce json
// @Param data body KnowledgeBaseRequest true "Entry"
// @Success 201 {object} models.KnowledgeBaseEntry
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/knowledge-base [post]
func (h *KBHandler) AddEntry(c *fiber.Ctx) error {
	var req KnowledgeBaseRequest
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

	entry := models.KnowledgeBaseEntry{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Keywords: req.Keywords,
		Tags:     pq.StringArray(req.Tags),
		IsActive: true,
	}
	if err := h.kbRepo.Create(c.UserContext(), &entry); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create entry",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// DeleteEntry godoc
// @Summary Delete a knowledge base entry
// @Tags KnowledgeBase
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/knowledge-base/{id} [delete]
func (h *KBHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid entry id format",
		})
	}

	if err := h.kbRepo.Delete(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete entry",
		})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
