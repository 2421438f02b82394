package controller

import (
	"github.com/gofiber/fiber/v2"

	"turbolearn-ai-be/internal/constant"
	"turbolearn-ai-be/internal/dto"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ModelConfigs(ctx *fiber.Ctx) error
}

type systemController struct{}

func NewSystemController() ISystemController {
	return &systemController{}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/model-configs", c.ModelConfigs)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:  "UP",
		Service: constant.ServiceName,
	})
}

// ModelConfigs serves the static capability descriptor consumed by the
// frontend tool picker.
func (c *systemController) ModelConfigs(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ModelConfigsResponse{
		ModelData: []dto.ModelConfig{
			{
				Id:          "gpt-4",
				Name:        "GPT-4",
				Description: "Most capable model for complex tasks",
				MaxTokens:   8192,
				IsActive:    true,
			},
		},
		ToolData: []dto.ToolConfig{
			{
				Id:          "note-taking-agent",
				Label:       "Note Taking Agent",
				Description: "Generate structured notes from audio content",
				Icon:        "📝",
				IsActive:    true,
				Category:    "productivity",
			},
			{
				Id:          "quiz-generator",
				Label:       "Quiz Generator",
				Description: "Create quizzes from study material",
				Icon:        "🧠",
				IsActive:    true,
				Category:    "education",
			},
			{
				Id:          "flashcard-creator",
				Label:       "Flashcard Creator",
				Description: "Generate flashcards for memorization",
				Icon:        "📚",
				IsActive:    true,
				Category:    "education",
			},
		},
	})
}
