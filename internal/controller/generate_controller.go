package controller

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"turbolearn-ai-be/internal/dto"
	"turbolearn-ai-be/internal/pkg/serverutils"
	"turbolearn-ai-be/internal/service"
	"turbolearn-ai-be/pkg/ingest"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Notes(ctx *fiber.Ctx) error
	Quiz(ctx *fiber.Ctx) error
	Flashcards(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	DetectIntent(ctx *fiber.Ctx) error
}

type generateController struct {
	generateService service.IGenerateService
}

func NewGenerateController(generateService service.IGenerateService) IGenerateController {
	return &generateController{
		generateService: generateService,
	}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate")
	h.Post("/notes", c.Notes)
	h.Post("/quiz", c.Quiz)
	h.Post("/flashcards", c.Flashcards)
	h.Post("/summary", c.Summary)

	r.Post("/detect-intent", c.DetectIntent)
}

// Notes accepts either a JSON body (base64 inline uploads, remote refs,
// video URL) or a multipart form with "files" parts.
func (c *generateController) Notes(ctx *fiber.Ctx) error {
	var req dto.GenerateNotesRequest
	var uploads []ingest.Upload

	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := ctx.MultipartForm()
		if err != nil {
			return serverutils.BadRequest("Invalid multipart form")
		}
		req.Prompt = ctx.FormValue("prompt")
		req.VideoURL = ctx.FormValue("videoUrl")

		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				return serverutils.BadRequest(fmt.Sprintf("Cannot read upload %s", fh.Filename))
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return serverutils.BadRequest(fmt.Sprintf("Cannot read upload %s", fh.Filename))
			}
			uploads = append(uploads, ingest.Upload{
				Data:         data,
				OriginalName: fh.Filename,
				MimeType:     fh.Header.Get(fiber.HeaderContentType),
			})
		}
	} else {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.BadRequest("Invalid request body")
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return err
		}
		for _, up := range req.Uploads {
			data, err := base64.StdEncoding.DecodeString(up.Content)
			if err != nil {
				return serverutils.BadRequest(fmt.Sprintf("Upload %s is not valid base64", up.Name))
			}
			uploads = append(uploads, ingest.Upload{
				Data:         data,
				OriginalName: up.Name,
				MimeType:     up.MimeType,
			})
		}
	}

	res, err := c.generateService.GenerateNotes(ctx.Context(), &req, uploads)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *generateController) Quiz(ctx *fiber.Ctx) error {
	var req dto.GenerateFromNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generateService.GenerateQuiz(ctx.Context(), req.Notes)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *generateController) Flashcards(ctx *fiber.Ctx) error {
	var req dto.GenerateFromNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generateService.GenerateFlashcards(ctx.Context(), req.Notes)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *generateController) Summary(ctx *fiber.Ctx) error {
	var req dto.GenerateFromNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generateService.GenerateSummary(ctx.Context(), req.Notes)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *generateController) DetectIntent(ctx *fiber.Ctx) error {
	var req dto.DetectIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.generateService.DetectIntent(req.Message))
}
