package controller

import (
	"time"

	"studybuddy-be/internal/dto"
	"studybuddy-be/internal/pkg/serverutils"
	"studybuddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICardController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
	Due(ctx *fiber.Ctx) error
	QuizResult(ctx *fiber.Ctx) error
}

type cardController struct {
	reviewService service.IReviewService
}

func NewCardController(reviewService service.IReviewService) ICardController {
	return &cardController{
		reviewService: reviewService,
	}
}

func (c *cardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/card/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("due", c.Due)
	h.Post(":id/review", c.Review)
	h.Post("quiz-result", c.QuizResult)
}

func (c *cardController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.CreateCard(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create card", res))
}

func (c *cardController) Review(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.ReviewCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.Review(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success review card", res))
}

func (c *cardController) Due(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	asOf := time.Now()
	if raw := ctx.Query("as_of", ""); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			asOf = parsed
		}
	}

	res, err := c.reviewService.DueCards(ctx.Context(), userId, asOf)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list due cards", res))
}

func (c *cardController) QuizResult(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.QuizResultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.RecordQuizResult(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record quiz result", res))
}
