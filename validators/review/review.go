package reviewValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ReviewBody is the submit/edit request body
type ReviewBody struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func reviewBodyErrors(body *ReviewBody) map[string]string {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "Rating":
			errors["rating"] = "Rating must be between 1 and 5!"
		case "Comment":
			errors["comment"] = "Comment must not exceed 2000 characters!"
		}
	}
	return errors
}

// SubmitReview validates a new review for a course
func SubmitReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(ReviewBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := reviewBodyErrors(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// EditReview validates a review update by its author
func EditReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviewID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || reviewID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Review ID!", nil)
		}

		reqData := new(ReviewBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := reviewBodyErrors(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("reviewID", reviewID)
		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// ReviewID validates a bare review-id path parameter
func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reviewID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || reviewID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Review ID!", nil)
		}

		c.Locals("reviewID", reviewID)
		return c.Next()
	}
}

// ListReviews validates review list pagination
func ListReviews() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 10
		}

		c.Locals("courseID", courseID)
		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
