package courseValidator

import (
	"fmt"
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// SaveTreeRequest is the full Section/Lesson tree submitted by the authoring
// client. Section and lesson order is strictly the index in these slices.
type SaveTreeRequest struct {
	Sections []TreeSection `json:"sections"`
}

type TreeSection struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Lessons     []TreeLesson `json:"lessons"`
}

type TreeLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	IsPreview   bool   `json:"is_preview"`

	Video      *courseModels.VideoPayload      `json:"video,omitempty"`
	Text       *courseModels.TextPayload       `json:"text,omitempty"`
	Quiz       *courseModels.QuizPayload       `json:"quiz,omitempty"`
	Assignment *courseModels.AssignmentPayload `json:"assignment,omitempty"`
}

// ValidateTree checks the structural rules for a tree commit: at least one
// section, valid lesson kinds, a payload matching each kind, and quiz answer
// indexes within the bounds of their options.
func ValidateTree(req *SaveTreeRequest) map[string]string {
	errors := make(map[string]string)

	if len(req.Sections) == 0 {
		errors["sections"] = "At least one section required!"
		return errors
	}

	for si, section := range req.Sections {
		if strings.TrimSpace(section.Title) == "" {
			errors[fmt.Sprintf("sections[%d].title", si)] = "Section title is required!"
		}

		for li, lesson := range section.Lessons {
			key := fmt.Sprintf("sections[%d].lessons[%d]", si, li)

			if strings.TrimSpace(lesson.Title) == "" {
				errors[key+".title"] = "Lesson title is required!"
			}

			if !courseModels.ValidKind(lesson.Kind) {
				errors[key+".kind"] = "Lesson kind must be VIDEO, TEXT, QUIZ or ASSIGNMENT!"
				continue
			}

			switch lesson.Kind {
			case courseModels.LessonVideo:
				if lesson.Video == nil || strings.TrimSpace(lesson.Video.MediaRef) == "" {
					errors[key+".video"] = "Video lesson requires a media reference!"
				}
			case courseModels.LessonText:
				if lesson.Text == nil {
					errors[key+".text"] = "Text lesson requires text content!"
				}
			case courseModels.LessonQuiz:
				if lesson.Quiz == nil || len(lesson.Quiz.Questions) == 0 {
					errors[key+".quiz"] = "Quiz lesson requires at least one question!"
					continue
				}
				for qi, question := range lesson.Quiz.Questions {
					qkey := fmt.Sprintf("%s.quiz.questions[%d]", key, qi)
					if len(question.Options) == 0 {
						errors[qkey+".options"] = "Question must have at least one option!"
					}
					if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Options) {
						errors[qkey+".correct_answer_index"] = "Correct answer index is out of bounds!"
					}
				}
			case courseModels.LessonAssignment:
				if lesson.Assignment == nil {
					errors[key+".assignment"] = "Assignment lesson requires assignment details!"
				}
			}
		}
	}

	return errors
}

// SaveTree validates the tree commit request body
func SaveTree() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(SaveTreeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := ValidateTree(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedTree", reqData)
		return c.Next()
	}
}

// GetTree validates the tree load request
func GetTree() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
