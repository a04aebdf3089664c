package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		SaltRound:          4,
		DurationTimeoutSec: 1,
	}

	dsn := fmt.Sprintf("file:treetest%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCreatorCourseRoutes(app)
	courseRoutes.SetupPublicCourseRoutes(app)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 4)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Role: role, Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, "Bearer " + token
}

func createCourse(t *testing.T, db *gorm.DB, creatorID uint) courseModels.Course {
	t.Helper()

	n := atomic.AddInt64(&dbCounter, 1)
	category := models.Category{Name: fmt.Sprintf("Category %d", n), Slug: fmt.Sprintf("cat-%d", n)}
	require.NoError(t, db.Create(&category).Error)

	course := courseModels.Course{
		Title:       "Go Fundamentals",
		Description: "A complete introduction to Go",
		Price:       49.99,
		CategoryID:  category.ID,
		CreatorID:   creatorID,
		Status:      courseModels.StatusDraft,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func saveTree(t *testing.T, app *fiber.App, token string, courseID uint, tree courseValidator.SaveTreeRequest) *fiber.Map {
	t.Helper()

	body, err := json.Marshal(tree)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/creator/course/%d/tree", courseID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var result fiber.Map
	json.NewDecoder(resp.Body).Decode(&result)
	result["_status"] = resp.StatusCode
	return &result
}

func sampleTree() courseValidator.SaveTreeRequest {
	return courseValidator.SaveTreeRequest{
		Sections: []courseValidator.TreeSection{
			{
				Title: "Getting Started",
				Lessons: []courseValidator.TreeLesson{
					{
						Title: "Welcome",
						Kind:  courseModels.LessonText,
						Text:  &courseModels.TextPayload{Content: "Welcome to the course"},
					},
					{
						Title:     "Intro Video",
						Kind:      courseModels.LessonVideo,
						IsPreview: true,
						Video:     &courseModels.VideoPayload{MediaRef: "https://example.com/intro.mp4"},
					},
				},
			},
			{
				Title: "Basics",
				Lessons: []courseValidator.TreeLesson{
					{
						Title: "First Quiz",
						Kind:  courseModels.LessonQuiz,
						Quiz: &courseModels.QuizPayload{
							Questions: []courseModels.QuizQuestion{
								{Prompt: "What keyword declares a function?", Options: []string{"fn", "func", "def"}, CorrectAnswerIndex: 1},
							},
						},
					},
					{
						Title: "Homework",
						Kind:  courseModels.LessonAssignment,
						Assignment: &courseModels.AssignmentPayload{
							Title:        "Write a CLI",
							Instructions: "Build a small command line tool",
							Points:       10,
						},
					},
				},
			},
		},
	}
}

func TestSaveTreeAssignsContiguousOrders(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	result := saveTree(t, app, token, course.ID, sampleTree())
	assert.Equal(t, fiber.StatusOK, (*result)["_status"])

	var sections []courseModels.Section
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("position asc").Find(&sections).Error)
	require.Len(t, sections, 2)
	assert.Equal(t, 1, sections[0].Order)
	assert.Equal(t, 2, sections[1].Order)
	assert.Equal(t, "Getting Started", sections[0].Title)

	for _, section := range sections {
		var lessons []courseModels.Lesson
		require.NoError(t, db.Where("section_id = ?", section.ID).Order("position asc").Find(&lessons).Error)
		require.Len(t, lessons, 2)
		assert.Equal(t, 1, lessons[0].Order)
		assert.Equal(t, 2, lessons[1].Order)
	}
}

func TestSaveTreeReplacesIdentity(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	saveTree(t, app, token, course.ID, sampleTree())

	var before []courseModels.Section
	require.NoError(t, db.Where("course_id = ?", course.ID).Find(&before).Error)

	// Resubmit with sections swapped; orders must follow submission index
	tree := sampleTree()
	tree.Sections[0], tree.Sections[1] = tree.Sections[1], tree.Sections[0]
	result := saveTree(t, app, token, course.ID, tree)
	assert.Equal(t, fiber.StatusOK, (*result)["_status"])

	var after []courseModels.Section
	require.NoError(t, db.Where("course_id = ?", course.ID).Order("position asc").Find(&after).Error)
	require.Len(t, after, 2)
	assert.Equal(t, "Basics", after[0].Title)
	assert.Equal(t, 1, after[0].Order)

	// Wholesale replace discards prior row identity
	for _, old := range before {
		for _, cur := range after {
			assert.NotEqual(t, old.ID, cur.ID)
		}
	}
}

func TestSaveTreeRejectsZeroSections(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	saveTree(t, app, token, course.ID, sampleTree())

	result := saveTree(t, app, token, course.ID, courseValidator.SaveTreeRequest{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, (*result)["_status"])

	// Existing tree must be untouched
	var sectionCount int64
	db.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount)
	assert.Equal(t, int64(2), sectionCount)
}

func TestSaveTreeRejectsOutOfBoundsQuizAnswer(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	tree := courseValidator.SaveTreeRequest{
		Sections: []courseValidator.TreeSection{
			{
				Title: "Quizzes",
				Lessons: []courseValidator.TreeLesson{
					{
						Title: "Bad Quiz",
						Kind:  courseModels.LessonQuiz,
						Quiz: &courseModels.QuizPayload{
							Questions: []courseModels.QuizQuestion{
								{Prompt: "Pick one", Options: []string{"a", "b", "c"}, CorrectAnswerIndex: 4},
							},
						},
					},
				},
			},
		},
	}

	result := saveTree(t, app, token, course.ID, tree)
	assert.Equal(t, fiber.StatusUnprocessableEntity, (*result)["_status"])

	var lessonCount int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ?", course.ID).Count(&lessonCount)
	assert.Equal(t, int64(0), lessonCount)
}

func TestSaveTreeAcceptsSingleOptionQuiz(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	tree := courseValidator.SaveTreeRequest{
		Sections: []courseValidator.TreeSection{
			{
				Title: "Checks",
				Lessons: []courseValidator.TreeLesson{
					{
						Title: "Confirm",
						Kind:  courseModels.LessonQuiz,
						Quiz: &courseModels.QuizPayload{
							Questions: []courseModels.QuizQuestion{
								{Prompt: "Ready to continue?", Options: []string{"Yes"}, CorrectAnswerIndex: 0},
							},
						},
					},
				},
			},
		},
	}

	result := saveTree(t, app, token, course.ID, tree)
	assert.Equal(t, fiber.StatusOK, (*result)["_status"])

	var lessonCount int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ?", course.ID).Count(&lessonCount)
	assert.Equal(t, int64(1), lessonCount)
}

func TestSaveTreeRejectsUnknownKind(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	tree := courseValidator.SaveTreeRequest{
		Sections: []courseValidator.TreeSection{
			{
				Title: "Broken",
				Lessons: []courseValidator.TreeLesson{
					{Title: "Mystery", Kind: "PODCAST"},
				},
			},
		},
	}

	result := saveTree(t, app, token, course.ID, tree)
	assert.Equal(t, fiber.StatusUnprocessableEntity, (*result)["_status"])
}

func TestSaveTreeResolvesVideoMedia(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	result := saveTree(t, app, token, course.ID, sampleTree())
	assert.Equal(t, fiber.StatusOK, (*result)["_status"])

	var lesson courseModels.Lesson
	require.NoError(t, db.Where("course_id = ? AND kind = ?", course.ID, courseModels.LessonVideo).First(&lesson).Error)

	video, err := lesson.Video()
	require.NoError(t, err)
	assert.Equal(t, "external-other", video.Provider)
	assert.Equal(t, 5, video.DurationMinutes)
}

func TestSaveTreeUsesAssetDuration(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	asset := models.MediaAsset{
		PublicID:        "asset-125s",
		URL:             "/uploads/asset-125s.mp4",
		Format:          "mp4",
		DurationSeconds: 125,
		ResourceKind:    "video",
		UploadedBy:      creator.ID,
	}
	require.NoError(t, db.Create(&asset).Error)

	tree := courseValidator.SaveTreeRequest{
		Sections: []courseValidator.TreeSection{
			{
				Title: "Uploads",
				Lessons: []courseValidator.TreeLesson{
					{
						Title: "Uploaded lecture",
						Kind:  courseModels.LessonVideo,
						Video: &courseModels.VideoPayload{MediaRef: "asset-125s"},
					},
				},
			},
		},
	}

	result := saveTree(t, app, token, course.ID, tree)
	assert.Equal(t, fiber.StatusOK, (*result)["_status"])

	var lesson courseModels.Lesson
	require.NoError(t, db.Where("course_id = ?", course.ID).First(&lesson).Error)

	video, err := lesson.Video()
	require.NoError(t, err)
	assert.Equal(t, "uploaded-asset", video.Provider)
	assert.Equal(t, 2, video.DurationMinutes)
}

func TestSaveTreeCourseNotFound(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")

	result := saveTree(t, app, token, 9999, sampleTree())
	assert.Equal(t, fiber.StatusNotFound, (*result)["_status"])
}

func TestSaveTreeNotOwner(t *testing.T) {
	app, db := setupApp(t)
	creator, _ := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	_, otherToken := createUser(t, db, "Mallory", "mallory@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)

	result := saveTree(t, app, otherToken, course.ID, sampleTree())
	assert.Equal(t, fiber.StatusNotFound, (*result)["_status"])
}

func TestGetCourseTree(t *testing.T) {
	app, db := setupApp(t)
	creator, token := createUser(t, db, "Alice", "alice@example.com", "CREATOR")
	course := createCourse(t, db, creator.ID)
	saveTree(t, app, token, course.ID, sampleTree())

	req := httptest.NewRequest("GET", fmt.Sprintf("/creator/course/%d/tree", course.ID), nil)
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	sections := data["sections"].([]interface{})
	assert.Len(t, sections, 2)
}
