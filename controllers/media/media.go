package mediaController

import (
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// Upload ingests a file into the asset store and records its metadata.
// Clients may supply a duration_seconds form field probed during upload.
func Upload(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	asset, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	if durationStr := c.FormValue("duration_seconds"); durationStr != "" {
		if seconds, convErr := strconv.Atoi(durationStr); convErr == nil && seconds >= 0 {
			asset.DurationSeconds = seconds
		}
	}
	if width := c.FormValue("width"); width != "" {
		asset.Width, _ = strconv.Atoi(width)
	}
	if height := c.FormValue("height"); height != "" {
		asset.Height, _ = strconv.Atoi(height)
	}

	if err := database.Database.Db.Create(asset).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record asset!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", asset)
}

// Resolve classifies a media reference and resolves its duration
func Resolve(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Reference string `json:"reference"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	reference := strings.TrimSpace(reqData.Reference)
	if reference == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reference is required!", nil)
	}

	var asset *models.MediaAsset
	if utils.ClassifyMediaReference(reference) == utils.ProviderUploadedAsset {
		ref := strings.TrimPrefix(reference, "/uploads/")
		var found models.MediaAsset
		if err := database.Database.Db.Where("(public_id = ? OR url = ?) AND is_deleted = ?",
			ref, reference, false).First(&found).Error; err == nil {
			asset = &found
		}
	}

	resolution := utils.ResolveMedia(reference, asset)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Media resolved!", resolution)
}
