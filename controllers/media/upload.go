package controllers

import (
	"certapp/middleware"
	"certapp/utils"
	"io"

	"github.com/gofiber/fiber/v2"
)

// UploadImage buffers the uploaded file in memory and passes it through to
// the media host, responding with the hosted URL.
func UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "file is required", nil)
	}

	folder := c.FormValue("folder", "courses")

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}

	url, err := utils.UploadToCloudinary(data, fileHeader.Filename, folder)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded successfully!", fiber.Map{
		"url": url,
	})
}
