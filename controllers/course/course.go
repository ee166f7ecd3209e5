package controllers

import (
	"certapp/database"
	"certapp/middleware"
	"certapp/models"

	"github.com/gofiber/fiber/v2"
)

// GetActiveCourses lists active courses, newest first. The response body is
// a bare JSON array; existing clients depend on that shape.
func GetActiveCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := database.Database.Db.
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return c.Status(fiber.StatusOK).JSON(courses)
}
