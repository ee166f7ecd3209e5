package controllers

import (
	"certapp/database"
	"certapp/models"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Course{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/activecourses", GetActiveCourses)
	return app
}

func TestGetActiveCourses(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	courses := []models.Course{
		{Title: "Electrician", IsActive: true},
		{Title: "Fitter", IsActive: true},
		{Title: "Welder", IsActive: false},
		{Title: "Plumber", IsActive: true},
	}
	for i := range courses {
		courses[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(&courses[i]).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/activecourses", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []models.Course
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))

	require.Len(t, listed, 3)
	// newest first, inactive course absent
	assert.Equal(t, "Plumber", listed[0].Title)
	assert.Equal(t, "Fitter", listed[1].Title)
	assert.Equal(t, "Electrician", listed[2].Title)
	for _, course := range listed {
		assert.True(t, course.IsActive)
	}
}

func TestGetActiveCoursesEmpty(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/activecourses", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []models.Course
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Empty(t, listed)
}
