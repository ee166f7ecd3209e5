package controllers

import (
	"bytes"
	"certapp/config"
	"certapp/database"
	"certapp/models"
	certificateValidator "certapp/validators/certificate"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var certNumberPattern = regexp.MustCompile(`^CERT-\d{6}$`)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Certificate{}, &models.Admission{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/certificate", certificateValidator.SaveCertificate(), SaveCertificate)
	app.Get("/certificate/:enrollmentNo", GetCertificate)
	return app
}

func validPayload(enrollmentNo string) map[string]interface{} {
	return map[string]interface{}{
		"enrollmentNo": enrollmentNo,
		"name":         "Ravi Kumar",
		"tradename":    "Electrician",
		"fatherName":   "Suresh Kumar",
		"motherName":   "Sita Devi",
		"dob":          "2001-06-15",
		"institute":    "Govt ITI Patna",
		"district":     "Patna",
		"state":        "Bihar",
		"year":         "2024",
		"issueDate":    "2024-07-01",
		"place":        "Patna",
	}
}

func postCertificate(t *testing.T, app *fiber.App, payload map[string]interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/certificate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestSaveCertificateFirstIssuance(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	require.NoError(t, db.Create(&models.Admission{
		EnrollmentNumber: "E100",
		StudentName:      "Ravi Kumar",
	}).Error)

	resp, body := postCertificate(t, app, validPayload("E100"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Certificate saved successfully", body["message"])
	assert.Regexp(t, certNumberPattern, body["certificateNumber"])
	assert.NotZero(t, body["id"])

	var cert models.Certificate
	require.NoError(t, db.Where("enrollment_no = ?", "E100").First(&cert).Error)
	assert.Equal(t, body["certificateNumber"], cert.CertificateNumber)
	assert.Equal(t, models.CertificateStatusPublished, cert.Status)

	var admission models.Admission
	require.NoError(t, db.Where("enrollment_number = ?", "E100").First(&admission).Error)
	assert.True(t, admission.CertificateStatus)
}

func TestSaveCertificateUpdateKeepsNumber(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	resp, first := postCertificate(t, app, validPayload("E200"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := validPayload("E200")
	payload["place"] = "Gaya"
	resp, second := postCertificate(t, app, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, first["certificateNumber"], second["certificateNumber"])
	assert.Equal(t, first["id"], second["id"])

	var count int64
	db.Model(&models.Certificate{}).Where("enrollment_no = ?", "E200").Count(&count)
	assert.Equal(t, int64(1), count)

	var cert models.Certificate
	require.NoError(t, db.Where("enrollment_no = ?", "E200").First(&cert).Error)
	assert.Equal(t, "Gaya", cert.Place)
}

func TestSaveCertificateMissingFields(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	requiredFields := []string{
		"enrollmentNo", "name", "tradename", "fatherName", "dob",
		"institute", "year", "issueDate", "place",
	}

	for _, field := range requiredFields {
		payload := validPayload("E300")
		delete(payload, field)

		resp, body := postCertificate(t, app, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Equal(t, field+" is required", body["message"])
	}

	// validation failures must not write anything
	var count int64
	db.Model(&models.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSaveCertificateFirstMissingFieldWins(t *testing.T) {
	app := setupTestApp(t)

	payload := validPayload("E301")
	delete(payload, "name")
	delete(payload, "place")

	resp, body := postCertificate(t, app, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name is required", body["message"])
}

func TestSaveCertificateInvalidDate(t *testing.T) {
	app := setupTestApp(t)

	payload := validPayload("E302")
	payload["dob"] = "not-a-date"

	resp, body := postCertificate(t, app, payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "dob must be a valid date", body["message"])
}

func TestSaveCertificateDuplicateNumberConflict(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	resp, first := postCertificate(t, app, validPayload("E400"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	taken := first["certificateNumber"].(string)

	// force the generator to hand out an already stored number
	original := generateCertificateNumber
	generateCertificateNumber = func(*gorm.DB) (string, error) {
		return taken, nil
	}
	defer func() { generateCertificateNumber = original }()

	resp, body := postCertificate(t, app, validPayload("E401"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Duplicate certificate number. Please retry.", body["message"])

	var count int64
	db.Model(&models.Certificate{}).Where("enrollment_no = ?", "E401").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetCertificate(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := postCertificate(t, app, validPayload("E500"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/certificate/E500", nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/certificate/NOPE", nil)
	getResp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestGeneratorFailureAbortsBeforeWrite(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	original := generateCertificateNumber
	generateCertificateNumber = func(*gorm.DB) (string, error) {
		return "", fmt.Errorf("storage unreachable")
	}
	defer func() { generateCertificateNumber = original }()

	resp, _ := postCertificate(t, app, validPayload("E600"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var count int64
	db.Model(&models.Certificate{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
