package controllers

import (
	"certapp/config"
	"certapp/database"
	"certapp/middleware"
	"certapp/models"
	"certapp/utils"
	certificateValidator "certapp/validators/certificate"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// generateCertificateNumber is swappable in tests to force number collisions
var generateCertificateNumber = utils.GenerateUniqueCertificateNumber

// certificateUpdateColumns is the update set applied when the upsert hits an
// existing enrollment number. certificate_number is deliberately absent so
// the value assigned at creation survives every later update.
var certificateUpdateColumns = []string{
	"name", "father_name", "mother_name", "trade_name", "dob", "institute",
	"profile_image", "district", "state", "year", "issue_date", "place",
	"status", "updated_at",
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite (tests) does not go through the postgres error path
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// SaveCertificate creates or updates the certificate for an enrollment number.
// A certificate number is generated only when no record exists yet; updates
// keep the number assigned at creation.
func SaveCertificate(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCertificate").(*certificateValidator.CertificatePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Existence (not content) of a prior certificate decides the branch
	var existing models.Certificate
	exists := true
	if err := db.Where("enrollment_no = ?", reqData.EnrollmentNo).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
		}
		exists = false
	}

	status := reqData.Status
	if status == "" {
		status = models.CertificateStatusPublished
	}

	cert := models.Certificate{
		EnrollmentNo: reqData.EnrollmentNo,
		Name:         reqData.Name,
		FatherName:   reqData.FatherName,
		MotherName:   reqData.MotherName,
		TradeName:    reqData.TradeName,
		DOB:          datatypes.Date(reqData.DOB),
		Institute:    reqData.Institute,
		ProfileImage: reqData.ProfileImage,
		District:     reqData.District,
		State:        reqData.State,
		Year:         reqData.Year,
		IssueDate:    datatypes.Date(reqData.IssueDate),
		Place:        reqData.Place,
		Status:       status,
	}

	if !exists {
		number, err := generateCertificateNumber(db)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
		}
		cert.CertificateNumber = number
	}

	// Atomic upsert keyed by enrollment_no
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_no"}},
		DoUpdates: clause.AssignmentColumns(certificateUpdateColumns),
	}).Create(&cert).Error; err != nil {
		if isDuplicateKeyError(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Duplicate certificate number. Please retry.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	// Re-read so the response carries the stored id and certificate number
	// regardless of which branch the upsert took
	var saved models.Certificate
	if err := db.Where("enrollment_no = ?", reqData.EnrollmentNo).First(&saved).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	// Best-effort: flip the admission flag. Failure is logged, not reported
	// to the caller; the reconciliation sweep retries it later.
	if err := db.Model(&models.Admission{}).
		Where("enrollment_number = ?", reqData.EnrollmentNo).
		Update("certificate_status", true).Error; err != nil {
		log.Printf("Failed to update admission status for %s: %v", reqData.EnrollmentNo, err)
	}

	if !exists {
		notifyCertificateIssued(db, saved)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":           "Certificate saved successfully",
		"id":                saved.ID,
		"certificateNumber": saved.CertificateNumber,
	})
}

// GetCertificate fetches a certificate by enrollment number
func GetCertificate(c *fiber.Ctx) error {
	enrollmentNo := c.Params("enrollmentNo")

	var cert models.Certificate
	if err := database.Database.Db.Where("enrollment_no = ?", enrollmentNo).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}

// notifyCertificateIssued emails the student on first issuance. The send
// runs in the background and never affects the response.
func notifyCertificateIssued(db *gorm.DB, cert models.Certificate) {
	if config.AppConfig == nil || config.AppConfig.SendGridAPIKey == "" {
		return
	}

	var admission models.Admission
	if err := db.Where("enrollment_number = ?", cert.EnrollmentNo).First(&admission).Error; err != nil {
		return
	}
	if admission.Email == "" {
		return
	}

	go func() {
		if err := utils.SendCertificateEmail(admission.Email, cert.Name, cert.TradeName, cert.CertificateNumber); err != nil {
			log.Printf("Failed to send certificate email to %s: %v", admission.Email, err)
		}
	}()
}
