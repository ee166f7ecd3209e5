package certificateValidator

import (
	"certapp/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CertificatePayload is the validated certificate request body. Dates are
// parsed before the controller runs, so the core logic never sees raw strings.
type CertificatePayload struct {
	EnrollmentNo string `json:"enrollmentNo"`
	Name         string `json:"name"`
	TradeName    string `json:"tradename"`
	FatherName   string `json:"fatherName"`
	MotherName   string `json:"motherName"`
	DOBRaw       string `json:"dob"`
	Institute    string `json:"institute"`
	ProfileImage string `json:"profileimage"`
	District     string `json:"district"`
	State        string `json:"state"`
	Year         string `json:"year"`
	IssueDateRaw string `json:"issueDate"`
	Place        string `json:"place"`
	Status       string `json:"status"`

	DOB       time.Time `json:"-"`
	IssueDate time.Time `json:"-"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SaveCertificate validates the issue-or-update request body. Required
// fields are checked in declared order and only the first failure is
// reported, so clients get a stable error for the same bad payload.
func SaveCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CertificatePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		required := []struct {
			field string
			value string
		}{
			{"enrollmentNo", reqData.EnrollmentNo},
			{"name", reqData.Name},
			{"tradename", reqData.TradeName},
			{"fatherName", reqData.FatherName},
			{"dob", reqData.DOBRaw},
			{"institute", reqData.Institute},
			{"year", reqData.Year},
			{"issueDate", reqData.IssueDateRaw},
			{"place", reqData.Place},
		}

		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, r.field+" is required", nil)
			}
		}

		dob, ok := parseDate(reqData.DOBRaw)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "dob must be a valid date", nil)
		}
		issueDate, ok := parseDate(reqData.IssueDateRaw)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "issueDate must be a valid date", nil)
		}
		reqData.DOB = dob
		reqData.IssueDate = issueDate

		c.Locals("validatedCertificate", reqData)
		return c.Next()
	}
}
