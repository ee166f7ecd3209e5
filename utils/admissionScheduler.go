package utils

import (
	"certapp/database"
	"certapp/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[ADMISSION-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileAdmissionStatus flips certificate_status on every admission whose
// enrollment number already has a certificate but whose flag is still false.
// The flag update during issuance is best-effort; this sweep bounds how long
// a missed update can stay inconsistent.
func ReconcileAdmissionStatus() {
	db := database.Database.Db

	result := db.Model(&models.Admission{}).
		Where("certificate_status = ? AND enrollment_number IN (?)",
			false,
			db.Model(&models.Certificate{}).Select("enrollment_no"),
		).
		Update("certificate_status", true)

	if result.Error != nil {
		logScheduler("Error reconciling admission status: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Reconciled admission status for %d record(s)", result.RowsAffected))
	}
}

// InitializeAdmissionScheduler starts the admission reconciliation sweep
func InitializeAdmissionScheduler() *cron.Cron {
	logScheduler("Initializing admission scheduler...")

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		ReconcileAdmissionStatus()
	})
	c.Start()

	logScheduler("Admission scheduler initialized - sweep runs every 5 minutes")
	return c
}
