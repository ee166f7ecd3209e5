package utils

import (
	"certapp/models"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const certNumberPrefix = "CERT-"

// maxDrawsPerWidth caps the rejection-sampling loop before the generator
// widens the number to the next size.
const maxDrawsPerWidth = 25

// randomCertificateNumber draws a uniform decimal number with exactly
// `digits` digits and prefixes it with the certificate tag.
func randomCertificateNumber(digits int) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) // Create a new random number generator
	min := int64(1)
	for i := 1; i < digits; i++ {
		min *= 10
	}
	max := min*10 - 1
	return fmt.Sprintf("%s%d", certNumberPrefix, min+rng.Int63n(max-min+1))
}

// GenerateUniqueCertificateNumber produces a certificate number not yet
// present in storage: draw a random CERT-XXXXXX candidate, check it against
// the certificate table, retry on collision. After maxDrawsPerWidth
// collisions at 6 digits it falls back to 9 digits. Generation and insert
// are not one transaction, so a concurrent issuance can still race to the
// same number; the unique column surfaces that at write time.
func GenerateUniqueCertificateNumber(db *gorm.DB) (string, error) {
	for _, digits := range []int{6, 9} {
		for attempt := 0; attempt < maxDrawsPerWidth; attempt++ {
			number := randomCertificateNumber(digits)

			var count int64
			if err := db.Model(&models.Certificate{}).
				Where("certificate_number = ?", number).
				Count(&count).Error; err != nil {
				return "", err
			}
			if count == 0 {
				return number, nil
			}
		}
	}
	return "", fmt.Errorf("could not find a free certificate number after repeated collisions")
}
