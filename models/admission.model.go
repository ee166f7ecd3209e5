package models

import "gorm.io/gorm"

// Admission is the student admission record. Its lifecycle is owned by the
// admissions system; this service only reads Email and flips
// CertificateStatus once a certificate has been issued.
type Admission struct {
	gorm.Model
	EnrollmentNumber  string `json:"enrollmentNumber" gorm:"uniqueIndex;not null"`
	StudentName       string `json:"studentName"`
	Email             string `json:"email"`
	CertificateStatus bool   `json:"certificateStatus" gorm:"default:false"`
}
