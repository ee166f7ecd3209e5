package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CertificateStatusPublished is the default lifecycle status for a saved certificate
const CertificateStatusPublished = "PUBLISHED"

// Certificate represents an issued certificate, keyed by the student's
// admission enrollment number. CertificateNumber is assigned once at
// creation and never changes on later updates.
type Certificate struct {
	gorm.Model
	EnrollmentNo      string         `json:"enrollmentNo" gorm:"uniqueIndex;not null"`
	CertificateNumber string         `json:"certificateNumber" gorm:"unique"`
	Name              string         `json:"name"`
	FatherName        string         `json:"fatherName"`
	MotherName        string         `json:"motherName"`
	TradeName         string         `json:"tradename"`
	DOB               datatypes.Date `json:"dob"`
	Institute         string         `json:"institute"`
	ProfileImage      string         `json:"profileimage"`
	District          string         `json:"district"`
	State             string         `json:"state"`
	Year              string         `json:"year"`
	IssueDate         datatypes.Date `json:"issueDate"`
	Place             string         `json:"place"`
	Status            string         `json:"status" gorm:"default:'PUBLISHED'"`
}
