package models

import (
	"gorm.io/gorm"
)

// Student statuses. Payment is admin-writable, completion is
// franchise-admin-writable; the two machines never drive each other.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is a defined payment/completion status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

type Student struct {
	gorm.Model
	Name             string `gorm:"not null" json:"name"`
	CourseID         uint   `gorm:"index;not null" json:"course_id"`
	FranchiseID      uint   `gorm:"index;not null" json:"franchise_id"`
	PaymentStatus    string `gorm:"default:'pending'" json:"payment_status"`
	CompletionStatus string `gorm:"default:'pending'" json:"completion_status"`
	CertificatePath  string `gorm:"default:''" json:"certificate_path"`

	Course    Course `gorm:"foreignKey:CourseID" json:"-"`
	Franchise User   `gorm:"foreignKey:FranchiseID" json:"-"`
}

// CertificateAvailable is derived, never stored: the download link only
// exists once payment and completion are both completed and a
// certificate has been uploaded.
func CertificateAvailable(paymentStatus, completionStatus, certificatePath string) bool {
	return paymentStatus == StatusCompleted &&
		completionStatus == StatusCompleted &&
		certificatePath != ""
}
