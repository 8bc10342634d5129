package models

import (
	"regexp"
	"strings"
	"time"
)

// Student represents an enrolled student whose results are tracked.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	ClassName string    `gorm:"size:50;not null" json:"class_name"`
	RollNo    string    `gorm:"size:20;uniqueIndex;not null" json:"roll_no"`
	Phone     string    `gorm:"size:20" json:"phone"`
	DOB       string    `gorm:"size:100;column:dob" json:"dob"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dashDatePattern  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// NormalizeDOB rewrites a date-of-birth string into YYYY-MM-DD where the
// input format is recognized. Datetime suffixes (anything from the first "T")
// are stripped first. Unrecognized formats are returned unchanged so that
// previously stored values keep round-tripping.
func NormalizeDOB(dob string) string {
	if dob == "" {
		return dob
	}

	if idx := strings.Index(dob, "T"); idx >= 0 {
		dob = dob[:idx]
	}

	switch {
	case isoDatePattern.MatchString(dob):
		return dob
	case slashDatePattern.MatchString(dob):
		parts := strings.Split(dob, "/")
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	case dashDatePattern.MatchString(dob):
		parts := strings.Split(dob, "-")
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	default:
		return dob
	}
}
