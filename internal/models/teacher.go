package models

import (
	"regexp"
	"strings"
	"time"
)

// Teacher represents a teaching staff member with a system-generated password.
type Teacher struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"size:255" json:"password"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Subjects   string    `gorm:"size:500" json:"subjects"`
	Experience int       `json:"experience"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var nonDigitPattern = regexp.MustCompile(`\D`)

// GenerateTeacherPassword builds the login password assigned to a teacher at
// creation time: the first three characters of the name uppercased ("XXX"
// when the name is empty, the whole name uppercased when shorter) followed by
// the last four digits of the phone number ("0000" when fewer are available).
func GenerateTeacherPassword(name, phone string) string {
	namePart := "XXX"
	switch {
	case len(name) >= 3:
		namePart = strings.ToUpper(name[:3])
	case name != "":
		namePart = strings.ToUpper(name)
	}

	phonePart := "0000"
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if len(digits) >= 4 {
		phonePart = digits[len(digits)-4:]
	}

	return namePart + phonePart
}
