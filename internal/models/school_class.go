package models

import "time"

// SchoolClass represents a class (section) students are grouped into.
type SchoolClass struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassName   string    `gorm:"size:50;uniqueIndex;not null" json:"class_name"`
	ClassNumber int       `gorm:"not null" json:"class_number"`
	MaxCapacity int       `gorm:"not null" json:"max_capacity"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	SubjectList string    `gorm:"type:text" json:"subject_list"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
