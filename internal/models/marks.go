package models

import "time"

// Marks records a result for one student in one subject for a term and year.
// At most one row may exist per (student, subject, term, year).
type Marks struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	StudentID          uint      `gorm:"not null;index" json:"student_id"`
	Student            Student   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SubjectID          uint      `gorm:"not null;index" json:"subject_id"`
	Subject            Subject   `json:"-"`
	MarksObtained      int       `gorm:"not null" json:"marks_obtained"`
	MaxMarks           int       `gorm:"not null;default:100" json:"max_marks"`
	Term               string    `gorm:"size:50" json:"term"`
	Year               int       `gorm:"not null" json:"year"`
	IsRecheckRequested bool      `gorm:"not null;default:false" json:"is_recheck_requested"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Grade maps a percentage to its letter grade. Bands are evaluated top-down,
// first match wins.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// PassStatus reports "PASS" when the percentage clears the pass mark of 40.
func PassStatus(percentage float64) string {
	if percentage >= 40 {
		return "PASS"
	}
	return "FAIL"
}
