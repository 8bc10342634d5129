package models

import (
	"fmt"
	"strings"
	"time"
)

// RecheckStatus is the closed set of states a recheck request moves through.
// A request is created PENDING and transitions to exactly one terminal state.
type RecheckStatus string

const (
	RecheckStatusPending   RecheckStatus = "PENDING"
	RecheckStatusApproved  RecheckStatus = "APPROVED"
	RecheckStatusRejected  RecheckStatus = "REJECTED"
	RecheckStatusCompleted RecheckStatus = "COMPLETED"
)

// ParseRecheckStatus maps a client-supplied string onto a RecheckStatus,
// case-insensitively.
func ParseRecheckStatus(value string) (RecheckStatus, error) {
	switch RecheckStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case RecheckStatusPending:
		return RecheckStatusPending, nil
	case RecheckStatusApproved:
		return RecheckStatusApproved, nil
	case RecheckStatusRejected:
		return RecheckStatusRejected, nil
	case RecheckStatusCompleted:
		return RecheckStatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid recheck status %q", value)
	}
}

// RecheckRequest is a student's request to have a marks row re-evaluated.
type RecheckRequest struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	StudentID   uint          `gorm:"not null;index" json:"student_id"`
	Student     Student       `json:"-"`
	MarksID     uint          `gorm:"not null;index" json:"marks_id"`
	Marks       Marks         `json:"-"`
	Subject     string        `gorm:"size:100;not null" json:"subject"`
	Reason      string        `gorm:"type:text" json:"reason"`
	Status      RecheckStatus `gorm:"size:20;not null;default:PENDING" json:"status"`
	RequestDate time.Time     `json:"request_date"`
	ResolvedAt  *time.Time    `json:"resolved_at"`
	AdminNotes  string        `gorm:"type:text" json:"admin_notes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
