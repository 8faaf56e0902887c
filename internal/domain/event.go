package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event payloads emitted by the job/application/employer subsystems. The
// core never loads those entities itself; payloads carry everything the
// fan-out needs to resolve recipients and render the notification text.

type JobPostedEvent struct {
	JobID      uuid.UUID `json:"job_id" validate:"required"`
	JobTitle   string    `json:"job_title" validate:"required"`
	EmployerID uuid.UUID `json:"employer_id" validate:"required"`
	Company    string    `json:"company"`
}

type ApplicationStatusEvent struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	ApplicantID   uuid.UUID `json:"applicant_id" validate:"required"`
	JobTitle      string    `json:"job_title" validate:"required"`
	Status        string    `json:"status" validate:"required"`
}

type InterviewEvent struct {
	InterviewID uuid.UUID  `json:"interview_id" validate:"required"`
	ApplicantID uuid.UUID  `json:"applicant_id" validate:"required"`
	JobTitle    string     `json:"job_title" validate:"required"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type AssessmentEvent struct {
	AssessmentID uuid.UUID  `json:"assessment_id" validate:"required"`
	AssigneeID   uuid.UUID  `json:"assignee_id" validate:"required"`
	JobTitle     string     `json:"job_title" validate:"required"`
	Score        *float64   `json:"score,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
}

type EmployerModerationEvent struct {
	EmployerUserID uuid.UUID `json:"employer_user_id" validate:"required"`
	AdminID        uuid.UUID `json:"admin_id" validate:"required"`
	Reason         string    `json:"reason,omitempty"`
}
