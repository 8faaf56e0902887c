package event

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"talentboard/internal/domain"
	"talentboard/internal/repository"
	"talentboard/internal/service/email"
	"talentboard/internal/service/notification"
)

// Service translates domain events emitted by the surrounding platform
// (job, application, employer subsystems) into notification fan-outs.
//
// Fan-out is always a best-effort side effect of the primary action: once
// a payload validates, fan-out failures are logged and swallowed so the
// emitting operation can never fail because of them.
type Service interface {
	HandleJobPosted(ctx context.Context, ev domain.JobPostedEvent) error
	HandleApplicationStatus(ctx context.Context, ev domain.ApplicationStatusEvent) error
	HandleInterviewScheduled(ctx context.Context, ev domain.InterviewEvent) error
	HandleInterviewUpdated(ctx context.Context, ev domain.InterviewEvent) error
	HandleInterviewCancelled(ctx context.Context, ev domain.InterviewEvent) error
	HandleAssessmentAssigned(ctx context.Context, ev domain.AssessmentEvent) error
	HandleAssessmentScored(ctx context.Context, ev domain.AssessmentEvent) error
	HandleEmployerApproved(ctx context.Context, ev domain.EmployerModerationEvent) error
	HandleEmployerRejected(ctx context.Context, ev domain.EmployerModerationEvent) error
}

type service struct {
	notifSvc notification.Service
	userRepo repository.UserRepository
	emailSvc email.Service
}

func NewService(notifSvc notification.Service, userRepo repository.UserRepository, emailSvc email.Service) Service {
	return &service{
		notifSvc: notifSvc,
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

func (s *service) HandleJobPosted(ctx context.Context, ev domain.JobPostedEvent) error {
	if ev.JobID == uuid.Nil || ev.JobTitle == "" {
		return domain.ValidationError("job_id and job_title are required")
	}

	message := fmt.Sprintf("A new job has been posted: %s", ev.JobTitle)
	if ev.Company != "" {
		message = fmt.Sprintf("%s at %s", message, ev.Company)
	}

	category := domain.CategoryJobPosted
	input := domain.CreateNotificationInput{
		Title:           "New Job Posted",
		Message:         message,
		Type:            string(domain.NotifRoleTargeted),
		Category:        &category,
		RelatedEntityID: &ev.JobID,
	}

	if _, err := s.notifSvc.NotifyRole(ctx, string(domain.RoleJobSeeker), input, nil); err != nil {
		log.Printf("job-posted fan-out failed for job %s: %v", ev.JobID, err)
	}
	return nil
}

func (s *service) HandleApplicationStatus(ctx context.Context, ev domain.ApplicationStatusEvent) error {
	if ev.ApplicationID == uuid.Nil || ev.ApplicantID == uuid.Nil || ev.Status == "" {
		return domain.ValidationError("application_id, applicant_id and status are required")
	}

	s.notifyUser(ctx, ev.ApplicantID,
		"Application Status Updated",
		fmt.Sprintf("Your application for %s is now %s", ev.JobTitle, ev.Status),
		domain.CategoryStatusUpdate, ev.ApplicationID)
	return nil
}

func (s *service) HandleInterviewScheduled(ctx context.Context, ev domain.InterviewEvent) error {
	if err := validateInterview(ev); err != nil {
		return err
	}

	message := fmt.Sprintf("An interview has been scheduled for %s", ev.JobTitle)
	if ev.ScheduledAt != nil {
		message = fmt.Sprintf("%s on %s", message, ev.ScheduledAt.Format(time.RFC1123))
	}

	s.notifyUser(ctx, ev.ApplicantID, "Interview Scheduled", message, domain.CategoryInterview, ev.InterviewID)
	return nil
}

func (s *service) HandleInterviewUpdated(ctx context.Context, ev domain.InterviewEvent) error {
	if err := validateInterview(ev); err != nil {
		return err
	}

	message := fmt.Sprintf("Your interview for %s has been rescheduled", ev.JobTitle)
	if ev.ScheduledAt != nil {
		message = fmt.Sprintf("%s to %s", message, ev.ScheduledAt.Format(time.RFC1123))
	}

	s.notifyUser(ctx, ev.ApplicantID, "Interview Updated", message, domain.CategoryInterview, ev.InterviewID)
	return nil
}

func (s *service) HandleInterviewCancelled(ctx context.Context, ev domain.InterviewEvent) error {
	if err := validateInterview(ev); err != nil {
		return err
	}

	s.notifyUser(ctx, ev.ApplicantID,
		"Interview Cancelled",
		fmt.Sprintf("Your interview for %s has been cancelled", ev.JobTitle),
		domain.CategoryInterview, ev.InterviewID)
	return nil
}

func (s *service) HandleAssessmentAssigned(ctx context.Context, ev domain.AssessmentEvent) error {
	if err := validateAssessment(ev); err != nil {
		return err
	}

	message := fmt.Sprintf("You have been assigned an assessment for %s", ev.JobTitle)
	if ev.DueAt != nil {
		message = fmt.Sprintf("%s, due %s", message, ev.DueAt.Format(time.RFC1123))
	}

	s.notifyUser(ctx, ev.AssigneeID, "Assessment Assigned", message, domain.CategoryAssessment, ev.AssessmentID)
	return nil
}

func (s *service) HandleAssessmentScored(ctx context.Context, ev domain.AssessmentEvent) error {
	if err := validateAssessment(ev); err != nil {
		return err
	}

	message := fmt.Sprintf("Your assessment for %s has been scored", ev.JobTitle)
	if ev.Score != nil {
		message = fmt.Sprintf("%s: %.1f", message, *ev.Score)
	}

	s.notifyUser(ctx, ev.AssigneeID, "Assessment Scored", message, domain.CategoryAssessment, ev.AssessmentID)
	return nil
}

// HandleEmployerApproved activates the employer's account and notifies
// them. Activation is the durable outcome of the approval; the
// notification, push and email are best-effort side effects.
func (s *service) HandleEmployerApproved(ctx context.Context, ev domain.EmployerModerationEvent) error {
	if ev.EmployerUserID == uuid.Nil || ev.AdminID == uuid.Nil {
		return domain.ValidationError("employer_user_id and admin_id are required")
	}

	if err := s.userRepo.SetActive(ctx, ev.EmployerUserID, true); err != nil {
		return err
	}

	category := domain.CategoryAccount
	input := domain.CreateNotificationInput{
		Title:    "Employer Account Approved",
		Message:  "Your employer account has been approved. You can now post jobs.",
		Type:     string(domain.NotifUserSpecific),
		Category: &category,
	}
	if _, err := s.notifSvc.NotifyUser(ctx, ev.EmployerUserID, input, &ev.AdminID); err != nil {
		log.Printf("employer-approved fan-out failed for user %s: %v", ev.EmployerUserID, err)
	}

	s.sendModerationEmail(ctx, ev.EmployerUserID, true, ev.Reason)
	return nil
}

func (s *service) HandleEmployerRejected(ctx context.Context, ev domain.EmployerModerationEvent) error {
	if ev.EmployerUserID == uuid.Nil || ev.AdminID == uuid.Nil {
		return domain.ValidationError("employer_user_id and admin_id are required")
	}

	message := "Your employer account application was not approved."
	if ev.Reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, ev.Reason)
	}

	category := domain.CategoryAccount
	input := domain.CreateNotificationInput{
		Title:    "Employer Account Rejected",
		Message:  message,
		Type:     string(domain.NotifUserSpecific),
		Category: &category,
	}
	if _, err := s.notifSvc.NotifyUser(ctx, ev.EmployerUserID, input, &ev.AdminID); err != nil {
		log.Printf("employer-rejected fan-out failed for user %s: %v", ev.EmployerUserID, err)
	}

	s.sendModerationEmail(ctx, ev.EmployerUserID, false, ev.Reason)
	return nil
}

func (s *service) notifyUser(ctx context.Context, userID uuid.UUID, title, message, category string, relatedID uuid.UUID) {
	input := domain.CreateNotificationInput{
		Title:           title,
		Message:         message,
		Type:            string(domain.NotifUserSpecific),
		Category:        &category,
		RelatedEntityID: &relatedID,
	}

	if _, err := s.notifSvc.NotifyUser(ctx, userID, input, nil); err != nil {
		log.Printf("fan-out failed for user %s (%s): %v", userID, category, err)
	}
}

func (s *service) sendModerationEmail(ctx context.Context, userID uuid.UUID, approved bool, reason string) {
	if s.emailSvc == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil || user.Email == "" {
		return
	}

	go func(toEmail, fullName string) {
		ctx := context.Background()
		var err error
		if approved {
			err = s.emailSvc.SendEmployerApprovedEmail(ctx, toEmail, fullName)
		} else {
			err = s.emailSvc.SendEmployerRejectedEmail(ctx, toEmail, fullName, reason)
		}
		if err != nil {
			log.Printf("Failed to send employer moderation email to %s: %v", toEmail, err)
		}
	}(user.Email, user.FullName)
}

func validateInterview(ev domain.InterviewEvent) error {
	if ev.InterviewID == uuid.Nil || ev.ApplicantID == uuid.Nil || ev.JobTitle == "" {
		return domain.ValidationError("interview_id, applicant_id and job_title are required")
	}
	return nil
}

func validateAssessment(ev domain.AssessmentEvent) error {
	if ev.AssessmentID == uuid.Nil || ev.AssigneeID == uuid.Nil || ev.JobTitle == "" {
		return domain.ValidationError("assessment_id, assignee_id and job_title are required")
	}
	return nil
}
