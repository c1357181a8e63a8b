package service

import (
	"fmt"
	"log"

	"jobsy/internal/domain"
	"jobsy/internal/mailer"
	"jobsy/internal/models"
	"jobsy/internal/repository"
	"jobsy/internal/ws"
)

// NotificationService persists employer- and candidate-facing notifications
// and mirrors them over the live WebSocket hub and email. Persistence is
// retried once; losing a notification is logged and tolerated, the state
// transition it describes is never rolled back.
type NotificationService struct {
	repo      *repository.NotificationRepository
	employers *repository.EmployerRepository
	users     *repository.UserRepository
	hub       *ws.Hub
	mail      mailer.Mailer
}

func NewNotificationService(repo *repository.NotificationRepository, employers *repository.EmployerRepository,
	users *repository.UserRepository, hub *ws.Hub, mail mailer.Mailer) *NotificationService {
	if mail == nil {
		mail = mailer.Noop{}
	}
	return &NotificationService{repo: repo, employers: employers, users: users, hub: hub, mail: mail}
}

// NotifyJobStatus records a lifecycle notification for the listing's owner.
// The title snapshot keeps the notification readable after soft deletion.
func (s *NotificationService) NotifyJobStatus(l *models.Listing, message string) {
	id := l.ID
	n := &models.EmployerNotification{
		EmployerID:   l.EmployerID,
		ListingID:    &id,
		ListingTitle: l.Title,
		Type:         domain.NotifJobStatusUpdate,
		Message:      message,
	}
	if !s.persistEmployer(n) {
		return
	}
	s.pushToEmployer(l.EmployerID, n)
	s.mailToEmployer(l.EmployerID, l.Title, message)
}

// NotifyNewApplication tells the employer someone applied.
func (s *NotificationService) NotifyNewApplication(l *models.Listing, applicantName string) {
	id := l.ID
	n := &models.EmployerNotification{
		EmployerID:   l.EmployerID,
		ListingID:    &id,
		ListingTitle: l.Title,
		Type:         domain.NotifNewApplication,
		Message:      fmt.Sprintf("%s applied for %q.", applicantName, l.Title),
	}
	if !s.persistEmployer(n) {
		return
	}
	s.pushToEmployer(l.EmployerID, n)
}

// NotifyApplicationStatus tells a candidate their application moved to the
// interview or reserve stage. Guest applications have no account to notify.
func (s *NotificationService) NotifyApplicationStatus(app *models.Application, newStatus string) {
	if app.UserID == nil {
		return
	}
	var message string
	switch newStatus {
	case domain.ApplicationInterview:
		message = fmt.Sprintf("Your application for %q moved to the interview stage.", app.JobTitle)
	case domain.ApplicationReserve:
		message = fmt.Sprintf("Your application for %q was moved to the reserve list.", app.JobTitle)
	default:
		return
	}
	appID := app.ID
	n := &models.CandidateNotification{
		UserID:        *app.UserID,
		ApplicationID: &appID,
		JobTitle:      app.JobTitle,
		CompanyName:   app.JobCompany,
		Type:          domain.NotifApplicationStatus,
		Message:       message,
	}
	err := s.repo.CreateForCandidate(n)
	if err != nil {
		err = s.repo.CreateForCandidate(n)
	}
	if err != nil {
		log.Printf("[notify] %v: candidate %d: %v", domain.ErrNotificationDelivery, *app.UserID, err)
		return
	}
	s.hub.PushToUser(*app.UserID, n)
}

func (s *NotificationService) persistEmployer(n *models.EmployerNotification) bool {
	err := s.repo.CreateForEmployer(n)
	if err != nil {
		err = s.repo.CreateForEmployer(n)
	}
	if err != nil {
		log.Printf("[notify] %v: employer %d: %v", domain.ErrNotificationDelivery, n.EmployerID, err)
		return false
	}
	return true
}

func (s *NotificationService) pushToEmployer(employerID uint, payload interface{}) {
	emp, err := s.employers.GetByID(employerID)
	if err != nil {
		return
	}
	s.hub.PushToUser(emp.UserID, payload)
}

func (s *NotificationService) mailToEmployer(employerID uint, jobTitle, message string) {
	emp, err := s.employers.GetByID(employerID)
	if err != nil {
		return
	}
	u, err := s.users.GetByID(emp.UserID)
	if err != nil {
		return
	}
	if err := s.mail.SendJobStatusEmail(u.Email, jobTitle, message); err != nil {
		log.Printf("[notify] email to %s failed: %v", u.Email, err)
	}
}
