package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/x986x/CW6/internal/models"
	"github.com/x986x/CW6/internal/rbac"
	"github.com/x986x/CW6/internal/repositories"
	"go.uber.org/zap"
)

type MailingService struct {
	mailingRepo *repositories.MailingRepo
	log         *zap.Logger
}

func NewMailingService(mailingRepo *repositories.MailingRepo, log *zap.Logger) *MailingService {
	return &MailingService{mailingRepo: mailingRepo, log: log}
}

func (s *MailingService) Create(ctx context.Context, userID uuid.UUID, m *models.Mailing) error {
	if !models.IsValidFrequency(m.Frequency) {
		return fmt.Errorf("unknown frequency %q", m.Frequency)
	}
	if m.Status == "" {
		m.Status = models.MailingStatusCreated
	}
	if !models.IsValidMailingStatus(m.Status) {
		return fmt.Errorf("unknown status %q", m.Status)
	}

	m.OwnerID = &userID
	m.EndTime = models.EndTimeFor(m.Frequency, m.StartTime)

	return s.mailingRepo.Create(ctx, m)
}

func (s *MailingService) GetByID(ctx context.Context, id, userID uuid.UUID, role string) (*models.Mailing, error) {
	m, err := s.mailingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(m.OwnerID, userID, role) {
		return nil, fmt.Errorf("mailing not found")
	}
	return m, nil
}

func (s *MailingService) List(ctx context.Context, userID uuid.UUID, role string, f repositories.MailingFilter) ([]models.Mailing, error) {
	if !rbac.CanSeeAll(role) {
		f.OwnerID = &userID
	}
	return s.mailingRepo.List(ctx, f)
}

func (s *MailingService) Update(ctx context.Context, id, userID uuid.UUID, role string, m *models.Mailing) error {
	existing, err := s.mailingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("mailing not found")
	}
	if !canEdit(existing.OwnerID, userID, role) {
		return fmt.Errorf("mailing not found")
	}
	if !models.IsValidFrequency(m.Frequency) {
		return fmt.Errorf("unknown frequency %q", m.Frequency)
	}
	if m.Status == "" {
		m.Status = existing.Status
	}
	if !models.IsValidMailingStatus(m.Status) {
		return fmt.Errorf("unknown status %q", m.Status)
	}

	existing.StartTime = m.StartTime
	existing.Frequency = m.Frequency
	existing.Status = m.Status
	existing.EndTime = models.EndTimeFor(m.Frequency, m.StartTime)

	if err := s.mailingRepo.Save(ctx, existing); err != nil {
		return err
	}
	if m.RecipientIDs != nil {
		return s.mailingRepo.SetRecipients(ctx, id, m.RecipientIDs)
	}
	return nil
}

// ToggleStatus switches a mailing between started and stopped. Owners may
// toggle their own mailings; managers and admins may toggle any.
func (s *MailingService) ToggleStatus(ctx context.Context, id, userID uuid.UUID, role string, activate bool) (*models.Mailing, error) {
	m, err := s.mailingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mailing not found")
	}

	isOwner := m.OwnerID != nil && *m.OwnerID == userID
	if !isOwner && !rbac.HasPermission(role, rbac.PermDisableMailings) {
		return nil, fmt.Errorf("mailing not found")
	}

	if activate {
		m.Status = models.MailingStatusStarted
	} else {
		m.Status = models.MailingStatusStopped
	}
	if err := s.mailingRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MailingService) Delete(ctx context.Context, id, userID uuid.UUID, role string) error {
	existing, err := s.mailingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("mailing not found")
	}
	if !canEdit(existing.OwnerID, userID, role) {
		return fmt.Errorf("mailing not found")
	}
	return s.mailingRepo.Delete(ctx, id)
}

func canView(ownerID *uuid.UUID, userID uuid.UUID, role string) bool {
	if rbac.CanSeeAll(role) {
		return true
	}
	return ownerID != nil && *ownerID == userID
}

func canEdit(ownerID *uuid.UUID, userID uuid.UUID, role string) bool {
	if rbac.HasPermission(role, rbac.PermEditAnyRecord) {
		return true
	}
	return ownerID != nil && *ownerID == userID
}
