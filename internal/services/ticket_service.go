package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/models"
)

// TicketService is the read side of the ticket store. Each query takes
// explicit typed parameters; there are no free-form filter maps.
type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

func (s *TicketService) FindByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketService) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *TicketService) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	tickets := make([]models.Ticket, 0)
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("purchased_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
