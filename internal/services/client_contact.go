package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	"workshop-system/pkg/types"
)

type ClientContactServiceInterface interface {
	GetContacts(ctx context.Context, filter types.Filter) ([]entities.ClientContact, uint64, error)
	FindContact(ctx context.Context, id uint64) (*entities.ClientContact, error)
	CreateContact(ctx context.Context, payload dto.CreateClientContactDTO) (*entities.ClientContact, error)
	UpdateContact(ctx context.Context, id uint64, payload dto.UpdateClientContactDTO) (*entities.ClientContact, error)
	DeleteContact(ctx context.Context, id uint64) error
}

type ClientContactService struct {
	contactRepo repositories.ClientContactRepositoryInterface
	logger      *zap.Logger
}

func NewClientContactService(
	contactRepo repositories.ClientContactRepositoryInterface,
	logger *zap.Logger,
) ClientContactServiceInterface {
	return &ClientContactService{contactRepo: contactRepo, logger: logger}
}

func (s *ClientContactService) GetContacts(ctx context.Context, filter types.Filter) ([]entities.ClientContact, uint64, error) {
	return s.contactRepo.GetContacts(ctx, filter)
}

func (s *ClientContactService) FindContact(ctx context.Context, id uint64) (*entities.ClientContact, error) {
	return s.contactRepo.FindContact(ctx, id)
}

func (s *ClientContactService) CreateContact(ctx context.Context, payload dto.CreateClientContactDTO) (*entities.ClientContact, error) {
	return s.contactRepo.CreateContact(ctx, entities.ClientContact{
		ClientName: payload.ClientName,
		Name:       payload.Name,
		Position:   null.StringFromPtr(payload.Position),
		Phone:      null.StringFromPtr(payload.Phone),
		Email:      null.StringFromPtr(payload.Email),
		Notes:      null.StringFromPtr(payload.Notes),
	})
}

func (s *ClientContactService) UpdateContact(ctx context.Context, id uint64, payload dto.UpdateClientContactDTO) (*entities.ClientContact, error) {
	contact, err := s.contactRepo.FindContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.ClientName != nil {
		contact.ClientName = *payload.ClientName
	}
	if payload.Name != nil {
		contact.Name = *payload.Name
	}
	if payload.Position != nil {
		contact.Position = null.StringFromPtr(payload.Position)
	}
	if payload.Phone != nil {
		contact.Phone = null.StringFromPtr(payload.Phone)
	}
	if payload.Email != nil {
		contact.Email = null.StringFromPtr(payload.Email)
	}
	if payload.Notes != nil {
		contact.Notes = null.StringFromPtr(payload.Notes)
	}

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ClientContactService) DeleteContact(ctx context.Context, id uint64) error {
	return s.contactRepo.DeleteContact(ctx, id)
}
