package service

import (
	"context"

	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/repository"
	apperrors "booth-pos-backend/pkg/app_errors"

	"golang.org/x/crypto/bcrypt"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	Update(ctx context.Context, id int, req model.CreateEventRequest) (*model.Event, error)
	UpdateStatus(ctx context.Context, id int, status model.EventStatus) error
	Delete(ctx context.Context, id int) error
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	if req.Name == "" || req.Date == "" {
		return nil, apperrors.ErrInvalidInput
	}

	event := &model.Event{
		Name:      req.Name,
		EventDate: req.Date,
		Location:  req.Location,
		Status:    model.EventStatusUpcoming,
	}

	if req.VendorPassword != nil && *req.VendorPassword != "" {
		hash, err := hashPassword(*req.VendorPassword)
		if err != nil {
			return nil, err
		}
		event.VendorPassword = &hash
	}

	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, id int, req model.CreateEventRequest) (*model.Event, error) {
	params := model.UpdateEventParams{}
	if req.Name != "" {
		params.Name = &req.Name
	}
	if req.Date != "" {
		params.Date = &req.Date
	}
	if req.Location != nil {
		params.Location = req.Location
	}
	if req.VendorPassword != nil && *req.VendorPassword != "" {
		hash, err := hashPassword(*req.VendorPassword)
		if err != nil {
			return nil, err
		}
		params.VendorPassword = &hash
	}

	return s.repo.Update(ctx, id, params)
}

func (s *EventServiceImpl) UpdateStatus(ctx context.Context, id int, status model.EventStatus) error {
	if !status.IsValid() {
		return apperrors.ErrInvalidInput
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
