package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobsight/jobsight/pkg/user"
)

var ErrInvalidType = errors.New("invalid contact type")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, contact Contact) (Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contact{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !contact.Type.IsValid() {
		return Contact{}, ErrInvalidType
	}
	id, err := s.repo.Store(ctx, userId, contact)
	if err != nil {
		return Contact{}, fmt.Errorf("failed to store contact: %w", err)
	}
	contact.Id = id
	return contact, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contact{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) List(ctx context.Context, contactType Type, includeArchived bool) ([]Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if contactType != "" && !contactType.IsValid() {
		return nil, ErrInvalidType
	}
	return s.repo.GetAll(ctx, userId, contactType, includeArchived)
}

func (s *Service) Update(ctx context.Context, contact Contact) (Contact, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Contact{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !contact.Type.IsValid() {
		return Contact{}, ErrInvalidType
	}
	if err := s.repo.Update(ctx, userId, contact); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

func (s *Service) Archive(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SetArchived(ctx, userId, id, true)
}

func (s *Service) Restore(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.SetArchived(ctx, userId, id, false)
}
