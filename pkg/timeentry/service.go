package timeentry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobsight/jobsight/internal/utils"
	"github.com/jobsight/jobsight/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// Start opens a new entry for the employee. An already-running entry for the
// same employee is closed at the new entry's start time, so a crew member
// switching projects never has two clocks running.
func (s *Service) Start(ctx context.Context, entry Entry) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if entry.Start.IsZero() {
		entry.Start = s.clock.Now()
	}
	entry.End = nil

	open, err := s.repo.GetOpenByEmployee(ctx, userId, entry.EmployeeId)
	if err == nil {
		open.End = &entry.Start
		if err := s.repo.Update(ctx, userId, open); err != nil {
			return Entry{}, fmt.Errorf("failed to close previous time entry: %w", err)
		}
		log.Debugf("closed running time entry %d for employee %d", open.Id, entry.EmployeeId)
	} else if !errors.Is(err, ErrNotFound) {
		return Entry{}, err
	}

	id, err := s.repo.Store(ctx, userId, entry)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store time entry: %w", err)
	}
	entry.Id = id
	return entry, nil
}

// Stop closes the employee's running entry at the given time (now if zero).
func (s *Service) Stop(ctx context.Context, employeeId int64) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	open, err := s.repo.GetOpenByEmployee(ctx, userId, employeeId)
	if err != nil {
		return Entry{}, err
	}

	end := s.clock.Now()
	open.End = &end
	if err := s.repo.Update(ctx, userId, open); err != nil {
		return Entry{}, err
	}
	return open, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, filter)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}
