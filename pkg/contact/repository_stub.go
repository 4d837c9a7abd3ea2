package contact

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId int64
	data   map[int64]Contact
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Contact{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, contact Contact) (int64, error) {
	s.nextId++
	contact.Id = s.nextId
	s.data[contact.Id] = contact
	return contact.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Contact, error) {
	c, ok := s.data[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return c, nil
}

func (s *StubRepository) GetAll(ctx context.Context, userId int, contactType Type, includeArchived bool) ([]Contact, error) {
	contacts := make([]Contact, 0, len(s.data))
	for _, c := range s.data {
		if contactType != "" && c.Type != contactType {
			continue
		}
		if c.Archived && !includeArchived {
			continue
		}
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })
	return contacts, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, contact Contact) error {
	existing, ok := s.data[contact.Id]
	if !ok {
		return ErrNotFound
	}
	contact.Archived = existing.Archived
	s.data[contact.Id] = contact
	return nil
}

func (s *StubRepository) SetArchived(ctx context.Context, userId int, id int64, archived bool) error {
	c, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	c.Archived = archived
	s.data[id] = c
	return nil
}
