package project

import "context"

type StubRepository struct {
	nextId int64
	data   map[int64]Project
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int64]Project{}}
}

func (s *StubRepository) Store(ctx context.Context, userId int, project Project) (int64, error) {
	s.nextId++
	project.Id = s.nextId
	s.data[project.Id] = project
	return project.Id, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id int64) (Project, error) {
	p, ok := s.data[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (s *StubRepository) GetAll(ctx context.Context, userId int, status Status) ([]Project, error) {
	projects := make([]Project, 0, len(s.data))
	for _, p := range s.data {
		if status != "" && p.Status != status {
			continue
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *StubRepository) Update(ctx context.Context, userId int, project Project) error {
	if _, ok := s.data[project.Id]; !ok {
		return ErrNotFound
	}
	s.data[project.Id] = project
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id int64) error {
	if _, ok := s.data[id]; !ok {
		return ErrNotFound
	}
	delete(s.data, id)
	return nil
}
