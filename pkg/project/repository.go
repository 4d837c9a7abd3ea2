package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	Store(ctx context.Context, userId int, project Project) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Project, error)
	GetAll(ctx context.Context, userId int, status Status) ([]Project, error)
	Update(ctx context.Context, userId int, project Project) error
	Delete(ctx context.Context, userId int, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, project Project) (int64, error) {
	query := `INSERT INTO projects (user_id, customer_id, name, address, status, start_date, end_date, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, project.CustomerId, project.Name, project.Address, project.Status,
		project.StartDate, project.EndDate, project.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Project, error) {
	query := `SELECT id, customer_id, name, address, status, start_date, end_date, notes, created_at
				FROM projects WHERE id = $1 AND user_id = $2`
	var p Project
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&p.Id, &p.CustomerId, &p.Name, &p.Address, &p.Status, &p.StartDate, &p.EndDate, &p.Notes, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get project: %w", err)
		log.Error(err)
		return Project{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, status Status) ([]Project, error) {
	query := `SELECT id, customer_id, name, address, status, start_date, end_date, notes, created_at
				FROM projects
				WHERE user_id = $1 AND ($2 = '' OR status = $2)
				ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, string(status))
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0, 10)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Id, &p.CustomerId, &p.Name, &p.Address, &p.Status, &p.StartDate, &p.EndDate, &p.Notes, &p.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, project Project) error {
	query := `UPDATE projects SET customer_id = $1, name = $2, address = $3, status = $4, start_date = $5, end_date = $6, notes = $7
				WHERE id = $8 AND user_id = $9`
	tag, err := r.db.Exec(ctx, query,
		project.CustomerId, project.Name, project.Address, project.Status,
		project.StartDate, project.EndDate, project.Notes, project.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
