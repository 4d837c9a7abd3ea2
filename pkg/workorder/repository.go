package workorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("work order not found")

type Repository interface {
	Store(ctx context.Context, userId int, order WorkOrder) (int64, error)
	Get(ctx context.Context, userId int, id int64) (WorkOrder, error)
	GetByProject(ctx context.Context, userId int, projectId int64) ([]WorkOrder, error)
	Update(ctx context.Context, userId int, order WorkOrder) error
	Delete(ctx context.Context, userId int, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, order WorkOrder) (int64, error) {
	query := `INSERT INTO work_orders (user_id, project_id, number, title, description, assignee_id, status, due_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, order.ProjectId, order.Number, order.Title, order.Description,
		order.AssigneeId, order.Status, order.DueDate,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store work order: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (WorkOrder, error) {
	query := `SELECT id, project_id, number, title, description, assignee_id, status, due_date, created_at
				FROM work_orders WHERE id = $1 AND user_id = $2`
	var o WorkOrder
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&o.Id, &o.ProjectId, &o.Number, &o.Title, &o.Description, &o.AssigneeId, &o.Status, &o.DueDate, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkOrder{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get work order: %w", err)
		log.Error(err)
		return WorkOrder{}, err
	}
	return o, nil
}

func (r *RepositoryImpl) GetByProject(ctx context.Context, userId int, projectId int64) ([]WorkOrder, error) {
	query := `SELECT id, project_id, number, title, description, assignee_id, status, due_date, created_at
				FROM work_orders WHERE user_id = $1 AND project_id = $2
				ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, projectId)
	if err != nil {
		err := fmt.Errorf("could not query work orders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	orders := make([]WorkOrder, 0, 10)
	for rows.Next() {
		var o WorkOrder
		if err := rows.Scan(&o.Id, &o.ProjectId, &o.Number, &o.Title, &o.Description, &o.AssigneeId, &o.Status, &o.DueDate, &o.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, order WorkOrder) error {
	query := `UPDATE work_orders SET project_id = $1, number = $2, title = $3, description = $4, assignee_id = $5, status = $6, due_date = $7
				WHERE id = $8 AND user_id = $9`
	tag, err := r.db.Exec(ctx, query,
		order.ProjectId, order.Number, order.Title, order.Description,
		order.AssigneeId, order.Status, order.DueDate, order.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update work order: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM work_orders WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete work order: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
