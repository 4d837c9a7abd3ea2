package estimate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound         = errors.New("estimate not found")
	ErrLineItemNotFound = errors.New("estimate line item not found")
)

type Repository interface {
	Store(ctx context.Context, userId int, estimate Estimate) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Estimate, error)
	GetByProject(ctx context.Context, userId int, projectId int64) ([]Estimate, error)
	Update(ctx context.Context, userId int, estimate Estimate) error
	Delete(ctx context.Context, userId int, id int64) error
	StoreLineItem(ctx context.Context, estimateId int64, item LineItem) (int64, error)
	UpdateLineItem(ctx context.Context, estimateId int64, item LineItem) error
	DeleteLineItem(ctx context.Context, estimateId, itemId int64) error
	ReorderLineItems(ctx context.Context, estimateId int64, itemIds []int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, estimate Estimate) (int64, error) {
	query := `INSERT INTO estimates (user_id, project_id, number, status, tax_rate)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, estimate.ProjectId, estimate.Number, estimate.Status, estimate.TaxRate,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store estimate: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Estimate, error) {
	query := `SELECT id, project_id, number, status, tax_rate, created_at
				FROM estimates WHERE id = $1 AND user_id = $2`
	var e Estimate
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&e.Id, &e.ProjectId, &e.Number, &e.Status, &e.TaxRate, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Estimate{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get estimate: %w", err)
		log.Error(err)
		return Estimate{}, err
	}

	e.LineItems, err = r.lineItems(ctx, e.Id)
	if err != nil {
		return Estimate{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) GetByProject(ctx context.Context, userId int, projectId int64) ([]Estimate, error) {
	query := `SELECT id, project_id, number, status, tax_rate, created_at
				FROM estimates WHERE user_id = $1 AND project_id = $2
				ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, projectId)
	if err != nil {
		err := fmt.Errorf("could not query estimates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	estimates := make([]Estimate, 0, 10)
	for rows.Next() {
		var e Estimate
		if err := rows.Scan(&e.Id, &e.ProjectId, &e.Number, &e.Status, &e.TaxRate, &e.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		estimates = append(estimates, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range estimates {
		estimates[i].LineItems, err = r.lineItems(ctx, estimates[i].Id)
		if err != nil {
			return nil, err
		}
	}
	return estimates, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, estimate Estimate) error {
	query := `UPDATE estimates SET project_id = $1, number = $2, status = $3, tax_rate = $4
				WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query,
		estimate.ProjectId, estimate.Number, estimate.Status, estimate.TaxRate, estimate.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update estimate: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM estimates WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete estimate: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) StoreLineItem(ctx context.Context, estimateId int64, item LineItem) (int64, error) {
	query := `INSERT INTO estimate_line_items (estimate_id, description, quantity, unit_price_cents, position)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		estimateId, item.Description, item.Quantity, item.UnitPriceCents, item.Position,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store line item: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) UpdateLineItem(ctx context.Context, estimateId int64, item LineItem) error {
	query := `UPDATE estimate_line_items SET description = $1, quantity = $2, unit_price_cents = $3
				WHERE id = $4 AND estimate_id = $5`
	tag, err := r.db.Exec(ctx, query,
		item.Description, item.Quantity, item.UnitPriceCents, item.Id, estimateId)
	if err != nil {
		err := fmt.Errorf("could not update line item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLineItemNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteLineItem(ctx context.Context, estimateId, itemId int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM estimate_line_items WHERE id = $1 AND estimate_id = $2`, itemId, estimateId)
	if err != nil {
		err := fmt.Errorf("could not delete line item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLineItemNotFound
	}
	return nil
}

// ReorderLineItems rewrites positions to match the given id order inside one
// transaction.
func (r *RepositoryImpl) ReorderLineItems(ctx context.Context, estimateId int64, itemIds []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	for position, itemId := range itemIds {
		tag, err := tx.Exec(ctx,
			`UPDATE estimate_line_items SET position = $1 WHERE id = $2 AND estimate_id = $3`,
			position, itemId, estimateId)
		if err != nil {
			err := fmt.Errorf("could not reorder line items: %w", err)
			log.Error(err)
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrLineItemNotFound
		}
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) lineItems(ctx context.Context, estimateId int64) ([]LineItem, error) {
	query := `SELECT id, description, quantity, unit_price_cents, position
				FROM estimate_line_items WHERE estimate_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, estimateId)
	if err != nil {
		err := fmt.Errorf("could not query line items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItem, 0, 10)
	for rows.Next() {
		var item LineItem
		if err := rows.Scan(&item.Id, &item.Description, &item.Quantity, &item.UnitPriceCents, &item.Position); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
