package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("expense not found")

type Repository interface {
	Store(ctx context.Context, userId int, expense Expense) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Expense, error)
	GetByProject(ctx context.Context, userId int, projectId int64, from, to time.Time) ([]Expense, error)
	ProjectTotal(ctx context.Context, userId int, projectId int64) (int64, error)
	Update(ctx context.Context, userId int, expense Expense) error
	Delete(ctx context.Context, userId int, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, expense Expense) (int64, error) {
	query := `INSERT INTO expenses (user_id, project_id, vendor, amount_cents, category, incurred_date, receipt_url, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, expense.ProjectId, expense.Vendor, expense.AmountCents, expense.Category,
		expense.IncurredDate, expense.ReceiptUrl, expense.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Expense, error) {
	query := `SELECT id, project_id, vendor, amount_cents, category, incurred_date, receipt_url, notes, created_at
				FROM expenses WHERE id = $1 AND user_id = $2`
	var e Expense
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&e.Id, &e.ProjectId, &e.Vendor, &e.AmountCents, &e.Category, &e.IncurredDate, &e.ReceiptUrl, &e.Notes, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Expense{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) GetByProject(ctx context.Context, userId int, projectId int64, from, to time.Time) ([]Expense, error) {
	query := `SELECT id, project_id, vendor, amount_cents, category, incurred_date, receipt_url, notes, created_at
				FROM expenses
				WHERE user_id = $1 AND project_id = $2
				  AND ($3::date IS NULL OR incurred_date >= $3)
				  AND ($4::date IS NULL OR incurred_date <= $4)
				ORDER BY incurred_date DESC`
	rows, err := r.db.Query(ctx, query, userId, projectId, nullTime(from), nullTime(to))
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0, 10)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.Id, &e.ProjectId, &e.Vendor, &e.AmountCents, &e.Category, &e.IncurredDate, &e.ReceiptUrl, &e.Notes, &e.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *RepositoryImpl) ProjectTotal(ctx context.Context, userId int, projectId int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE user_id = $1 AND project_id = $2`,
		userId, projectId).Scan(&total)
	if err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, expense Expense) error {
	query := `UPDATE expenses SET project_id = $1, vendor = $2, amount_cents = $3, category = $4, incurred_date = $5, receipt_url = $6, notes = $7
				WHERE id = $8 AND user_id = $9`
	tag, err := r.db.Exec(ctx, query,
		expense.ProjectId, expense.Vendor, expense.AmountCents, expense.Category,
		expense.IncurredDate, expense.ReceiptUrl, expense.Notes, expense.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
