package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("time entry not found")

type Filter struct {
	ProjectId  int64
	EmployeeId int64
	From       time.Time
	To         time.Time
}

type Repository interface {
	Store(ctx context.Context, userId int, entry Entry) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Entry, error)
	GetOpenByEmployee(ctx context.Context, userId int, employeeId int64) (Entry, error)
	GetAll(ctx context.Context, userId int, filter Filter) ([]Entry, error)
	Update(ctx context.Context, userId int, entry Entry) error
	Delete(ctx context.Context, userId int, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, entry Entry) (int64, error) {
	query := `INSERT INTO time_entries (user_id, employee_id, project_id, start_time, end_time, notes)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, entry.EmployeeId, entry.ProjectId, entry.Start, entry.End, entry.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store time entry: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Entry, error) {
	query := `SELECT id, employee_id, project_id, start_time, end_time, notes
				FROM time_entries WHERE id = $1 AND user_id = $2`
	var e Entry
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&e.Id, &e.EmployeeId, &e.ProjectId, &e.Start, &e.End, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get time entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) GetOpenByEmployee(ctx context.Context, userId int, employeeId int64) (Entry, error) {
	query := `SELECT id, employee_id, project_id, start_time, end_time, notes
				FROM time_entries
				WHERE user_id = $1 AND employee_id = $2 AND end_time IS NULL
				ORDER BY start_time DESC LIMIT 1`
	var e Entry
	err := r.db.QueryRow(ctx, query, userId, employeeId).
		Scan(&e.Id, &e.EmployeeId, &e.ProjectId, &e.Start, &e.End, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get open time entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, filter Filter) ([]Entry, error) {
	query := `SELECT id, employee_id, project_id, start_time, end_time, notes
				FROM time_entries
				WHERE user_id = $1
				  AND ($2 = 0 OR project_id = $2)
				  AND ($3 = 0 OR employee_id = $3)
				  AND ($4::timestamptz IS NULL OR start_time >= $4)
				  AND ($5::timestamptz IS NULL OR start_time < $5)
				ORDER BY start_time DESC`
	rows, err := r.db.Query(ctx, query, userId,
		filter.ProjectId, filter.EmployeeId, nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, 10)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Id, &e.EmployeeId, &e.ProjectId, &e.Start, &e.End, &e.Notes); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, entry Entry) error {
	query := `UPDATE time_entries SET employee_id = $1, project_id = $2, start_time = $3, end_time = $4, notes = $5
				WHERE id = $6 AND user_id = $7`
	tag, err := r.db.Exec(ctx, query,
		entry.EmployeeId, entry.ProjectId, entry.Start, entry.End, entry.Notes, entry.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update time entry: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete time entry: %w", err)
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
