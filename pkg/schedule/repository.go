package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("schedule item not found")

type Repository interface {
	Store(ctx context.Context, userId int, item Item) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Item, error)
	GetByProject(ctx context.Context, userId int, projectId int64) ([]Item, error)
	// GetRange returns items overlapping the window plus every recurring item
	// that starts before the window ends; occurrence filtering happens upstream.
	GetRange(ctx context.Context, userId int, from, to time.Time) ([]Item, error)
	FindByGoogleEventId(ctx context.Context, userId int, googleEventId string) (Item, error)
	Update(ctx context.Context, userId int, item Item) error
	UpdateSyncFields(ctx context.Context, userId int, id int64, googleEventId, inviteStatus, lastSyncError string) error
	Delete(ctx context.Context, userId int, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const itemColumns = `id, project_id, title, description, start_time, end_time, all_day,
	assignee_type, assignee_id, send_invite,
	recurrence_frequency, recurrence_interval, recurrence_week_days, recurrence_month_day, recurrence_end_date, recurrence_count,
	calendar_sync_enabled, google_event_id, invite_status, last_sync_error`

func (r *RepositoryImpl) Store(ctx context.Context, userId int, item Item) (int64, error) {
	query := `INSERT INTO schedule_items (
				user_id, project_id, title, description, start_time, end_time, all_day,
				assignee_type, assignee_id, send_invite,
				recurrence_frequency, recurrence_interval, recurrence_week_days, recurrence_month_day, recurrence_end_date, recurrence_count,
				calendar_sync_enabled, google_event_id, invite_status, last_sync_error
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			RETURNING id`

	freq, interval, weekDays, monthDay, endDate, count := recurrenceColumns(item.Recurrence)
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, item.ProjectId, item.Title, item.Description, item.StartTime, item.EndTime, item.AllDay,
		nullString(string(item.AssigneeType)), nullString(item.AssigneeId), item.SendInvite,
		freq, interval, weekDays, monthDay, endDate, count,
		item.CalendarSyncEnabled, nullString(item.GoogleEventId), nullString(item.InviteStatus), nullString(item.LastSyncError),
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store schedule item: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items WHERE id = $1 AND user_id = $2`
	return scanItem(r.db.QueryRow(ctx, query, id, userId))
}

func (r *RepositoryImpl) GetByProject(ctx context.Context, userId int, projectId int64) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items
				WHERE user_id = $1 AND project_id = $2 ORDER BY start_time`
	rows, err := r.db.Query(ctx, query, userId, projectId)
	if err != nil {
		err := fmt.Errorf("could not query schedule items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *RepositoryImpl) GetRange(ctx context.Context, userId int, from, to time.Time) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items
				WHERE user_id = $1
					AND start_time <= $2
					AND (end_time >= $3 OR recurrence_frequency IS NOT NULL)
				ORDER BY start_time`
	rows, err := r.db.Query(ctx, query, userId, to, from)
	if err != nil {
		err := fmt.Errorf("could not query schedule items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *RepositoryImpl) FindByGoogleEventId(ctx context.Context, userId int, googleEventId string) (Item, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items WHERE user_id = $1 AND google_event_id = $2`
	return scanItem(r.db.QueryRow(ctx, query, userId, googleEventId))
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, item Item) error {
	query := `UPDATE schedule_items SET
				project_id = $1, title = $2, description = $3, start_time = $4, end_time = $5, all_day = $6,
				assignee_type = $7, assignee_id = $8, send_invite = $9,
				recurrence_frequency = $10, recurrence_interval = $11, recurrence_week_days = $12,
				recurrence_month_day = $13, recurrence_end_date = $14, recurrence_count = $15,
				calendar_sync_enabled = $16, google_event_id = $17, invite_status = $18, last_sync_error = $19
			WHERE id = $20 AND user_id = $21`

	freq, interval, weekDays, monthDay, endDate, count := recurrenceColumns(item.Recurrence)
	tag, err := r.db.Exec(ctx, query,
		item.ProjectId, item.Title, item.Description, item.StartTime, item.EndTime, item.AllDay,
		nullString(string(item.AssigneeType)), nullString(item.AssigneeId), item.SendInvite,
		freq, interval, weekDays, monthDay, endDate, count,
		item.CalendarSyncEnabled, nullString(item.GoogleEventId), nullString(item.InviteStatus), nullString(item.LastSyncError),
		item.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update schedule item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) UpdateSyncFields(ctx context.Context, userId int, id int64, googleEventId, inviteStatus, lastSyncError string) error {
	query := `UPDATE schedule_items SET google_event_id = $1, invite_status = $2, last_sync_error = $3
				WHERE id = $4 AND user_id = $5`
	tag, err := r.db.Exec(ctx, query,
		nullString(googleEventId), nullString(inviteStatus), nullString(lastSyncError), id, userId)
	if err != nil {
		err := fmt.Errorf("could not update sync fields: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schedule_items WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete schedule item: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	items := make([]Item, 0, 10)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var assigneeType, assigneeId, googleEventId, inviteStatus, lastSyncError sql.NullString
	var freq, weekDays sql.NullString
	var interval, monthDay, count sql.NullInt32
	var endDate sql.NullTime

	err := row.Scan(
		&item.Id, &item.ProjectId, &item.Title, &item.Description, &item.StartTime, &item.EndTime, &item.AllDay,
		&assigneeType, &assigneeId, &item.SendInvite,
		&freq, &interval, &weekDays, &monthDay, &endDate, &count,
		&item.CalendarSyncEnabled, &googleEventId, &inviteStatus, &lastSyncError,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not scan schedule item: %w", err)
		log.Error(err)
		return Item{}, err
	}

	item.AssigneeType = AssigneeType(assigneeType.String)
	item.AssigneeId = assigneeId.String
	item.GoogleEventId = googleEventId.String
	item.InviteStatus = inviteStatus.String
	item.LastSyncError = lastSyncError.String

	if freq.Valid {
		pattern := &RecurrencePattern{
			Frequency: Frequency(freq.String),
			Interval:  int(interval.Int32),
			MonthDay:  int(monthDay.Int32),
			Count:     int(count.Int32),
		}
		if weekDays.String != "" {
			pattern.WeekDays = strings.Split(weekDays.String, ",")
		}
		if endDate.Valid {
			pattern.EndDate = endDate.Time.Format("2006-01-02")
		}
		item.Recurrence = pattern
	}
	return item, nil
}

// recurrenceColumns flattens the optional pattern into the six recurrence
// columns, in table order.
func recurrenceColumns(p *RecurrencePattern) (freq, interval, weekDays, monthDay, endDate, count any) {
	if p == nil {
		return nil, nil, nil, nil, nil, nil
	}
	var end any
	if p.EndDate != "" {
		if t, err := time.Parse("2006-01-02", p.EndDate); err == nil {
			end = t
		}
	}
	var days any
	if len(p.WeekDays) > 0 {
		days = strings.Join(p.WeekDays, ",")
	}
	return nullString(string(p.Frequency)), p.Interval, days, p.MonthDay, end, p.Count
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
