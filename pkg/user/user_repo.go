package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user does not exist")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, timezone, google_calendar_id)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.GoogleCalendar.CalendarId,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, google_calendar_id FROM users WHERE id = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, id))
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, google_calendar_id FROM users WHERE uid = $1`
	return u.scanUser(u.db.QueryRow(ctx, query, uid))
}

func (u *UserRepoImpl) scanUser(row pgx.Row) (User, error) {
	var user User
	var calendarId sql.NullString
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Settings.Timezone,
		&calendarId,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Settings.GoogleCalendar.CalendarId = calendarId.String
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, timezone = $2, google_calendar_id = $3 WHERE id = $4`
	_, err := u.db.Exec(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.GoogleCalendar.CalendarId,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update user %d: %v", userId, err)
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, google_calendar_id FROM users ORDER BY username`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var calendarId sql.NullString
		if err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.Settings.Timezone, &calendarId); err != nil {
			return nil, err
		}
		user.Settings.GoogleCalendar.CalendarId = calendarId.String
		users = append(users, user)
	}
	return users, rows.Err()
}
