package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("contact not found")

type Repository interface {
	Store(ctx context.Context, userId int, contact Contact) (int64, error)
	Get(ctx context.Context, userId int, id int64) (Contact, error)
	GetAll(ctx context.Context, userId int, contactType Type, includeArchived bool) ([]Contact, error)
	Update(ctx context.Context, userId int, contact Contact) error
	SetArchived(ctx context.Context, userId int, id int64, archived bool) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, contact Contact) (int64, error) {
	query := `INSERT INTO contacts (user_id, type, name, email, phone, company, notes, archived)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query,
		userId, contact.Type, contact.Name, contact.Email, contact.Phone, contact.Company, contact.Notes, contact.Archived,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store contact: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int64) (Contact, error) {
	query := `SELECT id, type, name, email, phone, company, notes, archived, created_at
				FROM contacts WHERE id = $1 AND user_id = $2`
	var c Contact
	err := r.db.QueryRow(ctx, query, id, userId).
		Scan(&c.Id, &c.Type, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.Archived, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Contact{}, ErrNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get contact: %w", err)
		log.Error(err)
		return Contact{}, err
	}
	return c, nil
}

func (r *RepositoryImpl) GetAll(ctx context.Context, userId int, contactType Type, includeArchived bool) ([]Contact, error) {
	query := `SELECT id, type, name, email, phone, company, notes, archived, created_at
				FROM contacts
				WHERE user_id = $1
					AND ($2 = '' OR type = $2)
					AND (archived = false OR $3)
				ORDER BY name`
	rows, err := r.db.Query(ctx, query, userId, string(contactType), includeArchived)
	if err != nil {
		err := fmt.Errorf("could not query contacts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	contacts := make([]Contact, 0, 10)
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.Id, &c.Type, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &c.Archived, &c.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, contact Contact) error {
	query := `UPDATE contacts SET type = $1, name = $2, email = $3, phone = $4, company = $5, notes = $6
				WHERE id = $7 AND user_id = $8`
	tag, err := r.db.Exec(ctx, query,
		contact.Type, contact.Name, contact.Email, contact.Phone, contact.Company, contact.Notes, contact.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update contact: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) SetArchived(ctx context.Context, userId int, id int64, archived bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE contacts SET archived = $1 WHERE id = $2 AND user_id = $3`, archived, id, userId)
	if err != nil {
		err := fmt.Errorf("could not archive contact: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
