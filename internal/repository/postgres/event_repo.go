package postgres

import (
	"context"
	"database/sql"
	"strings"

	"boothly/internal/domain"
)

const eventColumns = `id, name, date, address, phone, email, cost, flyer_url, application_link, organizer_id, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, address, phone, email, cost, flyer_url, application_link, organizer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Date, nullString(e.Address), nullString(e.Phone), nullString(e.Email), nullString(e.Cost),
		nullString(e.FlyerURL), nullString(e.ApplicationLink), nullString(e.OrganizerID), e.CreatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, lookupErr(err)
	}
	return e, nil
}

// Query filters by inclusive date range and, for a non-empty keyword, a
// case-insensitive substring of name. LIKE wildcards in the keyword match literally.
func (r *eventRepository) Query(ctx context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= $1 AND date <= $2`
	args := []any{q.Start, q.End}
	if kw := q.NormalizedKeyword(); kw != "" {
		query += ` AND name ILIKE $3 ESCAPE '\'`
		args = append(args, "%"+escapeLike(kw)+"%")
	}
	query += ` ORDER BY date ASC, name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var address, phone, email, cost, flyer, link, organizer sql.NullString
	if err := row.Scan(&e.ID, &e.Name, &e.Date, &address, &phone, &email, &cost, &flyer, &link, &organizer, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Address = address.String
	e.Phone = phone.String
	e.Email = email.String
	e.Cost = cost.String
	e.FlyerURL = flyer.String
	e.ApplicationLink = link.String
	e.OrganizerID = organizer.String
	return e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
