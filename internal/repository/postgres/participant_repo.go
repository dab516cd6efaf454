package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func scanParticipant(row interface{ Scan(...any) error }) (*domain.Participant, error) {
	p := &domain.Participant{}
	var attended sql.NullBool
	err := row.Scan(&p.ID, &p.EventID, &p.UserID, &p.Accepted, &p.Declined, &attended, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	if attended.Valid {
		p.Attended = &attended.Bool
	}
	return p, nil
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, accepted, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.EventID, p.UserID, p.Accepted, p.JoinedAt).Scan(&p.ID)
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, accepted, declined, attended, joined_at
		FROM event_participants
		WHERE id = $1
	`
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, accepted, declined, attended, joined_at
		FROM event_participants
		WHERE event_id = $1 AND user_id = $2
	`
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	query := `
		SELECT id, event_id, user_id, accepted, declined, attended, joined_at
		FROM event_participants
		WHERE event_id = $1
		ORDER BY joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// ListWithUserByEventID returns the roster minus the event owner. Ordering is
// by profile first name ascending; join order breaks ties so the listing is
// stable across calls.
func (r *participantRepository) ListWithUserByEventID(ctx context.Context, eventID string) ([]*domain.ParticipantWithUser, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, p.accepted, p.declined, p.attended, p.joined_at,
		       u.id, u.email, u.phone,
		       pr.username, pr.firstname, pr.lastname
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		JOIN users u ON u.id = p.user_id
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE p.event_id = $1 AND p.user_id <> e.owner_id
		ORDER BY pr.firstname ASC, p.joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roster := make([]*domain.ParticipantWithUser, 0)
	for rows.Next() {
		p := &domain.Participant{}
		u := &domain.User{}
		var attended sql.NullBool
		var username, firstname, lastname sql.NullString
		err := rows.Scan(
			&p.ID, &p.EventID, &p.UserID, &p.Accepted, &p.Declined, &attended, &p.JoinedAt,
			&u.ID, &u.Email, &u.Phone,
			&username, &firstname, &lastname,
		)
		if err != nil {
			return nil, err
		}
		if attended.Valid {
			p.Attended = &attended.Bool
		}
		profile := &domain.Profile{
			UserID:    u.ID,
			Username:  username.String,
			Firstname: firstname.String,
			Lastname:  lastname.String,
		}
		roster = append(roster, &domain.ParticipantWithUser{
			Participant: p,
			User:        u,
			Profile:     profile,
		})
	}
	return roster, rows.Err()
}

func (r *participantRepository) SetAccepted(ctx context.Context, id string) error {
	query := `UPDATE event_participants SET accepted = TRUE WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *participantRepository) SetDeclined(ctx context.Context, id string) error {
	query := `UPDATE event_participants SET declined = TRUE WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *participantRepository) SetAttended(ctx context.Context, id string, attended bool) error {
	query := `UPDATE event_participants SET attended = $2 WHERE id = $1`
	return r.exec(ctx, query, id, attended)
}

func (r *participantRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
