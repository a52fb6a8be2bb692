package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

// ParticipantRepository resolves conversation participants polymorphically:
// an id may belong to the users table or to the vendors table.
type ParticipantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Resolve(ctx context.Context, participantID uuid.UUID) (*domain.Participant, error) {
	p := domain.Participant{ID: participantID, Kind: domain.ParticipantUser}

	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT name, avatar_url FROM users WHERE id = $1`, participantID,
	).Scan(&p.DisplayName, &avatar)

	if err == sql.ErrNoRows {
		p.Kind = domain.ParticipantVendor
		err = r.db.QueryRowContext(ctx,
			`SELECT business_name, logo_url FROM vendors WHERE id = $1`, participantID,
		).Scan(&p.DisplayName, &avatar)
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("participant not found")
		}
	}

	if err != nil {
		return nil, apperrors.Upstream("failed to resolve participant", err)
	}

	if avatar.Valid {
		p.AvatarURL = avatar.String
	}

	return &p, nil
}
