package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/pkg/apperrors"
)

// Schema note: conversations carry a unique index over the normalized
// participant pair,
//
//	CREATE UNIQUE INDEX idx_conversation_pair
//	ON conversations (participant_a, participant_b);
//
// with participant_a < participant_b enforced at write time, so two
// concurrent first-contact inserts converge on a single row.
type ConversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func scanConversation(row interface{ Scan(...any) error }) (*domain.Conversation, error) {
	var c domain.Conversation
	var content sql.NullString
	var ts sql.NullTime
	var sender sql.NullString

	err := row.Scan(
		&c.ID,
		&c.ParticipantA,
		&c.ParticipantB,
		&c.CreatedAt,
		&content,
		&ts,
		&sender,
	)
	if err != nil {
		return nil, err
	}

	if content.Valid && ts.Valid && sender.Valid {
		senderID, err := uuid.Parse(sender.String)
		if err != nil {
			return nil, err
		}
		c.LastMessage = &domain.MessageSnapshot{
			Content:   content.String,
			Timestamp: ts.Time,
			Sender:    senderID,
		}
	}

	return &c, nil
}

const conversationColumns = `
	id, participant_a, participant_b, created_at,
	last_message_content, last_message_at, last_message_sender
`

func (r *ConversationRepository) GetByID(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conv, err := scanConversation(r.db.QueryRowContext(ctx, query, conversationID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, apperrors.Upstream("failed to load conversation", err)
	}

	return conv, nil
}

func (r *ConversationRepository) CreateIfAbsent(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	insert := `
	INSERT INTO conversations (id, participant_a, participant_b, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (participant_a, participant_b) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, insert, conv.ID, conv.ParticipantA, conv.ParticipantB, conv.CreatedAt)
	if err != nil {
		return nil, apperrors.Upstream("failed to insert conversation", err)
	}

	// Reselect so a lost insert race still returns the winning row.
	query := `
	SELECT ` + conversationColumns + `
	FROM conversations
	WHERE participant_a = $1 AND participant_b = $2
	`

	winner, err := scanConversation(r.db.QueryRowContext(ctx, query, conv.ParticipantA, conv.ParticipantB))
	if err != nil {
		return nil, apperrors.Upstream("failed to load conversation", err)
	}

	return winner, nil
}

func (r *ConversationRepository) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]domain.Conversation, error) {
	query := `
	SELECT ` + conversationColumns + `
	FROM conversations
	WHERE participant_a = $1 OR participant_b = $1
	ORDER BY last_message_at DESC NULLS LAST, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, apperrors.Upstream("failed to list conversations", err)
	}

	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, apperrors.Upstream("failed to scan conversation row", err)
		}
		out = append(out, *conv)
	}

	return out, rows.Err()
}

func (r *ConversationRepository) UpdateLastMessage(ctx context.Context, conversationID uuid.UUID, snapshot domain.MessageSnapshot) error {
	query := `
	UPDATE conversations
	SET last_message_content = $2, last_message_at = $3, last_message_sender = $4
	WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		conversationID, snapshot.Content, snapshot.Timestamp, snapshot.Sender)
	if err != nil {
		return apperrors.Upstream("failed to update last message", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Upstream("failed to update last message", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("conversation not found")
	}

	return nil
}
