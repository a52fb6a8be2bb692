package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party messaging thread. Participants are stored as a
// normalized pair (ParticipantA < ParticipantB lexicographically) so a unique
// index over the pair can hold the one-conversation-per-pair invariant.
type Conversation struct {
	ID           uuid.UUID
	ParticipantA uuid.UUID
	ParticipantB uuid.UUID
	CreatedAt    time.Time
	LastMessage  *MessageSnapshot
}

// MessageSnapshot is the denormalized last-message summary kept on the
// conversation row.
type MessageSnapshot struct {
	Content   string
	Timestamp time.Time
	Sender    uuid.UUID
}

// NormalizePair orders two participant ids into the canonical (A, B) form.
func NormalizePair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if y.String() < x.String() {
		return y, x
	}
	return x, y
}

func (c *Conversation) HasParticipant(id uuid.UUID) bool {
	return c.ParticipantA == id || c.ParticipantB == id
}

// Counterpart returns the other participant of the pair.
func (c *Conversation) Counterpart(id uuid.UUID) uuid.UUID {
	if c.ParticipantA == id {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// Message is immutable once created; ordering within a conversation is by
// Timestamp ascending.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Content        string
	Timestamp      time.Time
}

// Participant is the resolved profile of one side of a conversation. A
// participant id may belong to either a user or a vendor record.
type ParticipantKind string

const (
	ParticipantUser   ParticipantKind = "USER"
	ParticipantVendor ParticipantKind = "VENDOR"
)

type Participant struct {
	ID          uuid.UUID
	Kind        ParticipantKind
	DisplayName string
	AvatarURL   string
}

// ConversationSummary is one row of a participant's inbox listing.
type ConversationSummary struct {
	Conversation Conversation
	Counterpart  Participant
}
