package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one record fanned out to every id in TargetIDs. Read-state
// is per record, not per recipient: marking it read marks it read for all
// targets sharing the record.
type Notification struct {
	ID        uuid.UUID
	Title     string
	Body      string
	TargetIDs []uuid.UUID
	IsRead    bool
	NavLink   string
	CreatedAt time.Time
}
