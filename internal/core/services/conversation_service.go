package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports"
	"github.com/tripnest/server/pkg/apperrors"
)

type ConversationService struct {
	convRepo        ports.ConversationRepository
	messageRepo     ports.MessageRepository
	participantRepo ports.ParticipantRepository
	logger          *slog.Logger
}

func NewConversationService(
	convRepo ports.ConversationRepository,
	messageRepo ports.MessageRepository,
	participantRepo ports.ParticipantRepository,
	logger *slog.Logger,
) *ConversationService {
	return &ConversationService{
		convRepo:        convRepo,
		messageRepo:     messageRepo,
		participantRepo: participantRepo,
		logger:          logger,
	}
}

// StartOrGetConversation returns the conversation for the unordered pair
// {partyA, partyB}, creating it on first contact. The pair is normalized and
// backed by a unique index, so concurrent first calls converge on one row.
func (s *ConversationService) StartOrGetConversation(ctx context.Context, partyA, partyB uuid.UUID) (*domain.Conversation, error) {
	if partyA == uuid.Nil || partyB == uuid.Nil {
		return nil, apperrors.InvalidArg("invalid participant id")
	}
	if partyA == partyB {
		return nil, apperrors.InvalidArg("a conversation needs two distinct participants")
	}

	a, b := domain.NormalizePair(partyA, partyB)

	conv := &domain.Conversation{
		ID:           uuid.New(),
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    nowUTC(),
	}

	return s.convRepo.CreateIfAbsent(ctx, conv)
}

func (s *ConversationService) GetConversation(ctx context.Context, conversationID uuid.UUID) (*domain.Conversation, error) {
	return s.convRepo.GetByID(ctx, conversationID)
}

// ListConversations returns the participant's inbox, newest activity first,
// each entry enriched with the counterpart's profile. A counterpart that can
// no longer be resolved is listed with an empty profile rather than dropped.
func (s *ConversationService) ListConversations(ctx context.Context, participantID uuid.UUID) ([]domain.ConversationSummary, error) {
	convs, err := s.convRepo.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		counterpartID := conv.Counterpart(participantID)

		counterpart := domain.Participant{ID: counterpartID}
		if resolved, err := s.participantRepo.Resolve(ctx, counterpartID); err != nil {
			s.logger.Warn("failed to resolve conversation counterpart",
				"conversation", conv.ID, "counterpart", counterpartID, "err", err)
		} else {
			counterpart = *resolved
		}

		summaries = append(summaries, domain.ConversationSummary{
			Conversation: conv,
			Counterpart:  counterpart,
		})
	}

	return summaries, nil
}

// AppendMessage persists the message, then updates the conversation's
// last-message snapshot. The snapshot update is best-effort: if it fails the
// message is already durable and is still returned.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.InvalidArg("message content is required")
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(senderID) {
		return nil, apperrors.Forbidden("sender is not a participant of this conversation")
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Timestamp:      nowUTC(),
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	snapshot := domain.MessageSnapshot{
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		Sender:    senderID,
	}
	if err := s.convRepo.UpdateLastMessage(ctx, conversationID, snapshot); err != nil {
		s.logger.Error("failed to update conversation summary",
			"conversation", conversationID, "err", err)
	}

	return msg, nil
}

func (s *ConversationService) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.Message, error) {
	if _, err := s.convRepo.GetByID(ctx, conversationID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByConversation(ctx, conversationID)
}
