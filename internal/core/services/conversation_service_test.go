package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tripnest/server/internal/core/domain"
	"github.com/tripnest/server/internal/core/ports/mocks"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/pkg/apperrors"
)

func newConversationService(t *testing.T) (*services.ConversationService, *mocks.ConversationRepository, *mocks.MessageRepository, *mocks.ParticipantRepository) {
	convRepo := mocks.NewConversationRepository(t)
	messageRepo := mocks.NewMessageRepository(t)
	participantRepo := mocks.NewParticipantRepository(t)
	service := services.NewConversationService(convRepo, messageRepo, participantRepo, discardLogger())
	return service, convRepo, messageRepo, participantRepo
}

func TestStartOrGetConversation_NormalizesPairOrder(t *testing.T) {
	service, convRepo, _, _ := newConversationService(t)

	ctx := context.Background()
	partyA := uuid.New()
	partyB := uuid.New()
	first, second := domain.NormalizePair(partyA, partyB)

	convRepo.On("CreateIfAbsent", ctx, mock.MatchedBy(func(c *domain.Conversation) bool {
		return c.ParticipantA == first && c.ParticipantB == second
	})).Return(&domain.Conversation{ID: uuid.New(), ParticipantA: first, ParticipantB: second}, nil).Twice()

	// Either argument order lands on the same canonical pair.
	conv1, err1 := service.StartOrGetConversation(ctx, partyA, partyB)
	conv2, err2 := service.StartOrGetConversation(ctx, partyB, partyA)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, conv1.ParticipantA, conv2.ParticipantA)
	assert.Equal(t, conv1.ParticipantB, conv2.ParticipantB)
}

func TestStartOrGetConversation_Fail_SameParticipant(t *testing.T) {
	service, _, _, _ := newConversationService(t)

	id := uuid.New()
	conv, err := service.StartOrGetConversation(context.Background(), id, id)

	assert.Nil(t, conv)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestStartOrGetConversation_Fail_NilParticipant(t *testing.T) {
	service, _, _, _ := newConversationService(t)

	conv, err := service.StartOrGetConversation(context.Background(), uuid.Nil, uuid.New())

	assert.Nil(t, conv)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestAppendMessage_Success_UpdatesSnapshot(t *testing.T) {
	service, convRepo, messageRepo, _ := newConversationService(t)

	ctx := context.Background()
	sender := uuid.New()
	other := uuid.New()
	a, b := domain.NormalizePair(sender, other)
	conversationID := uuid.New()

	conv := &domain.Conversation{ID: conversationID, ParticipantA: a, ParticipantB: b}

	convRepo.On("GetByID", ctx, conversationID).Return(conv, nil)
	messageRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.ConversationID == conversationID && m.SenderID == sender && m.Content == "hello"
	})).Return(nil)
	convRepo.On("UpdateLastMessage", ctx, conversationID, mock.MatchedBy(func(s domain.MessageSnapshot) bool {
		return s.Content == "hello" && s.Sender == sender
	})).Return(nil)

	msg, err := service.AppendMessage(ctx, conversationID, sender, "hello")

	assert.NoError(t, err)
	if assert.NotNil(t, msg) {
		assert.Equal(t, "hello", msg.Content)
		assert.False(t, msg.Timestamp.IsZero())
	}
}

func TestAppendMessage_Fail_NotAParticipant(t *testing.T) {
	service, convRepo, messageRepo, _ := newConversationService(t)

	ctx := context.Background()
	conversationID := uuid.New()

	conv := &domain.Conversation{ID: conversationID, ParticipantA: uuid.New(), ParticipantB: uuid.New()}

	convRepo.On("GetByID", ctx, conversationID).Return(conv, nil)

	msg, err := service.AppendMessage(ctx, conversationID, uuid.New(), "hello")

	assert.Nil(t, msg)
	assert.True(t, apperrors.Is(err, apperrors.CodePermissionDenied))
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppendMessage_Fail_EmptyContent(t *testing.T) {
	service, _, _, _ := newConversationService(t)

	msg, err := service.AppendMessage(context.Background(), uuid.New(), uuid.New(), "   ")

	assert.Nil(t, msg)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArgument))
}

func TestAppendMessage_SnapshotFailureStillReturnsMessage(t *testing.T) {
	service, convRepo, messageRepo, _ := newConversationService(t)

	ctx := context.Background()
	sender := uuid.New()
	other := uuid.New()
	a, b := domain.NormalizePair(sender, other)
	conversationID := uuid.New()

	convRepo.On("GetByID", ctx, conversationID).
		Return(&domain.Conversation{ID: conversationID, ParticipantA: a, ParticipantB: b}, nil)
	messageRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
	convRepo.On("UpdateLastMessage", ctx, conversationID, mock.AnythingOfType("domain.MessageSnapshot")).
		Return(errors.New("summary write failed"))

	msg, err := service.AppendMessage(ctx, conversationID, sender, "still delivered")

	assert.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestListConversations_ResolvesCounterparts(t *testing.T) {
	service, convRepo, _, participantRepo := newConversationService(t)

	ctx := context.Background()
	me := uuid.New()
	vendor := uuid.New()
	a, b := domain.NormalizePair(me, vendor)

	convs := []domain.Conversation{{
		ID:           uuid.New(),
		ParticipantA: a,
		ParticipantB: b,
		LastMessage:  &domain.MessageSnapshot{Content: "see you there", Timestamp: time.Now().UTC()},
	}}

	convRepo.On("ListByParticipant", ctx, me).Return(convs, nil)
	participantRepo.On("Resolve", ctx, vendor).Return(&domain.Participant{
		ID:          vendor,
		Kind:        domain.ParticipantVendor,
		DisplayName: "Island Tours",
	}, nil)

	summaries, err := service.ListConversations(ctx, me)

	assert.NoError(t, err)
	if assert.Len(t, summaries, 1) {
		assert.Equal(t, "Island Tours", summaries[0].Counterpart.DisplayName)
		assert.Equal(t, domain.ParticipantVendor, summaries[0].Counterpart.Kind)
	}
}

func TestListConversations_UnresolvableCounterpartKeepsEntry(t *testing.T) {
	service, convRepo, _, participantRepo := newConversationService(t)

	ctx := context.Background()
	me := uuid.New()
	ghost := uuid.New()
	a, b := domain.NormalizePair(me, ghost)

	convRepo.On("ListByParticipant", ctx, me).
		Return([]domain.Conversation{{ID: uuid.New(), ParticipantA: a, ParticipantB: b}}, nil)
	participantRepo.On("Resolve", ctx, ghost).
		Return(nil, apperrors.NotFound("participant not found"))

	summaries, err := service.ListConversations(ctx, me)

	assert.NoError(t, err)
	if assert.Len(t, summaries, 1) {
		assert.Equal(t, ghost, summaries[0].Counterpart.ID)
		assert.Empty(t, summaries[0].Counterpart.DisplayName)
	}
}

func TestListMessages_Fail_ConversationMissing(t *testing.T) {
	service, convRepo, messageRepo, _ := newConversationService(t)

	ctx := context.Background()
	conversationID := uuid.New()

	convRepo.On("GetByID", ctx, conversationID).Return(nil, apperrors.NotFound("conversation not found"))

	msgs, err := service.ListMessages(ctx, conversationID)

	assert.Nil(t, msgs)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	messageRepo.AssertNotCalled(t, "ListByConversation", mock.Anything, mock.Anything)
}
