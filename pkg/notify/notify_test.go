package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event domain.NotificationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func TestAMQPNotifierPublishesJSON(t *testing.T) {
	pub := new(mockPublisher)
	n := &AMQPNotifier{queue: "jobboard.notifications", channel: func() (publisher, error) { return pub, nil }}

	event := domain.NotificationEvent{
		ID:            "evt-1",
		Kind:          domain.EventStatusChanged,
		OccurredAt:    time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC),
		ApplicationID: 12,
		Status:        domain.ApplicationStatusShortlisted,
	}

	pub.On("Publish", "", "jobboard.notifications", mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got domain.NotificationEvent
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.MessageId == "evt-1" && msg.DeliveryMode == amqp.Persistent && got.ApplicationID == 12
	})).Return(nil).Once()
	pub.On("Close").Return(nil).Once()

	require.NoError(t, n.Notify(context.Background(), event))
	pub.AssertExpectations(t)
}

func TestAMQPNotifierChannelError(t *testing.T) {
	n := &AMQPNotifier{queue: "q", channel: func() (publisher, error) { return nil, errors.New("closed") }}
	err := n.Notify(context.Background(), domain.NotificationEvent{ID: "evt-2"})
	assert.ErrorContains(t, err, "closed")
}

func TestMultiJoinsErrors(t *testing.T) {
	ok := new(mockNotifier)
	failing := new(mockNotifier)
	event := domain.NotificationEvent{ID: "evt-3"}
	ok.On("Notify", mock.Anything, event).Return(nil).Once()
	failing.On("Notify", mock.Anything, event).Return(errors.New("smtp down")).Once()

	err := Multi{failing, ok, LogNotifier{}}.Notify(context.Background(), event)
	assert.ErrorContains(t, err, "smtp down")
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)
}
