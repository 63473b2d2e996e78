package notifier

import (
	"context"
	"errors"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func TestNotifierService_PublishSubmitted(t *testing.T) {
	event := &requests.AssessmentSubmittedEvent{
		DraftID:      "d1",
		SubmissionID: "sub-1",
		ArchivePath:  "assessments/2024-05-01/d1.json",
		Sections:     []string{"identification"},
		SubmittedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("Publishes a persistent JSON message", func(t *testing.T) {
		publisher := new(MockPublisher)
		var published amqp091.Publishing
		publisher.On("PublishWithContext", ctx, "", "assessments", false, false, mock.AnythingOfType("amqp091.Publishing")).
			Run(func(args mock.Arguments) { published = args.Get(5).(amqp091.Publishing) }).
			Return(nil)

		err := NewNotifierService(publisher, "assessments", zap.NewNop()).PublishSubmitted(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, amqp091.Persistent, published.DeliveryMode)
		assert.Equal(t, "req-1", published.CorrelationId)
		assert.Equal(t, "d1", published.MessageId)
		assert.Equal(t, constvars.QueueEventAssessmentSubmitted, published.Headers["event"])

		var body requests.AssessmentSubmittedEvent
		require.NoError(t, json.Unmarshal(published.Body, &body))
		assert.Equal(t, "sub-1", body.SubmissionID)
	})

	t.Run("Publish failure", func(t *testing.T) {
		publisher := new(MockPublisher)
		publisher.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("channel closed"))

		err := NewNotifierService(publisher, "assessments", zap.NewNop()).PublishSubmitted(ctx, event)

		assert.Error(t, err)
	})
}
