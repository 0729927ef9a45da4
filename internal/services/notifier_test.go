package services_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageNotifier_Handle(t *testing.T) {
	var buf bytes.Buffer
	notifier := services.NewMessageNotifier(zerolog.New(&buf))

	body, err := json.Marshal(models.Message{
		ID:           "m1",
		CustomerName: "Ada",
		Email:        "ada@example.com",
		Message:      "Hello",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, notifier.Handle(services.EventMessageCreated, body))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "new customer message", line["message"])
	assert.Equal(t, "m1", line["message_id"])
	assert.Equal(t, "ada@example.com", line["email"])
}

func TestMessageNotifier_RejectsBadEvents(t *testing.T) {
	notifier := services.NewMessageNotifier(zerolog.Nop())

	assert.Error(t, notifier.Handle(services.EventMessageCreated, []byte("not json")))
	assert.Error(t, notifier.Handle(services.EventMessageCreated, []byte(`{}`)))
	assert.NoError(t, notifier.Handle("message.archived", []byte("ignored")))
}
