package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boothly/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var testTopics = Topics{Sessions: "sessions", Events: "events", Profiles: "profiles"}

func TestKafkaNotifier_SessionChanged(t *testing.T) {
	w := &fakeWriter{}
	n := newKafkaNotifier(w, testTopics, testLogger)
	at := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

	err := n.SessionChanged(context.Background(), domain.SessionChange{
		Type: domain.SessionSignedIn, UserID: "u1", Email: "a@b.com", At: at,
	})
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "sessions", msg.Topic)
	assert.Equal(t, "u1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "SIGNED_IN", string(msg.Headers[0].Value))

	var got domain.SessionChange
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, domain.SessionSignedIn, got.Type)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, at.Equal(got.At))
}

func TestKafkaNotifier_EventAndProfile(t *testing.T) {
	w := &fakeWriter{}
	n := newKafkaNotifier(w, testTopics, testLogger)

	require.NoError(t, n.EventCreated(context.Background(), &domain.Event{ID: "ev-1", Name: "Spring Fair", Date: domain.NewDate(2026, time.April, 1)}))
	require.NoError(t, n.ProfileSaved(context.Background(), &domain.Profile{UserID: "u1", Bio: "ceramics"}))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "events", w.msgs[0].Topic)
	assert.Equal(t, "ev-1", string(w.msgs[0].Key))
	assert.JSONEq(t, `"2026-04-01"`, string(mustField(t, w.msgs[0].Value, "date")))
	assert.Equal(t, "profiles", w.msgs[1].Topic)
	assert.Equal(t, "u1", string(w.msgs[1].Key))

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	n := newKafkaNotifier(&fakeWriter{err: errors.New("leader not available")}, testTopics, testLogger)
	err := n.EventCreated(context.Background(), &domain.Event{ID: "ev-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "events")
}

func TestNewNotifier_Providers(t *testing.T) {
	assert.IsType(t, &noopNotifier{}, NewNotifier(Config{Provider: "noop"}, testLogger))
	assert.IsType(t, &noopNotifier{}, NewNotifier(Config{Provider: "rabbit"}, testLogger))

	k := NewNotifier(Config{Provider: "kafka", Brokers: []string{"localhost:9092"}, Topics: testTopics}, testLogger)
	assert.IsType(t, &kafkaNotifier{}, k)
	assert.NoError(t, k.Close())

	noop := NewNotifier(Config{}, testLogger)
	assert.NoError(t, noop.SessionChanged(context.Background(), domain.SessionChange{Type: domain.SessionSignedOut}))
	assert.NoError(t, noop.EventCreated(context.Background(), &domain.Event{}))
	assert.NoError(t, noop.ProfileSaved(context.Background(), &domain.Profile{}))
}

func mustField(t *testing.T, raw []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}
