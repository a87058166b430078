package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewEvent(t *testing.T) {
	e, err := New(ProductCreated, "p-1", map[string]string{"slug": "pixel-9"})
	require.NoError(t, err)

	assert.NotEmpty(t, e.EventID)
	assert.Equal(t, ProductCreated, e.EventType)
	assert.JSONEq(t, `{"slug":"pixel-9"}`, string(e.Payload))
	assert.WithinDuration(t, time.Now(), e.Timestamp, time.Minute)
	assert.True(t, e.AffectsProducts())

	e, err = New(CategoryDeleted, "c-1", nil)
	require.NoError(t, err)
	assert.Nil(t, e.Payload)
	assert.True(t, e.AffectsProducts())

	e, err = New(CategoryCreated, "c-2", nil)
	require.NoError(t, err)
	assert.False(t, e.AffectsProducts())

	e, err = New(CategoryUpdated, "c-2", nil)
	require.NoError(t, err)
	assert.True(t, e.AffectsProducts())

	_, err = New(ProductUpdated, "p-1", make(chan int))
	assert.Error(t, err)
}

func TestEncodeMessage(t *testing.T) {
	e, err := New(ProductUpdated, "p-9", nil)
	require.NoError(t, err)

	msg, err := encodeMessage(e)
	require.NoError(t, err)

	assert.Equal(t, []byte("p-9"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, eventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, "product.updated", string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.EventID, decoded.EventID)
	assert.Equal(t, e.EntityID, decoded.EntityID)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

type fakeReader struct {
	mu       sync.Mutex
	messages []kafka.Message
	errs     []error
	cancel   context.CancelFunc
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.messages) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) Close() error { return nil }

type recordingCache struct {
	prefixes []string
	err      error
}

func (c *recordingCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (c *recordingCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (c *recordingCache) DeletePrefix(_ context.Context, prefix string) error {
	c.prefixes = append(c.prefixes, prefix)
	return c.err
}

func message(t *testing.T, eventType Type) kafka.Message {
	e, err := New(eventType, "id-1", nil)
	require.NoError(t, err)
	msg, err := encodeMessage(e)
	require.NoError(t, err)
	return msg
}

func TestListenerInvalidatesOnProductEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, logs := observer.New(zapcore.DebugLevel)
	reader := &fakeReader{
		cancel: cancel,
		errs:   []error{errors.New("broker unavailable")},
		messages: []kafka.Message{
			message(t, ProductCreated),
			message(t, CategoryCreated),
			{Value: []byte("not json")},
			message(t, ProductDeleted),
		},
	}
	c := &recordingCache{}
	l := NewListener(reader, c, zap.New(core))
	l.retryDelay = time.Millisecond

	l.Start(ctx)

	assert.Equal(t, []string{"products:list:", "products:list:"}, c.prefixes)
	assert.Equal(t, 1, logs.FilterMessage("Failed to read kafka message").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to unmarshal event").Len())
}

func TestListenerLogsCacheFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := &recordingCache{err: errors.New("redis down")}
	l := NewListener(&fakeReader{}, c, zap.New(core))

	l.processMessage(context.Background(), message(t, ProductUpdated).Value)

	assert.Equal(t, 1, logs.FilterMessage("Failed to invalidate product list cache").Len())
}
