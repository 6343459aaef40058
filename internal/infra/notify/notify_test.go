package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/dailybrief"
)

func TestMQTTPublisherSendsJSON(t *testing.T) {
	client := &fakeClient{token: newDoneToken(nil)}
	p := newMQTTPublisher(client, "home/outfit", discardLogger())

	n := dailybrief.Notification{City: "Oslo", Weather: "30°F, Snow", Outfit: "Wear a warm coat", Emoji: "❄️🧥"}
	require.NoError(t, p.Publish(context.Background(), n))

	require.Equal(t, "home/outfit", client.topic)
	require.Equal(t, byte(1), client.qos)
	var got dailybrief.Notification
	require.NoError(t, json.Unmarshal(client.payload.([]byte), &got))
	require.Equal(t, "Oslo", got.City)
	require.Equal(t, "❄️🧥", got.Emoji)
}

func TestMQTTPublisherReturnsTokenError(t *testing.T) {
	client := &fakeClient{token: newDoneToken(errors.New("not connected"))}
	p := newMQTTPublisher(client, "home/outfit", discardLogger())
	require.ErrorContains(t, p.Publish(context.Background(), dailybrief.Notification{}), "not connected")
}

func TestMQTTPublisherHonoursContext(t *testing.T) {
	client := &fakeClient{token: &fakeToken{done: make(chan struct{})}}
	p := newMQTTPublisher(client, "home/outfit", discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Publish(ctx, dailybrief.Notification{}), context.Canceled)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, p.Publish(context.Background(), dailybrief.Notification{City: "Oslo", Outfit: "coat"}))
	require.Contains(t, buf.String(), `"city":"Oslo"`)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClient struct {
	token   mqtt.Token
	topic   string
	qos     byte
	payload interface{}
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.topic, c.qos, c.payload = topic, qos, payload
	return c.token
}

type fakeToken struct {
	done chan struct{}
	err  error
}

func newDoneToken(err error) *fakeToken {
	done := make(chan struct{})
	close(done)
	return &fakeToken{done: done, err: err}
}

func (t *fakeToken) Wait() bool {
	<-t.done
	return true
}

func (t *fakeToken) WaitTimeout(d time.Duration) bool {
	select {
	case <-t.done:
		return true
	case <-time.After(d):
		return false
	}
}

func (t *fakeToken) Done() <-chan struct{} { return t.done }
func (t *fakeToken) Error() error          { return t.err }
