package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-task-backend/events"
	"go-task-backend/models"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doneToken is an already completed paho token
type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// fakeClient records publishes; other paho.Client methods are not used
type fakeClient struct {
	paho.Client
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	c.topic = topic
	c.qos = qos
	c.payload = payload.([]byte)
	return doneToken{err: c.err}
}

func TestPublisherDeliver(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "tasks/events")

	ev := events.Event{Type: events.TaskCreated, TaskID: "t1", Task: &models.Task{ID: "t1", Title: "Write docs"}}
	require.NoError(t, p.Deliver(context.Background(), ev))

	assert.Equal(t, "tasks/events/task.created", client.topic)
	assert.Equal(t, byte(1), client.qos)

	var got events.Event
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, "Write docs", got.Task.Title)
}

func TestPublisherReportsBrokerError(t *testing.T) {
	client := &fakeClient{err: errors.New("not connected")}
	p := NewPublisher(client, "tasks/events")

	err := p.Deliver(context.Background(), events.Event{Type: events.TaskDeleted, TaskID: "t1"})
	assert.EqualError(t, err, "not connected")
}
