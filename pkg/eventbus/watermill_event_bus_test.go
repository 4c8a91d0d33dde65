package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/channels/gochannel"
	"github.com/caseflow/caseflow/pkg/eventbus"
	"github.com/caseflow/caseflow/pkg/events"
)

func TestWatermillEventBus_PublishAndSubscribe(t *testing.T) {
	t.Parallel()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	defer func() {
		_ = bus.Close()
	}()

	received := make(chan *events.WorkflowCreated, 1)

	err = bus.Handle(events.WorkflowCreatedEvent, func(_ context.Context, event interface{}) error {
		created, ok := event.(*events.WorkflowCreated)
		if ok {
			received <- created
		}

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	event := events.WorkflowCreated{
		BaseEvent:   events.NewBaseEvent(events.WorkflowCreatedEvent, "wf-1"),
		Name:        "Welcome email",
		TriggerType: "case_created",
	}

	require.NoError(t, bus.Publish(t.Context(), "wf-1", event))

	select {
	case created := <-received:
		assert.Equal(t, "wf-1", created.WorkflowID)
		assert.Equal(t, "Welcome email", created.Name)
		assert.Equal(t, events.WorkflowCreatedEvent, created.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workflow.created event")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	t.Parallel()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	defer func() {
		_ = bus.Close()
	}()

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
