package pubsub_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/auklet-oj/auklet/internal/database/models"
	"github.com/auklet-oj/auklet/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestPublishSubscribe(t *testing.T) {
	b := pubsub.NewBroker()

	ch, unsubscribe := b.Subscribe("topic")
	defer unsubscribe()

	b.Publish("topic", []byte("hello"))
	assert.Equal(t, []byte("hello"), receive(t, ch))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := pubsub.NewBroker()

	ch, unsubscribe := b.Subscribe("topic")
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	b.Publish("topic", []byte("ignored"))
}

func TestPublishJudgeTask(t *testing.T) {
	b := pubsub.NewBroker()

	ch, unsubscribe := b.Subscribe(pubsub.TopicJudgeQueue)
	defer unsubscribe()

	b.PublishJudgeTask(pubsub.JudgeTask{
		ContestID:    "spring",
		ProblemID:    "a",
		SubmissionID: "sub-1",
	})

	var task pubsub.JudgeTask
	require.NoError(t, json.Unmarshal(receive(t, ch), &task))
	assert.Equal(t, "spring", task.ContestID)
	assert.Equal(t, "a", task.ProblemID)
	assert.Equal(t, "sub-1", task.SubmissionID)
}

func TestPublishStatusUpdateRoutesByContest(t *testing.T) {
	b := pubsub.NewBroker()

	spring, unsubSpring := b.Subscribe(pubsub.StatusTopic("spring"))
	defer unsubSpring()
	autumn, unsubAutumn := b.Subscribe(pubsub.StatusTopic("autumn"))
	defer unsubAutumn()

	b.PublishStatusUpdate(pubsub.StatusUpdate{
		SubmissionID: "sub-1",
		ContestID:    "spring",
		ProblemID:    "a",
		UserID:       "u",
		Status:       models.StatusAccepted,
	})

	var update pubsub.StatusUpdate
	require.NoError(t, json.Unmarshal(receive(t, spring), &update))
	assert.Equal(t, models.StatusAccepted, update.Status)

	select {
	case msg := <-autumn:
		t.Fatalf("unexpected message on autumn topic: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
