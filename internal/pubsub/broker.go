package pubsub

import (
	"encoding/json"

	"sync"

	"github.com/auklet-oj/auklet/internal/database/models"
	"go.uber.org/zap"
)

// TopicJudgeQueue carries JudgeTask messages for the out-of-process judge
// worker bridge.
const TopicJudgeQueue = "judge_queue"

// StatusTopic names the per-contest stream of submission status updates.
func StatusTopic(contestID string) string {
	return "contest:" + contestID + ":status"
}

// JudgeTask asks the judge worker to (re-)evaluate one submission.
type JudgeTask struct {
	ContestID    string `json:"contest_id"`
	ProblemID    string `json:"problem_id"`
	SubmissionID string `json:"submission_id"`
}

// StatusUpdate announces a submission status transition to live listeners.
type StatusUpdate struct {
	SubmissionID string             `json:"submission_id"`
	ContestID    string             `json:"contest_id"`
	ProblemID    string             `json:"problem_id"`
	UserID       string             `json:"user_id"`
	Status       models.JudgeStatus `json:"status"`
}

// Broker is a simple in-memory pub/sub system connecting the API to the
// judge queue consumer and websocket listeners. It is an explicitly
// constructed value, passed to whoever needs it.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string][]chan []byte),
	}
}

// Subscribe subscribes to a topic and returns the message channel together
// with an unsubscribe func that also closes the channel.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()
	ch := make(chan []byte, 128)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subscribers := b.subscribers[topic]
		for i, sub := range subscribers {
			if sub == ch {
				b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debugf("unsubscribed from topic %s", topic)
	}

	zap.S().Debugf("new subscription to topic %s", topic)
	return ch, unsubscribe
}

// Publish delivers a message to all subscribers of a topic. Subscribers with
// a full channel miss the message; a slow listener must not block the
// publisher.
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// PublishJudgeTask enqueues a judge task for the worker bridge.
func (b *Broker) PublishJudgeTask(task JudgeTask) {
	msg, err := json.Marshal(task)
	if err != nil {
		zap.S().Errorf("failed to marshal judge task: %v", err)
		return
	}
	b.Publish(TopicJudgeQueue, msg)
}

// PublishStatusUpdate broadcasts a submission status transition on the
// contest's status topic.
func (b *Broker) PublishStatusUpdate(update StatusUpdate) {
	msg, err := json.Marshal(update)
	if err != nil {
		zap.S().Errorf("failed to marshal status update: %v", err)
		return
	}
	b.Publish(StatusTopic(update.ContestID), msg)
}
