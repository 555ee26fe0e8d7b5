package jobs

import (
	"context"
	"time"

	"github.com/aurahealth/aura-backend/libs"
	"github.com/aurahealth/aura-backend/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type EventType string

const (
	EventSessionMessage EventType = "session.message"
	EventMoodUpdated    EventType = "mood.updated"
)

// Event is the payload handed to the background worker. Events are
// best-effort: when the buffer is full they are dropped, never blocking a
// request.
type Event struct {
	Type        EventType
	UserID      bson.ObjectID
	SessionID   string
	Message     string
	History     []model.ChatMessage
	MoodScore   int
	MoodContext string
}

// Worker consumes events on a buffered channel and produces derived
// documents (session insights, activity recommendations). It is a
// secondary, non-authoritative consumer: nothing in the request path reads
// its output.
type Worker struct {
	gen    libs.Generator
	log    *zap.SugaredLogger
	events chan Event
	done   chan struct{}
}

func NewWorker(gen libs.Generator, log *zap.SugaredLogger) *Worker {
	return &Worker{
		gen:    gen,
		log:    log,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go w.run()
}

// Publish enqueues an event without blocking. Returns false when the event
// was dropped.
func (w *Worker) Publish(e Event) bool {
	select {
	case w.events <- e:
		return true
	default:
		w.log.Warnw("dropping background event, queue full", "type", e.Type)
		return false
	}
}

// Stop drains queued events and waits for the worker to exit.
func (w *Worker) Stop() {
	close(w.events)
	<-w.done
}

func (w *Worker) run() {
	defer close(w.done)
	for e := range w.events {
		w.handle(e)
	}
}

func (w *Worker) handle(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch e.Type {
	case EventSessionMessage:
		w.analyzeSessionMessage(ctx, e)
	case EventMoodUpdated:
		w.recommendActivities(ctx, e)
	default:
		w.log.Warnw("unknown background event", "type", e.Type)
	}
}
