package logger

// MongoHandler is an slog.Handler that tees log records into a MongoDB
// collection without touching the hot request path:
//
//   - Records are enqueued into a buffered channel (non-blocking).
//   - A single background goroutine drains the channel and performs
//     InsertMany in batches.
//   - If the channel is full the record is dropped; logging must never
//     block application code.
//   - Close() flushes what is queued.

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/infocart/pkg/reqid"
)

const (
	mongoQueueSize = 4096
	mongoBatchSize = 50
	mongoDrainTick = 2 * time.Second
)

// LogDocument is the shape written to the log collection.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// MongoHandler wraps an inner handler and asynchronously persists every
// record it handles.
type MongoHandler struct {
	inner slog.Handler
	queue chan LogDocument
	done  chan struct{}
}

// NewMongoHandler starts the background writer for col. The inner handler
// still receives every record, so stdout logging keeps working.
func NewMongoHandler(col *mongo.Collection, inner slog.Handler) *MongoHandler {
	h := &MongoHandler{
		inner: inner,
		queue: make(chan LogDocument, mongoQueueSize),
		done:  make(chan struct{}),
	}
	go h.drain(col)
	return h
}

// Enabled defers to the inner handler.
func (h *MongoHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle forwards to the inner handler, then enqueues the record.
func (h *MongoHandler) Handle(ctx context.Context, rec slog.Record) error {
	if err := h.inner.Handle(ctx, rec); err != nil {
		return err
	}

	doc := LogDocument{
		Time:      rec.Time,
		Level:     rec.Level.String(),
		Msg:       rec.Message,
		RequestID: reqid.FromCtx(ctx),
	}
	if rec.NumAttrs() > 0 {
		doc.Attrs = bson.M{}
		rec.Attrs(func(a slog.Attr) bool {
			doc.Attrs[a.Key] = a.Value.String()
			return true
		})
	}

	select {
	case h.queue <- doc:
	default: // queue full, drop rather than block
	}
	return nil
}

// WithAttrs wraps the inner handler; persisted docs keep only record attrs.
func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MongoHandler{inner: h.inner.WithAttrs(attrs), queue: h.queue, done: h.done}
}

// WithGroup wraps the inner handler.
func (h *MongoHandler) WithGroup(name string) slog.Handler {
	return &MongoHandler{inner: h.inner.WithGroup(name), queue: h.queue, done: h.done}
}

// Close stops accepting records and flushes the queue.
func (h *MongoHandler) Close() {
	close(h.queue)
	<-h.done
}

func (h *MongoHandler) drain(col *mongo.Collection) {
	defer close(h.done)

	ticker := time.NewTicker(mongoDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc, ok := <-h.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
