package notification

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notifyTimeout = 10 * time.Second

// Dispatcher hands notification jobs off the request path. Dispatch never
// blocks and never reports delivery errors back to the caller.
type Dispatcher interface {
	Dispatch(job Job)
	Close() error
}

// ===========================
// In-process queue

// QueueDispatcher runs jobs on a fixed set of workers fed by bounded
// queues. Jobs are sharded by recipient, so one user's notifications are
// handled in the order they were dispatched.
type QueueDispatcher struct {
	notifier Notifier
	queues   []chan Job
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueueDispatcher(notifier Notifier, size, workers int) *QueueDispatcher {
	if workers < 1 {
		workers = 1
	}
	if size < workers {
		size = workers
	}

	d := &QueueDispatcher{notifier: notifier, queues: make([]chan Job, workers)}
	for i := range d.queues {
		d.queues[i] = make(chan Job, size/workers)
		d.wg.Add(1)
		go d.work(d.queues[i])
	}
	return d
}

func (d *QueueDispatcher) Dispatch(job Job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		utils.Log.Warn("notification dropped after shutdown", zap.Uint("user_id", job.UserID), zap.String("title", job.Title))
		return
	}

	select {
	case d.queues[int(job.UserID%uint(len(d.queues)))] <- job:
	default:
		utils.Log.Warn("⚠️ notification queue full, dropping job", zap.Uint("user_id", job.UserID), zap.String("title", job.Title))
	}
}

// Close stops intake and waits for queued jobs to finish.
func (d *QueueDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}

func (d *QueueDispatcher) work(queue <-chan Job) {
	defer d.wg.Done()
	for job := range queue {
		deliver(d.notifier, job)
	}
}

func deliver(notifier Notifier, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if _, err := notifier.Notify(ctx, job.UserID, job.Title, job.Message); err != nil {
		utils.Log.Error("❌ notification failed",
			zap.Uint("user_id", job.UserID),
			zap.String("title", job.Title),
			zap.Error(err))
	}
}

// ===========================
// Kafka

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// KafkaDispatcher publishes jobs to a topic keyed by recipient, so a
// partition keeps each user's order. StartKafkaConsumer is the other end.
type KafkaDispatcher struct {
	writer messageWriter
}

func NewKafkaDispatcher(writer messageWriter) *KafkaDispatcher {
	return &KafkaDispatcher{writer: writer}
}

func (d *KafkaDispatcher) Dispatch(job Job) {
	payload, err := json.Marshal(job)
	if err != nil {
		utils.Log.Error("encode notification job", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(job.UserID), 10)),
		Value: payload,
	})
	if err != nil {
		utils.Log.Warn("kafka notification enqueue failed", zap.Uint("user_id", job.UserID), zap.Error(err))
	}
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

// StartKafkaConsumer reads jobs and delivers them until ctx is cancelled.
// Malformed messages are logged and skipped.
func StartKafkaConsumer(ctx context.Context, reader messageReader, notifier Notifier) error {
	utils.Log.Info("📥 notification consumer started")
	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var job Job
		if err := json.Unmarshal(m.Value, &job); err != nil {
			utils.Log.Warn("skipping malformed notification job", zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}
		deliver(notifier, job)
	}
}
