package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/segmentio/kafka-go"
)

type recordingNotifier struct {
	mu    sync.Mutex
	jobs  []Job
	block chan struct{}
}

func (r *recordingNotifier) Notify(_ context.Context, userID uint, title, message string) (*Notification, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, Job{UserID: userID, Title: title, Message: message})
	return &Notification{UserID: userID, Title: title, Message: message}, nil
}

func (r *recordingNotifier) titlesFor(userID uint) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, j := range r.jobs {
		if j.UserID == userID {
			out = append(out, j.Title)
		}
	}
	return out
}

func TestQueueDispatcherKeepsPerUserOrder(t *testing.T) {
	n := &recordingNotifier{}
	d := NewQueueDispatcher(n, 64, 4)

	for i := 0; i < 10; i++ {
		d.Dispatch(Job{UserID: 1, Title: string(rune('a' + i)), Message: "m"})
		d.Dispatch(Job{UserID: 2, Title: "other", Message: "m"})
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got := n.titlesFor(1)
	if len(got) != 10 {
		t.Fatalf("expected 10 jobs for user 1, got %d", len(got))
	}
	for i, title := range got {
		if title != string(rune('a'+i)) {
			t.Fatalf("job %d out of order: %v", i, got)
		}
	}
	if len(n.titlesFor(2)) != 10 {
		t.Fatal("user 2 jobs missing")
	}
}

func TestQueueDispatcherDropsWhenFull(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	d := NewQueueDispatcher(n, 1, 1)

	// first job is taken by the worker and blocks, second fills the queue
	for i := 0; i < 5; i++ {
		d.Dispatch(Job{UserID: 1, Title: "t", Message: "m"})
	}
	close(n.block)
	_ = d.Close()

	if got := len(n.titlesFor(1)); got < 1 || got > 2 {
		t.Fatalf("expected at most queue+worker capacity delivered, got %d", got)
	}

	d.Dispatch(Job{UserID: 1, Title: "late", Message: "m"}) // must not panic after Close
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func TestKafkaRoundTrip(t *testing.T) {
	w := &fakeWriter{}
	d := NewKafkaDispatcher(w)
	d.Dispatch(Job{UserID: 42, Title: "Goal reached", Message: "done"})
	_ = d.Close()

	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "42" || !w.closed {
		t.Fatalf("unexpected writes %+v closed=%v", w.msgs, w.closed)
	}

	reader := &fakeReader{msgs: []kafka.Message{{Value: []byte("not json")}, w.msgs[0]}}
	n := &recordingNotifier{}
	err := StartKafkaConsumer(context.Background(), reader, n)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected reader error to surface, got %v", err)
	}

	got := n.titlesFor(42)
	if len(got) != 1 || got[0] != "Goal reached" {
		t.Fatalf("consumer should deliver the decoded job, got %v", got)
	}

	var job Job
	_ = json.Unmarshal(w.msgs[0].Value, &job)
	if job.Message != "done" {
		t.Fatalf("payload should carry the message, got %+v", job)
	}
}

type fakeFCM struct {
	sent []*messaging.MulticastMessage
}

func (f *fakeFCM) SendEachForMulticast(_ context.Context, m *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.sent = append(f.sent, m)
	return &messaging.BatchResponse{SuccessCount: len(m.Tokens)}, nil
}

type staticTokens []string

func (s staticTokens) DeviceTokens(context.Context, uint) ([]string, error) { return s, nil }

func TestPushPublisherOnlyPushesNewNotifications(t *testing.T) {
	fcm := &fakeFCM{}
	p := &PushPublisher{client: fcm, tokens: staticTokens{"a", "b"}}
	ctx := context.Background()

	if err := p.Publish(ctx, 1, Message{Event: EventUnreadCount, UnreadCount: 3}); err != nil {
		t.Fatalf("publish count: %v", err)
	}
	if len(fcm.sent) != 0 {
		t.Fatal("unread count must not be pushed")
	}

	n := &Notification{ID: 5, Title: "Donation received", Message: "60.00"}
	if err := p.Publish(ctx, 1, Message{Event: EventNewNotification, Notification: n, UnreadCount: 3}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(fcm.sent) != 1 || len(fcm.sent[0].Tokens) != 2 {
		t.Fatalf("expected one multicast to two devices, got %+v", fcm.sent)
	}
	if fcm.sent[0].Notification.Title != "Donation received" || fcm.sent[0].Data["notification_id"] != "5" {
		t.Fatalf("unexpected push payload %+v", fcm.sent[0])
	}
}
