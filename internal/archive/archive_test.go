package archive

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shv-inventory/internal/export"
	"shv-inventory/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
)

type recordPutter struct {
	mu          sync.Mutex
	keys        []string
	contentType string
	body        []byte
	hasDeadline bool
	err         error
}

func (r *recordPutter) Put(ctx context.Context, key string, body []byte, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, r.hasDeadline = ctx.Deadline()
	r.keys = append(r.keys, key)
	r.body = body
	r.contentType = contentType
	return r.err
}

func newLogger() (echo.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := echo.New().Logger
	l.SetOutput(&buf)
	l.SetLevel(log.INFO)
	return l, &buf
}

func restore() {
	newUUID = uuid.NewString
	timeNow = time.Now
}

func TestKey(t *testing.T) {
	t.Cleanup(restore)
	newUUID = func() string { return "abc" }
	at := time.Date(2026, 10, 18, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	require.Equal(t, "exports/2026-10-19/abc.xlsx", Key(at))
}

func TestSubmit(t *testing.T) {
	t.Cleanup(restore)
	timeNow = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	newUUID = func() string { return "id-1" }

	p := &recordPutter{}
	pool := worker.NewPool(1)
	logger, buf := newLogger()
	a := NewArchiver(p, pool, logger)

	key := a.Submit([]byte("xlsx"))
	pool.Stop()

	require.Equal(t, "exports/2026-01-02/id-1.xlsx", key)
	require.Equal(t, []string{key}, p.keys)
	require.Equal(t, []byte("xlsx"), p.body)
	require.Equal(t, export.ContentType, p.contentType)
	require.True(t, p.hasDeadline)
	require.Contains(t, buf.String(), "archived snapshot exports/2026-01-02/id-1.xlsx")
}

func TestSubmitFailureIsLogged(t *testing.T) {
	p := &recordPutter{err: errors.New("bucket gone")}
	pool := worker.NewPool(1)
	logger, buf := newLogger()

	NewArchiver(p, pool, logger).Submit([]byte("x"))
	pool.Stop()

	require.Len(t, p.keys, 1)
	require.Contains(t, buf.String(), "bucket gone")
}

// blockingPutter 在 release 關閉前卡住 Put
type blockingPutter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingPutter) Put(ctx context.Context, _ string, _ []byte, _ string) error {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return nil
}

func TestSubmitDoesNotBlockWhenQueueFull(t *testing.T) {
	p := &blockingPutter{started: make(chan struct{}), release: make(chan struct{})}
	pool := worker.NewPool(1)
	logger, buf := newLogger()
	a := NewArchiver(p, pool, logger)

	require.NotEmpty(t, a.Submit([]byte("1")))
	<-p.started
	require.NotEmpty(t, a.Submit([]byte("2")))

	done := make(chan string)
	go func() { done <- a.Submit([]byte("3")) }()
	select {
	case key := <-done:
		require.Empty(t, key)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked while an upload was in flight")
	}
	require.Contains(t, buf.String(), "archive queue full")

	close(p.release)
	pool.Stop()
}

func TestSubmitAfterPoolStopped(t *testing.T) {
	pool := worker.NewPool(1)
	pool.Stop()
	logger, buf := newLogger()
	a := NewArchiver(&recordPutter{}, pool, logger)

	require.NotPanics(t, func() { require.Empty(t, a.Submit([]byte("x"))) })
	require.Contains(t, buf.String(), "dropped")
}
