package domwindow

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/joeycumines/go-eventloop"
	"github.com/stretchr/testify/require"
)

// recordingInbox records every notification, in order.
type recordingInbox struct {
	notifications []Notification
	mu            sync.Mutex
}

func (x *recordingInbox) Notify(n Notification) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.notifications = append(x.notifications, n)
}

func (x *recordingInbox) Notifications() []Notification {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]Notification(nil), x.notifications...)
}

// manualFacility records scheduled deliveries, which only happen on fire.
type manualFacility struct {
	delays  []time.Duration
	pending []func()
	mu      sync.Mutex
}

func (x *manualFacility) Schedule(delay time.Duration, deliver func()) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.delays = append(x.delays, delay)
	x.pending = append(x.pending, deliver)
	return nil
}

func (x *manualFacility) Delays() []time.Duration {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]time.Duration(nil), x.delays...)
}

// fire delivers everything pending, in scheduling order.
func (x *manualFacility) fire() {
	x.mu.Lock()
	pending := x.pending
	x.pending = nil
	x.mu.Unlock()
	for _, deliver := range pending {
		deliver()
	}
}

func newTestWindow(t *testing.T, opts ...Option) (*Window, *recordingInbox, *manualFacility, *goja.Runtime) {
	t.Helper()
	inbox := new(recordingInbox)
	facility := new(manualFacility)
	rt := goja.New()
	w, err := New(inbox, nil, nil, rt, append([]Option{WithTimerFacility(facility)}, opts...)...)
	require.NoError(t, err)
	return w, inbox, facility, rt
}

// destroyAndWait destroys w, failing the test if the worker does not exit.
func destroyAndWait(t *testing.T, w *Window) {
	t.Helper()
	w.Destroy()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for timer worker to terminate")
	}
}

// startPipeline creates a pipeline on a running loop. The setup func, if
// any, is called with the runtime before the loop starts.
func startPipeline(t *testing.T, setup func(rt *goja.Runtime), opts ...PipelineOption) (*Pipeline, context.Context, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	loop, err := eventloop.New()
	require.NoError(t, err)

	rt := goja.New()
	if setup != nil {
		setup(rt)
	}

	p, err := NewPipeline(loop, rt, opts...)
	require.NoError(t, err)

	runDone := make(chan error, 1)
	go func() { runDone <- loop.Run(ctx) }()

	t.Cleanup(func() {
		_ = loop.Shutdown(context.Background())
	})

	return p, ctx, runDone
}

// syncBuffer is a bytes.Buffer safe for concurrent writes, e.g. from a
// logger shared by the test and a timer worker.
type syncBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (x *syncBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.Write(p)
}

func (x *syncBuffer) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.String()
}

func newTestRuntime() *goja.Runtime { return goja.New() }
