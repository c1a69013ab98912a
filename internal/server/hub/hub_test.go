package hub

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	msgs     []string
	fail     bool
	block    bool
	closed   atomic.Int32
	inflight *atomic.Int32
	peak     *atomic.Int32
}

func (c *fakeConn) Send(ctx context.Context, msg string) error {
	if c.inflight != nil {
		n := c.inflight.Add(1)
		defer c.inflight.Add(-1)
		for {
			p := c.peak.Load()
			if n <= p || c.peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	if c.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if c.fail {
		return errors.New("broken pipe")
	}
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() error {
	c.closed.Add(1)
	return nil
}

func (c *fakeConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}

func newHub(opts ...Option) *Hub {
	return New(logging.Nop{}, opts...)
}

func TestRegisterUnregister(t *testing.T) {
	h := newHub()
	a, b := &fakeConn{}, &fakeConn{}

	h.Register(a)
	h.Register(b)
	h.Register(a)
	assert.Equal(t, 2, h.Len())

	assert.True(t, h.Unregister(a))
	assert.False(t, h.Unregister(a))
	assert.Equal(t, 1, h.Len())

	assert.False(t, h.Unregister(&fakeConn{}))
	assert.Equal(t, 1, h.Len())
}

func TestDeliver_AllLiveConnectionsReceiveOnce(t *testing.T) {
	h := newHub()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		h.Register(c)
	}

	n := h.Deliver(context.Background(), TopicClipboard)
	assert.Equal(t, 3, n)
	for _, c := range conns {
		assert.Equal(t, []string{TopicClipboard}, c.received())
	}
}

func TestDeliver_EmptyRegistry(t *testing.T) {
	h := newHub()
	assert.Equal(t, 0, h.Deliver(context.Background(), TopicTags))
}

func TestDeliver_FailingConnectionsAreRemoved(t *testing.T) {
	h := newHub()
	good := []*fakeConn{{}, {}, {}}
	bad := []*fakeConn{{fail: true}, {fail: true}}
	for _, c := range good {
		h.Register(c)
	}
	for _, c := range bad {
		h.Register(c)
	}

	n := h.Deliver(context.Background(), TopicFiles)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, h.Len())

	for _, c := range bad {
		assert.Equal(t, int32(1), c.closed.Load())
	}
	for _, c := range good {
		assert.Equal(t, []string{TopicFiles}, c.received())
		assert.Zero(t, c.closed.Load())
	}

	n = h.Deliver(context.Background(), TopicFiles)
	assert.Equal(t, 3, n)
}

func TestDeliver_SlowConnectionTimesOut(t *testing.T) {
	h := newHub(WithSendTimeout(20 * time.Millisecond))
	slow, fast := &fakeConn{block: true}, &fakeConn{}
	h.Register(slow)
	h.Register(fast)

	start := time.Now()
	n := h.Deliver(context.Background(), TopicClipboard)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, int32(1), slow.closed.Load())
	assert.Equal(t, []string{TopicClipboard}, fast.received())
}

func TestDeliver_BoundedParallelism(t *testing.T) {
	h := newHub(WithMaxParallelSends(2))
	var inflight, peak atomic.Int32
	for i := 0; i < 8; i++ {
		h.Register(&fakeConn{inflight: &inflight, peak: &peak})
	}

	assert.Equal(t, 8, h.Deliver(context.Background(), TopicTags))
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestBroadcast_IsAsynchronous(t *testing.T) {
	h := newHub(WithSendTimeout(50 * time.Millisecond))
	slow, fast := &fakeConn{block: true}, &fakeConn{}
	h.Register(slow)
	h.Register(fast)

	start := time.Now()
	h.Broadcast(TopicClipboard)
	assert.Less(t, time.Since(start), 40*time.Millisecond)

	h.Wait()
	assert.Equal(t, []string{TopicClipboard}, fast.received())
	assert.Equal(t, 1, h.Len())
}

func TestBroadcast_ConcurrentWithRegistration(t *testing.T) {
	h := newHub()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := &fakeConn{}
			h.Register(c)
			h.Unregister(c)
		}()
		go func() {
			defer wg.Done()
			h.Broadcast(TopicTags)
		}()
	}

	wg.Wait()
	h.Wait()
	assert.Equal(t, 0, h.Len())
}

func TestBroadcast_NoDuplicatesOnSuccess(t *testing.T) {
	h := newHub()
	c := &fakeConn{}
	h.Register(c)

	h.Broadcast(TopicClipboard)
	h.Broadcast(TopicFiles)
	h.Wait()

	got := c.received()
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{TopicClipboard, TopicFiles}, got)
}

func TestClose(t *testing.T) {
	h := newHub()
	a, b := &fakeConn{}, &fakeConn{}
	h.Register(a)
	h.Register(b)

	h.Close()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, int32(1), a.closed.Load())
	assert.Equal(t, int32(1), b.closed.Load())
}

func TestClose_StopsBroadcastAndRegister(t *testing.T) {
	h := newHub()
	a := &fakeConn{}
	h.Register(a)

	h.Close()
	h.Broadcast(TopicTags)
	h.Wait()
	assert.Empty(t, a.received())

	late := &fakeConn{}
	h.Register(late)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, int32(1), late.closed.Load())
}

func TestClose_WaitWhileBroadcasting(t *testing.T) {
	h := newHub()
	h.Register(&fakeConn{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				h.Broadcast(TopicClipboard)
			}
		}()
	}

	time.Sleep(time.Millisecond)
	h.Close()
	h.Wait()
	wg.Wait()
	h.Wait()
	assert.Equal(t, 0, h.Len())
}
