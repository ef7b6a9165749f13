package room

import (
	"context"
	"ctchen222/Block-Battle/internal/game"
	"ctchen222/Block-Battle/internal/player"
	"ctchen222/Block-Battle/internal/telemetry"
	"ctchen222/Block-Battle/pkg/proto"
	"errors"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var errConnClosed = errors.New("connection closed")

// fakeConn is an in-memory player connection. Reads block until a message is
// queued or the connection is closed.
type fakeConn struct {
	reads     chan []byte
	closed    chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	writes    [][]byte
	pings     int
	readLimit int64
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan []byte, 8), closed: make(chan struct{})}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if messageType == websocket.PingMessage {
		c.pings++
		return nil
	}
	c.writes = append(c.writes, data)
	return nil
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-c.reads:
		return websocket.TextMessage, msg, nil
	case <-c.closed:
		return 0, nil, errConnClosed
	}
}

func (c *fakeConn) SetReadLimit(limit int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readLimit = limit
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.writes...)
}

// events decodes everything written to the connection.
func (c *fakeConn) events(t *testing.T) []proto.ServerEvent {
	t.Helper()
	var out []proto.ServerEvent
	for _, data := range c.written() {
		ev, err := proto.Decode(data)
		if err != nil {
			t.Fatalf("written document does not decode: %v", err)
		}
		out = append(out, ev)
	}
	return out
}

type statusUpdate struct {
	id     game.SessionID
	status player.PlayerStatus
}

type fakeSessions struct {
	mu      sync.Mutex
	updates []statusUpdate
}

func (f *fakeSessions) FindForReconnection(context.Context, game.SessionID) (string, player.PlayerStatus, error) {
	return "", "", nil
}

func (f *fakeSessions) UpdateConnectionStatus(_ context.Context, id game.SessionID, status player.PlayerStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, statusUpdate{id: id, status: status})
	return nil
}

func (f *fakeSessions) Join(context.Context, game.SessionID, string, string) error { return nil }

func (f *fakeSessions) Remove(context.Context, game.SessionID) error { return nil }

func (f *fakeSessions) statusUpdates() []statusUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]statusUpdate(nil), f.updates...)
}

func newTestMetrics(t *testing.T) (*telemetry.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	m, err := telemetry.NewMetricsWithProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	if err != nil {
		t.Fatalf("NewMetricsWithProvider() error: %v", err)
	}
	return m, reader
}

// counter sums the data points of the named counter, optionally filtered by
// one attribute value.
func counter(t *testing.T, reader *sdkmetric.ManualReader, name, attrKey, attrValue string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("Expected int64 sum for %s, got %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if attrKey != "" {
					v, ok := dp.Attributes.Value(attribute.Key(attrKey))
					if !ok || v.AsString() != attrValue {
						continue
					}
				}
				total += dp.Value
			}
		}
	}
	return total
}
