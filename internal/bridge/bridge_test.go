package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// stubPoller returns a fixed snapshot, or an error when failing is set.
type stubPoller struct {
	snap    *Snapshot
	failing bool
}

func (p *stubPoller) Poll(context.Context) (*Snapshot, error) {
	if p.failing {
		return nil, errors.New("controller unreachable")
	}
	return p.snap, nil
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Time:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Source: "192.168.1.40:8889",
		Calculations: []Reading{
			{Index: 10, Name: "ID_WEB_Temperatur_TVL", Raw: 352, Value: 35.2, Unit: "°C"},
		},
	}
}

func TestHandleSnapshot(t *testing.T) {
	b := New(&stubPoller{snap: testSnapshot()}, time.Hour)

	// No poll has happened yet
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before first poll = %d, want 503", rec.Code)
	}

	b.pollOnce(context.Background())

	rec = httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Source != "192.168.1.40:8889" {
		t.Errorf("Source = %q", got.Source)
	}
	if len(got.Calculations) != 1 || got.Calculations[0].Value != 35.2 {
		t.Errorf("Calculations = %+v", got.Calculations)
	}
}

func TestHandleSnapshotMethodNotAllowed(t *testing.T) {
	b := New(&stubPoller{snap: testSnapshot()}, time.Hour)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshot", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestPollFailureKeepsLastSnapshot(t *testing.T) {
	p := &stubPoller{snap: testSnapshot()}
	b := New(p, time.Hour)

	b.pollOnce(context.Background())
	p.failing = true
	b.pollOnce(context.Background())

	b.mu.Lock()
	latest := b.latest
	b.mu.Unlock()
	if latest == nil {
		t.Fatal("failed poll must not clear the last snapshot")
	}
}

func TestWebSocketPush(t *testing.T) {
	b := New(&stubPoller{snap: testSnapshot()}, time.Hour)
	srv := httptest.NewServer(b.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	// Wait until the subscriber is registered, then poll to trigger a push
	deadline := time.Now().Add(2 * time.Second)
	for {
		b.mu.Lock()
		n := len(b.clients)
		b.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	b.pollOnce(context.Background())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Source != "192.168.1.40:8889" {
		t.Errorf("pushed Source = %q", got.Source)
	}
}
