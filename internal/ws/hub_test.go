package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestHub_BroadcastsJobsUpdated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.NotifyJobsUpdated("Deleted", "42")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var evt JobsUpdatedEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if evt.Type != EventJobsUpdated || evt.Reason != "deleted" || evt.JobID != "42" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	_ = conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_NilIsSafe(t *testing.T) {
	var h *Hub
	h.NotifyJobsUpdated("created", "1")
	h.Broadcast([]byte("x"))
	if h.ClientCount() != 0 {
		t.Fatalf("expected zero clients")
	}
}

func TestHub_UnregisterBurstDuringBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	clients := make([]*Client, 200)
	for i := range clients {
		clients[i] = &Client{hub: hub, send: make(chan []byte, 1)}
		hub.Register(clients[i])
	}
	waitFor(t, func() bool { return hub.ClientCount() == len(clients) })

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
	}
	for i := 0; i < 50; i++ {
		hub.Broadcast([]byte("x"))
	}
	wg.Wait()

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	returned := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Unregister(c)
		}
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatalf("unregister blocked on a stopped hub")
	}

	late := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(late)
	if _, ok := <-late.send; ok {
		t.Fatalf("expected send closed for a client that never joined")
	}
}
